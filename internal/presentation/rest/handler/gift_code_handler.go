package handler

import (
	"net/http"

	giftcodeapp "clicker-server/internal/application/giftcode"

	"github.com/labstack/echo/v4"
)

// GiftCodeHandler ギフトコード関連ハンドラー
type GiftCodeHandler struct {
	giftCodeService *giftcodeapp.GiftCodeApplicationService
}

// NewGiftCodeHandler 新しいGiftCodeHandlerを作成
func NewGiftCodeHandler(giftCodeService *giftcodeapp.GiftCodeApplicationService) *GiftCodeHandler {
	return &GiftCodeHandler{
		giftCodeService: giftCodeService,
	}
}

// RedeemCode ギフトコード引き換えハンドラー
// @Summary ギフトコードを引き換え
// @Description コードを引き換えて効果をゲーム状態に適用します
// @Tags codes
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body RedeemCodeRequestBody true "引き換えリクエスト"
// @Success 200 {object} RedeemCodeResponseBody "引き換え成功"
// @Failure 400 {object} ErrorResponse "引き換え不可または引き換え済み"
// @Failure 404 {object} ErrorResponse "コードが存在しない"
// @Router /codes/redeem [post]
func (h *GiftCodeHandler) RedeemCode(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "user_id not found in token")
	}

	var reqBody RedeemCodeRequestBody
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if reqBody.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code is required")
	}

	resp, err := h.giftCodeService.Redeem(c.Request().Context(), &giftcodeapp.RedeemCodeRequest{
		Code:   reqBody.Code,
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RedeemCodeResponseBody{
		RedemptionID: resp.RedemptionID,
		Code:         resp.Code,
		EffectKind:   resp.EffectKind,
		EffectAmount: resp.EffectAmount,
		Status:       resp.Status,
	})
}
