package handler

import (
	"net/http"
	"strconv"

	historyapp "clicker-server/internal/application/history"
	"clicker-server/internal/domain/purchase"

	"github.com/labstack/echo/v4"
)

// HistoryHandler 購入履歴関連ハンドラー
type HistoryHandler struct {
	historyService *historyapp.HistoryApplicationService
}

// NewHistoryHandler 新しいHistoryHandlerを作成
func NewHistoryHandler(historyService *historyapp.HistoryApplicationService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// GetPurchaseHistory 購入履歴取得ハンドラー
// @Summary 購入履歴を取得
// @Description ユーザーの購入履歴をページネーション付きで返します
// @Tags history
// @Produce json
// @Security Bearer
// @Param limit query int false "取得件数（デフォルト50、最大100）"
// @Param offset query int false "オフセット"
// @Param status query string false "ステータスフィルタ"
// @Success 200 {object} PurchaseHistoryResponse "購入履歴"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /purchases [get]
func (h *HistoryHandler) GetPurchaseHistory(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "user_id not found in token")
	}

	limit := 50
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit format")
		}
		limit = parsed
	}

	offset := 0
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid offset format")
		}
		offset = parsed
	}

	resp, err := h.historyService.GetPurchaseHistory(c.Request().Context(), &historyapp.GetPurchaseHistoryRequest{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return err
	}

	items := make([]PurchaseModel, len(resp.Purchases))
	for i, p := range resp.Purchases {
		items[i] = toPurchaseModel(p)
	}

	return c.JSON(http.StatusOK, PurchaseHistoryResponse{
		Purchases: items,
		Limit:     resp.Limit,
		Offset:    resp.Offset,
	})
}

// GetPurchase 購入記録取得ハンドラー
// @Summary 購入記録を取得
// @Description 購入IDで購入記録を1件取得します
// @Tags history
// @Produce json
// @Security Bearer
// @Param purchase_id path string true "購入ID"
// @Success 200 {object} PurchaseModel "購入記録"
// @Failure 404 {object} ErrorResponse "購入記録が存在しない"
// @Router /purchases/{purchase_id} [get]
func (h *HistoryHandler) GetPurchase(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "user_id not found in token")
	}

	purchaseID := c.Param("purchase_id")
	if purchaseID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "purchase_id is required")
	}

	resp, err := h.historyService.GetPurchase(c.Request().Context(), &historyapp.GetPurchaseRequest{
		PurchaseID: purchaseID,
	})
	if err != nil {
		return err
	}

	// 他ユーザーの購入記録は存在しないものとして扱う
	if resp.Purchase.UserID() != userID {
		return purchase.ErrPurchaseNotFound
	}

	return c.JSON(http.StatusOK, toPurchaseModel(resp.Purchase))
}
