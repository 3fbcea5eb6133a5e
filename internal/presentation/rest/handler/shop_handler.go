package handler

import (
	"net/http"

	purchaseapp "clicker-server/internal/application/purchase"
	"clicker-server/internal/domain/shop"

	"github.com/labstack/echo/v4"
)

// ShopHandler ショップ・購入関連ハンドラー
type ShopHandler struct {
	purchaseService *purchaseapp.PurchaseApplicationService
}

// NewShopHandler 新しいShopHandlerを作成
func NewShopHandler(purchaseService *purchaseapp.PurchaseApplicationService) *ShopHandler {
	return &ShopHandler{
		purchaseService: purchaseService,
	}
}

// ListItems ショップアイテム一覧ハンドラー
// @Summary ショップアイテム一覧を取得
// @Description 購入可能なアップグレードアイテムの一覧を返します
// @Tags shop
// @Produce json
// @Security Bearer
// @Success 200 {object} ListItemsResponse "アイテム一覧"
// @Router /shop/items [get]
func (h *ShopHandler) ListItems(c echo.Context) error {
	catalog := shop.Catalog()

	items := make([]ShopItemModel, len(catalog))
	for i, item := range catalog {
		items[i] = ShopItemModel{
			ID:                item.ID,
			Name:              item.Name,
			Description:       item.Description,
			PriceUSD:          item.PriceUSD,
			PriceAtomic:       item.PriceAtomic,
			EffectKind:        item.Effect.Kind.String(),
			EffectAmount:      item.Effect.Amount,
			EffectDurationSec: int64(item.Effect.Duration.Seconds()),
		}
	}

	return c.JSON(http.StatusOK, ListItemsResponse{Items: items})
}

// Purchase アイテム購入ハンドラー
// @Summary アイテムを購入
// @Description 暗号資産決済でアップグレードを購入し、完了時に効果を適用します
// @Tags shop
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body PurchaseItemRequest true "購入リクエスト"
// @Success 200 {object} PurchaseItemResponse "購入結果（failed/refundedを含む）"
// @Failure 400 {object} ErrorResponse "不正なリクエストまたはユーザー拒否"
// @Failure 404 {object} ErrorResponse "アイテムが存在しない"
// @Failure 409 {object} ErrorResponse "ウォレット未接続"
// @Failure 502 {object} ErrorResponse "リレーエラー"
// @Failure 504 {object} ErrorResponse "レシート待機タイムアウト"
// @Router /shop/purchase [post]
func (h *ShopHandler) Purchase(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "user_id not found in token")
	}

	var reqBody PurchaseItemRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if reqBody.ItemID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "item_id is required")
	}
	if reqBody.OriginChainID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "origin_chain_id is required")
	}

	req := &purchaseapp.PurchaseRequest{
		UserID:        userID,
		ItemID:        reqBody.ItemID,
		OriginChainID: reqBody.OriginChainID,
		OriginToken:   reqBody.OriginToken,
		SlippageBps:   reqBody.SlippageBps,
	}

	// フロー進行中に通知されたフェーズラベルをレスポンスに含める
	var phases []string
	resp, err := h.purchaseService.Purchase(c.Request().Context(), req, func(phase string) {
		phases = append(phases, phase)
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, PurchaseItemResponse{
		PurchaseID:    resp.PurchaseID,
		ItemID:        resp.ItemID,
		IntentID:      resp.IntentID,
		Receipt:       toReceiptModel(resp.Receipt),
		Phases:        phases,
		EffectApplied: resp.EffectApplied,
	})
}

// GetReceipt レシート再取得ハンドラー
// @Summary インテントのレシートを取得
// @Description レシート待機がタイムアウトした場合の再ポーリング用エンドポイント
// @Tags shop
// @Produce json
// @Security Bearer
// @Param intent_id path string true "インテントID"
// @Success 200 {object} ReceiptResponse "レシート"
// @Failure 404 {object} ErrorResponse "インテントが存在しない"
// @Failure 502 {object} ErrorResponse "リレーエラー"
// @Router /intents/{intent_id}/receipt [get]
func (h *ShopHandler) GetReceipt(c echo.Context) error {
	intentID := c.Param("intent_id")
	if intentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "intent_id is required")
	}

	resp, err := h.purchaseService.GetReceipt(c.Request().Context(), &purchaseapp.GetReceiptRequest{
		IntentID: intentID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ReceiptResponse{
		Receipt: toReceiptModel(resp.Receipt),
	})
}
