package handler

import (
	"net/http"

	"clicker-server/internal/domain/intent"

	"github.com/labstack/echo/v4"
)

// CatalogHandler リレーカタログ関連ハンドラー
// 対応チェーン・トークン・価格のリレー応答をそのまま中継する
type CatalogHandler struct {
	gateway intent.Gateway
}

// NewCatalogHandler 新しいCatalogHandlerを作成
func NewCatalogHandler(gateway intent.Gateway) *CatalogHandler {
	return &CatalogHandler{
		gateway: gateway,
	}
}

// GetChains 対応チェーン一覧ハンドラー
// @Summary 対応チェーン一覧を取得
// @Description リレーサービスが対応する送金元チェーンの一覧を返します
// @Tags catalog
// @Produce json
// @Security Bearer
// @Success 200 {object} ChainsResponse "チェーン一覧"
// @Failure 502 {object} ErrorResponse "リレーエラー"
// @Router /catalog/chains [get]
func (h *CatalogHandler) GetChains(c echo.Context) error {
	chains, err := h.gateway.GetChains(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ChainsResponse{Chains: chains})
}

// GetTokens 対応トークン一覧ハンドラー
// @Summary 対応トークン一覧を取得
// @Description リレーサービスが対応するトークンの一覧を返します
// @Tags catalog
// @Produce json
// @Security Bearer
// @Success 200 {object} TokensResponse "トークン一覧"
// @Failure 502 {object} ErrorResponse "リレーエラー"
// @Router /catalog/tokens [get]
func (h *CatalogHandler) GetTokens(c echo.Context) error {
	tokens, err := h.gateway.GetTokenList(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TokensResponse{Tokens: tokens})
}

// GetPrices トークン価格一覧ハンドラー
// @Summary トークン価格一覧を取得
// @Description 対応トークンのUSD建て価格の一覧を返します
// @Tags catalog
// @Produce json
// @Security Bearer
// @Success 200 {object} PricesResponse "価格一覧"
// @Failure 502 {object} ErrorResponse "リレーエラー"
// @Router /catalog/prices [get]
func (h *CatalogHandler) GetPrices(c echo.Context) error {
	prices, err := h.gateway.GetTokenPrices(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, PricesResponse{Prices: prices})
}
