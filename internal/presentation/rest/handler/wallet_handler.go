package handler

import (
	"net/http"

	"clicker-server/internal/domain/wallet"

	"github.com/labstack/echo/v4"
)

// WalletHandler ウォレット接続関連ハンドラー
type WalletHandler struct {
	connector wallet.Connector
}

// NewWalletHandler 新しいWalletHandlerを作成
func NewWalletHandler(connector wallet.Connector) *WalletHandler {
	return &WalletHandler{
		connector: connector,
	}
}

// Connect ウォレット接続ハンドラー
// @Summary ウォレットを接続
// @Description 署名プロバイダへ接続しセッションを確立します（冪等）
// @Tags wallet
// @Produce json
// @Security Bearer
// @Success 200 {object} WalletStatusResponse "接続済みセッション"
// @Failure 409 {object} ErrorResponse "署名プロバイダが存在しない"
// @Router /wallet/connect [post]
func (h *WalletHandler) Connect(c echo.Context) error {
	session, err := h.connector.Connect(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, WalletStatusResponse{
		Connected: true,
		Address:   session.Address,
		ChainID:   session.ChainID,
	})
}

// Disconnect ウォレット切断ハンドラー
// @Summary ウォレットを切断
// @Description ローカルセッションを破棄します（オンチェーン権限には触れません）
// @Tags wallet
// @Produce json
// @Security Bearer
// @Success 200 {object} WalletStatusResponse "切断後の状態"
// @Router /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(c echo.Context) error {
	h.connector.Disconnect()

	return c.JSON(http.StatusOK, WalletStatusResponse{
		Connected: false,
	})
}

// GetStatus ウォレット状態取得ハンドラー
// @Summary ウォレット接続状態を取得
// @Description 現在の接続状態・アドレス・チェーンIDを返します
// @Tags wallet
// @Produce json
// @Security Bearer
// @Success 200 {object} WalletStatusResponse "接続状態"
// @Router /wallet [get]
func (h *WalletHandler) GetStatus(c echo.Context) error {
	if !h.connector.IsConnected() {
		return c.JSON(http.StatusOK, WalletStatusResponse{
			Connected: false,
		})
	}

	address, err := h.connector.Address()
	if err != nil {
		return err
	}
	chainID, err := h.connector.ChainID()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, WalletStatusResponse{
		Connected: true,
		Address:   address,
		ChainID:   chainID,
	})
}
