package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"clicker-server/internal/domain/gamestate"
	"clicker-server/internal/domain/giftcode"
	"clicker-server/internal/domain/intent"
	"clicker-server/internal/domain/purchase"
	"clicker-server/internal/domain/shop"
	"clicker-server/internal/domain/wallet"
	otelinfra "clicker-server/internal/infrastructure/observability/otel"
)

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			return handleError(c, err, logger)
		}
	}
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	// ウォレット関連エラー
	if errors.Is(err, wallet.ErrNotConnected) {
		logger.Warn(ctx, "Wallet not connected", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "wallet_not_connected",
			Message: err.Error(),
		})
	}

	if errors.Is(err, wallet.ErrNoWalletDetected) {
		logger.Warn(ctx, "No wallet detected", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "no_wallet_detected",
			Message: err.Error(),
		})
	}

	if errors.Is(err, wallet.ErrUserRejected) {
		logger.Warn(ctx, "User rejected wallet request", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "user_rejected",
			Message: err.Error(),
		})
	}

	// リレー関連エラー
	if errors.Is(err, intent.ErrReceiptTimeout) {
		logger.Warn(ctx, "Receipt wait timed out", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusGatewayTimeout, ErrorResponse{
			Error:   "receipt_timeout",
			Message: err.Error(),
		})
	}

	if errors.Is(err, intent.ErrIntentNotFound) {
		logger.Warn(ctx, "Intent not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "intent_not_found",
			Message: err.Error(),
		})
	}

	var remoteErr *intent.RemoteError
	if errors.As(err, &remoteErr) {
		logger.Warn(ctx, "Relay request failed", map[string]interface{}{
			"status_code": remoteErr.StatusCode,
			"code":        remoteErr.Code,
			"error":       remoteErr.Error(),
		})
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "relay_error",
			Message: remoteErr.Error(),
			Code:    remoteErr.Code,
		})
	}

	// ゲーム状態関連エラー
	if errors.Is(err, gamestate.ErrInvalidUserID) || errors.Is(err, gamestate.ErrInvalidAmount) {
		logger.Warn(ctx, "Invalid game state request", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	}

	// ショップ・購入関連エラー
	if errors.Is(err, shop.ErrItemNotFound) {
		logger.Warn(ctx, "Item not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "item_not_found",
			Message: err.Error(),
		})
	}

	if errors.Is(err, purchase.ErrPurchaseNotFound) {
		logger.Warn(ctx, "Purchase not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "purchase_not_found",
			Message: err.Error(),
		})
	}

	// ギフトコード関連エラー
	if errors.Is(err, giftcode.ErrCodeNotFound) {
		logger.Warn(ctx, "Gift code not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "code_not_found",
			Message: err.Error(),
		})
	}

	if errors.Is(err, giftcode.ErrCodeNotRedeemable) {
		logger.Warn(ctx, "Gift code not redeemable", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "code_not_redeemable",
			Message: err.Error(),
		})
	}

	if errors.Is(err, giftcode.ErrUserAlreadyRedeemed) {
		logger.Warn(ctx, "User already redeemed", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "user_already_redeemed",
			Message: err.Error(),
		})
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message := ""
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}
