package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"clicker-server/internal/domain/gamestate"
	"clicker-server/internal/domain/giftcode"
	"clicker-server/internal/domain/intent"
	"clicker-server/internal/domain/purchase"
	"clicker-server/internal/domain/shop"
	"clicker-server/internal/domain/wallet"
	otelinfra "clicker-server/internal/infrastructure/observability/otel"
)

func newErrorHandlerContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder, echo.MiddlewareFunc) {
	t.Helper()
	tracer := noop.NewTracerProvider().Tracer("test")
	logger := otelinfra.NewLogger(tracer)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return c, rec, ErrorHandlerMiddleware(logger)
}

func TestErrorHandlerMiddleware_NoError(t *testing.T) {
	c, rec, mw := newErrorHandlerContext(t)

	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	err := handler(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestErrorHandlerMiddleware_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "ウォレット未接続は409",
			err:        wallet.ErrNotConnected,
			wantStatus: http.StatusConflict,
			wantError:  "wallet_not_connected",
		},
		{
			name:       "ウォレット未検出は409",
			err:        wallet.ErrNoWalletDetected,
			wantStatus: http.StatusConflict,
			wantError:  "no_wallet_detected",
		},
		{
			name:       "ユーザー拒否は400",
			err:        wallet.ErrUserRejected,
			wantStatus: http.StatusBadRequest,
			wantError:  "user_rejected",
		},
		{
			name:       "レシート待機タイムアウトは504",
			err:        intent.ErrReceiptTimeout,
			wantStatus: http.StatusGatewayTimeout,
			wantError:  "receipt_timeout",
		},
		{
			name:       "インテント未検出は404",
			err:        intent.ErrIntentNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "intent_not_found",
		},
		{
			name:       "リレーエラーは502",
			err:        intent.NewRemoteError(422, "no_route", "no route found"),
			wantStatus: http.StatusBadGateway,
			wantError:  "relay_error",
		},
		{
			name:       "無効なユーザーIDは400",
			err:        gamestate.ErrInvalidUserID,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name:       "アイテム未検出は404",
			err:        shop.ErrItemNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "item_not_found",
		},
		{
			name:       "購入記録未検出は404",
			err:        purchase.ErrPurchaseNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "purchase_not_found",
		},
		{
			name:       "ギフトコード未検出は404",
			err:        giftcode.ErrCodeNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "code_not_found",
		},
		{
			name:       "引き換え不可コードは400",
			err:        giftcode.ErrCodeNotRedeemable,
			wantStatus: http.StatusBadRequest,
			wantError:  "code_not_redeemable",
		},
		{
			name:       "引き換え済みユーザーは400",
			err:        giftcode.ErrUserAlreadyRedeemed,
			wantStatus: http.StatusBadRequest,
			wantError:  "user_already_redeemed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec, mw := newErrorHandlerContext(t)

			handler := mw(func(c echo.Context) error {
				return tt.err
			})

			err := handler(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantError)
		})
	}
}

func TestErrorHandlerMiddleware_WrappedRemoteError(t *testing.T) {
	c, rec, mw := newErrorHandlerContext(t)

	handler := mw(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	})

	err := handler(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestErrorHandlerMiddleware_UnexpectedError(t *testing.T) {
	c, rec, mw := newErrorHandlerContext(t)

	handler := mw(func(c echo.Context) error {
		return errors.New("something broke")
	})

	err := handler(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_server_error")
	// 内部エラーの詳細は漏らさない
	assert.NotContains(t, rec.Body.String(), "something broke")
}
