package mysql

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"clicker-server/internal/domain/intent"
	"clicker-server/internal/domain/purchase"
)

var purchaseColumns = []string{
	"purchase_id", "user_id", "item_id", "intent_id",
	"origin_chain_id", "origin_amount", "origin_tx", "dest_tx",
	"status", "error_text", "effect_applied", "created_at", "updated_at",
}

func TestPurchaseRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &PurchaseRepository{
		db:     &DB{DB: db},
		tracer: otel.Tracer("test"),
	}

	tests := []struct {
		name      string
		purchase  *purchase.Purchase
		setupMock func()
		wantError bool
	}{
		{
			name:     "正常系: 購入記録を保存",
			purchase: purchase.MustNewPurchase("pur_123", "user123", "click_power_1", 8453, "1000000"),
			setupMock: func() {
				mock.ExpectExec(`INSERT INTO purchases`).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name:     "異常系: DBエラー",
			purchase: purchase.MustNewPurchase("pur_123", "user123", "click_power_1", 8453, "1000000"),
			setupMock: func() {
				mock.ExpectExec(`INSERT INTO purchases`).
					WillReturnError(sql.ErrConnDone)
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()
			ctx := context.Background()
			err := repo.Save(ctx, tt.purchase)

			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPurchaseRepository_FindByPurchaseID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &PurchaseRepository{
		db:     &DB{DB: db},
		tracer: otel.Tracer("test"),
	}

	now := time.Now()

	tests := []struct {
		name       string
		purchaseID string
		setupMock  func()
		check      func(*testing.T, *purchase.Purchase)
		wantError  bool
		errorType  error
	}{
		{
			name:       "正常系: 購入記録が見つかる",
			purchaseID: "pur_123",
			setupMock: func() {
				rows := sqlmock.NewRows(purchaseColumns).
					AddRow("pur_123", "user123", "click_power_1", "int_456",
						int64(8453), "1000000", "0xabc", "0xdef",
						"completed", "", true, now, now)
				mock.ExpectQuery(`SELECT purchase_id, user_id, item_id, intent_id`).
					WithArgs("pur_123").
					WillReturnRows(rows)
			},
			check: func(t *testing.T, p *purchase.Purchase) {
				assert.Equal(t, "pur_123", p.PurchaseID())
				assert.Equal(t, "user123", p.UserID())
				assert.Equal(t, "int_456", p.IntentID())
				assert.Equal(t, intent.StatusCompleted, p.Status())
				assert.True(t, p.EffectApplied())
			},
		},
		{
			name:       "異常系: 購入記録が見つからない",
			purchaseID: "pur_999",
			setupMock: func() {
				mock.ExpectQuery(`SELECT purchase_id, user_id, item_id, intent_id`).
					WithArgs("pur_999").
					WillReturnError(sql.ErrNoRows)
			},
			wantError: true,
			errorType: purchase.ErrPurchaseNotFound,
		},
		{
			name:       "異常系: DBエラー",
			purchaseID: "pur_123",
			setupMock: func() {
				mock.ExpectQuery(`SELECT purchase_id, user_id, item_id, intent_id`).
					WithArgs("pur_123").
					WillReturnError(sql.ErrConnDone)
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()
			ctx := context.Background()
			got, err := repo.FindByPurchaseID(ctx, tt.purchaseID)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorType != nil {
					assert.ErrorIs(t, err, tt.errorType)
				}
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				tt.check(t, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPurchaseRepository_FindByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &PurchaseRepository{
		db:     &DB{DB: db},
		tracer: otel.Tracer("test"),
	}

	now := time.Now()

	t.Run("正常系: 購入記録一覧を取得", func(t *testing.T) {
		rows := sqlmock.NewRows(purchaseColumns).
			AddRow("pur_2", "user123", "auto_rate_1", "int_2",
				int64(8453), "5000000", "0x2", "", "processing", "", false, now, now).
			AddRow("pur_1", "user123", "click_power_1", "int_1",
				int64(8453), "1000000", "0x1", "0x1d", "completed", "", true, now, now)
		mock.ExpectQuery(`SELECT purchase_id, user_id, item_id, intent_id`).
			WithArgs("user123", 20, 0).
			WillReturnRows(rows)

		got, err := repo.FindByUserID(context.Background(), "user123", 20, 0, "")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "pur_2", got[0].PurchaseID())
		assert.Equal(t, intent.StatusProcessing, got[0].Status())
		assert.Equal(t, "pur_1", got[1].PurchaseID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("正常系: ステータスフィルタ付きで取得", func(t *testing.T) {
		rows := sqlmock.NewRows(purchaseColumns).
			AddRow("pur_1", "user123", "click_power_1", "int_1",
				int64(8453), "1000000", "0x1", "0x1d", "completed", "", true, now, now)
		mock.ExpectQuery(`SELECT purchase_id, user_id, item_id, intent_id`).
			WithArgs("user123", "completed", 20, 0).
			WillReturnRows(rows)

		got, err := repo.FindByUserID(context.Background(), "user123", 20, 0, intent.StatusCompleted)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, intent.StatusCompleted, got[0].Status())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("正常系: 該当なしで空のリスト", func(t *testing.T) {
		rows := sqlmock.NewRows(purchaseColumns)
		mock.ExpectQuery(`SELECT purchase_id, user_id, item_id, intent_id`).
			WithArgs("user999", 20, 0).
			WillReturnRows(rows)

		got, err := repo.FindByUserID(context.Background(), "user999", 20, 0, "")
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
