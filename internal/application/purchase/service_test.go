package purchase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"clicker-server/internal/domain/intent"
	"clicker-server/internal/domain/purchase"
	"clicker-server/internal/domain/shop"
	"clicker-server/internal/domain/wallet"
	otelinfra "clicker-server/internal/infrastructure/observability/otel"
)

// MockGateway モックリレーゲートウェイ
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) QuoteIntent(ctx context.Context, req *intent.QuoteRequest) (*intent.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intent.Quote), args.Error(1)
}

func (m *MockGateway) CommitIntent(ctx context.Context, in *intent.Intent) (*intent.Commitment, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intent.Commitment), args.Error(1)
}

func (m *MockGateway) ExecuteIntent(ctx context.Context, intentID, signature string) (string, error) {
	args := m.Called(ctx, intentID, signature)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) GetIntentReceipt(ctx context.Context, intentID string) (*intent.Receipt, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intent.Receipt), args.Error(1)
}

func (m *MockGateway) WaitReceipt(ctx context.Context, intentID string) (*intent.Receipt, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intent.Receipt), args.Error(1)
}

func (m *MockGateway) GetIntent(ctx context.Context, intentID string) (*intent.Intent, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intent.Intent), args.Error(1)
}

func (m *MockGateway) SearchIntents(ctx context.Context, q *intent.SearchQuery) (*intent.SearchResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intent.SearchResult), args.Error(1)
}

func (m *MockGateway) GetChains(ctx context.Context) ([]intent.Chain, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]intent.Chain), args.Error(1)
}

func (m *MockGateway) GetTokenList(ctx context.Context) ([]intent.Token, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]intent.Token), args.Error(1)
}

func (m *MockGateway) GetTokenPrices(ctx context.Context) ([]intent.TokenPrice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]intent.TokenPrice), args.Error(1)
}

// MockConnector モックウォレットコネクター
type MockConnector struct {
	mock.Mock
}

func (m *MockConnector) Connect(ctx context.Context) (*wallet.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Session), args.Error(1)
}

func (m *MockConnector) Disconnect() {
	m.Called()
}

func (m *MockConnector) IsConnected() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockConnector) Address() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockConnector) ChainID() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConnector) Sign(intentID string) (string, error) {
	args := m.Called(intentID)
	return args.String(0), args.Error(1)
}

// MockEffectApplier モック効果適用サービス
type MockEffectApplier struct {
	mock.Mock
}

func (m *MockEffectApplier) ApplyEffect(ctx context.Context, userID string, effect shop.Effect) error {
	args := m.Called(ctx, userID, effect)
	return args.Error(0)
}

// MockPurchaseRepository モック購入記録リポジトリ
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Save(ctx context.Context, p *purchase.Purchase) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPurchaseRepository) FindByPurchaseID(ctx context.Context, purchaseID string) (*purchase.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByIntentID(ctx context.Context, intentID string) (*purchase.Purchase, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByUserID(ctx context.Context, userID string, limit, offset int, status intent.Status) ([]*purchase.Purchase, error) {
	args := m.Called(ctx, userID, limit, offset, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*purchase.Purchase), args.Error(1)
}

func newTestPurchaseService(gateway *MockGateway, connector *MockConnector, effects *MockEffectApplier, repo *MockPurchaseRepository) *PurchaseApplicationService {
	otel.SetMeterProvider(metricnoop.NewMeterProvider())
	logger := otelinfra.NewLogger(tracenoop.NewTracerProvider().Tracer("test"))
	metrics, err := otelinfra.NewMetrics("test-meter")
	if err != nil {
		panic(err)
	}
	return NewPurchaseApplicationService(
		gateway, connector, effects, repo,
		8453, "0xusdc", "0xtreasury",
		logger, metrics,
	)
}

// setupHappyGateway quote→commit→executeまでの正常系モックを登録する
func setupHappyGateway(gateway *MockGateway, connector *MockConnector) {
	connector.On("IsConnected").Return(true)
	connector.On("Address").Return("0xowner", nil)
	connector.On("Sign", "int_123").Return("0xsig", nil)

	quote := &intent.Quote{
		Intent: intent.Intent{
			IntentID:      "int_123",
			OriginChainID: 1,
			DestChainID:   8453,
			OriginAmount:  "1000000",
			DestAmount:    "990000",
		},
	}
	gateway.On("QuoteIntent", mock.Anything, mock.Anything).Return(quote, nil)
	gateway.On("CommitIntent", mock.Anything, &quote.Intent).Return(&intent.Commitment{
		IntentID:  "int_123",
		ExpiresAt: 9999999999,
	}, nil)
	gateway.On("ExecuteIntent", mock.Anything, "int_123", "0xsig").Return("0xorigin", nil)
}

func TestPurchaseApplicationService_Purchase(t *testing.T) {
	req := &PurchaseRequest{
		UserID:        "user123",
		ItemID:        "click_power_1",
		OriginChainID: 1,
		OriginToken:   "0xeth",
	}

	t.Run("正常系: completedで効果が正確に1回適用される", func(t *testing.T) {
		gateway := new(MockGateway)
		connector := new(MockConnector)
		effects := new(MockEffectApplier)
		repo := new(MockPurchaseRepository)

		setupHappyGateway(gateway, connector)
		gateway.On("WaitReceipt", mock.Anything, "int_123").Return(&intent.Receipt{
			IntentID: "int_123",
			Status:   intent.StatusCompleted,
			OriginTx: "0xorigin",
			DestTx:   "0xdest",
		}, nil)
		effects.On("ApplyEffect", mock.Anything, "user123", mock.Anything).Return(nil).Once()
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := newTestPurchaseService(gateway, connector, effects, repo)

		var phases []string
		resp, err := svc.Purchase(context.Background(), req, func(phase string) {
			phases = append(phases, phase)
		})

		require.NoError(t, err)
		assert.Equal(t, intent.StatusCompleted, resp.Receipt.Status)
		assert.True(t, resp.EffectApplied)
		assert.Equal(t, "int_123", resp.IntentID)

		// フェーズラベルは各リモートステップの直前に正確な文言で通知される
		assert.Equal(t, []string{
			"Getting best route…",
			"Locking in rate…",
			"Confirm in your wallet…",
			"Waiting for confirmation…",
		}, phases)

		effects.AssertNumberOfCalls(t, "ApplyEffect", 1)
	})

	t.Run("正常系: failedは効果なしでレシートを返す（エラーにしない）", func(t *testing.T) {
		gateway := new(MockGateway)
		connector := new(MockConnector)
		effects := new(MockEffectApplier)
		repo := new(MockPurchaseRepository)

		setupHappyGateway(gateway, connector)
		gateway.On("WaitReceipt", mock.Anything, "int_123").Return(&intent.Receipt{
			IntentID:  "int_123",
			Status:    intent.StatusFailed,
			ErrorText: "insufficient liquidity",
		}, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := newTestPurchaseService(gateway, connector, effects, repo)
		resp, err := svc.Purchase(context.Background(), req, nil)

		require.NoError(t, err)
		assert.Equal(t, intent.StatusFailed, resp.Receipt.Status)
		assert.False(t, resp.EffectApplied)
		effects.AssertNotCalled(t, "ApplyEffect")
	})

	t.Run("正常系: refundedも効果なしでレシートを返す", func(t *testing.T) {
		gateway := new(MockGateway)
		connector := new(MockConnector)
		effects := new(MockEffectApplier)
		repo := new(MockPurchaseRepository)

		setupHappyGateway(gateway, connector)
		gateway.On("WaitReceipt", mock.Anything, "int_123").Return(&intent.Receipt{
			IntentID: "int_123",
			Status:   intent.StatusRefunded,
		}, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := newTestPurchaseService(gateway, connector, effects, repo)
		resp, err := svc.Purchase(context.Background(), req, nil)

		require.NoError(t, err)
		assert.Equal(t, intent.StatusRefunded, resp.Receipt.Status)
		assert.False(t, resp.EffectApplied)
		effects.AssertNotCalled(t, "ApplyEffect")
	})

	t.Run("異常系: ウォレット未接続は即座にErrNotConnected", func(t *testing.T) {
		gateway := new(MockGateway)
		connector := new(MockConnector)
		effects := new(MockEffectApplier)
		repo := new(MockPurchaseRepository)

		connector.On("IsConnected").Return(false)

		svc := newTestPurchaseService(gateway, connector, effects, repo)
		resp, err := svc.Purchase(context.Background(), req, nil)

		assert.ErrorIs(t, err, wallet.ErrNotConnected)
		assert.Nil(t, resp)
		gateway.AssertNotCalled(t, "QuoteIntent")
	})

	t.Run("異常系: 存在しないアイテム", func(t *testing.T) {
		gateway := new(MockGateway)
		connector := new(MockConnector)
		effects := new(MockEffectApplier)
		repo := new(MockPurchaseRepository)

		connector.On("IsConnected").Return(true)
		connector.On("Address").Return("0xowner", nil)

		svc := newTestPurchaseService(gateway, connector, effects, repo)
		_, err := svc.Purchase(context.Background(), &PurchaseRequest{
			UserID: "user123",
			ItemID: "no_such_item",
		}, nil)

		assert.ErrorIs(t, err, shop.ErrItemNotFound)
	})

	t.Run("異常系: 見積もり失敗はRemoteErrorのまま伝播する", func(t *testing.T) {
		gateway := new(MockGateway)
		connector := new(MockConnector)
		effects := new(MockEffectApplier)
		repo := new(MockPurchaseRepository)

		connector.On("IsConnected").Return(true)
		connector.On("Address").Return("0xowner", nil)
		remoteErr := intent.NewRemoteError(502, "route_unavailable", "no route found")
		gateway.On("QuoteIntent", mock.Anything, mock.Anything).Return(nil, remoteErr)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := newTestPurchaseService(gateway, connector, effects, repo)
		_, err := svc.Purchase(context.Background(), req, nil)

		var got *intent.RemoteError
		require.ErrorAs(t, err, &got)
		assert.Equal(t, "no route found", got.Message)
		gateway.AssertNotCalled(t, "CommitIntent")
	})

	t.Run("異常系: 拒否系メッセージはErrUserRejectedに正規化される", func(t *testing.T) {
		gateway := new(MockGateway)
		connector := new(MockConnector)
		effects := new(MockEffectApplier)
		repo := new(MockPurchaseRepository)

		connector.On("IsConnected").Return(true)
		connector.On("Address").Return("0xowner", nil)
		connector.On("Sign", "int_123").Return("0xsig", nil)

		quote := &intent.Quote{Intent: intent.Intent{IntentID: "int_123"}}
		gateway.On("QuoteIntent", mock.Anything, mock.Anything).Return(quote, nil)
		gateway.On("CommitIntent", mock.Anything, mock.Anything).Return(&intent.Commitment{IntentID: "int_123"}, nil)
		gateway.On("ExecuteIntent", mock.Anything, "int_123", "0xsig").
			Return("", intent.NewRemoteError(400, "user_rejected", "User rejected the request"))
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := newTestPurchaseService(gateway, connector, effects, repo)
		_, err := svc.Purchase(context.Background(), req, nil)

		assert.ErrorIs(t, err, wallet.ErrUserRejected)
		effects.AssertNotCalled(t, "ApplyEffect")
	})

	t.Run("異常系: レシート待機タイムアウトはErrReceiptTimeout", func(t *testing.T) {
		gateway := new(MockGateway)
		connector := new(MockConnector)
		effects := new(MockEffectApplier)
		repo := new(MockPurchaseRepository)

		setupHappyGateway(gateway, connector)
		gateway.On("WaitReceipt", mock.Anything, "int_123").Return(nil, intent.ErrReceiptTimeout)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		svc := newTestPurchaseService(gateway, connector, effects, repo)
		_, err := svc.Purchase(context.Background(), req, nil)

		assert.ErrorIs(t, err, intent.ErrReceiptTimeout)
		effects.AssertNotCalled(t, "ApplyEffect")
	})
}

func TestPurchaseApplicationService_GetReceipt(t *testing.T) {
	gateway := new(MockGateway)
	connector := new(MockConnector)
	effects := new(MockEffectApplier)
	repo := new(MockPurchaseRepository)

	gateway.On("GetIntentReceipt", mock.Anything, "int_123").Return(&intent.Receipt{
		IntentID: "int_123",
		Status:   intent.StatusCompleted,
	}, nil)

	svc := newTestPurchaseService(gateway, connector, effects, repo)
	resp, err := svc.GetReceipt(context.Background(), &GetReceiptRequest{IntentID: "int_123"})

	require.NoError(t, err)
	assert.Equal(t, intent.StatusCompleted, resp.Receipt.Status)
}

func TestNormalizeRejection(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "拒否メッセージのRemoteErrorは正規化される",
			err:  intent.NewRemoteError(400, "", "User rejected the request"),
			want: true,
		},
		{
			name: "user_rejectedコードは正規化される",
			err:  intent.NewRemoteError(400, "USER_REJECTED", ""),
			want: true,
		},
		{
			name: "deniedメッセージは正規化される",
			err:  intent.NewRemoteError(400, "", "signature request denied"),
			want: true,
		},
		{
			name: "その他のRemoteErrorはそのまま",
			err:  intent.NewRemoteError(500, "internal", "something broke"),
			want: false,
		},
		{
			name: "wallet.ErrUserRejectedはそのまま",
			err:  wallet.ErrUserRejected,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeRejection(tt.err)
			if tt.want {
				assert.ErrorIs(t, got, wallet.ErrUserRejected)
			} else {
				assert.NotErrorIs(t, got, wallet.ErrUserRejected)
			}
		})
	}
}

// 時刻を固定してもIDは衝突しない（エントロピー部分の検証）
func TestPurchaseApplicationService_GeneratePurchaseID(t *testing.T) {
	svc := newTestPurchaseService(new(MockGateway), new(MockConnector), new(MockEffectApplier), new(MockPurchaseRepository))
	fixed := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc.nowFn = func() time.Time { return fixed }

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := svc.generatePurchaseID()
		assert.True(t, strings.HasPrefix(id, "pur_"))
		_, dup := seen[id]
		require.False(t, dup, "duplicate purchase id: %s", id)
		seen[id] = struct{}{}
	}
}
