package handler

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"clicker-server/internal/domain/gamestate"
	"clicker-server/internal/domain/giftcode"
	"clicker-server/internal/domain/intent"
	"clicker-server/internal/domain/purchase"
	"clicker-server/internal/domain/wallet"
)

// MockGameStateRepository モックゲーム状態リポジトリ
type MockGameStateRepository struct {
	mock.Mock
}

func (m *MockGameStateRepository) Load(ctx context.Context, userID string) (gamestate.Snapshot, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(gamestate.Snapshot), args.Error(1)
}

func (m *MockGameStateRepository) Save(ctx context.Context, userID string, snap gamestate.Snapshot) error {
	args := m.Called(ctx, userID, snap)
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

// MockGiftCodeRepository モックギフトコードリポジトリ
type MockGiftCodeRepository struct {
	mock.Mock
}

func (m *MockGiftCodeRepository) FindByCode(ctx context.Context, code string) (*giftcode.GiftCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*giftcode.GiftCode), args.Error(1)
}

func (m *MockGiftCodeRepository) Update(ctx context.Context, tx *sql.Tx, gc *giftcode.GiftCode) error {
	args := m.Called(ctx, tx, gc)
	return args.Error(0)
}

func (m *MockGiftCodeRepository) HasUserRedeemed(ctx context.Context, code string, userID string) (bool, error) {
	args := m.Called(ctx, code, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGiftCodeRepository) SaveRedemption(ctx context.Context, tx *sql.Tx, redemption *giftcode.Redemption) error {
	args := m.Called(ctx, tx, redemption)
	return args.Error(0)
}

// MockTransactionManager モックトランザクションマネージャー
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

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
