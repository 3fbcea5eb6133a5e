package wallet

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"clicker-server/internal/domain/wallet"
	"clicker-server/internal/infrastructure/config"
	otelinfra "clicker-server/internal/infrastructure/observability/otel"
)

// EnvConnector 設定で与えられた署名セッションを使うConnector実装
// ホスト環境にウォレットアドレスが設定されていない場合、
// Connectはwallet.ErrNoWalletDetectedを返す
type EnvConnector struct {
	address    string
	chainID    int64
	signingKey string
	logger     *otelinfra.Logger
	tracer     trace.Tracer

	mu        sync.Mutex
	connected bool
}

// NewEnvConnector 新しいEnvConnectorを作成
func NewEnvConnector(cfg *config.WalletConfig, logger *otelinfra.Logger) *EnvConnector {
	return &EnvConnector{
		address:    cfg.Address,
		chainID:    cfg.ChainID,
		signingKey: cfg.SigningKey,
		logger:     logger,
		tracer:     otel.Tracer("wallet-connector"),
	}
}

// Connect ホスト環境の署名プロバイダへ接続する
// 再接続は冪等で、アドレスを再解決するだけ
func (c *EnvConnector) Connect(ctx context.Context) (*wallet.Session, error) {
	ctx, span := c.tracer.Start(ctx, "EnvConnector.Connect")
	defer span.End()

	if c.address == "" {
		err := wallet.ErrNoWalletDetected
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	span.SetAttributes(
		attribute.String("wallet.address", c.address),
		attribute.Int64("wallet.chain_id", c.chainID),
	)
	span.SetStatus(otelcodes.Ok, "wallet connected")

	c.logger.Info(ctx, "Wallet connected", map[string]interface{}{
		"address":  c.address,
		"chain_id": c.chainID,
	})

	return &wallet.Session{
		Address: c.address,
		ChainID: c.chainID,
	}, nil
}

// Disconnect ローカルのセッション状態をクリアする
func (c *EnvConnector) Disconnect() {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()
}

// IsConnected 接続中かどうかを返す
func (c *EnvConnector) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Address 接続中のアドレスを返す
func (c *EnvConnector) Address() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return "", wallet.ErrNotConnected
	}
	return c.address, nil
}

// ChainID 接続中のチェーンIDを返す
func (c *EnvConnector) ChainID() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return 0, wallet.ErrNotConnected
	}
	return c.chainID, nil
}

// Sign インテントIDに対する署名を返す
// 署名鍵が設定されていない場合は空文字列を返す（リレー側が署名不要と判断する）
func (c *EnvConnector) Sign(intentID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return "", wallet.ErrNotConnected
	}
	if c.signingKey == "" {
		return "", nil
	}

	mac := hmac.New(sha256.New, []byte(c.signingKey))
	mac.Write([]byte(intentID))
	return hex.EncodeToString(mac.Sum(nil)), nil
}
