package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"clicker-server/internal/domain/intent"
	"clicker-server/internal/infrastructure/config"
	otelinfra "clicker-server/internal/infrastructure/observability/otel"
)

// Client リレーサービスAPIのHTTPクライアント
// 全エンドポイントはPOST + JSONボディで、Bearerトークンと
// APIキーヘッダーで認証する
type Client struct {
	baseURL        string
	bearerToken    string
	apiKey         string
	pollInterval   time.Duration
	receiptTimeout time.Duration
	httpClient     *http.Client
	logger         *otelinfra.Logger
	tracer         trace.Tracer
}

// NewClient 新しいClientを作成
func NewClient(cfg *config.RelayConfig, logger *otelinfra.Logger) *Client {
	return &Client{
		baseURL:        cfg.BaseURL,
		bearerToken:    cfg.BearerToken,
		apiKey:         cfg.APIKey,
		pollInterval:   cfg.PollInterval,
		receiptTimeout: cfg.ReceiptTimeout,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
		tracer: otel.Tracer("relay-client"),
	}
}

// QuoteIntent 見積もりを取得し、新しいインテントを採番する
func (c *Client) QuoteIntent(ctx context.Context, req *intent.QuoteRequest) (*intent.Quote, error) {
	ctx, span := c.tracer.Start(ctx, "RelayClient.QuoteIntent")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("relay.origin_chain_id", req.OriginChainID),
		attribute.Int64("relay.dest_chain_id", req.DestChainID),
		attribute.String("relay.amount", req.Amount),
	)

	var quote intent.Quote
	if err := c.post(ctx, "/v1/quoteIntent", req, &quote); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("relay.intent_id", quote.Intent.IntentID))
	span.SetStatus(otelcodes.Ok, "quote received")
	return &quote, nil
}

// CommitIntent 見積もりレートを確定する
// 見積もりの有効期限はクライアント側では検査しない
func (c *Client) CommitIntent(ctx context.Context, in *intent.Intent) (*intent.Commitment, error) {
	ctx, span := c.tracer.Start(ctx, "RelayClient.CommitIntent")
	defer span.End()

	span.SetAttributes(attribute.String("relay.intent_id", in.IntentID))

	var commitment intent.Commitment
	if err := c.post(ctx, "/v1/commitIntent", in, &commitment); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "intent committed")
	return &commitment, nil
}

// ExecuteIntent オンチェーン処理を起動し、発信トランザクションハッシュを返す
func (c *Client) ExecuteIntent(ctx context.Context, intentID, signature string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "RelayClient.ExecuteIntent")
	defer span.End()

	span.SetAttributes(attribute.String("relay.intent_id", intentID))

	req := executeRequest{
		IntentID:  intentID,
		Signature: signature,
	}

	var resp executeResponse
	if err := c.post(ctx, "/v1/executeIntent", req, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return "", err
	}

	span.SetAttributes(attribute.String("relay.tx_hash", resp.TxHash))
	span.SetStatus(otelcodes.Ok, "intent executed")
	return resp.TxHash, nil
}

// GetIntentReceipt レシートを1回だけ取得する
func (c *Client) GetIntentReceipt(ctx context.Context, intentID string) (*intent.Receipt, error) {
	ctx, span := c.tracer.Start(ctx, "RelayClient.GetIntentReceipt")
	defer span.End()

	span.SetAttributes(attribute.String("relay.intent_id", intentID))

	var receipt intent.Receipt
	if err := c.post(ctx, "/v1/getIntentReceipt", intentIDRequest{IntentID: intentID}, &receipt); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("relay.status", receipt.Status.String()))
	span.SetStatus(otelcodes.Ok, "receipt received")
	return &receipt, nil
}

// WaitReceipt 終端ステータスに達するまでレシートをポーリングする
// タイムアウト時はErrReceiptTimeoutを返す（インテント自体は後から決済される可能性がある）
func (c *Client) WaitReceipt(ctx context.Context, intentID string) (*intent.Receipt, error) {
	ctx, span := c.tracer.Start(ctx, "RelayClient.WaitReceipt")
	defer span.End()

	span.SetAttributes(
		attribute.String("relay.intent_id", intentID),
		attribute.String("relay.poll_interval", c.pollInterval.String()),
		attribute.String("relay.receipt_timeout", c.receiptTimeout.String()),
	)

	deadline := time.NewTimer(c.receiptTimeout)
	defer deadline.Stop()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	// 最初の1回は即時にポーリングする
	receipt, err := c.GetIntentReceipt(ctx, intentID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	if receipt.Status.Terminal() {
		span.SetAttributes(attribute.String("relay.status", receipt.Status.String()))
		span.SetStatus(otelcodes.Ok, "receipt settled")
		return receipt, nil
	}

	for {
		select {
		case <-ctx.Done():
			span.RecordError(ctx.Err())
			span.SetStatus(otelcodes.Error, ctx.Err().Error())
			return nil, ctx.Err()
		case <-deadline.C:
			err := intent.ErrReceiptTimeout
			c.logger.Warn(ctx, "Receipt wait timed out", map[string]interface{}{
				"intent_id": intentID,
				"timeout":   c.receiptTimeout.String(),
			})
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		case <-ticker.C:
			receipt, err := c.GetIntentReceipt(ctx, intentID)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(otelcodes.Error, err.Error())
				return nil, err
			}
			if receipt.Status.Terminal() {
				span.SetAttributes(attribute.String("relay.status", receipt.Status.String()))
				span.SetStatus(otelcodes.Ok, "receipt settled")
				return receipt, nil
			}
		}
	}
}

// GetIntent インテントを取得する
func (c *Client) GetIntent(ctx context.Context, intentID string) (*intent.Intent, error) {
	ctx, span := c.tracer.Start(ctx, "RelayClient.GetIntent")
	defer span.End()

	span.SetAttributes(attribute.String("relay.intent_id", intentID))

	var in intent.Intent
	if err := c.post(ctx, "/v1/getIntent", intentIDRequest{IntentID: intentID}, &in); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "intent received")
	return &in, nil
}

// SearchIntents 所有者アドレスでインテントを検索する
func (c *Client) SearchIntents(ctx context.Context, q *intent.SearchQuery) (*intent.SearchResult, error) {
	ctx, span := c.tracer.Start(ctx, "RelayClient.SearchIntents")
	defer span.End()

	span.SetAttributes(
		attribute.String("relay.owner_address", q.OwnerAddress),
		attribute.Int("relay.limit", q.Limit),
		attribute.Int("relay.offset", q.Offset),
	)

	req := searchRequest{
		Owner:  q.OwnerAddress,
		Limit:  q.Limit,
		Offset: q.Offset,
		Status: q.Status.String(),
	}

	var result intent.SearchResult
	if err := c.post(ctx, "/v1/searchIntents", req, &result); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("relay.total", result.Total))
	span.SetStatus(otelcodes.Ok, "intents searched")
	return &result, nil
}

// GetChains 対応チェーン一覧を取得する
func (c *Client) GetChains(ctx context.Context) ([]intent.Chain, error) {
	ctx, span := c.tracer.Start(ctx, "RelayClient.GetChains")
	defer span.End()

	var chains []intent.Chain
	if err := c.post(ctx, "/v1/getChains", struct{}{}, &chains); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "chains received")
	return chains, nil
}

// GetTokenList 対応トークン一覧を取得する
func (c *Client) GetTokenList(ctx context.Context) ([]intent.Token, error) {
	ctx, span := c.tracer.Start(ctx, "RelayClient.GetTokenList")
	defer span.End()

	var tokens []intent.Token
	if err := c.post(ctx, "/v1/getTokenList", struct{}{}, &tokens); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "tokens received")
	return tokens, nil
}

// GetTokenPrices トークン価格一覧を取得する
func (c *Client) GetTokenPrices(ctx context.Context) ([]intent.TokenPrice, error) {
	ctx, span := c.tracer.Start(ctx, "RelayClient.GetTokenPrices")
	defer span.End()

	var prices []intent.TokenPrice
	if err := c.post(ctx, "/v1/getTokenPrices", struct{}{}, &prices); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "prices received")
	return prices, nil
}

// post リクエストボディをJSONで送信し、レスポンスをoutにデコードする
// 非2xx応答と不正なレスポンスボディはRemoteErrorとして返す
func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.remoteError(ctx, path, resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return intent.NewRemoteError(resp.StatusCode, "malformed_response", "malformed response from relay")
	}

	return nil
}

// errorBody リレーサービスのエラーレスポンスボディ
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// remoteError 非2xx応答をRemoteErrorに変換する
// プロバイダのエラーメッセージが取得できた場合はそのまま保持する
func (c *Client) remoteError(ctx context.Context, path string, statusCode int, raw []byte) error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)

	c.logger.Error(ctx, "Relay request failed", nil, map[string]interface{}{
		"path":        path,
		"status_code": statusCode,
		"code":        body.Code,
		"message":     body.Message,
	})

	return intent.NewRemoteError(statusCode, body.Code, body.Message)
}

// executeRequest 実行リクエスト
type executeRequest struct {
	IntentID  string `json:"intentId"`
	Signature string `json:"signature,omitempty"`
}

// executeResponse 実行レスポンス
type executeResponse struct {
	TxHash string `json:"txHash"`
}

// intentIDRequest インテントID指定のリクエスト
type intentIDRequest struct {
	IntentID string `json:"intentId"`
}

// searchRequest インテント検索リクエスト
type searchRequest struct {
	Owner  string `json:"owner"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Status string `json:"status,omitempty"`
}
