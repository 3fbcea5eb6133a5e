package intent

import (
	"context"
)

// Gateway リレーサービスへのゲートウェイインターフェース
// 全操作は単発のリモート呼び出しで、自動リトライは行わない
// （一時的なネットワーク障害はそのまま呼び出し元に伝播する）
type Gateway interface {
	// QuoteIntent 見積もりを取得し、新しいインテントを採番する
	QuoteIntent(ctx context.Context, req *QuoteRequest) (*Quote, error)

	// CommitIntent 見積もりレートを確定する
	// 見積もりの有効期限はクライアント側では検査しない（期限切れはサーバー側で失敗する）
	CommitIntent(ctx context.Context, in *Intent) (*Commitment, error)

	// ExecuteIntent オンチェーン処理を起動し、発信トランザクションハッシュを返す
	ExecuteIntent(ctx context.Context, intentID, signature string) (string, error)

	// GetIntentReceipt レシートを1回だけ取得する
	GetIntentReceipt(ctx context.Context, intentID string) (*Receipt, error)

	// WaitReceipt 終端ステータスに達するまでレシートをポーリングする
	// タイムアウト時はErrReceiptTimeoutを返す
	WaitReceipt(ctx context.Context, intentID string) (*Receipt, error)

	// GetIntent インテントを取得する
	GetIntent(ctx context.Context, intentID string) (*Intent, error)

	// SearchIntents 所有者アドレスでインテントを検索する
	SearchIntents(ctx context.Context, q *SearchQuery) (*SearchResult, error)

	// GetChains 対応チェーン一覧を取得する
	GetChains(ctx context.Context) ([]Chain, error)

	// GetTokenList 対応トークン一覧を取得する
	GetTokenList(ctx context.Context) ([]Token, error)

	// GetTokenPrices トークン価格一覧を取得する
	GetTokenPrices(ctx context.Context) ([]TokenPrice, error)
}
