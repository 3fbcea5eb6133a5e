package purchase

import (
	"clicker-server/internal/domain/intent"
)

// PurchaseRequest アップグレード購入リクエスト
type PurchaseRequest struct {
	UserID        string
	ItemID        string
	OriginChainID int64
	OriginToken   string
	SlippageBps   int
}

// PurchaseResponse アップグレード購入レスポンス
// failed/refundedの場合もエラーではなくレシート付きでこの形で返る
type PurchaseResponse struct {
	PurchaseID    string
	ItemID        string
	IntentID      string
	Receipt       *intent.Receipt
	EffectApplied bool
}

// GetReceiptRequest レシート再取得リクエスト
type GetReceiptRequest struct {
	IntentID string
}

// GetReceiptResponse レシート再取得レスポンス
type GetReceiptResponse struct {
	Receipt *intent.Receipt
}

// StatusFunc 購入フローの進行フェーズを受け取るコールバック
// 進行表示専用で、エラー通知には使われない
type StatusFunc func(phase string)

// 購入フローの各リモートステップ直前に通知されるフェーズラベル
const (
	PhaseQuoting    = "Getting best route…"
	PhaseLocking    = "Locking in rate…"
	PhaseConfirm    = "Confirm in your wallet…"
	PhaseConfirming = "Waiting for confirmation…"
)
