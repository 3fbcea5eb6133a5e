package purchase

import (
	"regexp"
	"time"

	"clicker-server/internal/domain/intent"
)

var (
	idRegex     = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)
	userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)
)

// Purchase 1回のアップグレード購入の記録エンティティ
// リレー側のインテントとローカルのショップアイテムを対応付ける
type Purchase struct {
	purchaseID    string
	userID        string
	itemID        string
	intentID      string
	originChainID int64
	originAmount  string // 最小単位の整数文字列
	originTx      string
	destTx        string
	status        intent.Status
	errorText     string
	effectApplied bool
	createdAt     time.Time
	updatedAt     time.Time
}

// NewPurchase 新しいPurchaseエンティティを作成（初期ステータスはpending）
func NewPurchase(
	purchaseID string,
	userID string,
	itemID string,
	originChainID int64,
	originAmount string,
) (*Purchase, error) {
	if !idRegex.MatchString(purchaseID) {
		return nil, ErrInvalidPurchaseID
	}
	if !userIDRegex.MatchString(userID) {
		return nil, ErrInvalidUserID
	}
	if itemID == "" {
		return nil, ErrInvalidItemID
	}

	now := time.Now()
	return &Purchase{
		purchaseID:    purchaseID,
		userID:        userID,
		itemID:        itemID,
		originChainID: originChainID,
		originAmount:  originAmount,
		status:        intent.StatusPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// PurchaseID 購入IDを返す
func (p *Purchase) PurchaseID() string {
	return p.purchaseID
}

// UserID ユーザーIDを返す
func (p *Purchase) UserID() string {
	return p.userID
}

// ItemID ショップアイテムIDを返す
func (p *Purchase) ItemID() string {
	return p.itemID
}

// IntentID リレー側のインテントIDを返す
func (p *Purchase) IntentID() string {
	return p.intentID
}

// OriginChainID 発信元チェーンIDを返す
func (p *Purchase) OriginChainID() int64 {
	return p.originChainID
}

// OriginAmount 発信元金額を返す
func (p *Purchase) OriginAmount() string {
	return p.originAmount
}

// OriginTx 発信元トランザクションハッシュを返す
func (p *Purchase) OriginTx() string {
	return p.originTx
}

// DestTx 宛先トランザクションハッシュを返す
func (p *Purchase) DestTx() string {
	return p.destTx
}

// Status ステータスを返す
func (p *Purchase) Status() intent.Status {
	return p.status
}

// ErrorText エラーメッセージを返す（失敗時のみ）
func (p *Purchase) ErrorText() string {
	return p.errorText
}

// EffectApplied 効果がゲーム状態に適用済みかどうかを返す
func (p *Purchase) EffectApplied() bool {
	return p.effectApplied
}

// CreatedAt 作成日時を返す
func (p *Purchase) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt 更新日時を返す
func (p *Purchase) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetIntentID コミット後にインテントIDを紐付ける
func (p *Purchase) SetIntentID(intentID string) {
	p.intentID = intentID
	p.updatedAt = time.Now()
}

// SetOriginTx 実行後に発信元トランザクションハッシュを記録する
func (p *Purchase) SetOriginTx(txHash string) {
	p.originTx = txHash
	p.status = intent.StatusProcessing
	p.updatedAt = time.Now()
}

// Complete 購入を完了状態にする（効果適用済み）
func (p *Purchase) Complete(destTx string) {
	p.status = intent.StatusCompleted
	p.destTx = destTx
	p.effectApplied = true
	p.updatedAt = time.Now()
}

// Fail 購入を失敗状態にする
func (p *Purchase) Fail(errorText string) {
	p.status = intent.StatusFailed
	p.errorText = errorText
	p.updatedAt = time.Now()
}

// Refund 購入を返金済み状態にする
func (p *Purchase) Refund() {
	p.status = intent.StatusRefunded
	p.updatedAt = time.Now()
}

// SetStatus ステータスを設定（リポジトリから読み込んだ際に使用）
func (p *Purchase) SetStatus(status intent.Status) error {
	if !status.Valid() {
		return ErrInvalidPurchase
	}
	p.status = status
	return nil
}

// Restore リポジトリから読み込んだ行の可変フィールドを復元する
func (p *Purchase) Restore(intentID, originTx, destTx, errorText string, effectApplied bool, createdAt, updatedAt time.Time) {
	p.intentID = intentID
	p.originTx = originTx
	p.destTx = destTx
	p.errorText = errorText
	p.effectApplied = effectApplied
	p.createdAt = createdAt
	p.updatedAt = updatedAt
}

// MustNewPurchase テスト用ヘルパー: NewPurchaseを呼び出し、エラーが発生した場合はpanicする
func MustNewPurchase(purchaseID, userID, itemID string, originChainID int64, originAmount string) *Purchase {
	p, err := NewPurchase(purchaseID, userID, itemID, originChainID, originAmount)
	if err != nil {
		panic(err)
	}
	return p
}
