package giftcode

import (
	"context"
	"database/sql"
	"time"
)

// TransactionManager トランザクション管理インターフェース
type TransactionManager interface {
	// WithTransaction トランザクション内で関数を実行
	WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}

// Redemption ギフトコード引き換え履歴エンティティ
type Redemption struct {
	redemptionID string
	code         string
	userID       string
	redeemedAt   time.Time
}

// NewRedemption 新しいRedemptionエンティティを作成
func NewRedemption(redemptionID, code, userID string, redeemedAt time.Time) *Redemption {
	return &Redemption{
		redemptionID: redemptionID,
		code:         code,
		userID:       userID,
		redeemedAt:   redeemedAt,
	}
}

// RedemptionID 引き換えIDを返す
func (r *Redemption) RedemptionID() string {
	return r.redemptionID
}

// Code コードを返す
func (r *Redemption) Code() string {
	return r.code
}

// UserID ユーザーIDを返す
func (r *Redemption) UserID() string {
	return r.userID
}

// RedeemedAt 引き換え日時を返す
func (r *Redemption) RedeemedAt() time.Time {
	return r.redeemedAt
}

// GiftCodeRepository ギフトコードリポジトリインターフェース
// UpdateとSaveRedemptionは引き換えフローで常に対で実行されるため、
// 同一トランザクションのハンドルを受け取る
type GiftCodeRepository interface {
	// FindByCode コードでギフトコードを取得
	FindByCode(ctx context.Context, code string) (*GiftCode, error)

	// Update ギフトコードをトランザクション内で更新
	Update(ctx context.Context, tx *sql.Tx, gc *GiftCode) error

	// HasUserRedeemed ユーザーが既にこのコードを引き換え済みかチェック
	HasUserRedeemed(ctx context.Context, code string, userID string) (bool, error)

	// SaveRedemption 引き換え履歴をトランザクション内で保存
	SaveRedemption(ctx context.Context, tx *sql.Tx, redemption *Redemption) error
}
