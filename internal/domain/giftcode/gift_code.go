package giftcode

import (
	"time"

	"clicker-server/internal/domain/shop"
)

// GiftCode ギフトコードエンティティ
// 引き換えるとショップアイテムと同じ形式の効果をゲーム状態に付与する
type GiftCode struct {
	code        string
	effect      shop.Effect
	maxUses     int // 0 = 無制限
	currentUses int
	validFrom   time.Time
	validUntil  time.Time
	status      CodeStatus
	createdAt   time.Time
	updatedAt   time.Time
}

// NewGiftCode 新しいGiftCodeエンティティを作成
func NewGiftCode(
	code string,
	effect shop.Effect,
	maxUses int,
	validFrom time.Time,
	validUntil time.Time,
) (*GiftCode, error) {
	if code == "" {
		return nil, ErrInvalidCode
	}
	if !effect.Valid() {
		return nil, ErrInvalidCode
	}

	now := time.Now()
	return &GiftCode{
		code:        code,
		effect:      effect,
		maxUses:     maxUses,
		currentUses: 0,
		validFrom:   validFrom,
		validUntil:  validUntil,
		status:      CodeStatusActive,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Code コードを返す
func (gc *GiftCode) Code() string {
	return gc.code
}

// Effect 付与する効果を返す
func (gc *GiftCode) Effect() shop.Effect {
	return gc.effect
}

// MaxUses 最大使用回数を返す
func (gc *GiftCode) MaxUses() int {
	return gc.maxUses
}

// CurrentUses 現在の使用回数を返す
func (gc *GiftCode) CurrentUses() int {
	return gc.currentUses
}

// ValidFrom 有効開始日時を返す
func (gc *GiftCode) ValidFrom() time.Time {
	return gc.validFrom
}

// ValidUntil 有効期限を返す
func (gc *GiftCode) ValidUntil() time.Time {
	return gc.validUntil
}

// Status ステータスを返す
func (gc *GiftCode) Status() CodeStatus {
	return gc.status
}

// CreatedAt 作成日時を返す
func (gc *GiftCode) CreatedAt() time.Time {
	return gc.createdAt
}

// UpdatedAt 更新日時を返す
func (gc *GiftCode) UpdatedAt() time.Time {
	return gc.updatedAt
}

// IsValid 有効性をチェック（ステータス、有効期限、使用回数）
func (gc *GiftCode) IsValid(now time.Time) bool {
	if !gc.status.IsActive() {
		return false
	}
	if now.Before(gc.validFrom) || now.After(gc.validUntil) {
		return false
	}
	if gc.maxUses > 0 && gc.currentUses >= gc.maxUses {
		return false
	}
	return true
}

// Redeem 引き換え処理（使用回数を増やす）
func (gc *GiftCode) Redeem(now time.Time) error {
	if !gc.IsValid(now) {
		return ErrCodeNotRedeemable
	}
	gc.currentUses++
	gc.updatedAt = now
	return nil
}

// Disable コードを無効化
func (gc *GiftCode) Disable() {
	gc.status = CodeStatusDisabled
	gc.updatedAt = time.Now()
}

// Expire コードを期限切れにする
func (gc *GiftCode) Expire() {
	gc.status = CodeStatusExpired
	gc.updatedAt = time.Now()
}

// SetCurrentUses 現在の使用回数を設定（リポジトリから読み込んだ際に使用）
func (gc *GiftCode) SetCurrentUses(uses int) {
	gc.currentUses = uses
}

// SetStatus ステータスを設定（リポジトリから読み込んだ際に使用）
func (gc *GiftCode) SetStatus(status CodeStatus) {
	gc.status = status
}

// MustNewGiftCode テスト用ヘルパー: NewGiftCodeを呼び出し、エラーが発生した場合はpanicする
func MustNewGiftCode(
	code string,
	effect shop.Effect,
	maxUses int,
	validFrom time.Time,
	validUntil time.Time,
) *GiftCode {
	gc, err := NewGiftCode(code, effect, maxUses, validFrom, validUntil)
	if err != nil {
		panic(err)
	}
	return gc
}
