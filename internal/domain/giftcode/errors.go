package giftcode

import "errors"

var (
	// ErrCodeNotFound ギフトコードが見つからないエラー
	ErrCodeNotFound = errors.New("code not found")
	// ErrCodeNotRedeemable 引き換え不可能なコードエラー（期限切れ・無効化・使用上限）
	ErrCodeNotRedeemable = errors.New("code not redeemable")
	// ErrUserAlreadyRedeemed ユーザーが既にこのコードを引き換え済みエラー
	ErrUserAlreadyRedeemed = errors.New("user already redeemed")
	// ErrInvalidCode コードが無効
	ErrInvalidCode = errors.New("invalid code")
)
