package gamestate

import "errors"

var (
	// ErrInvalidUserID ユーザーIDが無効
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrInvalidAmount 加算量が無効
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidMultiplier 倍率が無効（1未満）
	ErrInvalidMultiplier = errors.New("invalid multiplier")
	// ErrInvalidDuration 倍率の有効期間が無効
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrInvalidSnapshot スナップショットが不変条件を満たしていない
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	// ErrStateNotFound ゲーム状態が見つからない
	ErrStateNotFound = errors.New("game state not found")
)
