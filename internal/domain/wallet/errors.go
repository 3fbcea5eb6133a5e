package wallet

import "errors"

var (
	// ErrNoWalletDetected ホスト環境に署名プロバイダが存在しない
	ErrNoWalletDetected = errors.New("no wallet detected")
	// ErrNotConnected ウォレット未接続のまま操作が要求された
	ErrNotConnected = errors.New("wallet not connected")
	// ErrUserRejected ユーザーがウォレット上で承認を拒否した
	ErrUserRejected = errors.New("rejected by user")
)
