package intent

import (
	"errors"
	"fmt"
)

var (
	// ErrReceiptTimeout レシート待機がタイムアウトした
	// インテント自体は後から決済される可能性がある（再ポーリングでのみ観測可能）
	ErrReceiptTimeout = errors.New("receipt wait timed out")
	// ErrIntentNotFound インテントが見つからない
	ErrIntentNotFound = errors.New("intent not found")
)

// RemoteError リレーサービスからの非2xx応答または不正な応答
// プロバイダのエラーメッセージが取得できた場合はそのまま保持する
type RemoteError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error エラーメッセージを返す
func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("relay request failed with status %d", e.StatusCode)
}

// NewRemoteError 新しいRemoteErrorを作成
func NewRemoteError(statusCode int, code, message string) *RemoteError {
	return &RemoteError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}
