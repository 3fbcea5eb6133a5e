package intent

import (
	"fmt"
)

// Status インテントの決済ステータスを表す値オブジェクト
type Status string

const (
	StatusPending    Status = "pending"    // 受付済み、未処理
	StatusProcessing Status = "processing" // ブリッジ処理中
	StatusCompleted  Status = "completed"  // 完了（終端）
	StatusFailed     Status = "failed"     // 失敗（終端）
	StatusRefunded   Status = "refunded"   // 返金済み（終端）
)

// NewStatus 新しいStatusを作成
func NewStatus(s string) (Status, error) {
	switch s {
	case "pending", "processing", "completed", "failed", "refunded":
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid intent status: %s", s)
	}
}

// String 文字列表現を返す
func (s Status) String() string {
	return string(s)
}

// Valid 有効なステータスかどうかを返す
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

// Terminal 終端ステータスかどうかを返す（これ以上遷移しない）
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

// IsCompleted 完了状態かどうかを返す
func (s Status) IsCompleted() bool {
	return s == StatusCompleted
}
