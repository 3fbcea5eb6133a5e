package gamestate

import (
	"context"
)

// GameStateRepository ゲーム状態リポジトリインターフェース
// 1ユーザーにつき1スロット（JSONドキュメント全体の上書き保存）
type GameStateRepository interface {
	// Load ユーザーIDでスナップショットを取得
	Load(ctx context.Context, userID string) (Snapshot, error)

	// Save スナップショットを保存（スロット全体の上書き）
	Save(ctx context.Context, userID string, snap Snapshot) error
}
