package purchase

import (
	"context"

	"clicker-server/internal/domain/intent"
)

// PurchaseRepository 購入記録リポジトリインターフェース
type PurchaseRepository interface {
	// Save 購入記録を保存（upsert）
	Save(ctx context.Context, p *Purchase) error

	// FindByPurchaseID 購入IDで購入記録を取得
	FindByPurchaseID(ctx context.Context, purchaseID string) (*Purchase, error)

	// FindByIntentID インテントIDで購入記録を取得
	FindByIntentID(ctx context.Context, intentID string) (*Purchase, error)

	// FindByUserID ユーザーIDで購入記録一覧を取得（ページネーション・ステータスフィルタ対応）
	FindByUserID(ctx context.Context, userID string, limit, offset int, status intent.Status) ([]*Purchase, error)
}
