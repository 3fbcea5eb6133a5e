package history

import (
	"clicker-server/internal/domain/purchase"
)

// GetPurchaseHistoryRequest 購入履歴取得リクエスト
type GetPurchaseHistoryRequest struct {
	UserID string
	Limit  int
	Offset int
	Status string // ステータスフィルタ（空文字列は全件）
}

// GetPurchaseHistoryResponse 購入履歴取得レスポンス
type GetPurchaseHistoryResponse struct {
	Purchases []*purchase.Purchase
	Limit     int
	Offset    int
}

// GetPurchaseRequest 購入記録取得リクエスト
type GetPurchaseRequest struct {
	PurchaseID string
}

// GetPurchaseResponse 購入記録取得レスポンス
type GetPurchaseResponse struct {
	Purchase *purchase.Purchase
}
