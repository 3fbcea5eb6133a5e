package handler

import (
	"time"

	"clicker-server/internal/domain/purchase"
)

// PurchaseModel 購入記録モデル
// @Description 購入記録
type PurchaseModel struct {
	PurchaseID    string `json:"purchase_id" example:"pur_1756300800000000000"`
	UserID        string `json:"user_id" example:"user123"`
	ItemID        string `json:"item_id" example:"click_power_1"`
	IntentID      string `json:"intent_id,omitempty" example:"int_123"`
	OriginChainID int64  `json:"origin_chain_id" example:"1"`
	OriginAmount  string `json:"origin_amount" example:"1000000"`
	OriginTx      string `json:"origin_tx,omitempty" example:"0xabc"`
	DestTx        string `json:"dest_tx,omitempty" example:"0xdef"`
	Status        string `json:"status" example:"completed"`
	ErrorText     string `json:"error_text,omitempty"`
	EffectApplied bool   `json:"effect_applied" example:"true"`
	CreatedAt     string `json:"created_at" example:"2026-08-27T12:00:00Z"`
	UpdatedAt     string `json:"updated_at" example:"2026-08-27T12:00:30Z"`
}

// PurchaseHistoryResponse 購入履歴レスポンス
// @Description 購入履歴レスポンス
type PurchaseHistoryResponse struct {
	Purchases []PurchaseModel `json:"purchases"`
	Limit     int             `json:"limit" example:"50"`
	Offset    int             `json:"offset" example:"0"`
}

// toPurchaseModel ドメインの購入記録をレスポンスモデルに変換
func toPurchaseModel(p *purchase.Purchase) PurchaseModel {
	return PurchaseModel{
		PurchaseID:    p.PurchaseID(),
		UserID:        p.UserID(),
		ItemID:        p.ItemID(),
		IntentID:      p.IntentID(),
		OriginChainID: p.OriginChainID(),
		OriginAmount:  p.OriginAmount(),
		OriginTx:      p.OriginTx(),
		DestTx:        p.DestTx(),
		Status:        p.Status().String(),
		ErrorText:     p.ErrorText(),
		EffectApplied: p.EffectApplied(),
		CreatedAt:     p.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt().UTC().Format(time.RFC3339),
	}
}
