package handler

import (
	"clicker-server/internal/domain/intent"
)

// ShopItemModel ショップアイテムモデル
// @Description 購入可能なアップグレードアイテム
type ShopItemModel struct {
	ID                string  `json:"id" example:"click_power_1"`
	Name              string  `json:"name" example:"Stronger Clicks"`
	Description       string  `json:"description" example:"Permanently adds +5 click power"`
	PriceUSD          float64 `json:"price_usd" example:"1"`
	PriceAtomic       string  `json:"price_atomic" example:"1000000"`
	EffectKind        string  `json:"effect_kind" example:"click_power"`
	EffectAmount      float64 `json:"effect_amount" example:"5"`
	EffectDurationSec int64   `json:"effect_duration_sec,omitempty" example:"300"`
}

// ListItemsResponse アイテム一覧レスポンス
// @Description アイテム一覧レスポンス
type ListItemsResponse struct {
	Items []ShopItemModel `json:"items"`
}

// PurchaseItemRequest アイテム購入リクエスト
// @Description アイテム購入リクエスト
type PurchaseItemRequest struct {
	ItemID        string `json:"item_id" example:"click_power_1"`
	OriginChainID int64  `json:"origin_chain_id" example:"1"`
	OriginToken   string `json:"origin_token" example:"0x0000000000000000000000000000000000000000"`
	SlippageBps   int    `json:"slippage_bps,omitempty" example:"50"`
}

// ReceiptModel レシートモデル
// @Description インテントの決済レシート
type ReceiptModel struct {
	IntentID  string `json:"intent_id" example:"int_123"`
	Status    string `json:"status" example:"completed"`
	OriginTx  string `json:"origin_tx,omitempty" example:"0xabc"`
	DestTx    string `json:"dest_tx,omitempty" example:"0xdef"`
	ErrorText string `json:"error_text,omitempty"`
	UpdatedAt int64  `json:"updated_at" example:"1756300800"`
}

// PurchaseItemResponse アイテム購入レスポンス
// @Description アイテム購入レスポンス（failed/refundedもこの形で返る）
type PurchaseItemResponse struct {
	PurchaseID    string       `json:"purchase_id" example:"pur_1756300800000000000"`
	ItemID        string       `json:"item_id" example:"click_power_1"`
	IntentID      string       `json:"intent_id" example:"int_123"`
	Receipt       ReceiptModel `json:"receipt"`
	Phases        []string     `json:"phases"`
	EffectApplied bool         `json:"effect_applied" example:"true"`
}

// ReceiptResponse レシート取得レスポンス
// @Description レシート取得レスポンス
type ReceiptResponse struct {
	Receipt ReceiptModel `json:"receipt"`
}

// toReceiptModel ドメインのレシートをレスポンスモデルに変換
func toReceiptModel(r *intent.Receipt) ReceiptModel {
	if r == nil {
		return ReceiptModel{}
	}
	return ReceiptModel{
		IntentID:  r.IntentID,
		Status:    r.Status.String(),
		OriginTx:  r.OriginTx,
		DestTx:    r.DestTx,
		ErrorText: r.ErrorText,
		UpdatedAt: r.UpdatedAt,
	}
}
