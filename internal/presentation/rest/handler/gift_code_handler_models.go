package handler

// RedeemCodeRequestBody ギフトコード引き換えリクエスト
// @Description ギフトコード引き換えリクエスト
type RedeemCodeRequestBody struct {
	Code string `json:"code" example:"WELCOME2026"`
}

// RedeemCodeResponseBody ギフトコード引き換えレスポンス
// @Description ギフトコード引き換えレスポンス
type RedeemCodeResponseBody struct {
	RedemptionID string  `json:"redemption_id" example:"red_1756300800000000000"`
	Code         string  `json:"code" example:"WELCOME2026"`
	EffectKind   string  `json:"effect_kind" example:"click_power"`
	EffectAmount float64 `json:"effect_amount" example:"10"`
	Status       string  `json:"status" example:"completed"`
}
