package giftcode

// RedeemCodeRequest ギフトコード引き換えリクエスト
type RedeemCodeRequest struct {
	Code   string
	UserID string
}

// RedeemCodeResponse ギフトコード引き換えレスポンス
type RedeemCodeResponse struct {
	RedemptionID string
	Code         string
	EffectKind   string
	EffectAmount float64
	Status       string
}
