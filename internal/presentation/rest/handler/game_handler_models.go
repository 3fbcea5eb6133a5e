package handler

// GameStateModel ゲーム状態モデル
// @Description ゲーム状態のスナップショット
type GameStateModel struct {
	Coins             float64 `json:"coins" example:"1250.5"`
	ClickPower        float64 `json:"click_power" example:"5"`
	AutoPerSecond     float64 `json:"auto_per_second" example:"2"`
	Multiplier        float64 `json:"multiplier" example:"1"`
	MultiplierEndTime int64   `json:"multiplier_end_time,omitempty" example:"1756300800000"`
	TotalClicks       int64   `json:"total_clicks" example:"345"`
	TotalCoinsEarned  float64 `json:"total_coins_earned" example:"2400"`
	PurchaseCount     int64   `json:"purchase_count" example:"3"`
}

// GameStateResponse ゲーム状態レスポンス
// @Description ゲーム状態レスポンス
type GameStateResponse struct {
	State GameStateModel `json:"state"`
}

// ClickResponse クリックレスポンス
// @Description クリックレスポンス
type ClickResponse struct {
	Earned float64        `json:"earned" example:"5"`
	State  GameStateModel `json:"state"`
}
