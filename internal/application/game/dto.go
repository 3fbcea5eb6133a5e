package game

// StateDTO ゲーム状態の読み取り専用ビュー
type StateDTO struct {
	UserID            string
	Coins             float64
	ClickPower        float64
	AutoPerSecond     float64
	Multiplier        float64
	MultiplierEndTime int64 // UNIXミリ秒（0 = 倍率なし）
	TotalClicks       int64
	TotalCoinsEarned  float64
	PurchaseCount     int64
}

// ClickRequest クリックリクエスト
type ClickRequest struct {
	UserID string
}

// ClickResponse クリックレスポンス
type ClickResponse struct {
	Earned float64
	State  StateDTO
}

// GetStateRequest ゲーム状態取得リクエスト
type GetStateRequest struct {
	UserID string
}

// GetStateResponse ゲーム状態取得レスポンス
type GetStateResponse struct {
	State StateDTO
}

// ResetRequest ゲーム状態リセットリクエスト
type ResetRequest struct {
	UserID string
}

// ResetResponse ゲーム状態リセットレスポンス
type ResetResponse struct {
	State StateDTO
}
