package handler

// WalletStatusResponse ウォレット接続状態レスポンス
// @Description ウォレット接続状態レスポンス
type WalletStatusResponse struct {
	Connected bool   `json:"connected" example:"true"`
	Address   string `json:"address,omitempty" example:"0x1234567890abcdef1234567890abcdef12345678"`
	ChainID   int64  `json:"chain_id,omitempty" example:"8453"`
}
