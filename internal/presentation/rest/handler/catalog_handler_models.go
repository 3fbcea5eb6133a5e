package handler

import (
	"clicker-server/internal/domain/intent"
)

// ChainsResponse 対応チェーン一覧レスポンス
// @Description 対応チェーン一覧レスポンス
type ChainsResponse struct {
	Chains []intent.Chain `json:"chains"`
}

// TokensResponse 対応トークン一覧レスポンス
// @Description 対応トークン一覧レスポンス
type TokensResponse struct {
	Tokens []intent.Token `json:"tokens"`
}

// PricesResponse トークン価格一覧レスポンス
// @Description トークン価格一覧レスポンス
type PricesResponse struct {
	Prices []intent.TokenPrice `json:"prices"`
}
