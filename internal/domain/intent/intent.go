package intent

// Intent クロスチェーン送金インテントエンティティ
// 見積もり時にリレーサービス側で採番され、コミット後は
// ステータス遷移（Receipt経由で観測）以外は不変
type Intent struct {
	IntentID         string `json:"intentId"`
	OriginChainID    int64  `json:"originChainId"`
	DestChainID      int64  `json:"destChainId"`
	OriginToken      string `json:"originToken"`
	DestToken        string `json:"destToken"`
	OriginAmount     string `json:"originAmount"` // 精度維持のため整数文字列
	DestAmount       string `json:"destAmount"`   // 精度維持のため整数文字列
	OwnerAddress     string `json:"ownerAddress"`
	RecipientAddress string `json:"recipientAddress"`
	ExpiresAt        int64  `json:"expiresAt"` // UNIX秒
}

// QuoteRequest 見積もりリクエスト
type QuoteRequest struct {
	OwnerAddress     string    `json:"ownerAddress"`
	OriginChainID    int64     `json:"originChainId"`
	OriginToken      string    `json:"originToken"`
	Amount           string    `json:"amount"` // 整数文字列
	DestChainID      int64     `json:"destChainId"`
	DestToken        string    `json:"destToken"`
	RecipientAddress string    `json:"recipientAddress"`
	TradeType        TradeType `json:"tradeType"`
	SlippageBps      int       `json:"slippageBps,omitempty"`
	ProviderHint     string    `json:"providerHint,omitempty"`
	Calldata         string    `json:"calldata,omitempty"`
}

// FeeBreakdown 手数料内訳
type FeeBreakdown struct {
	GasFee      string `json:"gasFee"`
	RelayerFee  string `json:"relayerFee"`
	ProtocolFee string `json:"protocolFee"`
}

// Quote 見積もり結果
type Quote struct {
	Intent         Intent       `json:"intent"`
	OriginAmount   string       `json:"originAmount"`
	DestAmount     string       `json:"destAmount"`
	Fees           FeeBreakdown `json:"fees"`
	PriceImpactBps int          `json:"priceImpactBps"`
	EstimatedSecs  int          `json:"estimatedSecs"`
	Route          []string     `json:"route"`
}

// Commitment コミット結果（レートの確定）
type Commitment struct {
	IntentID  string `json:"intentId"`
	ExpiresAt int64  `json:"expiresAt"` // UNIX秒
}

// SearchQuery インテント検索条件
type SearchQuery struct {
	OwnerAddress string
	Limit        int
	Offset       int
	Status       Status // 空 = 全ステータス
}

// SearchResult インテント検索結果
type SearchResult struct {
	Intents []Intent `json:"intents"`
	Total   int      `json:"total"`
}

// Chain リレーが対応するチェーンのカタログ情報
type Chain struct {
	ChainID int64  `json:"chainId"`
	Name    string `json:"name"`
}

// Token リレーが対応するトークンのカタログ情報
type Token struct {
	ChainID  int64  `json:"chainId"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// TokenPrice トークンのUSD価格
type TokenPrice struct {
	ChainID  int64   `json:"chainId"`
	Address  string  `json:"address"`
	PriceUSD float64 `json:"priceUsd"`
}
