package intent

import (
	"fmt"
)

// TradeType 見積もりのトレードタイプを表す値オブジェクト
type TradeType string

const (
	TradeTypeExactInput  TradeType = "exact_input"  // 送金額を固定
	TradeTypeExactOutput TradeType = "exact_output" // 受取額を固定
)

// NewTradeType 新しいTradeTypeを作成
func NewTradeType(s string) (TradeType, error) {
	switch s {
	case "exact_input", "exact_output":
		return TradeType(s), nil
	default:
		return "", fmt.Errorf("invalid trade type: %s", s)
	}
}

// String 文字列表現を返す
func (tt TradeType) String() string {
	return string(tt)
}

// Valid 有効なトレードタイプかどうかを返す
func (tt TradeType) Valid() bool {
	switch tt {
	case TradeTypeExactInput, TradeTypeExactOutput:
		return true
	default:
		return false
	}
}
