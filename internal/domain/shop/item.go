package shop

import (
	"errors"
	"time"
)

var (
	// ErrItemNotFound ショップアイテムが見つからない
	ErrItemNotFound = errors.New("shop item not found")
)

// Item ショップアイテム
// PriceAtomicは決済トークンの最小単位での価格（精度維持のため整数文字列）
type Item struct {
	ID          string
	Name        string
	Description string
	PriceUSD    float64
	PriceAtomic string
	Effect      Effect
}

// defaultCatalog 標準のアップグレードカタログ
var defaultCatalog = []Item{
	{
		ID:          "click_power_1",
		Name:        "Reinforced Cursor",
		Description: "Permanently adds +1 coin per click.",
		PriceUSD:    1,
		PriceAtomic: "1000000",
		Effect:      Effect{Kind: EffectKindClickPower, Amount: 1},
	},
	{
		ID:          "click_power_5",
		Name:        "Titanium Cursor",
		Description: "Permanently adds +5 coins per click.",
		PriceUSD:    4,
		PriceAtomic: "4000000",
		Effect:      Effect{Kind: EffectKindClickPower, Amount: 5},
	},
	{
		ID:          "auto_rate_1",
		Name:        "Coin Drone",
		Description: "Generates +1 coin per second, forever.",
		PriceUSD:    2,
		PriceAtomic: "2000000",
		Effect:      Effect{Kind: EffectKindAutoRate, Amount: 1},
	},
	{
		ID:          "auto_rate_10",
		Name:        "Drone Swarm",
		Description: "Generates +10 coins per second, forever.",
		PriceUSD:    15,
		PriceAtomic: "15000000",
		Effect:      Effect{Kind: EffectKindAutoRate, Amount: 10},
	},
	{
		ID:          "multiplier_2x",
		Name:        "Golden Touch",
		Description: "Doubles all earnings for 10 minutes.",
		PriceUSD:    3,
		PriceAtomic: "3000000",
		Effect:      Effect{Kind: EffectKindMultiplier, Amount: 2, Duration: 10 * time.Minute},
	},
	{
		ID:          "multiplier_5x",
		Name:        "Midas Surge",
		Description: "Quintuples all earnings for 5 minutes.",
		PriceUSD:    8,
		PriceAtomic: "8000000",
		Effect:      Effect{Kind: EffectKindMultiplier, Amount: 5, Duration: 5 * time.Minute},
	},
}

// Catalog 全ショップアイテムを返す
func Catalog() []Item {
	items := make([]Item, len(defaultCatalog))
	copy(items, defaultCatalog)
	return items
}

// Find アイテムIDでショップアイテムを取得
func Find(itemID string) (Item, error) {
	for _, item := range defaultCatalog {
		if item.ID == itemID {
			return item, nil
		}
	}
	return Item{}, ErrItemNotFound
}
