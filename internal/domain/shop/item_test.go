package shop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name      string
		itemID    string
		wantError error
	}{
		{
			name:   "正常系: 既存アイテムの取得",
			itemID: "click_power_1",
		},
		{
			name:      "異常系: 存在しないアイテム",
			itemID:    "no_such_item",
			wantError: ErrItemNotFound,
		},
		{
			name:      "異常系: 空のアイテムID",
			itemID:    "",
			wantError: ErrItemNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := Find(tt.itemID)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.itemID, item.ID)
			assert.True(t, item.Effect.Valid())
		})
	}
}

// カタログの全アイテムは適用可能な効果と正の価格を持つ
func TestCatalog_AllItemsValid(t *testing.T) {
	items := Catalog()
	require.NotEmpty(t, items)

	seen := make(map[string]bool)
	for _, item := range items {
		assert.False(t, seen[item.ID], "duplicate item id: %s", item.ID)
		seen[item.ID] = true
		assert.True(t, item.Effect.Valid(), "invalid effect for %s", item.ID)
		assert.Greater(t, item.PriceUSD, 0.0)
		assert.NotEmpty(t, item.PriceAtomic)
	}
}

func TestEffect_Valid(t *testing.T) {
	tests := []struct {
		name   string
		effect Effect
		want   bool
	}{
		{
			name:   "正常系: クリック威力効果",
			effect: Effect{Kind: EffectKindClickPower, Amount: 1},
			want:   true,
		},
		{
			name:   "正常系: 倍率効果",
			effect: Effect{Kind: EffectKindMultiplier, Amount: 2, Duration: time.Minute},
			want:   true,
		},
		{
			name:   "異常系: 倍率効果に期間がない",
			effect: Effect{Kind: EffectKindMultiplier, Amount: 2},
			want:   false,
		},
		{
			name:   "異常系: 1未満の倍率",
			effect: Effect{Kind: EffectKindMultiplier, Amount: 0.5, Duration: time.Minute},
			want:   false,
		},
		{
			name:   "異常系: 恒久効果に期間が付いている",
			effect: Effect{Kind: EffectKindAutoRate, Amount: 1, Duration: time.Minute},
			want:   false,
		},
		{
			name:   "異常系: 量が0",
			effect: Effect{Kind: EffectKindClickPower, Amount: 0},
			want:   false,
		},
		{
			name:   "異常系: 未知の効果種別",
			effect: Effect{Kind: "teleport", Amount: 1},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.effect.Valid())
		})
	}
}
