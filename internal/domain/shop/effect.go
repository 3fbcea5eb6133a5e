package shop

import (
	"fmt"
	"time"
)

// EffectKind アップグレード効果の種類を表す値オブジェクト
type EffectKind string

const (
	EffectKindClickPower EffectKind = "click_power" // クリック威力の恒久加算
	EffectKindAutoRate   EffectKind = "auto_rate"   // 自動生成レートの恒久加算
	EffectKindMultiplier EffectKind = "multiplier"  // 期限付き倍率
)

// NewEffectKind 新しいEffectKindを作成
func NewEffectKind(s string) (EffectKind, error) {
	switch s {
	case "click_power", "auto_rate", "multiplier":
		return EffectKind(s), nil
	default:
		return "", fmt.Errorf("invalid effect kind: %s", s)
	}
}

// String 文字列表現を返す
func (ek EffectKind) String() string {
	return string(ek)
}

// Valid 有効な効果種別かどうかを返す
func (ek EffectKind) Valid() bool {
	switch ek {
	case EffectKindClickPower, EffectKindAutoRate, EffectKindMultiplier:
		return true
	default:
		return false
	}
}

// Effect ゲーム状態への純粋な変更
// レシートがcompletedになった後にのみ適用される
type Effect struct {
	Kind     EffectKind
	Amount   float64
	Duration time.Duration // multiplier以外では0
}

// Valid 効果が適用可能かどうかを返す
func (e Effect) Valid() bool {
	if !e.Kind.Valid() {
		return false
	}
	if e.Amount <= 0 {
		return false
	}
	if e.Kind == EffectKindMultiplier {
		return e.Amount >= 1 && e.Duration > 0
	}
	return e.Duration == 0
}
