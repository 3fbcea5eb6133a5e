package gamestate

import (
	"encoding/json"
)

// Snapshot GameStateの読み取り専用スナップショット
// 永続化スロットのJSON表現と1対1で対応する（全キー数値）
type Snapshot struct {
	Coins             float64 `json:"coins"`
	ClickPower        float64 `json:"clickPower"`
	AutoPerSecond     float64 `json:"autoPerSecond"`
	Multiplier        float64 `json:"multiplier"`
	MultiplierEndTime int64   `json:"multiplierEndTime"` // UNIXミリ秒、0 = 倍率なし
	TotalClicks       int64   `json:"totalClicks"`
	TotalCoinsEarned  float64 `json:"totalCoinsEarned"`
	PurchaseCount     int64   `json:"purchaseCount"`
}

// DefaultSnapshot 初期状態のスナップショットを返す
func DefaultSnapshot() Snapshot {
	return Snapshot{
		ClickPower: DefaultClickPower,
		Multiplier: DefaultMultiplier,
	}
}

// Valid スナップショットが不変条件を満たしているかを返す
func (s Snapshot) Valid() bool {
	if s.Coins < 0 || s.Coins > MaxCoins {
		return false
	}
	if s.ClickPower < DefaultClickPower {
		return false
	}
	if s.AutoPerSecond < 0 {
		return false
	}
	if s.Multiplier < DefaultMultiplier {
		return false
	}
	if s.MultiplierEndTime < 0 {
		return false
	}
	// endTime 0 = 倍率なし。倍率だけ有効なスナップショットは恒久倍率になってしまうため拒否する
	if s.Multiplier > DefaultMultiplier && s.MultiplierEndTime == 0 {
		return false
	}
	if s.TotalClicks < 0 || s.TotalCoinsEarned < 0 || s.PurchaseCount < 0 {
		return false
	}
	if s.Coins > s.TotalCoinsEarned {
		return false
	}
	return true
}

// Encode スナップショットをJSONにシリアライズする
func (s Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// snapshotDocument 読み込み時の欠損キー検出用
// 1つでもキーが欠けていたら部分マージせず初期値に全面フォールバックする
type snapshotDocument struct {
	Coins             *float64 `json:"coins"`
	ClickPower        *float64 `json:"clickPower"`
	AutoPerSecond     *float64 `json:"autoPerSecond"`
	Multiplier        *float64 `json:"multiplier"`
	MultiplierEndTime *int64   `json:"multiplierEndTime"`
	TotalClicks       *int64   `json:"totalClicks"`
	TotalCoinsEarned  *float64 `json:"totalCoinsEarned"`
	PurchaseCount     *int64   `json:"purchaseCount"`
}

// DecodeSnapshot 永続化されたJSONからスナップショットを復元する
// 破損・キー欠損・不変条件違反はエラーにせず初期状態を返す
func DecodeSnapshot(data []byte) Snapshot {
	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return DefaultSnapshot()
	}
	if doc.Coins == nil || doc.ClickPower == nil || doc.AutoPerSecond == nil ||
		doc.Multiplier == nil || doc.MultiplierEndTime == nil ||
		doc.TotalClicks == nil || doc.TotalCoinsEarned == nil || doc.PurchaseCount == nil {
		return DefaultSnapshot()
	}
	snap := Snapshot{
		Coins:             *doc.Coins,
		ClickPower:        *doc.ClickPower,
		AutoPerSecond:     *doc.AutoPerSecond,
		Multiplier:        *doc.Multiplier,
		MultiplierEndTime: *doc.MultiplierEndTime,
		TotalClicks:       *doc.TotalClicks,
		TotalCoinsEarned:  *doc.TotalCoinsEarned,
		PurchaseCount:     *doc.PurchaseCount,
	}
	if !snap.Valid() {
		return DefaultSnapshot()
	}
	return snap
}
