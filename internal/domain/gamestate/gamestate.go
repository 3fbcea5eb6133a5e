package gamestate

import (
	"regexp"
	"time"
)

const (
	// DefaultClickPower クリック威力の初期値
	DefaultClickPower = 1.0
	// DefaultMultiplier 倍率の初期値（倍率なし）
	DefaultMultiplier = 1.0
	// MaxCoins コインの最大値（浮動小数点の精度限界を考慮した上限）
	MaxCoins = 1e15
)

var userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)

// GameState ゲーム進行状態エンティティ
// coins <= totalCoinsEarned が常に成立する（コインはこのスコープでは減算されない）
type GameState struct {
	userID           string
	coins            float64
	clickPower       float64
	autoPerSecond    float64
	multiplier       float64
	multiplierEndsAt time.Time // ゼロ値 = 倍率なし
	totalClicks      int64
	totalCoinsEarned float64
	purchaseCount    int64
}

// NewGameState 新しいGameStateエンティティを初期値で作成
func NewGameState(userID string) (*GameState, error) {
	if !userIDRegex.MatchString(userID) {
		return nil, ErrInvalidUserID
	}
	return &GameState{
		userID:     userID,
		coins:      0,
		clickPower: DefaultClickPower,
		multiplier: DefaultMultiplier,
	}, nil
}

// RestoreGameState 永続化されたスナップショットからGameStateエンティティを復元
func RestoreGameState(userID string, snap Snapshot) (*GameState, error) {
	if !userIDRegex.MatchString(userID) {
		return nil, ErrInvalidUserID
	}
	if !snap.Valid() {
		return nil, ErrInvalidSnapshot
	}
	gs := &GameState{
		userID:           userID,
		coins:            snap.Coins,
		clickPower:       snap.ClickPower,
		autoPerSecond:    snap.AutoPerSecond,
		multiplier:       snap.Multiplier,
		totalClicks:      snap.TotalClicks,
		totalCoinsEarned: snap.TotalCoinsEarned,
		purchaseCount:    snap.PurchaseCount,
	}
	if snap.MultiplierEndTime > 0 {
		gs.multiplierEndsAt = time.UnixMilli(snap.MultiplierEndTime)
	}
	return gs, nil
}

// UserID ユーザーIDを返す
func (gs *GameState) UserID() string {
	return gs.userID
}

// Coins 現在のコイン残高を返す
func (gs *GameState) Coins() float64 {
	return gs.coins
}

// ClickPower クリック威力を返す（倍率適用前）
func (gs *GameState) ClickPower() float64 {
	return gs.clickPower
}

// AutoPerSecond 自動生成レートを返す（倍率適用前）
func (gs *GameState) AutoPerSecond() float64 {
	return gs.autoPerSecond
}

// Multiplier 現在の倍率を返す
func (gs *GameState) Multiplier() float64 {
	return gs.multiplier
}

// MultiplierEndsAt 倍率の有効期限を返す（ゼロ値 = 倍率なし）
func (gs *GameState) MultiplierEndsAt() time.Time {
	return gs.multiplierEndsAt
}

// TotalClicks 累計クリック数を返す
func (gs *GameState) TotalClicks() int64 {
	return gs.totalClicks
}

// TotalCoinsEarned 累計獲得コインを返す
func (gs *GameState) TotalCoinsEarned() float64 {
	return gs.totalCoinsEarned
}

// PurchaseCount 累計アップグレード購入数を返す
func (gs *GameState) PurchaseCount() int64 {
	return gs.purchaseCount
}

// Click クリックを処理し、獲得したコイン量を返す
// 上限クランプ後の実際に加算された量を返す
func (gs *GameState) Click() float64 {
	gs.totalClicks++
	return gs.earn(gs.clickPower * gs.multiplier)
}

// AutoGenerate 1秒分の自動生成を処理し、獲得したコイン量を返す
// autoPerSecondが0以下の場合は何も変更せず0を返す
func (gs *GameState) AutoGenerate() float64 {
	if gs.autoPerSecond <= 0 {
		return 0
	}
	return gs.earn(gs.autoPerSecond * gs.multiplier)
}

// AddClickPower クリック威力を恒久的に加算する
func (gs *GameState) AddClickPower(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	gs.clickPower += amount
	gs.purchaseCount++
	return nil
}

// AddAutoPerSecond 自動生成レートを恒久的に加算する
func (gs *GameState) AddAutoPerSecond(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	gs.autoPerSecond += amount
	gs.purchaseCount++
	return nil
}

// SetMultiplier 期限付き倍率を設定する
// 有効な倍率が既に存在する場合も常に上書きする（後勝ちポリシー、スタックしない）
func (gs *GameState) SetMultiplier(value float64, duration time.Duration, now time.Time) error {
	if value < 1 {
		return ErrInvalidMultiplier
	}
	if duration <= 0 {
		return ErrInvalidDuration
	}
	gs.multiplier = value
	gs.multiplierEndsAt = now.Add(duration)
	gs.purchaseCount++
	return nil
}

// CheckMultiplierExpiry 期限切れの倍率をリセットする
// リセットした場合のみtrueを返す（UI通知用のシグナル）
func (gs *GameState) CheckMultiplierExpiry(now time.Time) bool {
	if gs.multiplier <= DefaultMultiplier {
		return false
	}
	if gs.multiplierEndsAt.IsZero() || now.Before(gs.multiplierEndsAt) {
		return false
	}
	gs.multiplier = DefaultMultiplier
	gs.multiplierEndsAt = time.Time{}
	return true
}

// Reset 進行状態を初期値に戻す
func (gs *GameState) Reset() {
	gs.coins = 0
	gs.clickPower = DefaultClickPower
	gs.autoPerSecond = 0
	gs.multiplier = DefaultMultiplier
	gs.multiplierEndsAt = time.Time{}
	gs.totalClicks = 0
	gs.totalCoinsEarned = 0
	gs.purchaseCount = 0
}

// Snapshot 現在の状態の読み取り専用スナップショットを返す
func (gs *GameState) Snapshot() Snapshot {
	snap := Snapshot{
		Coins:            gs.coins,
		ClickPower:       gs.clickPower,
		AutoPerSecond:    gs.autoPerSecond,
		Multiplier:       gs.multiplier,
		TotalClicks:      gs.totalClicks,
		TotalCoinsEarned: gs.totalCoinsEarned,
		PurchaseCount:    gs.purchaseCount,
	}
	if !gs.multiplierEndsAt.IsZero() {
		snap.MultiplierEndTime = gs.multiplierEndsAt.UnixMilli()
	}
	return snap
}

// earn コインを加算し、クランプ後の実際の加算量を返す
// 戻り値の総和はtotalCoinsEarnedと常に一致する
func (gs *GameState) earn(amount float64) float64 {
	if gs.coins+amount > MaxCoins {
		amount = MaxCoins - gs.coins
	}
	gs.coins += amount
	gs.totalCoinsEarned += amount
	return amount
}

// MustNewGameState テスト用ヘルパー: NewGameStateを呼び出し、エラーが発生した場合はpanicする
func MustNewGameState(userID string) *GameState {
	gs, err := NewGameState(userID)
	if err != nil {
		panic(err)
	}
	return gs
}
