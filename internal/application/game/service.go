package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"clicker-server/internal/domain/gamestate"
	"clicker-server/internal/domain/shop"
	otelinfra "clicker-server/internal/infrastructure/observability/otel"
)

// Subscriber ゲーム状態の変更通知を受け取るコールバック
// 変更のクリティカルセクション内から同期的に呼ばれるため、
// コールバック内からサービスを呼び返してはならない
type Subscriber func(gamestate.Snapshot)

// GameStateApplicationService ゲーム状態アプリケーションサービス
// ユーザーごとのGameStateをメモリに保持し、全ての変更を
// 検証→適用→永続化→購読者通知の順で単一のクリティカルセクション内で行う
type GameStateApplicationService struct {
	repo    gamestate.GameStateRepository
	logger  *otelinfra.Logger
	metrics *otelinfra.Metrics
	tracer  trace.Tracer
	nowFn   func() time.Time

	mu          sync.Mutex
	states      map[string]*gamestate.GameState
	subscribers map[string]map[int]Subscriber
	nextSubID   int
}

// NewGameStateApplicationService 新しいGameStateApplicationServiceを作成
func NewGameStateApplicationService(
	repo gamestate.GameStateRepository,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *GameStateApplicationService {
	return &GameStateApplicationService{
		repo:        repo,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("game-state-service"),
		nowFn:       time.Now,
		states:      make(map[string]*gamestate.GameState),
		subscribers: make(map[string]map[int]Subscriber),
	}
}

// Click クリックを処理する
func (s *GameStateApplicationService) Click(ctx context.Context, req *ClickRequest) (*ClickResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GameStateApplicationService.Click")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", req.UserID))

	s.mu.Lock()
	defer s.mu.Unlock()

	gs, err := s.loadLocked(ctx, req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	earned := gs.Click()
	s.persistAndNotifyLocked(ctx, gs)

	s.metrics.RecordClick(ctx, req.UserID, earned)

	span.SetAttributes(attribute.Float64("game.earned", earned))
	span.SetStatus(otelcodes.Ok, "click processed")

	return &ClickResponse{
		Earned: earned,
		State:  toStateDTO(gs),
	}, nil
}

// GetState ゲーム状態を取得する
func (s *GameStateApplicationService) GetState(ctx context.Context, req *GetStateRequest) (*GetStateResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GameStateApplicationService.GetState")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", req.UserID))

	s.mu.Lock()
	defer s.mu.Unlock()

	gs, err := s.loadLocked(ctx, req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(otelcodes.Ok, "state loaded")
	return &GetStateResponse{State: toStateDTO(gs)}, nil
}

// Reset ゲーム状態を初期値に戻す
func (s *GameStateApplicationService) Reset(ctx context.Context, req *ResetRequest) (*ResetResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GameStateApplicationService.Reset")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", req.UserID))

	s.logger.Info(ctx, "Resetting game state", map[string]interface{}{
		"user_id": req.UserID,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	gs, err := s.loadLocked(ctx, req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	gs.Reset()
	s.persistAndNotifyLocked(ctx, gs)

	span.SetStatus(otelcodes.Ok, "state reset")
	return &ResetResponse{State: toStateDTO(gs)}, nil
}

// ApplyEffect 購入またはギフトコードの効果をゲーム状態に適用する
func (s *GameStateApplicationService) ApplyEffect(ctx context.Context, userID string, effect shop.Effect) error {
	ctx, span := s.tracer.Start(ctx, "GameStateApplicationService.ApplyEffect")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("effect.kind", effect.Kind.String()),
		attribute.Float64("effect.amount", effect.Amount),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	gs, err := s.loadLocked(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	switch effect.Kind {
	case shop.EffectKindClickPower:
		err = gs.AddClickPower(effect.Amount)
	case shop.EffectKindAutoRate:
		err = gs.AddAutoPerSecond(effect.Amount)
	case shop.EffectKindMultiplier:
		err = gs.SetMultiplier(effect.Amount, effect.Duration, s.nowFn())
	default:
		err = gamestate.ErrInvalidAmount
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	s.persistAndNotifyLocked(ctx, gs)

	s.logger.Info(ctx, "Effect applied", map[string]interface{}{
		"user_id": userID,
		"kind":    effect.Kind.String(),
		"amount":  effect.Amount,
	})

	span.SetStatus(otelcodes.Ok, "effect applied")
	return nil
}

// Tick 読み込み済みの全ユーザーに対して1秒分の自動生成と倍率期限チェックを行う
// 毎秒の外部タイマーから呼ばれる。ティックが欠落しても補填はしない
func (s *GameStateApplicationService) Tick(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "GameStateApplicationService.Tick")
	defer span.End()

	now := s.nowFn()

	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, gs := range s.states {
		earned := gs.AutoGenerate()
		expired := gs.CheckMultiplierExpiry(now)

		if earned > 0 || expired {
			s.persistAndNotifyLocked(ctx, gs)
		}
		if earned > 0 {
			s.metrics.RecordCoinsEarned(ctx, "auto", earned)
		}
		if expired {
			s.logger.Debug(ctx, "Multiplier expired", map[string]interface{}{
				"user_id": userID,
			})
		}
	}

	span.SetAttributes(attribute.Int("game.active_states", len(s.states)))
}

// Subscribe ユーザーのゲーム状態変更の購読を開始する
// 戻り値の関数で購読を解除する
func (s *GameStateApplicationService) Subscribe(userID string, fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subscribers[userID] == nil {
		s.subscribers[userID] = make(map[int]Subscriber)
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[userID][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers[userID], id)
	}
}

// loadLocked ユーザーのGameStateを取得する（未読み込みならリポジトリから復元）
// 保存データの欠落・破損はデフォルト状態に読み替え、エラーにしない
func (s *GameStateApplicationService) loadLocked(ctx context.Context, userID string) (*gamestate.GameState, error) {
	if gs, ok := s.states[userID]; ok {
		return gs, nil
	}

	snap, err := s.repo.Load(ctx, userID)
	if err != nil {
		if !errors.Is(err, gamestate.ErrStateNotFound) {
			// 読み込み失敗は破損と同じ扱い: デフォルト状態で開始する
			s.logger.Warn(ctx, "Failed to load game state, starting fresh", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		snap = gamestate.DefaultSnapshot()
	}

	gs, err := gamestate.RestoreGameState(userID, snap)
	if err != nil {
		if errors.Is(err, gamestate.ErrInvalidUserID) {
			return nil, err
		}
		gs, err = gamestate.NewGameState(userID)
		if err != nil {
			return nil, err
		}
	}

	s.states[userID] = gs
	return gs, nil
}

// persistAndNotifyLocked 現在の状態を保存し、購読者に通知する
// 永続化エラーはログに記録して握りつぶす（ゲーム進行は止めない）
func (s *GameStateApplicationService) persistAndNotifyLocked(ctx context.Context, gs *gamestate.GameState) {
	snap := gs.Snapshot()

	if err := s.repo.Save(ctx, gs.UserID(), snap); err != nil {
		s.logger.Error(ctx, "Failed to persist game state", err, map[string]interface{}{
			"user_id": gs.UserID(),
		})
	}

	for _, fn := range s.subscribers[gs.UserID()] {
		fn(snap)
	}
}

// toStateDTO GameStateをDTOに変換する
func toStateDTO(gs *gamestate.GameState) StateDTO {
	dto := StateDTO{
		UserID:           gs.UserID(),
		Coins:            gs.Coins(),
		ClickPower:       gs.ClickPower(),
		AutoPerSecond:    gs.AutoPerSecond(),
		Multiplier:       gs.Multiplier(),
		TotalClicks:      gs.TotalClicks(),
		TotalCoinsEarned: gs.TotalCoinsEarned(),
		PurchaseCount:    gs.PurchaseCount(),
	}
	if !gs.MultiplierEndsAt().IsZero() {
		dto.MultiplierEndTime = gs.MultiplierEndsAt().UnixMilli()
	}
	return dto
}
