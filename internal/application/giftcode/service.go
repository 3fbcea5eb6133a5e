package giftcode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"clicker-server/internal/domain/giftcode"
	"clicker-server/internal/domain/shop"
	otelinfra "clicker-server/internal/infrastructure/observability/otel"
)

// EffectApplier 引き換え効果をゲーム状態へ適用するインターフェース
type EffectApplier interface {
	ApplyEffect(ctx context.Context, userID string, effect shop.Effect) error
}

// GiftCodeApplicationService ギフトコード引き換えアプリケーションサービス
type GiftCodeApplicationService struct {
	giftCodeRepo giftcode.GiftCodeRepository
	txManager    giftcode.TransactionManager
	effects      EffectApplier
	logger       *otelinfra.Logger
	metrics      *otelinfra.Metrics
	tracer       trace.Tracer
	nowFn        func() time.Time
}

// NewGiftCodeApplicationService 新しいGiftCodeApplicationServiceを作成
func NewGiftCodeApplicationService(
	giftCodeRepo giftcode.GiftCodeRepository,
	txManager giftcode.TransactionManager,
	effects EffectApplier,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *GiftCodeApplicationService {
	return &GiftCodeApplicationService{
		giftCodeRepo: giftCodeRepo,
		txManager:    txManager,
		effects:      effects,
		logger:       logger,
		metrics:      metrics,
		tracer:       otel.Tracer("gift-code-service"),
		nowFn:        time.Now,
	}
}

// Redeem ギフトコードを引き換えて効果をゲーム状態に適用する
func (s *GiftCodeApplicationService) Redeem(ctx context.Context, req *RedeemCodeRequest) (*RedeemCodeResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GiftCodeApplicationService.Redeem")
	defer span.End()

	span.SetAttributes(
		attribute.String("code", req.Code),
		attribute.String("user_id", req.UserID),
	)

	s.logger.Info(ctx, "Redeeming gift code", map[string]interface{}{
		"code":    req.Code,
		"user_id": req.UserID,
	})

	now := s.nowFn()

	code, err := s.giftCodeRepo.FindByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, giftcode.ErrCodeNotFound) {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find code: %w", err)
	}

	if !code.IsValid(now) {
		err := giftcode.ErrCodeNotRedeemable
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	// ユーザーが既に引き換え済みかチェック
	hasRedeemed, err := s.giftCodeRepo.HasUserRedeemed(ctx, req.Code, req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to check redemption status: %w", err)
	}
	if hasRedeemed {
		err := giftcode.ErrUserAlreadyRedeemed
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	redemptionID := s.generateRedemptionID()

	err = s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		// 使用回数を増やす
		if err := code.Redeem(now); err != nil {
			return err
		}

		if err := s.giftCodeRepo.Update(ctx, tx, code); err != nil {
			return fmt.Errorf("failed to update code: %w", err)
		}

		redemption := giftcode.NewRedemption(redemptionID, req.Code, req.UserID, now)
		if err := s.giftCodeRepo.SaveRedemption(ctx, tx, redemption); err != nil {
			return fmt.Errorf("failed to save redemption: %w", err)
		}

		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to redeem gift code", err, map[string]interface{}{
			"code":    req.Code,
			"user_id": req.UserID,
		})
		s.metrics.RecordError(ctx, "gift_code_redemption_failed")
		return nil, err
	}

	// 引き換え確定後に効果を適用する
	effect := code.Effect()
	if err := s.effects.ApplyEffect(ctx, req.UserID, effect); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to apply gift code effect", err, map[string]interface{}{
			"code":    req.Code,
			"user_id": req.UserID,
		})
		return nil, fmt.Errorf("failed to apply effect: %w", err)
	}

	s.metrics.RecordGiftCodeRedemption(ctx, req.Code)

	s.logger.Info(ctx, "Gift code redeemed successfully", map[string]interface{}{
		"code":          req.Code,
		"user_id":       req.UserID,
		"redemption_id": redemptionID,
	})

	span.SetStatus(otelcodes.Ok, "code redeemed")

	return &RedeemCodeResponse{
		RedemptionID: redemptionID,
		Code:         req.Code,
		EffectKind:   effect.Kind.String(),
		EffectAmount: effect.Amount,
		Status:       "completed",
	}, nil
}

// generateRedemptionID 引き換えIDを生成
func (s *GiftCodeApplicationService) generateRedemptionID() string {
	return fmt.Sprintf("red_%d_%s", s.nowFn().UnixNano(), uuid.NewString()[:8])
}
