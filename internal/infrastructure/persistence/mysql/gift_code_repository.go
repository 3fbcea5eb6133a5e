package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"clicker-server/internal/domain/giftcode"
	"clicker-server/internal/domain/shop"
)

// GiftCodeRepository MySQL実装のGiftCodeRepository
type GiftCodeRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewGiftCodeRepository 新しいGiftCodeRepositoryを作成
func NewGiftCodeRepository(db *DB) *GiftCodeRepository {
	return &GiftCodeRepository{
		db:     db,
		tracer: otel.Tracer("gift-code-repository"),
	}
}

// FindByCode コードでギフトコードを取得
func (r *GiftCodeRepository) FindByCode(ctx context.Context, code string) (*giftcode.GiftCode, error) {
	ctx, span := r.tracer.Start(ctx, "GiftCodeRepository.FindByCode")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.code", code),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "gift_codes"),
	)

	query := `
		SELECT
			code, effect_kind, effect_amount, effect_duration_secs,
			max_uses, current_uses, valid_from, valid_until,
			status, created_at, updated_at
		FROM gift_codes
		WHERE code = ?
	`

	var dbCode, dbEffectKind, dbStatus string
	var effectAmount float64
	var effectDurationSecs int64
	var maxUses, currentUses int
	var validFrom, validUntil time.Time
	var createdAt, updatedAt time.Time

	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&dbCode,
		&dbEffectKind,
		&effectAmount,
		&effectDurationSecs,
		&maxUses,
		&currentUses,
		&validFrom,
		&validUntil,
		&dbStatus,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "gift code not found")
		return nil, giftcode.ErrCodeNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find gift code: %w", err)
	}

	span.SetAttributes(
		attribute.String("db.effect_kind", dbEffectKind),
		attribute.String("db.status", dbStatus),
	)
	span.SetStatus(otelcodes.Ok, "gift code found")

	effectKind, err := shop.NewEffectKind(dbEffectKind)
	if err != nil {
		return nil, fmt.Errorf("invalid effect kind: %w", err)
	}

	status, err := giftcode.NewCodeStatus(dbStatus)
	if err != nil {
		return nil, fmt.Errorf("invalid code status: %w", err)
	}

	effect := shop.Effect{
		Kind:     effectKind,
		Amount:   effectAmount,
		Duration: time.Duration(effectDurationSecs) * time.Second,
	}

	gc, err := giftcode.NewGiftCode(dbCode, effect, maxUses, validFrom, validUntil)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct gift code entity: %w", err)
	}

	// current_usesとstatusを設定
	gc.SetCurrentUses(currentUses)
	gc.SetStatus(status)

	return gc, nil
}

// Update ギフトコードをトランザクション内で更新
func (r *GiftCodeRepository) Update(ctx context.Context, tx *sql.Tx, gc *giftcode.GiftCode) error {
	ctx, span := r.tracer.Start(ctx, "GiftCodeRepository.Update")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.code", gc.Code()),
		attribute.Int("db.current_uses", gc.CurrentUses()),
		attribute.String("db.status", gc.Status().String()),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "gift_codes"),
	)

	query := `
		UPDATE gift_codes
		SET current_uses = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE code = ?
	`

	result, err := tx.ExecContext(ctx, query,
		gc.CurrentUses(),
		gc.Status().String(),
		gc.Code(),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to update gift code: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		span.SetStatus(otelcodes.Ok, "gift code not found")
		return giftcode.ErrCodeNotFound
	}

	span.SetStatus(otelcodes.Ok, "gift code updated")
	return nil
}

// HasUserRedeemed ユーザーが既にこのコードを引き換え済みかチェック
func (r *GiftCodeRepository) HasUserRedeemed(ctx context.Context, code string, userID string) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "GiftCodeRepository.HasUserRedeemed")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.code", code),
		attribute.String("db.user_id", userID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "gift_code_redemptions"),
	)

	query := `
		SELECT COUNT(*)
		FROM gift_code_redemptions
		WHERE code = ? AND user_id = ?
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, code, userID).Scan(&count); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return false, fmt.Errorf("failed to check redemption: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "redemption checked")
	return count > 0, nil
}

// SaveRedemption 引き換え履歴をトランザクション内で保存
func (r *GiftCodeRepository) SaveRedemption(ctx context.Context, tx *sql.Tx, redemption *giftcode.Redemption) error {
	ctx, span := r.tracer.Start(ctx, "GiftCodeRepository.SaveRedemption")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.redemption_id", redemption.RedemptionID()),
		attribute.String("db.code", redemption.Code()),
		attribute.String("db.user_id", redemption.UserID()),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "gift_code_redemptions"),
	)

	query := `
		INSERT INTO gift_code_redemptions (redemption_id, code, user_id, redeemed_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		redemption.RedemptionID(),
		redemption.Code(),
		redemption.UserID(),
		redemption.RedeemedAt(),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save redemption: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "redemption saved")
	return nil
}
