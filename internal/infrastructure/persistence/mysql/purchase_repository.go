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

	"clicker-server/internal/domain/intent"
	"clicker-server/internal/domain/purchase"
)

// PurchaseRepository MySQL実装のPurchaseRepository
type PurchaseRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewPurchaseRepository 新しいPurchaseRepositoryを作成
func NewPurchaseRepository(db *DB) *PurchaseRepository {
	return &PurchaseRepository{
		db:     db,
		tracer: otel.Tracer("purchase-repository"),
	}
}

// Save 購入記録を保存（upsert）
func (r *PurchaseRepository) Save(ctx context.Context, p *purchase.Purchase) error {
	ctx, span := r.tracer.Start(ctx, "PurchaseRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.purchase_id", p.PurchaseID()),
		attribute.String("db.user_id", p.UserID()),
		attribute.String("db.status", p.Status().String()),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.table", "purchases"),
	)

	query := `
		INSERT INTO purchases (
			purchase_id, user_id, item_id, intent_id,
			origin_chain_id, origin_amount, origin_tx, dest_tx,
			status, error_text, effect_applied, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			intent_id = VALUES(intent_id),
			origin_tx = VALUES(origin_tx),
			dest_tx = VALUES(dest_tx),
			status = VALUES(status),
			error_text = VALUES(error_text),
			effect_applied = VALUES(effect_applied),
			updated_at = VALUES(updated_at)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.PurchaseID(),
		p.UserID(),
		p.ItemID(),
		p.IntentID(),
		p.OriginChainID(),
		p.OriginAmount(),
		p.OriginTx(),
		p.DestTx(),
		p.Status().String(),
		p.ErrorText(),
		p.EffectApplied(),
		p.CreatedAt(),
		p.UpdatedAt(),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save purchase: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "purchase saved")
	return nil
}

// FindByPurchaseID 購入IDで購入記録を取得
func (r *PurchaseRepository) FindByPurchaseID(ctx context.Context, purchaseID string) (*purchase.Purchase, error) {
	ctx, span := r.tracer.Start(ctx, "PurchaseRepository.FindByPurchaseID")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.purchase_id", purchaseID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "purchases"),
	)

	query := selectPurchaseColumns + ` WHERE purchase_id = ?`

	row := r.db.QueryRowContext(ctx, query, purchaseID)
	p, err := scanPurchase(row)
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "purchase not found")
		return nil, purchase.ErrPurchaseNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find purchase: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "purchase found")
	return p, nil
}

// FindByIntentID インテントIDで購入記録を取得
func (r *PurchaseRepository) FindByIntentID(ctx context.Context, intentID string) (*purchase.Purchase, error) {
	ctx, span := r.tracer.Start(ctx, "PurchaseRepository.FindByIntentID")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.intent_id", intentID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "purchases"),
	)

	query := selectPurchaseColumns + ` WHERE intent_id = ?`

	row := r.db.QueryRowContext(ctx, query, intentID)
	p, err := scanPurchase(row)
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "purchase not found")
		return nil, purchase.ErrPurchaseNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find purchase: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "purchase found")
	return p, nil
}

// FindByUserID ユーザーIDで購入記録一覧を取得（ページネーション・ステータスフィルタ対応）
func (r *PurchaseRepository) FindByUserID(ctx context.Context, userID string, limit, offset int, status intent.Status) ([]*purchase.Purchase, error) {
	ctx, span := r.tracer.Start(ctx, "PurchaseRepository.FindByUserID")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.Int("db.limit", limit),
		attribute.Int("db.offset", offset),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "purchases"),
	)

	query := selectPurchaseColumns + ` WHERE user_id = ?`
	args := []interface{}{userID}

	if status != "" {
		query += ` AND status = ?`
		args = append(args, status.String())
	}

	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*purchase.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate purchases: %w", err)
	}

	span.SetAttributes(attribute.Int("db.result_count", len(purchases)))
	span.SetStatus(otelcodes.Ok, "purchases found")
	return purchases, nil
}

const selectPurchaseColumns = `
	SELECT purchase_id, user_id, item_id, intent_id,
		origin_chain_id, origin_amount, origin_tx, dest_tx,
		status, error_text, effect_applied, created_at, updated_at
	FROM purchases`

// rowScanner sql.Rowとsql.Rowsの共通インターフェース
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPurchase 1行を購入エンティティに復元
func scanPurchase(row rowScanner) (*purchase.Purchase, error) {
	var (
		purchaseID    string
		userID        string
		itemID        string
		intentID      string
		originChainID int64
		originAmount  string
		originTx      string
		destTx        string
		statusStr     string
		errorText     string
		effectApplied bool
		createdAt     time.Time
		updatedAt     time.Time
	)

	if err := row.Scan(
		&purchaseID,
		&userID,
		&itemID,
		&intentID,
		&originChainID,
		&originAmount,
		&originTx,
		&destTx,
		&statusStr,
		&errorText,
		&effectApplied,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	p, err := purchase.NewPurchase(purchaseID, userID, itemID, originChainID, originAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct purchase entity: %w", err)
	}

	status, err := intent.NewStatus(statusStr)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase status: %w", err)
	}
	if err := p.SetStatus(status); err != nil {
		return nil, err
	}

	p.Restore(intentID, originTx, destTx, errorText, effectApplied, createdAt, updatedAt)
	return p, nil
}
