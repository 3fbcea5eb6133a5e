package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"clicker-server/internal/domain/gamestate"
)

// GameStateRepository MySQL実装のGameStateRepository
// ユーザーごとに1行のJSONスロットとしてゲーム状態を保存する
type GameStateRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewGameStateRepository 新しいGameStateRepositoryを作成
func NewGameStateRepository(db *DB) *GameStateRepository {
	return &GameStateRepository{
		db:     db,
		tracer: otel.Tracer("game-state-repository"),
	}
}

// Load ユーザーIDでゲーム状態のスナップショットを取得
// 保存データが破損している場合はデフォルト状態を返す
func (r *GameStateRepository) Load(ctx context.Context, userID string) (gamestate.Snapshot, error) {
	ctx, span := r.tracer.Start(ctx, "GameStateRepository.Load")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "game_states"),
	)

	query := `
		SELECT state
		FROM game_states
		WHERE user_id = ?
	`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&raw)

	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "game state not found")
		return gamestate.Snapshot{}, gamestate.ErrStateNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return gamestate.Snapshot{}, fmt.Errorf("failed to load game state: %w", err)
	}

	// 破損データはデコード側がデフォルト状態に読み替える
	snap := gamestate.DecodeSnapshot(raw)

	span.SetStatus(otelcodes.Ok, "game state loaded")
	return snap, nil
}

// Save ゲーム状態のスナップショットを保存（upsert）
func (r *GameStateRepository) Save(ctx context.Context, userID string, snap gamestate.Snapshot) error {
	ctx, span := r.tracer.Start(ctx, "GameStateRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.user_id", userID),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.table", "game_states"),
	)

	raw, err := snap.Encode()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to encode game state: %w", err)
	}

	// ユーザーが存在するか確認（存在しない場合は作成）
	if err := r.ensureUserExists(ctx, userID); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to ensure user exists: %w", err)
	}

	query := `
		INSERT INTO game_states (user_id, state)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE
			state = VALUES(state),
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, userID, raw); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save game state: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "game state saved")
	return nil
}

// ensureUserExists ユーザーが存在することを確認（存在しない場合は作成）
func (r *GameStateRepository) ensureUserExists(ctx context.Context, userID string) error {
	query := `
		INSERT INTO users (user_id)
		VALUES (?)
		ON DUPLICATE KEY UPDATE updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to ensure user exists: %w", err)
	}

	return nil
}
