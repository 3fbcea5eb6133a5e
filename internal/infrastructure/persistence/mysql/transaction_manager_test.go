package mysql

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_WithTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tm := NewTransactionManager(&DB{DB: db})

	t.Run("正常系: トランザクション成功", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE gift_codes").
			WithArgs(1, "WELCOME2026").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := tm.WithTransaction(context.Background(), func(tx *sql.Tx) error {
			_, err := tx.Exec("UPDATE gift_codes SET current_uses = ? WHERE code = ?", 1, "WELCOME2026")
			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("正常系: エラー発生時はロールバック", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		redeemErr := errors.New("redemption failed")
		err := tm.WithTransaction(context.Background(), func(tx *sql.Tx) error {
			return redeemErr
		})

		assert.ErrorIs(t, err, redeemErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("異常系: Beginエラー", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(errors.New("begin error"))

		err := tm.WithTransaction(context.Background(), func(tx *sql.Tx) error {
			return nil
		})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("正常系: パニック発生時もロールバック", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		defer func() {
			r := recover()
			assert.Equal(t, "redeem panic", r)
			assert.NoError(t, mock.ExpectationsWereMet())
		}()

		_ = tm.WithTransaction(context.Background(), func(tx *sql.Tx) error {
			panic("redeem panic")
		})
	})
}
