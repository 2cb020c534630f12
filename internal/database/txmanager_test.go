package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestWithTx(t *testing.T) {
	deactivate := "UPDATE accounts SET is_active = FALSE WHERE id = $1"

	t.Run("commits and scopes queries", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE accounts SET is_active").WithArgs("acc-1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
			querier := GetTx(ctx, db)
			assert.IsType(t, &sql.Tx{}, querier)
			_, err := querier.ExecContext(ctx, deactivate, "acc-1")
			return err
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure skips fn", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		called := false
		err := NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
			called = true
			return nil
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to begin transaction")
		assert.False(t, called)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
			return assert.AnError
		})

		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("keeps both errors when rollback fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		rollbackErr := errors.New("rollback failed")
		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(rollbackErr)

		err := NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
			return assert.AnError
		})

		assert.ErrorIs(t, err, assert.AnError)
		assert.ErrorIs(t, err, rollbackErr)
	})

	t.Run("commit failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		commitErr := errors.New("commit failed")
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(commitErr)

		err := NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error { return nil })

		assert.ErrorIs(t, err, commitErr)
	})

	t.Run("rolls back and repanics", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "boom", func() {
			_ = NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
				panic("boom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call joins outer transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		manager := NewTxManager(db)
		err := manager.WithTx(context.Background(), func(outer context.Context) error {
			return manager.WithTx(outer, func(inner context.Context) error {
				assert.Same(t, GetTx(outer, db), GetTx(inner, db))
				return nil
			})
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetTx_WithoutTransaction(t *testing.T) {
	db, _ := newMockDB(t)
	assert.Equal(t, db, GetTx(context.Background(), db))
}
