package db_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/learnhub/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertLog(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO conversation_logs (id, created_at) VALUES (?, 'now')`, id)
	return err
}

func logExists(uow *db.SQLiteUnitOfWork, id string) bool {
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		var got string
		if err := tx.QueryRowContext(ctx, `SELECT id FROM conversation_logs WHERE id = ?`, id).Scan(&got); err != nil {
			return nil
		}
		found = true
		return nil
	})
	return found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertLog(ctx, tx, "k1")
	})
	require.NoError(t, err)

	assert.True(t, logExists(uow, "k1"), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertLog(ctx, tx, "k2"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	assert.False(t, logExists(uow, "k2"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertLog(ctx, tx, "k3")
			panic("boom")
		})
	})

	assert.False(t, logExists(uow, "k3"), "row should not exist after panic rollback")
}

func TestWithinTx_ConcurrentWritersAllCommit(t *testing.T) {
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "uow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	uow := db.NewSQLiteUnitOfWork(database)

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
				return insertLog(ctx, tx, fmt.Sprintf("w%d", i))
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM conversation_logs`).Scan(&n))
	assert.Equal(t, writers, n)
}
