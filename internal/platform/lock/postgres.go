package lock

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLock uses a session advisory lock held on a dedicated pooled
// connection for the lifetime of the acquisition.
type PostgresLock struct {
	pool *pgxpool.Pool
	key  int64
	name string
}

// NewPostgresLock derives the advisory lock key from name.
func NewPostgresLock(pool *pgxpool.Pool, name string) *PostgresLock {
	return &PostgresLock{pool: pool, key: advisoryKey(name), name: name}
}

var _ SyncLock = (*PostgresLock)(nil)

func (l *PostgresLock) TryAcquire(ctx context.Context) (func(), bool, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire connection for lock %s: %w", l.name, err)
	}

	var ok bool
	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, l.key).Scan(&ok); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("try advisory lock %s: %w", l.name, err)
	}
	if !ok {
		conn.Release()
		return nil, false, nil
	}

	return func() {
		unlockCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if _, err := conn.Exec(unlockCtx, `SELECT pg_advisory_unlock($1)`, l.key); err != nil {
			// The session still holds the lock; drop the connection so it is released.
			slog.Warn("failed to release advisory lock", slog.String("lock", l.name), slog.String("error", err.Error()))
			_ = conn.Conn().Close(unlockCtx)
		}
		conn.Release()
	}, true, nil
}

func advisoryKey(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64())
}
