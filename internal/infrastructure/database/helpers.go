package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"library-backend/internal/shared/query"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx, so repository helpers
// run the same way inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Ping checks the database answers within 5 seconds.
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// PoolStats is a snapshot of the pool counters, exposed on the health endpoint.
type PoolStats struct {
	AcquireCount         int64         `json:"acquire_count"`
	AcquireDuration      time.Duration `json:"acquire_duration"`
	AcquiredConns        int32         `json:"acquired_conns"`
	IdleConns            int32         `json:"idle_conns"`
	TotalConns           int32         `json:"total_conns"`
	MaxConns             int32         `json:"max_conns"`
	EmptyAcquireCount    int64         `json:"empty_acquire_count"`
	CanceledAcquireCount int64         `json:"canceled_acquire_count"`
}

func (db *PostgresDB) Stats() *PoolStats {
	if db.Pool == nil {
		return nil
	}

	stat := db.Pool.Stat()
	return &PoolStats{
		AcquireCount:         stat.AcquireCount(),
		AcquireDuration:      stat.AcquireDuration(),
		AcquiredConns:        stat.AcquiredConns(),
		IdleConns:            stat.IdleConns(),
		TotalConns:           stat.TotalConns(),
		MaxConns:             stat.MaxConns(),
		EmptyAcquireCount:    stat.EmptyAcquireCount(),
		CanceledAcquireCount: stat.CanceledAcquireCount(),
	}
}

// QueryPage runs ds twice: once as COUNT(*) for the total, once with
// LIMIT/OFFSET for the content. ds must already carry its WHERE and ORDER BY.
func QueryPage[T any](
	ctx context.Context,
	q Querier,
	ds *goqu.SelectDataset,
	req query.PageRequest,
	scan pgx.RowToFunc[T],
) (query.Page[T], error) {
	countSQL, countArgs, err := ds.
		ClearOrder().
		ClearLimit().
		ClearOffset().
		Select(goqu.COUNT(goqu.Star())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return query.Page[T]{}, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return query.Page[T]{}, fmt.Errorf("count rows: %w", err)
	}

	if total == 0 || int64(req.Offset()) >= total {
		return query.NewPage[T](nil, req, total), nil
	}

	items, err := QueryAll(ctx, q, query.Paginate(ds, req), scan)
	if err != nil {
		return query.Page[T]{}, err
	}

	return query.NewPage(items, req, total), nil
}

// QueryAll compiles ds and collects every row with scan.
func QueryAll[T any](ctx context.Context, q Querier, ds *goqu.SelectDataset, scan pgx.RowToFunc[T]) ([]T, error) {
	sql, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}

	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, fmt.Errorf("scan rows: %w", err)
	}
	return items, nil
}
