package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lib/pq"

	qb "github.com/riskibarqy/football-data/internal/platform/querybuilder"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsConstraintViolation reports whether err is a Postgres integrity
// constraint violation (SQLSTATE class 23). Callers treat these as
// record-level data-quality failures rather than infrastructure faults.
func IsConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return strings.HasPrefix(string(pqErr.Code), "23")
	}

	return false
}

var savepointSeq atomic.Int64

// withSavepoint guards one record's write with a savepoint when q is
// transaction-scoped. Postgres aborts the whole transaction on any
// statement error; rolling back to the savepoint keeps the transaction
// usable so a constraint violation stays record-level. Outside a
// transaction the statement fails alone and no savepoint is needed.
func withSavepoint(ctx context.Context, q Querier, fn func() error) error {
	if _, ok := q.(interface{ Rollback() error }); !ok {
		return fn()
	}

	name := fmt.Sprintf("record_sp_%d", savepointSeq.Add(1))
	if _, err := q.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}

	if err := fn(); err != nil {
		if _, rbErr := q.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return fmt.Errorf("rollback to savepoint: %v (original: %w)", rbErr, err)
		}
		return err
	}

	if _, err := q.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

// deleteUpdatedBefore removes every row whose last_updated predates the
// cutoff and reports how many went away. Cascades handle dependents.
func deleteUpdatedBefore(ctx context.Context, q Querier, table string, cutoff time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom(table).
		Where(qb.Lt("last_updated", cutoff.UTC())).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete stale %s query: %w", table, err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete stale %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted %s rows: %w", table, err)
	}
	return affected, nil
}
