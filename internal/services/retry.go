package services

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxTxAttempts = 3

// runInTransaction executes fn inside a database transaction. Transactions
// that lose a concurrency conflict (busy SQLite database, Postgres
// serialization failure) are retried from fresh state a bounded number of
// times; domain errors are permanent and surface immediately.
func runInTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	operation := func() (struct{}, error) {
		err := db.Transaction(fn)
		if err == nil {
			return struct{}{}, nil
		}
		if isRetriableTxError(err) {
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 10 * time.Millisecond

	_, err := backoff.Retry(context.Background(), operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(maxTxAttempts))
	return err
}

// withUpdateLock adds a row-level update lock where the dialect supports
// it. SQLite has no FOR UPDATE; its single-writer lock already serializes
// conflicting transactions.
func withUpdateLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func isRetriableTxError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "SQLSTATE 40001")
}
