package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxAttempts    = 3
	initialBackoff = 50 * time.Millisecond
)

// inTx runs fn in a transaction and retries serialization losses with
// exponential backoff. Validation, not-found, duplicate and balance
// errors are permanent and returned on the first attempt.
func inTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	backoff := initialBackoff
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = db.WithContext(ctx).Transaction(fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// The sqlite driver used in tests reports constraint violations as
	// plain errors.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// lockForUpdate takes a row lock on postgres. sqlite (tests) has no
// FOR UPDATE; its single-writer model already serializes writes.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
