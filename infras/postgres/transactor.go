package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parking/shared/constant"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Transactor runs fn inside a single READ COMMITTED transaction on the write connection.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type transactor struct {
	db *Connection
}

func NewTransactor(db *Connection) Transactor {
	return &transactor{db: db}
}

func (t *transactor) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := t.db.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit transaction")

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err carries a postgres unique constraint violation,
// optionally restricted to the named constraint.
func IsUniqueViolation(err error, constraint ...string) bool {
	return isPqError(err, constant.PqErrorCodeUniqueViolation, constraint...)
}

func IsForeignKeyViolation(err error) bool {
	return isPqError(err, constant.PqErrorCodeFkViolation)
}

func isPqError(err error, code string, constraint ...string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != code {
		return false
	}

	if len(constraint) == 0 {
		return true
	}

	for _, c := range constraint {
		if pqErr.Constraint == c {
			return true
		}
	}

	return false
}
