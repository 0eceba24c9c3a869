package mocks

import (
	"context"
	"parking/infras/postgres"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Transactor runs callbacks with a nil tx and counts outcomes.
type Transactor struct {
	mu        sync.Mutex
	Calls     int
	Committed int
}

var _ postgres.Transactor = (*Transactor)(nil)

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	t.mu.Lock()
	t.Calls++
	t.mu.Unlock()

	if err := fn(nil); err != nil {
		return err
	}

	t.mu.Lock()
	t.Committed++
	t.mu.Unlock()

	return nil
}
