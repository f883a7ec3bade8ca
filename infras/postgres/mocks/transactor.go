package mocks

import (
	"context"
	"sync"

	"github.com/jmoiron/sqlx"

	"homestay/infras/postgres"
)

// Transactor runs fn with a nil *sqlx.Tx while holding a mutex, so concurrent callers are
// serialized the way a row lock would serialize them.
type Transactor struct {
	mu sync.Mutex

	Committed  int
	RolledBack int
}

var _ postgres.Transactor = (*Transactor)(nil)

func NewTransactor() *Transactor {
	return &Transactor{}
}

// WithTransaction implements postgres.Transactor.
func (t *Transactor) WithTransaction(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := fn(nil); err != nil {
		t.RolledBack++

		return err
	}

	t.Committed++

	return nil
}
