package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"lunabay/infras/postgres"
)

type transactorImpl struct {
}

// WithinTransaction implements postgres.Transactor. It invokes the given
// function with a nil transaction so unit tests can exercise transactional
// flows against mocked repositories.
func (t *transactorImpl) WithinTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}
