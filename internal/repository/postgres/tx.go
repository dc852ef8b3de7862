package postgres

import (
	"context"
	"database/sql"
	"errors"

	"motorent-backoffice/internal/repository"
)

var (
	ErrNoTransaction     = errors.New("no transaction in context")
	ErrNestedTransaction = errors.New("transaction already started")
	ErrTransactionClosed = errors.New("transaction already committed or rolled back")
)

type txKey struct{}

type txState struct {
	tx   *sql.Tx
	done bool
}

// querier is the subset of *sql.DB and *sql.Tx the repositories use.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *sql.DB) querier {
	if st, ok := ctx.Value(txKey{}).(*txState); ok && !st.done {
		return st.tx
	}
	return db
}

type txManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) repository.TxManager {
	return &txManager{db: db}
}

func (m *txManager) Begin(ctx context.Context) (context.Context, error) {
	if st, ok := ctx.Value(txKey{}).(*txState); ok && !st.done {
		return nil, ErrNestedTransaction
	}
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, txKey{}, &txState{tx: tx}), nil
}

func (m *txManager) Commit(ctx context.Context) error {
	st, ok := ctx.Value(txKey{}).(*txState)
	if !ok {
		return ErrNoTransaction
	}
	if st.done {
		return ErrTransactionClosed
	}
	st.done = true
	return st.tx.Commit()
}

func (m *txManager) Rollback(ctx context.Context) error {
	st, ok := ctx.Value(txKey{}).(*txState)
	if !ok {
		return ErrNoTransaction
	}
	if st.done {
		return nil
	}
	st.done = true
	return st.tx.Rollback()
}
