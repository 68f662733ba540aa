package database

import (
	"context"
	"database/sql"
	"errors"
)

// txKey is a context key type for storing database transactions.
type txKey struct{}

// ErrNestedTransaction is returned when Begin is called on a context that
// already carries an active transaction. Business operations must run inside a
// single top-level transaction.
var ErrNestedTransaction = errors.New("transaction already in progress")

// Querier represents a database query executor (either *sql.DB or *sql.Tx).
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxState tracks the lifecycle of a transaction handle.
type TxState int

const (
	// TxIdle means the handle was created but the transaction has not started.
	TxIdle TxState = iota
	// TxActive means the transaction is open and accepting statements.
	TxActive
	// TxCommitted means the transaction was committed and the handle released.
	TxCommitted
	// TxRolledBack means the transaction was rolled back and the handle released.
	TxRolledBack
)

// Tx is a transaction handle exposing manual Commit/Rollback for advanced
// composition. Most callers should use TxManager.WithTx instead.
type Tx struct {
	tx    *sql.Tx
	state TxState
}

// State returns the current lifecycle state of the handle.
func (t *Tx) State() TxState {
	return t.state
}

// Commit commits the transaction. It is an error to commit a handle that is
// not active.
func (t *Tx) Commit() error {
	if t.state != TxActive {
		return errors.New("commit on non-active transaction")
	}
	if err := t.tx.Commit(); err != nil {
		return err
	}
	t.state = TxCommitted
	return nil
}

// Rollback rolls back the transaction. Calling Rollback on an already finished
// handle is a no-op so it can be deferred unconditionally.
func (t *Tx) Rollback() error {
	if t.state != TxActive {
		return nil
	}
	if err := t.tx.Rollback(); err != nil {
		return err
	}
	t.state = TxRolledBack
	return nil
}

// TxManager manages database transactions.
type TxManager interface {
	// WithTx executes fn within a transaction: commit on nil return, rollback
	// and re-raise on error. This is the required idiom for multi-entity
	// writes; do not nest WithTx calls.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	// Begin opens a transaction manually and returns a context carrying it
	// plus the handle. Fails with ErrNestedTransaction if ctx already carries
	// a transaction.
	Begin(ctx context.Context) (context.Context, *Tx, error)
}

// sqlTxManager implements TxManager for SQL databases.
type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager creates a new TxManager for the given database.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

// Begin opens a transaction with auto-commit disabled and stores it in the
// returned context so repositories pick it up via GetTx.
func (m *sqlTxManager) Begin(ctx context.Context) (context.Context, *Tx, error) {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return ctx, nil, ErrNestedTransaction
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return ctx, nil, err
	}

	handle := &Tx{tx: tx, state: TxActive}
	return context.WithValue(ctx, txKey{}, tx), handle, nil
}

// WithTx executes the function within a database transaction. The transaction
// is always released on exit: committed when fn returns nil, rolled back
// otherwise. The original error from fn is always re-raised; when the rollback
// itself fails, both errors are returned joined so neither is swallowed.
func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	txCtx, handle, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer handle.Rollback() //nolint:errcheck // release guard; no-op after commit

	if err := fn(txCtx); err != nil {
		if rbErr := handle.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return handle.Commit()
}

// GetTx retrieves a transaction from context, or returns the DB connection.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
