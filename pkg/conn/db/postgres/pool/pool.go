package pool

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Queryer is something sending queries to postgres.
//
// It is the common subset of pgxpool.Pool, pgxpool.Conn and pgx.Tx,
// so store code can run the same SQL inside and outside a transaction.
type Queryer interface {
	// send SQL command which does not have any result rows.
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)

	// send SQL command which has result rows.
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)

	// send SQL command which has just a single result row.
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// something which begins a SQL transaction.
type Begin interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a subset of pgx.Tx.
//
// pgx.Tx itself does not implement Tx (golang lacks covariance in method
// return types), so values are wrapped via Pool or Conn in this package.
type Tx interface {
	Queryer
	Begin

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Conn is a subset of *pgxpool.Conn.
type Conn interface {
	Queryer
	Begin

	Release()
	Ping(ctx context.Context) error
}

// Pool is a subset of *pgxpool.Pool.
//
// When you need more methods only *pgxpool.Pool has, declare them.
type Pool interface {
	Queryer
	Begin

	Acquire(ctx context.Context) (Conn, error)
	Ping(ctx context.Context) error
	Close()
}

// New connects to postgres with the given URI and wraps the pool as Pool.
func New(ctx context.Context, dburi string) (Pool, error) {
	base, err := pgxpool.Connect(ctx, dburi)
	if err != nil {
		return nil, err
	}
	return Wrap(base), nil
}

// Wrap makes *pgxpool.Pool comply to Pool.
func Wrap(base *pgxpool.Pool) Pool {
	return &pgxPool{base: base}
}

type pgxTx struct {
	base pgx.Tx
}

var _ Tx = &pgxTx{}

func (tx *pgxTx) Begin(ctx context.Context) (Tx, error) {
	inner, err := tx.base.Begin(ctx)
	if inner == nil {
		return nil, err
	}
	return &pgxTx{base: inner}, err
}

func (tx *pgxTx) Commit(ctx context.Context) error {
	return tx.base.Commit(ctx)
}

func (tx *pgxTx) Rollback(ctx context.Context) error {
	return tx.base.Rollback(ctx)
}

func (tx *pgxTx) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return tx.base.Exec(ctx, sql, arguments...)
}

func (tx *pgxTx) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return tx.base.Query(ctx, sql, args...)
}

func (tx *pgxTx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return tx.base.QueryRow(ctx, sql, args...)
}

type pgxPoolConn struct {
	base *pgxpool.Conn
}

var _ Conn = &pgxPoolConn{}

func (c *pgxPoolConn) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.base.Begin(ctx)
	if tx == nil {
		return nil, err
	}
	return &pgxTx{base: tx}, err
}

func (c *pgxPoolConn) Release() {
	c.base.Release()
}

func (c *pgxPoolConn) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return c.base.Exec(ctx, sql, arguments...)
}

func (c *pgxPoolConn) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return c.base.Query(ctx, sql, args...)
}

func (c *pgxPoolConn) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return c.base.QueryRow(ctx, sql, args...)
}

func (c *pgxPoolConn) Ping(ctx context.Context) error {
	return c.base.Ping(ctx)
}

type pgxPool struct {
	base *pgxpool.Pool
}

var _ Pool = &pgxPool{}

func (p *pgxPool) Begin(ctx context.Context) (Tx, error) {
	tx, err := p.base.Begin(ctx)
	if tx == nil {
		return nil, err
	}
	return &pgxTx{base: tx}, err
}

func (p *pgxPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.base.Acquire(ctx)
	if conn == nil {
		return nil, err
	}
	return &pgxPoolConn{base: conn}, err
}

func (p *pgxPool) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return p.base.Exec(ctx, sql, arguments...)
}

func (p *pgxPool) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return p.base.Query(ctx, sql, args...)
}

func (p *pgxPool) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return p.base.QueryRow(ctx, sql, args...)
}

func (p *pgxPool) Ping(ctx context.Context) error {
	return p.base.Ping(ctx)
}

func (p *pgxPool) Close() {
	p.base.Close()
}
