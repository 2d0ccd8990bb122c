package db

import (
	"context"
	"database/sql"
)

// MakeTx begins a transaction and returns the queries bound to it. discard
// is safe to defer, after commit it is a no-op.
type MakeTx = func(ctx context.Context) (tx *Queries, discard, commit func() error, err error)

func NewMakeTx(sqldb *sql.DB, qry *Queries) MakeTx {
	return func(ctx context.Context) (tx *Queries, discard, commit func() error, err error) {
		sqltx, err := sqldb.BeginTx(ctx, nil)
		if err != nil {
			return nil, nil, nil, err
		}
		return qry.WithTx(sqltx),
			func() error {
				err := sqltx.Rollback()
				if err == sql.ErrTxDone {
					return nil
				}
				return err
			},
			sqltx.Commit,
			nil
	}
}
