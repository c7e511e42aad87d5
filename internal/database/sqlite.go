package database

import (
	"context"

	_ "modernc.org/sqlite"
)

type SQLiteDriver struct {
	sqlStore
}

func (sd *SQLiteDriver) Connect(dsn string) error {
	return sd.open("sqlite", dsn)
}

func (sd *SQLiteDriver) CreateSchema(ctx context.Context, table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	_, err := sd.db.ExecContext(ctx, GetTransactionsSchema(table))
	return err
}
