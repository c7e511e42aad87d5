package database

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDriver needs parseTime=true in its DSN to scan invoice dates.
type MySQLDriver struct {
	sqlStore
}

func (md *MySQLDriver) Connect(dsn string) error {
	return md.open("mysql", dsn)
}

func (md *MySQLDriver) CreateSchema(ctx context.Context, table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	_, err := md.db.ExecContext(ctx, GetMySQLTransactionsSchema(table))
	return err
}
