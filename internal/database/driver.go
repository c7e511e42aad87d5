package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"

	"rfm-segmentation/internal/model"
)

var ErrInvalidTable = errors.New("invalid table name")

// DatabaseDriver is a store that can hold the invoice lines of a run.
type DatabaseDriver interface {
	Connect(dsn string) error
	Close() error
	ExecuteTx(ctx context.Context, txFunc func(interface{}) error) error
	CreateSchema(ctx context.Context, table string) error
	Reset(ctx context.Context, table string) error
	LoadTransactions(ctx context.Context, table string) ([]model.Transaction, error)
}

// NewDriver returns an unconnected driver for a source kind.
func NewDriver(kind string) (DatabaseDriver, error) {
	switch kind {
	case "postgres":
		return &PostgresDriver{}, nil
	case "mysql":
		return &MySQLDriver{}, nil
	case "sqlite":
		return &SQLiteDriver{}, nil
	case "mongo":
		return &MongoDriver{}, nil
	}
	return nil, fmt.Errorf("unsupported database type: %s", kind)
}

// Unquoted names are folded to lower case by postgres while CopyFrom quotes
// them, so only lower case names refer to the same table in both.
var tableName = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

func checkTable(table string) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	return nil
}

// TableLoader reads a run's transactions from one table of a connected driver.
type TableLoader struct {
	Driver DatabaseDriver
	Table  string
}

func (l *TableLoader) Load(ctx context.Context, logger *log.Logger) ([]model.Transaction, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := checkTable(l.Table); err != nil {
		return nil, err
	}
	logger.Printf("Reading table %s", l.Table)
	txs, err := l.Driver.LoadTransactions(ctx, l.Table)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", l.Table, err)
	}
	logger.Printf("Rows read: %d", len(txs))
	return txs, nil
}
