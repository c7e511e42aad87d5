package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"rfm-segmentation/internal/model"
)

type PostgresDriver struct {
	conn *pgx.Conn
}

func (pd *PostgresDriver) Connect(dsn string) error {
	conn, err := pgx.Connect(context.Background(), dsn)
	if err != nil {
		return err
	}
	pd.conn = conn
	return nil
}

func (pd *PostgresDriver) Close() error {
	if pd.conn == nil {
		return nil
	}
	return pd.conn.Close(context.Background())
}

func (pd *PostgresDriver) CreateSchema(ctx context.Context, table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	_, err := pd.conn.Exec(ctx, GetTransactionsSchema(table))
	return err
}

func (pd *PostgresDriver) Reset(ctx context.Context, table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	_, err := pd.conn.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table))
	return err
}

func (pd *PostgresDriver) ExecuteTx(ctx context.Context, txFunc func(interface{}) error) (err error) {
	tx, err := pd.conn.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback(ctx)
			panic(p) // re-panic after rollback
		} else if err != nil {
			tx.Rollback(ctx) // err is non-nil; don't change it
		} else {
			err = tx.Commit(ctx) // err is nil; if Commit returns error, update err
		}
	}()

	err = txFunc(tx)
	return err
}

func (pd *PostgresDriver) LoadTransactions(ctx context.Context, table string) ([]model.Transaction, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	rows, err := pd.conn.Query(ctx, loadQuery(table, "price::text"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var (
			tx                             model.Transaction
			description, customer, country *string
			price                          string
		)
		if err := rows.Scan(&tx.Invoice, &tx.StockCode, &description, &tx.Quantity, &tx.InvoiceDate, &price, &customer, &country); err != nil {
			return nil, err
		}
		if tx.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("invoice %s: price: %w", tx.Invoice, err)
		}
		tx.Description = deref(description)
		tx.CustomerID = deref(customer)
		tx.Country = deref(country)
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// copyRows lays out txs for CopyFrom in Columns order.
func copyRows(txs []model.Transaction) [][]interface{} {
	rows := make([][]interface{}, len(txs))
	for i, tx := range txs {
		rows[i] = []interface{}{
			tx.Invoice,
			tx.StockCode,
			nullable(tx.Description),
			tx.Quantity,
			tx.InvoiceDate,
			numeric(tx.Price),
			nullable(tx.CustomerID),
			nullable(tx.Country),
		}
	}
	return rows
}

func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
