package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"rfm-segmentation/internal/model"
)

// sqlStore holds what MySQL and SQLite share through database/sql.
type sqlStore struct {
	db *sql.DB
}

func (s *sqlStore) open(driverName, dsn string) error {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *sqlStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqlStore) ExecuteTx(ctx context.Context, txFunc func(interface{}) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := txFunc(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func (s *sqlStore) Reset(ctx context.Context, table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table))
	return err
}

func (s *sqlStore) LoadTransactions(ctx context.Context, table string) ([]model.Transaction, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, loadQuery(table, "price"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var (
			tx                             model.Transaction
			description, customer, country sql.NullString
			price                          string
		)
		if err := rows.Scan(&tx.Invoice, &tx.StockCode, &description, &tx.Quantity, &tx.InvoiceDate, &price, &customer, &country); err != nil {
			return nil, err
		}
		if tx.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("invoice %s: price: %w", tx.Invoice, err)
		}
		tx.Description = description.String
		tx.CustomerID = customer.String
		tx.Country = country.String
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// insertStatement builds one multi-row INSERT with ? placeholders.
func insertStatement(table string, txs []model.Transaction) (string, []interface{}) {
	valueStrings := make([]string, 0, len(txs))
	valueArgs := make([]interface{}, 0, len(txs)*len(Columns))
	for _, tx := range txs {
		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			tx.Invoice,
			tx.StockCode,
			nullable(tx.Description),
			tx.Quantity,
			tx.InvoiceDate,
			tx.Price.String(),
			nullable(tx.CustomerID),
			nullable(tx.Country),
		)
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, strings.Join(Columns, ", "), strings.Join(valueStrings, ","))
	return stmt, valueArgs
}
