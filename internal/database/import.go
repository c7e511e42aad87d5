package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/mongo"

	"rfm-segmentation/internal/model"
)

// BatchSize is the number of rows written per transaction.
const BatchSize = 500

// Import creates table if needed and writes txs to it in batches.
func Import(ctx context.Context, db DatabaseDriver, table string, txs []model.Transaction, logger *log.Logger) (int, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := checkTable(table); err != nil {
		return 0, err
	}
	if err := db.CreateSchema(ctx, table); err != nil {
		return 0, fmt.Errorf("create schema: %w", err)
	}

	imported := 0
	for start := 0; start < len(txs); start += BatchSize {
		end := start + BatchSize
		if end > len(txs) {
			end = len(txs)
		}
		batch := txs[start:end]

		txFunc := func(tx interface{}) error {
			switch tx := tx.(type) {
			case pgx.Tx:
				_, err := tx.CopyFrom(ctx, pgx.Identifier{table}, Columns, pgx.CopyFromRows(copyRows(batch)))
				return err
			case *sql.Tx:
				stmt, args := insertStatement(table, batch)
				_, err := tx.ExecContext(ctx, stmt, args...)
				return err
			case mongo.SessionContext:
				docs, err := insertDocs(batch)
				if err != nil {
					return err
				}
				_, err = tx.Client().Database(mongoDatabase).Collection(table).InsertMany(tx, docs)
				return err
			default:
				return fmt.Errorf("unsupported transaction type: %T", tx)
			}
		}
		if err := db.ExecuteTx(ctx, txFunc); err != nil {
			return imported, fmt.Errorf("rows %d-%d: %w", start, end-1, err)
		}
		imported += len(batch)
		logger.Printf("Imported %d/%d rows", imported, len(txs))
	}
	return imported, nil
}
