package database

import "fmt"

// Columns is the column order used for every SQL store.
var Columns = []string{"invoice", "stock_code", "description", "quantity", "invoice_date", "price", "customer_id", "country"}

func GetTransactionsSchema(table string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			invoice VARCHAR(32) NOT NULL,
			stock_code VARCHAR(32) NOT NULL,
			description VARCHAR(255),
			quantity INT NOT NULL,
			invoice_date TIMESTAMP NOT NULL,
			price DECIMAL(12, 4) NOT NULL,
			customer_id VARCHAR(32),
			country VARCHAR(64)
		);
	`, table)
}

// GetMySQLTransactionsSchema stores invoice dates as DATETIME and indexes
// the customer column.
func GetMySQLTransactionsSchema(table string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			invoice VARCHAR(32) NOT NULL,
			stock_code VARCHAR(32) NOT NULL,
			description VARCHAR(255),
			quantity INT NOT NULL,
			invoice_date DATETIME NOT NULL,
			price DECIMAL(12, 4) NOT NULL,
			customer_id VARCHAR(32),
			country VARCHAR(64),
			INDEX idx_%s_customer (customer_id)
		);
	`, table, table)
}

func loadQuery(table string, priceExpr string) string {
	return fmt.Sprintf(
		"SELECT invoice, stock_code, description, quantity, invoice_date, %s, customer_id, country FROM %s",
		priceExpr, table)
}

/*
MongoDB document structure:

transactions: {
  invoice: <string>,
  stock_code: <string>,
  description: <string>,
  quantity: <number>,
  invoice_date: <date>,
  price: <decimal128>,
  customer_id: <string>,
  country: <string>
}

*/
