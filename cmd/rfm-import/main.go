package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rfm-segmentation/internal/config"
	"rfm-segmentation/internal/database"
	"rfm-segmentation/internal/model"
	"rfm-segmentation/internal/spreadsheet"
)

// rfm-import copies the invoice lines of a spreadsheet into a database
// table that cmd/rfm can later read with -source.
func main() {
	var exitCode int
	defer func() {
		os.Exit(exitCode)
	}()

	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	dbType := flag.String("db", "postgres", "database type (postgres, mysql, sqlite or mongo)")
	input := flag.String("input", "", "spreadsheet to import (.xlsx or .csv), defaults to source.path")
	table := flag.String("table", "", "destination table, defaults to source.table")
	reset := flag.Bool("reset", false, "drop the destination table before importing")

	flag.Parse()

	logger := log.New(os.Stderr, "rfm-import ", log.LstdFlags)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Printf("Failed to load config: %v", err)
		exitCode = 1
		return
	}
	if *input == "" {
		*input = cfg.Source.Path
	}
	if *table == "" {
		*table = cfg.Source.Table
	}

	dsn, err := cfg.Databases.Require(*dbType)
	if err != nil {
		logger.Printf("Invalid config: %v", err)
		exitCode = 1
		return
	}
	driver, err := database.NewDriver(*dbType)
	if err != nil {
		logger.Print(err)
		exitCode = 1
		return
	}
	if err := driver.Connect(dsn); err != nil {
		logger.Printf("Failed to connect to %s: %v", *dbType, err)
		exitCode = 1
		return
	}
	defer driver.Close()

	ctx := context.Background()

	var txs []model.Transaction
	if strings.EqualFold(filepath.Ext(*input), ".csv") {
		txs, err = (&spreadsheet.CSV{Path: *input}).Load(ctx, logger)
	} else {
		txs, err = (&spreadsheet.XLSX{Path: *input, Sheet: cfg.Source.Sheet}).Load(ctx, logger)
	}
	if err != nil {
		logger.Printf("Failed to read %s: %v", *input, err)
		exitCode = 1
		return
	}

	if *reset {
		if err := driver.Reset(ctx, *table); err != nil {
			logger.Printf("Failed to reset %s: %v", *table, err)
			exitCode = 1
			return
		}
	}

	start := time.Now()
	n, err := database.Import(ctx, driver, *table, txs, logger)
	if err != nil {
		logger.Printf("Import failed after %d rows: %v", n, err)
		exitCode = 1
		return
	}
	logger.Printf("Imported %d rows into %s/%s in %v", n, *dbType, *table, time.Since(start))
}
