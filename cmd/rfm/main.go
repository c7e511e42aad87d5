package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"rfm-segmentation/internal/config"
	"rfm-segmentation/internal/database"
	"rfm-segmentation/internal/model"
	"rfm-segmentation/internal/report"
	"rfm-segmentation/internal/rfm"
	"rfm-segmentation/internal/runner"
	"rfm-segmentation/internal/spreadsheet"
)

func main() {
	var exitCode int
	defer func() {
		os.Exit(exitCode)
	}()

	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	source := flag.String("source", "", "source kind (xlsx, csv, postgres, mysql, sqlite or mongo), overrides config")
	path := flag.String("path", "", "spreadsheet path, overrides config")
	referenceDate := flag.String("reference-date", "", "analysis date as YYYY-MM-DD, overrides config")
	repeat := flag.Int("repeat", 0, "number of times to run the analysis for timing, overrides config")
	jsonOutput := flag.Bool("json", false, "print the result as JSON instead of tables")

	flag.Parse()

	logger := log.New(os.Stderr, "rfm ", log.LstdFlags)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Printf("Failed to load config: %v", err)
		exitCode = 1
		return
	}
	if *source != "" {
		cfg.Source.Kind = *source
	}
	if *path != "" {
		cfg.Source.Path = *path
	}
	if *referenceDate != "" {
		cfg.Analysis.ReferenceDate = *referenceDate
	}
	if *repeat > 0 {
		cfg.Analysis.Repeat = *repeat
	}
	if err := cfg.Validate(); err != nil {
		logger.Printf("Invalid config: %v", err)
		exitCode = 1
		return
	}
	ref, _ := cfg.Analysis.Reference()

	var loader runner.Loader
	switch cfg.Source.Kind {
	case "xlsx":
		loader = &spreadsheet.XLSX{Path: cfg.Source.Path, Sheet: cfg.Source.Sheet}
	case "csv":
		loader = &spreadsheet.CSV{Path: cfg.Source.Path}
	default:
		driver, err := database.NewDriver(cfg.Source.Kind)
		if err != nil {
			logger.Print(err)
			exitCode = 1
			return
		}
		dsn, _ := cfg.Databases.DSN(cfg.Source.Kind)
		if err := driver.Connect(dsn); err != nil {
			logger.Printf("Failed to connect to %s: %v", cfg.Source.Kind, err)
			exitCode = 1
			return
		}
		defer driver.Close()
		loader = &database.TableLoader{Driver: driver, Table: cfg.Source.Table}
	}

	logger.Printf("Running RFM analysis from %s with reference date %s...", cfg.Source.Kind, cfg.Analysis.ReferenceDate)

	opts := rfm.Options{ReferenceDate: ref, CancellationMarker: cfg.Analysis.CancellationMarker}
	result, err := runner.Run(context.Background(), loader, opts, cfg.Analysis.Repeat, logger)
	if err != nil {
		logger.Printf("Analysis failed: %v", err)
		exitCode = 1
		return
	}

	if *jsonOutput {
		if err := report.WriteJSON(os.Stdout, result); err != nil {
			logger.Printf("Failed to write result: %v", err)
			exitCode = 1
		}
		return
	}

	if err := printResult(result, cfg.Report); err != nil {
		logger.Printf("Failed to print result: %v", err)
		exitCode = 1
	}
}

func printResult(result *runner.Result, cfg config.Report) error {
	out := os.Stdout
	if err := report.PrintOverview(out, result.Overview); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if err := report.PrintSummary(out, result.Segments); err != nil {
		return err
	}
	for _, name := range cfg.InspectSegments {
		fmt.Fprintln(out)
		seg := model.Segment(name)
		if err := report.PrintMembers(out, seg, report.Members(result.Customers, seg, cfg.InspectLimit)); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "\nruns: %d  average: %v  p95: %v  p99: %v\n", result.Runs, result.AverageLatency, result.P95Latency, result.P99Latency)
	return nil
}
