package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

var ErrUnknownSource = errors.New("unknown source kind")

type Config struct {
	Databases Databases `yaml:"databases"`
	Source    Source    `yaml:"source"`
	Analysis  Analysis  `yaml:"analysis"`
	Report    Report    `yaml:"report"`
}

type Databases struct {
	Postgres string `yaml:"postgres"`
	MySQL    string `yaml:"mysql"`
	Mongo    string `yaml:"mongo"`
	SQLite   string `yaml:"sqlite"`
}

// Source describes where transactions are read from.
type Source struct {
	Kind  string `yaml:"kind"` // xlsx, csv, postgres, mysql, sqlite or mongo
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet"`
	Table string `yaml:"table"`
}

type Analysis struct {
	ReferenceDate      string `yaml:"reference_date"`
	CancellationMarker string `yaml:"cancellation_marker"`
	Repeat             int    `yaml:"repeat"`
}

type Report struct {
	InspectSegments []string `yaml:"inspect_segments"`
	InspectLimit    int      `yaml:"inspect_limit"`
}

func LoadConfig(path string) (*Config, error) {
	config := Default()

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return config, nil
}

// Default returns the settings of the 2010-2011 online retail run.
func Default() *Config {
	return &Config{
		Source: Source{
			Kind:  "xlsx",
			Path:  "online_retail_II.xlsx",
			Sheet: "Year 2010-2011",
			Table: "transactions",
		},
		Analysis: Analysis{
			ReferenceDate:      "2011-12-11",
			CancellationMarker: "C",
			Repeat:             1,
		},
		Report: Report{
			InspectSegments: []string{"cant_loose", "about_to_sleep", "new_customers"},
			InspectLimit:    5,
		},
	}
}

// Reference parses the configured reference date as midnight UTC.
func (a Analysis) Reference() (time.Time, error) {
	if a.ReferenceDate == "" {
		return time.Time{}, errors.New("analysis.reference_date is required")
	}
	t, err := time.Parse(dateLayout, a.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("analysis.reference_date: %w", err)
	}
	return t, nil
}

// Require returns the connection string for kind, failing when it is unset.
func (d Databases) Require(kind string) (string, error) {
	dsn, err := d.DSN(kind)
	if err != nil {
		return "", err
	}
	if dsn == "" {
		return "", fmt.Errorf("databases.%s is required", kind)
	}
	return dsn, nil
}

// DSN returns the connection string for a database source kind.
func (d Databases) DSN(kind string) (string, error) {
	switch kind {
	case "postgres":
		return d.Postgres, nil
	case "mysql":
		return d.MySQL, nil
	case "mongo":
		return d.Mongo, nil
	case "sqlite":
		return d.SQLite, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSource, kind)
}

func (c *Config) Validate() error {
	switch c.Source.Kind {
	case "xlsx", "csv":
		if c.Source.Path == "" {
			return fmt.Errorf("source.path is required for %s", c.Source.Kind)
		}
	case "postgres", "mysql", "mongo", "sqlite":
		if _, err := c.Databases.Require(c.Source.Kind); err != nil {
			return err
		}
		if c.Source.Table == "" {
			return errors.New("source.table is required")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, c.Source.Kind)
	}
	if _, err := c.Analysis.Reference(); err != nil {
		return err
	}
	if c.Analysis.Repeat < 1 {
		return fmt.Errorf("analysis.repeat must be at least 1, got %d", c.Analysis.Repeat)
	}
	return nil
}
