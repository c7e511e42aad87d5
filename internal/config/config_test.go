package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
databases:
  postgres: "postgres://localhost/retail"
source:
  kind: postgres
  table: invoices
analysis:
  reference_date: "2012-01-01"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Source.Kind)
	assert.Equal(t, "invoices", cfg.Source.Table)
	assert.Equal(t, "Year 2010-2011", cfg.Source.Sheet, "unset keys keep defaults")
	assert.Equal(t, "C", cfg.Analysis.CancellationMarker)
	assert.Equal(t, 1, cfg.Analysis.Repeat)
	require.NoError(t, cfg.Validate())

	ref, err := cfg.Analysis.Reference()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC), ref)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadConfigBadYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "source: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown kind", func(c *Config) { c.Source.Kind = "parquet" }, true},
		{"xlsx without path", func(c *Config) { c.Source.Path = "" }, true},
		{"mysql without dsn", func(c *Config) { c.Source.Kind = "mysql" }, true},
		{"sqlite with dsn", func(c *Config) {
			c.Source.Kind = "sqlite"
			c.Databases.SQLite = "file:retail.db"
		}, false},
		{"missing reference date", func(c *Config) { c.Analysis.ReferenceDate = "" }, true},
		{"bad reference date", func(c *Config) { c.Analysis.ReferenceDate = "11/12/2011" }, true},
		{"zero repeat", func(c *Config) { c.Analysis.Repeat = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	d := Databases{Postgres: "pg", MySQL: "my", Mongo: "mongo", SQLite: "lite"}
	for kind, want := range map[string]string{"postgres": "pg", "mysql": "my", "mongo": "mongo", "sqlite": "lite"} {
		got, err := d.DSN(kind)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := d.DSN("xlsx")
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestRequire(t *testing.T) {
	d := Databases{Postgres: "pg"}

	dsn, err := d.Require("postgres")
	require.NoError(t, err)
	assert.Equal(t, "pg", dsn)

	_, err = d.Require("mysql")
	assert.EqualError(t, err, "databases.mysql is required")

	_, err = d.Require("xlsx")
	assert.ErrorIs(t, err, ErrUnknownSource)
}
