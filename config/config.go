// Package config loads machfmt's YAML configuration file, which selects
// dialect and formatting defaults so a repo doesn't have to repeat CLI
// flags for every invocation.
package config

import (
	"os"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	"github.com/machparse/machparse/format"
	"github.com/machparse/machparse/token"
)

// Config is the on-disk shape of .machfmt.yml.
type Config struct {
	DialectName       string `yaml:"dialect"`
	KeywordCase       string `yaml:"keyword_case"`
	PlaceholderStyle  string `yaml:"placeholder_style"`
	IdentifierQuoting string `yaml:"identifier_quoting"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{DialectName: "postgres", KeywordCase: "upper", PlaceholderStyle: "native", IdentifierQuoting: "as_needed"}
}

// Load reads and parses the YAML config at path. A missing file is not an
// error: Default() is returned instead, so machfmt works unconfigured.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Annotatef(err, "reading config %q", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Annotatef(err, "parsing config %q", path)
	}
	return cfg, nil
}

// Dialect resolves the configured dialect name to a token.Dialect, defaulting
// to Postgres for an unrecognized or empty value.
func (c Config) Dialect() token.Dialect {
	switch c.DialectName {
	case "mysql":
		return token.MySQL
	case "sqlite":
		return token.SQLite
	case "mssql":
		return token.MSSQL
	default:
		return token.Postgres
	}
}

// SqlFormatterOptions builds format.SqlFormatterOptions from this config.
func (c Config) SqlFormatterOptions() format.SqlFormatterOptions {
	opts := format.SqlFormatterOptions{Preset: c.Dialect()}

	if c.KeywordCase == "lower" {
		opts.KeywordCase = format.KeywordLower
	}

	switch c.PlaceholderStyle {
	case "question":
		opts.PlaceholderStyle = format.PlaceholderQuestion
	case "dollar":
		opts.PlaceholderStyle = format.PlaceholderDollar
	case "colon":
		opts.PlaceholderStyle = format.PlaceholderColon
	}

	switch c.IdentifierQuoting {
	case "always":
		opts.IdentifierQuoting = format.QuoteAlways
	case "never":
		opts.IdentifierQuoting = format.QuoteNever
	}

	return opts
}
