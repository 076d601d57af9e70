package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machparse/machparse/format"
	"github.com/machparse/machparse/token"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".machfmt.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
dialect: mysql
keyword_case: lower
placeholder_style: question
identifier_quoting: always
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, token.MySQL, cfg.Dialect())

	opts := cfg.SqlFormatterOptions()
	assert.Equal(t, format.KeywordLower, opts.KeywordCase)
	assert.Equal(t, format.PlaceholderQuestion, opts.PlaceholderStyle)
	assert.Equal(t, format.QuoteAlways, opts.IdentifierQuoting)
}

func TestDialectDefaultsToPostgresForUnknownName(t *testing.T) {
	cfg := Config{DialectName: "oracle"}
	assert.Equal(t, token.Postgres, cfg.Dialect())
}
