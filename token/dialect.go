package token

// Dialect selects the SQL variant a Lexer/Parser is tuned for. Postgres, the
// default, stays a permissive superset (it is also the dialect every
// fixture/vendor-compat query in this repo is parsed under, so it must
// tokenize every identifier-quoting and parameter-marker form the others
// use). Requesting MySQL, SQLite, or MSSQL explicitly narrows the lexer to
// that dialect's own forms: it rejects `` `backtick` `` / `[bracket]`
// identifiers and `$n`/`$tag$...$tag$` constructs the requesting dialect
// doesn't own (see the Allows* methods below), producing an ILLEGAL token
// the parser reports as expected-token-mismatch. `:name` stays accepted
// everywhere since it is the canonical internal form parameter injection
// builds regardless of output dialect; the formatter remaps it to the
// requested placeholder style on the way out (a Dialect passed as the
// formatter's Preset picks its default placeholder style; the formatter does
// not consult IdentQuote).
type Dialect int

const (
	// Postgres is the default and primary dialect.
	Postgres Dialect = iota
	MySQL
	SQLite
	MSSQL
)

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	case MSSQL:
		return "mssql"
	default:
		return "unknown"
	}
}

// IdentQuote returns the dialect's preferred identifier-quoting character.
func (d Dialect) IdentQuote() byte {
	if d == MySQL {
		return '`'
	}
	return '"'
}

// AllowsBacktickIdent reports whether the lexer should tokenize
// `` `ident` `` as a quoted identifier under this dialect.
func (d Dialect) AllowsBacktickIdent() bool {
	return d == Postgres || d == MySQL
}

// AllowsBracketIdent reports whether the lexer should tokenize `[ident]`
// as a quoted identifier under this dialect. `#temp`/`##global_temp` table
// names are lexed as identifiers under every dialect.
func (d Dialect) AllowsBracketIdent() bool {
	return d == Postgres || d == MSSQL
}

// AllowsDollarParam reports whether `$n` positional parameters and
// `$tag$...$tag$` dollar-quoted strings are recognized under this dialect.
func (d Dialect) AllowsDollarParam() bool {
	return d == Postgres
}

// AllowsQuestionParam reports whether a bare `?` is recognized as an
// anonymous positional parameter under this dialect.
func (d Dialect) AllowsQuestionParam() bool {
	return d == Postgres || d == MySQL || d == SQLite
}

// AllowsAtParam reports whether `@name` is recognized as a named parameter
// under this dialect.
func (d Dialect) AllowsAtParam() bool {
	return d == Postgres || d == MSSQL
}
