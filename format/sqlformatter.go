package format

import (
	"fmt"

	"github.com/machparse/machparse/ast"
	"github.com/machparse/machparse/errs"
	"github.com/machparse/machparse/token"
)

// KeywordCase controls how reserved words are rendered. PreserveCase is not
// offered: the AST does not retain a keyword's original source casing, only
// its canonical token, so there is nothing to preserve.
type KeywordCase int

const (
	KeywordUpper KeywordCase = iota
	KeywordLower
)

// SqlFormatterOptions configures a SqlFormatter. Zero value renders
// dialect-neutral, uppercase, as-needed-quoted, native-placeholder SQL —
// the same output Formatter/String have always produced.
type SqlFormatterOptions struct {
	// Preset picks the placeholder style when PlaceholderStyle is left at
	// PlaceholderNative: MySQL and SQLite render ?, MSSQL renders the colon
	// style, Postgres keeps each marker as written. Preset does not change
	// IdentifierQuoting or KeywordCase.
	Preset token.Dialect

	KeywordCase       KeywordCase
	PlaceholderStyle  PlaceholderStyle
	IdentifierQuoting IdentifierQuoting
}

// SqlFormatter renders an AST to SQL text with dialect-aware presets, on top
// of the lower-level Formatter engine. Use it instead of Formatter directly
// whenever dialect, placeholder remapping, or bind-value collection matter;
// reach for Formatter/String only for quick, dialect-neutral output.
type SqlFormatter struct {
	opts Options
}

// NewSqlFormatter builds a SqlFormatter from opts, applying the dialect
// preset to PlaceholderStyle when that field is left at its zero value.
func NewSqlFormatter(opts SqlFormatterOptions) *SqlFormatter {
	resolved := Options{
		Uppercase:         opts.KeywordCase != KeywordLower,
		Indent:            DefaultOptions.Indent,
		IdentifierQuoting: opts.IdentifierQuoting,
		PlaceholderStyle:  opts.PlaceholderStyle,
	}
	if resolved.PlaceholderStyle == PlaceholderNative {
		switch opts.Preset {
		case token.MySQL, token.SQLite:
			resolved.PlaceholderStyle = PlaceholderQuestion
		case token.MSSQL:
			resolved.PlaceholderStyle = PlaceholderColon
		}
	}
	return &SqlFormatter{opts: resolved}
}

// Params is the bind-value payload Format produces alongside rendered SQL: a
// NamedParamMap for named/at-named placeholder output, or a
// PositionalParams slice for numbered/anonymous output. Named after
// spec.md's {name: value} map / ordered value list shape; distinct from the
// package-level NamedParams/ListParams functions below, which only report
// parameter names, not a bind-value payload.
type Params interface {
	paramsNode()
}

// NamedParamMap is keyed by parameter name, for :name/@name placeholder output.
type NamedParamMap map[string]any

// PositionalParams holds one value per rendered placeholder, in source
// order, for $n/? placeholder output. A name referenced twice gets two
// entries, and under PlaceholderDollar two distinct $n positions; positions
// are not shared between references to the same name.
type PositionalParams []any

func (NamedParamMap) paramsNode()    {}
func (PositionalParams) paramsNode() {}

// Format renders node to SQL text under this formatter's configuration. If
// params is non-nil, each value it holds whose key names a parameter
// encountered while rendering is copied into the returned Params payload —
// a NamedParamMap when the output placeholder style is named, a
// PositionalParams slice (in source order) otherwise. Format cannot fail on
// a well-formed AST; a nil node, or a node type this formatter has no
// rendering rule for, is reported as errs.FormatError.
func (sf *SqlFormatter) Format(node ast.Node, params map[string]any) (string, Params, error) {
	if node == nil {
		return "", nil, errs.NewFormatError("cannot format a nil AST node")
	}
	f := New(sf.opts)
	f.Format(node)
	sql := f.String()
	if sql == "" {
		return "", nil, errs.NewFormatError(fmt.Sprintf("%T: no rendering rule for this node type", node))
	}
	return sql, buildParams(f.Params(), params, sf.opts.PlaceholderStyle), nil
}

// buildParams decides, from the placeholder style actually rendered,
// whether the output payload should be a name-keyed map or a positional
// list, then fills it in from values by each parameter's source name.
func buildParams(formatted []*ast.Param, values map[string]any, style PlaceholderStyle) Params {
	if outputIsNamed(formatted, style) {
		out := make(NamedParamMap, len(formatted))
		for _, p := range formatted {
			if p.Name == "" {
				continue
			}
			if v, ok := values[p.Name]; ok {
				out[p.Name] = v
			}
		}
		return out
	}
	out := make(PositionalParams, 0, len(formatted))
	for _, p := range formatted {
		out = append(out, values[p.Name])
	}
	return out
}

func outputIsNamed(formatted []*ast.Param, style PlaceholderStyle) bool {
	switch style {
	case PlaceholderQuestion, PlaceholderDollar:
		return false
	case PlaceholderColon:
		return true
	default: // PlaceholderNative: named only if every marker actually rendered named
		for _, p := range formatted {
			if p.Type != ast.ParamColon && p.Type != ast.ParamAt {
				return false
			}
		}
		return true
	}
}

// ListParams renders node and returns its parameters' original names/indexes
// in source order — the shape a `database/sql` positional-bind call needs
// regardless of which marker style the query used.
func ListParams(node ast.Node) []string {
	f := New(DefaultOptions)
	f.Format(node)
	out := make([]string, 0, len(f.Params()))
	for _, p := range f.Params() {
		switch p.Type {
		case ast.ParamColon, ast.ParamAt:
			out = append(out, p.Name)
		case ast.ParamDollar:
			out = append(out, itoa(p.Index))
		default:
			out = append(out, "?")
		}
	}
	return out
}

// NamedParams renders node and returns the set of distinct named parameters
// (:name / @name) it references, for validating an injection payload before
// calling transform.InjectNamed.
func NamedParams(node ast.Node) []string {
	f := New(DefaultOptions)
	f.Format(node)
	seen := make(map[string]bool)
	var out []string
	for _, p := range f.Params() {
		if p.Type != ast.ParamColon && p.Type != ast.ParamAt {
			continue
		}
		if !seen[p.Name] {
			seen[p.Name] = true
			out = append(out, p.Name)
		}
	}
	return out
}
