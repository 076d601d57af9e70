package transform

import (
	"sort"
	"strings"

	"github.com/machparse/machparse/ast"
	"github.com/machparse/machparse/errs"
	"github.com/machparse/machparse/token"
	"github.com/machparse/machparse/visitor"
)

// ParamInjector resolves a caller-supplied value against a column already
// visible in a query's scope and appends an equality predicate for it,
// rather than substituting an existing placeholder the way InjectNamed does.
// The value itself is left in the caller's map; the formatter pulls it back
// out by name when it renders the appended :name placeholder.
type ParamInjector struct{}

// Inject resolves each key in params against base's projection or any
// column reference reachable elsewhere in the query (the only notion of
// "addressable FROM column" available without a schema registry), ANDing
// `col = :name` onto WHERE for each one. Matching is case-insensitive: the
// AST does not retain whether a source identifier was quoted, so every
// column name is folded the same way regardless of how it was written.
//
// Go map iteration is unordered, so "iteration order of the input map" is
// realized here as ascending key order, which at least makes the resulting
// WHERE tree's predicate order deterministic across calls with the same keys.
func (ParamInjector) Inject(base *ast.SelectStmt, params map[string]any) (*ast.SelectStmt, error) {
	scope := newColumnScope(base)

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		col, ok := scope.resolve(name)
		if !ok {
			return nil, errs.NewInjectError(name)
		}
		cond := &ast.BinaryExpr{
			Op:   token.EQ,
			Left: &ast.ColName{Parts: []string{col}},
			Right: &ast.Param{
				Type: ast.ParamColon,
				Name: name,
			},
		}
		base = AppendWhere(base, cond)
	}
	return base, nil
}

// columnScope is the set of names a ParamInjector may resolve an injection
// key against, folded for case-insensitive lookup.
type columnScope struct {
	byFold map[string]string // lower(name) -> name as it appears in the query
}

func newColumnScope(stmt *ast.SelectStmt) columnScope {
	s := columnScope{byFold: make(map[string]string)}
	add := func(name string) {
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, exists := s.byFold[key]; !exists {
			s.byFold[key] = name
		}
	}

	for _, col := range stmt.Columns {
		switch c := col.(type) {
		case *ast.AliasedExpr:
			if c.Alias != "" {
				add(c.Alias)
			} else if cn, ok := c.Expr.(*ast.ColName); ok {
				add(cn.Name())
			}
		case *ast.ColName:
			add(c.Name())
		}
	}

	// Projection aliases cover derived output names; everything else a query
	// can address by bare name already shows up as a ColName somewhere in
	// its FROM-qualified clauses (WHERE, ON, GROUP BY, HAVING, ORDER BY).
	visitor.WalkFunc(stmt, func(n ast.Node) bool {
		if cn, ok := n.(*ast.ColName); ok {
			add(cn.Name())
		}
		return true
	})

	return s
}

func (s columnScope) resolve(name string) (string, bool) {
	canonical, ok := s.byFold[strings.ToLower(name)]
	return canonical, ok
}
