package transform

import (
	"github.com/machparse/machparse/ast"
	"github.com/machparse/machparse/errs"
)

// FixtureSet supplies the literal rows a FixtureRewriter substitutes for a
// table primary, keyed the same way as FixtureRewriter.Schema.
type FixtureSet map[string][][]any

// FixtureRewriter redirects table references in a query to synthetic
// in-memory fixture data: each matched table primary is replaced by a
// `VALUES (...)` subquery built from Fixtures, column-aliased to the
// declared column list in Schema, so the rest of the query runs unmodified
// against literal rows instead of a real table.
type FixtureRewriter struct {
	// Schema declares, for each fixture-backed table, the column list its
	// VALUES replacement is aliased to. Keys are table names, qualified
	// with DefaultSchema when the reference itself carries no qualifier
	// (e.g. "fixtures.orders" or just "orders" when DefaultSchema is "").
	Schema map[string][]string

	// Fixtures supplies the literal rows for each table named in Schema.
	Fixtures FixtureSet

	// DefaultSchema qualifies an unqualified table reference before it is
	// looked up in Schema/Fixtures.
	DefaultSchema string

	// ErrorOnMissing controls behavior when a referenced table has no entry
	// in Schema. false (the default) passes the table through unchanged;
	// true makes Rewrite fail with errs.MissingFixtureError.
	ErrorOnMissing bool
}

// Rewrite retargets every table primary in stmt's FROM scope that matches a
// fixture, keeping (or synthesizing) its alias so column references
// elsewhere in the query keep resolving. Only SELECT queries carry a
// rewritable FROM scope; any other statement is returned unchanged.
func (r *FixtureRewriter) Rewrite(stmt ast.Statement) (ast.Statement, error) {
	sel, ok := stmt.(*ast.SelectStmt)
	if !ok {
		return stmt, nil
	}
	from, err := r.rewriteTableExpr(sel.From)
	if err != nil {
		return nil, err
	}
	sel.From = from
	return sel, nil
}

func (r *FixtureRewriter) rewriteTableExpr(te ast.TableExpr) (ast.TableExpr, error) {
	switch t := te.(type) {
	case nil:
		return nil, nil
	case *ast.TableName:
		return r.substitute(t, "")
	case *ast.AliasedTableExpr:
		tn, ok := t.Expr.(*ast.TableName)
		if !ok {
			inner, err := r.rewriteTableExpr(t.Expr)
			if err != nil {
				return nil, err
			}
			t.Expr = inner
			return t, nil
		}
		sub, err := r.substitute(tn, t.Alias)
		if err != nil {
			return nil, err
		}
		if sub == ast.TableExpr(tn) {
			return t, nil // passthrough: nothing matched
		}
		aliased := sub.(*ast.AliasedTableExpr)
		t.Expr = aliased.Expr
		t.ColumnAliases = aliased.ColumnAliases
		if t.Alias == "" {
			t.Alias = aliased.Alias
		}
		return t, nil
	case *ast.JoinExpr:
		left, err := r.rewriteTableExpr(t.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.rewriteTableExpr(t.Right)
		if err != nil {
			return nil, err
		}
		t.Left, t.Right = left, right
		return t, nil
	case *ast.ParenTableExpr:
		inner, err := r.rewriteTableExpr(t.Expr)
		if err != nil {
			return nil, err
		}
		t.Expr = inner
		return t, nil
	case *ast.TableList:
		for i, tbl := range t.Tables {
			rewritten, err := r.rewriteTableExpr(tbl)
			if err != nil {
				return nil, err
			}
			t.Tables[i] = rewritten
		}
		return t, nil
	default:
		return te, nil
	}
}

// substitute checks tn against the fixture set and, on a match, returns the
// *ast.AliasedTableExpr that replaces it. alias, when empty, defaults to
// tn's own name so a reference written without an explicit alias (e.g.
// `FROM orders`) keeps resolving under its original name. On no match it
// returns tn itself unchanged, which callers compare against by identity.
func (r *FixtureRewriter) substitute(tn *ast.TableName, alias string) (ast.TableExpr, error) {
	key := r.lookupKey(tn)
	columns, ok := r.Schema[key]
	if !ok {
		if r.ErrorOnMissing {
			return nil, errs.NewMissingFixtureError(tn.Name())
		}
		return tn, nil
	}
	if alias == "" {
		alias = tn.Name()
	}

	values := &ast.ValuesStmt{StartPos: tn.StartPos, EndPos: tn.EndPos}
	for _, row := range r.Fixtures[key] {
		lits := make([]ast.Expr, len(row))
		for i, v := range row {
			lits[i] = literalFor(tn.StartPos, tn.EndPos, v)
		}
		values.Rows = append(values.Rows, lits)
	}

	return &ast.AliasedTableExpr{
		StartPos:      tn.StartPos,
		EndPos:        tn.EndPos,
		Expr:          &ast.ParenTableExpr{StartPos: tn.StartPos, EndPos: tn.EndPos, Expr: values},
		Alias:         alias,
		ColumnAliases: columns,
	}, nil
}

func (r *FixtureRewriter) lookupKey(tn *ast.TableName) string {
	schema := tn.Schema()
	if schema == "" {
		schema = r.DefaultSchema
	}
	if schema == "" {
		return tn.Name()
	}
	return schema + "." + tn.Name()
}
