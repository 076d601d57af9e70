// Package transform provides small, composable rewrites over a parsed SQL
// AST: appending a WHERE condition, merging two SELECTs with UNION ALL,
// injecting parameter values, rewriting table references to test fixtures,
// and aliasing a SELECT's output columns to match a DTO's field names.
//
// Every transformer takes and returns AST nodes; none of them format or
// re-parse SQL text themselves except where a raw-string convenience wrapper
// is explicitly offered (AppendWhereRaw).
package transform

import (
	"github.com/machparse/machparse/ast"
	"github.com/machparse/machparse/errs"
	"github.com/machparse/machparse/parser"
	"github.com/machparse/machparse/token"
)

// AppendWhere ANDs cond onto stmt's WHERE clause, preserving whatever was
// already there. Calling it with the same cond twice is safe (it does not
// try to detect or collapse duplicate conditions, matching how a human
// editing SQL by hand would compose filters).
func AppendWhere(stmt *ast.SelectStmt, cond ast.Expr) *ast.SelectStmt {
	if stmt.Where == nil {
		stmt.Where = cond
		return stmt
	}
	stmt.Where = &ast.BinaryExpr{
		StartPos: stmt.Where.Pos(),
		EndPos:   cond.End(),
		Op:       token.AND,
		Left:     stmt.Where,
		Right:    cond,
	}
	return stmt
}

// AppendWhereRaw parses cond as a boolean expression and ANDs it onto stmt's
// WHERE clause. cond is parsed in isolation (as `SELECT 1 WHERE <cond>`), so
// it cannot itself reference a CTE or subquery defined in stmt.
func AppendWhereRaw(stmt *ast.SelectStmt, cond string) (*ast.SelectStmt, error) {
	parsed, err := parser.New("SELECT 1 WHERE " + cond).Parse()
	if err != nil {
		return nil, errs.NewParseError(token.Pos{}, "AppendWhereRaw: "+err.Error())
	}
	sel, ok := parsed.(*ast.SelectStmt)
	if !ok || sel.Where == nil {
		return nil, errs.NewParseError(token.Pos{}, "AppendWhereRaw: condition did not parse to a boolean expression")
	}
	return AppendWhere(stmt, sel.Where), nil
}

// ToUnionAll combines left and right into `left UNION ALL right`. Either
// side may itself already be a *ast.SetOp; the result always associates
// left-to-right, matching how the parser builds a chain of set operations.
func ToUnionAll(left, right ast.Statement) *ast.SetOp {
	return &ast.SetOp{
		StartPos: left.Pos(),
		EndPos:   right.End(),
		Type:     ast.Union,
		All:      true,
		Left:     left,
		Right:    right,
	}
}
