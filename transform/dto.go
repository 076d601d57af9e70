package transform

import (
	"sort"

	"github.com/machparse/machparse/ast"
)

// AliasColumnsForDTO wraps stmt in a new outer `SELECT sqlColumn AS
// "dtoField", ...` so a caller scanning rows into a struct gets column
// names matching its field names, without modifying the inner query at
// all. columns maps each DTO field name to the column (or any expression
// the inner query projects, even one not already selected) it should be
// pulled from.
//
// Go map iteration is unordered, so "order of the column map" is realized
// here as ascending order of the DTO field names, keeping the outer
// projection's column order stable across calls for the same map.
func AliasColumnsForDTO(stmt *ast.SelectStmt, columns map[string]string) *ast.SelectStmt {
	fields := make([]string, 0, len(columns))
	for field := range columns {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	outer := &ast.SelectStmt{
		StartPos: stmt.StartPos,
		EndPos:   stmt.EndPos,
		From: &ast.AliasedTableExpr{
			Expr:  &ast.ParenTableExpr{Expr: stmt},
			Alias: "dto",
		},
	}
	for _, field := range fields {
		outer.Columns = append(outer.Columns, &ast.AliasedExpr{
			Expr:  &ast.ColName{Parts: []string{columns[field]}},
			Alias: field,
		})
	}
	return outer
}
