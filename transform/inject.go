package transform

import (
	"fmt"
	"strconv"

	"github.com/machparse/machparse/ast"
	"github.com/machparse/machparse/errs"
	"github.com/machparse/machparse/token"
	"github.com/machparse/machparse/visitor"
)

// InjectNamed replaces every :name / @name parameter marker in stmt with a
// literal built from values[name]. It returns errs.InjectError (via
// errs.IsInjectError) for the first marker whose name has no entry in values.
func InjectNamed(stmt ast.Statement, values map[string]any) (ast.Statement, error) {
	var firstErr error
	result := visitor.Rewrite(stmt, func(n ast.Node) ast.Node {
		if firstErr != nil {
			return n
		}
		param, ok := n.(*ast.Param)
		if !ok || (param.Type != ast.ParamColon && param.Type != ast.ParamAt) {
			return n
		}
		v, present := values[param.Name]
		if !present {
			firstErr = errs.NewInjectError(param.Name)
			return n
		}
		return literalFor(param.StartPos, param.EndPos, v)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return result.(ast.Statement), nil
}

// InjectPositional replaces every ? or $N parameter marker in stmt with a
// literal from values, in source order for ? and by index for $N. It
// returns errs.InjectError if a marker's position falls outside values.
func InjectPositional(stmt ast.Statement, values []any) (ast.Statement, error) {
	var firstErr error
	next := 0
	result := visitor.Rewrite(stmt, func(n ast.Node) ast.Node {
		if firstErr != nil {
			return n
		}
		param, ok := n.(*ast.Param)
		if !ok {
			return n
		}
		switch param.Type {
		case ast.ParamQuestion:
			idx := next
			next++
			if idx >= len(values) {
				firstErr = errs.NewInjectError(fmt.Sprintf("?[%d]", idx))
				return n
			}
			return literalFor(param.StartPos, param.EndPos, values[idx])
		case ast.ParamDollar:
			idx := param.Index - 1
			if idx < 0 || idx >= len(values) {
				firstErr = errs.NewInjectError("$" + strconv.Itoa(param.Index))
				return n
			}
			return literalFor(param.StartPos, param.EndPos, values[idx])
		default:
			return n
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return result.(ast.Statement), nil
}

// literalFor converts a Go value into the ast.Literal the formatter will
// render in its place. nil maps to SQL NULL.
func literalFor(start, end token.Pos, v any) *ast.Literal {
	lit := &ast.Literal{StartPos: start, EndPos: end}
	switch val := v.(type) {
	case nil:
		lit.Type = ast.LiteralNull
		lit.Value = "NULL"
	case bool:
		lit.Type = ast.LiteralBool
		if val {
			lit.Value = "TRUE"
		} else {
			lit.Value = "FALSE"
		}
	case int:
		lit.Type = ast.LiteralInt
		lit.Value = strconv.Itoa(val)
	case int64:
		lit.Type = ast.LiteralInt
		lit.Value = strconv.FormatInt(val, 10)
	case float64:
		lit.Type = ast.LiteralFloat
		lit.Value = strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		lit.Type = ast.LiteralString
		lit.Value = val
	default:
		lit.Type = ast.LiteralString
		lit.Value = fmt.Sprintf("%v", val)
	}
	return lit
}
