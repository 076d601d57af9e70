package ast

import "reflect"

// Clone returns a deep copy of n. Positions are preserved, so the clone
// formats and round-trips identically to the original; mutate the clone
// freely without aliasing the source tree.
//
// The AST has on the order of seventy node types (see ast/pool.go's
// ReleaseAST for the shapes the parser actually pools); hand-writing a
// case per type here would just restate what reflect.Value already knows
// how to walk. Clone instead recurses structurally over pointers, slices,
// interfaces and structs, stopping at token.Pos and other plain value
// fields, which is the same traversal pool.go does by hand for the
// subset of types it cares about.
func Clone(n Node) Node {
	if isNil(n) {
		return nil
	}
	v := cloneValue(reflect.ValueOf(n))
	cloned, _ := v.Interface().(Node)
	return cloned
}

func cloneValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(cloneValue(v.Elem()))
		return out
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(cloneValue(v.Elem()))
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if !out.Field(i).CanSet() {
				continue
			}
			out.Field(i).Set(cloneValue(f))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(cloneValue(iter.Key()), cloneValue(iter.Value()))
		}
		return out
	default:
		// token.Pos and other scalar/value fields copy by value.
		return v
	}
}
