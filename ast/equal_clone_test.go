package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machparse/machparse/token"
)

func sampleBinary(startLine int) *BinaryExpr {
	pos := token.Pos{Line: startLine, Column: 1}
	return &BinaryExpr{
		StartPos: pos,
		EndPos:   pos,
		Op:       token.EQ,
		Left:     &ColName{StartPos: pos, EndPos: pos, Parts: []string{"id"}},
		Right:    &Literal{StartPos: pos, EndPos: pos, Type: LiteralInt, Value: "1"},
	}
}

func TestEqualIgnoresPositions(t *testing.T) {
	a := sampleBinary(1)
	b := sampleBinary(99)
	assert.True(t, Equal(a, b))
}

func TestEqualDetectsValueDifference(t *testing.T) {
	a := sampleBinary(1)
	b := sampleBinary(1)
	b.Right.(*Literal).Value = "2"
	assert.False(t, Equal(a, b))
}

func TestEqualNilHandling(t *testing.T) {
	var a, b Expr
	assert.True(t, Equal(a, b))

	a = sampleBinary(1)
	assert.False(t, Equal(a, b))
	assert.False(t, Equal(b, a))
}

func TestCloneProducesEqualButDistinctTree(t *testing.T) {
	orig := sampleBinary(5)
	cloned := Clone(orig)

	require.True(t, Equal(orig, cloned))

	cb, ok := cloned.(*BinaryExpr)
	require.True(t, ok)
	assert.NotSame(t, orig, cb)
	assert.NotSame(t, orig.Left, cb.Left)
	assert.NotSame(t, orig.Right, cb.Right)

	// Mutating the clone must not affect the original.
	cb.Right.(*Literal).Value = "2"
	assert.Equal(t, "1", orig.Right.(*Literal).Value)
}

func TestClonePreservesPositions(t *testing.T) {
	orig := sampleBinary(7)
	cloned := Clone(orig)
	assert.Equal(t, orig.Pos(), cloned.Pos())
	assert.Equal(t, orig.End(), cloned.End())
}
