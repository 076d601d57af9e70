package errs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/machparse/machparse/token"
)

func TestInjectErrorMessage(t *testing.T) {
	err := NewInjectError("user_id")
	assert.Contains(t, err.Error(), "user_id")
	assert.True(t, IsInjectError(err))
	assert.False(t, IsMissingFixtureError(err))
}

func TestMissingFixtureErrorMessage(t *testing.T) {
	err := NewMissingFixtureError("orders")
	assert.Contains(t, err.Error(), "orders")
	assert.True(t, IsMissingFixtureError(err))
	assert.False(t, IsInjectError(err))
}

func TestParseErrorIncludesPosition(t *testing.T) {
	err := NewParseError(token.Pos{Line: 3, Column: 7}, "unexpected token")
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "column 7")
}

func TestCancelledMessageIncludesCause(t *testing.T) {
	cause := NewFormatError("boom")
	err := NewCancelled(cause)
	assert.Contains(t, err.Error(), "boom")
}
