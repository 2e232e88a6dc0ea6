package environment

import (
	"testing"

	"github.com/kvist-lang/kvist/value"
	"github.com/stretchr/testify/assert"
)

func TestGetWalksOuterChain(t *testing.T) {
	outer := New()
	outer.Set("x", value.Integer{Value: 1})

	inner := outer.Fork()
	v, ok := inner.Get("x")
	assert.True(t, ok)
	assert.Equal(t, value.Integer{Value: 1}, v)
}

func TestSetShadowsInnermostOnly(t *testing.T) {
	outer := New()
	outer.Set("x", value.Integer{Value: 1})

	inner := outer.Fork()
	inner.Set("x", value.Integer{Value: 2})

	innerV, _ := inner.Get("x")
	outerV, _ := outer.Get("x")
	assert.Equal(t, value.Integer{Value: 2}, innerV)
	assert.Equal(t, value.Integer{Value: 1}, outerV)
}

func TestGetMissReturnsFalse(t *testing.T) {
	e := New()
	_, ok := e.Get("missing")
	assert.False(t, ok)
}

func TestSetOnSharedFrameIsVisibleToBothHolders(t *testing.T) {
	shared := New()
	shared.Set("x", value.Integer{Value: 1})

	// Two "closures" capturing the exact same frame (not a fork of it).
	closureA := shared
	closureB := shared

	closureA.Set("x", value.Integer{Value: 2})

	v, _ := closureB.Get("x")
	assert.Equal(t, value.Integer{Value: 2}, v)
}
