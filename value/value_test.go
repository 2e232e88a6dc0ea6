package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestView(t *testing.T) {
	assert.Equal(t, "()", Unit{}.View())
	assert.Equal(t, "42", Integer{Value: 42}.View())
	assert.Equal(t, "-7", Integer{Value: -7}.View())
	assert.Equal(t, "3.5", Float{Value: 3.5}.View())
	assert.Equal(t, "true", Boolean{Value: true}.View())
	assert.Equal(t, "hello", String{Value: "hello"}.View())
	assert.Equal(t, "(fn)", Function{}.View())
	assert.Equal(t, "(builtin)", Builtin{}.View())
	assert.Equal(t, "undefined", Undefined{}.View())

	arr := Array{Elements: []Value{Integer{Value: 1}, Integer{Value: 2}}}
	assert.Equal(t, "[1 2]", arr.View())

	spread := Spread{Elements: []Value{Integer{Value: 1}, Integer{Value: 2}}}
	assert.Equal(t, "..[1 2]", spread.View())
}

func TestTruthy(t *testing.T) {
	assert.True(t, Truthy(Boolean{Value: true}))
	assert.False(t, Truthy(Boolean{Value: false}))
	assert.False(t, Truthy(Integer{Value: 0}))
	assert.True(t, Truthy(Integer{Value: 1}))
	assert.False(t, Truthy(Float{Value: 0}))
	assert.True(t, Truthy(Float{Value: 0.5}))
	assert.True(t, Truthy(String{Value: ""}))
	assert.True(t, Truthy(Unit{}))
	assert.True(t, Truthy(Undefined{}))
}

func TestCollapseSpread(t *testing.T) {
	assert.Equal(t, Unit{}, CollapseSpread(Spread{}))
	assert.Equal(t, Integer{Value: 2}, CollapseSpread(Spread{Elements: []Value{Integer{Value: 1}, Integer{Value: 2}}}))
	assert.Equal(t, Integer{Value: 5}, CollapseSpread(Integer{Value: 5}))
}

func TestEqual(t *testing.T) {
	eq, ok := Equal(Integer{Value: 2}, Float{Value: 2.0})
	assert.True(t, ok)
	assert.True(t, eq)

	eq, ok = Equal(String{Value: "a"}, String{Value: "b"})
	assert.True(t, ok)
	assert.False(t, eq)

	_, ok = Equal(Function{}, Function{})
	assert.False(t, ok)
}
