// Package value defines the runtime values produced and consumed by the
// evaluator: one concrete type per variant, all implementing Value.
package value

import (
	"fmt"
	"strings"
)

// Type identifies the kind of a Value for type-checking and error messages.
type Type string

const (
	UnitType     Type = "unit"
	IntegerType  Type = "integer"
	FloatType    Type = "float"
	BooleanType  Type = "boolean"
	StringType   Type = "string"
	ArrayType    Type = "array"
	SpreadType   Type = "spread"
	FunctionType Type = "function"
	BuiltinType  Type = "builtin"
	UndefinedType Type = "undefined"
)

// Value is the interface every runtime value implements.
type Value interface {
	// Type reports which variant this value is.
	Type() Type
	// View renders the value the way println, string concatenation, and
	// error messages do.
	View() string
}

// Unit is the single value of the unit type, produced by forms with no
// meaningful result (an empty parenthesised form, a Set with no bindings, a
// When with no branches, etc).
type Unit struct{}

func (Unit) Type() Type  { return UnitType }
func (Unit) View() string { return "()" }

// Integer is a 32-bit signed integer value.
type Integer struct {
	Value int32
}

func (Integer) Type() Type          { return IntegerType }
func (i Integer) View() string       { return fmt.Sprintf("%d", i.Value) }

// Float is a 64-bit binary float value.
type Float struct {
	Value float64
}

func (Float) Type() Type    { return FloatType }
func (f Float) View() string { return fmt.Sprintf("%g", f.Value) }

// Boolean is a boolean value.
type Boolean struct {
	Value bool
}

func (Boolean) Type() Type    { return BooleanType }
func (b Boolean) View() string { return fmt.Sprintf("%t", b.Value) }

// String is an immutable text value.
type String struct {
	Value string
}

func (String) Type() Type    { return StringType }
func (s String) View() string { return s.Value }

// Array is an immutable sequence of values.
type Array struct {
	Elements []Value
}

func (Array) Type() Type { return ArrayType }
func (a Array) View() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.View()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Spread is the transient marker value produced by evaluating a `..expr`
// form. It may only exist between that evaluation and its immediate
// consumer; every non-consumer site must collapse it (see CollapseSpread).
type Spread struct {
	Elements []Value
}

func (Spread) Type() Type { return SpreadType }
func (s Spread) View() string {
	parts := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		parts[i] = e.View()
	}
	return "..[" + strings.Join(parts, " ") + "]"
}

// Environment is the minimal view of an environment that a Function needs
// to capture. It is satisfied by *environment.Environment; declared here to
// avoid an import cycle between value and environment.
type Environment interface {
	Get(name string) (Value, bool)
	Set(name string, v Value)
}

// FunctionBody is the minimal view of an ast.Node a Function needs to carry
// without importing the ast package from value (ast already depends on
// lexer, not on value, so no cycle risk exists; the indirection here keeps
// value free of an ast import for symmetry with Environment above).
type FunctionBody interface{}

// Function is a closure: parameters, an optional vararg name, a body, and
// the environment live at the point the Function expression was evaluated.
type Function struct {
	Params    []string
	Vararg    string
	HasVararg bool
	Body      FunctionBody
	Captured  Environment
}

func (Function) Type() Type    { return FunctionType }
func (Function) View() string { return "(fn)" }

// Builtin is a reference to a host-backed function exposed to kvist
// programs, by name. The actual Go implementation lives in the builtin
// package's registry, keyed by Name; Builtin itself carries no behavior so
// that the value package stays free of an import on it.
type Builtin struct {
	Name string
}

func (Builtin) Type() Type    { return BuiltinType }
func (Builtin) View() string { return "(builtin)" }

// Undefined is the explicit "no meaningful value" result, produced by
// division by zero.
type Undefined struct{}

func (Undefined) Type() Type    { return UndefinedType }
func (Undefined) View() string { return "undefined" }

// Truthy implements the truthiness projection: Boolean maps to itself,
// Integer/Float zero are falsy, everything else is truthy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Boolean:
		return x.Value
	case Integer:
		return x.Value != 0
	case Float:
		return x.Value != 0
	default:
		return true
	}
}

// CollapseSpread reduces a Spread to the single value a non-consumer site
// is allowed to see: its last element, or Unit if it has none. Any other
// value passes through unchanged.
func CollapseSpread(v Value) Value {
	s, ok := v.(Spread)
	if !ok {
		return v
	}
	if len(s.Elements) == 0 {
		return Unit{}
	}
	return s.Elements[len(s.Elements)-1]
}

// Equal implements the structural equality used by the `=` operator:
// integers and floats compare by value with Int/Float promotion, strings by
// content. The second result is false for any other pairing (booleans,
// functions, builtins, mixed string/number, ...); the `=` operator turns
// that into its type-mismatch error.
func Equal(a, b Value) (bool, bool) {
	switch x := a.(type) {
	case Integer:
		switch y := b.(type) {
		case Integer:
			return x.Value == y.Value, true
		case Float:
			return float64(x.Value) == y.Value, true
		}
	case Float:
		switch y := b.(type) {
		case Integer:
			return x.Value == float64(y.Value), true
		case Float:
			return x.Value == y.Value, true
		}
	case String:
		if y, ok := b.(String); ok {
			return x.Value == y.Value, true
		}
	}
	return false, false
}
