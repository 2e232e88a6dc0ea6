// Package builtin is the host-backed function library exposed to kvist
// programs: args, println, readln, len, first, last, rest, push, parse_int,
// os_execute, env, exit.
//
// Each function is registered against a name in Registry. The Runtime
// interface lets a built-in reach process I/O and program arguments without
// this package importing the evaluator, avoiding an import cycle.
package builtin

import "github.com/kvist-lang/kvist/value"

// Runtime is the host-side capability a built-in may need. It is
// implemented by the evaluator.
type Runtime interface {
	// Write sends s to the program's standard output.
	Write(s string)
	// ReadLine reads one line from standard input, without its trailing
	// newline. It never errors: at end-of-input it returns "".
	ReadLine() (string, error)
	// Args returns the script's positional arguments.
	Args() []string
}

// Func is the Go implementation of a built-in. It receives the
// already-evaluated, Spread-flattened argument list.
type Func func(rt Runtime, args []value.Value) (value.Value, error)

// Builtin pairs a built-in's name with its implementation.
type Builtin struct {
	Name string
	Call Func
}

// Registry maps every built-in name to its implementation.
var Registry = map[string]Builtin{}

func register(b Builtin) {
	Registry[b.Name] = b
}
