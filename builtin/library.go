package builtin

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/kvist-lang/kvist/value"
)

func init() {
	register(Builtin{Name: "args", Call: builtinArgs})
	register(Builtin{Name: "println", Call: builtinPrintln})
	register(Builtin{Name: "readln", Call: builtinReadln})
	register(Builtin{Name: "len", Call: builtinLen})
	register(Builtin{Name: "first", Call: builtinFirst})
	register(Builtin{Name: "last", Call: builtinLast})
	register(Builtin{Name: "rest", Call: builtinRest})
	register(Builtin{Name: "push", Call: builtinPush})
	register(Builtin{Name: "parse_int", Call: builtinParseInt})
	register(Builtin{Name: "os_execute", Call: builtinOSExecute})
	register(Builtin{Name: "env", Call: builtinEnv})
	register(Builtin{Name: "exit", Call: builtinExit})
}

func builtinArgs(rt Runtime, args []value.Value) (value.Value, error) {
	elements := make([]value.Value, len(rt.Args()))
	for i, a := range rt.Args() {
		elements[i] = value.String{Value: a}
	}
	return value.Array{Elements: elements}, nil
}

func builtinPrintln(rt Runtime, args []value.Value) (value.Value, error) {
	var last value.Value = value.Unit{}
	for _, a := range args {
		rt.Write(a.View() + "\n")
		last = a
	}
	return last, nil
}

func builtinReadln(rt Runtime, args []value.Value) (value.Value, error) {
	line, _ := rt.ReadLine()
	return value.String{Value: line}, nil
}

func builtinLen(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len expects 1 argument, got %d", len(args))
	}
	switch x := args[0].(type) {
	case value.String:
		return value.Integer{Value: int32(len([]rune(x.Value)))}, nil
	case value.Array:
		return value.Integer{Value: int32(len(x.Elements))}, nil
	default:
		return nil, fmt.Errorf("len expects String or Array, got %s", x.Type())
	}
}

func builtinFirst(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("first expects 1 argument, got %d", len(args))
	}
	arr, ok := args[0].(value.Array)
	if !ok {
		return nil, fmt.Errorf("first expects Array, got %s", args[0].Type())
	}
	if len(arr.Elements) == 0 {
		return value.Unit{}, nil
	}
	return arr.Elements[0], nil
}

func builtinLast(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("last expects 1 argument, got %d", len(args))
	}
	arr, ok := args[0].(value.Array)
	if !ok {
		return nil, fmt.Errorf("last expects Array, got %s", args[0].Type())
	}
	if len(arr.Elements) == 0 {
		return value.Unit{}, nil
	}
	return arr.Elements[len(arr.Elements)-1], nil
}

func builtinRest(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("rest expects 1 argument, got %d", len(args))
	}
	arr, ok := args[0].(value.Array)
	if !ok {
		return nil, fmt.Errorf("rest expects Array, got %s", args[0].Type())
	}
	if len(arr.Elements) == 0 {
		return value.Array{}, nil
	}
	rest := make([]value.Value, len(arr.Elements)-1)
	copy(rest, arr.Elements[1:])
	return value.Array{Elements: rest}, nil
}

func builtinPush(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("push expects 2 arguments, got %d", len(args))
	}
	arr, ok := args[0].(value.Array)
	if !ok {
		return nil, fmt.Errorf("push expects Array as first argument, got %s", args[0].Type())
	}
	elements := make([]value.Value, len(arr.Elements)+1)
	copy(elements, arr.Elements)
	elements[len(arr.Elements)] = args[1]
	return value.Array{Elements: elements}, nil
}

func builtinParseInt(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("parse_int expects 1 argument, got %d", len(args))
	}
	s, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("parse_int expects String, got %s", args[0].Type())
	}
	n, err := strconv.ParseInt(s.Value, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("parse_int: %q is not a valid integer", s.Value)
	}
	return value.Integer{Value: int32(n)}, nil
}

func builtinOSExecute(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("os_execute expects at least 1 argument")
	}
	name, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("os_execute expects a String command, got %s", args[0].Type())
	}
	cmdArgs := make([]string, len(args)-1)
	for i, a := range args[1:] {
		cmdArgs[i] = a.View()
	}
	cmd := exec.Command(name.Value, cmdArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return value.Integer{Value: int32(cmd.ProcessState.ExitCode())}, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return value.Integer{Value: int32(exitErr.ExitCode())}, nil
	}
	return value.Unit{}, nil
}

func builtinEnv(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("env expects 1 argument, got %d", len(args))
	}
	name, ok := args[0].(value.String)
	if !ok {
		return nil, fmt.Errorf("env expects String, got %s", args[0].Type())
	}
	v, ok := os.LookupEnv(name.Value)
	if !ok {
		return nil, fmt.Errorf("environment variable %q is not set", name.Value)
	}
	return value.String{Value: v}, nil
}

func builtinExit(rt Runtime, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("exit expects 1 argument, got %d", len(args))
	}
	code, ok := args[0].(value.Integer)
	if !ok {
		return nil, fmt.Errorf("exit expects Integer, got %s", args[0].Type())
	}
	os.Exit(int(code.Value))
	panic("unreachable")
}
