// Package eval walks an expression tree against a chained environment,
// producing a runtime value or an evaluation error.
package eval

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kvist-lang/kvist/ast"
	"github.com/kvist-lang/kvist/builtin"
	"github.com/kvist-lang/kvist/environment"
	"github.com/kvist-lang/kvist/lexer"
	"github.com/kvist-lang/kvist/parser"
	"github.com/kvist-lang/kvist/value"
)

// Evaluator is the single runtime context threaded through a program's
// evaluation: where println writes, where readln reads, and the program
// arguments exposed to the `args` built-in. It implements builtin.Runtime
// so the built-in library can call back into it without importing eval.
type Evaluator struct {
	writer io.Writer
	reader *bufio.Reader
	args   []string
}

// New creates an Evaluator writing to w, reading from r, exposing args to
// the `args` built-in.
func New(w io.Writer, r io.Reader, args []string) *Evaluator {
	return &Evaluator{writer: w, reader: bufio.NewReader(r), args: args}
}

func (ev *Evaluator) Write(s string) { fmt.Fprint(ev.writer, s) }

// ReadLine never signals end-of-input; per spec it returns whatever was
// read, empty once the stream is exhausted.
func (ev *Evaluator) ReadLine() (string, error) {
	line, _ := ev.reader.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), nil
}

func (ev *Evaluator) Args() []string { return ev.args }

// Eval evaluates node against env. Any error evalNode returns that isn't
// already a *PositionedError is decorated with node's own token position —
// the deepest node in the call chain that knows where the failure
// originated.
func (ev *Evaluator) Eval(node *ast.Node, env *environment.Environment) (value.Value, error) {
	v, err := ev.evalNode(node, env)
	if err == nil {
		return v, nil
	}
	if pe, ok := err.(*PositionedError); ok {
		return nil, pe
	}
	return nil, &PositionedError{Row: node.Token.Row, Col: node.Token.Column, Message: err.Error()}
}

func (ev *Evaluator) evalNode(node *ast.Node, env *environment.Environment) (value.Value, error) {
	switch node.Kind {
	case ast.IntegerNode:
		return value.Integer{Value: node.Int}, nil
	case ast.FloatNode:
		return value.Float{Value: node.Float64}, nil
	case ast.BooleanNode:
		return value.Boolean{Value: node.Text == "true"}, nil
	case ast.StringNode:
		return value.String{Value: node.Text}, nil

	case ast.IdentifierNode:
		if v, ok := env.Get(node.Text); ok {
			return v, nil
		}
		if _, ok := builtin.Registry[node.Text]; ok {
			return value.Builtin{Name: node.Text}, nil
		}
		return nil, plain("No binding for identifier '%s'", node.Text)

	case ast.ArrayNode:
		elements, err := ev.evalFlattened(node.Elements, env)
		if err != nil {
			return nil, err
		}
		return value.Array{Elements: elements}, nil

	case ast.IndexNode:
		return ev.evalIndex(node, env)

	case ast.SpreadNode:
		v, err := ev.Eval(node.Child, env)
		if err != nil {
			return nil, err
		}
		arr, ok := v.(value.Array)
		if !ok {
			return nil, plain("spread requires an Array, got %s", v.Type())
		}
		return value.Spread{Elements: arr.Elements}, nil

	case ast.SetNode:
		return ev.evalSet(node, env)

	case ast.IfNode:
		return ev.evalIf(node, env)

	case ast.WhenNode:
		return ev.evalWhen(node, env)

	case ast.WhileNode:
		return ev.evalWhile(node, env)

	case ast.FunctionNode:
		return value.Function{
			Params: node.Params, Vararg: node.Vararg, HasVararg: node.HasVararg,
			Body: node.FuncBody, Captured: env,
		}, nil

	case ast.SectionNode:
		return ev.Eval(node.Child, env.Fork())

	case ast.IncludeNode:
		return ev.evalInclude(node, env)

	case ast.OperatorNode:
		operands, err := ev.evalFlattened(node.Operands, env)
		if err != nil {
			return nil, err
		}
		return applyOperator(node.Operator, operands)

	case ast.ExpressionLiteral:
		return ev.evalExpressionLiteral(node, env)

	default:
		return nil, plain("unhandled node kind %d", node.Kind)
	}
}

func (ev *Evaluator) evalIndex(node *ast.Node, env *environment.Environment) (value.Value, error) {
	idxVal, err := ev.Eval(node.Index, env)
	if err != nil {
		return nil, err
	}
	operandVal, err := ev.Eval(node.Operand, env)
	if err != nil {
		return nil, err
	}
	idx, idxOK := idxVal.(value.Integer)
	arr, arrOK := operandVal.(value.Array)
	if !idxOK || !arrOK || idx.Value < 0 {
		return nil, plain("Index requires a non-negative Integer and an Array, got %s and %s", idxVal.Type(), operandVal.Type())
	}
	if int(idx.Value) >= len(arr.Elements) {
		return nil, plain("Array index out of bounds: length %d, index %d", len(arr.Elements), idx.Value)
	}
	return arr.Elements[idx.Value], nil
}

func (ev *Evaluator) evalSet(node *ast.Node, env *environment.Environment) (value.Value, error) {
	var last value.Value = value.Unit{}
	for _, b := range node.Bindings {
		v, err := ev.Eval(b.Value, env)
		if err != nil {
			return nil, err
		}
		v = value.CollapseSpread(v)
		env.Set(b.Name.Text, v)
		last = v
	}
	return last, nil
}

func (ev *Evaluator) evalIf(node *ast.Node, env *environment.Environment) (value.Value, error) {
	cond, err := ev.Eval(node.Condition, env)
	if err != nil {
		return nil, err
	}
	cond = value.CollapseSpread(cond)
	if value.Truthy(cond) {
		return ev.Eval(node.Consequence, env)
	}
	if node.Alternative != nil {
		return ev.Eval(node.Alternative, env)
	}
	return cond, nil
}

func (ev *Evaluator) evalWhen(node *ast.Node, env *environment.Environment) (value.Value, error) {
	var last value.Value = value.Unit{}
	for _, branch := range node.Branches {
		cond, err := ev.Eval(branch.Condition, env)
		if err != nil {
			return nil, err
		}
		cond = value.CollapseSpread(cond)
		if value.Truthy(cond) {
			return ev.Eval(branch.Consequence, env)
		}
		last = cond
	}
	return last, nil
}

func (ev *Evaluator) evalWhile(node *ast.Node, env *environment.Environment) (value.Value, error) {
	for {
		cond, err := ev.Eval(node.Condition, env)
		if err != nil {
			return nil, err
		}
		cond = value.CollapseSpread(cond)
		if !value.Truthy(cond) {
			return cond, nil
		}
		if node.Body != nil {
			if _, err := ev.Eval(node.Body, env); err != nil {
				return nil, err
			}
		}
	}
}

func (ev *Evaluator) evalInclude(node *ast.Node, env *environment.Environment) (value.Value, error) {
	v, err := ev.Eval(node.Child, env)
	if err != nil {
		return nil, err
	}
	path, ok := v.(value.String)
	if !ok {
		return nil, plain("include requires a String path, got %s", v.Type())
	}

	data, err := os.ReadFile(path.Value)
	if err != nil {
		return nil, plain("cannot include '%s': %s", path.Value, err)
	}
	nodes, errs := parser.Parse(lexer.New(string(data)))
	if len(errs) > 0 {
		return nil, plain("cannot include '%s': %s", path.Value, errs[0].Error())
	}

	var result value.Value = value.Unit{}
	for _, n := range nodes {
		result, err = ev.Eval(n, env)
		if err != nil {
			return nil, plain("cannot include '%s': %s", path.Value, err)
		}
	}
	return result, nil
}

func (ev *Evaluator) evalExpressionLiteral(node *ast.Node, env *environment.Environment) (value.Value, error) {
	if len(node.Elements) == 0 {
		return value.Unit{}, nil
	}

	first, err := ev.Eval(node.Elements[0], env)
	if err != nil {
		return nil, err
	}
	rest := node.Elements[1:]

	switch fv := first.(type) {
	case value.Function:
		return ev.callFunction(fv, rest, env)

	case value.Builtin:
		args, err := ev.evalFlattened(rest, env)
		if err != nil {
			return nil, err
		}
		impl, ok := builtin.Registry[fv.Name]
		if !ok {
			return nil, plain("unknown builtin '%s'", fv.Name)
		}
		return impl.Call(ev, args)

	default:
		if len(rest) == 0 {
			return value.CollapseSpread(first), nil
		}
		var last value.Value
		for _, n := range rest {
			last, err = ev.Eval(n, env)
			if err != nil {
				return nil, err
			}
		}
		return value.CollapseSpread(last), nil
	}
}

// callFunction implements the function call protocol: bind each declared
// parameter to the next queued argument value, then, if a vararg is
// declared, drain everything left into an Array bound to its name.
func (ev *Evaluator) callFunction(fn value.Function, argNodes []*ast.Node, callerEnv *environment.Environment) (value.Value, error) {
	captured, ok := fn.Captured.(*environment.Environment)
	if !ok {
		return nil, plain("corrupt function value: missing captured environment")
	}
	body, ok := fn.Body.(*ast.Node)
	if !ok {
		return nil, plain("corrupt function value: missing body")
	}

	callEnv := captured.Fork()
	q := newOperandQueue(ev, callerEnv, argNodes)
	for _, name := range fn.Params {
		v, ok, err := q.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, plain("Missing parameter value for %s", name)
		}
		callEnv.Set(name, v)
	}
	if fn.HasVararg {
		rest, err := q.drainRemaining()
		if err != nil {
			return nil, err
		}
		callEnv.Set(fn.Vararg, value.Array{Elements: rest})
	}
	return ev.Eval(body, callEnv)
}
