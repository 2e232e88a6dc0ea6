package eval

import (
	"github.com/kvist-lang/kvist/ast"
	"github.com/kvist-lang/kvist/environment"
	"github.com/kvist-lang/kvist/value"
)

// evalFlattened evaluates every node in order and flattens any Spread
// result into the output in place. This single helper backs Array
// literals, Builtin call arguments, and Operator operands — everywhere the
// spec says a list of nodes is evaluated "Spread-flattening in place".
func (ev *Evaluator) evalFlattened(nodes []*ast.Node, env *environment.Environment) ([]value.Value, error) {
	var out []value.Value
	for _, n := range nodes {
		v, err := ev.Eval(n, env)
		if err != nil {
			return nil, err
		}
		if s, ok := v.(value.Spread); ok {
			out = append(out, s.Elements...)
		} else {
			out = append(out, v)
		}
	}
	return out, nil
}

// operandQueue walks a node list lazily, evaluating just enough nodes to
// satisfy each call to next, Spread-flattening as it goes. It backs the
// function call protocol, which needs to stop as soon as every declared
// parameter has a value and only then decide whether to keep draining for
// a vararg.
type operandQueue struct {
	ev    *Evaluator
	env   *environment.Environment
	nodes []*ast.Node
	idx   int
	buf   []value.Value
}

func newOperandQueue(ev *Evaluator, env *environment.Environment, nodes []*ast.Node) *operandQueue {
	return &operandQueue{ev: ev, env: env, nodes: nodes}
}

// next returns the next single value, evaluating and flattening further
// nodes as needed. The second return is false once both the buffer and the
// node list are exhausted.
func (q *operandQueue) next() (value.Value, bool, error) {
	for len(q.buf) == 0 {
		if q.idx >= len(q.nodes) {
			return nil, false, nil
		}
		v, err := q.ev.Eval(q.nodes[q.idx], q.env)
		q.idx++
		if err != nil {
			return nil, false, err
		}
		if s, ok := v.(value.Spread); ok {
			q.buf = append(q.buf, s.Elements...)
		} else {
			q.buf = append(q.buf, v)
		}
	}
	v := q.buf[0]
	q.buf = q.buf[1:]
	return v, true, nil
}

// drainRemaining flushes whatever is already buffered, then evaluates and
// flattens every node left unconsumed. Used to collect a function's vararg.
func (q *operandQueue) drainRemaining() ([]value.Value, error) {
	rest := append([]value.Value{}, q.buf...)
	q.buf = nil
	for q.idx < len(q.nodes) {
		v, err := q.ev.Eval(q.nodes[q.idx], q.env)
		q.idx++
		if err != nil {
			return nil, err
		}
		if s, ok := v.(value.Spread); ok {
			rest = append(rest, s.Elements...)
		} else {
			rest = append(rest, v)
		}
	}
	return rest, nil
}
