package eval

import "github.com/kvist-lang/kvist/value"

// applyOperator implements the `+ - * / < > = !` prefix operators over an
// already-evaluated, Spread-flattened operand list.
func applyOperator(symbol string, operands []value.Value) (value.Value, error) {
	switch symbol {
	case "+":
		return evalPlus(operands)
	case "-":
		return evalMinus(operands)
	case "*":
		return evalMultiply(operands)
	case "/":
		return evalDivide(operands)
	case "<":
		return chainCompare(operands, func(a, b float64) bool { return a < b }, "<")
	case ">":
		return chainCompare(operands, func(a, b float64) bool { return a > b }, ">")
	case "=":
		return evalEquals(operands)
	case "!":
		return evalBang(operands)
	default:
		return nil, plain("unknown operator %q", symbol)
	}
}

func asFloat(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case value.Integer:
		return float64(x.Value), true
	case value.Float:
		return x.Value, true
	}
	return 0, false
}

func isZero(v value.Value) bool {
	switch x := v.(type) {
	case value.Integer:
		return x.Value == 0
	case value.Float:
		return x.Value == 0
	}
	return false
}

func evalPlus(operands []value.Value) (value.Value, error) {
	switch len(operands) {
	case 0:
		return value.Integer{Value: 0}, nil
	case 1:
		return operands[0], nil
	}
	acc := operands[0]
	for _, next := range operands[1:] {
		v, err := addTwo(acc, next)
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}

func addTwo(a, b value.Value) (value.Value, error) {
	if as, ok := a.(value.String); ok {
		return value.String{Value: as.Value + b.View()}, nil
	}
	if bs, ok := b.(value.String); ok {
		return value.String{Value: a.View() + bs.Value}, nil
	}
	if ai, ok := a.(value.Integer); ok {
		if bi, ok := b.(value.Integer); ok {
			return value.Integer{Value: ai.Value + bi.Value}, nil
		}
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return value.Float{Value: af + bf}, nil
	}
	return nil, plain("operator + type mismatch: %s and %s", a.Type(), b.Type())
}

func evalMinus(operands []value.Value) (value.Value, error) {
	switch len(operands) {
	case 0:
		return value.Integer{Value: 0}, nil
	case 1:
		switch x := operands[0].(type) {
		case value.Integer:
			return value.Integer{Value: -x.Value}, nil
		case value.Float:
			return value.Float{Value: -x.Value}, nil
		default:
			return nil, plain("operator - expects a numeric operand, got %s", x.Type())
		}
	}
	acc := operands[0]
	for _, next := range operands[1:] {
		v, err := subTwo(acc, next)
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}

func subTwo(a, b value.Value) (value.Value, error) {
	if ai, ok := a.(value.Integer); ok {
		if bi, ok := b.(value.Integer); ok {
			return value.Integer{Value: ai.Value - bi.Value}, nil
		}
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return value.Float{Value: af - bf}, nil
	}
	return nil, plain("operator - type mismatch: %s and %s", a.Type(), b.Type())
}

func evalMultiply(operands []value.Value) (value.Value, error) {
	switch len(operands) {
	case 0:
		return value.Integer{Value: 1}, nil
	case 1:
		return mulTwo(value.Integer{Value: 1}, operands[0])
	}
	acc := operands[0]
	for _, next := range operands[1:] {
		v, err := mulTwo(acc, next)
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}

func mulTwo(a, b value.Value) (value.Value, error) {
	if ai, ok := a.(value.Integer); ok {
		if bi, ok := b.(value.Integer); ok {
			return value.Integer{Value: ai.Value * bi.Value}, nil
		}
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return value.Float{Value: af * bf}, nil
	}
	return nil, plain("operator * type mismatch: %s and %s", a.Type(), b.Type())
}

func evalDivide(operands []value.Value) (value.Value, error) {
	switch len(operands) {
	case 0:
		return value.Undefined{}, nil
	case 1:
		f, ok := asFloat(operands[0])
		if !ok {
			return nil, plain("operator / expects a numeric operand, got %s", operands[0].Type())
		}
		if f == 0 {
			return value.Undefined{}, nil
		}
		return value.Float{Value: 1 / f}, nil
	}
	acc := operands[0]
	for _, next := range operands[1:] {
		v, err := divTwo(acc, next)
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}

// divTwo implements one left-fold step of `/`. A zero divisor replaces the
// accumulator with Undefined outright, regardless of what the accumulator
// held coming in; Undefined arriving as the accumulator on a later step is
// not Integer or Float, so that next step falls through to the
// type-mismatch path below.
func divTwo(a, b value.Value) (value.Value, error) {
	if isZero(b) {
		return value.Undefined{}, nil
	}
	if ai, ok := a.(value.Integer); ok {
		if bi, ok := b.(value.Integer); ok {
			if ai.Value%bi.Value == 0 {
				return value.Integer{Value: ai.Value / bi.Value}, nil
			}
			return value.Float{Value: float64(ai.Value) / float64(bi.Value)}, nil
		}
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return value.Float{Value: af / bf}, nil
	}
	return nil, plain("operator / type mismatch: %s and %s", a.Type(), b.Type())
}

func chainCompare(operands []value.Value, less func(a, b float64) bool, symbol string) (value.Value, error) {
	switch len(operands) {
	case 0:
		return value.Boolean{Value: false}, nil
	case 1:
		return value.Boolean{Value: true}, nil
	}
	prev, ok := asFloat(operands[0])
	if !ok {
		return nil, plain("operator %s expects numeric operands, got %s", symbol, operands[0].Type())
	}
	for _, next := range operands[1:] {
		cur, ok := asFloat(next)
		if !ok {
			return nil, plain("operator %s expects numeric operands, got %s", symbol, next.Type())
		}
		if !less(prev, cur) {
			return value.Boolean{Value: false}, nil
		}
		prev = cur
	}
	return value.Boolean{Value: true}, nil
}

func evalEquals(operands []value.Value) (value.Value, error) {
	switch len(operands) {
	case 0:
		return value.Boolean{Value: false}, nil
	case 1:
		return value.Boolean{Value: true}, nil
	}
	for i := 0; i+1 < len(operands); i++ {
		eq, ok := value.Equal(operands[i], operands[i+1])
		if !ok {
			return nil, plain("operator = type mismatch: %s and %s", operands[i].Type(), operands[i+1].Type())
		}
		if !eq {
			return value.Boolean{Value: false}, nil
		}
	}
	return value.Boolean{Value: true}, nil
}

func evalBang(operands []value.Value) (value.Value, error) {
	switch len(operands) {
	case 0:
		return value.Boolean{Value: true}, nil
	case 1:
		return value.Boolean{Value: !value.Truthy(operands[0])}, nil
	default:
		return nil, plain("Operator ! expects only 1 operand")
	}
}
