package parser

import (
	"testing"

	"github.com/kvist-lang/kvist/ast"
	"github.com/kvist-lang/kvist/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) *ast.Node {
	t.Helper()
	nodes, errs := Parse(lexer.New(src))
	require.Empty(t, errs, "unexpected parse errors: %v", errs)
	require.Len(t, nodes, 1)
	return nodes[0]
}

func TestParse_SetBinding(t *testing.T) {
	node := parseOne(t, "(set (x 5))")
	require.Equal(t, ast.SetNode, node.Kind)
	require.Len(t, node.Bindings, 1)
	assert.Equal(t, ast.IdentifierNode, node.Bindings[0].Name.Kind)
	assert.Equal(t, "x", node.Bindings[0].Name.Text)
	assert.Equal(t, ast.IntegerNode, node.Bindings[0].Value.Kind)
	assert.EqualValues(t, 5, node.Bindings[0].Value.Int)
}

func TestParse_FunctionWithVararg(t *testing.T) {
	node := parseOne(t, "(fn |a b ...c| (+ a b (len c)))")
	require.Equal(t, ast.FunctionNode, node.Kind)
	assert.Equal(t, []string{"a", "b"}, node.Params)
	assert.True(t, node.HasVararg)
	assert.Equal(t, "c", node.Vararg)

	body := node.FuncBody
	require.Equal(t, ast.OperatorNode, body.Kind)
	assert.Equal(t, "+", body.Operator)
	require.Len(t, body.Operands, 3)
	assert.Equal(t, ast.IdentifierNode, body.Operands[0].Kind)
	assert.Equal(t, ast.IdentifierNode, body.Operands[1].Kind)
	assert.Equal(t, ast.ExpressionLiteral, body.Operands[2].Kind)
}

func TestParse_EmptyForm(t *testing.T) {
	node := parseOne(t, "()")
	assert.Equal(t, ast.ExpressionLiteral, node.Kind)
	assert.Empty(t, node.Elements)
}

func TestParse_ArrayLiteral(t *testing.T) {
	node := parseOne(t, "[1 2 3]")
	require.Equal(t, ast.ArrayNode, node.Kind)
	require.Len(t, node.Elements, 3)
	for i, want := range []int32{1, 2, 3} {
		assert.Equal(t, ast.IntegerNode, node.Elements[i].Kind)
		assert.Equal(t, want, node.Elements[i].Int)
	}
}

func TestParse_Index(t *testing.T) {
	node := parseOne(t, "(@ 1 foo)")
	require.Equal(t, ast.IndexNode, node.Kind)
	assert.Equal(t, ast.IntegerNode, node.Index.Kind)
	assert.EqualValues(t, 1, node.Index.Int)
	assert.Equal(t, ast.IdentifierNode, node.Operand.Kind)
	assert.Equal(t, "foo", node.Operand.Text)
}

func TestParse_When(t *testing.T) {
	node := parseOne(t, "(when (= n 1) 1 () (* n (fact (- n 1))))")
	require.Equal(t, ast.WhenNode, node.Kind)
	require.Len(t, node.Branches, 2)
	assert.Equal(t, ast.OperatorNode, node.Branches[0].Condition.Kind)
	assert.Equal(t, ast.IntegerNode, node.Branches[0].Consequence.Kind)
	assert.Equal(t, ast.ExpressionLiteral, node.Branches[1].Condition.Kind)
	assert.Empty(t, node.Branches[1].Condition.Elements)
	assert.Equal(t, ast.OperatorNode, node.Branches[1].Consequence.Kind)
}

func TestParse_SpreadAndSection(t *testing.T) {
	spread := parseOne(t, "(+ ..[7 5 2])")
	require.Equal(t, ast.OperatorNode, spread.Kind)
	require.Len(t, spread.Operands, 1)
	assert.Equal(t, ast.SpreadNode, spread.Operands[0].Kind)

	section := parseOne(t, "§(+ 1 2)")
	assert.Equal(t, ast.SectionNode, section.Kind)
	assert.Equal(t, ast.OperatorNode, section.Child.Kind)
}

func TestParse_Include(t *testing.T) {
	node := parseOne(t, `(include "lib.kvist")`)
	require.Equal(t, ast.IncludeNode, node.Kind)
	assert.Equal(t, ast.StringNode, node.Child.Kind)
	assert.Equal(t, "lib.kvist", node.Child.Text)
}

func TestParse_StripsRedundantParens(t *testing.T) {
	node := parseOne(t, `("just a string")`)
	assert.Equal(t, ast.StringNode, node.Kind)
}

func TestParse_MultipleTopLevelForms(t *testing.T) {
	nodes, errs := Parse(lexer.New("(set (x 3)) (while (set (x (- x 1))))"))
	require.Empty(t, errs)
	require.Len(t, nodes, 2)
	assert.Equal(t, ast.SetNode, nodes[0].Kind)
	assert.Equal(t, ast.WhileNode, nodes[1].Kind)
}

func TestParse_ErrorRecoveryAdvancesPastOffender(t *testing.T) {
	nodes, errs := Parse(lexer.New(": (set (x 1))"))
	assert.NotEmpty(t, errs)
	require.Len(t, nodes, 1)
	assert.Equal(t, ast.SetNode, nodes[0].Kind)
}
