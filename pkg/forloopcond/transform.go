// Package forloopcond implements the ForLoopConditionIntoBody pass: it
// rewrites every ForLoop's condition to the literal `true` and moves the
// real test to the front of the body as `if iszero(cond) { break }`
// (spec.md §4.4). Downstream passes never have to reason about loop
// conditions as expressions again.
package forloopcond

import (
	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/dialect"
)

// Run rewrites every ForLoop's condition in block and its nested blocks,
// using d's `iszero` builtin to negate the original condition.
func Run(d dialect.Dialect, block *ast.Block) *ast.Block {
	transformBlock(d, block)
	return block
}

func transformBlock(d dialect.Dialect, block *ast.Block) {
	for _, stmt := range block.Statements {
		transformStatement(d, stmt)
	}
}

func transformStatement(d dialect.Dialect, stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.Block:
		transformBlock(d, n)
	case *ast.FunctionDefinition:
		transformBlock(d, n.Body)
	case *ast.If:
		transformBlock(d, n.Body)
	case *ast.Switch:
		for _, c := range n.Cases {
			transformBlock(d, c.Body)
		}
	case *ast.ForLoop:
		transformBlock(d, n.Pre)
		transformBlock(d, n.Post)
		transformBlock(d, n.Body)

		if isAlwaysTrue(n.Condition) {
			return
		}
		guard := &ast.If{
			Condition: &ast.FunctionCall{Name: "iszero", Arguments: []ast.Expression{n.Condition}},
			Body:      &ast.Block{Statements: []ast.Statement{&ast.Break{}}},
		}
		n.Body.Statements = append([]ast.Statement{guard}, n.Body.Statements...)
		n.Condition = ast.NewBoolLiteral(true)
	}
}

func isAlwaysTrue(cond ast.Expression) bool {
	lit, ok := cond.(*ast.Literal)
	return ok && lit.IsBool && lit.Bool
}
