// Package functiongrouper implements the FunctionGrouper pass: once
// FunctionHoister has moved every FunctionDefinition to the front of the
// top-level block, this pass wraps the remaining statements — the
// "top-level code" — in a single synthetic Block, so that pkg/mainfunction
// has one well-defined statement to turn into an entry function
// (spec.md §4.3).
package functiongrouper

import "github.com/yulc/evm2ewasm/pkg/ast"

// Run groups every non-function top-level statement of block into a
// trailing synthetic Block, leaving the hoisted function definitions in
// place ahead of it. It only operates on the top level; nested blocks are
// left untouched, matching the original pass's scope.
func Run(block *ast.Block) *ast.Block {
	var functions []ast.Statement
	var rest []ast.Statement
	for _, stmt := range block.Statements {
		if fn, ok := stmt.(*ast.FunctionDefinition); ok {
			functions = append(functions, fn)
		} else {
			rest = append(rest, stmt)
		}
	}
	block.Statements = append(functions, &ast.Block{Statements: rest})
	return block
}
