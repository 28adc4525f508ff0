// Package mainfunction implements the MainFunction pass: it turns the
// trailing synthetic Block left by pkg/functiongrouper into a proper
// FunctionDefinition named "main" taking no parameters and returning no
// values, so that every later pass only ever has to deal with function
// bodies (spec.md §4.3, §8's decision on the entry function's reserved
// name).
package mainfunction

import "github.com/yulc/evm2ewasm/pkg/ast"

// EntryFunctionName is the reserved name given to the synthesized entry
// function.
const EntryFunctionName = "main"

// Run replaces the trailing ungrouped Block, if any, with a
// FunctionDefinition named EntryFunctionName. If block's last statement is
// not itself a Block (functiongrouper always produces one, but Run stays
// defensive so it can be called standalone in tests), block is returned
// unchanged.
func Run(block *ast.Block) *ast.Block {
	if len(block.Statements) == 0 {
		return block
	}
	last := len(block.Statements) - 1
	body, ok := block.Statements[last].(*ast.Block)
	if !ok {
		return block
	}
	block.Statements[last] = &ast.FunctionDefinition{
		Name: EntryFunctionName,
		Body: body,
	}
	return block
}
