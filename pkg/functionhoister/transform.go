// Package functionhoister implements the FunctionHoister pass: it moves
// every FunctionDefinition to the front of the block it lives in,
// preserving their relative order, so that a later pass can split a block
// into "functions" and "everything else" by a single prefix scan
// (spec.md §4.3).
package functionhoister

import "github.com/yulc/evm2ewasm/pkg/ast"

// Run hoists function definitions to the front of block and every nested
// block, recursively.
func Run(block *ast.Block) *ast.Block {
	transformBlock(block)
	return block
}

func transformBlock(block *ast.Block) {
	var functions, rest []ast.Statement
	for _, stmt := range block.Statements {
		descendInto(stmt)
		if fn, ok := stmt.(*ast.FunctionDefinition); ok {
			functions = append(functions, fn)
		} else {
			rest = append(rest, stmt)
		}
	}
	block.Statements = append(functions, rest...)
}

// descendInto hoists inside every nested block that itself defines a
// scope, without disturbing statement order at this level (that is
// transformBlock's job for the caller's own block).
func descendInto(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.Block:
		transformBlock(n)
	case *ast.FunctionDefinition:
		transformBlock(n.Body)
	case *ast.If:
		transformBlock(n.Body)
	case *ast.Switch:
		for _, c := range n.Cases {
			transformBlock(c.Body)
		}
	case *ast.ForLoop:
		transformBlock(n.Pre)
		transformBlock(n.Post)
		transformBlock(n.Body)
	}
}
