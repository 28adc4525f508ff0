package functionhoister

import (
	"testing"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/parser"
)

func TestRunMovesFunctionsToFront(t *testing.T) {
	block, diags := parser.ParseBlock(`{
		let x := 1
		function f() -> r { r := 1 }
		let y := 2
		function g() -> r { r := 2 }
	}`)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags)
	}
	Run(block)

	if _, ok := block.Statements[0].(*ast.FunctionDefinition); !ok {
		t.Fatalf("expected first statement to be a function, got %T", block.Statements[0])
	}
	if _, ok := block.Statements[1].(*ast.FunctionDefinition); !ok {
		t.Fatalf("expected second statement to be a function, got %T", block.Statements[1])
	}
	f := block.Statements[0].(*ast.FunctionDefinition)
	g := block.Statements[1].(*ast.FunctionDefinition)
	if f.Name != "f" || g.Name != "g" {
		t.Fatalf("expected hoist to preserve relative order, got %s then %s", f.Name, g.Name)
	}
	if _, ok := block.Statements[2].(*ast.VariableDeclaration); !ok {
		t.Fatalf("expected non-function statements after hoisted functions")
	}
}

func TestRunDescendsIntoNestedBlocks(t *testing.T) {
	block, diags := parser.ParseBlock(`{
		if true {
			let x := 1
			function f() -> r { r := 1 }
		}
	}`)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags)
	}
	Run(block)
	ifStmt := block.Statements[0].(*ast.If)
	if _, ok := ifStmt.Body.Statements[0].(*ast.FunctionDefinition); !ok {
		t.Fatalf("expected function hoisted to front of if body")
	}
}
