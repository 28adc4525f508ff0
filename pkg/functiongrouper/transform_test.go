package functiongrouper

import (
	"testing"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/functionhoister"
	"github.com/yulc/evm2ewasm/pkg/parser"
)

func TestRunGroupsTrailingCode(t *testing.T) {
	block, diags := parser.ParseBlock(`{
		function f() -> r { r := 1 }
		let x := 1
		let y := 2
	}`)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags)
	}
	functionhoister.Run(block)
	Run(block)

	if len(block.Statements) != 2 {
		t.Fatalf("expected 2 top-level statements (1 function + 1 grouped block), got %d", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.FunctionDefinition); !ok {
		t.Fatalf("expected first statement to remain the function definition")
	}
	group, ok := block.Statements[1].(*ast.Block)
	if !ok {
		t.Fatalf("expected second statement to be the grouped block, got %T", block.Statements[1])
	}
	if len(group.Statements) != 2 {
		t.Fatalf("expected 2 statements in grouped block, got %d", len(group.Statements))
	}
}
