package mainfunction

import (
	"testing"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/functiongrouper"
	"github.com/yulc/evm2ewasm/pkg/functionhoister"
	"github.com/yulc/evm2ewasm/pkg/parser"
)

func TestRunSynthesizesMain(t *testing.T) {
	block, diags := parser.ParseBlock(`{
		function f() -> r { r := 1 }
		let x := 1
	}`)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags)
	}
	functionhoister.Run(block)
	functiongrouper.Run(block)
	Run(block)

	last := block.Statements[len(block.Statements)-1]
	fn, ok := last.(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("expected final statement to be a FunctionDefinition, got %T", last)
	}
	if fn.Name != EntryFunctionName {
		t.Fatalf("expected entry function named %s, got %s", EntryFunctionName, fn.Name)
	}
	if len(fn.Parameters) != 0 || len(fn.Returns) != 0 {
		t.Fatalf("expected entry function to take no parameters and return nothing")
	}
}
