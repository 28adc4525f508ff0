package exprsplitter

import (
	"testing"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/namedispenser"
	"github.com/yulc/evm2ewasm/pkg/parser"
)

func TestRunSplitsNestedCall(t *testing.T) {
	block, diags := parser.ParseBlock(`{
		let x := add(mul(1, 2), 3)
	}`)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags)
	}
	Run(namedispenser.New(block), block)

	if len(block.Statements) != 2 {
		t.Fatalf("expected nested call hoisted into its own statement, got %d statements", len(block.Statements))
	}
	hoisted, ok := block.Statements[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected first statement to be the hoisted declaration, got %T", block.Statements[0])
	}
	inner, ok := hoisted.Value.(*ast.FunctionCall)
	if !ok || inner.Name != "mul" {
		t.Fatalf("expected hoisted declaration to hold the mul(...) call, got %+v", hoisted.Value)
	}

	outerDecl := block.Statements[1].(*ast.VariableDeclaration)
	outerCall := outerDecl.Value.(*ast.FunctionCall)
	if outerCall.Name != "add" {
		t.Fatalf("expected outer call add(...), got %s", outerCall.Name)
	}
	ref, ok := outerCall.Arguments[0].(*ast.Identifier)
	if !ok || ref.Name != hoisted.Variables[0].Name {
		t.Fatalf("expected outer call's first argument to reference the hoisted temp, got %+v", outerCall.Arguments[0])
	}
}

func TestRunLeavesFlatCallAlone(t *testing.T) {
	block, diags := parser.ParseBlock(`{ let x := add(1, 2) }`)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags)
	}
	Run(namedispenser.New(block), block)
	if len(block.Statements) != 1 {
		t.Fatalf("expected no hoisting for an already-flat call, got %d statements", len(block.Statements))
	}
}
