package parser

import (
	"testing"

	"github.com/yulc/evm2ewasm/pkg/ast"
)

func TestParseBlockFunctionAndAssignment(t *testing.T) {
	src := `{
		function add(a, b) -> c {
			c := add(a, b)
		}
		let x := 4
		x := add(x, 1)
	}`

	block, diags := ParseBlock(src)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(block.Statements) != 3 {
		t.Fatalf("expected 3 top-level statements, got %d", len(block.Statements))
	}

	fn, ok := block.Statements[0].(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("expected first statement to be a FunctionDefinition, got %T", block.Statements[0])
	}
	if fn.Name != "add" || len(fn.Parameters) != 2 || len(fn.Returns) != 1 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}

	decl, ok := block.Statements[1].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected second statement to be a VariableDeclaration, got %T", block.Statements[1])
	}
	lit, ok := decl.Value.(*ast.Literal)
	if !ok || lit.Value.Int64() != 4 {
		t.Fatalf("expected literal 4, got %+v", decl.Value)
	}

	assign, ok := block.Statements[2].(*ast.Assignment)
	if !ok || len(assign.Names) != 1 || assign.Names[0] != "x" {
		t.Fatalf("unexpected assignment: %+v", block.Statements[2])
	}
}

func TestParseMultiAssignmentAndSwitch(t *testing.T) {
	src := `{
		let a, b := f()
		switch a
		case 0 { b := 1 }
		case 1:i64 { b := 2 }
		default { b := 3 }
	}`
	block, diags := ParseBlock(src)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	decl := block.Statements[0].(*ast.VariableDeclaration)
	if len(decl.Variables) != 2 {
		t.Fatalf("expected 2 declared variables, got %d", len(decl.Variables))
	}
	sw := block.Statements[1].(*ast.Switch)
	if len(sw.Cases) != 3 {
		t.Fatalf("expected 3 switch cases (incl. default), got %d", len(sw.Cases))
	}
	if sw.Cases[2].Value != nil {
		t.Fatalf("expected default case to have nil Value")
	}
	if sw.Cases[1].Value.Type != ast.TypeI64 {
		t.Fatalf("expected typed literal i64, got %v", sw.Cases[1].Value.Type)
	}
}

func TestParseForLoopAndControlFlow(t *testing.T) {
	src := `{
		for { let i := 0 } lt(i, 10) { i := add(i, 1) } {
			if eq(i, 5) { break }
			continue
		}
		leave
	}`
	block, diags := ParseBlock(src)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	loop, ok := block.Statements[0].(*ast.ForLoop)
	if !ok {
		t.Fatalf("expected ForLoop, got %T", block.Statements[0])
	}
	if len(loop.Body.Statements) != 2 {
		t.Fatalf("expected 2 statements in loop body, got %d", len(loop.Body.Statements))
	}
	if _, ok := block.Statements[1].(*ast.Leave); !ok {
		t.Fatalf("expected Leave, got %T", block.Statements[1])
	}
}

func TestParseHexLiteral(t *testing.T) {
	block, diags := ParseBlock(`{ let x := 0xFF }`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	decl := block.Statements[0].(*ast.VariableDeclaration)
	lit := decl.Value.(*ast.Literal)
	if lit.Value.Int64() != 255 {
		t.Fatalf("expected 255, got %s", lit.Value.String())
	}
}
