package analyzer

import (
	"testing"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/dialect"
	"github.com/yulc/evm2ewasm/pkg/parser"
)

func mustParse(t *testing.T, src string) *ast.Block {
	t.Helper()
	block, diags := parser.ParseBlock(src)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags)
	}
	return block
}

func TestAnalyzeAcceptsWellFormedProgram(t *testing.T) {
	block := mustParse(t, `{
		function add(a, b) -> c {
			c := add(a, b)
		}
		let x := 1
		x := add(x, 2)
	}`)
	_, diags := Analyze(dialect.EVM, block)
	if diags.HasErrors() {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func TestAnalyzeRejectsUndeclaredVariable(t *testing.T) {
	block := mustParse(t, `{ x := 1 }`)
	_, diags := Analyze(dialect.EVM, block)
	if !diags.HasErrors() {
		t.Fatalf("expected an error for undeclared variable")
	}
}

func TestAnalyzeRejectsBreakOutsideLoop(t *testing.T) {
	block := mustParse(t, `{ break }`)
	_, diags := Analyze(dialect.EVM, block)
	if !diags.HasErrors() {
		t.Fatalf("expected an error for break outside loop")
	}
}

func TestAnalyzeRejectsBuiltinArityMismatch(t *testing.T) {
	block := mustParse(t, `{ let x := add(1) }`)
	_, diags := Analyze(dialect.EVM, block)
	if !diags.HasErrors() {
		t.Fatalf("expected an error for wrong builtin arity")
	}
}

func TestAnalyzeAcceptsLeaveInsideFunction(t *testing.T) {
	block := mustParse(t, `{
		function f() -> r {
			leave
		}
	}`)
	_, diags := Analyze(dialect.EVM, block)
	if diags.HasErrors() {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}
