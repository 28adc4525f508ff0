package wordsize

import (
	"testing"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/dialect"
	"github.com/yulc/evm2ewasm/pkg/disambiguator"
	"github.com/yulc/evm2ewasm/pkg/exprsplitter"
	"github.com/yulc/evm2ewasm/pkg/forloopcond"
	"github.com/yulc/evm2ewasm/pkg/namedispenser"
	"github.com/yulc/evm2ewasm/pkg/parser"
)

func prepare(t *testing.T, src string) (*ast.Block, *namedispenser.Dispenser) {
	t.Helper()
	block, diags := parser.ParseBlock(src)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags)
	}
	disambiguator.Run(block)
	forloopcond.Run(dialect.EVM, block)
	dispenser := namedispenser.New(block)
	exprsplitter.Run(dispenser, block)
	return block, dispenser
}

func TestRunSplitsLiteralIntoFourLimbs(t *testing.T) {
	block, dispenser := prepare(t, `{ let x := 1 }`)
	Run(dialect.EVM, dialect.Wasm, block, dispenser)

	if len(block.Statements) != 4 {
		t.Fatalf("expected 4 limb declarations, got %d: %+v", len(block.Statements), block.Statements)
	}
	for i, stmt := range block.Statements {
		decl, ok := stmt.(*ast.VariableDeclaration)
		if !ok {
			t.Fatalf("statement %d: expected VariableDeclaration, got %T", i, stmt)
		}
		if decl.Variables[0].Type != ast.TypeI64 {
			t.Fatalf("statement %d: expected i64 limb, got %v", i, decl.Variables[0].Type)
		}
	}
	last := block.Statements[3].(*ast.VariableDeclaration)
	if last.Value.(*ast.Literal).Value.Int64() != 1 {
		t.Fatalf("expected least-significant limb to carry the literal value 1, got %v", last.Value)
	}
	first := block.Statements[0].(*ast.VariableDeclaration)
	if first.Value.(*ast.Literal).Value.Int64() != 0 {
		t.Fatalf("expected most-significant limb to be 0, got %v", first.Value)
	}
}

func TestRunTranslatesBuiltinCallToPolyfillName(t *testing.T) {
	block, dispenser := prepare(t, `{ let x := add(1, 2) }`)
	Run(dialect.EVM, dialect.Wasm, block, dispenser)

	decl := block.Statements[0].(*ast.VariableDeclaration)
	if len(decl.Variables) != 4 {
		t.Fatalf("expected 4 result limbs, got %d", len(decl.Variables))
	}
	call := decl.Value.(*ast.FunctionCall)
	if call.Name != "add" {
		t.Fatalf("expected polyfill call add, got %s", call.Name)
	}
	if len(call.Arguments) != 8 {
		t.Fatalf("expected 8 arguments (4 limbs x 2 words), got %d", len(call.Arguments))
	}
}

func TestRunLowersTrapBuiltinToUnreachable(t *testing.T) {
	block, dispenser := prepare(t, `{ let x := msize() }`)
	Run(dialect.EVM, dialect.Wasm, block, dispenser)

	stmt, ok := block.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected trapped builtin to lower to an ExpressionStatement, got %T", block.Statements[0])
	}
	call := stmt.Expression.(*ast.FunctionCall)
	if call.Name != "unreachable" {
		t.Fatalf("expected unreachable call, got %s", call.Name)
	}
}

func TestRunReducesIfConditionToI64(t *testing.T) {
	block, dispenser := prepare(t, `{
		if iszero(1) {
			let y := 1
		}
	}`)
	Run(dialect.EVM, dialect.Wasm, block, dispenser)

	var ifStmt *ast.If
	for _, s := range block.Statements {
		if n, ok := s.(*ast.If); ok {
			ifStmt = n
		}
	}
	if ifStmt == nil {
		t.Fatalf("expected an If statement to survive lowering, statements: %+v", block.Statements)
	}
	if _, ok := ifStmt.Condition.(*ast.FunctionCall); !ok {
		t.Fatalf("expected reduced condition to be an i64.or call, got %T", ifStmt.Condition)
	}
}
