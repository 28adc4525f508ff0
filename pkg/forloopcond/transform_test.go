package forloopcond

import (
	"testing"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/dialect"
	"github.com/yulc/evm2ewasm/pkg/parser"
)

func TestRunMovesConditionIntoBody(t *testing.T) {
	block, diags := parser.ParseBlock(`{
		for { let i := 0 } lt(i, 10) { i := add(i, 1) } {
			sstore(i, i)
		}
	}`)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags)
	}
	Run(dialect.EVM, block)

	loop := block.Statements[0].(*ast.ForLoop)
	cond, ok := loop.Condition.(*ast.Literal)
	if !ok || !cond.IsBool || !cond.Bool {
		t.Fatalf("expected condition rewritten to literal true, got %+v", loop.Condition)
	}
	guard, ok := loop.Body.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected guard if as first body statement, got %T", loop.Body.Statements[0])
	}
	call, ok := guard.Condition.(*ast.FunctionCall)
	if !ok || call.Name != "iszero" {
		t.Fatalf("expected guard condition to be iszero(...), got %+v", guard.Condition)
	}
	if _, ok := guard.Body.Statements[0].(*ast.Break); !ok {
		t.Fatalf("expected guard body to contain break")
	}
	if len(loop.Body.Statements) != 2 {
		t.Fatalf("expected original body statement preserved after guard, got %d statements", len(loop.Body.Statements))
	}
}

func TestRunLeavesAlreadyTrueConditionAlone(t *testing.T) {
	block, diags := parser.ParseBlock(`{
		for {} true { } {
			break
		}
	}`)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags)
	}
	Run(dialect.EVM, block)
	loop := block.Statements[0].(*ast.ForLoop)
	if len(loop.Body.Statements) != 1 {
		t.Fatalf("expected no guard inserted for already-true condition, got %d statements", len(loop.Body.Statements))
	}
}
