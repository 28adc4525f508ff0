package printer

import (
	"strings"
	"testing"

	"github.com/yulc/evm2ewasm/pkg/parser"
)

func TestStringRoundTripsThroughParser(t *testing.T) {
	block, diags := parser.ParseBlock(`{
		function add_one(x) -> y {
			y := add(x, 1)
		}
		let z := add_one(41)
	}`)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags)
	}

	out := String(block)
	if !strings.Contains(out, "function add_one(x) -> y") {
		t.Fatalf("expected function signature in output, got:\n%s", out)
	}
	if !strings.Contains(out, "add_one(41)") {
		t.Fatalf("expected call site in output, got:\n%s", out)
	}

	reparsed, diags := parser.ParseBlock(out)
	if diags.HasErrors() {
		t.Fatalf("re-parsing printed output failed: %v", diags)
	}
	if len(reparsed.Statements) != len(block.Statements) {
		t.Fatalf("expected re-parsed statement count to match original")
	}
}

func TestStringRendersControlFlow(t *testing.T) {
	block, diags := parser.ParseBlock(`{
		for { let i := 0 } lt(i, 10) { i := add(i, 1) } {
			if iszero(i) { break }
		}
	}`)
	if diags.HasErrors() {
		t.Fatalf("parse errors: %v", diags)
	}
	out := String(block)
	if !strings.Contains(out, "for ") || !strings.Contains(out, "break") {
		t.Fatalf("expected for-loop and break in output, got:\n%s", out)
	}
}
