package namedispenser

import (
	"fmt"
	"testing"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/parser"
)

func parseForTest(src string) (*ast.Block, error) {
	block, diags := parser.ParseBlock(src)
	if diags.HasErrors() {
		return block, fmt.Errorf("parse errors: %v", diags)
	}
	return block, nil
}

func TestFreshAvoidsExistingNames(t *testing.T) {
	block, err := parseForTest(`{ let x_1 := 0 let x_2 := 0 }`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	d := New(block)
	got := d.Fresh("x")
	if got == "x_1" || got == "x_2" {
		t.Fatalf("Fresh returned a colliding name: %s", got)
	}
	if !d.IsUsed(got) {
		t.Fatalf("Fresh did not mark %s as used", got)
	}
}

func TestFreshNeverRepeats(t *testing.T) {
	d := New(&ast.Block{})
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		name := d.Fresh("tmp")
		if seen[name] {
			t.Fatalf("Fresh returned duplicate name %s", name)
		}
		seen[name] = true
	}
}

func TestReserveBlocksFutureFresh(t *testing.T) {
	d := New(&ast.Block{})
	d.Reserve("keccak_theta")
	if !d.IsUsed("keccak_theta") {
		t.Fatalf("Reserve did not mark name used")
	}
	d.Reserve("tmp_1")
	if got := d.Fresh("tmp"); got == "tmp_1" {
		t.Fatalf("Fresh returned reserved name %s", got)
	}
}
