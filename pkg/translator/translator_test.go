package translator

import (
	"testing"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/object"
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

func TestRunTranslatesSimpleObject(t *testing.T) {
	code := mustParse(t, `{
		function add_and_store(a, b) {
			let sum := add(a, b)
			sstore(0, sum)
		}
		add_and_store(1, 2)
	}`)
	obj := object.New("Contract", code)

	out, err := New().Run(obj)
	if err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
	if out.AnalysisInfo == nil {
		t.Fatalf("expected AnalysisInfo to be populated after translation")
	}

	sawMain := false
	sawPolyfill := false
	for _, stmt := range out.Code.Statements {
		fn, ok := stmt.(*ast.FunctionDefinition)
		if !ok {
			continue
		}
		if fn.Name == "main" {
			sawMain = true
		}
		if fn.Name == "add" {
			sawPolyfill = true
		}
	}
	if !sawMain {
		t.Errorf("expected a synthesized main function in the translated object")
	}
	if !sawPolyfill {
		t.Errorf("expected the polyfill library to be spliced into the translated object")
	}
}

func TestRunRecursesIntoSubObjects(t *testing.T) {
	inner := object.New("Inner", mustParse(t, `{ sstore(0, 1) }`))
	outer := object.New("Outer", mustParse(t, `{ sstore(1, 2) }`))
	outer.AddSubObject(inner)
	outer.AddData(&object.Data{Name: "auxdata", Bytes: []byte{0xde, 0xad}})

	out, err := New().Run(outer)
	if err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
	if len(out.SubNodes) != 2 {
		t.Fatalf("expected 2 sub-nodes preserved, got %d", len(out.SubNodes))
	}
	sub, ok := out.SubObject("Inner")
	if !ok {
		t.Fatalf("expected sub-object Inner to be reachable by name")
	}
	if sub.AnalysisInfo == nil {
		t.Fatalf("expected sub-object to be translated too")
	}
	if _, ok := out.SubObject("auxdata"); ok {
		t.Fatalf("expected auxdata to be indexed as Data, not Object")
	}
}
