package splice

import (
	"testing"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/dialect"
)

func TestRunAppendsPolyfillAndAnalyzesCleanly(t *testing.T) {
	block := &ast.Block{
		Statements: []ast.Statement{
			&ast.FunctionDefinition{
				Name: "main",
				Body: &ast.Block{
					Statements: []ast.Statement{
						&ast.ExpressionStatement{
							Expression: &ast.FunctionCall{
								Name: "stop",
							},
						},
					},
				},
			},
		},
	}

	info, err := Run(dialect.Wasm, block)
	if err != nil {
		t.Fatalf("Run returned an internal error: %v", err)
	}
	if info.DialectName != dialect.Wasm.Name() {
		t.Fatalf("expected AnalysisInfo to record the target dialect, got %q", info.DialectName)
	}

	found := false
	for _, stmt := range block.Statements {
		if fn, ok := stmt.(*ast.FunctionDefinition); ok && fn.Name == "add" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected polyfill function definitions to be appended to the block")
	}
}

func TestRunDoesNotMutatePolyfillCache(t *testing.T) {
	block1 := &ast.Block{Statements: []ast.Statement{
		&ast.FunctionDefinition{Name: "main", Body: &ast.Block{}},
	}}
	block2 := &ast.Block{Statements: []ast.Statement{
		&ast.FunctionDefinition{Name: "main", Body: &ast.Block{}},
	}}

	if _, err := Run(dialect.Wasm, block1); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if _, err := Run(dialect.Wasm, block2); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if len(block1.Statements) != len(block2.Statements) {
		t.Fatalf("expected both splices to append the same number of statements, got %d and %d", len(block1.Statements), len(block2.Statements))
	}
}
