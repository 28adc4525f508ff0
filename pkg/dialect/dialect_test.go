package dialect

import (
	"testing"

	"github.com/yulc/evm2ewasm/pkg/ast"
)

func TestEVMBuiltinArity(t *testing.T) {
	b, ok := EVM.Builtin("addmod")
	if !ok {
		t.Fatalf("expected addmod to be an EVM builtin")
	}
	if b.Ins != 3 || b.Outs != 1 {
		t.Errorf("expected addmod(3,1), got (%d,%d)", b.Ins, b.Outs)
	}
}

func TestEVMUnknownBuiltinMisses(t *testing.T) {
	if _, ok := EVM.Builtin("i64.add"); ok {
		t.Errorf("i64.add should not be a valid EVM builtin")
	}
}

func TestEVMDefaultTypeIsWord(t *testing.T) {
	if EVM.DefaultType() != ast.TypeWord {
		t.Errorf("expected EVM default type to be TypeWord")
	}
	if !EVM.ValidType(ast.TypeWord) {
		t.Errorf("expected TypeWord to be valid in the EVM dialect")
	}
	if EVM.ValidType(ast.TypeI64) {
		t.Errorf("expected TypeI64 to be invalid in the EVM dialect")
	}
}

func TestWasmBuiltinArityCoversHostImports(t *testing.T) {
	b, ok := Wasm.Builtin("eth.storageStore")
	if !ok {
		t.Fatalf("expected eth.storageStore to be a Wasm builtin")
	}
	if b.Ins != 2 || b.Outs != 0 {
		t.Errorf("expected eth.storageStore(2,0), got (%d,%d)", b.Ins, b.Outs)
	}
}

func TestWasmDefaultTypeIsI64(t *testing.T) {
	if Wasm.DefaultType() != ast.TypeI64 {
		t.Errorf("expected Wasm default type to be TypeI64")
	}
	if !Wasm.ValidType(ast.TypeI32) {
		t.Errorf("expected TypeI32 to be valid in the Wasm dialect")
	}
}

func TestWasmTrapBuiltinsConfiguration(t *testing.T) {
	trapped := []string{"selfbalance", "chainid", "extcodehash", "msize", "create2"}
	for _, name := range trapped {
		if !Wasm.Traps(name) {
			t.Errorf("expected %s to be in the trap set", name)
		}
	}
	if Wasm.Traps("add") {
		t.Errorf("expected add to not be in the trap set")
	}
}
