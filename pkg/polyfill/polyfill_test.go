package polyfill

import "testing"

func TestBlockParsesCleanly(t *testing.T) {
	block, err := Block()
	if err != nil {
		t.Fatalf("polyfill source did not parse: %v", err)
	}
	if len(block.Statements) == 0 {
		t.Fatalf("expected the polyfill block to contain function definitions")
	}
}

func TestFunctionNamesCoversCoreArithmetic(t *testing.T) {
	names := FunctionNames()
	for _, want := range []string{
		"add", "sub", "mul", "div", "mod",
		"lt", "gt", "eq", "iszero",
		"and", "or", "xor", "not",
		"shl", "shr", "sar",
		"mload", "mstore", "sload", "sstore",
		"keccak256", "call", "create", "return",
		"to_internal_i32ptr", "mload_internal", "mstore_internal",
		"bswap64", "add_carry",
	} {
		if !names[want] {
			t.Errorf("expected polyfill to define %q", want)
		}
	}
}

func TestFunctionNamesIsCachedAndStable(t *testing.T) {
	first := FunctionNames()
	second := FunctionNames()
	if len(first) != len(second) {
		t.Fatalf("expected FunctionNames to be stable across calls")
	}
}
