// Package dialect answers, for a given builtin name, whether it belongs to
// a dialect and what its input/output arity is. This is the "dialect
// descriptor" collaborator of spec.md §6: the EVM-dialect and Wasm-dialect
// definitions themselves are out of scope for this translator, but the
// pipeline cannot run without something concrete answering these
// questions, so EVM and Wasm below are the minimal query-only stand-ins the
// spec assumes.
package dialect

import "github.com/yulc/evm2ewasm/pkg/ast"

// Builtin describes one dialect builtin's calling convention.
type Builtin struct {
	Ins  int
	Outs int
}

// Dialect is the query interface every pass depends on instead of a
// hard-coded opcode list.
type Dialect interface {
	// Name identifies the dialect for diagnostics.
	Name() string
	// Builtin reports whether name is a builtin of this dialect and, if so,
	// its arity.
	Builtin(name string) (Builtin, bool)
	// DefaultType is the type a TypedName gets when no type annotation is
	// present (the EVM dialect's implicit 256-bit word, or Wasm's i64).
	DefaultType() ast.Type
	// ValidType reports whether t is a legal type tag in this dialect.
	ValidType(t ast.Type) bool
}

// evmDialect implements Dialect for the EVM dialect: every builtin operates
// on untyped 256-bit words (ast.TypeWord).
type evmDialect struct {
	builtins map[string]Builtin
}

func (d *evmDialect) Name() string { return "evm" }

func (d *evmDialect) Builtin(name string) (Builtin, bool) {
	b, ok := d.builtins[name]
	return b, ok
}

func (d *evmDialect) DefaultType() ast.Type { return ast.TypeWord }

func (d *evmDialect) ValidType(t ast.Type) bool {
	return t == ast.TypeWord || t == ast.TypeBool
}

// EVM is the singleton EVM-dialect descriptor.
var EVM Dialect = &evmDialect{builtins: evmBuiltins()}

// evmBuiltins is the full EVM opcode-as-builtin table the word-size
// transform and analyzer consult. Widths are all implicitly 256 bits; only
// arity is tracked here, per spec.md §6.
func evmBuiltins() map[string]Builtin {
	return map[string]Builtin{
		"stop":           {0, 0},
		"add":            {2, 1},
		"sub":            {2, 1},
		"mul":            {2, 1},
		"div":            {2, 1},
		"sdiv":           {2, 1},
		"mod":            {2, 1},
		"smod":           {2, 1},
		"exp":            {2, 1},
		"not":            {1, 1},
		"lt":             {2, 1},
		"gt":             {2, 1},
		"slt":            {2, 1},
		"sgt":            {2, 1},
		"eq":             {2, 1},
		"iszero":         {1, 1},
		"and":            {2, 1},
		"or":             {2, 1},
		"xor":            {2, 1},
		"byte":           {2, 1},
		"shl":            {2, 1},
		"shr":            {2, 1},
		"sar":            {2, 1},
		"addmod":         {3, 1},
		"mulmod":         {3, 1},
		"signextend":     {2, 1},
		"keccak256":      {2, 1},
		"pop":            {1, 0},
		"mload":          {1, 1},
		"mstore":         {2, 0},
		"mstore8":        {2, 0},
		"sload":          {1, 1},
		"sstore":         {2, 0},
		"msize":          {0, 1},
		"gas":            {0, 1},
		"address":        {0, 1},
		"balance":        {1, 1},
		"selfbalance":    {0, 1},
		"chainid":        {0, 1},
		"origin":         {0, 1},
		"caller":         {0, 1},
		"callvalue":      {0, 1},
		"calldataload":   {1, 1},
		"calldatasize":   {0, 1},
		"calldatacopy":   {3, 0},
		"codesize":       {0, 1},
		"codecopy":       {3, 0},
		"datacopy":       {3, 0},
		"gasprice":       {0, 1},
		"extcodesize":    {1, 1},
		"extcodehash":    {1, 1},
		"extcodecopy":    {4, 0},
		"returndatasize": {0, 1},
		"returndatacopy": {3, 0},
		"blockhash":      {1, 1},
		"coinbase":       {0, 1},
		"timestamp":      {0, 1},
		"number":         {0, 1},
		"difficulty":     {0, 1},
		"gaslimit":       {0, 1},
		"log0":           {2, 0},
		"log1":           {3, 0},
		"log2":           {4, 0},
		"log3":           {5, 0},
		"log4":           {6, 0},
		"create":         {3, 1},
		"create2":        {4, 1},
		"call":           {7, 1},
		"callcode":       {7, 1},
		"delegatecall":   {6, 1},
		"staticcall":     {6, 1},
		"return":         {2, 0},
		"revert":         {2, 0},
		"invalid":        {0, 0},
		"selfdestruct":   {1, 0},
	}
}

// wasmDialect implements Dialect for the Wasm dialect: values are i64/i32
// and builtins are the i64.*/i32.* opcode family plus the `eth.*` host
// import namespace. TrapBuiltins is the set of instructions the original
// implementation traps on because the host ABI it targeted did not expose
// them (spec.md §9's Open Questions note: "the trap-set... should be
// treated as a configuration input"). It is exposed as data, not baked
// into pkg/polyfill, so a different host ABI can shrink or grow the set.
type wasmDialect struct {
	builtins     map[string]Builtin
	TrapBuiltins map[string]bool
}

func (d *wasmDialect) Name() string { return "wasm" }

func (d *wasmDialect) Builtin(name string) (Builtin, bool) {
	b, ok := d.builtins[name]
	return b, ok
}

func (d *wasmDialect) DefaultType() ast.Type { return ast.TypeI64 }

func (d *wasmDialect) ValidType(t ast.Type) bool {
	return t == ast.TypeI64 || t == ast.TypeI32 || t == ast.TypeBool
}

// Traps reports whether name is in this dialect's configured trap-set: an
// EVM builtin with no host-ABI counterpart, which pkg/wordsize lowers to an
// `unreachable` instruction instead of a polyfill call. See
// SPEC_FULL.md §5 for why this is a Wasm-dialect configuration field rather
// than a hard-coded name list.
func (d *wasmDialect) Traps(name string) bool {
	return d.TrapBuiltins[name]
}

// Wasm is the singleton Wasm-dialect descriptor.
var Wasm = &wasmDialect{
	builtins: wasmBuiltins(),
	TrapBuiltins: map[string]bool{
		"selfbalance": true,
		"chainid":     true,
		"extcodehash": true,
		"msize":       true,
		"create2":     true,
	},
}

// wasmBuiltins builds the Wasm dialect's builtin table: the i64/i32
// operators plus the host-imported primitives the polyfill calls under the
// `eth` module namespace, in the emission order of spec.md §6. Each eth
// entry's arity is the WebAssembly import signature (i32 pointers/lengths,
// not EVM 256-bit words) - the polyfill functions above them do the u256
// narrowing.
func wasmBuiltins() map[string]Builtin {
	b := map[string]Builtin{
		// Numeric i64 operators.
		"i64.add": {2, 1}, "i64.sub": {2, 1}, "i64.mul": {2, 1},
		"i64.div_u": {2, 1}, "i64.div_s": {2, 1},
		"i64.rem_u": {2, 1}, "i64.rem_s": {2, 1},
		"i64.and": {2, 1}, "i64.or": {2, 1}, "i64.xor": {2, 1},
		"i64.shl": {2, 1}, "i64.shr_u": {2, 1}, "i64.shr_s": {2, 1},
		"i64.rotl": {2, 1}, "i64.rotr": {2, 1},
		"i64.clz": {1, 1}, "i64.ctz": {1, 1}, "i64.popcnt": {1, 1},
		"i64.eqz": {1, 1}, "i64.eq": {2, 1}, "i64.ne": {2, 1},
		"i64.lt_u": {2, 1}, "i64.lt_s": {2, 1}, "i64.gt_u": {2, 1}, "i64.gt_s": {2, 1},
		"i64.le_u": {2, 1}, "i64.le_s": {2, 1}, "i64.ge_u": {2, 1}, "i64.ge_s": {2, 1},
		"i64.extend_i32_u": {1, 1}, "i64.extend_i32_s": {1, 1},
		"i64.load": {1, 1}, "i64.load8_u": {1, 1}, "i64.load32_u": {1, 1},
		"i64.store": {2, 0}, "i64.store8": {2, 0}, "i64.store32": {2, 0},
		// Numeric i32 operators.
		"i32.add": {2, 1}, "i32.sub": {2, 1}, "i32.mul": {2, 1},
		"i32.div_u": {2, 1}, "i32.div_s": {2, 1},
		"i32.rem_u": {2, 1}, "i32.rem_s": {2, 1},
		"i32.and": {2, 1}, "i32.or": {2, 1}, "i32.xor": {2, 1},
		"i32.shl": {2, 1}, "i32.shr_u": {2, 1}, "i32.shr_s": {2, 1},
		"i32.eqz": {1, 1}, "i32.eq": {2, 1}, "i32.ne": {2, 1},
		"i32.lt_u": {2, 1}, "i32.lt_s": {2, 1}, "i32.gt_u": {2, 1}, "i32.gt_s": {2, 1},
		"i32.ge_u": {2, 1}, "i32.le_u": {2, 1},
		"i32.wrap_i64": {1, 1},
		"i32.load":     {1, 1}, "i32.load8_u": {1, 1},
		"i32.store": {2, 0}, "i32.store8": {2, 0},
		"unreachable": {0, 0},
	}
	for name, arity := range ethImports() {
		b["eth."+name] = arity
	}
	return b
}

// ethImports is the host-imported primitive table of spec.md §6, in
// emission order.
func ethImports() map[string]Builtin {
	return map[string]Builtin{
		"getAddress":          {1, 0},
		"getExternalBalance":  {2, 0},
		"getTxOrigin":         {1, 0},
		"getCaller":           {1, 0},
		"getCallValue":        {1, 0},
		"getCallDataSize":     {0, 1},
		"callDataCopy":        {3, 0},
		"getCodeSize":         {0, 1},
		"codeCopy":            {3, 0},
		"getTxGasPrice":       {1, 0},
		"getExternalCodeSize": {1, 1},
		"externalCodeCopy":    {4, 0},
		"getReturnDataSize":   {0, 1},
		"returnDataCopy":      {3, 0},
		"getBlockHash":        {2, 1},
		"getBlockCoinbase":    {1, 0},
		"getBlockTimestamp":   {0, 1},
		"getBlockNumber":      {0, 1},
		"getBlockDifficulty":  {1, 0},
		"getBlockGasLimit":    {0, 1},
		"storageLoad":         {2, 0},
		"storageStore":        {2, 0},
		"getGasLeft":          {0, 1},
		"log":                 {7, 0},
		"create":              {4, 1},
		"call":                {5, 1},
		"callCode":            {5, 1},
		"callDelegate":        {4, 1},
		"callStatic":          {4, 1},
		"finish":              {2, 0},
		"revert":              {2, 0},
		"selfDestruct":        {1, 0},
	}
}
