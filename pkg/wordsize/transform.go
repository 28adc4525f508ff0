// Package wordsize implements the WordSizeTransform pass: the heart of the
// translator. Every EVM-dialect variable, parameter, return, and literal of
// the implicit 256-bit word type is replaced by four ordered i64
// "limb" variables, most significant first (spec.md §4.6). Every EVM
// builtin call is rewritten into a call to its polyfill counterpart
// (pkg/polyfill) operating on limb tuples, or to `unreachable` if the
// target dialect's trap-set (dialect.Wasm.TrapBuiltins) contains it.
package wordsize

import (
	"fmt"
	"math/big"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/dialect"
	"github.com/yulc/evm2ewasm/pkg/namedispenser"
)

// limbSuffixes names the four i64 limbs of a lowered word, most
// significant first.
var limbSuffixes = [4]string{"_limb1", "_limb2", "_limb3", "_limb4"}

// limbs is the four identifier names standing in for one lowered word
// variable.
type limbs [4]string

// trapper is implemented by dialects that configure a trap-set (currently
// dialect.Wasm); asserted for rather than added to the Dialect interface
// so a dialect without a trap-set need not implement it.
type trapper interface {
	Traps(name string) bool
}

// env is a scope's word-variable-to-limbs mapping, chained to its parent.
type env struct {
	vars   map[string]limbs
	parent *env
}

func newEnv(parent *env) *env {
	return &env{vars: map[string]limbs{}, parent: parent}
}

func (e *env) declare(name string, l limbs) {
	e.vars[name] = l
}

func (e *env) lookup(name string) (limbs, bool) {
	for c := e; c != nil; c = c.parent {
		if l, ok := c.vars[name]; ok {
			return l, true
		}
	}
	return limbs{}, false
}

// Transformer carries the source/target dialects and the name dispenser
// used to manufacture limb variable names.
type Transformer struct {
	from, to  dialect.Dialect
	dispenser *namedispenser.Dispenser
}

// New creates a Transformer translating from's word-typed values into to's
// limb representation.
func New(from, to dialect.Dialect, dispenser *namedispenser.Dispenser) *Transformer {
	return &Transformer{from: from, to: to, dispenser: dispenser}
}

// Run lowers every word-typed declaration, parameter, literal, and builtin
// call in block.
func Run(from, to dialect.Dialect, block *ast.Block, dispenser *namedispenser.Dispenser) *ast.Block {
	t := New(from, to, dispenser)
	t.transformBlock(block, newEnv(nil))
	return block
}

func (t *Transformer) isWord(typ ast.Type) bool {
	return typ == ast.TypeWord
}

func (t *Transformer) freshLimbs(base string) limbs {
	var l limbs
	for i, suffix := range limbSuffixes {
		l[i] = t.dispenser.Fresh(base + suffix)
	}
	return l
}

// polyfillName is the identity: the polyfill exposes each opcode-shaped
// builtin under its own same-named function (spec.md §4.6), so translated
// calls target `add`, `lt`, `keccak256`, ... directly. Only the narrowing
// conversions the transform introduces itself (u256_to_i32 and friends)
// carry the u256_ prefix, and those are named at their call sites, not here.
func (t *Transformer) polyfillName(name string) string {
	return name
}

func (t *Transformer) traps(name string) bool {
	tr, ok := t.to.(trapper)
	return ok && tr.Traps(name)
}

func (t *Transformer) transformBlock(block *ast.Block, e *env) {
	var out []ast.Statement
	for _, stmt := range block.Statements {
		out = append(out, t.transformStatement(stmt, e)...)
	}
	block.Statements = out
}

func (t *Transformer) transformStatement(stmt ast.Statement, e *env) []ast.Statement {
	switch n := stmt.(type) {
	case *ast.Block:
		t.transformBlock(n, e)
		return []ast.Statement{n}

	case *ast.FunctionDefinition:
		inner := newEnv(e)
		n.Parameters = t.expandTypedNames(n.Parameters, inner)
		n.Returns = t.expandTypedNames(n.Returns, inner)
		t.transformBlock(n.Body, inner)
		return []ast.Statement{n}

	case *ast.VariableDeclaration:
		return t.transformVariableDeclaration(n, e)

	case *ast.Assignment:
		return t.transformAssignment(n, e)

	case *ast.If:
		var hoisted []ast.Statement
		n.Condition = t.reduceCondition(n.Condition, e, &hoisted)
		t.transformBlock(n.Body, e)
		return append(hoisted, n)

	case *ast.Switch:
		return t.lowerSwitch(n, e)

	case *ast.ForLoop:
		t.transformBlock(n.Pre, e)
		t.transformBlock(n.Post, e)
		t.transformBlock(n.Body, e)
		return []ast.Statement{n}

	case *ast.ExpressionStatement:
		var hoisted []ast.Statement
		call, ok := n.Expression.(*ast.FunctionCall)
		if !ok {
			return []ast.Statement{n}
		}
		if t.traps(call.Name) {
			return []ast.Statement{&ast.ExpressionStatement{Expression: t.trapCall()}}
		}
		n.Expression = t.translateCall(call, e, &hoisted)
		return append(hoisted, n)

	case *ast.Break, *ast.Continue, *ast.Leave:
		return []ast.Statement{n}

	default:
		panic(fmt.Sprintf("wordsize: unhandled statement type %T", n))
	}
}

// expandTypedNames replaces every word-typed name in names with its four
// i64 limb names, registering the mapping in e, and leaves already-typed
// (i64/i32/bool) names untouched.
func (t *Transformer) expandTypedNames(names []ast.TypedName, e *env) []ast.TypedName {
	var out []ast.TypedName
	for _, n := range names {
		if !t.isWord(n.Type) {
			out = append(out, n)
			continue
		}
		l := t.freshLimbs(n.Name)
		e.declare(n.Name, l)
		for _, name := range l {
			out = append(out, ast.TypedName{Name: name, Type: ast.TypeI64})
		}
	}
	return out
}

func (t *Transformer) trapCall() ast.Expression {
	return &ast.FunctionCall{Name: "unreachable"}
}

func (t *Transformer) transformVariableDeclaration(n *ast.VariableDeclaration, e *env) []ast.Statement {
	// Only a single-variable word declaration is expanded into limbs. A
	// multi-variable declaration (including a word-typed `let a, b := f()`)
	// and an i64/i32-typed one keep their names and types; only their value
	// is translated.
	if len(n.Variables) != 1 || !t.isWord(n.Variables[0].Type) {
		var hoisted []ast.Statement
		if n.Value != nil {
			n.Value = t.transformScalarValue(n.Value, e, &hoisted)
		}
		return append(hoisted, n)
	}

	name := n.Variables[0].Name

	if n.Value == nil {
		l := t.freshLimbs(name)
		e.declare(name, l)
		var out []ast.Statement
		for _, limbName := range l {
			out = append(out, &ast.VariableDeclaration{
				Variables: []ast.TypedName{{Name: limbName, Type: ast.TypeI64}},
				Value:     ast.NewLiteralInt64(0, ast.TypeI64),
			})
		}
		return out
	}

	if call, ok := n.Value.(*ast.FunctionCall); ok {
		if t.traps(call.Name) {
			return []ast.Statement{&ast.ExpressionStatement{Expression: t.trapCall()}}
		}
		var hoisted []ast.Statement
		translated := t.translateCall(call, e, &hoisted)
		l := t.freshLimbs(name)
		e.declare(name, l)
		decl := &ast.VariableDeclaration{Value: translated}
		for _, limbName := range l {
			decl.Variables = append(decl.Variables, ast.TypedName{Name: limbName, Type: ast.TypeI64})
		}
		return append(hoisted, decl)
	}

	// Literal or Identifier: copy limb-by-limb into four fresh declarations.
	src := t.limbsOfValue(n.Value, e)
	l := t.freshLimbs(name)
	e.declare(name, l)
	var out []ast.Statement
	for i, limbName := range l {
		out = append(out, &ast.VariableDeclaration{
			Variables: []ast.TypedName{{Name: limbName, Type: ast.TypeI64}},
			Value:     src[i],
		})
	}
	return out
}

func (t *Transformer) transformAssignment(n *ast.Assignment, e *env) []ast.Statement {
	if len(n.Names) != 1 {
		var hoisted []ast.Statement
		n.Value = t.transformScalarValue(n.Value, e, &hoisted)
		return append(hoisted, n)
	}

	l, isWordVar := e.lookup(n.Names[0])
	if !isWordVar {
		var hoisted []ast.Statement
		n.Value = t.transformScalarValue(n.Value, e, &hoisted)
		return append(hoisted, n)
	}

	if call, ok := n.Value.(*ast.FunctionCall); ok {
		if t.traps(call.Name) {
			return []ast.Statement{&ast.ExpressionStatement{Expression: t.trapCall()}}
		}
		var hoisted []ast.Statement
		translated := t.translateCall(call, e, &hoisted)
		names := make([]string, len(l))
		copy(names, l[:])
		return append(hoisted, &ast.Assignment{Names: names, Value: translated})
	}

	src := t.limbsOfValue(n.Value, e)
	var out []ast.Statement
	for i, limbName := range l {
		out = append(out, &ast.Assignment{Names: []string{limbName}, Value: src[i]})
	}
	return out
}

// transformScalarValue handles a value known not to be a word (already
// i64/i32/bool typed): only its arguments, if it is a call, might still
// reference word variables (e.g. an i64 loop counter built from a word
// comparison), so calls are still routed through translateCall.
func (t *Transformer) transformScalarValue(value ast.Expression, e *env, hoisted *[]ast.Statement) ast.Expression {
	call, ok := value.(*ast.FunctionCall)
	if !ok {
		return value
	}
	if t.traps(call.Name) {
		return t.trapCall()
	}
	return t.translateCall(call, e, hoisted)
}

// limbsOfValue returns the four i64 expressions a Literal or Identifier
// value decomposes into, most significant first.
func (t *Transformer) limbsOfValue(value ast.Expression, e *env) [4]ast.Expression {
	switch n := value.(type) {
	case *ast.Literal:
		return splitLiteral(n)
	case *ast.Identifier:
		l, ok := e.lookup(n.Name)
		if !ok {
			panic(fmt.Sprintf("wordsize: identifier %s used as a word value but never declared as one", n.Name))
		}
		var out [4]ast.Expression
		for i, name := range l {
			out[i] = &ast.Identifier{Name: name}
		}
		return out
	default:
		panic(fmt.Sprintf("wordsize: unexpected value expression %T", value))
	}
}

// splitLiteral decomposes a word literal into four big-endian 64-bit
// limbs. The bool literals `true`/`false` split to {0,0,0,1}/{0,0,0,0}.
func splitLiteral(lit *ast.Literal) [4]ast.Expression {
	v := new(big.Int)
	if lit.IsBool {
		if lit.Bool {
			v.SetInt64(1)
		}
	} else if lit.Value != nil {
		v.Set(lit.Value)
	}

	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
	var out [4]ast.Expression
	for i := 3; i >= 0; i-- {
		limb := new(big.Int).And(v, mask)
		out[i] = ast.NewLiteral(limb, ast.TypeI64)
		v.Rsh(v, 64)
	}
	return out
}

// translateCall rewrites an EVM-dialect builtin or user-function call into
// its lowered form: word arguments expand to four i64 arguments each, and
// EVM builtin names map onto their polyfill counterpart.
func (t *Transformer) translateCall(call *ast.FunctionCall, e *env, hoisted *[]ast.Statement) *ast.FunctionCall {
	var args []ast.Expression
	for _, arg := range call.Arguments {
		args = append(args, t.expandArgument(arg, e, hoisted)...)
	}

	name := call.Name
	if _, isBuiltin := t.from.Builtin(call.Name); isBuiltin {
		name = t.polyfillName(call.Name)
	}
	return &ast.FunctionCall{Name: name, Arguments: args}
}

// expandArgument replaces a single source-level argument with the one or
// four lowered arguments it corresponds to.
func (t *Transformer) expandArgument(arg ast.Expression, e *env, hoisted *[]ast.Statement) []ast.Expression {
	switch n := arg.(type) {
	case *ast.Literal:
		if n.IsBool {
			return []ast.Expression{n}
		}
		limbExprs := splitLiteral(n)
		return limbExprs[:]
	case *ast.Identifier:
		if l, ok := e.lookup(n.Name); ok {
			out := make([]ast.Expression, 4)
			for i, name := range l {
				out[i] = &ast.Identifier{Name: name}
			}
			return out
		}
		return []ast.Expression{n}
	case *ast.FunctionCall:
		// Post-exprsplitter, an argument-position call should already have
		// been hoisted out; if not (a dialect builtin with no return value
		// used defensively as an argument), translate it in place.
		return []ast.Expression{t.translateCall(n, e, hoisted)}
	default:
		panic(fmt.Sprintf("wordsize: unexpected argument expression %T", arg))
	}
}

// reduceCondition turns a single-value if/for condition into an i64 truthy
// test: a bool literal, an already-scalar (i64/i32) expression, or a
// word-typed expression whose four limbs are OR-reduced.
func (t *Transformer) reduceCondition(cond ast.Expression, e *env, hoisted *[]ast.Statement) ast.Expression {
	switch n := cond.(type) {
	case *ast.Literal:
		if n.IsBool {
			return n
		}
		limbExprs := splitLiteral(n)
		return orReduce(limbExprs)
	case *ast.Identifier:
		if l, ok := e.lookup(n.Name); ok {
			var limbExprs [4]ast.Expression
			for i, name := range l {
				limbExprs[i] = &ast.Identifier{Name: name}
			}
			return orReduce(limbExprs)
		}
		return n
	case *ast.FunctionCall:
		if t.traps(n.Name) {
			return t.trapCall()
		}
		translated := t.translateCall(n, e, hoisted)
		if _, isBuiltin := t.from.Builtin(n.Name); !isBuiltin {
			// A user function call in condition position returns whatever
			// its (already-lowered) signature says; treat a single i64/i32
			// return as already scalar.
			return translated
		}
		temp := t.freshLimbs("cond")
		decl := &ast.VariableDeclaration{Value: translated}
		for _, name := range temp {
			decl.Variables = append(decl.Variables, ast.TypedName{Name: name, Type: ast.TypeI64})
		}
		*hoisted = append(*hoisted, decl)
		var limbExprs [4]ast.Expression
		for i, name := range temp {
			limbExprs[i] = &ast.Identifier{Name: name}
		}
		return orReduce(limbExprs)
	default:
		panic(fmt.Sprintf("wordsize: unexpected condition expression %T", cond))
	}
}

func orReduce(limbExprs [4]ast.Expression) ast.Expression {
	left := &ast.FunctionCall{Name: "i64.or", Arguments: []ast.Expression{limbExprs[0], limbExprs[1]}}
	right := &ast.FunctionCall{Name: "i64.or", Arguments: []ast.Expression{limbExprs[2], limbExprs[3]}}
	return &ast.FunctionCall{Name: "i64.or", Arguments: []ast.Expression{left, right}}
}

// lowerSwitch rewrites a Switch on a word-typed expression into a sequence
// of Ifs testing equality against each case's limbs in turn, falling
// through to the default body (or doing nothing) otherwise. Wasm has no
// direct multi-way branch over a 256-bit value, so this mirrors how a
// dispatch table would be hand-written against the polyfill's compare
// primitive.
func (t *Transformer) lowerSwitch(n *ast.Switch, e *env) []ast.Statement {
	var hoisted []ast.Statement
	selector := t.limbsOfValue(n.Expression, e)
	selectorNames := make([]string, 4)
	for i, expr := range selector {
		temp := t.dispenser.Fresh("switch_sel")
		hoisted = append(hoisted, &ast.VariableDeclaration{
			Variables: []ast.TypedName{{Name: temp, Type: ast.TypeI64}},
			Value:     expr,
		})
		selectorNames[i] = temp
	}

	var defaultBody *ast.Block
	var matchedVar string
	needsMatchedFlag := false
	for _, c := range n.Cases {
		if c.Value == nil {
			needsMatchedFlag = true
		}
	}
	if needsMatchedFlag {
		matchedVar = t.dispenser.Fresh("switch_matched")
		hoisted = append(hoisted, &ast.VariableDeclaration{
			Variables: []ast.TypedName{{Name: matchedVar, Type: ast.TypeI64}},
			Value:     ast.NewLiteralInt64(0, ast.TypeI64),
		})
	}

	for _, c := range n.Cases {
		t.transformBlock(c.Body, e)
		if c.Value == nil {
			defaultBody = c.Body
			continue
		}
		caseLimbs := splitLiteral(c.Value)
		var eqTerms ast.Expression
		for i := 0; i < 4; i++ {
			term := &ast.FunctionCall{Name: "i64.eq", Arguments: []ast.Expression{
				&ast.Identifier{Name: selectorNames[i]}, caseLimbs[i],
			}}
			if eqTerms == nil {
				eqTerms = term
			} else {
				eqTerms = &ast.FunctionCall{Name: "i64.and", Arguments: []ast.Expression{eqTerms, term}}
			}
		}
		if needsMatchedFlag {
			c.Body.Statements = append(c.Body.Statements, &ast.Assignment{
				Names: []string{matchedVar},
				Value: ast.NewLiteralInt64(1, ast.TypeI64),
			})
		}
		hoisted = append(hoisted, &ast.If{Condition: eqTerms, Body: c.Body})
	}

	if defaultBody != nil {
		hoisted = append(hoisted, &ast.If{
			Condition: &ast.FunctionCall{Name: "i64.eqz", Arguments: []ast.Expression{&ast.Identifier{Name: matchedVar}}},
			Body:      defaultBody,
		})
	}
	return hoisted
}
