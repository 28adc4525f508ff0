// Package disambiguator implements the Disambiguator pass: it renames
// every declared identifier so that no two declarations in a function's
// scope tree share a name, and no declaration shadows an outer one under a
// different meaning (spec.md §4.2). Every later pass can then move
// statements around a function body without a rename ever changing which
// declaration a reference resolves to.
package disambiguator

import (
	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/namedispenser"
)

// Transformer carries the rename environment across one call to Run.
type Transformer struct {
	dispenser *namedispenser.Dispenser
}

// New creates a Transformer using dispenser to manufacture fresh names.
func New(dispenser *namedispenser.Dispenser) *Transformer {
	return &Transformer{dispenser: dispenser}
}

// env is a scope's name-to-renamed-name mapping, chained to its parent so
// that inner scopes see outer renames but not vice versa.
type env struct {
	renames map[string]string
	parent  *env
}

func newEnv(parent *env) *env {
	return &env{renames: map[string]string{}, parent: parent}
}

func (e *env) declare(t *Transformer, original string) string {
	fresh := t.dispenser.Fresh(original)
	e.renames[original] = fresh
	return fresh
}

func (e *env) resolve(name string) string {
	for c := e; c != nil; c = c.parent {
		if renamed, ok := c.renames[name]; ok {
			return renamed
		}
	}
	return name
}

// Run renames every declaration in block in place and returns it. It is
// idempotent in the sense spec.md §8 requires: a block whose identifiers
// were already disambiguated (all distinct, none shadowing) is returned
// with every name mapped 1:1 to a fresh one, preserving structure.
func (t *Transformer) Run(block *ast.Block) *ast.Block {
	t.transformBlock(block, newEnv(nil))
	return block
}

// Run is the package-level convenience entry point used by pkg/translator.
func Run(block *ast.Block) *ast.Block {
	return New(namedispenser.New(block)).Run(block)
}

func (t *Transformer) transformBlock(block *ast.Block, parent *env) {
	e := newEnv(parent)
	// Function names are visible block-wide in Yul, so hoist their renames
	// before walking any statement, matching the same rule the analyzer
	// applies for name resolution.
	for _, fn := range ast.TopLevelFunctions(block) {
		e.declare(t, fn.Name)
	}
	for i, stmt := range block.Statements {
		block.Statements[i] = t.transformStatement(stmt, e)
	}
}

func (t *Transformer) transformStatement(stmt ast.Statement, e *env) ast.Statement {
	switch n := stmt.(type) {
	case *ast.Block:
		t.transformBlock(n, e)
		return n
	case *ast.FunctionDefinition:
		n.Name = e.resolve(n.Name)
		inner := newEnv(e)
		for i := range n.Parameters {
			n.Parameters[i].Name = inner.declare(t, n.Parameters[i].Name)
		}
		for i := range n.Returns {
			n.Returns[i].Name = inner.declare(t, n.Returns[i].Name)
		}
		t.transformBlock(n.Body, inner)
		return n
	case *ast.VariableDeclaration:
		if n.Value != nil {
			n.Value = t.transformExpression(n.Value, e)
		}
		for i := range n.Variables {
			n.Variables[i].Name = e.declare(t, n.Variables[i].Name)
		}
		return n
	case *ast.Assignment:
		n.Value = t.transformExpression(n.Value, e)
		for i, name := range n.Names {
			n.Names[i] = e.resolve(name)
		}
		return n
	case *ast.If:
		n.Condition = t.transformExpression(n.Condition, e)
		t.transformBlock(n.Body, e)
		return n
	case *ast.Switch:
		n.Expression = t.transformExpression(n.Expression, e)
		for i := range n.Cases {
			t.transformBlock(n.Cases[i].Body, e)
		}
		return n
	case *ast.ForLoop:
		// The pre block's declarations stay visible in the condition, post
		// block and body, so its statements are renamed directly in outer.
		outer := newEnv(e)
		for i, st := range n.Pre.Statements {
			n.Pre.Statements[i] = t.transformStatement(st, outer)
		}
		n.Condition = t.transformExpression(n.Condition, outer)
		t.transformBlock(n.Post, outer)
		t.transformBlock(n.Body, outer)
		return n
	case *ast.ExpressionStatement:
		n.Expression = t.transformExpression(n.Expression, e)
		return n
	case *ast.Break, *ast.Continue, *ast.Leave:
		return n
	default:
		panic("disambiguator: unhandled statement type")
	}
}

func (t *Transformer) transformExpression(expr ast.Expression, e *env) ast.Expression {
	switch n := expr.(type) {
	case *ast.Literal:
		return n
	case *ast.Identifier:
		n.Name = e.resolve(n.Name)
		return n
	case *ast.FunctionCall:
		n.Name = e.resolve(n.Name)
		for i, arg := range n.Arguments {
			n.Arguments[i] = t.transformExpression(arg, e)
		}
		return n
	default:
		panic("disambiguator: unhandled expression type")
	}
}
