// Package namedisplacer runs after word-size lowering to guarantee that no
// user-introduced name in the translated tree collides with a name the
// polyfill library defines, before pkg/splice appends the polyfill's own
// declarations onto the same block (spec.md §4.8).
package namedisplacer

import (
	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/namedispenser"
	"github.com/yulc/evm2ewasm/pkg/polyfill"
)

// env tracks renames introduced at each lexical scope, mirroring the
// scope-chained approach pkg/disambiguator already uses.
type env struct {
	renames map[string]string
	parent  *env
}

func newEnv(parent *env) *env {
	return &env{renames: map[string]string{}, parent: parent}
}

func (e *env) declare(dispenser *namedispenser.Dispenser, reserved map[string]bool, original string) string {
	if !reserved[original] {
		return original
	}
	fresh := dispenser.Fresh(original)
	e.renames[original] = fresh
	return fresh
}

func (e *env) resolve(name string) string {
	for cur := e; cur != nil; cur = cur.parent {
		if renamed, ok := cur.renames[name]; ok {
			return renamed
		}
	}
	return name
}

// Run displaces every user name in block that collides with a polyfill
// function name. It runs word-size lowering must already have completed,
// since Run does not itself understand limb-tuples.
func Run(dispenser *namedispenser.Dispenser, block *ast.Block) *ast.Block {
	reserved := polyfill.FunctionNames()
	dispenser.ReserveAll(reserved)
	t := &Transformer{dispenser: dispenser, reserved: reserved}
	t.transformBlock(block, newEnv(nil))
	return block
}

// Transformer holds the shared dispenser and reserved-name set across a
// single displacement pass.
type Transformer struct {
	dispenser *namedispenser.Dispenser
	reserved  map[string]bool
}

func (t *Transformer) transformBlock(block *ast.Block, e *env) {
	child := newEnv(e)
	for _, stmt := range block.Statements {
		t.transformStatement(stmt, child)
	}
}

func (t *Transformer) transformStatement(stmt ast.Statement, e *env) {
	switch n := stmt.(type) {
	case *ast.Block:
		t.transformBlock(n, e)
	case *ast.FunctionDefinition:
		n.Name = e.declare(t.dispenser, t.reserved, n.Name)
		inner := newEnv(e)
		for i, p := range n.Parameters {
			n.Parameters[i].Name = inner.declare(t.dispenser, t.reserved, p.Name)
		}
		for i, r := range n.Returns {
			n.Returns[i].Name = inner.declare(t.dispenser, t.reserved, r.Name)
		}
		t.transformBlockInline(n.Body, inner)
	case *ast.VariableDeclaration:
		if n.Value != nil {
			n.Value = t.transformExpression(n.Value, e)
		}
		for i, v := range n.Variables {
			n.Variables[i].Name = e.declare(t.dispenser, t.reserved, v.Name)
		}
	case *ast.Assignment:
		n.Value = t.transformExpression(n.Value, e)
		for i, name := range n.Names {
			n.Names[i] = e.resolve(name)
		}
	case *ast.ExpressionStatement:
		n.Expression = t.transformExpression(n.Expression, e)
	case *ast.If:
		n.Condition = t.transformExpression(n.Condition, e)
		t.transformBlock(n.Body, e)
	case *ast.Switch:
		n.Expression = t.transformExpression(n.Expression, e)
		for i := range n.Cases {
			t.transformBlock(n.Cases[i].Body, e)
		}
	case *ast.ForLoop:
		child := newEnv(e)
		t.transformBlockInline(n.Pre, child)
		n.Condition = t.transformExpression(n.Condition, child)
		t.transformBlockInline(n.Post, child)
		t.transformBlockInline(n.Body, child)
	case *ast.Break, *ast.Continue, *ast.Leave:
		// no names to displace
	}
}

// transformBlockInline transforms block's statements directly against e
// rather than opening a fresh child scope, for constructs (function
// bodies, for-loop clauses) whose scope was already opened by the caller.
func (t *Transformer) transformBlockInline(block *ast.Block, e *env) {
	for _, stmt := range block.Statements {
		t.transformStatement(stmt, e)
	}
}

func (t *Transformer) transformExpression(expr ast.Expression, e *env) ast.Expression {
	switch n := expr.(type) {
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
		return expr
	}
}
