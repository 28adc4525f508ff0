// Package exprsplitter implements the ExpressionSplitter pass: it rewrites
// every nested FunctionCall argument into a fresh variable declared just
// before the statement that uses it, so no expression contains more than
// one call (spec.md §4.5). This gives pkg/wordsize a single call site per
// statement to expand into its limb-returning form.
package exprsplitter

import (
	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/namedispenser"
)

// Transformer carries the dispenser used to name the hoisted temporaries.
type Transformer struct {
	dispenser *namedispenser.Dispenser
}

// New creates a Transformer using dispenser for fresh temporary names.
func New(dispenser *namedispenser.Dispenser) *Transformer {
	return &Transformer{dispenser: dispenser}
}

// Run splits nested calls throughout block.
func Run(dispenser *namedispenser.Dispenser, block *ast.Block) *ast.Block {
	New(dispenser).transformBlock(block)
	return block
}

func (t *Transformer) transformBlock(block *ast.Block) {
	var out []ast.Statement
	for _, stmt := range block.Statements {
		out = append(out, t.transformStatement(stmt)...)
	}
	block.Statements = out
}

// transformStatement returns the (possibly several) statements that
// replace stmt: any hoisted temporary declarations, followed by stmt
// itself with its nested calls replaced by references to those
// temporaries.
func (t *Transformer) transformStatement(stmt ast.Statement) []ast.Statement {
	switch n := stmt.(type) {
	case *ast.Block:
		t.transformBlock(n)
		return []ast.Statement{n}
	case *ast.FunctionDefinition:
		t.transformBlock(n.Body)
		return []ast.Statement{n}
	case *ast.VariableDeclaration:
		if n.Value == nil {
			return []ast.Statement{n}
		}
		var hoisted []ast.Statement
		n.Value = t.splitTopCallArguments(n.Value, &hoisted)
		return append(hoisted, n)
	case *ast.Assignment:
		var hoisted []ast.Statement
		n.Value = t.splitTopCallArguments(n.Value, &hoisted)
		return append(hoisted, n)
	case *ast.If:
		var hoisted []ast.Statement
		n.Condition = t.splitTopCallArguments(n.Condition, &hoisted)
		t.transformBlock(n.Body)
		return append(hoisted, n)
	case *ast.Switch:
		var hoisted []ast.Statement
		n.Expression = t.splitTopCallArguments(n.Expression, &hoisted)
		// pkg/wordsize lowers a switch through its selector's limbs, so the
		// selector call itself is hoisted too.
		if call, ok := n.Expression.(*ast.FunctionCall); ok {
			temp := t.dispenser.Fresh("expr")
			hoisted = append(hoisted, &ast.VariableDeclaration{
				Variables: []ast.TypedName{{Name: temp}},
				Value:     call,
			})
			n.Expression = &ast.Identifier{Name: temp}
		}
		for i := range n.Cases {
			t.transformBlock(n.Cases[i].Body)
		}
		return append(hoisted, n)
	case *ast.ForLoop:
		t.transformBlock(n.Pre)
		// The condition is a bare `true` by this point in the pipeline
		// (pkg/forloopcond always runs first), so it never needs splitting.
		t.transformBlock(n.Post)
		t.transformBlock(n.Body)
		return []ast.Statement{n}
	case *ast.ExpressionStatement:
		var hoisted []ast.Statement
		n.Expression = t.splitNestedCallArguments(n.Expression, &hoisted)
		return append(hoisted, n)
	default:
		return []ast.Statement{n}
	}
}

// splitTopCallArguments splits nested calls within a single top-level
// expression used as a value (declaration/assignment RHS, if condition,
// switch selector): if the expression itself is a call, every call among
// its arguments is hoisted, leaving only identifiers and literals as
// arguments, while the call itself remains in the statement it feeds; a
// bare non-call expression is returned unchanged.
func (t *Transformer) splitTopCallArguments(expr ast.Expression, hoisted *[]ast.Statement) ast.Expression {
	if _, ok := expr.(*ast.FunctionCall); !ok {
		return expr
	}
	return t.splitNestedCallArguments(expr, hoisted)
}

// splitNestedCallArguments recursively replaces any call nested inside
// expr's own argument tree with a hoisted temporary, so that after this
// runs expr contains at most one call, at its own root.
func (t *Transformer) splitNestedCallArguments(expr ast.Expression, hoisted *[]ast.Statement) ast.Expression {
	call, ok := expr.(*ast.FunctionCall)
	if !ok {
		return expr
	}
	for i, arg := range call.Arguments {
		if nestedCall, ok := arg.(*ast.FunctionCall); ok {
			nestedCall = t.splitNestedCallArguments(nestedCall, hoisted).(*ast.FunctionCall)
			temp := t.dispenser.Fresh("expr")
			*hoisted = append(*hoisted, &ast.VariableDeclaration{
				Variables: []ast.TypedName{{Name: temp}},
				Value:     nestedCall,
			})
			call.Arguments[i] = &ast.Identifier{Name: temp}
		}
	}
	return call
}
