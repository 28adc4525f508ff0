// Package analyzer is the scope/arity checker collaborator of spec.md §6:
// given a dialect.Dialect, it walks a block, resolving every identifier
// and call against scope and builtin arity, and produces the
// object.AnalysisInfo side table plus a diagnostic.List.
//
// Every AST-mutating pass invalidates whatever AnalysisInfo it was handed;
// pkg/splice runs this analyzer after appending the polyfill to catch any
// internal inconsistency before it reaches a caller (spec.md §7). No pass
// runs it on the input block: pkg/disambiguator does not analyze its input,
// so a malformed input surfaces only in that final analysis.
package analyzer

import (
	"fmt"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/diagnostic"
	"github.com/yulc/evm2ewasm/pkg/dialect"
	"github.com/yulc/evm2ewasm/pkg/object"
)

// scope is one lexical scope: declared variable and function names visible
// within it.
type scope struct {
	vars      map[string]bool
	functions map[string]int // name -> number of returns
	parent    *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: map[string]bool{}, functions: map[string]int{}, parent: parent}
}

func (s *scope) declareVar(name string) {
	s.vars[name] = true
}

func (s *scope) declareFunction(name string, returns int) {
	s.functions[name] = returns
}

func (s *scope) resolveVar(name string) bool {
	for c := s; c != nil; c = c.parent {
		if c.vars[name] {
			return true
		}
	}
	return false
}

func (s *scope) resolveFunction(name string) (int, bool) {
	for c := s; c != nil; c = c.parent {
		if n, ok := c.functions[name]; ok {
			return n, true
		}
	}
	return 0, false
}

// Analyzer walks a block against a dialect, in the loop/function context
// needed to validate break/continue/leave placement.
type Analyzer struct {
	dialect     dialect.Dialect
	diagnostics diagnostic.List
	loopDepth   int
	inFunction  bool
}

// New creates an Analyzer for d.
func New(d dialect.Dialect) *Analyzer {
	return &Analyzer{dialect: d}
}

// Analyze checks block and returns the resulting AnalysisInfo and any
// diagnostics found. It never mutates block.
func Analyze(d dialect.Dialect, block *ast.Block) (*object.AnalysisInfo, diagnostic.List) {
	a := New(d)
	root := newScope(nil)
	// Top-level function definitions are visible throughout the block,
	// including before their own textual position, matching Yul's rule
	// that function scoping is block-wide rather than sequential.
	a.hoistFunctionSignatures(block, root)
	a.walkBlock(block, root)
	return &object.AnalysisInfo{DialectName: d.Name()}, a.diagnostics
}

func (a *Analyzer) hoistFunctionSignatures(block *ast.Block, s *scope) {
	for _, fn := range ast.TopLevelFunctions(block) {
		s.declareFunction(fn.Name, len(fn.Returns))
	}
}

func (a *Analyzer) errorf(format string, args ...any) {
	a.diagnostics = append(a.diagnostics, diagnostic.Diagnostic{
		Severity: diagnostic.Error,
		Message:  fmt.Sprintf(format, args...),
	})
}

// validType checks t against the dialect, reading an unannotated name or
// literal as the dialect's DefaultType.
func (a *Analyzer) validType(t ast.Type) bool {
	if t == ast.TypeWord {
		t = a.dialect.DefaultType()
	}
	return a.dialect.ValidType(t)
}

func (a *Analyzer) walkBlock(block *ast.Block, parent *scope) {
	s := newScope(parent)
	a.hoistFunctionSignatures(block, s)
	for _, stmt := range block.Statements {
		a.walkStatement(stmt, s)
	}
}

func (a *Analyzer) walkStatement(stmt ast.Statement, s *scope) {
	switch n := stmt.(type) {
	case *ast.Block:
		a.walkBlock(n, s)
	case *ast.FunctionDefinition:
		inner := newScope(s)
		for _, p := range n.Parameters {
			inner.declareVar(p.Name)
		}
		for _, r := range n.Returns {
			inner.declareVar(r.Name)
		}
		wasInFunction, wasLoopDepth := a.inFunction, a.loopDepth
		a.inFunction, a.loopDepth = true, 0
		a.walkBlock(n.Body, inner)
		a.inFunction, a.loopDepth = wasInFunction, wasLoopDepth
	case *ast.VariableDeclaration:
		if n.Value != nil {
			a.walkExpression(n.Value, s, len(n.Variables))
		}
		for _, v := range n.Variables {
			if !a.validType(v.Type) {
				a.errorf("variable %s has invalid type %q for dialect %s", v.Name, v.Type, a.dialect.Name())
			}
			s.declareVar(v.Name)
		}
	case *ast.Assignment:
		a.walkExpression(n.Value, s, len(n.Names))
		for _, name := range n.Names {
			if !s.resolveVar(name) {
				a.errorf("assignment to undeclared variable %s", name)
			}
		}
	case *ast.If:
		a.walkExpression(n.Condition, s, 1)
		a.walkBlock(n.Body, s)
	case *ast.Switch:
		a.walkExpression(n.Expression, s, 1)
		seenDefault := false
		for _, c := range n.Cases {
			if c.Value == nil {
				if seenDefault {
					a.errorf("switch has more than one default case")
				}
				seenDefault = true
			}
			a.walkBlock(c.Body, s)
		}
	case *ast.ForLoop:
		outer := newScope(s)
		a.walkBlock(n.Pre, outer)
		preScope := newScope(outer)
		a.hoistFunctionSignatures(n.Pre, preScope)
		for _, st := range n.Pre.Statements {
			if decl, ok := st.(*ast.VariableDeclaration); ok {
				for _, v := range decl.Variables {
					preScope.declareVar(v.Name)
				}
			}
		}
		a.walkExpression(n.Condition, preScope, 1)
		a.loopDepth++
		a.walkBlock(n.Body, preScope)
		a.walkBlock(n.Post, preScope)
		a.loopDepth--
	case *ast.Break:
		if a.loopDepth == 0 {
			a.errorf("break statement outside a for loop")
		}
	case *ast.Continue:
		if a.loopDepth == 0 {
			a.errorf("continue statement outside a for loop")
		}
	case *ast.Leave:
		if !a.inFunction {
			a.errorf("leave statement outside a function")
		}
	case *ast.ExpressionStatement:
		a.walkExpression(n.Expression, s, -1)
	default:
		a.errorf("analyzer: unhandled statement type %T", stmt)
	}
}

// walkExpression checks expr in scope s. wantResults is the number of
// values the enclosing context expects (-1 means "any", used for
// expression statements evaluated purely for effect).
func (a *Analyzer) walkExpression(expr ast.Expression, s *scope, wantResults int) {
	switch n := expr.(type) {
	case *ast.Literal:
		if !n.IsBool && !a.validType(n.Type) {
			a.errorf("literal has invalid type %q for dialect %s", n.Type, a.dialect.Name())
		}
	case *ast.Identifier:
		if !s.resolveVar(n.Name) {
			a.errorf("reference to undeclared variable %s", n.Name)
		}
	case *ast.FunctionCall:
		for _, arg := range n.Arguments {
			a.walkExpression(arg, s, 1)
		}
		outs := -1
		if b, ok := a.dialect.Builtin(n.Name); ok {
			if len(n.Arguments) != b.Ins {
				a.errorf("builtin %s expects %d arguments, got %d", n.Name, b.Ins, len(n.Arguments))
			}
			outs = b.Outs
		} else if returns, ok := s.resolveFunction(n.Name); ok {
			outs = returns
		} else {
			a.errorf("call to undeclared function %s", n.Name)
		}
		if wantResults >= 0 && outs >= 0 && outs != wantResults {
			a.errorf("function %s returns %d values, %d expected", n.Name, outs, wantResults)
		}
	default:
		a.errorf("analyzer: unhandled expression type %T", expr)
	}
}
