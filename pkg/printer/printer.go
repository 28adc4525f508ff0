// Package printer renders the shared AST back to Yul-shaped source text,
// for CLI debug dumps and for the diagnostic text carried by
// splice.InternalError.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/yulc/evm2ewasm/pkg/ast"
)

// Printer writes an indented textual rendering of the AST.
type Printer struct {
	w      io.Writer
	indent int
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintBlock prints a top-level block without the outer braces so a
// translated object's Code prints as a bare statement sequence.
func (p *Printer) PrintBlock(block *ast.Block) {
	for _, stmt := range block.Statements {
		p.printStatement(stmt)
	}
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("    ", p.indent))
}

func (p *Printer) printBraced(block *ast.Block) {
	fmt.Fprintln(p.w, "{")
	p.indent++
	p.PrintBlock(block)
	p.indent--
	p.writeIndent()
	fmt.Fprintln(p.w, "}")
}

func (p *Printer) printStatement(stmt ast.Statement) {
	p.writeIndent()
	switch n := stmt.(type) {
	case *ast.Block:
		p.printBraced(n)

	case *ast.FunctionDefinition:
		fmt.Fprintf(p.w, "function %s(", n.Name)
		p.printTypedNames(n.Parameters)
		fmt.Fprint(p.w, ")")
		if len(n.Returns) > 0 {
			fmt.Fprint(p.w, " -> ")
			p.printTypedNames(n.Returns)
		}
		fmt.Fprint(p.w, " ")
		p.printBraced(n.Body)

	case *ast.VariableDeclaration:
		fmt.Fprint(p.w, "let ")
		p.printTypedNames(n.Variables)
		if n.Value != nil {
			fmt.Fprint(p.w, " := ")
			p.printExpression(n.Value)
		}
		fmt.Fprintln(p.w)

	case *ast.Assignment:
		fmt.Fprint(p.w, strings.Join(n.Names, ", "))
		fmt.Fprint(p.w, " := ")
		p.printExpression(n.Value)
		fmt.Fprintln(p.w)

	case *ast.If:
		fmt.Fprint(p.w, "if ")
		p.printExpression(n.Condition)
		fmt.Fprint(p.w, " ")
		p.printBraced(n.Body)

	case *ast.Switch:
		fmt.Fprint(p.w, "switch ")
		p.printExpression(n.Expression)
		fmt.Fprintln(p.w)
		p.indent++
		for _, c := range n.Cases {
			p.writeIndent()
			if c.Value == nil {
				fmt.Fprint(p.w, "default ")
			} else {
				fmt.Fprint(p.w, "case ")
				p.printExpression(c.Value)
				fmt.Fprint(p.w, " ")
			}
			p.printBraced(c.Body)
		}
		p.indent--

	case *ast.ForLoop:
		fmt.Fprint(p.w, "for ")
		p.printBraced(n.Pre)
		p.writeIndent()
		p.printExpression(n.Condition)
		fmt.Fprintln(p.w)
		p.writeIndent()
		p.printBraced(n.Post)
		p.writeIndent()
		p.printBraced(n.Body)

	case *ast.Break:
		fmt.Fprintln(p.w, "break")

	case *ast.Continue:
		fmt.Fprintln(p.w, "continue")

	case *ast.Leave:
		fmt.Fprintln(p.w, "leave")

	case *ast.ExpressionStatement:
		p.printExpression(n.Expression)
		fmt.Fprintln(p.w)

	default:
		fmt.Fprintf(p.w, "/* unknown statement %T */\n", stmt)
	}
}

func (p *Printer) printTypedNames(names []ast.TypedName) {
	for i, n := range names {
		if i > 0 {
			fmt.Fprint(p.w, ", ")
		}
		fmt.Fprint(p.w, n.Name)
		if n.Type != ast.TypeWord {
			fmt.Fprintf(p.w, ":%s", n.Type)
		}
	}
}

func (p *Printer) printExpression(expr ast.Expression) {
	switch n := expr.(type) {
	case *ast.Literal:
		if n.IsBool {
			if n.Bool {
				fmt.Fprint(p.w, "true")
			} else {
				fmt.Fprint(p.w, "false")
			}
			return
		}
		fmt.Fprint(p.w, n.Value.String())
		if n.Type != ast.TypeWord {
			fmt.Fprintf(p.w, ":%s", n.Type)
		}

	case *ast.Identifier:
		fmt.Fprint(p.w, n.Name)

	case *ast.FunctionCall:
		fmt.Fprintf(p.w, "%s(", n.Name)
		for i, arg := range n.Arguments {
			if i > 0 {
				fmt.Fprint(p.w, ", ")
			}
			p.printExpression(arg)
		}
		fmt.Fprint(p.w, ")")

	default:
		fmt.Fprintf(p.w, "/* unknown expr %T */", expr)
	}
}

// String renders block, enclosing braces included, to a string, for callers
// that don't want to manage an io.Writer directly (e.g.
// splice.InternalError's Error() method).
func String(block *ast.Block) string {
	var b strings.Builder
	New(&b).printBraced(block)
	return b.String()
}
