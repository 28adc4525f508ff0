package ast

// CollectNames walks block and returns the set of every identifier name
// that appears anywhere in it: declared variables, function names,
// parameter/return names, and identifier references. pkg/namedispenser
// seeds its "already used" set from this so that Fresh never hands out a
// name already present in the tree.
func CollectNames(block *Block) map[string]bool {
	names := map[string]bool{}
	var walkStmt func(Statement)
	var walkExpr func(Expression)

	walkExpr = func(e Expression) {
		switch n := e.(type) {
		case *Identifier:
			names[n.Name] = true
		case *FunctionCall:
			names[n.Name] = true
			for _, a := range n.Arguments {
				walkExpr(a)
			}
		case *Literal:
			// no names
		}
	}

	walkStmt = func(s Statement) {
		switch n := s.(type) {
		case *Block:
			for _, st := range n.Statements {
				walkStmt(st)
			}
		case *FunctionDefinition:
			names[n.Name] = true
			for _, p := range n.Parameters {
				names[p.Name] = true
			}
			for _, r := range n.Returns {
				names[r.Name] = true
			}
			walkStmt(n.Body)
		case *VariableDeclaration:
			for _, v := range n.Variables {
				names[v.Name] = true
			}
			if n.Value != nil {
				walkExpr(n.Value)
			}
		case *Assignment:
			for _, name := range n.Names {
				names[name] = true
			}
			walkExpr(n.Value)
		case *If:
			walkExpr(n.Condition)
			walkStmt(n.Body)
		case *Switch:
			walkExpr(n.Expression)
			for _, c := range n.Cases {
				walkStmt(c.Body)
			}
		case *ForLoop:
			walkStmt(n.Pre)
			walkExpr(n.Condition)
			walkStmt(n.Post)
			walkStmt(n.Body)
		case *ExpressionStatement:
			walkExpr(n.Expression)
		}
	}

	walkStmt(block)
	return names
}

// TopLevelFunctions returns the FunctionDefinition statements that are
// direct children of block, in order.
func TopLevelFunctions(block *Block) []*FunctionDefinition {
	var out []*FunctionDefinition
	for _, s := range block.Statements {
		if fn, ok := s.(*FunctionDefinition); ok {
			out = append(out, fn)
		}
	}
	return out
}
