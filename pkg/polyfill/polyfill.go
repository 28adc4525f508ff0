package polyfill

import (
	"fmt"
	"sync"

	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/parser"
)

var (
	once      sync.Once
	parsed    *ast.Block
	parseErr  error
	names     map[string]bool
	namesOnce sync.Once
)

// Block returns the parsed polyfill AST, parsing Source exactly once and
// caching the result. Callers that splice it into a translated unit must
// take their own ast.Copy, since the cached tree is shared.
func Block() (*ast.Block, error) {
	once.Do(func() {
		block, diags := parser.ParseBlock(Source)
		if diags.HasErrors() {
			parseErr = fmt.Errorf("polyfill source failed to parse: %v", diags)
			return
		}
		parsed = block
	})
	return parsed, parseErr
}

// FunctionNames returns every top-level function name the polyfill
// defines, for pkg/namedisplacer to treat as reserved: a user declaration
// that collides with one of these would otherwise silently shadow (or be
// shadowed by) the spliced-in polyfill once both share the same block.
func FunctionNames() map[string]bool {
	namesOnce.Do(func() {
		names = map[string]bool{}
		block, err := Block()
		if err != nil {
			return
		}
		for _, stmt := range block.Statements {
			if fn, ok := stmt.(*ast.FunctionDefinition); ok {
				names[fn.Name] = true
			}
		}
	})
	return names
}
