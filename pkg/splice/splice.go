// Package splice performs the final step of the translation pipeline
// (spec.md §4.9): appending a private copy of the polyfill library onto
// the already word-size-lowered and name-displaced tree, then
// re-analyzing the combined block against the target dialect to catch
// anything the earlier passes got wrong before it ever reaches an
// assembler.
package splice

import (
	"fmt"

	"github.com/yulc/evm2ewasm/pkg/analyzer"
	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/dialect"
	"github.com/yulc/evm2ewasm/pkg/diagnostic"
	"github.com/yulc/evm2ewasm/pkg/object"
	"github.com/yulc/evm2ewasm/pkg/polyfill"
	"github.com/yulc/evm2ewasm/pkg/printer"
)

// InternalError is raised when the spliced tree fails re-analysis: this
// always indicates a bug in an earlier pass, never a problem with the
// input program, since every earlier pass is supposed to hand splice a
// tree that already type-checks against the target dialect.
type InternalError struct {
	Diagnostics diagnostic.List
	Source      string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("splice: internal error, re-analysis of the spliced tree against the target dialect failed: %v\n--- spliced source ---\n%s", e.Diagnostics, e.Source)
}

// Run appends a fresh copy of the polyfill's function definitions to
// block, then re-analyzes the result against target. On success it
// returns the AnalysisInfo the combined tree should carry going forward.
func Run(target dialect.Dialect, block *ast.Block) (*object.AnalysisInfo, error) {
	lib, err := polyfill.Block()
	if err != nil {
		return nil, fmt.Errorf("splice: %w", err)
	}
	copied := ast.Copy(lib)
	block.Statements = append(block.Statements, copied.Statements...)

	info, diags := analyzer.Analyze(target, block)
	if diags.HasErrors() {
		return nil, &InternalError{Diagnostics: diags, Source: printer.String(block)}
	}
	return info, nil
}
