package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yulc/evm2ewasm/pkg/ast"
	"github.com/yulc/evm2ewasm/pkg/dialect"
	"github.com/yulc/evm2ewasm/pkg/disambiguator"
	"github.com/yulc/evm2ewasm/pkg/exprsplitter"
	"github.com/yulc/evm2ewasm/pkg/forloopcond"
	"github.com/yulc/evm2ewasm/pkg/functiongrouper"
	"github.com/yulc/evm2ewasm/pkg/functionhoister"
	"github.com/yulc/evm2ewasm/pkg/mainfunction"
	"github.com/yulc/evm2ewasm/pkg/namedispenser"
	"github.com/yulc/evm2ewasm/pkg/object"
	"github.com/yulc/evm2ewasm/pkg/parser"
	"github.com/yulc/evm2ewasm/pkg/printer"
	"github.com/yulc/evm2ewasm/pkg/translator"
)

var version = "0.1.0"

// Debug flags for dumping intermediate stages, one per pass in pipeline
// order (spec.md §2).
var (
	dAST       bool
	dDisamb    bool
	dHoisted   bool
	dGrouped   bool
	dMain      bool
	dForloop   bool
	dExprsplit bool
	dWordsize  bool
	dFinal     bool
)

// debugFlagNames lists every single-dash-style debug flag, mirroring the
// CompCert-style `-dparse`/`-drtl` convention.
var debugFlagNames = []string{"dast", "ddisamb", "dhoisted", "dgrouped", "dmain", "dforloop", "dexprsplit", "dwordsize", "dfinal"}

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// normalizeFlags converts CompCert-style single-dash flags like -dast to
// --dast, for compatibility with the debug flag naming this CLI borrows.
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		result[i] = arg
		for _, name := range debugFlagNames {
			if arg == "-"+name {
				result[i] = "--" + name
				break
			}
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "evm2ewasm [file]",
		Short: "evm2ewasm translates EVM-dialect Yul into Wasm-dialect Yul",
		Long: `evm2ewasm translates EVM-dialect Yul source into Wasm-dialect Yul,
lowering every 256-bit value into four 64-bit limbs and replacing
opcode-shaped builtins with calls into a bundled 256-bit arithmetic
library, so the result can be compiled with an ordinary Wasm toolchain.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return translateFile(args[0], out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVar(&dAST, "dast", false, "dump the parsed AST before any pass runs")
	rootCmd.Flags().BoolVar(&dDisamb, "ddisamb", false, "dump after the Disambiguator pass")
	rootCmd.Flags().BoolVar(&dHoisted, "dhoisted", false, "dump after the FunctionHoister pass")
	rootCmd.Flags().BoolVar(&dGrouped, "dgrouped", false, "dump after the FunctionGrouper pass")
	rootCmd.Flags().BoolVar(&dMain, "dmain", false, "dump after the MainFunction pass")
	rootCmd.Flags().BoolVar(&dForloop, "dforloop", false, "dump after the ForLoopConditionIntoBody pass")
	rootCmd.Flags().BoolVar(&dExprsplit, "dexprsplit", false, "dump after the ExpressionSplitter pass")
	rootCmd.Flags().BoolVar(&dWordsize, "dwordsize", false, "dump the translator's spliced output (WordSizeTransform, NameDisplacer and Splice together; same dump as --dfinal)")
	rootCmd.Flags().BoolVar(&dFinal, "dfinal", false, "dump the final spliced Wasm-dialect output")

	return rootCmd
}

func anyDebugFlagSet() bool {
	return dAST || dDisamb || dHoisted || dGrouped || dMain || dForloop || dExprsplit || dWordsize
}

// translateFile drives the fixed pipeline directly, statement by statement,
// when a debug flag asks to see an intermediate stage; otherwise it just
// runs pkg/translator end to end. The two paths intentionally duplicate the
// pipeline order rather than have pkg/translator expose per-stage hooks, so
// debugging never risks perturbing the production path.
func translateFile(filename string, out, errOut io.Writer) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "evm2ewasm: error reading %s: %v\n", filename, err)
		return err
	}

	block, diags := parser.ParseBlock(string(content))
	if diags.HasErrors() {
		for _, d := range diags {
			fmt.Fprintf(errOut, "%s: %s\n", filename, d.String())
		}
		return fmt.Errorf("parsing failed with %d errors", len(diags))
	}
	dumpIf(dAST, "AST", block, out)

	if !anyDebugFlagSet() && !dFinal {
		return runProduction(filename, block, out, errOut)
	}

	disambiguator.Run(block)
	dumpIf(dDisamb, "Disambiguator", block, out)

	functionhoister.Run(block)
	dumpIf(dHoisted, "FunctionHoister", block, out)

	functiongrouper.Run(block)
	dumpIf(dGrouped, "FunctionGrouper", block, out)

	mainfunction.Run(block)
	dumpIf(dMain, "MainFunction", block, out)

	forloopcond.Run(dialect.EVM, block)
	dumpIf(dForloop, "ForLoopConditionIntoBody", block, out)

	dispenser := namedispenser.New(block)
	exprsplitter.Run(dispenser, block)
	dumpIf(dExprsplit, "ExpressionSplitter", block, out)

	// WordSizeTransform, NameDisplacer and Splice are not run one by one:
	// pkg/translator's object-oriented entry point runs the whole pipeline
	// again, from Disambiguator on, over the block as it stands, since
	// object.Object is the level pkg/splice's re-analysis operates at. There
	// is no separate dump between WordSizeTransform and Splice.
	name := objectName(filename)
	obj := object.New(name, block)
	result, err := translator.New().Run(obj)
	if err != nil {
		fmt.Fprintf(errOut, "evm2ewasm: %v\n", err)
		return err
	}
	dumpIf(dWordsize || dFinal, "WordSizeTransform+Splice", result.Code, out)

	return nil
}

func runProduction(filename string, block *ast.Block, out, errOut io.Writer) error {
	obj := object.New(objectName(filename), block)
	result, err := translator.New().Run(obj)
	if err != nil {
		fmt.Fprintf(errOut, "evm2ewasm: %v\n", err)
		return err
	}
	printer.New(out).PrintBlock(result.Code)
	return nil
}

func objectName(filename string) string {
	name := filename
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[:idx]
	}
	return name
}

func dumpIf(enabled bool, label string, block *ast.Block, out io.Writer) {
	if !enabled {
		return
	}
	fmt.Fprintf(out, "--- %s ---\n", label)
	printer.New(out).PrintBlock(block)
}
