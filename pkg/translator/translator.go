// Package translator orchestrates the fixed pass pipeline (spec.md §2)
// against an object.Object tree: Disambiguator, FunctionHoister,
// FunctionGrouper, MainFunction, ForLoopConditionIntoBody,
// ExpressionSplitter, WordSizeTransform, NameDisplacer, then Splice,
// applied to the object's own code and recursively to every sub-object.
package translator

import (
	"fmt"

	"github.com/yulc/evm2ewasm/pkg/dialect"
	"github.com/yulc/evm2ewasm/pkg/disambiguator"
	"github.com/yulc/evm2ewasm/pkg/exprsplitter"
	"github.com/yulc/evm2ewasm/pkg/forloopcond"
	"github.com/yulc/evm2ewasm/pkg/functiongrouper"
	"github.com/yulc/evm2ewasm/pkg/functionhoister"
	"github.com/yulc/evm2ewasm/pkg/mainfunction"
	"github.com/yulc/evm2ewasm/pkg/namedisplacer"
	"github.com/yulc/evm2ewasm/pkg/namedispenser"
	"github.com/yulc/evm2ewasm/pkg/object"
	"github.com/yulc/evm2ewasm/pkg/polyfill"
	"github.com/yulc/evm2ewasm/pkg/splice"
	"github.com/yulc/evm2ewasm/pkg/wordsize"
)

// Translator runs the fixed pipeline against a parsed object tree,
// translating from one dialect to another.
type Translator struct {
	From dialect.Dialect
	To   dialect.Dialect
}

// New builds a Translator from the EVM dialect to the Wasm dialect, the
// only direction spec.md's pipeline defines.
func New() *Translator {
	return &Translator{From: dialect.EVM, To: dialect.Wasm}
}

// Run translates obj and every sub-object it contains, returning a new
// object.Object tree. Data sub-nodes are copied verbatim; SubIndexByName
// is preserved so callers can still look sub-objects up by name.
func (t *Translator) Run(obj *object.Object) (*object.Object, error) {
	out := object.New(obj.Name, obj.Code)
	if err := t.runObject(out); err != nil {
		return nil, fmt.Errorf("translator: object %q: %w", obj.Name, err)
	}

	for _, sub := range obj.SubNodes {
		switch {
		case sub.Object != nil:
			translatedSub, err := t.Run(sub.Object)
			if err != nil {
				return nil, err
			}
			out.AddSubObject(translatedSub)
		case sub.Data != nil:
			out.AddData(&object.Data{Name: sub.Data.Name, Bytes: sub.Data.Bytes})
		}
	}
	return out, nil
}

// runObject applies the fixed pipeline to obj.Code in place, then records
// the resulting AnalysisInfo on obj.
func (t *Translator) runObject(obj *object.Object) error {
	block := obj.Code

	disambiguator.Run(block)
	functionhoister.Run(block)
	functiongrouper.Run(block)
	mainfunction.Run(block)
	forloopcond.Run(t.From, block)

	dispenser := namedispenser.New(block)
	dispenser.ReserveAll(polyfill.FunctionNames())
	exprsplitter.Run(dispenser, block)
	wordsize.Run(t.From, t.To, block, dispenser)
	namedisplacer.Run(dispenser, block)

	info, err := splice.Run(t.To, block)
	if err != nil {
		return err
	}
	obj.AnalysisInfo = info
	return nil
}
