// Package object models a single compilation unit: a code block plus its
// analysis side-table and any nested sub-objects, mirroring spec.md §3's
// "Object" definition and the recursive walk of §4.10.
package object

import "github.com/yulc/evm2ewasm/pkg/ast"

// AnalysisInfo is the side table produced by the analyzer collaborator
// (pkg/analyzer) for a given code Block. The pipeline treats it opaquely:
// it is invalidated by every AST-mutating pass and rebuilt by pkg/splice
// once the pipeline has run; nothing builds one for the input block.
type AnalysisInfo struct {
	// DialectName records which dialect the info was computed against, so a
	// stale AnalysisInfo built for the wrong dialect is easy to spot.
	DialectName string
}

// SubNode is either a nested Object or an opaque Data blob. Exactly one of
// the two fields is non-nil.
type SubNode struct {
	Object *Object
	Data   *Data
}

// Data is an opaque named byte blob carried through unchanged, e.g. an
// embedded bytecode constant referenced by an `dataoffset`/`datasize`
// builtin. The translator never inspects its contents.
type Data struct {
	Name  string
	Bytes []byte
}

// Object is one compilation unit: its top-level code, the current analysis
// info for that code, and its ordered sub-nodes plus a name index into
// them (mirroring how nested Yul objects address each other by name).
type Object struct {
	Name string

	Code         *ast.Block
	AnalysisInfo *AnalysisInfo

	SubNodes       []SubNode
	SubIndexByName map[string]int
}

// New builds an empty Object with an initialized sub-index.
func New(name string, code *ast.Block) *Object {
	return &Object{
		Name:           name,
		Code:           code,
		SubIndexByName: map[string]int{},
	}
}

// AddSubObject appends a nested Object and indexes it by name.
func (o *Object) AddSubObject(sub *Object) {
	o.SubIndexByName[sub.Name] = len(o.SubNodes)
	o.SubNodes = append(o.SubNodes, SubNode{Object: sub})
}

// AddData appends an opaque data blob and indexes it by name.
func (o *Object) AddData(d *Data) {
	o.SubIndexByName[d.Name] = len(o.SubNodes)
	o.SubNodes = append(o.SubNodes, SubNode{Data: d})
}

// SubObject looks up a nested Object by name.
func (o *Object) SubObject(name string) (*Object, bool) {
	i, ok := o.SubIndexByName[name]
	if !ok || o.SubNodes[i].Object == nil {
		return nil, false
	}
	return o.SubNodes[i].Object, true
}
