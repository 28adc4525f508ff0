// Package namedispenser hands out fresh identifier names guaranteed not to
// collide with any name already present in a translation unit, or with any
// name reserved by a later pass (spec.md §4.1). Passes downstream
// (disambiguator, wordsize, namedisplacer) each hold one Dispenser for the
// lifetime of a single Object's translation.
package namedispenser

import (
	"fmt"

	"github.com/yulc/evm2ewasm/pkg/ast"
)

// Dispenser tracks every name already in use, plus a monotonic counter used
// to manufacture fresh ones from a hint.
type Dispenser struct {
	used    map[string]bool
	counter map[string]int
}

// New builds a Dispenser seeded with every name already present in block.
func New(block *ast.Block) *Dispenser {
	return &Dispenser{
		used:    ast.CollectNames(block),
		counter: map[string]int{},
	}
}

// Reserve marks name as used without it having to appear in the tree; the
// polyfill's function names are reserved this way (see pkg/polyfill) so
// that user code translated before splicing never collides with them.
func (d *Dispenser) Reserve(name string) {
	d.used[name] = true
}

// ReserveAll reserves every name in names.
func (d *Dispenser) ReserveAll(names map[string]bool) {
	for name := range names {
		d.used[name] = true
	}
}

// Fresh returns a name based on hint that is not already used, marking it
// used before returning. The first attempt is the hint itself suffixed
// with "_1"; Yul-style dispensers never return the bare hint because a
// pass calling Fresh always wants a *new* name distinct from an existing
// variable of the same base name.
func (d *Dispenser) Fresh(hint string) string {
	for {
		d.counter[hint]++
		candidate := fmt.Sprintf("%s_%d", hint, d.counter[hint])
		if !d.used[candidate] {
			d.used[candidate] = true
			return candidate
		}
	}
}

// IsUsed reports whether name is already taken (declared, referenced, or
// reserved).
func (d *Dispenser) IsUsed(name string) bool {
	return d.used[name]
}
