// Package registry is the Block Registry: the catalog of block
// definitions (ports, cardinality mode, broadcast policy) and their
// lowering closures, plus the adapter catalog the compiler consults when
// two connected ports fail to unify directly. Construction follows the
// teacher's core.Builder fluent With* pattern (core/builder.go), applied
// here to block *definitions* rather than simulated core instances.
package registry

import (
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/types"
)

// PortDir distinguishes an input port from an output port.
type PortDir int

const (
	PortIn PortDir = iota
	PortOut
)

// PortDef declares one port of a block: its name, direction, and the
// (possibly polymorphic) canonical type it accepts or produces.
type PortDef struct {
	Name string
	Dir  PortDir
	Type types.CanonicalType
}

// CardinalityMode controls whether a block's lowering is fixed to a
// single cardinality or adapts to whatever its inputs resolve to.
type CardinalityMode int

const (
	CardinalityFixed CardinalityMode = iota
	CardinalityInherit
)

// BroadcastPolicy controls whether a signal input may be implicitly
// broadcast to a field input (spec's zipSig path) when connected to a
// field-cardinality port.
type BroadcastPolicy int

const (
	BroadcastDeny BroadcastPolicy = iota
	BroadcastAllow
)

// LowerFn is the closure a block definition supplies to turn one authored
// block instance into IR. args carries resolved per-parameter literal
// values (from the HCL config block), inputs carries the already-lowered
// producer expression ids for each connected input port, keyed by port
// name. LowerFn returns, for each output port name, either a ValueExprID
// or a FieldExprID depending on that port's resolved cardinality.
type LowerFn func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error)

// LoweredRef is a tagged reference to whichever IR expression table a
// lowered port landed in.
type LoweredRef struct {
	IsField bool
	Value   ir.ValueExprID
	Field   ir.FieldExprID
}

// BlockDef is a registered block kind: its category (for UI/CLI grouping,
// not semantics), its ports, and its lowering closure.
type BlockDef struct {
	Name            string
	Category        string
	Doc             string
	Inputs          []PortDef
	Outputs         []PortDef
	Cardinality     CardinalityMode
	Broadcast       BroadcastPolicy
	Lower           LowerFn
}

// Builder assembles a BlockDef fluently, mirroring the teacher's
// core.Builder With* chain.
type Builder struct {
	def BlockDef
}

// NewBlock starts a BlockDef builder for the given registered name.
func NewBlock(name string) *Builder {
	return &Builder{def: BlockDef{Name: name}}
}

func (b *Builder) WithCategory(c string) *Builder {
	b.def.Category = c
	return b
}

func (b *Builder) WithDoc(doc string) *Builder {
	b.def.Doc = doc
	return b
}

func (b *Builder) WithInput(name string, t types.CanonicalType) *Builder {
	b.def.Inputs = append(b.def.Inputs, PortDef{Name: name, Dir: PortIn, Type: t})
	return b
}

func (b *Builder) WithOutput(name string, t types.CanonicalType) *Builder {
	b.def.Outputs = append(b.def.Outputs, PortDef{Name: name, Dir: PortOut, Type: t})
	return b
}

func (b *Builder) WithCardinality(m CardinalityMode) *Builder {
	b.def.Cardinality = m
	return b
}

func (b *Builder) WithBroadcast(p BroadcastPolicy) *Builder {
	b.def.Broadcast = p
	return b
}

func (b *Builder) WithLower(fn LowerFn) *Builder {
	b.def.Lower = fn
	return b
}

// Build finalizes the BlockDef. Panics if no lowering closure was set,
// since an unlowerable block is a programming error in the registry
// itself, never a condition reachable from authored content.
func (b *Builder) Build() BlockDef {
	if b.def.Lower == nil {
		panic("registry: block " + b.def.Name + " has no Lower closure")
	}
	return b.def
}
