// Package compile implements the nine-pass compiler: Patch (authored
// blocks and edges) in, CompiledProgram (ir.Program plus diagnostics)
// out. Pass structure is grounded on the teacher's config/config.go
// DeviceBuilder.Build, which runs createTiles -> connectTiles ->
// createSharedMemory as discrete ordered steps writing into a shared
// *device; here nine discrete steps write into a shared *compileState.
package compile

import "github.com/flowframe/engine/types"

// BlockInstanceID identifies one authored block instance within a Patch.
type BlockInstanceID int

// PortRef names one port of one block instance.
type PortRef struct {
	Block BlockInstanceID
	Port  string
}

// Edge connects one output port to one input port.
type Edge struct {
	From PortRef
	To   PortRef
}

// BlockInstance is one authored node: which registered block kind it is,
// and its literal parameter values (from HCL config attributes).
type BlockInstance struct {
	ID     BlockInstanceID
	Kind   string
	Params map[string]float64
	Count  int // for instance-creating blocks; 0 means "not an instance source"
}

// Patch is the raw authored graph, as produced by the HCL front end (or
// constructed directly by a test/programmatic caller).
type Patch struct {
	Blocks []BlockInstance
	Edges  []Edge
}

// BlockByID returns the block instance with the given id, or false.
func (p *Patch) BlockByID(id BlockInstanceID) (BlockInstance, bool) {
	for _, b := range p.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return BlockInstance{}, false
}

// EdgesInto returns every edge whose destination is the given port.
func (p *Patch) EdgesInto(ref PortRef) []Edge {
	var out []Edge
	for _, e := range p.Edges {
		if e.To == ref {
			out = append(out, e)
		}
	}
	return out
}

// NormalizedPatch is the Patch after Pass 0 resolves every port's
// canonical type as far as payload/cardinality goes (units and contracts
// are still finalized in later passes).
type NormalizedPatch struct {
	Patch       Patch
	PortTypes   map[PortRef]types.CanonicalType
}
