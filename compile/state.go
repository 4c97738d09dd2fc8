package compile

import (
	"github.com/flowframe/engine/diag"
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/registry"
	"github.com/flowframe/engine/types"
)

// compileState is threaded through all nine passes. Each pass reads
// fields earlier passes populated and appends to (or fills in) its own.
// No pass recomputes an earlier pass's decision from scratch.
type compileState struct {
	patch    Patch
	reg      *registry.Registry
	adapters *registry.AdapterCatalog
	diags    *diag.Hub

	// Pass 0: payload/cardinality resolved per port.
	portTypes map[PortRef]types.CanonicalType

	// Pass 1: unit union-find over port refs that must share a unit.
	unitUF *UnionFind[PortRef]

	// Pass 2/3: edges augmented with any inserted adapter block, and the
	// fully resolved type per port once units/contracts are finalized.
	effectiveEdges []Edge
	insertedLenses []BlockInstance
	resolvedTypes  map[PortRef]types.CanonicalType

	// Pass 5: topology.
	timeRootFound bool
	instanceOf    map[BlockInstanceID]types.InstanceID

	// Pass 6: lowering results per block's output ports.
	lowered map[PortRef]registry.LoweredRef

	// Pass 7/8: final IR.
	builder *ir.Builder

	nextInsertedID BlockInstanceID
}

func newCompileState(p Patch, reg *registry.Registry, adapters *registry.AdapterCatalog, hub *diag.Hub) *compileState {
	maxID := BlockInstanceID(0)
	for _, b := range p.Blocks {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	return &compileState{
		patch:          p,
		reg:            reg,
		adapters:       adapters,
		diags:          hub,
		portTypes:      make(map[PortRef]types.CanonicalType),
		resolvedTypes:  make(map[PortRef]types.CanonicalType),
		instanceOf:     make(map[BlockInstanceID]types.InstanceID),
		lowered:        make(map[PortRef]registry.LoweredRef),
		builder:        ir.NewBuilder(),
		nextInsertedID: maxID + 1,
	}
}

// allocInsertedID hands out a fresh BlockInstanceID for a compiler-
// inserted adapter/lens block, disjoint from every authored id.
func (s *compileState) allocInsertedID() BlockInstanceID {
	id := s.nextInsertedID
	s.nextInsertedID++
	return id
}

// CompiledProgram is compile()'s result: the final IR program plus every
// diagnostic raised along the way. A program with zero error-severity
// diagnostics is runnable; diagnostics of lesser severity are advisory.
type CompiledProgram struct {
	Program     ir.Program
	Diagnostics []diag.Diagnostic
	OK          bool
}
