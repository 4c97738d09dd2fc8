package compile

import (
	"fmt"

	"github.com/flowframe/engine/diag"
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/registry"
)

// pass6Lowering topologically orders the (possibly adapter-augmented)
// block graph and calls each block's Lower closure in dependency order,
// threading resolved output references into downstream blocks' inputs.
// Literal-only inputs (a port bound to an authored constant, not an
// edge) are materialized as a VEConst so every Lower closure always sees
// a LoweredRef per declared input port.
func pass6Lowering(s *compileState) {
	order, ok := topoSortBlocks(s)
	if !ok {
		s.diags.Raise(ErrMissingRequiredPort, diag.SeverityError,
			"block graph contains a cycle outside of declared state/hold feedback",
			diag.Target{Kind: "patch"}, diag.ActionAbortCompile())
		return
	}

	incomingByPort := make(map[PortRef]Edge, len(s.effectiveEdges))
	for _, e := range s.effectiveEdges {
		incomingByPort[e.To] = e
	}

	for _, blockID := range order {
		b, ok := s.patch.BlockByID(blockID)
		if !ok {
			continue
		}
		def, ok := s.reg.Get(b.Kind)
		if !ok {
			continue
		}

		inputs := make(map[string]registry.LoweredRef, len(def.Inputs))
		for _, port := range def.Inputs {
			ref := PortRef{Block: b.ID, Port: port.Name}
			if edge, hasEdge := incomingByPort[ref]; hasEdge {
				producer, ok := s.lowered[edge.From]
				if !ok {
					s.diags.Raise(ErrMissingRequiredPort, diag.SeverityError,
						fmt.Sprintf("producer for %+v was not lowered before consumer %+v", edge.From, ref),
						diag.Target{Kind: "edge", Description: fmt.Sprintf("%+v", edge)}, diag.ActionAbortCompile())
					continue
				}
				inputs[port.Name] = producer
				continue
			}
			if literal, hasLiteral := b.Params[port.Name]; hasLiteral {
				id := s.builder.AddValueExpr(ir.ValueExpr{Kind: ir.VEConst, ConstValue: []float64{literal}, Type: port.Type})
				inputs[port.Name] = registry.LoweredRef{Value: id}
			}
		}

		targetsBefore := s.builder.RenderTargetCount()
		outputs, err := def.Lower(s.builder, b.Params, inputs)
		if err != nil {
			s.diags.Raise(ErrMissingRequiredPort, diag.SeverityError,
				fmt.Sprintf("lowering block %d (%s) failed: %v", b.ID, b.Kind, err),
				diag.Target{Kind: "block", BlockName: b.Kind}, diag.ActionAbortCompile())
			continue
		}
		s.builder.NameRenderTargetsFrom(targetsBefore, fmt.Sprintf("%s#%d", b.Kind, b.ID))
		for name, ref := range outputs {
			s.lowered[PortRef{Block: b.ID, Port: name}] = ref
		}
	}
}

// topoSortBlocks runs Kahn's algorithm over the effective edge set,
// returning false if a cycle remains (any genuine cycle, since feedback
// loops are expressed via the Hold/CrossingEvent state primitives, not
// via direct cyclic wiring).
func topoSortBlocks(s *compileState) ([]BlockInstanceID, bool) {
	indegree := make(map[BlockInstanceID]int)
	adjacency := make(map[BlockInstanceID][]BlockInstanceID)
	for _, b := range s.patch.Blocks {
		indegree[b.ID] = 0
	}
	for _, e := range s.effectiveEdges {
		adjacency[e.From.Block] = append(adjacency[e.From.Block], e.To.Block)
		indegree[e.To.Block]++
	}

	var queue []BlockInstanceID
	for _, b := range s.patch.Blocks {
		if indegree[b.ID] == 0 {
			queue = append(queue, b.ID)
		}
	}

	var order []BlockInstanceID
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		for _, next := range adjacency[cur] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	return order, len(order) == len(s.patch.Blocks)
}
