package compile

import (
	"fmt"

	"github.com/flowframe/engine/diag"
	"github.com/flowframe/engine/types"
)

// pass3TypeGraph unifies every connected port pair's full canonical type
// (now that Pass 1/2 resolved units and spliced in adapters) and records
// the final per-port type. Any unification failure here indicates a
// defect in an earlier pass's bookkeeping rather than a new authored
// mistake, since Pass 0-2 should have already caught every port-level
// incompatibility; it is still checked defensively.
func pass3TypeGraph(s *compileState) {
	s.resolvedTypes = make(map[PortRef]types.CanonicalType, len(s.portTypes))
	for ref, t := range s.portTypes {
		s.resolvedTypes[ref] = t
	}

	for _, e := range s.effectiveEdges {
		from := s.resolvedTypes[e.From]
		to := s.resolvedTypes[e.To]
		unified, err := types.Unify(from, to)
		if err != nil {
			s.diags.Raise(ErrPayloadMismatch, diag.SeverityError,
				fmt.Sprintf("type graph unification failed on edge %+v: %v", e, err),
				diag.Target{Kind: "edge", Description: fmt.Sprintf("%+v", e)}, diag.ActionSkipEdge())
			continue
		}
		s.resolvedTypes[e.From] = unified
		s.resolvedTypes[e.To] = unified
	}
}
