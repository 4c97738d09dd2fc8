package compile

import (
	"github.com/flowframe/engine/diag"
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/types"
)

// pass5Topology builds the reachability graph implied by effectiveEdges,
// confirms at least one time-root block (Time/Phase) reaches at least
// one render sink, and creates an InstanceDecl for every block instance
// the patch declares an explicit element Count for.
func pass5Topology(s *compileState) {
	adjacency := make(map[BlockInstanceID][]BlockInstanceID)
	for _, e := range s.effectiveEdges {
		adjacency[e.From.Block] = append(adjacency[e.From.Block], e.To.Block)
	}

	var roots []BlockInstanceID
	var sinks = make(map[BlockInstanceID]bool)
	for _, b := range s.patch.Blocks {
		switch b.Kind {
		case "Time", "Phase":
			roots = append(roots, b.ID)
		case "DrawCircle", "DrawRect", "DrawPath":
			sinks[b.ID] = true
		}
	}

	reached := false
	for _, root := range roots {
		visited := map[BlockInstanceID]bool{}
		var stack = []BlockInstanceID{root}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[cur] {
				continue
			}
			visited[cur] = true
			if sinks[cur] {
				reached = true
			}
			stack = append(stack, adjacency[cur]...)
		}
	}

	switch {
	case len(roots) == 0:
		s.timeRootFound = false
		s.diags.Raise(ErrTimeRootMissing, diag.SeverityError,
			"patch has no Time/Phase block; nothing drives the simulation forward",
			diag.Target{Kind: "patch"}, diag.ActionCreateTimeRoot("Infinite"))

	case len(sinks) > 0 && !reached:
		s.timeRootFound = false
		s.diags.Raise(ErrTimeRootMissing, diag.SeverityError,
			"no Time/Phase block reaches a render sink; the patch would draw a static frame forever",
			diag.Target{Kind: "patch"}, diag.ActionAbortCompile())

	default:
		s.timeRootFound = true
	}

	for _, b := range s.patch.Blocks {
		if b.Count <= 0 {
			continue
		}
		domainType := types.CanonicalType{Payload: types.PayloadFloat, Cardinality: types.Field}
		id := s.builder.CreateInstance(domainType, b.Count, false, ir.LayoutSpec{}, ir.IdentityStable)
		s.instanceOf[b.ID] = id
	}
}
