package compile

import (
	"fmt"

	"github.com/flowframe/engine/diag"
)

// pass4Wiring validates that every declared input port on every block
// instance is satisfied -- either by exactly one incoming edge or by a
// literal parameter value authored inline -- and winnows multiple edges
// into the same input down to the last one written, with a warning
// (spec's combine-mode default when no explicit combine block is used).
func pass4Wiring(s *compileState) {
	writersPerPort := make(map[PortRef][]Edge)
	for _, e := range s.effectiveEdges {
		writersPerPort[e.To] = append(writersPerPort[e.To], e)
	}

	winnowed := make(map[PortRef]Edge, len(writersPerPort))
	for port, edges := range writersPerPort {
		chosen := edges[len(edges)-1]
		winnowed[port] = chosen
		if len(edges) > 1 {
			s.diags.Raise(WarnMultipleWriters, diag.SeverityWarning,
				fmt.Sprintf("%d edges target %+v; keeping the last one authored", len(edges), port),
				diag.Target{Kind: "port", PortName: port.Port, Description: fmt.Sprintf("%+v", port)}, diag.ActionNone())
		}
	}

	var finalEdges []Edge
	for _, e := range winnowed {
		finalEdges = append(finalEdges, e)
	}
	s.effectiveEdges = finalEdges

	for _, b := range s.patch.Blocks {
		def, ok := s.reg.Get(b.Kind)
		if !ok {
			continue // already diagnosed in Pass 0
		}
		for _, port := range def.Inputs {
			ref := PortRef{Block: b.ID, Port: port.Name}
			_, hasEdge := winnowed[ref]
			_, hasLiteral := b.Params[port.Name]
			if !hasEdge && !hasLiteral {
				s.diags.Raise(ErrMissingRequiredPort, diag.SeverityError,
					fmt.Sprintf("block %d (%s) input %q is unconnected and has no literal value", b.ID, b.Kind, port.Name),
					diag.Target{Kind: "port", BlockName: b.Kind, PortName: port.Name}, diag.ActionAbortCompile())
			}
		}
	}
}
