package compile

import (
	"fmt"

	"github.com/flowframe/engine/diag"
)

// pass0Payload resolves each port's declared canonical type from its
// block definition and validates that every authored edge references a
// block kind and port that actually exist. Mirrors Pass 0's role: the
// first point at which a malformed patch is caught, before any
// unification work begins.
func pass0Payload(s *compileState) {
	for _, b := range s.patch.Blocks {
		def, ok := s.reg.Get(b.Kind)
		if !ok {
			s.diags.Raise(ErrUnknownBlockKind, diag.SeverityError,
				fmt.Sprintf("block instance %d references unknown kind %q", b.ID, b.Kind),
				diag.Target{Kind: "block", BlockName: b.Kind}, diag.ActionAbortCompile())
			continue
		}
		for _, port := range def.Inputs {
			s.portTypes[PortRef{Block: b.ID, Port: port.Name}] = port.Type
		}
		for _, port := range def.Outputs {
			s.portTypes[PortRef{Block: b.ID, Port: port.Name}] = port.Type
		}
	}

	for _, e := range s.patch.Edges {
		if _, ok := s.portTypes[e.From]; !ok {
			s.diags.Raise(ErrMissingRequiredPort, diag.SeverityError,
				fmt.Sprintf("edge references unknown output port %+v", e.From),
				diag.Target{Kind: "edge", Description: fmt.Sprintf("%+v", e)}, diag.ActionSkipEdge())
			continue
		}
		if _, ok := s.portTypes[e.To]; !ok {
			s.diags.Raise(ErrMissingRequiredPort, diag.SeverityError,
				fmt.Sprintf("edge references unknown input port %+v", e.To),
				diag.Target{Kind: "edge", Description: fmt.Sprintf("%+v", e)}, diag.ActionSkipEdge())
			continue
		}
	}
}
