package compile

import (
	"fmt"

	"github.com/flowframe/engine/diag"
	"github.com/flowframe/engine/ir"
)

// pass8Slots is the final verification step: every ValueSlot allocated by
// earlier passes (via ir.Builder.DeclareSlot, e.g. the reserved time
// slot and any Hold/CrossingEvent state backing) must occupy a disjoint
// byte range in the per-frame arena. This is spec's explicit packing
// invariant, checked once per compile rather than per frame.
func pass8Slots(s *compileState) ir.Program {
	program := s.builder.Build()
	if err := ir.VerifyDisjoint(program.Slots); err != nil {
		s.diags.Raise(ErrKernelArity, diag.SeverityError,
			fmt.Sprintf("slot packing invariant violated: %v", err),
			diag.Target{Kind: "patch"}, diag.ActionAbortCompile())
	}
	return program
}
