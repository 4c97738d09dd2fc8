package compile

import "github.com/flowframe/engine/ir"

// pass7Schedule emits the ordered per-frame ScheduleStep list. Because
// Pass 6 lowered blocks in topological order, the ValueExpr and FieldExpr
// tables are already in a dependency-respecting order; this pass's job
// is simply to wrap each entry in the StepKind the executor dispatches
// on, followed by one StepProjection per declared instance and then one
// StepRender per render target.
func pass7Schedule(s *compileState) {
	for _, ve := range s.builder.ValueExprs() {
		s.builder.Emit(ir.ScheduleStep{Kind: ir.StepEvalSig, ValueExpr: ve.ID})
	}

	for _, fe := range s.builder.FieldExprs() {
		s.builder.Emit(ir.ScheduleStep{Kind: ir.StepMaterialize, FieldExpr: fe.ID})
	}

	for _, inst := range s.builder.Instances() {
		s.builder.Emit(ir.ScheduleStep{
			Kind:               ir.StepProjection,
			ProjectionInstance: ir.InstanceRef{ID: int(inst.ID), Count: inst.Count},
		})
	}

	for _, cfg := range s.builder.RenderTargets() {
		s.builder.Emit(ir.ScheduleStep{Kind: ir.StepRender, Render: cfg})
	}
}
