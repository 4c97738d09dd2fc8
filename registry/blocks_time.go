package registry

import (
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/kernel"
	"github.com/flowframe/engine/types"
)

func registerTimeBlocks(r *Registry) {
	r.MustRegister(NewBlock("Time").
		WithCategory("time").
		WithDoc("elapsed seconds since the engine started, as a signal").
		WithOutput("seconds", types.CanonicalType{
			Payload: types.PayloadFloat, Unit: types.UnitSeconds,
			Contract: types.ContractNone, Cardinality: types.Signal,
		}).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddValueExpr(ir.ValueExpr{
				Kind: ir.VEReadSlot,
				Type: types.CanonicalType{Payload: types.PayloadFloat, Unit: types.UnitSeconds, Contract: types.ContractNone, Cardinality: types.Signal},
				Slot: b.TimeSlot(),
			})
			return map[string]LoweredRef{"seconds": {Value: id}}, nil
		}).
		Build())

	r.MustRegister(NewBlock("Phase").
		WithCategory("time").
		WithDoc("elapsed seconds scaled by frequency, wrapped to [0,1) turns").
		WithInput("frequencyHz", types.CanonicalType{Payload: types.PayloadFloat, Unit: types.UnitScalar, Cardinality: types.Signal}).
		WithOutput("phase", types.CanonicalType{Payload: types.PayloadPhase, Unit: types.UnitTurns, Contract: types.ContractWrap01, Cardinality: types.Signal}).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			timeID := b.AddValueExpr(ir.ValueExpr{Kind: ir.VEReadSlot, Slot: b.TimeSlot()})
			freq := inputs["frequencyHz"].Value
			mulID := b.AddValueExpr(ir.ValueExpr{
				Kind: ir.VEOpcode, OpcodeTag: int(kernel.OpMul),
				Args: []ir.ValueExprID{timeID, freq},
			})
			wrapped := b.AddValueExpr(ir.ValueExpr{
				Kind: ir.VEOpcode, OpcodeTag: int(kernel.OpWrap01),
				Args: []ir.ValueExprID{mulID},
				Type: types.CanonicalType{Payload: types.PayloadPhase, Unit: types.UnitTurns, Contract: types.ContractWrap01, Cardinality: types.Signal},
			})
			return map[string]LoweredRef{"phase": {Value: wrapped}}, nil
		}).
		Build())
}
