package registry

import (
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/kernel"
	"github.com/flowframe/engine/types"
)

func signalType(u types.Unit, c types.Contract) types.CanonicalType {
	return types.CanonicalType{Payload: types.PayloadFloat, Unit: u, Contract: c, Cardinality: types.Signal}
}

func registerSignalBlocks(r *Registry) {
	registerKernelSignalBlock(r, "OscSine", kernel.SigOscSine, "frequencyHz")
	registerKernelSignalBlock(r, "OscSaw", kernel.SigOscSaw, "frequencyHz")
	registerKernelSignalBlock(r, "OscSquare", kernel.SigOscSquare, "frequencyHz")
	registerKernelSignalBlock(r, "OscTriangle", kernel.SigOscTriangle, "frequencyHz")
	registerEaseBlock(r, "EaseInQuad", kernel.SigEaseInQuad)
	registerEaseBlock(r, "EaseOutQuad", kernel.SigEaseOutQuad)
	registerEaseBlock(r, "EaseInOutQuad", kernel.SigEaseInOutQuad)
	registerEaseBlock(r, "EaseInCubic", kernel.SigEaseInCubic)
	registerEaseBlock(r, "EaseOutCubic", kernel.SigEaseOutCubic)
	registerEaseBlock(r, "EaseInOutCubic", kernel.SigEaseInOutCubic)
	registerEaseBlock(r, "Smoothstep", kernel.SigShapeSmoothstep)

	r.MustRegister(NewBlock("Hold").
		WithCategory("signal").
		WithDoc("latches the most recent event payload until the next event").
		WithInput("event", types.CanonicalType{Payload: types.PayloadFloat, Cardinality: types.Event}).
		WithOutput("value", signalType(types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			state := b.DeclareState(signalType(types.UnitScalar, types.ContractNone), args["initial"])
			id := b.AddValueExpr(ir.ValueExpr{
				Kind:      ir.VEHold,
				HoldEvent: inputs["event"].Value,
				Initial:   args["initial"],
				StateSlot: state,
			})
			return map[string]LoweredRef{"value": {Value: id}}, nil
		}).
		Build())

	r.MustRegister(NewBlock("CrossingEvent").
		WithCategory("signal").
		WithDoc("fires an event each time a signal crosses a threshold").
		WithInput("signal", signalType(types.UnitScalar, types.ContractNone)).
		WithOutput("event", types.CanonicalType{Payload: types.PayloadFloat, Cardinality: types.Event}).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddValueExpr(ir.ValueExpr{
				Kind:           ir.VECrossingEvent,
				CrossingSignal: inputs["signal"].Value,
				Threshold:      args["threshold"],
				Hysteresis:     args["hysteresis"],
			})
			return map[string]LoweredRef{"event": {Value: id}}, nil
		}).
		Build())
}

func registerKernelSignalBlock(r *Registry, name string, k kernel.SignalKernel, extraInput string) {
	b := NewBlock(name).
		WithCategory("signal").
		WithInput("phase", signalType(types.UnitTurns, types.ContractNone)).
		WithOutput("value", signalType(types.UnitNormalized, types.ContractClamp01))
	if extraInput != "" {
		b = b.WithInput(extraInput, signalType(types.UnitScalar, types.ContractNone))
	}
	r.MustRegister(b.WithLower(func(builder *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
		argIDs := []ir.ValueExprID{inputs["phase"].Value}
		if extraInput != "" {
			argIDs = append(argIDs, inputs[extraInput].Value)
		}
		id := builder.AddValueExpr(ir.ValueExpr{Kind: ir.VEKernel, KernelTag: int(k), Args: argIDs})
		return map[string]LoweredRef{"value": {Value: id}}, nil
	}).Build())
}

func registerEaseBlock(r *Registry, name string, k kernel.SignalKernel) {
	r.MustRegister(NewBlock(name).
		WithCategory("signal").
		WithInput("t", signalType(types.UnitNormalized, types.ContractClamp01)).
		WithOutput("value", signalType(types.UnitNormalized, types.ContractClamp01)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddValueExpr(ir.ValueExpr{Kind: ir.VEKernel, KernelTag: int(k), Args: []ir.ValueExprID{inputs["t"].Value}})
			return map[string]LoweredRef{"value": {Value: id}}, nil
		}).
		Build())
}
