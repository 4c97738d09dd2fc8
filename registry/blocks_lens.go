package registry

import (
	"math"

	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/kernel"
	"github.com/flowframe/engine/types"
)

// registerLensBlocks registers the adapter/lens blocks the compiler's
// adapter-insertion pass (Pass 2) wires in automatically when
// types.CheckTypeConnection reports NeedsAdapter, and records each in the
// AdapterCatalog so that pass can find them by spec.
func registerLensBlocks(r *Registry, adapters *AdapterCatalog) {
	registerUnitConversion(r, adapters, "RadiansToTurns", types.UnitRadians, types.UnitTurns, 1/(2*math.Pi))
	registerUnitConversion(r, adapters, "TurnsToRadians", types.UnitTurns, types.UnitRadians, 2*math.Pi)
	registerUnitConversion(r, adapters, "DegreesToRadians", types.UnitDegrees, types.UnitRadians, math.Pi/180)
	registerUnitConversion(r, adapters, "RadiansToDegrees", types.UnitRadians, types.UnitDegrees, 180/math.Pi)
	registerUnitConversion(r, adapters, "MsToSeconds", types.UnitMs, types.UnitSeconds, 1.0/1000)
	registerUnitConversion(r, adapters, "SecondsToMs", types.UnitSeconds, types.UnitMs, 1000)

	registerContractLens(r, adapters, "Clamp01Lens", types.ContractNone, types.ContractClamp01, kernel.OpClamp, 0, 1)
	registerContractLens(r, adapters, "Wrap01Lens", types.ContractNone, types.ContractWrap01, kernel.OpWrap01, 0, 0)

	r.MustRegister(NewBlock("Stroke").
		WithCategory("lens").
		WithDoc("augments a draw-op's style fields with stroke width/color").
		WithInput("strokeWidth", fieldType(types.PayloadFloat, types.UnitScalar, types.ContractNone)).
		WithInput("strokeColor", fieldType(types.PayloadColor, types.UnitScalar, types.ContractClamp01)).
		WithOutput("strokeWidth", fieldType(types.PayloadFloat, types.UnitScalar, types.ContractNone)).
		WithOutput("strokeColor", fieldType(types.PayloadColor, types.UnitScalar, types.ContractClamp01)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			return map[string]LoweredRef{
				"strokeWidth": inputs["strokeWidth"],
				"strokeColor": inputs["strokeColor"],
			}, nil
		}).
		Build())
}

func registerUnitConversion(r *Registry, adapters *AdapterCatalog, name string, from, to types.Unit, factor float64) {
	r.MustRegister(NewBlock(name).
		WithCategory("lens").
		WithInput("value", signalType(from, types.ContractNone)).
		WithOutput("value", signalType(to, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			factorID := b.AddValueExpr(ir.ValueExpr{Kind: ir.VEConst, ConstValue: []float64{factor}})
			id := b.AddValueExpr(ir.ValueExpr{
				Kind: ir.VEOpcode, OpcodeTag: int(kernel.OpMul),
				Args: []ir.ValueExprID{inputs["value"].Value, factorID},
			})
			return map[string]LoweredRef{"value": {Value: id}}, nil
		}).
		Build())

	adapters.RegisterAdapter(name, types.AdapterSpec{
		Kind: types.AdapterUnitConversion, FromUnit: from, ToUnit: to,
	}, 0)
}

func registerContractLens(r *Registry, adapters *AdapterCatalog, name string, from, to types.Contract, op kernel.Opcode, lo, hi float64) {
	r.MustRegister(NewBlock(name).
		WithCategory("lens").
		WithInput("value", signalType(types.UnitScalar, from)).
		WithOutput("value", signalType(types.UnitScalar, to)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			var exprArgs []ir.ValueExprID
			exprArgs = append(exprArgs, inputs["value"].Value)
			if op == kernel.OpClamp {
				loID := b.AddValueExpr(ir.ValueExpr{Kind: ir.VEConst, ConstValue: []float64{lo}})
				hiID := b.AddValueExpr(ir.ValueExpr{Kind: ir.VEConst, ConstValue: []float64{hi}})
				exprArgs = append(exprArgs, loID, hiID)
			}
			id := b.AddValueExpr(ir.ValueExpr{Kind: ir.VEOpcode, OpcodeTag: int(op), Args: exprArgs})
			return map[string]LoweredRef{"value": {Value: id}}, nil
		}).
		Build())

	adapters.RegisterAdapter(name, types.AdapterSpec{
		Kind: types.AdapterContractLens, FromContract: from, ToContract: to,
	}, 0)
}
