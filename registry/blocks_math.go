package registry

import (
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/kernel"
	"github.com/flowframe/engine/types"
)

func registerMathBlocks(r *Registry) {
	registerBinaryOpcode(r, "Add", kernel.OpAdd)
	registerBinaryOpcode(r, "Subtract", kernel.OpSub)
	registerBinaryOpcode(r, "Multiply", kernel.OpMul)
	registerBinaryOpcode(r, "Divide", kernel.OpDiv)
	registerBinaryOpcode(r, "Modulo", kernel.OpMod)
	registerBinaryOpcode(r, "Power", kernel.OpPow)
	registerBinaryOpcode(r, "Min", kernel.OpMin)
	registerBinaryOpcode(r, "Max", kernel.OpMax)
	registerUnaryOpcode(r, "Negate", kernel.OpNeg)
	registerUnaryOpcode(r, "Abs", kernel.OpAbs)
	registerUnaryOpcode(r, "Sin", kernel.OpSin)
	registerUnaryOpcode(r, "Cos", kernel.OpCos)
	registerUnaryOpcode(r, "Floor", kernel.OpFloor)
	registerUnaryOpcode(r, "Ceil", kernel.OpCeil)
	registerUnaryOpcode(r, "Sqrt", kernel.OpSqrt)

	r.MustRegister(NewBlock("Clamp").
		WithCategory("math").
		WithInput("value", signalType(types.UnitScalar, types.ContractNone)).
		WithOutput("value", signalType(types.UnitScalar, types.ContractClamp01)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			lo := b.AddValueExpr(ir.ValueExpr{Kind: ir.VEConst, ConstValue: []float64{args["min"]}})
			hi := b.AddValueExpr(ir.ValueExpr{Kind: ir.VEConst, ConstValue: []float64{args["max"]}})
			id := b.AddValueExpr(ir.ValueExpr{
				Kind: ir.VEOpcode, OpcodeTag: int(kernel.OpClamp),
				Args: []ir.ValueExprID{inputs["value"].Value, lo, hi},
			})
			return map[string]LoweredRef{"value": {Value: id}}, nil
		}).
		Build())

	r.MustRegister(NewBlock("Lerp").
		WithCategory("math").
		WithInput("a", signalType(types.UnitScalar, types.ContractNone)).
		WithInput("b", signalType(types.UnitScalar, types.ContractNone)).
		WithInput("t", signalType(types.UnitNormalized, types.ContractClamp01)).
		WithOutput("value", signalType(types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddValueExpr(ir.ValueExpr{
				Kind: ir.VEOpcode, OpcodeTag: int(kernel.OpLerp),
				Args: []ir.ValueExprID{inputs["a"].Value, inputs["b"].Value, inputs["t"].Value},
			})
			return map[string]LoweredRef{"value": {Value: id}}, nil
		}).
		Build())
}

func registerBinaryOpcode(r *Registry, name string, op kernel.Opcode) {
	r.MustRegister(NewBlock(name).
		WithCategory("math").
		WithInput("a", signalType(types.UnitScalar, types.ContractNone)).
		WithInput("b", signalType(types.UnitScalar, types.ContractNone)).
		WithOutput("value", signalType(types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddValueExpr(ir.ValueExpr{
				Kind: ir.VEOpcode, OpcodeTag: int(op),
				Args: []ir.ValueExprID{inputs["a"].Value, inputs["b"].Value},
			})
			return map[string]LoweredRef{"value": {Value: id}}, nil
		}).
		Build())
}

func registerUnaryOpcode(r *Registry, name string, op kernel.Opcode) {
	r.MustRegister(NewBlock(name).
		WithCategory("math").
		WithInput("value", signalType(types.UnitScalar, types.ContractNone)).
		WithOutput("value", signalType(types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddValueExpr(ir.ValueExpr{
				Kind: ir.VEOpcode, OpcodeTag: int(op),
				Args: []ir.ValueExprID{inputs["value"].Value},
			})
			return map[string]LoweredRef{"value": {Value: id}}, nil
		}).
		Build())
}
