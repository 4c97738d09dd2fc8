package registry

import (
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/kernel"
	"github.com/flowframe/engine/types"
)

func registerColorBlocks(r *Registry) {
	r.MustRegister(NewBlock("HSVToRGB").
		WithCategory("color").
		WithInput("hsv", fieldType(types.PayloadVec3, types.UnitScalar, types.ContractNone)).
		WithOutput("rgb", fieldType(types.PayloadColor, types.UnitScalar, types.ContractClamp01)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddFieldExpr(ir.FieldExpr{
				Kind:     ir.FEMap,
				MapInput: inputs["hsv"].Field,
				MapFn:    ir.PureFn{Kind: ir.PureFnFieldKernel, FieldKernel: int(kernel.FKHSVToRGB)},
				Type:     fieldType(types.PayloadColor, types.UnitScalar, types.ContractClamp01),
			})
			return map[string]LoweredRef{"rgb": {IsField: true, Field: id}}, nil
		}).
		Build())

	r.MustRegister(NewBlock("RGBToHSV").
		WithCategory("color").
		WithInput("rgb", fieldType(types.PayloadColor, types.UnitScalar, types.ContractClamp01)).
		WithOutput("hsv", fieldType(types.PayloadVec3, types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddFieldExpr(ir.FieldExpr{
				Kind:     ir.FEMap,
				MapInput: inputs["rgb"].Field,
				MapFn:    ir.PureFn{Kind: ir.PureFnFieldKernel, FieldKernel: int(kernel.FKRGBToHSV)},
				Type:     fieldType(types.PayloadVec3, types.UnitScalar, types.ContractNone),
			})
			return map[string]LoweredRef{"hsv": {IsField: true, Field: id}}, nil
		}).
		Build())

	r.MustRegister(NewBlock("Jitter").
		WithCategory("color").
		WithDoc("deterministically perturbs a field by a per-lane hashed offset").
		WithInput("value", fieldType(types.PayloadFloat, types.UnitScalar, types.ContractNone)).
		WithOutput("value", fieldType(types.PayloadFloat, types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddFieldExpr(ir.FieldExpr{
				Kind:     ir.FEMap,
				MapInput: inputs["value"].Field,
				MapFn:    ir.PureFn{Kind: ir.PureFnFieldKernel, FieldKernel: int(kernel.FKJitter)},
				Type:     fieldType(types.PayloadFloat, types.UnitScalar, types.ContractNone),
			})
			return map[string]LoweredRef{"value": {IsField: true, Field: id}}, nil
		}).
		Build())
}
