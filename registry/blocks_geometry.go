package registry

import (
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/kernel"
	"github.com/flowframe/engine/types"
)

// registerGeometryBlocks registers the "geometry" category: local-space
// control-point construction, distinct from "layout" blocks which place
// instances in world space. PolygonVertex reuses the FELayout field-expr
// shape layout blocks already use (a layout kernel indexed by lane and
// instance count), since a regular polygon's vertices are just another
// per-lane parametric placement.
func registerGeometryBlocks(r *Registry) {
	r.MustRegister(NewBlock("PolygonVertex").
		WithCategory("geometry").
		WithDoc("local-space control point of a regular polygon, centered at the origin").
		WithInput("count", types.CanonicalType{Payload: types.PayloadInt, Unit: types.UnitCount, Contract: types.ContractNone, Cardinality: types.Signal}).
		WithOutput("point", fieldType(types.PayloadVec2, types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddFieldExpr(ir.FieldExpr{
				Kind: ir.FELayout,
				Layout: ir.LayoutSpec{
					Kind: ir.LayoutPolygon,
					Params: map[string]float64{
						"rx": args["rx"],
						"ry": args["ry"],
					},
				},
				Type: fieldType(types.PayloadVec2, types.UnitScalar, types.ContractNone),
			})
			return map[string]LoweredRef{"point": {IsField: true, Field: id}}, nil
		}).
		Build())

	r.MustRegister(NewBlock("PolarToCartesian").
		WithCategory("geometry").
		WithDoc("converts a (radius, angle) field pair to a vec2 (x, y) field").
		WithInput("radius", fieldType(types.PayloadFloat, types.UnitScalar, types.ContractNone)).
		WithInput("angle", fieldType(types.PayloadFloat, types.UnitRadians, types.ContractNone)).
		WithOutput("value", fieldType(types.PayloadVec2, types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddFieldExpr(ir.FieldExpr{
				Kind:      ir.FEZip,
				ZipInputs: []ir.FieldExprID{inputs["radius"].Field, inputs["angle"].Field},
				ZipFn:     ir.PureFn{Kind: ir.PureFnFieldKernel, FieldKernel: int(kernel.FKPolarToCartesian)},
				Type:      fieldType(types.PayloadVec2, types.UnitScalar, types.ContractNone),
			})
			return map[string]LoweredRef{"value": {IsField: true, Field: id}}, nil
		}).
		Build())

	r.MustRegister(NewBlock("PathArcLength").
		WithCategory("geometry").
		WithDoc("total arc length of a vec2 control-point field's path, measured to its final vertex").
		WithInput("points", fieldType(types.PayloadVec2, types.UnitScalar, types.ContractNone)).
		WithOutput("value", signalType(types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddValueExpr(ir.ValueExpr{
				Kind:          ir.VEPathDerivative,
				ControlPoints: inputs["points"].Field,
				DerivKind:     ir.DerivArcLength,
			})
			return map[string]LoweredRef{"value": {Value: id}}, nil
		}).
		Build())

	r.MustRegister(NewBlock("CartesianToPolar").
		WithCategory("geometry").
		WithDoc("converts a vec2 (x, y) field to a (radius, angle) field").
		WithInput("value", fieldType(types.PayloadVec2, types.UnitScalar, types.ContractNone)).
		WithOutput("value", fieldType(types.PayloadVec2, types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddFieldExpr(ir.FieldExpr{
				Kind:     ir.FEMap,
				MapInput: inputs["value"].Field,
				MapFn:    ir.PureFn{Kind: ir.PureFnFieldKernel, FieldKernel: int(kernel.FKCartesianToPolar)},
				Type:     fieldType(types.PayloadVec2, types.UnitScalar, types.ContractNone),
			})
			return map[string]LoweredRef{"value": {IsField: true, Field: id}}, nil
		}).
		Build())
}
