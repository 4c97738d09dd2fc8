package registry

import (
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/types"
)

func registerRenderBlocks(r *Registry) {
	registerShapeBlock(r, "DrawCircle", ir.ShapeCircle)
	registerShapeBlock(r, "DrawRect", ir.ShapeRect)
	registerShapeBlock(r, "DrawPath", ir.ShapePath)
}

func registerShapeBlock(r *Registry, name string, shape ir.ShapeKind) {
	category := "render"
	if shape == ir.ShapePath {
		category = "path"
	}
	def := NewBlock(name).
		WithCategory(category).
		// Payload left default (polymorphic): a position field may arrive as
		// vec2 (e.g. MakeVec2 fed by a single-axis oscillator) or vec3
		// (world-space positions out of a layout block); laneVec2 in
		// package render accepts either interleaved stride at draw time.
		WithInput("position", fieldType(types.PayloadDefault, types.UnitScalar, types.ContractNone)).
		WithInput("color", fieldType(types.PayloadColor, types.UnitScalar, types.ContractClamp01)).
		WithInput("opacity", fieldType(types.PayloadFloat, types.UnitNormalized, types.ContractClamp01))

	if shape == ir.ShapePath {
		def = def.WithInput("path", fieldType(types.PayloadPathRef, types.UnitScalar, types.ContractNone)).
			WithInput("strokeWidth", fieldType(types.PayloadFloat, types.UnitScalar, types.ContractNone)).
			WithInput("strokeColor", fieldType(types.PayloadColor, types.UnitScalar, types.ContractClamp01))
	} else {
		def = def.WithInput("radius", fieldType(types.PayloadFloat, types.UnitScalar, types.ContractNone))
	}

	r.MustRegister(def.WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
		cfg := ir.RenderBlockConfig{
			ShapeKind:   shape,
			PositionFld: inputs["position"].Field,
			ColorFld:    inputs["color"].Field,
			OpacityFld:  inputs["opacity"].Field,
		}
		if shape == ir.ShapePath {
			cfg.PathFld = inputs["path"].Field
			cfg.StrokeWidth = inputs["strokeWidth"].Field
			cfg.StrokeColor = inputs["strokeColor"].Field
		} else {
			cfg.RadiusFld = inputs["radius"].Field
		}
		b.AddRenderTarget(cfg)
		return nil, nil
	}).Build())
}
