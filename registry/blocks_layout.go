package registry

import (
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/types"
)

func registerLayoutBlocks(r *Registry) {
	registerLayoutBlock(r, "GridLayout", ir.LayoutGrid, []string{"rows", "cols", "cellWidth", "cellHeight"})
	registerLayoutBlock(r, "CircleLayout", ir.LayoutCircle, []string{"radius"})
	registerLayoutBlock(r, "LineLayout", ir.LayoutLine, []string{"x0", "y0", "x1", "y1"})
}

func registerLayoutBlock(r *Registry, name string, kind ir.LayoutKind, params []string) {
	r.MustRegister(NewBlock(name).
		WithCategory("layout").
		WithInput("count", types.CanonicalType{Payload: types.PayloadInt, Unit: types.UnitCount, Contract: types.ContractNone, Cardinality: types.Signal}).
		WithOutput("position", fieldType(types.PayloadVec3, types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			p := make(map[string]float64, len(params))
			for _, name := range params {
				p[name] = args[name]
			}
			id := b.AddFieldExpr(ir.FieldExpr{
				Kind: ir.FELayout,
				Layout: ir.LayoutSpec{
					Kind:   kind,
					Params: p,
				},
				Type: fieldType(types.PayloadVec3, types.UnitScalar, types.ContractNone),
			})
			return map[string]LoweredRef{"position": {IsField: true, Field: id}}, nil
		}).
		Build())
}
