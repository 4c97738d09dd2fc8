package registry

import (
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/kernel"
	"github.com/flowframe/engine/types"
)

func fieldType(p types.Payload, u types.Unit, c types.Contract) types.CanonicalType {
	return types.CanonicalType{Payload: p, Unit: u, Contract: c, Cardinality: types.Field}
}

func registerFieldBlocks(r *Registry) {
	r.MustRegister(NewBlock("Index").
		WithCategory("field").
		WithDoc("per-instance integer index, 0-based").
		WithOutput("value", fieldType(types.PayloadInt, types.UnitCount, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddFieldExpr(ir.FieldExpr{
				Kind:      ir.FEIntrinsic,
				Intrinsic: ir.IntrinsicIndex,
				Type:      fieldType(types.PayloadInt, types.UnitCount, types.ContractNone),
			})
			return map[string]LoweredRef{"value": {IsField: true, Field: id}}, nil
		}).
		Build())

	r.MustRegister(NewBlock("NormalizedIndex").
		WithCategory("field").
		WithDoc("per-instance index divided by (count-1), in [0,1]").
		WithOutput("value", fieldType(types.PayloadFloat, types.UnitNormalized, types.ContractClamp01)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddFieldExpr(ir.FieldExpr{
				Kind:      ir.FEIntrinsic,
				Intrinsic: ir.IntrinsicNormalizedIndex,
				Type:      fieldType(types.PayloadFloat, types.UnitNormalized, types.ContractClamp01),
			})
			return map[string]LoweredRef{"value": {IsField: true, Field: id}}, nil
		}).
		Build())

	r.MustRegister(NewBlock("Broadcast").
		WithCategory("field").
		WithDoc("replicates a signal value across every lane of a field").
		WithInput("signal", signalType(types.UnitScalar, types.ContractNone)).
		WithOutput("value", fieldType(types.PayloadFloat, types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddFieldExpr(ir.FieldExpr{
				Kind:            ir.FEBroadcast,
				BroadcastSignal: inputs["signal"].Value,
			})
			return map[string]LoweredRef{"value": {IsField: true, Field: id}}, nil
		}).
		Build())

	r.MustRegister(NewBlock("FieldMap").
		WithCategory("field").
		WithDoc("applies a unary opcode lane-wise over a field").
		WithInput("field", fieldType(types.PayloadFloat, types.UnitScalar, types.ContractNone)).
		WithOutput("value", fieldType(types.PayloadFloat, types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddFieldExpr(ir.FieldExpr{
				Kind:     ir.FEMap,
				MapInput: inputs["field"].Field,
				MapFn:    ir.PureFn{Kind: ir.PureFnOpcode, OpcodeTag: int(kernel.OpAbs)},
			})
			return map[string]LoweredRef{"value": {IsField: true, Field: id}}, nil
		}).
		Build())

	registerMakeVecBlock(r, "MakeVec2", types.PayloadVec2, kernel.FKVec2, []string{"x", "y"})
	registerMakeVecBlock(r, "MakeVec3", types.PayloadVec3, kernel.FKVec3, []string{"x", "y", "z"})

	r.MustRegister(NewBlock("Reduce").
		WithCategory("field").
		WithDoc("reduces a field to a scalar signal (sum, avg, min, max, count)").
		WithInput("field", fieldType(types.PayloadFloat, types.UnitScalar, types.ContractNone)).
		WithOutput("value", signalType(types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			id := b.AddValueExpr(ir.ValueExpr{
				Kind:        ir.VEReduce,
				ReduceField: inputs["field"].Field,
				Reduce:      ir.ReduceOp(int(args["op"])),
			})
			return map[string]LoweredRef{"value": {Value: id}}, nil
		}).
		Build())
}

// registerMakeVecBlock packs `len(components)` scalar fields into one
// interleaved multi-component field via FEZip over the matching
// kernel.FKVec2/FKVec3 field kernel, the block-level surface for
// kernel.EvalVecConstruct.
func registerMakeVecBlock(r *Registry, name string, payload types.Payload, fk kernel.FieldKernel, components []string) {
	def := NewBlock(name).
		WithCategory("field").
		WithDoc("packs scalar fields into one interleaved vector field")
	for _, c := range components {
		def = def.WithInput(c, fieldType(types.PayloadFloat, types.UnitScalar, types.ContractNone))
	}
	def = def.WithOutput("value", fieldType(payload, types.UnitScalar, types.ContractNone))

	r.MustRegister(def.WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
		zipInputs := make([]ir.FieldExprID, len(components))
		for i, c := range components {
			zipInputs[i] = inputs[c].Field
		}
		id := b.AddFieldExpr(ir.FieldExpr{
			Kind:      ir.FEZip,
			ZipInputs: zipInputs,
			ZipFn:     ir.PureFn{Kind: ir.PureFnFieldKernel, FieldKernel: int(fk)},
			Type:      fieldType(payload, types.UnitScalar, types.ContractNone),
		})
		return map[string]LoweredRef{"value": {IsField: true, Field: id}}, nil
	}).Build())
}
