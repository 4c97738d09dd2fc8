package hcl

import (
	"github.com/flowframe/engine/compile"
	"github.com/flowframe/engine/types"
)

// ToPatch converts a parsed Document's top-level patch into a
// compile.Patch: block display names become dense BlockInstanceIDs in
// declaration order, attribute values become the block's literal Params
// (numeric and boolean attrs only -- string/null attrs configure the
// front end, e.g. a render block's style name, and are not scalar
// compiler config), and `outputs` entries become Edges resolved by
// display name. Composite definitions are not expanded: doc.Composites is
// ignored, and a block whose Type names a composite is passed through as
// an ordinary block of that kind. ToPatch only handles the flat
// block/edge case.
func ToPatch(doc Document) compile.Patch {
	idByName := make(map[string]compile.BlockInstanceID, len(doc.Blocks))
	for i, b := range doc.Blocks {
		idByName[b.DisplayName] = compile.BlockInstanceID(i + 1)
	}

	var patch compile.Patch
	for i, b := range doc.Blocks {
		id := compile.BlockInstanceID(i + 1)
		inst := compile.BlockInstance{
			ID:     id,
			Kind:   types.CanonicalizeIdentifier(b.Type),
			Params: attrsToParams(b.Attrs),
		}
		if c, ok := b.Attrs["count"]; ok && c.Kind == ValNumber {
			inst.Count = int(c.Number)
		}
		patch.Blocks = append(patch.Blocks, inst)

		for _, o := range b.Outputs {
			// An unknown destination name maps to block 0, which no block
			// has, so the dangling edge is kept and the compiler's edge
			// validation reports it.
			dstID := idByName[o.DstBlock]
			patch.Edges = append(patch.Edges, compile.Edge{
				From: compile.PortRef{Block: id, Port: o.SrcPort},
				To:   compile.PortRef{Block: dstID, Port: o.DstPort},
			})
		}
	}
	return patch
}

func attrsToParams(attrs map[string]Value) map[string]float64 {
	params := make(map[string]float64, len(attrs))
	for k, v := range attrs {
		switch v.Kind {
		case ValNumber:
			params[k] = v.Number
		case ValBool:
			if v.Bool {
				params[k] = 1
			} else {
				params[k] = 0
			}
		}
	}
	return params
}
