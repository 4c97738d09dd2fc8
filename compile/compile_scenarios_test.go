package compile_test

import (
	"github.com/flowframe/engine/compile"
	"github.com/flowframe/engine/diag"
	"github.com/flowframe/engine/registry"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newTestRegistry() (*registry.Registry, *registry.AdapterCatalog) {
	r := registry.New()
	adapters := registry.NewAdapterCatalog()
	registry.RegisterBuiltins(r, adapters)
	return r, adapters
}

var _ = Describe("Compile", func() {
	var reg *registry.Registry
	var adapters *registry.AdapterCatalog

	BeforeEach(func() {
		reg, adapters = newTestRegistry()
	})

	It("compiles a minimal literal-only signal graph cleanly", func() {
		patch := compile.Patch{
			Blocks: []compile.BlockInstance{
				{ID: 1, Kind: "Add", Params: map[string]float64{"a": 1, "b": 2}},
			{ID: 2, Kind: "Time"},
			},
		}

		result := compile.Compile(patch, reg, adapters)

		Expect(result.OK).To(BeTrue())
		Expect(result.Program.ValueExprs).NotTo(BeEmpty())
	})

	It("reports E_TIME_ROOT_MISSING when no time source reaches a render sink", func() {
		patch := compile.Patch{
			Blocks: []compile.BlockInstance{
				{ID: 1, Kind: "DrawCircle", Params: map[string]float64{
					"position": 0, "color": 0, "opacity": 1, "radius": 5,
				}},
			},
		}

		result := compile.Compile(patch, reg, adapters)

		Expect(result.OK).To(BeFalse())
		var codes []string
		for _, d := range result.Diagnostics {
			codes = append(codes, string(d.Code))
		}
		Expect(codes).To(ContainElement(string(compile.ErrTimeRootMissing)))
	})

	It("reports E_TIME_ROOT_MISSING for a completely empty patch", func() {
		patch := compile.Patch{}

		result := compile.Compile(patch, reg, adapters)

		Expect(result.OK).To(BeFalse())
		var codes []string
		for _, d := range result.Diagnostics {
			codes = append(codes, string(d.Code))
		}
		Expect(codes).To(ContainElement(string(compile.ErrTimeRootMissing)))
	})

	It("auto-inserts a registered unit-conversion adapter on a mismatched edge", func() {
		patch := compile.Patch{
			Blocks: []compile.BlockInstance{
				{ID: 1, Kind: "DegreesToRadians", Params: map[string]float64{"value": 180}},
				{ID: 2, Kind: "OscSine", Params: map[string]float64{"frequencyHz": 1}},
			{ID: 3, Kind: "Time"},
			},
			Edges: []compile.Edge{
				{From: compile.PortRef{Block: 1, Port: "value"}, To: compile.PortRef{Block: 2, Port: "phase"}},
			},
		}

		result := compile.Compile(patch, reg, adapters)

		Expect(result.OK).To(BeTrue())
		var inserted *diag.Diagnostic
		for i, d := range result.Diagnostics {
			if d.Code == compile.InfoAdapterInserted {
				inserted = &result.Diagnostics[i]
			}
		}
		Expect(inserted).NotTo(BeNil())
		Expect(inserted.Action.Kind).To(Equal(diag.ActionKindAddAdapter))
	})

	It("rejects a payload mismatch as a hard error, never an adapter", func() {
		patch := compile.Patch{
			Blocks: []compile.BlockInstance{
				{ID: 1, Kind: "Index"},
				{ID: 2, Kind: "HSVToRGB", Params: map[string]float64{}},
			},
			Edges: []compile.Edge{
				{From: compile.PortRef{Block: 1, Port: "value"}, To: compile.PortRef{Block: 2, Port: "hsv"}},
			},
		}

		result := compile.Compile(patch, reg, adapters)

		Expect(result.OK).To(BeFalse())
		var codes []string
		for _, d := range result.Diagnostics {
			codes = append(codes, string(d.Code))
		}
		Expect(codes).To(ContainElement(string(compile.ErrPayloadMismatch)))
	})
})
