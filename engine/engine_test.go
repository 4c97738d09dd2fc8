package engine_test

import (
	"github.com/flowframe/engine/compile"
	"github.com/flowframe/engine/engine"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Engine", func() {
	var eng *engine.Engine

	BeforeEach(func() {
		var err error
		eng, err = engine.New(engine.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(eng.Close()).To(Succeed())
	})

	It("refuses to advance before any program has been compiled", func() {
		_, err := eng.Advance(16)
		Expect(err).To(HaveOccurred())
	})

	It("compiles a literal-only patch and advances frames against it", func() {
		patch := compile.Patch{
			Blocks: []compile.BlockInstance{
				{ID: 1, Kind: "Add", Params: map[string]float64{"a": 1, "b": 2}},
			{ID: 2, Kind: "Time"},
			},
		}

		result := eng.Recompile(patch)
		Expect(result.OK).To(BeTrue())

		frame, err := eng.Advance(16)
		Expect(err).NotTo(HaveOccurred())
		Expect(frame.Version).To(Equal(2))
	})

	It("reuses the compile cache on an identical recompile", func() {
		patch := compile.Patch{
			Blocks: []compile.BlockInstance{
				{ID: 1, Kind: "Add", Params: map[string]float64{"a": 3, "b": 4}},
			{ID: 2, Kind: "Time"},
			},
		}

		first := eng.Recompile(patch)
		Expect(first.OK).To(BeTrue())

		second := eng.Recompile(patch)
		Expect(second.OK).To(BeTrue())
		Expect(len(second.Program.ValueExprs)).To(Equal(len(first.Program.ValueExprs)))
	})

	It("exposes the block registry for an external editor/loader", func() {
		def, ok := eng.Registry().Get("Add")
		Expect(ok).To(BeTrue())
		Expect(def.Name).To(Equal("Add"))
	})
})
