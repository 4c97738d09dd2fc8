package render_test

import (
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/render"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FrameBuilder", func() {
	var fb *render.FrameBuilder

	BeforeEach(func() {
		fb = render.NewFrameBuilder()
	})

	It("projects a centered world-space instance to the screen center", func() {
		cfg := ir.RenderBlockConfig{
			Instance:  ir.InstanceRef{ID: 1, Count: 1},
			ShapeKind: ir.ShapeCircle,
		}

		fb.BeginFrame()
		fb.AddDrawTarget(cfg, []float64{0}, []float64{0.02}, []float64{1}, []float64{1})
		Expect(fb.EndFrame()).To(Succeed())

		frame := fb.Frame()
		Expect(frame.Version).To(Equal(render.FrameVersion))
		Expect(frame.Ops).To(HaveLen(1))

		op := frame.Ops[0]
		Expect(op.Kind).To(Equal(render.DrawPrimitiveInstances))
		Expect(op.Topology).To(Equal("circle"))
		Expect(op.Instances.Count()).To(Equal(1))
		Expect(op.Instances.ScreenPosition[0][0]).To(BeNumerically("~", 0.5, 1e-9))
		Expect(op.Instances.ScreenPosition[0][1]).To(BeNumerically("~", 0.5, 1e-9))
	})

	It("culls instances that project outside the viewport", func() {
		cfg := ir.RenderBlockConfig{
			Instance:  ir.InstanceRef{ID: 1, Count: 2},
			ShapeKind: ir.ShapeCircle,
		}

		fb.BeginFrame()
		fb.AddDrawTarget(cfg, []float64{0, 50}, []float64{0.02, 0.02}, []float64{1, 1}, []float64{1, 1})
		Expect(fb.EndFrame()).To(Succeed())

		frame := fb.Frame()
		Expect(frame.Ops[0].Instances.Count()).To(Equal(1))
	})

	It("emits a DrawPathInstances op for path-shaped render targets", func() {
		cfg := ir.RenderBlockConfig{
			Instance:  ir.InstanceRef{ID: 2, Count: 1},
			ShapeKind: ir.ShapePath,
			PathFld:   7,
		}

		fb.BeginFrame()
		fb.AddDrawTarget(cfg, []float64{0}, []float64{0.01}, []float64{1}, []float64{1})
		Expect(fb.EndFrame()).To(Succeed())

		op := fb.Frame().Ops[0]
		Expect(op.Kind).To(Equal(render.DrawPathInstances))
		Expect(op.Geometry.TopologyID).To(Equal(7))
	})

	It("hands the assembled frame to a Sink", func() {
		ctrl := gomock.NewController(GinkgoT())
		defer ctrl.Finish()

		sink := NewMockSink(ctrl)
		cfg := ir.RenderBlockConfig{Instance: ir.InstanceRef{ID: 1, Count: 1}, ShapeKind: ir.ShapeCircle}

		fb.BeginFrame()
		fb.AddDrawTarget(cfg, []float64{0}, []float64{0.02}, []float64{1}, []float64{1})
		fb.EndFrame()

		sink.EXPECT().Consume(gomock.Any()).DoAndReturn(func(f render.RenderFrameIR) error {
			Expect(f.Ops).To(HaveLen(1))
			return nil
		})

		Expect(sink.Consume(fb.Frame())).To(Succeed())
	})
})
