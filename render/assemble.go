package render

import (
	"sort"

	"github.com/flowframe/engine/ir"
)

// FrameBuilder assembles one RenderFrameIR per frame: projection, depth
// sort/cull, owned-copy, draw-op assembly (spec steps 1-4). It satisfies
// the executor's RenderSink interface structurally; package exec never
// imports package render, so there is no import cycle between the
// evaluator and its consumer.
type FrameBuilder struct {
	camera Camera
	ops    []DrawOp
	frame  RenderFrameIR
}

// NewFrameBuilder returns a FrameBuilder using the default orthographic
// camera.
func NewFrameBuilder() *FrameBuilder {
	return &FrameBuilder{camera: DefaultCamera()}
}

// WithCamera overrides the projection camera.
func (f *FrameBuilder) WithCamera(c Camera) *FrameBuilder {
	f.camera = c
	return f
}

// BeginFrame resets accumulated draw ops ahead of a new frame's sweep.
func (f *FrameBuilder) BeginFrame() {
	f.ops = nil
}

// AddDrawTarget projects, culls, and assembles one render block's
// materialized fields into a DrawOp, appended to the in-progress frame.
func (f *FrameBuilder) AddDrawTarget(cfg ir.RenderBlockConfig, positions, radii, colors, opacities []float64) {
	count := cfg.Instance.Count
	if count == 0 {
		count = inferCount(positions, radii, opacities)
	}

	type survivor struct {
		pos   [2]float64
		rad   float64
		color [3]float64
		alpha float64
		depth float64
	}

	survivors := make([]survivor, 0, count)
	for i := 0; i < count; i++ {
		x, y := laneVec2(positions, i, count)
		radius := laneScalar(radii, i, 0.01)
		sx, sy, sr := f.camera.Project(x, y, radius)
		if !InViewport(sx, sy, sr) {
			continue
		}
		survivors = append(survivors, survivor{
			pos:   [2]float64{sx, sy},
			rad:   sr,
			color: laneVec3(colors, i, count),
			alpha: laneScalar(opacities, i, 1),
			depth: float64(i),
		})
	}

	// Depth sort back-to-front; instances without an explicit depth use
	// authoring order, which is already back-to-front-stable since depth
	// above is assigned by original index.
	sort.SliceStable(survivors, func(a, b int) bool {
		return survivors[a].depth < survivors[b].depth
	})

	transforms := InstanceTransforms{
		ScreenPosition: make([][2]float64, len(survivors)),
		ScreenRadius:   make([]float64, len(survivors)),
		Colors:         make([][3]float64, len(survivors)),
		Opacity:        make([]float64, len(survivors)),
		Depth:          make([]float64, len(survivors)),
	}
	for i, s := range survivors {
		transforms.ScreenPosition[i] = s.pos
		transforms.ScreenRadius[i] = s.rad
		transforms.Colors[i] = s.color
		transforms.Opacity[i] = s.alpha
		transforms.Depth[i] = s.depth
	}

	op := DrawOp{Instances: transforms}
	switch cfg.ShapeKind {
	case ir.ShapePath:
		op.Kind = DrawPathInstances
		op.Geometry = PathGeometry{TopologyID: int(cfg.PathFld)}
	case ir.ShapeRect:
		op.Kind = DrawPrimitiveInstances
		op.Topology = "rect"
	default:
		op.Kind = DrawPrimitiveInstances
		op.Topology = "circle"
	}

	f.ops = append(f.ops, op)
}

// EndFrame finalizes the accumulated ops into the frame's owned snapshot.
// Ops are already built from freshly allocated slices (the owned-copy
// checkpoint happens at survivor-collection time above), so EndFrame
// only has to seal the version and op list.
func (f *FrameBuilder) EndFrame() error {
	f.frame = RenderFrameIR{Version: FrameVersion, Ops: append([]DrawOp(nil), f.ops...)}
	return nil
}

// Frame returns the most recently sealed frame.
func (f *FrameBuilder) Frame() RenderFrameIR {
	return f.frame
}

// inferCount picks an instance count when the block has no explicit
// Instance.Count. radii and opacities are always scalar (stride 1), so
// either is an exact count whenever present; position is tried last
// since it may be interleaved at stride 2 or 3 and its raw length alone
// can't be told apart from a plain scalar field.
func inferCount(positions, radii, opacities []float64) int {
	if len(radii) > 0 {
		return len(radii)
	}
	if len(opacities) > 0 {
		return len(opacities)
	}
	if len(positions) == 0 {
		return 0
	}
	if len(positions)%3 == 0 {
		return len(positions) / 3
	}
	if len(positions)%2 == 0 {
		return len(positions) / 2
	}
	return len(positions)
}

func laneScalar(values []float64, i int, fallback float64) float64 {
	if i >= 0 && i < len(values) {
		return values[i]
	}
	return fallback
}

// laneVec2 reads a screen-plane (x, y) pair for lane i. A vec3
// world-space position field (len == 3*count, out of a layout block)
// drops z; a vec2 field (len == 2*count, e.g. out of MakeVec2) is read
// directly; a plain scalar-per-lane field (a single-axis oscillator
// feeding MakeVec2(x, const 0) before that packing happens) falls back
// to y=0.
func laneVec2(values []float64, i, count int) (x, y float64) {
	if count > 0 && len(values) == 3*count {
		return values[3*i], values[3*i+1]
	}
	if count > 0 && len(values) == 2*count {
		return values[2*i], values[2*i+1]
	}
	return laneScalar(values, i, 0), 0
}

// laneVec3 reads an (r, g, b) triple for lane i. A color field (len ==
// 4*count, RGBA out of HSVToRGB) drops alpha, which DrawOp already
// carries separately via opacity; a bare (r, g, b) triple (len ==
// 3*count) is read directly; a single scalar-per-lane field is treated
// as a grayscale value replicated across channels. count (the already
// resolved instance count) disambiguates the two interleaved cases
// instead of guessing from divisibility alone.
func laneVec3(values []float64, i, count int) [3]float64 {
	if count > 0 && len(values) == 4*count {
		return [3]float64{values[4*i], values[4*i+1], values[4*i+2]}
	}
	if count > 0 && len(values) == 3*count {
		return [3]float64{values[3*i], values[3*i+1], values[3*i+2]}
	}
	g := laneScalar(values, i, 1)
	return [3]float64{g, g, g}
}
