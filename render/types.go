// Package render implements the Render Assembler: projection, depth
// sort/cull, owned-copy, and draw-op assembly into a versioned
// RenderFrameIR. Grounded on config/config.go's DeviceBuilder multi-stage
// build (connect tiles -> create shared memory -> return device),
// generalized from "assemble a simulated device" to "assemble one
// frame's drawable output."
package render

// FrameVersion is the current RenderFrameIR schema version.
const FrameVersion = 2

// RenderFrameIR is the versioned, renderer-facing output of one frame.
// A content-stable Version lets an external renderer detect a schema
// change instead of guessing from field presence.
type RenderFrameIR struct {
	Version int
	Ops     []DrawOp
}

// DrawOpKind tags which variant of DrawOp is populated.
type DrawOpKind int

const (
	DrawPrimitiveInstances DrawOpKind = iota
	DrawPathInstances
)

func (k DrawOpKind) String() string {
	if k == DrawPathInstances {
		return "drawPathInstances"
	}
	return "drawPrimitiveInstances"
}

// PathGeometry holds local-space control points plus a topology id,
// shared by every instance drawn with DrawPathInstances.
type PathGeometry struct {
	ControlPoints [][2]float64
	TopologyID    int
}

// InstanceTransforms is the owned, post-cull per-instance buffer handed
// to a renderer: everything it needs to place and tint each surviving
// instance, with no further lifetime dependency on pooled storage.
type InstanceTransforms struct {
	ScreenPosition [][2]float64
	ScreenRadius   []float64
	Rotation       []float64
	Scale2         [][2]float64
	Colors         [][3]float64
	Opacity        []float64
	Depth          []float64
}

// Count returns the number of surviving instances in this transform set.
func (t InstanceTransforms) Count() int {
	return len(t.ScreenPosition)
}

// PathStyle carries optional style fields a renderer may ignore if
// unsupported.
type PathStyle struct {
	FillColor   *[3]float64
	StrokeColor *[3]float64
	StrokeWidth *float64
	LineCap     string
	LineJoin    string
}

// DrawOp is one assembled draw instruction. Exactly one of Geometry
// (DrawPathInstances) or Topology (DrawPrimitiveInstances) is meaningful
// per Kind.
type DrawOp struct {
	Kind      DrawOpKind
	Topology  string
	Geometry  PathGeometry
	Instances InstanceTransforms
	Style     PathStyle
}
