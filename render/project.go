package render

// CameraKind selects which projection kernel turns a world-space
// position into a normalized screen position. Only Orthographic is
// implemented; other camera kinds are a documented extension point.
type CameraKind int

const (
	Orthographic CameraKind = iota
)

// Camera parameterizes a projection. Extent is the world-space half-size
// mapped to the [0,1] screen square; Orthographic with Extent=1 maps
// world [-1,1] to screen [0,1] on both axes.
type Camera struct {
	Kind   CameraKind
	Extent float64
}

// DefaultCamera returns the spec's default: an orthographic camera with
// a unit world extent.
func DefaultCamera() Camera {
	return Camera{Kind: Orthographic, Extent: 1}
}

// Project maps one world-space (x, y) position and a world-space radius
// to a normalized [0,1] screen position and screen radius. Projection
// kernels vary per camera type; orthographic is a direct affine remap
// with no perspective divide.
func (c Camera) Project(x, y, radius float64) (screenX, screenY, screenRadius float64) {
	extent := c.Extent
	if extent == 0 {
		extent = 1
	}
	switch c.Kind {
	case Orthographic:
		screenX = x/(2*extent) + 0.5
		screenY = y/(2*extent) + 0.5
		screenRadius = radius / (2 * extent)
	default:
		screenX, screenY, screenRadius = x, y, radius
	}
	return screenX, screenY, screenRadius
}

// InViewport reports whether a screen-space position (with a radius
// margin) falls inside the default [0,1] viewport, used by the culling
// stage to drop off-screen instances before the owned-copy checkpoint.
func InViewport(screenX, screenY, screenRadius float64) bool {
	lo, hi := -screenRadius, 1+screenRadius
	return screenX >= lo && screenX <= hi && screenY >= lo && screenY <= hi
}
