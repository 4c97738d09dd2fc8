package kernel

import "math"

// FieldKernel is a Layer C field (per-instance buffer) operation: vector
// construction, layouts, color conversion, jitter, simple effects, and
// path-derivative math. Field kernels operate lane-wise over a buffer of
// float64 slices, grounded on the teacher's cgra/data.go Data type (a
// multi-lane value with a predicate) generalized to arbitrary stride.
type FieldKernel int

const (
	FKVec2 FieldKernel = iota
	FKVec3
	FKVec4
	FKHSVToRGB
	FKRGBToHSV
	FKJitter
	FKGridLayout
	FKCircleLayout
	FKLineLayout
	FKPathTangent
	FKPathNormal
	FKPathArcLength
	FKPolarToCartesian
	FKCartesianToPolar
)

func (k FieldKernel) String() string {
	names := [...]string{
		"vec2", "vec3", "vec4", "hsvToRgb", "rgbToHsv", "jitter",
		"gridLayout", "circleLayout", "lineLayout",
		"pathTangent", "pathNormal", "pathArcLength",
		"polarToCartesian", "cartesianToPolar",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "fieldKernel(?)"
	}
	return names[k]
}

// EvalVecConstruct packs scalar lane values into a single multi-component
// value, used by FKVec2/FKVec3/FKVec4.
func EvalVecConstruct(k FieldKernel, components []float64) ([]float64, error) {
	want := map[FieldKernel]int{FKVec2: 2, FKVec3: 3, FKVec4: 4}[k]
	if want == 0 {
		return nil, &ArityError{Op: Opcode(-1), Got: len(components), Expected: "vec construction kernel"}
	}
	if len(components) != want {
		return nil, &ArityError{Op: Opcode(-1), Got: len(components), Expected: itoaStride(want)}
	}
	out := make([]float64, want)
	copy(out, components)
	return out, nil
}

func itoaStride(n int) string {
	digits := "0123456789"
	if n < 10 {
		return string(digits[n])
	}
	return "N"
}

// EvalHSVToRGB converts an (h,s,v) triple in [0,1] to an (r,g,b) triple.
func EvalHSVToRGB(hsv []float64) []float64 {
	h, s, v := hsv[0]*6, hsv[1], hsv[2]
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch int(i) % 6 {
	case 0:
		return []float64{v, t, p}
	case 1:
		return []float64{q, v, p}
	case 2:
		return []float64{p, v, t}
	case 3:
		return []float64{p, q, v}
	case 4:
		return []float64{t, p, v}
	default:
		return []float64{v, p, q}
	}
}

// EvalRGBToHSV converts an (r,g,b) triple in [0,1] to an (h,s,v) triple.
func EvalRGBToHSV(rgb []float64) []float64 {
	r, g, b := rgb[0], rgb[1], rgb[2]
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	v := maxc
	delta := maxc - minc

	if delta < 1e-12 {
		return []float64{0, 0, v}
	}

	s := delta / maxc
	var h float64
	switch maxc {
	case r:
		h = math.Mod((g-b)/delta, 6)
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h /= 6
	if h < 0 {
		h += 1
	}
	return []float64{h, s, v}
}

// EvalJitter perturbs a value deterministically by an index-derived seed,
// used by per-instance randomized position/radius/color lenses.
func EvalJitter(value float64, index int, amount, seed float64) float64 {
	n := hashToUnit(float64(index), seed) * 2 - 1
	return value + n*amount
}

// EvalGridLayout computes the (x,y) position of lane i in a row-major
// grid with the given cell size, centered on the origin.
func EvalGridLayout(index, rows, cols int, cellW, cellH float64) (x, y float64) {
	row := index / cols
	col := index % cols
	totalW := float64(cols) * cellW
	totalH := float64(rows) * cellH
	x = float64(col)*cellW - totalW/2 + cellW/2
	y = float64(row)*cellH - totalH/2 + cellH/2
	return x, y
}

// EvalCircleLayout places lane i of count equally spaced around a circle
// of the given radius, starting at angle 0 (positive x axis).
func EvalCircleLayout(index, count int, radius float64) (x, y float64) {
	if count <= 0 {
		return 0, 0
	}
	theta := 2 * math.Pi * float64(index) / float64(count)
	return radius * math.Cos(theta), radius * math.Sin(theta)
}

// EvalLineLayout places lane i of count evenly along a line from (x0,y0)
// to (x1,y1) inclusive of both endpoints when count > 1.
func EvalLineLayout(index, count int, x0, y0, x1, y1 float64) (x, y float64) {
	if count <= 1 {
		return x0, y0
	}
	t := float64(index) / float64(count-1)
	return x0 + (x1-x0)*t, y0 + (y1-y0)*t
}

// EvalPolygonVertex places local-space control point i of a regular
// polygon with the given number of sides, centered at the origin with
// independent x/y radii, starting at angle 0 (positive x axis).
func EvalPolygonVertex(index, sides int, rx, ry float64) (x, y float64) {
	if sides <= 0 {
		return 0, 0
	}
	theta := 2 * math.Pi * float64(index) / float64(sides)
	return rx * math.Cos(theta), ry * math.Sin(theta)
}

// EvalPolarToCartesian converts a (radius, angle) pair to (x, y).
func EvalPolarToCartesian(radius, angle float64) (x, y float64) {
	return radius * math.Cos(angle), radius * math.Sin(angle)
}

// EvalCartesianToPolar converts an (x, y) pair to (radius, angle).
func EvalCartesianToPolar(x, y float64) (radius, angle float64) {
	return math.Hypot(x, y), math.Atan2(y, x)
}

// EvalPathTangent and EvalPathNormal compute per-vertex derivatives over
// an ordered polyline of control points using a central-difference
// scheme, with one-sided differences at the ends. EvalPathArcLength
// returns, per vertex i, the summed segment lengths from vertex 0 to i.
func EvalPathTangent(points [][2]float64, i int) [2]float64 {
	prev, next := neighborIndices(len(points), i)
	dx := points[next][0] - points[prev][0]
	dy := points[next][1] - points[prev][1]
	length := math.Hypot(dx, dy)
	if length < 1e-12 {
		return [2]float64{0, 0}
	}
	return [2]float64{dx / length, dy / length}
}

func EvalPathNormal(points [][2]float64, i int) [2]float64 {
	tangent := EvalPathTangent(points, i)
	return [2]float64{-tangent[1], tangent[0]}
}

func EvalPathArcLength(points [][2]float64, i int) float64 {
	length := 0.0
	for j := 1; j <= i && j < len(points); j++ {
		dx := points[j][0] - points[j-1][0]
		dy := points[j][1] - points[j-1][1]
		length += math.Hypot(dx, dy)
	}
	return length
}

func neighborIndices(n, i int) (prev, next int) {
	prev, next = i-1, i+1
	if prev < 0 {
		prev = 0
	}
	if next >= n {
		next = n - 1
	}
	return prev, next
}
