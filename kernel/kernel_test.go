package kernel

import "testing"

func TestEvalOpcodeArity(t *testing.T) {
	if _, err := EvalOpcode(OpAdd, nil); err == nil {
		t.Error("expected arity error for OpAdd with zero args")
	}
	if _, err := EvalOpcode(OpSin, []float64{1, 2}); err == nil {
		t.Error("expected arity error for OpSin with two args")
	}
}

func TestEvalOpcodeTable(t *testing.T) {
	cases := []struct {
		op   Opcode
		args []float64
		want float64
	}{
		{OpAdd, []float64{1, 2, 3}, 6},
		{OpMul, []float64{2, 3, 4}, 24},
		{OpSub, []float64{5, 2}, 3},
		{OpClamp, []float64{5, 0, 1}, 1},
		{OpLerp, []float64{0, 10, 0.5}, 5},
		{OpMax, []float64{1, 9, 3}, 9},
		{OpMin, []float64{1, 9, 3}, 1},
	}
	for _, c := range cases {
		got, err := EvalOpcode(c.op, c.args)
		if err != nil {
			t.Fatalf("EvalOpcode(%v, %v): %v", c.op, c.args, err)
		}
		if got != c.want {
			t.Errorf("EvalOpcode(%v, %v) = %v, want %v", c.op, c.args, got, c.want)
		}
	}
}

func TestEvalOpcodeDivisionByZero(t *testing.T) {
	if _, err := EvalOpcode(OpDiv, []float64{1, 0}); err == nil {
		t.Error("expected error dividing by zero")
	}
}

func TestSignalKernelArgCountMismatch(t *testing.T) {
	if _, err := EvalSignalKernel(SigOscSine, []float64{0.5}); err == nil {
		t.Error("expected arity error for oscSine with one arg")
	}
}

func TestEaseBoundaries(t *testing.T) {
	for _, k := range []SignalKernel{SigEaseInQuad, SigEaseOutQuad, SigEaseInOutQuad, SigEaseInCubic, SigEaseOutCubic, SigEaseInOutCubic, SigShapeSmoothstep} {
		lo, err := EvalSignalKernel(k, []float64{0})
		if err != nil || lo != 0 {
			t.Errorf("%v at t=0: got %v, err %v, want 0", k, lo, err)
		}
		hi, err := EvalSignalKernel(k, []float64{1})
		if err != nil || hi != 1 {
			t.Errorf("%v at t=1: got %v, err %v, want 1", k, hi, err)
		}
	}
}

func TestHSVRoundTrip(t *testing.T) {
	rgb := []float64{0.2, 0.6, 0.9}
	hsv := EvalRGBToHSV(rgb)
	back := EvalHSVToRGB(hsv)
	for i := range rgb {
		if diff := rgb[i] - back[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("round trip mismatch at %d: %v -> %v -> %v", i, rgb, hsv, back)
		}
	}
}

func TestGridLayoutIsCentered(t *testing.T) {
	x, y := EvalGridLayout(0, 2, 2, 10, 10)
	if x != -5 || y != -5 {
		t.Errorf("EvalGridLayout(0,2,2,10,10) = (%v,%v), want (-5,-5)", x, y)
	}
}

func TestCircleLayoutFirstPointOnPositiveX(t *testing.T) {
	x, y := EvalCircleLayout(0, 4, 2)
	if x != 2 {
		t.Errorf("expected x=2 at index 0, got %v", x)
	}
	if y < -1e-9 || y > 1e-9 {
		t.Errorf("expected y~0 at index 0, got %v", y)
	}
}

func TestPathTangentUnitLength(t *testing.T) {
	points := [][2]float64{{0, 0}, {1, 0}, {2, 1}}
	for i := range points {
		tangent := EvalPathTangent(points, i)
		length := tangent[0]*tangent[0] + tangent[1]*tangent[1]
		if length < 1e-9 {
			continue // degenerate at isolated points, acceptable
		}
		if diff := length - 1; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("tangent at %d not unit length: %v (len^2=%v)", i, tangent, length)
		}
	}
}
