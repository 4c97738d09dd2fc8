package exec

import (
	"fmt"
	"math"

	"github.com/flowframe/engine/continuity"
	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/kernel"
	"github.com/flowframe/engine/types"
	"github.com/sarchlab/akita/v4/sim"
)

// RenderSink receives one fully assembled frame. Implemented by package
// render's FrameBuilder; kept as an interface here so package exec never
// imports package render, avoiding a dependency cycle between the
// evaluator and the thing that consumes its output.
type RenderSink interface {
	BeginFrame()
	AddDrawTarget(cfg ir.RenderBlockConfig, positions, radii, colors, opacities []float64)
	EndFrame() error
}

// Executor runs a CompiledProgram's schedule once per frame. It owns all
// per-frame storage: the flat slot arena, cached scalar expression
// results, materialized field buffers, and persistent state. Grounded on
// the teacher's core/emu.go RunInstructionGroup (compute, advance,
// detect completion) generalized from a single fetched-per-PC
// instruction to a pre-compiled, fixed ScheduleStep list.
type Executor struct {
	program ir.Program
	pool    *BufferPool

	arena       []float64
	exprResults []float64
	fieldValues map[ir.FieldExprID][]float64
	stateValues []float64

	crossingPrev map[ir.ValueExprID]float64
	crossingIn   map[ir.ValueExprID]bool

	frameSeconds   float64
	lastDtMs       float64
	productionMode bool

	continuity      *continuity.Store
	continuityKnobs continuity.Knobs
}

// NewExecutor prepares an Executor for program. productionMode, when
// true, converts what would otherwise be a panic on a malformed kernel
// call (bad arity, unknown opcode) into a diagnostic-worthy error
// instead -- spec's explicit split between debug-time panics and
// production-time recoverable conditions.
func NewExecutor(program ir.Program, productionMode bool) *Executor {
	stateValues := make([]float64, len(program.States)+1)
	for _, decl := range program.States {
		if int(decl.ID) >= 1 && int(decl.ID) < len(stateValues) {
			stateValues[decl.ID] = decl.Initial
		}
	}
	return &Executor{
		program:         program,
		pool:            NewBufferPool(),
		arena:           make([]float64, program.ArenaSize),
		exprResults:     make([]float64, len(program.ValueExprs)+1),
		fieldValues:     make(map[ir.FieldExprID][]float64),
		stateValues:     stateValues,
		crossingPrev:    make(map[ir.ValueExprID]float64),
		crossingIn:      make(map[ir.ValueExprID]bool),
		productionMode:  productionMode,
		continuity:      continuity.NewStore(),
		continuityKnobs: continuity.DefaultKnobs(),
	}
}

// PoolOccupancy reports the executor's buffer pool high-water mark,
// surfaced to a host via engine.Engine.PoolOccupancy for diagnostics.
func (e *Executor) PoolOccupancy() PeakOccupancy {
	return e.pool.PeakOccupancyReport()
}

// WithContinuity swaps in an external continuity Store (e.g. one an
// Engine keeps alive across recompiles) and/or tuning knobs. Passing a
// Store this way, rather than recreating the Executor, is what lets
// target state survive a hot-swap: the same Store is handed to the next
// Executor built from the recompiled Program.
func (e *Executor) WithContinuity(store *continuity.Store, knobs continuity.Knobs) *Executor {
	e.continuity = store
	e.continuityKnobs = knobs
	return e
}

// Advance runs exactly one frame: advances the clock, sweeps scalar
// expressions, materializes fields, writes state back, and hands
// completed draw targets to sink. dt is a sim.VTimeInSec delta, mirroring
// the teacher's core.Tick(now sim.VTimeInSec) clock representation.
func (e *Executor) Advance(dt sim.VTimeInSec, sink RenderSink) error {
	e.lastDtMs = float64(dt) * 1000
	e.frameSeconds += float64(dt)
	e.writeTimeSlot()

	sink.BeginFrame()

	for _, step := range e.program.Schedule {
		switch step.Kind {
		case ir.StepEvalSig:
			if err := e.evalValueExpr(step.ValueExpr); err != nil {
				if !e.productionMode {
					panic(err)
				}
				return err
			}
		case ir.StepMaterialize:
			if err := e.materializeField(step.FieldExpr); err != nil {
				if !e.productionMode {
					panic(err)
				}
				return err
			}
		case ir.StepRender:
			e.emitRenderTarget(step.Render, sink)
		case ir.StepStateRead:
			if slot, ok := slotByID(e.program.Slots, step.ReadInto); ok {
				e.arena[slot.Offset] = e.stateRead(step.State)
			}
		case ir.StepStateWrite:
			if slot, ok := slotByID(e.program.Slots, step.WriteFrom); ok {
				e.stateWrite(step.State, e.arena[slot.Offset])
			}
		case ir.StepEvent, ir.StepProjection:
			// VECrossingEvent is evaluated inline during the scalar sweep
			// above; StepProjection is the render assembler's concern once
			// draw targets are handed off via sink.
		}
	}

	return sink.EndFrame()
}

// stateRead and stateWrite are the two halves of a cross-frame state
// slot round-trip: a StepStateRead step copies last frame's write into an
// arena slot a ValueExpr can VEReadSlot this frame, and a StepStateWrite
// step copies this frame's computed arena slot back for the next frame to
// read. VEHold is the one block-reachable consumer today (its own state
// slot, read and written every frame below); the step kinds themselves
// are general enough for any future block that needs the same feedback
// shape without going through VEHold's latch-on-event semantics.
func (e *Executor) stateRead(id ir.StateID) float64 {
	if int(id) >= 1 && int(id) < len(e.stateValues) {
		return e.stateValues[id]
	}
	return 0
}

func (e *Executor) stateWrite(id ir.StateID, v float64) {
	if int(id) >= 1 && int(id) < len(e.stateValues) {
		e.stateValues[id] = v
	}
}

func (e *Executor) writeTimeSlot() {
	for _, slot := range e.program.Slots {
		if slot.Storage == ir.StorageF64 && slot.Stride == 1 && slot.Offset == e.timeSlotOffset() {
			e.arena[slot.Offset] = e.frameSeconds
			return
		}
	}
}

// timeSlotOffset returns the reserved time slot's arena offset. It is
// always the first slot declared by ir.NewBuilder, so its offset is
// always zero.
func (e *Executor) timeSlotOffset() uint32 {
	return 0
}

func (e *Executor) evalValueExpr(id ir.ValueExprID) error {
	if int(id) < 1 || int(id) > len(e.program.ValueExprs) {
		return fmt.Errorf("exec: value expr id %d out of range", id)
	}
	expr := e.program.ValueExprs[id-1]

	switch expr.Kind {
	case ir.VEConst:
		if len(expr.ConstValue) > 0 {
			e.exprResults[id] = expr.ConstValue[0]
		}

	case ir.VEReadSlot:
		slot, ok := slotByID(e.program.Slots, expr.Slot)
		if !ok {
			return fmt.Errorf("exec: unknown slot %d", expr.Slot)
		}
		e.exprResults[id] = e.arena[slot.Offset]

	case ir.VEOpcode:
		args := e.gatherArgs(expr.Args)
		v, err := kernel.EvalOpcode(kernel.Opcode(expr.OpcodeTag), args)
		if err != nil {
			return fmt.Errorf("exec: opcode %v: %w", expr.OpcodeTag, err)
		}
		e.exprResults[id] = v

	case ir.VEKernel:
		args := e.gatherArgs(expr.Args)
		v, err := kernel.EvalSignalKernel(kernel.SignalKernel(expr.KernelTag), args)
		if err != nil {
			return fmt.Errorf("exec: signal kernel %v: %w", expr.KernelTag, err)
		}
		e.exprResults[id] = v

	case ir.VESelectFromField:
		field := e.fieldValues[expr.Field]
		idx := int(e.exprResults[expr.Index])
		if idx >= 0 && idx < len(field) {
			e.exprResults[id] = field[idx]
		}

	case ir.VEReduce:
		e.exprResults[id] = reduceField(e.fieldValues[expr.ReduceField], expr.Reduce)

	case ir.VECrossingEvent:
		v := e.exprResults[expr.CrossingSignal]
		prev, seen := e.crossingPrev[expr.CrossingSignal]
		fired := 0.0
		if seen {
			wasAbove := e.crossingIn[expr.CrossingSignal]
			isAbove := v > expr.Threshold+expr.Hysteresis
			isBelow := v < expr.Threshold-expr.Hysteresis
			if !wasAbove && isAbove {
				fired = 1
				e.crossingIn[expr.CrossingSignal] = true
			} else if wasAbove && isBelow {
				e.crossingIn[expr.CrossingSignal] = false
			}
		} else {
			e.crossingIn[expr.CrossingSignal] = v > expr.Threshold
		}
		e.crossingPrev[expr.CrossingSignal] = v
		e.exprResults[id] = fired

	case ir.VEHold:
		held := e.stateRead(expr.StateSlot)
		if e.exprResults[expr.HoldEvent] > 0.5 {
			held = e.exprResults[expr.HoldEvent]
		}
		e.stateWrite(expr.StateSlot, held)
		e.exprResults[id] = held

	case ir.VEPathDerivative:
		e.exprResults[id] = e.evalPathDerivative(expr)
	}

	return nil
}

// evalPathDerivative extracts a single scalar off a control-point field's
// derivative at its final vertex: tangent/normal direction in radians, or
// total arc length. ControlPoints is read first; a block that only has a
// topology's own point field handy (TopologyField) falls back to that, so
// both naming conventions a path-consuming block might use are honored.
func (e *Executor) evalPathDerivative(expr ir.ValueExpr) float64 {
	src := e.fieldValues[expr.ControlPoints]
	if len(src) == 0 {
		src = e.fieldValues[expr.TopologyField]
	}
	points := decodePoints(src)
	if len(points) == 0 {
		return 0
	}
	last := len(points) - 1
	switch expr.DerivKind {
	case ir.DerivTangent:
		t := kernel.EvalPathTangent(points, last)
		return math.Atan2(t[1], t[0])
	case ir.DerivNormal:
		n := kernel.EvalPathNormal(points, last)
		return math.Atan2(n[1], n[0])
	case ir.DerivArcLength:
		return kernel.EvalPathArcLength(points, last)
	default:
		return 0
	}
}

func decodePoints(values []float64) [][2]float64 {
	if len(values) == 0 || len(values)%2 != 0 {
		return nil
	}
	count := len(values) / 2
	points := make([][2]float64, count)
	for i := 0; i < count; i++ {
		points[i] = [2]float64{values[2*i], values[2*i+1]}
	}
	return points
}

func (e *Executor) gatherArgs(ids []ir.ValueExprID) []float64 {
	args := make([]float64, len(ids))
	for i, argID := range ids {
		args[i] = e.exprResults[argID]
	}
	return args
}

func slotByID(slots []ir.ValueSlot, id ir.SlotID) (ir.ValueSlot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return ir.ValueSlot{}, false
}

func reduceField(values []float64, op ir.ReduceOp) float64 {
	if len(values) == 0 {
		if op == ir.ReduceCount {
			return 0
		}
		return 0
	}
	switch op {
	case ir.ReduceSum:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum
	case ir.ReduceAvg:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	case ir.ReduceMax:
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	case ir.ReduceMin:
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case ir.ReduceCount:
		return float64(len(values))
	default:
		return 0
	}
}

// fieldWidth returns the element count a field expression should
// materialize at. Every field in a program binds to the program's sole
// InstanceDecl when the compiler didn't pin one explicitly; multi-domain
// graphs (more than one InstanceDecl feeding distinct field pipelines)
// are a documented simplification left for a future compiler pass to
// bind FieldExpr.InstanceID precisely per instance.
func (e *Executor) fieldWidth() int {
	if len(e.program.Instances) == 0 {
		return 0
	}
	return e.program.Instances[0].Count
}

// materializeField evaluates one FieldExpr into a flat, lane-major
// interleaved buffer sized width*stride, stride being the expression's
// declared payload width (types.PayloadStride): 1 for float/int, 2 for
// vec2, 3 for vec3, 4 for color. Every multi-component kernel (vec
// construction, color conversion, layouts) writes its full per-lane
// vector into the matching stride range instead of collapsing to a
// single channel.
func (e *Executor) materializeField(id ir.FieldExprID) error {
	if int(id) < 1 || int(id) > len(e.program.FieldExprs) {
		return fmt.Errorf("exec: field expr id %d out of range", id)
	}
	expr := e.program.FieldExprs[id-1]
	width := e.fieldWidth()
	stride := fieldTypeStride(expr.Type)
	buf := e.pool.Acquire(width * stride)

	switch expr.Kind {
	case ir.FEIntrinsic:
		for i := 0; i < width; i++ {
			switch expr.Intrinsic {
			case ir.IntrinsicIndex:
				buf.Data[i*stride] = float64(i)
			case ir.IntrinsicNormalizedIndex:
				if width > 1 {
					buf.Data[i*stride] = float64(i) / float64(width-1)
				}
			case ir.IntrinsicRandomID:
				buf.Data[i*stride] = kernel.EvalJitter(0, i, 1, 0)
			}
		}

	case ir.FEConst:
		for i := 0; i < width; i++ {
			writeConstLane(buf.Data[i*stride:i*stride+stride], expr.ConstValue)
		}

	case ir.FEBroadcast:
		v := e.exprResults[expr.BroadcastSignal]
		for i := 0; i < width; i++ {
			buf.Data[i*stride] = v
		}

	case ir.FEMap:
		src := e.fieldValues[expr.MapInput]
		inStride := e.fieldStride(expr.MapInput)
		for i := 0; i < width; i++ {
			lane := laneSlice(src, i, inStride)
			var out []float64
			if expr.MapFn.Kind == ir.PureFnOpcode && inStride > 1 {
				out = mapElementwiseOpcode(kernel.Opcode(expr.MapFn.OpcodeTag), lane)
			} else {
				out = applyPureFn(expr.MapFn, lane, i)
			}
			copy(buf.Data[i*stride:i*stride+stride], padComponents(out, stride, expr.Type.Payload))
		}

	case ir.FEZip:
		srcs := make([][]float64, len(expr.ZipInputs))
		strides := make([]int, len(expr.ZipInputs))
		for i, fid := range expr.ZipInputs {
			srcs[i] = e.fieldValues[fid]
			strides[i] = e.fieldStride(fid)
		}
		for i := 0; i < width; i++ {
			args := make([]float64, len(srcs))
			for j, s := range srcs {
				args[j] = firstComponent(s, i, strides[j])
			}
			out := applyPureFn(expr.ZipFn, args, i)
			copy(buf.Data[i*stride:i*stride+stride], padComponents(out, stride, expr.Type.Payload))
		}

	case ir.FEZipSig:
		srcs := make([][]float64, len(expr.ZipSigFields))
		strides := make([]int, len(expr.ZipSigFields))
		for i, fid := range expr.ZipSigFields {
			srcs[i] = e.fieldValues[fid]
			strides[i] = e.fieldStride(fid)
		}
		sigArgs := make([]float64, len(expr.ZipSigSignals))
		for i, sid := range expr.ZipSigSignals {
			sigArgs[i] = e.exprResults[sid]
		}
		for i := 0; i < width; i++ {
			args := make([]float64, 0, len(srcs)+len(sigArgs))
			for j, s := range srcs {
				args = append(args, firstComponent(s, i, strides[j]))
			}
			args = append(args, sigArgs...)
			out := applyPureFn(expr.ZipSigFn, args, i)
			copy(buf.Data[i*stride:i*stride+stride], padComponents(out, stride, expr.Type.Payload))
		}

	case ir.FELayout:
		for i := 0; i < width; i++ {
			x, y := evalLayoutLane(expr.Layout, i, width)
			lane := buf.Data[i*stride : i*stride+stride]
			lane[0] = x
			if stride > 1 {
				lane[1] = y
			}
		}
	}

	e.fieldValues[id] = append([]float64(nil), buf.Data[:width*stride]...)
	e.pool.Release(buf)
	return nil
}

// fieldTypeStride resolves a CanonicalType's payload to its storage
// stride, defaulting unresolved/opaque payloads to 1 lane so a field with
// no pinned type (e.g. one built before its downstream consumer's
// payload constrained it) still materializes a usable buffer.
func fieldTypeStride(t types.CanonicalType) int {
	s := int(types.PayloadStride(t.Payload))
	if s == 0 {
		return 1
	}
	return s
}

// fieldStride reports the materialized stride of a previously-declared
// field expression, used by a consumer (FEMap/FEZip/FEZipSig) to read its
// input's lanes correctly regardless of the input's own component count.
func (e *Executor) fieldStride(id ir.FieldExprID) int {
	if int(id) < 1 || int(id) > len(e.program.FieldExprs) {
		return 1
	}
	return fieldTypeStride(e.program.FieldExprs[id-1].Type)
}

// laneSlice extracts lane i's stride components from a flat interleaved
// buffer, zero-padding if the buffer is short (pool buffers can be wider
// than used, or a not-yet-materialized field reads as empty).
func laneSlice(values []float64, i, stride int) []float64 {
	if stride <= 0 {
		stride = 1
	}
	out := make([]float64, stride)
	base := i * stride
	for c := 0; c < stride && base+c < len(values); c++ {
		out[c] = values[base+c]
	}
	return out
}

// firstComponent reads just lane i's leading component, the convention
// FEZip/FEZipSig use for each of their (typically scalar) field inputs.
func firstComponent(values []float64, i, stride int) float64 {
	if stride <= 0 {
		stride = 1
	}
	idx := i * stride
	if idx >= 0 && idx < len(values) {
		return values[idx]
	}
	return 0
}

// padComponents fits a kernel's natural output onto a field's declared
// stride: truncating extra components, or padding short ones. A color
// output short by exactly the alpha channel (e.g. hsvToRgb's 3-component
// result feeding a 4-stride color field) pads with 1 (fully opaque); any
// other shortfall pads with 0.
func padComponents(out []float64, stride int, payload types.Payload) []float64 {
	if len(out) >= stride {
		return out[:stride]
	}
	padded := make([]float64, stride)
	copy(padded, out)
	if payload == types.PayloadColor && len(out) == stride-1 {
		padded[stride-1] = 1
	}
	return padded
}

// writeConstLane fills a const field's lane: each declared component is
// copied in order, and any stride beyond the last declared component
// replicates it (so a single-value literal broadcasts across every
// channel, e.g. a bare 1.0 const feeding a color field becomes opaque
// white rather than leaving g/b/a at zero).
func writeConstLane(lane []float64, values []float64) {
	if len(values) == 0 {
		return
	}
	for c := range lane {
		if c < len(values) {
			lane[c] = values[c]
		} else {
			lane[c] = values[len(values)-1]
		}
	}
}

// mapElementwiseOpcode applies a unary opcode independently to every
// component of a multi-stride FEMap input, e.g. negating both channels of
// a vec2 position field. Zip-family PureFn dispatch never takes this
// path: there, each arg is already a distinct field's contribution, not a
// single field's components.
func mapElementwiseOpcode(op kernel.Opcode, lane []float64) []float64 {
	out := make([]float64, len(lane))
	for c, v := range lane {
		if r, err := kernel.EvalOpcode(op, []float64{v}); err == nil {
			out[c] = r
		}
	}
	return out
}

// applyPureFn evaluates a PureFn against one lane's (or one zip step's)
// arguments. For PureFnOpcode, args are the operator's operands and the
// result is always single-valued. For PureFnFieldKernel, args are the
// kernel's own positional parameters and the result may be multi-valued
// (vec construction, color conversion, polar/cartesian), dispatched
// through the real kernel.Eval* functions rather than passed through.
func applyPureFn(fn ir.PureFn, args []float64, laneIndex int) []float64 {
	if fn.Kind == ir.PureFnOpcode {
		v, err := kernel.EvalOpcode(kernel.Opcode(fn.OpcodeTag), args)
		if err != nil {
			return []float64{0}
		}
		return []float64{v}
	}

	switch kernel.FieldKernel(fn.FieldKernel) {
	case kernel.FKHSVToRGB:
		return kernel.EvalHSVToRGB(padArgs(args, 3))
	case kernel.FKRGBToHSV:
		return kernel.EvalRGBToHSV(padArgs(args, 3))
	case kernel.FKVec2, kernel.FKVec3, kernel.FKVec4:
		out, err := kernel.EvalVecConstruct(kernel.FieldKernel(fn.FieldKernel), args)
		if err != nil {
			return []float64{0}
		}
		return out
	case kernel.FKPolarToCartesian:
		x, y := kernel.EvalPolarToCartesian(argAt(args, 0), argAt(args, 1))
		return []float64{x, y}
	case kernel.FKCartesianToPolar:
		r, theta := kernel.EvalCartesianToPolar(argAt(args, 0), argAt(args, 1))
		return []float64{r, theta}
	case kernel.FKJitter:
		return []float64{kernel.EvalJitter(argAt(args, 0), laneIndex, 1, 0)}
	default:
		return []float64{argAt(args, 0)}
	}
}

func argAt(args []float64, i int) float64 {
	if i >= 0 && i < len(args) {
		return args[i]
	}
	return 0
}

func padArgs(args []float64, n int) []float64 {
	if len(args) >= n {
		return args[:n]
	}
	out := make([]float64, n)
	copy(out, args)
	return out
}

func evalLayoutLane(spec ir.LayoutSpec, index, width int) (x, y float64) {
	switch spec.Kind {
	case ir.LayoutGrid:
		rows := int(spec.Params["rows"])
		cols := int(spec.Params["cols"])
		return kernel.EvalGridLayout(index, rows, cols, spec.Params["cellWidth"], spec.Params["cellHeight"])
	case ir.LayoutCircle:
		return kernel.EvalCircleLayout(index, width, spec.Params["radius"])
	case ir.LayoutLine:
		return kernel.EvalLineLayout(index, width, spec.Params["x0"], spec.Params["y0"], spec.Params["x1"], spec.Params["y1"])
	case ir.LayoutPolygon:
		return kernel.EvalPolygonVertex(index, width, spec.Params["rx"], spec.Params["ry"])
	default:
		return 0, 0
	}
}

func (e *Executor) emitRenderTarget(cfg ir.RenderBlockConfig, sink RenderSink) {
	positions := e.applyContinuity(cfg.TargetName, "position", continuity.SemanticPosition, e.fieldValues[cfg.PositionFld])
	radii := e.applyContinuity(cfg.TargetName, "radius", continuity.SemanticRadius, e.fieldValues[cfg.RadiusFld])
	colors := e.applyContinuity(cfg.TargetName, "color", continuity.SemanticColor, e.fieldValues[cfg.ColorFld])
	opacities := e.applyContinuity(cfg.TargetName, "opacity", continuity.SemanticOpacity, e.fieldValues[cfg.OpacityFld])
	sink.AddDrawTarget(cfg, positions, radii, colors, opacities)
}

// applyContinuity runs one frame of the continuity algorithm (spec §4.7)
// for the named target's given field, returning the smoothed buffer to
// hand to the render assembler. A nil/empty raw buffer (e.g. a shape
// block with no strokeColor bound) passes through untouched -- there is
// nothing to smooth.
func (e *Executor) applyContinuity(targetName, port string, semantic continuity.SemanticTag, raw []float64) []float64 {
	if len(raw) == 0 || e.continuity == nil {
		return raw
	}
	id := continuity.DeriveStableTargetID(targetName, port, "default")
	ts := e.continuity.Target(id, semantic)
	return e.continuity.Apply(ts, raw, e.continuityKnobs, e.lastDtMs)
}
