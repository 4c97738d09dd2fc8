package ir

import "github.com/flowframe/engine/types"

// Program is the fully assembled compiler output: every instance, slot,
// expression, state declaration, and the ordered per-frame schedule. A
// compile pass only ever appends to a Builder; Program is read-only once
// built, mirroring the teacher's core/program.go Program/EntryBlock shape
// (an ordered, fully-resolved instruction listing) rather than a mutable
// graph walked at runtime.
type Program struct {
	Instances   []InstanceDecl
	Slots       []ValueSlot
	ValueExprs  []ValueExpr
	FieldExprs  []FieldExpr
	States      []StateDecl
	Schedule    []ScheduleStep
	ArenaSize   uint32
}

// StateDecl declares a piece of cross-frame persistent state (a hold
// accumulator, a continuity-tracked target, a crossing-event latch).
type StateDecl struct {
	ID      StateID
	Type    types.CanonicalType
	Initial float64
}

// Builder incrementally assembles a Program. Block lowering closures
// (package registry) are handed a *Builder and append instances, slots,
// and expressions as they lower each block; later compiler passes then
// read and append to the same Builder to fill in the schedule and slot
// offsets. This mirrors the teacher's LoadProgramFileFromYAML
// append-as-you-go construction, translated from a one-shot YAML decode
// into an imperative API driven by many independent callers.
type Builder struct {
	instances  []InstanceDecl
	slots      []ValueSlot
	valueExprs []ValueExpr
	fieldExprs []FieldExpr
	states     []StateDecl
	schedule   []ScheduleStep
	alloc      *SlotAllocator
	timeSlot   SlotID
	renders    []RenderBlockConfig
}

// NewBuilder returns a Builder ready to receive lowered blocks. A reserved
// time slot (seconds elapsed since engine start) is pre-declared so every
// Time-family block can read it without a per-graph special case; the
// executor writes it once at the start of each frame, ahead of the scalar
// eval sweep.
func NewBuilder() *Builder {
	b := &Builder{alloc: NewSlotAllocator()}
	b.timeSlot = b.DeclareSlot(types.CanonicalType{
		Payload: types.PayloadFloat, Unit: types.UnitSeconds,
		Contract: types.ContractNone, Cardinality: types.Signal,
	}, StorageF64, 1)
	return b
}

// TimeSlot returns the reserved per-frame elapsed-seconds slot.
func (b *Builder) TimeSlot() SlotID {
	return b.timeSlot
}

// CreateInstance appends a new InstanceDecl and returns its id.
func (b *Builder) CreateInstance(domain types.CanonicalType, count int, dynamic bool, layout LayoutSpec, identity IdentityMode) types.InstanceID {
	id := types.InstanceID(len(b.instances) + 1)
	b.instances = append(b.instances, InstanceDecl{
		ID: id, DomainType: domain, Count: count, Dynamic: dynamic,
		Layout: layout, IdentityMode: identity,
	})
	return id
}

// DeclareSlot allocates a new ValueSlot of the given type and storage
// kind, replicated across width lanes, and returns its id.
func (b *Builder) DeclareSlot(t types.CanonicalType, storage StorageKind, width int) SlotID {
	id := SlotID(len(b.slots) + 1)
	offset := b.alloc.Allocate(storage, width)
	b.slots = append(b.slots, ValueSlot{
		ID: id, Type: t, Storage: storage,
		Offset: offset, Stride: slotStride(storage) * uint32(max(width, 1)),
	})
	return id
}

// AddValueExpr appends a scalar expression and returns its id.
func (b *Builder) AddValueExpr(e ValueExpr) ValueExprID {
	id := ValueExprID(len(b.valueExprs) + 1)
	e.ID = id
	b.valueExprs = append(b.valueExprs, e)
	return id
}

// AddFieldExpr appends a field expression and returns its id.
func (b *Builder) AddFieldExpr(e FieldExpr) FieldExprID {
	id := FieldExprID(len(b.fieldExprs) + 1)
	e.ID = id
	b.fieldExprs = append(b.fieldExprs, e)
	return id
}

// DeclareState appends a persistent state slot and returns its id.
func (b *Builder) DeclareState(t types.CanonicalType, initial float64) StateID {
	id := StateID(len(b.states) + 1)
	b.states = append(b.states, StateDecl{ID: id, Type: t, Initial: initial})
	return id
}

// Emit appends one step to the schedule, in the order passes decide.
func (b *Builder) Emit(step ScheduleStep) {
	b.schedule = append(b.schedule, step)
}

// AddRenderTarget records a render block's draw-op configuration.
// Render-family blocks are lowering sinks: they have no output ports, so
// they stash their config here instead of returning a LoweredRef. Pass 7
// (Schedule) reads these back to emit the StepRender schedule entries
// once instance lowering has finished.
func (b *Builder) AddRenderTarget(cfg RenderBlockConfig) {
	b.renders = append(b.renders, cfg)
}

// RenderTargets returns the render configs recorded by AddRenderTarget.
func (b *Builder) RenderTargets() []RenderBlockConfig {
	return append([]RenderBlockConfig(nil), b.renders...)
}

// RenderTargetCount reports how many render targets have been recorded so
// far, used by Pass 6 to detect which (if any) were added by a single
// block's Lower closure.
func (b *Builder) RenderTargetCount() int {
	return len(b.renders)
}

// NameRenderTargetsFrom assigns name to every render target recorded
// since index from (inclusive), i.e. those added by the Lower closure
// that just ran.
func (b *Builder) NameRenderTargetsFrom(from int, name string) {
	for i := from; i < len(b.renders); i++ {
		b.renders[i].TargetName = name
	}
}

// Instances, ValueExprs, FieldExprs and States expose read access to
// already-built entries, used by later passes that need to inspect
// earlier ones (e.g. Pass 7 walking instances to emit projection steps).
func (b *Builder) Instances() []InstanceDecl   { return b.instances }
func (b *Builder) ValueExprs() []ValueExpr     { return b.valueExprs }
func (b *Builder) FieldExprs() []FieldExpr     { return b.fieldExprs }
func (b *Builder) States() []StateDecl         { return b.states }
func (b *Builder) Slots() []ValueSlot          { return b.slots }
func (b *Builder) Schedule() []ScheduleStep    { return b.schedule }

// SlotByID returns the slot with the given id, or false if absent.
func (b *Builder) SlotByID(id SlotID) (ValueSlot, bool) {
	if int(id) < 1 || int(id) > len(b.slots) {
		return ValueSlot{}, false
	}
	return b.slots[id-1], true
}

// Build finalizes the Builder into an immutable Program. Passes may call
// this more than once during compilation (e.g. to hand an intermediate
// snapshot to a diagnostics formatter); it always reflects the current
// state.
func (b *Builder) Build() Program {
	return Program{
		Instances:  append([]InstanceDecl(nil), b.instances...),
		Slots:      append([]ValueSlot(nil), b.slots...),
		ValueExprs: append([]ValueExpr(nil), b.valueExprs...),
		FieldExprs: append([]FieldExpr(nil), b.fieldExprs...),
		States:     append([]StateDecl(nil), b.states...),
		Schedule:   append([]ScheduleStep(nil), b.schedule...),
		ArenaSize:  b.alloc.Used(),
	}
}
