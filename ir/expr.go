package ir

import "github.com/flowframe/engine/types"

// SlotID addresses a scalar value slot (ValueSlot) or a materialized field
// buffer slot; both share one id space and one ValueSlot table.
type SlotID int

// ValueExprID and FieldExprID index into a Program's expression tables.
type ValueExprID int
type FieldExprID int

// StateID addresses a persistent (cross-frame) state declaration.
type StateID int

// StorageKind is where a slot's data lives in per-frame storage.
type StorageKind int

const (
	StorageF64 StorageKind = iota
	StorageObject
	StorageShape2D
)

// ValueSlot is an addressable scalar value location with payload-derived
// stride.
type ValueSlot struct {
	ID      SlotID
	Type    types.CanonicalType
	Storage StorageKind
	Offset  uint32
	Stride  uint32
}

// ValueExprKind tags a scalar/signal-level expression. Kernel/opcode name
// dispatch is a closed Go enum per spec's redesign note ("kernel name
// becomes a variant tag, not a string key"), not a string-keyed registry.
type ValueExprKind int

const (
	VEConst ValueExprKind = iota
	VEReadSlot
	VEOpcode
	VEKernel
	VESelectFromField
	VEReduce
	VECrossingEvent
	VEHold
	VEPathDerivative
)

// ReduceOp enumerates the reductions FieldExpr -> scalar can perform.
type ReduceOp int

const (
	ReduceSum ReduceOp = iota
	ReduceAvg
	ReduceMax
	ReduceMin
	ReduceCount
)

// PathDerivKind enumerates path-derivative outputs.
type PathDerivKind int

const (
	DerivTangent PathDerivKind = iota
	DerivNormal
	DerivArcLength
)

// ValueExpr is a scalar expression node. Exactly one variant's fields are
// meaningful per Kind; see each constructor for the populated set.
type ValueExpr struct {
	ID   ValueExprID
	Type types.CanonicalType
	Kind ValueExprKind

	// VEConst
	ConstValue []float64

	// VEReadSlot
	Slot SlotID

	// VEOpcode / VEKernel
	OpcodeTag    int // kernel.Opcode, kept as int to avoid an ir<->kernel cycle at the type level
	KernelTag    int // kernel.SignalKernel
	Args         []ValueExprID

	// VESelectFromField
	Field FieldExprID
	Index ValueExprID

	// VEReduce
	ReduceField FieldExprID
	Reduce      ReduceOp

	// VECrossingEvent
	CrossingSignal ValueExprID
	Threshold      float64
	Hysteresis     float64

	// VEHold
	HoldEvent ValueExprID
	Initial   float64
	StateSlot StateID

	// VEPathDerivative
	TopologyField   FieldExprID
	ControlPoints   FieldExprID
	DerivKind       PathDerivKind
}

// PureFnKind tags whether a PureFn dispatches to an opcode or a field
// kernel.
type PureFnKind int

const (
	PureFnOpcode PureFnKind = iota
	PureFnFieldKernel
)

// PureFn references an opcode or a (necessarily unary/binary-over-lanes)
// field kernel, used by FieldExpr map/zip/zipSig.
type PureFn struct {
	Kind        PureFnKind
	OpcodeTag   int // kernel.Opcode
	FieldKernel int // kernel.FieldKernel
}

// FieldExprKind tags a field-level expression.
type FieldExprKind int

const (
	FEIntrinsic FieldExprKind = iota
	FEConst
	FEBroadcast
	FEMap
	FEZip
	FEZipSig
	FELayout
)

// IntrinsicKind enumerates per-instance intrinsic fields.
type IntrinsicKind int

const (
	IntrinsicIndex IntrinsicKind = iota
	IntrinsicNormalizedIndex
	IntrinsicRandomID
	IntrinsicPosition
	IntrinsicRadius
)

// FieldExpr is a field (vector, per-instance) expression node.
type FieldExpr struct {
	ID         FieldExprID
	Type       types.CanonicalType
	InstanceID types.InstanceID // zero means "not yet pinned" (const/broadcast)
	Kind       FieldExprKind

	// FEIntrinsic
	Intrinsic IntrinsicKind

	// FEConst
	ConstValue []float64

	// FEBroadcast
	BroadcastSignal ValueExprID

	// FEMap
	MapInput FieldExprID
	MapFn    PureFn

	// FEZip
	ZipInputs []FieldExprID
	ZipFn     PureFn

	// FEZipSig
	ZipSigFields  []FieldExprID
	ZipSigSignals []ValueExprID
	ZipSigFn      PureFn

	// FELayout
	Layout LayoutSpec
}
