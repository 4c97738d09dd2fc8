package compile

import "github.com/flowframe/engine/diag"

// Stable diagnostic codes, grounded on the teacher's instr/isa.go flat
// string-keyed registries (closed, lookup-by-name tables rather than
// formatted strings assembled ad hoc at each call site).
const (
	ErrUnknownBlockKind    diag.Code = "E_UNKNOWN_BLOCK_KIND"
	ErrPayloadMismatch     diag.Code = "E_PAYLOAD_MISMATCH"
	ErrUnitUnresolvable    diag.Code = "E_UNIT_UNRESOLVABLE"
	ErrCardinalityMismatch diag.Code = "E_CARDINALITY_MISMATCH"
	ErrExtentMismatch      diag.Code = "E_EXTENT_MISMATCH"
	ErrNoAdapterAvailable  diag.Code = "E_NO_ADAPTER_AVAILABLE"
	ErrMissingRequiredPort diag.Code = "E_MISSING_REQUIRED_PORT"
	ErrTimeRootMissing     diag.Code = "E_TIME_ROOT_MISSING"
	ErrKernelArity         diag.Code = "E_KERNEL_ARITY"
	ErrNaNDetected         diag.Code = "P_NAN_DETECTED"

	WarnContractAdapted diag.Code = "W_CONTRACT_ADAPTED"
	WarnUnusedOutput    diag.Code = "W_UNUSED_OUTPUT"
	WarnMultipleWriters diag.Code = "W_MULTIPLE_WRITERS_WINNOWED"

	InfoAdapterInserted diag.Code = "I_ADAPTER_INSERTED"
	InfoCompiled        diag.Code = "I_COMPILED"
)
