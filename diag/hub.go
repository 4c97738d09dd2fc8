// Package diag implements the Diagnostics Hub: a structured diagnostic
// bus with stable codes, targets, and declarative actions. It is grounded
// directly on the teacher's core/port.go Port, which embeds
// sim.HookableBase and fires at well-known HookPos values on send/recv;
// the hub fires at raised/cleared/muted HookPos values instead, so any
// collaborator (a CLI, the devserver, a test) can observe diagnostics the
// same way akita lets a simulation observer watch port traffic.
package diag

import (
	"fmt"
	"sync"

	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/sim"
)

// HookPosRaised marks when a new diagnostic is raised.
var HookPosRaised = &sim.HookPos{Name: "Diagnostic Raised"}

// HookPosCleared marks when a previously raised diagnostic is cleared.
var HookPosCleared = &sim.HookPos{Name: "Diagnostic Cleared"}

// HookPosMuted marks when a diagnostic's action suppresses its own
// propagation (e.g. a warning downgraded to informational by config).
var HookPosMuted = &sim.HookPos{Name: "Diagnostic Muted"}

// Severity classifies a diagnostic's impact.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Code is a stable diagnostic identifier. Its prefix (E_/W_/I_ by
// severity, P_ for runtime codes such as P_NAN_DETECTED) is a naming
// convention only; the type itself does not check it.
type Code string

// ActionKind enumerates the declarative responses a diagnostic can carry:
// what the host should do about it, decoupled from how the diagnostic is
// displayed. The host-control kinds (abort/skip/useDefault/dropFrame)
// mirror a simulation observer telling akita what to do with a bad
// event; the authoring-surface kinds (createTimeRoot, addAdapter,
// goToTarget, insertBlock, removeBlock, muteDiagnostic, openDocs) are
// actions a patch editor can offer the user directly from a diagnostic.
type ActionKind int

const (
	ActionKindNone ActionKind = iota
	ActionKindAbortCompile
	ActionKindSkipEdge
	ActionKindUseDefault
	ActionKindDropFrame
	ActionKindCreateTimeRoot
	ActionKindAddAdapter
	ActionKindGoToTarget
	ActionKindInsertBlock
	ActionKindRemoveBlock
	ActionKindMuteDiagnostic
	ActionKindOpenDocs
)

// Action is a declarative response a diagnostic carries, paired with
// whatever payload its ActionKind needs (e.g. createTimeRoot names which
// kind of root to create; addAdapter names the unit conversion it
// inserted). Build one with the matching ActionXxx constructor rather
// than this struct literal directly.
type Action struct {
	Kind ActionKind

	TimeRootKind string // ActionKindCreateTimeRoot: "Infinite" | "Bounded"

	AdapterBlockKind string // ActionKindAddAdapter: the lens block inserted
	FromUnit         string
	ToUnit           string

	TargetName string // ActionKindGoToTarget / ActionKindRemoveBlock

	BlockKind string // ActionKindInsertBlock

	MutedCode Code // ActionKindMuteDiagnostic

	DocsURL string // ActionKindOpenDocs
}

// ActionNone signals no host action is associated with the diagnostic.
func ActionNone() Action { return Action{Kind: ActionKindNone} }

// ActionAbortCompile signals compilation cannot produce a usable program.
func ActionAbortCompile() Action { return Action{Kind: ActionKindAbortCompile} }

// ActionSkipEdge signals the host should drop the offending edge and
// continue compiling the rest of the patch.
func ActionSkipEdge() Action { return Action{Kind: ActionKindSkipEdge} }

// ActionUseDefault signals the host substituted a default value for a
// missing or invalid one.
func ActionUseDefault() Action { return Action{Kind: ActionKindUseDefault} }

// ActionDropFrame signals the host should skip emitting the current
// frame rather than show a corrupt one.
func ActionDropFrame() Action { return Action{Kind: ActionKindDropFrame} }

// ActionCreateTimeRoot offers a patch editor a one-click fix for a patch
// with no Time/Phase root: insert one of the given kind ("Infinite" or
// "Bounded").
func ActionCreateTimeRoot(kind string) Action {
	return Action{Kind: ActionKindCreateTimeRoot, TimeRootKind: kind}
}

// ActionAddAdapter records a unit-conversion lens block the compiler
// inserted automatically, along with the conversion it performs.
func ActionAddAdapter(blockKind, fromUnit, toUnit string) Action {
	return Action{Kind: ActionKindAddAdapter, AdapterBlockKind: blockKind, FromUnit: fromUnit, ToUnit: toUnit}
}

// ActionGoToTarget offers a patch editor a jump to the named block or
// port the diagnostic is about.
func ActionGoToTarget(name string) Action {
	return Action{Kind: ActionKindGoToTarget, TargetName: name}
}

// ActionInsertBlock offers a patch editor a one-click fix that inserts a
// block of the given kind.
func ActionInsertBlock(blockKind string) Action {
	return Action{Kind: ActionKindInsertBlock, BlockKind: blockKind}
}

// ActionRemoveBlock offers a patch editor a one-click fix that removes
// the named block instance.
func ActionRemoveBlock(targetName string) Action {
	return Action{Kind: ActionKindRemoveBlock, TargetName: targetName}
}

// ActionMuteDiagnostic offers a patch editor a one-click fix that mutes
// future diagnostics of the given code.
func ActionMuteDiagnostic(code Code) Action {
	return Action{Kind: ActionKindMuteDiagnostic, MutedCode: code}
}

// ActionOpenDocs offers a patch editor a link to further documentation
// about the diagnostic.
func ActionOpenDocs(url string) Action {
	return Action{Kind: ActionKindOpenDocs, DocsURL: url}
}

// Target identifies what a diagnostic is about: a block instance, a port,
// an edge, or the whole patch.
type Target struct {
	Kind        string // "block" | "port" | "edge" | "patch"
	BlockName   string
	PortName    string
	Description string
}

// Diagnostic is one structured entry on the bus.
type Diagnostic struct {
	ID       string
	Code     Code
	Severity Severity
	Message  string
	Target   Target
	Action   Action
}

// Hub is a publish/subscribe diagnostics bus. It embeds sim.HookableBase
// so any sim.Hook can subscribe to diagnostic lifecycle events the way a
// hook subscribes to a Port's message events.
type Hub struct {
	sim.HookableBase

	mu      sync.Mutex
	entries []Diagnostic
}

// New returns an empty Hub. The engine owns exactly one Hub; there is no
// package-level global diagnostics bus.
func New() *Hub {
	return &Hub{}
}

// Raise appends a new diagnostic and invokes HookPosRaised.
func (h *Hub) Raise(code Code, sev Severity, msg string, target Target, action Action) Diagnostic {
	d := Diagnostic{
		ID: xid.New().String(), Code: code, Severity: sev,
		Message: msg, Target: target, Action: action,
	}
	h.mu.Lock()
	h.entries = append(h.entries, d)
	h.mu.Unlock()

	h.InvokeHook(sim.HookCtx{Domain: h, Pos: HookPosRaised, Item: d})
	return d
}

// Clear removes a previously raised diagnostic by id and invokes
// HookPosCleared.
func (h *Hub) Clear(id string) {
	h.mu.Lock()
	var cleared *Diagnostic
	kept := h.entries[:0]
	for _, d := range h.entries {
		if d.ID == id {
			c := d
			cleared = &c
			continue
		}
		kept = append(kept, d)
	}
	h.entries = kept
	h.mu.Unlock()

	if cleared != nil {
		h.InvokeHook(sim.HookCtx{Domain: h, Pos: HookPosCleared, Item: *cleared})
	}
}

// Mute records a diagnostic as raised but invokes HookPosMuted instead of
// HookPosRaised, for diagnostics downgraded by engine configuration
// (e.g. a warning a host has explicitly silenced).
func (h *Hub) Mute(code Code, sev Severity, msg string, target Target, action Action) Diagnostic {
	d := Diagnostic{
		ID: xid.New().String(), Code: code, Severity: sev,
		Message: msg, Target: target, Action: action,
	}
	h.mu.Lock()
	h.entries = append(h.entries, d)
	h.mu.Unlock()

	h.InvokeHook(sim.HookCtx{Domain: h, Pos: HookPosMuted, Item: d})
	return d
}

// All returns a snapshot of every diagnostic currently on the bus.
func (h *Hub) All() []Diagnostic {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Diagnostic(nil), h.entries...)
}

// HasErrors reports whether any raised diagnostic is SeverityError, used
// by compile() to decide whether to return a usable CompiledProgram.
func (h *Hub) HasErrors() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, d := range h.entries {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s (%s %s)", d.Code, d.Severity, d.Message, d.Target.Kind, d.Target.Description)
}
