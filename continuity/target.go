// Package continuity implements the Continuity System: per-target
// gauge/slew state preserved across graph edits (hot-swap), so a running
// animation adapts smoothly to topology changes instead of snapping.
// Grounded on core/emu.go's ReservationState/RefCountRuntime pattern of
// deep-copied per-cycle runtime state keyed by string, generalized here
// to per-target keyed-by-StableTargetID gauge/slew buffers, and on the
// explicit capture-before-reallocate invariant in spec §4.7.
package continuity

import (
	"math"

	"github.com/rs/xid"
)

// StableTargetID keys a TargetState so that a recompile produces the same
// target key for conceptually the same output (the position output of
// block B on instance I), the way ReservationState keys runtime state by
// a string derived from operand role.
type StableTargetID string

// SemanticTag classifies what kind of value a target carries, selecting
// its canonical decay/slew tau.
type SemanticTag int

const (
	SemanticOther SemanticTag = iota
	SemanticPosition
	SemanticColor
	SemanticRadius
	SemanticOpacity
)

// canonicalTauMs holds each semantic's canonical tau in milliseconds, per
// spec §4.7.
var canonicalTauMs = map[SemanticTag]float64{
	SemanticPosition: 360,
	SemanticColor:    150,
	SemanticRadius:   120,
	SemanticOpacity:  80,
	SemanticOther:    150,
}

// slewCapPerMs bounds the maximum change-per-millisecond the effective
// value may move for a given semantic, so an edit never produces a visible
// jump larger than the semantic's cap in one frame.
var slewCapPerMs = map[SemanticTag]float64{
	SemanticPosition: 0.004,
	SemanticColor:    0.01,
	SemanticRadius:   0.01,
	SemanticOpacity:  0.02,
	SemanticOther:    0.01,
}

// TargetState is the per-target continuity record: base, gauge, and slew
// buffers plus per-element stable ids when IdentityMode is Stable.
type TargetState struct {
	ID          StableTargetID
	Semantic    SemanticTag
	Count       int
	StableIDs   []xid.ID // nil when identity mode is None
	BaseBuffer  []float64
	GaugeBuffer []float64
	SlewBuffer  []float64

	elapsedMs float64 // t for the decay() curve, advances by frame dt
}

// Pulse is a one-shot test/edit pulse applied to a target's gauge on the
// frame it arrives.
type Pulse struct {
	Target    StableTargetID
	Magnitude float64
	applied   bool
}

// Knobs are the three global continuity tuning parameters, per spec §4.7.
type Knobs struct {
	DecayExponent float64 // 0.3..2
	TauMultiplier float64 // 0..3
	BaseTauMs     float64 // 50..500
}

// DefaultKnobs returns the spec's suggested midpoint defaults.
func DefaultKnobs() Knobs {
	return Knobs{DecayExponent: 1.0, TauMultiplier: 1.0, BaseTauMs: 150}
}

func (k Knobs) effectiveTau(semantic SemanticTag) float64 {
	canonical := canonicalTauMs[semantic]
	return canonical * (k.BaseTauMs / 150) * k.TauMultiplier
}

// decay evaluates the gauge decay curve at elapsed time t (ms) scaled by
// tau, raised to decayExponent. t=0 -> 1 (full gauge contribution); as t
// grows the contribution falls toward 0.
func decay(t, tau, exponent float64) float64 {
	if tau <= 0 {
		return 0
	}
	x := t / tau
	v := 1 / (1 + math.Pow(x, exponent))
	return v
}

// Store owns every TargetState for one running Engine, keyed by
// StableTargetID. It is the single place per-frame continuity application
// happens; there is no package-level global, per SPEC_FULL.md §9's
// explicit redesign note on singletons.
type Store struct {
	targets map[StableTargetID]*TargetState
	pulses  []*Pulse
}

// NewStore returns an empty continuity Store.
func NewStore() *Store {
	return &Store{targets: make(map[StableTargetID]*TargetState)}
}

// QueuePulse registers a one-shot pulse to be applied to target on the
// next frame that reaches it.
func (s *Store) QueuePulse(target StableTargetID, magnitude float64) {
	s.pulses = append(s.pulses, &Pulse{Target: target, Magnitude: magnitude})
}

// snapshot is the value returned by captureBeforeReallocate: the
// pre-reallocation slew buffer plus the count it was captured at. Its
// existence as a named, handed-out value (rather than a raw slice the
// caller might reuse in place) is what makes the capture-before-allocate
// ordering structurally hard to get backwards, per spec §4.7's invariant.
type snapshot struct {
	slew  []float64
	count int
}

// captureBeforeReallocate returns a copy of ts's current slew buffer and
// count, then resizes ts's buffers to newCount. Apart from Remap, which
// rebuilds the buffers from a new stable-id list, it is the only path in
// this package that replaces ts's buffers or mutates ts.Count.
func captureBeforeReallocate(ts *TargetState, newCount int) snapshot {
	snap := snapshot{
		slew:  append([]float64(nil), ts.SlewBuffer...),
		count: ts.Count,
	}
	if newCount != ts.Count {
		ts.BaseBuffer = resize(ts.BaseBuffer, newCount)
		ts.GaugeBuffer = resize(ts.GaugeBuffer, newCount)
		ts.SlewBuffer = resize(ts.SlewBuffer, newCount)
		ts.Count = newCount
	}
	return snap
}

func resize(buf []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, buf)
	return out
}

// Target returns the TargetState for id, creating a fresh one (all zero
// buffers) if this is the first time id has been seen.
func (s *Store) Target(id StableTargetID, semantic SemanticTag) *TargetState {
	ts, ok := s.targets[id]
	if !ok {
		ts = &TargetState{ID: id, Semantic: semantic}
		s.targets[id] = ts
	}
	return ts
}

// Remap reconciles ts against a fresh set of stable ids produced by a
// recompile: elements whose stable id already exists in ts keep their
// gauge/slew values (by finding the old index for that id); elements with
// a new id initialize from base (zero contribution); elements whose old
// id is no longer present are dropped. It is a no-op when newIDs is nil
// (identity mode None): the caller should simply reinitialize via
// captureBeforeReallocate(ts, newCount) without calling Remap.
func (ts *TargetState) Remap(newIDs []xid.ID, newBase []float64) {
	if newIDs == nil {
		return
	}
	oldIndexByID := make(map[xid.ID]int, len(ts.StableIDs))
	for i, id := range ts.StableIDs {
		oldIndexByID[id] = i
	}

	newCount := len(newIDs)
	newGauge := make([]float64, newCount)
	newSlew := make([]float64, newCount)

	for i, id := range newIDs {
		if oldIdx, ok := oldIndexByID[id]; ok && oldIdx < len(ts.GaugeBuffer) {
			newGauge[i] = ts.GaugeBuffer[oldIdx]
			if oldIdx < len(ts.SlewBuffer) {
				newSlew[i] = ts.SlewBuffer[oldIdx]
			}
		}
		// else: new element, gauge/slew start at zero (reinitialize from base).
	}

	ts.StableIDs = append([]xid.ID(nil), newIDs...)
	ts.BaseBuffer = append([]float64(nil), newBase...)
	ts.GaugeBuffer = newGauge
	ts.SlewBuffer = newSlew
	ts.Count = newCount
}

// Apply runs one frame of the continuity algorithm for ts (spec §4.7
// steps 1-5) and returns the effective buffer the render assembler should
// consume. newBase is the freshly materialized (pre-continuity) field
// values for this frame; newCount is its length.
func (s *Store) Apply(ts *TargetState, newBase []float64, knobs Knobs, dtMs float64) []float64 {
	newCount := len(newBase)
	snap := captureBeforeReallocate(ts, newCount)
	copy(ts.BaseBuffer, newBase)

	ts.elapsedMs += dtMs
	tau := knobs.effectiveTau(ts.Semantic)
	d := decay(ts.elapsedMs, tau, knobs.DecayExponent)

	effective := make([]float64, newCount)
	cap := slewCapPerMs[ts.Semantic] * dtMs
	for i := 0; i < newCount; i++ {
		target := ts.BaseBuffer[i] + ts.GaugeBuffer[i]*d
		prev := target
		if i < snap.count && i < len(snap.slew) {
			prev = snap.slew[i]
		}
		effective[i] = slewTowards(prev, target, cap)
		ts.SlewBuffer[i] = effective[i]
	}

	s.applyPendingPulses(ts)
	return effective
}

// slewTowards moves prev toward target by at most capMagnitude.
func slewTowards(prev, target, capMagnitude float64) float64 {
	delta := target - prev
	if capMagnitude <= 0 {
		return target
	}
	if delta > capMagnitude {
		delta = capMagnitude
	} else if delta < -capMagnitude {
		delta = -capMagnitude
	}
	return prev + delta
}

func (s *Store) applyPendingPulses(ts *TargetState) {
	remaining := s.pulses[:0]
	for _, p := range s.pulses {
		if p.applied {
			continue
		}
		if p.Target == ts.ID {
			for i := range ts.GaugeBuffer {
				ts.GaugeBuffer[i] += p.Magnitude
			}
			p.applied = true
			ts.elapsedMs = 0
			continue
		}
		remaining = append(remaining, p)
	}
	s.pulses = remaining
}

// Forget drops a target's state entirely, used when an output it tracked
// is removed from the compiled program.
func (s *Store) Forget(id StableTargetID) {
	delete(s.targets, id)
}
