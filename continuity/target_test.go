package continuity

import (
	"testing"

	"github.com/rs/xid"
)

func TestStoreAppliesGaugeDecayTowardBase(t *testing.T) {
	s := NewStore()
	knobs := DefaultKnobs()

	base := []float64{0.5}
	ts := s.Target("pos.output@default", SemanticPosition)
	ts.GaugeBuffer = []float64{1.0} // large offset from base, as if mid-transition
	ts.BaseBuffer = []float64{0.5}
	ts.SlewBuffer = []float64{1.5}
	ts.Count = 1

	for i := 0; i < 400; i++ {
		s.Apply(ts, base, knobs, 16)
	}

	got := ts.SlewBuffer[0]
	if got < 0.45 || got > 0.6 {
		t.Fatalf("expected decayed value to converge near base 0.5, got %v", got)
	}
}

func TestSlewLimitsLargeJumpPerFrame(t *testing.T) {
	s := NewStore()
	knobs := DefaultKnobs()

	ts := s.Target("radius.output@default", SemanticRadius)
	ts.BaseBuffer = []float64{0}
	ts.SlewBuffer = []float64{0}
	ts.GaugeBuffer = []float64{0}
	ts.Count = 1

	effective := s.Apply(ts, []float64{100}, knobs, 16)

	cap := slewCapPerMs[SemanticRadius] * 16
	if effective[0] > cap+1e-9 {
		t.Fatalf("expected first-frame move capped at %v, got %v", cap, effective[0])
	}
}

func TestRemapPreservesGaugeByStableID(t *testing.T) {
	s := NewStore()
	ts := s.Target("pos.output@default", SemanticPosition)
	ids := []xid.ID{xid.New(), xid.New(), xid.New()}
	ts.StableIDs = ids
	ts.GaugeBuffer = []float64{1, 2, 3}
	ts.SlewBuffer = []float64{1, 2, 3}
	ts.BaseBuffer = []float64{0, 0, 0}
	ts.Count = 3

	// Recompile drops element "b" (index 1) and keeps "a","c" in the same
	// relative order: expect gauge for "a" and "c" to survive, in their
	// new slots.
	newIDs := []xid.ID{ids[0], ids[2]}
	ts.Remap(newIDs, []float64{0, 0})

	if ts.Count != 2 {
		t.Fatalf("expected remapped count 2, got %d", ts.Count)
	}
	if ts.GaugeBuffer[0] != 1 || ts.GaugeBuffer[1] != 3 {
		t.Fatalf("expected gauge [1,3] preserved by stable id, got %v", ts.GaugeBuffer)
	}
}

func TestPulseAddsToGaugeOnce(t *testing.T) {
	s := NewStore()
	ts := s.Target("opacity.output@default", SemanticOpacity)
	ts.BaseBuffer = []float64{0}
	ts.SlewBuffer = []float64{0}
	ts.GaugeBuffer = []float64{0}
	ts.Count = 1

	s.QueuePulse(ts.ID, 0.5)
	s.Apply(ts, []float64{0}, DefaultKnobs(), 16)
	if ts.GaugeBuffer[0] != 0.5 {
		t.Fatalf("expected pulse to add 0.5 to gauge once, got %v", ts.GaugeBuffer[0])
	}

	s.Apply(ts, []float64{0}, DefaultKnobs(), 16)
	if ts.GaugeBuffer[0] != 0.5 {
		t.Fatalf("expected pulse not reapplied on second frame, got %v", ts.GaugeBuffer[0])
	}
}
