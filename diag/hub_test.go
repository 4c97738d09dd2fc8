package diag

import (
	"testing"

	"github.com/sarchlab/akita/v4/sim"
)

type recordingHook struct {
	positions []*sim.HookPos
}

func (r *recordingHook) Func(ctx sim.HookCtx) {
	r.positions = append(r.positions, ctx.Pos)
}

func TestRaiseInvokesHookPosRaised(t *testing.T) {
	h := New()
	rec := &recordingHook{}
	h.AcceptHook(rec)

	h.Raise("E_TEST", SeverityError, "boom", Target{Kind: "patch"}, ActionAbortCompile())

	if len(rec.positions) != 1 || rec.positions[0] != HookPosRaised {
		t.Fatalf("expected exactly one HookPosRaised invocation, got %v", rec.positions)
	}
}

func TestHasErrorsReflectsSeverity(t *testing.T) {
	h := New()
	if h.HasErrors() {
		t.Fatal("empty hub should report no errors")
	}
	h.Raise("W_TEST", SeverityWarning, "warn", Target{}, ActionNone())
	if h.HasErrors() {
		t.Fatal("warning-only hub should report no errors")
	}
	h.Raise("E_TEST", SeverityError, "err", Target{}, ActionAbortCompile())
	if !h.HasErrors() {
		t.Fatal("expected HasErrors to be true after raising an error")
	}
}

func TestClearRemovesDiagnosticAndInvokesHookPosCleared(t *testing.T) {
	h := New()
	rec := &recordingHook{}
	h.AcceptHook(rec)

	d := h.Raise("I_TEST", SeverityInfo, "info", Target{}, ActionNone())
	h.Clear(d.ID)

	if len(h.All()) != 0 {
		t.Fatalf("expected diagnostic to be cleared, got %v", h.All())
	}
	if len(rec.positions) != 2 || rec.positions[1] != HookPosCleared {
		t.Fatalf("expected raised then cleared hook invocations, got %v", rec.positions)
	}
}
