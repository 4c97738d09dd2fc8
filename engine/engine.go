// Package engine is the root object: it owns the block registry, adapter
// catalog, continuity store, compile cache, and current executor (which
// holds the buffer pool) as explicit fields with explicit lifetimes;
// diagnostics come back on each compile result. This follows
// SPEC_FULL.md §9's redesign note against package-level singletons. Grounded on config/config.go's
// DeviceBuilder/device ownership model: one root object holds every
// sub-component's state and is built via a fluent builder.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flowframe/engine/compile"
	"github.com/flowframe/engine/continuity"
	"github.com/flowframe/engine/exec"
	"github.com/flowframe/engine/registry"
	"github.com/flowframe/engine/render"
	"github.com/sarchlab/akita/v4/sim"
)

// LevelFrame and LevelDiag are custom slog levels, mirroring the
// teacher's core/util.go custom LevelTrace/LevelWaveform: per-frame
// tracing and diagnostics-as-logs sit below/above the stdlib levels so a
// host can dial verbosity without a third-party logging façade.
const (
	LevelFrame = slog.Level(-8)
	LevelDiag  = slog.Level(6)
)

// Engine owns every piece of long-lived state a running animation needs:
// the block registry (process-wide block definitions), the adapter
// catalog, the compile cache, the continuity store (survives recompiles),
// and the currently compiled program's executor. It holds no
// package-level globals; a host creates exactly one Engine per running
// graph.
type Engine struct {
	registry *registry.Registry
	adapters *registry.AdapterCatalog
	cache    *compile.Cache
	store    *continuity.Store
	cfg      Config
	log      *slog.Logger

	current   compile.CompiledProgram
	executor  *exec.Executor
	frames    *render.FrameBuilder
	lastFrame render.RenderFrameIR
}

// New constructs an Engine with the built-in block library registered
// and an open compile cache at cfg.CachePath (empty path means
// in-memory only).
func New(cfg Config) (*Engine, error) {
	reg := registry.New()
	adapters := registry.NewAdapterCatalog()
	registry.RegisterBuiltins(reg, adapters)

	cache, err := compile.OpenCache(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	return &Engine{
		registry: reg,
		adapters: adapters,
		cache:    cache,
		store:    continuity.NewStore(),
		cfg:      cfg,
		log:      slog.Default(),
		frames:   render.NewFrameBuilder(),
	}, nil
}

// Close releases the engine's compile cache handle.
func (e *Engine) Close() error {
	return e.cache.Close()
}

// Registry exposes the block registry for a host (editor, loader) that
// needs `getDefinition`/`allCategories` per spec §6's external interface.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Recompile compiles patch, consulting (and populating) the content-hash
// keyed compile cache, and -- if compilation succeeds -- swaps in a fresh
// Executor built from the new Program. The continuity Store is NOT
// recreated: it is handed to the new Executor unchanged, so gauge/slew
// state for targets whose StableTargetID survives the edit carries over,
// per spec §3.5/§4.7. The transition is atomic from the caller's
// viewpoint: Advance always sees either the old or the new program, never
// a half-swapped one, since this method only ever replaces e.executor in
// one assignment after compilation fully completes.
func (e *Engine) Recompile(patch compile.Patch) compile.CompiledProgram {
	hash := compile.ContentHash(patch)

	if cached, ok, err := e.cache.Get(hash); err == nil && ok {
		e.log.Debug("compile cache hit", "hash", hash)
		e.adopt(cached)
		return cached
	}

	result := compile.Compile(patch, e.registry, e.adapters)
	if result.OK {
		if err := e.cache.Put(hash, result); err != nil {
			e.log.Warn("failed to persist compile cache entry", "err", err)
		}
		e.adopt(result)
	} else {
		e.log.Log(context.Background(), LevelDiag, "compile failed", "diagnostics", len(result.Diagnostics))
	}
	return result
}

func (e *Engine) adopt(cp compile.CompiledProgram) {
	e.current = cp
	e.executor = exec.NewExecutor(cp.Program, e.cfg.ProductionMode).
		WithContinuity(e.store, e.cfg.continuityKnobs())
}

// Advance runs exactly one frame on the currently compiled program and
// returns the resulting RenderFrameIR. Calling Advance before any
// successful Recompile is a programming error (there is nothing to run)
// and returns an error rather than panicking, so a host driving a
// render-loop callback can degrade gracefully.
func (e *Engine) Advance(dtMs float64) (render.RenderFrameIR, error) {
	if e.executor == nil {
		return render.RenderFrameIR{}, fmt.Errorf("engine: Advance called with no compiled program")
	}
	if err := e.executor.Advance(sim.VTimeInSec(dtMs/1000), e.frames); err != nil {
		return render.RenderFrameIR{}, err
	}
	e.lastFrame = e.frames.Frame()
	return e.lastFrame, nil
}

// LastFrame returns the most recently produced RenderFrameIR, for
// introspection (e.g. engine/devserver's /frame endpoint) without forcing
// another Advance.
func (e *Engine) LastFrame() render.RenderFrameIR {
	return e.lastFrame
}

// CurrentProgram returns the most recently adopted CompiledProgram.
func (e *Engine) CurrentProgram() compile.CompiledProgram {
	return e.current
}

// QueueContinuityPulse forwards a one-shot test/edit pulse to the
// continuity store, per spec §4.7 step 5.
func (e *Engine) QueueContinuityPulse(target continuity.StableTargetID, magnitude float64) {
	e.store.QueuePulse(target, magnitude)
}

// PoolOccupancy reports the current executor's buffer pool high-water
// mark, surfaced for a host's diagnostics surface (e.g.
// engine/devserver's /pool endpoint) so operators can see whether a
// patch's per-frame field materialization is growing unbounded. Returns
// the zero value before the first successful Recompile.
func (e *Engine) PoolOccupancy() exec.PeakOccupancy {
	if e.executor == nil {
		return exec.PeakOccupancy{}
	}
	return e.executor.PoolOccupancy()
}
