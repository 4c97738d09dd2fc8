// Package exec implements the Materializer/Executor: the fixed per-frame
// lifecycle (advance time, scalar eval sweep, event dispatch, field
// materialization, state write-back, continuity application, projection
// and render assembly, buffer release) and the BufferPool backing field
// materialization. Grounded on the teacher's core/emu.go
// RunInstructionGroup frame-step shape and core/core.go's single Tick
// method ("what happens this beat").
package exec

import (
	"os"

	"github.com/shirou/gopsutil/process"
)

// Buffer is one acquired, reusable field-materialization target: a flat
// slice of float64 lanes sized to an instance's element count times its
// payload stride.
type Buffer struct {
	Data  []float64
	owner int // bucket size this buffer was acquired from
}

// BufferPool hands out reusable []float64 buffers bucketed by size,
// avoiding a per-frame allocation for every field materialization. It
// mirrors the teacher's per-cycle reusable accumulator pattern
// (core/util.go's CycleAccumulator), generalized from one fixed-size
// register file to arbitrarily many size buckets.
type BufferPool struct {
	buckets     map[int][]*Buffer
	inUse       int
	peakInUse   int
	poisonDebug bool
}

// NewBufferPool returns an empty pool. Poisoning of released buffers is
// on when the package is built with the debug build tag (poisonBuildTag;
// see pool_debug.go/pool_release.go).
func NewBufferPool() *BufferPool {
	return &BufferPool{
		buckets:     make(map[int][]*Buffer),
		poisonDebug: poisonBuildTag,
	}
}

// Acquire returns a buffer with at least `size` lanes, reusing a
// previously released one from the matching bucket if available.
func (p *BufferPool) Acquire(size int) *Buffer {
	bucket := p.buckets[size]
	var buf *Buffer
	if n := len(bucket); n > 0 {
		buf = bucket[n-1]
		p.buckets[size] = bucket[:n-1]
	} else {
		buf = &Buffer{Data: make([]float64, size), owner: size}
	}
	p.inUse++
	if p.inUse > p.peakInUse {
		p.peakInUse = p.inUse
	}
	return buf
}

// Release returns a buffer to its bucket for reuse next frame. In debug
// builds its contents are poisoned first so a use-after-release bug
// surfaces as garbage data instead of silently reading stale state.
func (p *BufferPool) Release(buf *Buffer) {
	if p.poisonDebug {
		poisonBuffer(buf.Data)
	}
	p.buckets[buf.owner] = append(p.buckets[buf.owner], buf)
	p.inUse--
}

// PeakOccupancy reports the pool's high-water mark of simultaneously
// acquired buffers, alongside the process's resident set size -- the
// spec's "pool optionally tracks peak occupancy for diagnostics",
// extended with RSS the way the teacher's indirect gopsutil dependency
// is used by akita's monitoring to report process memory pressure.
type PeakOccupancy struct {
	BuffersInUse int
	ProcessRSSKB uint64
}

// PeakOccupancyReport samples the current peak and process RSS. RSS
// sampling failures are non-fatal; the field is simply left at zero.
func (p *BufferPool) PeakOccupancyReport() PeakOccupancy {
	report := PeakOccupancy{BuffersInUse: p.peakInUse}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
			report.ProcessRSSKB = mem.RSS / 1024
		}
	}
	return report
}
