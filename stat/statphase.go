// Package stat implements the hierarchical StatPhase tracker of
// spec.md §4.M: a stack of named phases, each recording wall time and
// a process-wide memory delta, exportable as JSON for post-processing.
package stat

import (
	"encoding/json"
	"runtime"
	"sync"
	"time"
)

// Error is the wrapper type for all errors specific to this package.
type Error string

func (e Error) Error() string { return "stat: " + string(e) }

// statEntry is one user-logged key/value pair attached to a phase.
type statEntry struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// Phase is one node of the phase tree. The zero value is not usable;
// create phases with Begin.
type Phase struct {
	title string

	timeStart time.Time
	timeEnd   time.Time
	timePaused time.Duration

	memOff   uint64
	memPeak  uint64
	memFinal uint64

	stats []statEntry
	sub   []*Phase

	parent        *Phase
	suppressCount int
	pauseStart    time.Time
}

// global phase stack state, guarded by mu.
var (
	mu      sync.Mutex
	current *Phase
	root    *Phase
)

// Begin pushes a new phase named title as a child of the current phase
// (or as the tree root if none is active) and returns it.
func Begin(title string) *Phase {
	mu.Lock()
	defer mu.Unlock()

	p := &Phase{
		title:     title,
		timeStart: monotonicNow(),
		memOff:    sampleMemInUse(),
		parent:    current,
	}
	p.memPeak = p.memOff
	if current != nil {
		current.sub = append(current.sub, p)
	} else {
		root = p
	}
	current = p
	return p
}

// End pops this phase, recording its final wall time and memory delta.
// Only the innermost currently-active phase may legally be ended;
// ending any other phase is a caller bug (mirrors StatPhase's
// destructor-based RAII discipline, which this module's plain
// Begin/End pair asks callers to honor explicitly instead).
func (p *Phase) End() {
	mu.Lock()
	defer mu.Unlock()

	if current != p {
		panic(Error("End called out of order: not the innermost active phase"))
	}
	p.timeEnd = monotonicNow()
	p.sampleMemPeak()
	p.memFinal = sampleMemInUse()
	current = p.parent
}

// Log attaches a key/value pair to this phase. It wraps its bookkeeping
// (appending to p.stats) in Suppress/Unsuppress, so the time it takes is
// counted as paused time; the memory that append allocates is not
// excluded and still shows in the phase's memory figures.
func (p *Phase) Log(key string, value interface{}) {
	p.Suppress()
	defer p.Unsuppress()

	mu.Lock()
	defer mu.Unlock()
	p.stats = append(p.stats, statEntry{Key: key, Value: value})
}

// Suppress pauses wall-time accounting for this phase: the time from the
// first outstanding Suppress to its matching Unsuppress is added to
// timePaused and left out of timeRun. Memory samples are not paused.
// Refcounted: nested Suppress/Unsuppress pairs are legal, and the pause
// only ends once every outstanding Suppress call has been matched by
// Unsuppress.
func (p *Phase) Suppress() {
	mu.Lock()
	defer mu.Unlock()
	if p.suppressCount == 0 {
		p.pauseStart = monotonicNow()
	}
	p.suppressCount++
}

// Unsuppress resumes wall-time accounting suspended by a matching
// Suppress call.
func (p *Phase) Unsuppress() {
	mu.Lock()
	defer mu.Unlock()
	if p.suppressCount == 0 {
		panic(Error("Unsuppress called without a matching Suppress"))
	}
	p.suppressCount--
	if p.suppressCount == 0 {
		p.timePaused += monotonicNow().Sub(p.pauseStart)
	}
}

func (p *Phase) sampleMemPeak() {
	if m := sampleMemInUse(); m > p.memPeak {
		p.memPeak = m
	}
}

// monotonicNow and sampleMemInUse are split out so tests can observe
// the exact fields they feed without depending on real wall-clock or
// heap behavior turning out a particular way on a given run.
func monotonicNow() time.Time { return time.Now() }

func sampleMemInUse() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapInuse
}

// jsonPhase mirrors spec.md §4.M's StatPhase JSON shape exactly:
// title, timeStart, timeEnd, timeDelta, timePaused, timeRun, memOff,
// memPeak, memFinal, sub, stats.
type jsonPhase struct {
	Title      string      `json:"title"`
	TimeStart  int64       `json:"timeStart"`
	TimeEnd    int64       `json:"timeEnd"`
	TimeDelta  int64       `json:"timeDelta"`
	TimePaused int64       `json:"timePaused"`
	TimeRun    int64       `json:"timeRun"`
	MemOff     uint64      `json:"memOff"`
	MemPeak    uint64      `json:"memPeak"`
	MemFinal   uint64      `json:"memFinal"`
	Sub        []jsonPhase `json:"sub"`
	Stats      []statEntry `json:"stats"`
}

func (p *Phase) toJSON() jsonPhase {
	delta := p.timeEnd.Sub(p.timeStart)
	sub := make([]jsonPhase, len(p.sub))
	for i, c := range p.sub {
		sub[i] = c.toJSON()
	}
	return jsonPhase{
		Title:      p.title,
		TimeStart:  p.timeStart.UnixMilli(),
		TimeEnd:    p.timeEnd.UnixMilli(),
		TimeDelta:  delta.Milliseconds(),
		TimePaused: p.timePaused.Milliseconds(),
		TimeRun:    (delta - p.timePaused).Milliseconds(),
		MemOff:     p.memOff,
		MemPeak:    p.memPeak,
		MemFinal:   p.memFinal,
		Sub:        sub,
		Stats:      p.stats,
	}
}

// JSON serialises the phase tree rooted at p to the shape spec.md
// §4.M names.
func (p *Phase) JSON() ([]byte, error) {
	return json.Marshal(p.toJSON())
}

// Root returns the outermost phase currently on the stack, or nil if
// none has been started.
func Root() *Phase {
	mu.Lock()
	defer mu.Unlock()
	return root
}
