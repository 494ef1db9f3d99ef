package debug

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler collects named timing statistics.
type Profiler struct {
	mu           sync.RWMutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
	maxSamples   int
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name      string
	Count     uint64
	Total     time.Duration
	Min       time.Duration
	Max       time.Duration
	Last      time.Duration
	samples   []time.Duration
	sampleIdx int
}

// NewProfiler creates a profiler keeping the last maxSamples timings per
// section for percentiles.
func NewProfiler(maxSamples int) *Profiler {
	p := &Profiler{
		measurements: make(map[string]*Measurement),
		maxSamples:   max(1, maxSamples),
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// IsEnabled returns whether profiling is enabled.
func (p *Profiler) IsEnabled() bool {
	return p.enabled.Load()
}

// Start begins timing a named section and returns the function that ends it.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Time measures the execution time of fn.
func (p *Profiler) Time(name string, fn func()) {
	stop := p.Start(name)
	defer stop()
	fn()
}

// Record stores one timing for name.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	if !p.enabled.Load() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		m = &Measurement{
			Name:    name,
			Min:     elapsed,
			Max:     elapsed,
			samples: make([]time.Duration, 0, p.maxSamples),
		}
		p.measurements[name] = m
	}

	m.Count++
	m.Total += elapsed
	m.Last = elapsed
	m.Min = min(m.Min, elapsed)
	m.Max = max(m.Max, elapsed)

	if len(m.samples) < cap(m.samples) {
		m.samples = append(m.samples, elapsed)
	} else {
		m.samples[m.sampleIdx] = elapsed
	}
	m.sampleIdx = (m.sampleIdx + 1) % cap(m.samples)
}

// Measurement returns a copy of the statistics for name.
func (p *Profiler) Measurement(name string) (Measurement, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, ok := p.measurements[name]
	if !ok {
		return Measurement{}, false
	}
	out := *m
	out.samples = slices.Clone(m.samples)
	return out, true
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report renders every section sorted by name.
func (p *Profiler) Report() string {
	p.mu.RLock()
	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	p.mu.RUnlock()

	if len(names) == 0 {
		return "No measurements recorded"
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		m, _ := p.Measurement(name)
		fmt.Fprintf(&sb, "%s: count=%d avg=%v min=%v max=%v p99=%v\n",
			name, m.Count, m.Average(), m.Min, m.Max, m.Percentile(99))
	}
	return sb.String()
}

// Average returns the mean time.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// Percentile returns the p-th percentile (0-100) of the retained timings.
func (m Measurement) Percentile(p float64) time.Duration {
	if len(m.samples) == 0 {
		return 0
	}
	sorted := slices.Clone(m.samples)
	slices.Sort(sorted)
	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[max(0, min(idx, len(sorted)-1))]
}

// BlockSection is the section name BlockProfiler records under.
const BlockSection = "process"

// BlockProfiler times audio blocks against their real-time budget.
type BlockProfiler struct {
	*Profiler
	sampleRate float64
	frames     atomic.Uint64
}

// NewBlockProfiler creates a profiler for a stream at sampleRate.
func NewBlockProfiler(sampleRate float64) *BlockProfiler {
	return &BlockProfiler{
		Profiler:   NewProfiler(1024),
		sampleRate: sampleRate,
	}
}

// Block times one call of fn that processes frames samples.
func (b *BlockProfiler) Block(frames int, fn func()) {
	b.frames.Add(uint64(frames))
	b.Time(BlockSection, fn)
}

// Load returns processing time as a fraction of the audio duration
// processed so far. Values at or above 1 cannot keep up in real time.
func (b *BlockProfiler) Load() float64 {
	m, ok := b.Measurement(BlockSection)
	frames := b.frames.Load()
	if !ok || frames == 0 || b.sampleRate <= 0 {
		return 0
	}
	audio := float64(frames) / b.sampleRate * float64(time.Second)
	return float64(m.Total) / audio
}
