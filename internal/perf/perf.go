// Package perf collects opt-in timing samples and counters and writes periodic
// summaries to the log. Collection is off unless MIKOSHI_PROFILE is set.
package perf

import (
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nickheyer/Mikoshi/internal/logging"
)

const (
	defaultSampleWindow = 256
	defaultIntervalMs   = 5000
)

type stat struct {
	mu      sync.Mutex
	count   int64
	total   time.Duration
	min     time.Duration
	max     time.Duration
	samples []time.Duration
	idx     int
	full    bool
}

type statSnapshot struct {
	name  string
	count int64
	avg   time.Duration
	min   time.Duration
	max   time.Duration
	p95   time.Duration
}

type counterSnapshot struct {
	name  string
	value int64
}

var (
	enabled     atomic.Bool
	logInterval atomic.Int64
	lastLog     atomic.Int64

	mu       sync.Mutex
	stats    = map[string]*stat{}
	counters = map[string]*atomic.Int64{}
)

func init() {
	enabled.Store(isEnabled())
	logInterval.Store(int64(defaultLogInterval()))
}

// Enabled reports whether profiling is enabled.
func Enabled() bool {
	return enabled.Load()
}

// Time returns a function that records elapsed time when invoked.
func Time(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() {
		Record(name, time.Since(start))
	}
}

// Record captures a duration sample for the given name.
func Record(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	s := lookupStat(name)
	s.mu.Lock()
	s.count++
	s.total += d
	if s.count == 1 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	if s.samples == nil {
		s.samples = make([]time.Duration, defaultSampleWindow)
	}
	s.samples[s.idx] = d
	s.idx++
	if s.idx >= len(s.samples) {
		s.idx = 0
		s.full = true
	}
	s.mu.Unlock()

	maybeLog()
}

// Count increments a named counter by delta.
func Count(name string, delta int64) {
	if !enabled.Load() {
		return
	}
	lookupCounter(name).Add(delta)
	maybeLog()
}

func lookupStat(name string) *stat {
	mu.Lock()
	defer mu.Unlock()
	s, ok := stats[name]
	if !ok {
		s = &stat{}
		stats[name] = s
	}
	return s
}

func lookupCounter(name string) *atomic.Int64 {
	mu.Lock()
	defer mu.Unlock()
	c, ok := counters[name]
	if !ok {
		c = &atomic.Int64{}
		counters[name] = c
	}
	return c
}

func maybeLog() {
	interval := time.Duration(logInterval.Load())
	if interval <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < interval {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	emit("PERF")
}

// Flush logs a summary of current stats and counters immediately.
func Flush(reason string) {
	if !enabled.Load() {
		return
	}
	prefix := "PERF SUMMARY"
	if strings.TrimSpace(reason) != "" {
		prefix = fmt.Sprintf("PERF SUMMARY %s", reason)
	}
	emit(prefix)
}

func emit(prefix string) {
	ss, cs := snapshotAndReset()
	for _, s := range ss {
		logging.Info(
			"%s %s count=%d avg=%s p95=%s min=%s max=%s",
			prefix, s.name, s.count, s.avg, s.p95, s.min, s.max,
		)
	}
	for _, c := range cs {
		logging.Info("%s %s count=%d", prefix, c.name, c.value)
	}
}

func snapshotAndReset() ([]statSnapshot, []counterSnapshot) {
	mu.Lock()
	statNames := make([]string, 0, len(stats))
	for name := range stats {
		statNames = append(statNames, name)
	}
	counterNames := make([]string, 0, len(counters))
	for name := range counters {
		counterNames = append(counterNames, name)
	}
	mu.Unlock()
	slices.Sort(statNames)
	slices.Sort(counterNames)

	var outStats []statSnapshot
	for _, name := range statNames {
		s := lookupStat(name)
		s.mu.Lock()
		if s.count == 0 {
			s.mu.Unlock()
			continue
		}
		snap := statSnapshot{
			name:  name,
			count: s.count,
			avg:   time.Duration(int64(s.total) / s.count),
			min:   s.min,
			max:   s.max,
			p95:   computeP95(s.samples, s.idx, s.full),
		}
		s.count, s.total, s.min, s.max = 0, 0, 0, 0
		s.idx, s.full = 0, false
		s.mu.Unlock()
		outStats = append(outStats, snap)
	}

	var outCounters []counterSnapshot
	for _, name := range counterNames {
		if v := lookupCounter(name).Swap(0); v != 0 {
			outCounters = append(outCounters, counterSnapshot{name: name, value: v})
		}
	}
	return outStats, outCounters
}

func computeP95(samples []time.Duration, idx int, full bool) time.Duration {
	n := idx
	if full {
		n = len(samples)
	}
	if n == 0 {
		return 0
	}
	window := slices.Clone(samples[:n])
	slices.Sort(window)
	pos := int(math.Ceil(0.95*float64(n))) - 1
	return window[min(max(pos, 0), n-1)]
}

func isEnabled() bool {
	raw := strings.TrimSpace(os.Getenv("MIKOSHI_PROFILE"))
	if raw == "" {
		return false
	}
	switch strings.ToLower(raw) {
	case "0", "false", "no":
		return false
	default:
		return true
	}
}

func defaultLogInterval() time.Duration {
	interval := defaultIntervalMs
	if raw := strings.TrimSpace(os.Getenv("MIKOSHI_PROFILE_INTERVAL_MS")); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil && val > 0 {
			interval = val
		}
	}
	return time.Duration(interval) * time.Millisecond
}
