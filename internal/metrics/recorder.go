// Package metrics summarizes the latency of repeated logical calls.
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram range: 1 microsecond to 1 hour, 3 significant figures.
const (
	histogramMin     = 1
	histogramMax     = 3_600_000_000
	histogramSigFigs = 3
)

// Stats is a latency summary for a set of calls.
type Stats struct {
	Count   int64
	Success int64
	Failed  int64
	Bytes   int64
	Min     time.Duration
	Max     time.Duration
	Mean    time.Duration
	P50     time.Duration
	P90     time.Duration
	P95     time.Duration
	P99     time.Duration
}

type series struct {
	hist    *hdrhistogram.Histogram
	success int64
	failed  int64
	bytes   int64
}

func newSeries() *series {
	return &series{hist: hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs)}
}

func (s *series) record(micros int64, success bool, bytes int64) {
	s.hist.RecordValue(micros)
	s.bytes += bytes
	if success {
		s.success++
	} else {
		s.failed++
	}
}

func (s *series) stats() Stats {
	us := func(v int64) time.Duration { return time.Duration(v) * time.Microsecond }
	return Stats{
		Count:   s.hist.TotalCount(),
		Success: s.success,
		Failed:  s.failed,
		Bytes:   s.bytes,
		Min:     us(s.hist.Min()),
		Max:     us(s.hist.Max()),
		Mean:    us(int64(s.hist.Mean())),
		P50:     us(s.hist.ValueAtQuantile(50)),
		P90:     us(s.hist.ValueAtQuantile(90)),
		P95:     us(s.hist.ValueAtQuantile(95)),
		P99:     us(s.hist.ValueAtQuantile(99)),
	}
}

// Recorder keeps an overall histogram plus one per request name.
// HDR histograms are not safe for concurrent writes, so a mutex guards them.
type Recorder struct {
	mu     sync.Mutex
	total  *series
	byName map[string]*series
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		total:  newSeries(),
		byName: make(map[string]*series),
	}
}

// Record adds one logical call. name may be empty to skip the per-name
// breakdown.
func (r *Recorder) Record(name string, d time.Duration, success bool, bytes int64) {
	micros := d.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.total.record(micros, success, bytes)
	if name == "" {
		return
	}
	s, ok := r.byName[name]
	if !ok {
		s = newSeries()
		r.byName[name] = s
	}
	s.record(micros, success, bytes)
}

// Total returns the summary across every recorded call.
func (r *Recorder) Total() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total.stats()
}

// ByName returns the per-name summaries.
func (r *Recorder) ByName() map[string]Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]Stats, len(r.byName))
	for name, s := range r.byName {
		out[name] = s.stats()
	}
	return out
}

// Names returns the recorded request names in sorted order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
