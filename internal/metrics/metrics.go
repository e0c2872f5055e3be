package metrics

import (
	"sync"
	"time"
)

type upstreamStats struct {
	calls           int
	errors          int
	lastStatus      int
	lastCallLatency time.Duration
}

// Recorder captures in-memory counters about upstream calls and forwards them to OpenTelemetry
// instruments when telemetry is enabled. A nil Recorder is valid and records nothing.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*upstreamStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*upstreamStats),
		otel:  otel,
	}
}

// RecordUpstreamAttempt counts one upstream call for a route. status is 0 when no response arrived.
func (r *Recorder) RecordUpstreamAttempt(route string, status int, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[route]
	if !ok {
		stats = &upstreamStats{}
		r.stats[route] = stats
	}
	stats.calls++
	stats.lastStatus = status
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordUpstreamAttempt(route, status, duration, err)
	}
}

// UpstreamCalls returns the total attempts recorded for a route.
func (r *Recorder) UpstreamCalls(route string) int {
	return r.Snapshot(route).Calls
}

// UpstreamErrors returns the failed attempts recorded for a route.
func (r *Recorder) UpstreamErrors(route string) int {
	return r.Snapshot(route).Errors
}

// Snapshot is a copy of the counters for one route.
type Snapshot struct {
	Calls           int
	Errors          int
	LastStatus      int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(route string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[route]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastStatus:      stats.lastStatus,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}
