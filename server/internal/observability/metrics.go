package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics aggregates counters for the prompt pipeline.
type Metrics struct {
	mu sync.Mutex

	requestTotal  atomic.Int64
	requestFailed atomic.Int64
	cacheHits     atomic.Int64

	opMetrics map[string]*OperationMetrics
}

// OperationMetrics holds counters for one pipeline operation
// (prompt assembly, quiz scoring, intent classification).
type OperationMetrics struct {
	executionCount atomic.Int64
	totalDuration  atomic.Int64 // milliseconds
	errorCount     atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		opMetrics: make(map[string]*OperationMetrics),
	}
}

var globalMetrics = NewMetrics()

// GlobalMetrics returns the global metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// RecordRequest records a request for an operation.
func (m *Metrics) RecordRequest(operation string) {
	m.requestTotal.Add(1)
	m.getOperationMetrics(operation).executionCount.Add(1)
}

// RecordFailure records a failed request for an operation.
func (m *Metrics) RecordFailure(operation string) {
	m.requestFailed.Add(1)
	m.getOperationMetrics(operation).errorCount.Add(1)
}

// RecordDuration records a request duration for an operation.
func (m *Metrics) RecordDuration(operation string, duration time.Duration) {
	m.getOperationMetrics(operation).totalDuration.Add(duration.Milliseconds())
}

// RecordCacheHit records a classification cache hit.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// GetRequestTotal returns the total number of requests.
func (m *Metrics) GetRequestTotal() int64 {
	return m.requestTotal.Load()
}

// GetRequestFailed returns the total number of failed requests.
func (m *Metrics) GetRequestFailed() int64 {
	return m.requestFailed.Load()
}

// GetCacheHits returns the total number of classification cache hits.
func (m *Metrics) GetCacheHits() int64 {
	return m.cacheHits.Load()
}

func (m *Metrics) getOperationMetrics(operation string) *OperationMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	om, ok := m.opMetrics[operation]
	if !ok {
		om = &OperationMetrics{}
		m.opMetrics[operation] = om
	}
	return om
}

// GetAverageDuration returns the average duration in milliseconds for an operation.
func (m *Metrics) GetAverageDuration(operation string) int64 {
	om := m.getOperationMetrics(operation)
	count := om.executionCount.Load()
	if count == 0 {
		return 0
	}
	return om.totalDuration.Load() / count
}

// Reset resets all metrics. Useful for testing.
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)
	m.cacheHits.Store(0)

	m.mu.Lock()
	m.opMetrics = make(map[string]*OperationMetrics)
	m.mu.Unlock()
}

// Snapshot returns a point-in-time snapshot of metrics.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	opSnapshots := make(map[string]*OperationSnapshot, len(m.opMetrics))
	for operation, om := range m.opMetrics {
		count := om.executionCount.Load()
		total := om.totalDuration.Load()
		var avg int64
		if count > 0 {
			avg = total / count
		}
		opSnapshots[operation] = &OperationSnapshot{
			ExecutionCount:  count,
			TotalDuration:   total,
			ErrorCount:      om.errorCount.Load(),
			AverageDuration: avg,
		}
	}

	return &MetricsSnapshot{
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
		CacheHits:     m.cacheHits.Load(),
		Operations:    opSnapshots,
	}
}

// MetricsSnapshot is a point-in-time view of all counters.
type MetricsSnapshot struct {
	RequestTotal  int64                         `json:"request_total"`
	RequestFailed int64                         `json:"request_failed"`
	CacheHits     int64                         `json:"cache_hits"`
	Operations    map[string]*OperationSnapshot `json:"operations"`
}

// OperationSnapshot is a point-in-time view of one operation's counters.
type OperationSnapshot struct {
	ExecutionCount  int64 `json:"execution_count"`
	TotalDuration   int64 `json:"total_duration_ms"`
	ErrorCount      int64 `json:"error_count"`
	AverageDuration int64 `json:"average_duration_ms"`
}

// SuccessRate returns the success rate as a percentage (0-100).
func (s *MetricsSnapshot) SuccessRate() float64 {
	if s.RequestTotal == 0 {
		return 100.0
	}
	return float64(s.RequestTotal-s.RequestFailed) / float64(s.RequestTotal) * 100.0
}
