package monitoring

import (
	"sort"
	"sync"
	"time"

	"github.com/vitrine-studio/vitrine/pkg/metrics"
)

// JobStatus summarises the runs of one background job.
type JobStatus struct {
	Job                 string        `json:"job"`
	LastStatus          string        `json:"last_status"`
	LastRunAt           time.Time     `json:"last_run_at"`
	LastDuration        time.Duration `json:"last_duration_ns"`
	LastError           string        `json:"last_error,omitempty"`
	LastSuccessAt       time.Time     `json:"last_success_at"`
	ConsecutiveFailures uint64        `json:"consecutive_failures"`
	TotalRuns           uint64        `json:"total_runs"`
}

// JobTracker records maintenance job outcomes for health checks and metrics.
type JobTracker struct {
	mu   sync.Mutex
	jobs map[string]*JobStatus
	now  func() time.Time
}

// NewJobTracker constructs an empty tracker. A nil clock uses time.Now.
func NewJobTracker(now func() time.Time) *JobTracker {
	if now == nil {
		now = time.Now
	}
	return &JobTracker{jobs: make(map[string]*JobStatus), now: now}
}

// Record stores the outcome of one run of job.
func (t *JobTracker) Record(job string, err error, duration time.Duration) {
	if t == nil || job == "" {
		return
	}
	if duration < 0 {
		duration = 0
	}

	result := "success"
	message := ""
	if err != nil {
		result = "failure"
		message = err.Error()
	}
	metrics.MaintenanceRuns.WithLabelValues(job, result).Inc()

	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()

	status, ok := t.jobs[job]
	if !ok {
		status = &JobStatus{Job: job}
		t.jobs[job] = status
	}
	status.LastStatus = result
	status.LastRunAt = now
	status.LastDuration = duration
	status.LastError = message
	status.TotalRuns++
	if err != nil {
		status.ConsecutiveFailures++
	} else {
		status.ConsecutiveFailures = 0
		status.LastSuccessAt = now
	}
}

// Snapshot returns the status of every job sorted by name.
func (t *JobTracker) Snapshot() []JobStatus {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]JobStatus, 0, len(t.jobs))
	for _, status := range t.jobs {
		out = append(out, *status)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Job < out[j].Job })
	return out
}

// Now exposes the tracker clock.
func (t *JobTracker) Now() time.Time {
	return t.now()
}
