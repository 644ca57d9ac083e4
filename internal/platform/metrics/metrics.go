package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-local counters exposed on /metrics.
type Collector struct {
	requests        atomic.Uint64
	serverErrors    atomic.Uint64
	rateLimited     atomic.Uint64
	durationMs      atomic.Uint64
	clockEvents     atomic.Uint64
	payrollRuns     atomic.Uint64
	payrollFailures atomic.Uint64
	payrollInserted atomic.Uint64
	payrollSkipped  atomic.Uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.requests.Add(1)
	if status >= 500 {
		c.serverErrors.Add(1)
	}
	if status == 429 {
		c.rateLimited.Add(1)
	}
	c.durationMs.Add(uint64(duration.Milliseconds()))
}

func (c *Collector) ClockEvent() {
	if c == nil {
		return
	}
	c.clockEvents.Add(1)
}

func (c *Collector) PayrollRun(inserted, skipped int, err error) {
	if c == nil {
		return
	}
	c.payrollRuns.Add(1)
	if err != nil {
		c.payrollFailures.Add(1)
		return
	}
	c.payrollInserted.Add(uint64(inserted))
	c.payrollSkipped.Add(uint64(skipped))
}

func (c *Collector) Snapshot() map[string]any {
	total := c.requests.Load()
	totalMs := c.durationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":          total,
		"errorsTotal":            c.serverErrors.Load(),
		"rateLimitedTotal":       c.rateLimited.Load(),
		"avgDurationMs":          avg,
		"clockEventsTotal":       c.clockEvents.Load(),
		"payrollRunsTotal":       c.payrollRuns.Load(),
		"payrollRunFailures":     c.payrollFailures.Load(),
		"payrollRecordsInserted": c.payrollInserted.Load(),
		"payrollRecordsSkipped":  c.payrollSkipped.Load(),
	}
}
