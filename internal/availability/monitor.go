package availability

import (
	"context"
	"sync"

	"frostbar-backend/internal/domain"
)

// Monitor serializes rapid-fire availability checks for a single booking
// session. Each check is tagged with a monotonically increasing sequence
// number and any in-flight predecessor is cancelled; a superseded response
// never overwrites the result of a more recent request.
type Monitor struct {
	checker *Checker

	mu      sync.Mutex
	seq     uint64
	applied uint64
	cancel  context.CancelFunc
	latest  Result
	hasAny  bool
}

func NewMonitor(checker *Checker) *Monitor {
	return &Monitor{checker: checker}
}

// Begin starts an availability check for the given inputs, superseding any
// check still in flight. onResult, if non-nil, runs only when the result is
// still the newest one; it may be invoked from another goroutine.
func (m *Monitor) Begin(ctx context.Context, tier domain.MachineTier, startDate, endDate string, onResult func(Result)) {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	if m.cancel != nil {
		m.cancel()
	}
	checkCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.mu.Unlock()

	go func() {
		defer cancel()
		res := m.checker.Check(checkCtx, tier, startDate, endDate)

		m.mu.Lock()
		defer m.mu.Unlock()
		if seq <= m.applied {
			// A newer check already reported.
			return
		}
		if checkCtx.Err() != nil && seq != m.seq {
			// Cancelled because a newer check superseded this one; let the
			// newer one report instead of surfacing our abort as a warning.
			return
		}
		m.applied = seq
		m.latest = res
		m.hasAny = true
		if onResult != nil {
			onResult(res)
		}
	}()
}

// Latest returns the most recently applied result, if any.
func (m *Monitor) Latest() (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest, m.hasAny
}
