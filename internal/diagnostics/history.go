// Package diagnostics records what binding passes did.
//
// A Tracer collects the entries binders log during a pass into a Report;
// finished reports are kept in a History of fixed capacity that is shared by
// whoever produces and reads them. The History is constructed explicitly and
// passed around by reference; there is no package-level instance.
package diagnostics

import "sync"

// DefaultCapacity is the number of reports a History keeps.
const DefaultCapacity = 50

// History keeps the most recent reports, evicting the oldest first. It is
// safe for concurrent use.
type History struct {
	mu       sync.Mutex
	capacity int
	reports  []*Report
}

// NewHistory returns a History holding at most capacity reports. A
// non-positive capacity selects DefaultCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{
		capacity: capacity,
		reports:  make([]*Report, 0, capacity),
	}
}

// AddReport appends r and drops the oldest reports beyond capacity.
func (h *History) AddReport(r *Report) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.reports = append(h.reports, r)
	if over := len(h.reports) - h.capacity; over > 0 {
		clear(h.reports[:over])
		h.reports = append(h.reports[:0], h.reports[over:]...)
	}
}

// RecentReports returns a snapshot of the kept reports, oldest first.
func (h *History) RecentReports() []*Report {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*Report, len(h.reports))
	copy(out, h.reports)
	return out
}

// Len returns the number of kept reports.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.reports)
}

// Capacity returns the maximum number of kept reports.
func (h *History) Capacity() int {
	return h.capacity
}
