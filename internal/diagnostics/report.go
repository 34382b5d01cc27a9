package diagnostics

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vk/viewbind/internal/template"
)

// Entry is one message logged for a template during a pass.
type Entry struct {
	Template string    `json:"template"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

// Report describes one binding pass.
type Report struct {
	ID         string    `json:"id"`
	Root       string    `json:"root"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Templates  int       `json:"templates"`
	Views      int       `json:"views"`
	Entries    []Entry   `json:"entries"`
	Error      string    `json:"error,omitempty"`
}

// NewReport starts a report for a pass over root.
func NewReport(root string) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Root:      root,
		StartedAt: time.Now(),
	}
}

// Duration is the time between the start and the end of the pass, or zero
// while the pass is running.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// EntriesFor returns the entries logged for the template at path.
func (r *Report) EntriesFor(path string) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Template == path {
			out = append(out, e)
		}
	}
	return out
}

// Tracer is the binding.Logger used during a pass. It forwards every entry
// to slog at debug level and records it in the pass's report.
type Tracer struct {
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	report *Report
}

// NewTracer returns a tracer writing to logger and recording into report.
// Either may be nil.
func NewTracer(logger *slog.Logger, report *Report) *Tracer {
	return &Tracer{logger: logger, report: report, now: time.Now}
}

// Log formats the message and records it. It never fails.
func (tr *Tracer) Log(t *template.Template, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	path := ""
	if t != nil {
		path = t.Path
	}

	if tr.logger != nil {
		tr.logger.Debug(msg, "template", path)
	}
	if tr.report == nil {
		return
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.report.Entries = append(tr.report.Entries, Entry{Template: path, Message: msg, Time: tr.now()})
}
