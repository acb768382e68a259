package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/sweepgrid/internal/document"
)

// ExecutionRecord holds the start and end times for a single calculation.
type ExecutionRecord struct {
	Start time.Time
	End   time.Time
}

// CalculateFunc scripts the response to one call. attempt counts calls for
// the same project, starting at 1.
type CalculateFunc func(ctx context.Context, projectName string, attempt int) ([]byte, error)

// FakeCalculator is a scripted calculator. It records how often each project
// was calculated and when, so tests can assert on retries and overlap.
type FakeCalculator struct {
	Script CalculateFunc
	Delay  time.Duration

	mu       sync.Mutex
	attempts map[string]int
	records  []ExecutionRecord
}

// NewFakeCalculator creates a calculator that answers with script.
func NewFakeCalculator(script CalculateFunc) *FakeCalculator {
	return &FakeCalculator{Script: script, attempts: make(map[string]int)}
}

// Calculate implements the calculator interface. Documents are told apart by
// their project_name attribute.
func (f *FakeCalculator) Calculate(ctx context.Context, doc document.Document) ([]byte, error) {
	name := ""
	if v, ok := doc.Get("project_name"); ok {
		name, _ = document.String(v)
	}

	f.mu.Lock()
	if f.attempts == nil {
		f.attempts = make(map[string]int)
	}
	f.attempts[name]++
	attempt := f.attempts[name]
	f.mu.Unlock()

	start := time.Now()
	if f.Delay > 0 {
		select {
		case <-time.After(f.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	body, err := f.Script(ctx, name, attempt)

	f.mu.Lock()
	f.records = append(f.records, ExecutionRecord{Start: start, End: time.Now()})
	f.mu.Unlock()
	return body, err
}

// Attempts returns the number of calls made for projectName.
func (f *FakeCalculator) Attempts(projectName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts[projectName]
}

// TotalCalls returns the number of calls made for all projects.
func (f *FakeCalculator) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

// Records returns a copy of the execution records.
func (f *FakeCalculator) Records() []ExecutionRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ExecutionRecord, len(f.records))
	copy(out, f.records)
	return out
}

// MaxOverlap returns the largest number of calls that were in flight at the
// same time.
func (f *FakeCalculator) MaxOverlap() int {
	records := f.Records()
	best := 0
	for _, r := range records {
		n := 0
		for _, o := range records {
			if !o.Start.After(r.Start) && o.End.After(r.Start) {
				n++
			}
		}
		best = max(best, n)
	}
	return best
}
