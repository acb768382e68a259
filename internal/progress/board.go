package progress

import (
	"sync"
	"time"
)

// Phase names the stage a run is in.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseLoading  Phase = "loading"
	PhaseRunning  Phase = "running"
	PhaseFinished Phase = "finished"
	PhaseFailed   Phase = "failed"
)

// Snapshot is a point-in-time copy of a Board.
type Snapshot struct {
	RunID      string    `json:"run_id,omitempty"`
	Phase      Phase     `json:"phase"`
	StartedAt  time.Time `json:"started_at"`
	Elapsed    string    `json:"elapsed"`
	Built      int       `json:"built"`
	Total      int       `json:"total"`
	Dispatched int       `json:"dispatched"`
	Computed   int       `json:"computed"`
	Failed     int       `json:"failed"`
	NoData     int       `json:"no_data"`
	Remaining  string    `json:"remaining"`
}

// Board tracks the progress of one run. All methods are safe for concurrent
// use and a nil *Board ignores updates.
type Board struct {
	mu    sync.Mutex
	now   func() time.Time
	state Snapshot
}

// NewBoard creates a board in the idle phase.
func NewBoard(runID string, now func() time.Time) *Board {
	if now == nil {
		now = time.Now
	}
	return &Board{now: now, state: Snapshot{RunID: runID, Phase: PhaseIdle}}
}

// Start moves the board into phase and resets the clock when the run begins.
func (b *Board) Start(phase Phase, total int) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state.StartedAt.IsZero() {
		b.state.StartedAt = b.now()
	}
	b.state.Phase = phase
	b.state.Total = total
}

// Finish marks the run as finished or failed.
func (b *Board) Finish(err error) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Phase = PhaseFinished
	if err != nil {
		b.state.Phase = PhaseFailed
	}
}

// AddBuilt records n newly built variants.
func (b *Board) AddBuilt(n int) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Built += n
}

// AddOutcome records one dispatched variant.
func (b *Board) AddOutcome(computed, failed bool) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Dispatched++
	switch {
	case computed:
		b.state.Computed++
	case failed:
		b.state.Failed++
	default:
		b.state.NoData++
	}
}

// Snapshot returns a copy of the current state with derived timings.
func (b *Board) Snapshot() Snapshot {
	if b == nil {
		return Snapshot{Phase: PhaseIdle}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.state
	if !s.StartedAt.IsZero() {
		elapsed := b.now().Sub(s.StartedAt)
		s.Elapsed = FormatDuration(elapsed)
		s.Remaining = FormatDuration(Remaining(elapsed, s.Dispatched, s.Total))
	}
	return s
}
