package job

import (
	"fmt"
	"sync"
)

// Result is the outcome of one batch: unit counts and the first failure seen
type Result struct {
	Total      int
	Succeeded  int
	Failed     int
	FirstError error
	Summary    string
}

// Status maps a result to the terminal run status. A fatal error always means FAILED.
func (r Result) Status(fatal error) Status {
	switch {
	case fatal != nil:
		return StatusFailed
	case r.Failed > 0 && r.Succeeded > 0:
		return StatusPartial
	case r.Failed > 0:
		return StatusFailed
	default:
		return StatusSuccess
	}
}

// Tally counts unit outcomes from concurrent workers
type Tally struct {
	mu        sync.Mutex
	total     int
	succeeded int
	failed    int
	firstErr  error
}

func NewTally(total int) *Tally {
	return &Tally{total: total}
}

func (t *Tally) Succeed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.succeeded++
}

func (t *Tally) Fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed++
	if t.firstErr == nil {
		t.firstErr = err
	}
}

// Result renders the tally; verb names what succeeded, e.g. "6/7 closed"
func (t *Tally) Result(verb string) Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := t.total
	if done := t.succeeded + t.failed; done > total {
		total = done
	}
	return Result{
		Total:      total,
		Succeeded:  t.succeeded,
		Failed:     t.failed,
		FirstError: t.firstErr,
		Summary:    fmt.Sprintf("%d/%d %s", t.succeeded, total, verb),
	}
}
