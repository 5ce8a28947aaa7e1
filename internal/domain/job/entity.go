package job

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrJobRunFinished    = errors.New("job run already finished")
	ErrJobAlreadyRunning = errors.New("job of this type is already running")
)

type Run struct {
	id            uuid.UUID
	jobType       Type
	status        Status
	startedAt     time.Time
	completedAt   *time.Time
	durationMs    *int64
	resultSummary *string
	errorMessage  *string
	triggeredBy   string
}

func Start(t Type, triggeredBy string, now time.Time) (*Run, error) {
	if !t.IsValid() {
		return nil, ErrInvalidType
	}
	return &Run{
		id:          uuid.New(),
		jobType:     t,
		status:      StatusRunning,
		startedAt:   now,
		triggeredBy: triggeredBy,
	}, nil
}

func ReconstructRun(
	id uuid.UUID,
	jobType Type,
	status Status,
	startedAt time.Time,
	completedAt *time.Time,
	durationMs *int64,
	resultSummary, errorMessage *string,
	triggeredBy string,
) *Run {
	return &Run{
		id:            id,
		jobType:       jobType,
		status:        status,
		startedAt:     startedAt,
		completedAt:   completedAt,
		durationMs:    durationMs,
		resultSummary: resultSummary,
		errorMessage:  errorMessage,
		triggeredBy:   triggeredBy,
	}
}

// Complete applies the single terminal transition
func (r *Run) Complete(res Result, fatal error, now time.Time) error {
	if r.status != StatusRunning {
		return ErrJobRunFinished
	}

	r.status = res.Status(fatal)
	r.completedAt = &now
	d := now.Sub(r.startedAt).Milliseconds()
	r.durationMs = &d

	if res.Summary != "" {
		s := res.Summary
		r.resultSummary = &s
	}
	switch {
	case fatal != nil:
		msg := fatal.Error()
		r.errorMessage = &msg
	case res.FirstError != nil:
		msg := res.FirstError.Error()
		r.errorMessage = &msg
	}
	return nil
}

func (r *Run) ID() uuid.UUID           { return r.id }
func (r *Run) Type() Type              { return r.jobType }
func (r *Run) Status() Status          { return r.status }
func (r *Run) StartedAt() time.Time    { return r.startedAt }
func (r *Run) CompletedAt() *time.Time { return r.completedAt }
func (r *Run) DurationMs() *int64      { return r.durationMs }
func (r *Run) ResultSummary() *string  { return r.resultSummary }
func (r *Run) ErrorMessage() *string   { return r.errorMessage }
func (r *Run) TriggeredBy() string     { return r.triggeredBy }
