package response

import (
	"time"

	"commons-dinner/internal/domain/job"

	"github.com/google/uuid"
)

type JobResultResponse struct {
	Summary    string  `json:"summary"`
	Total      int     `json:"total"`
	Succeeded  int     `json:"succeeded"`
	Failed     int     `json:"failed"`
	FirstError *string `json:"first_error,omitempty"`
}

func FromJobResult(r job.Result) JobResultResponse {
	resp := JobResultResponse{
		Summary:   r.Summary,
		Total:     r.Total,
		Succeeded: r.Succeeded,
		Failed:    r.Failed,
	}
	if r.FirstError != nil {
		msg := r.FirstError.Error()
		resp.FirstError = &msg
	}
	return resp
}

type JobRunResponse struct {
	ID          uuid.UUID `json:"id"`
	JobType     string    `json:"job_type"`
	Status      string    `json:"status"`
	StartedAt   time.Time `json:"started_at"`
	TriggeredBy string    `json:"triggered_by"`
}

func FromJobRun(r *job.Run) JobRunResponse {
	return JobRunResponse{
		ID:          r.ID(),
		JobType:     r.Type().String(),
		Status:      r.Status().String(),
		StartedAt:   r.StartedAt(),
		TriggeredBy: r.TriggeredBy(),
	}
}

type CancelDinnerResponse struct {
	CancelledOrders int `json:"cancelled_orders"`
}
