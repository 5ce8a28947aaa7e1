package repository

import (
	"context"

	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/pgconv"
)

type JobRunRepository struct {
	db db.DBTX
}

func NewJobRunRepository(db db.DBTX) *JobRunRepository {
	return &JobRunRepository{db: db}
}

func (r *JobRunRepository) Create(ctx context.Context, run *job.Run) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO job_runs (id, job_type, status, started_at, triggered_by)
		VALUES ($1, $2, $3, $4, $5)`,
		run.ID(), string(run.Type()), string(run.Status()), run.StartedAt(), run.TriggeredBy(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create job run", err)
	}
	return nil
}

func (r *JobRunRepository) Complete(ctx context.Context, run *job.Run) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE job_runs
		SET status = $2, completed_at = $3, duration_ms = $4, result_summary = $5, error_message = $6
		WHERE id = $1 AND status = 'RUNNING'`,
		run.ID(), string(run.Status()), pgconv.TimePtrToPgtype(run.CompletedAt()), pgconv.Int8PtrToPgtype(run.DurationMs()),
		pgconv.StringPtrToPgtype(run.ResultSummary()), pgconv.StringPtrToPgtype(run.ErrorMessage()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to complete job run", err)
	}
	if tag.RowsAffected() == 0 {
		return job.ErrJobRunFinished
	}
	return nil
}
