package readstore

import (
	"context"
	"time"

	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/pgconv"
	"commons-dinner/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type JobRunReadStore struct {
	db db.DBTX
}

func NewJobRunReadStore(db db.DBTX) *JobRunReadStore {
	return &JobRunReadStore{db: db}
}

func (r *JobRunReadStore) List(ctx context.Context, jobType *job.Type, afterStarted *time.Time, afterID *uuid.UUID, limit int) ([]*queries.JobRunView, error) {
	var typ pgtype.Text
	if jobType != nil {
		typ = pgtype.Text{String: string(*jobType), Valid: true}
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, job_type, status, started_at, completed_at, duration_ms, result_summary, error_message, triggered_by
		FROM job_runs
		WHERE ($1::text IS NULL OR job_type = $1)
		  AND ($2::timestamptz IS NULL OR (started_at, id) < ($2, $3))
		ORDER BY started_at DESC, id DESC
		LIMIT $4`,
		typ, pgconv.TimePtrToPgtype(afterStarted), pgconv.UUIDPtrToPgtype(afterID), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list job runs", err)
	}
	defer rows.Close()

	out := []*queries.JobRunView{}
	for rows.Next() {
		var (
			v                     queries.JobRunView
			completedAt           pgtype.Timestamptz
			duration              pgtype.Int8
			summary, errorMessage pgtype.Text
		)
		if err := rows.Scan(&v.ID, &v.JobType, &v.Status, &v.StartedAt, &completedAt, &duration, &summary,
			&errorMessage, &v.TriggeredBy); err != nil {
			return nil, infra.WrapRepoErr("failed to scan job run", err)
		}
		v.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
		v.DurationMs = pgconv.Int8PtrFromPgtype(duration)
		v.ResultSummary = pgconv.StringPtrFromPgtype(summary)
		v.ErrorMessage = pgconv.StringPtrFromPgtype(errorMessage)
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate job runs", err)
	}
	return out, nil
}
