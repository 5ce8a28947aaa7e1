package queries

import (
	"context"
	"time"

	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/pkg/errs"

	"github.com/google/uuid"
)

type JobRunQueries interface {
	List(ctx context.Context, jobType *string, after *Cursor, limit int) ([]*JobRunView, *Cursor, error)
}

type JobRunReadStore interface {
	// List returns runs newest first, strictly older than (afterStarted, afterID) when given
	List(ctx context.Context, jobType *job.Type, afterStarted *time.Time, afterID *uuid.UUID, limit int) ([]*JobRunView, error)
}

type jobRunQueriesImpl struct {
	store JobRunReadStore
}

func NewJobRunQueries(store JobRunReadStore) JobRunQueries {
	return &jobRunQueriesImpl{store: store}
}

func (q *jobRunQueriesImpl) List(ctx context.Context, jobType *string, after *Cursor, limit int) ([]*JobRunView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var typ *job.Type
	if jobType != nil && *jobType != "" {
		t, err := job.NewType(*jobType)
		if err != nil {
			return nil, nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		typ = &t
	}

	var (
		afterStarted *time.Time
		afterID      *uuid.UUID
	)
	if after != nil && after.After != "" {
		ts, id, err := DecodeAfterCursor(after.After)
		if err != nil {
			return nil, nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		afterStarted, afterID = &ts, &id
	}

	// one extra row tells whether another page exists
	rows, err := q.store.List(ctx, typ, afterStarted, afterID, limit+1)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) <= limit {
		return rows, nil, nil
	}
	rows = rows[:limit]
	last := rows[len(rows)-1]
	return rows, &Cursor{After: EncodeAfterCursor(last.StartedAt, last.ID)}, nil
}
