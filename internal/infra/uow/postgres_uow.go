package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"commons-dinner/internal/infra"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/infra/repository"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool       *pgxpool.Pool
	maxRetries int
	base       time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{
		pool:       pool,
		maxRetries: 3,
		base:       100 * time.Millisecond,
	}
}

// ReadCommitted; row locks and unique indexes carry the per-row guarantees
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
		}
	}()

	if err := fn(ctx, &pgTx{dbtx: pgxTx}); err != nil {
		return err
	}
	return pgxTx.Commit(ctx)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, &pgTx{dbtx: pgxTx})
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
		}

		if !infra.IsRetryable(err) {
			return err
		}
		if attempt == u.maxRetries {
			slog.Error("transaction failed after max retries", "attempts", attempt+1, "error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		wait := backoff(attempt, u.base)
		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return errMaxRetriesExceeded
}

// backoff doubles per attempt with up to 20% jitter
func backoff(attempt int, base time.Duration) time.Duration {
	wait := time.Duration(1<<attempt) * base
	if j := int64(wait / 5); j > 0 {
		wait += time.Duration(rand.Int64N(j))
	}
	return wait
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	seasons    shared.SeasonRepository
	teams      shared.TeamRepository
	dinners    shared.DinnerRepository
	orders     shared.OrderRepository
	history    shared.OrderHistoryRepository
	households shared.HouseholdRepository
	users      shared.UserRepository
	billing    shared.BillingRepository
	jobRuns    shared.JobRunRepository
}

func (t *pgTx) Seasons() shared.SeasonRepository {
	if t.seasons == nil {
		t.seasons = repository.NewSeasonRepository(t.dbtx)
	}
	return t.seasons
}

func (t *pgTx) Teams() shared.TeamRepository {
	if t.teams == nil {
		t.teams = repository.NewTeamRepository(t.dbtx)
	}
	return t.teams
}

func (t *pgTx) Dinners() shared.DinnerRepository {
	if t.dinners == nil {
		t.dinners = repository.NewDinnerRepository(t.dbtx)
	}
	return t.dinners
}

func (t *pgTx) Orders() shared.OrderRepository {
	if t.orders == nil {
		t.orders = repository.NewOrderRepository(t.dbtx)
	}
	return t.orders
}

func (t *pgTx) History() shared.OrderHistoryRepository {
	if t.history == nil {
		t.history = repository.NewOrderHistoryRepository(t.dbtx)
	}
	return t.history
}

func (t *pgTx) Households() shared.HouseholdRepository {
	if t.households == nil {
		t.households = repository.NewHouseholdRepository(t.dbtx)
	}
	return t.households
}

func (t *pgTx) Users() shared.UserRepository {
	if t.users == nil {
		t.users = repository.NewUserRepository(t.dbtx)
	}
	return t.users
}

func (t *pgTx) Billing() shared.BillingRepository {
	if t.billing == nil {
		t.billing = repository.NewBillingRepository(t.dbtx)
	}
	return t.billing
}

func (t *pgTx) JobRuns() shared.JobRunRepository {
	if t.jobRuns == nil {
		t.jobRuns = repository.NewJobRunRepository(t.dbtx)
	}
	return t.jobRuns
}
