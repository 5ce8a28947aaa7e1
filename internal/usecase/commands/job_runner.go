package commands

import (
	"context"
	"fmt"
	"log/slog"

	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/pkg/clock"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/shared"
)

// JobFunc does one job's work. Unit failures go into the Result; a returned error is fatal.
type JobFunc func(ctx context.Context) (job.Result, error)

type JobRunner interface {
	// Run executes the job and returns the finished run
	Run(ctx context.Context, t job.Type, triggeredBy string) (*job.Run, error)
	// Trigger records the run and executes it in the background, returning the RUNNING row
	Trigger(ctx context.Context, t job.Type, triggeredBy string) (*job.Run, error)
}

type jobRunnerImpl struct {
	uow    shared.UnitOfWork
	locker shared.JobLocker
	clock  clock.Clock
	jobs   map[job.Type]JobFunc
}

func NewJobRunner(uow shared.UnitOfWork, locker shared.JobLocker, clk clock.Clock, jobs map[job.Type]JobFunc) JobRunner {
	return &jobRunnerImpl{uow: uow, locker: locker, clock: clk, jobs: jobs}
}

// Jobs binds every job type to its use case
func Jobs(maintenance MaintenanceCommands, billing BillingCommands, membership MembershipCommands) map[job.Type]JobFunc {
	return map[job.Type]JobFunc{
		job.TypeDailyMaintenance:  maintenance.ConsumePastDinners,
		job.TypeMonthlyBilling:    billing.ClosePreviousPeriod,
		job.TypeHeynaboImport:     membership.ImportHouseholds,
		job.TypeMaintenanceImport: membership.ReconcileEvents,
		job.TypeMaintenanceExport: billing.ExportInvoices,
	}
}

func (r *jobRunnerImpl) Run(ctx context.Context, t job.Type, triggeredBy string) (*job.Run, error) {
	run, fn, release, err := r.start(ctx, t, triggeredBy)
	if err != nil {
		return nil, err
	}
	defer release()
	r.execute(ctx, run, fn)
	return run, nil
}

func (r *jobRunnerImpl) Trigger(ctx context.Context, t job.Type, triggeredBy string) (*job.Run, error) {
	run, fn, release, err := r.start(ctx, t, triggeredBy)
	if err != nil {
		return nil, err
	}
	snapshot := *run
	go func() {
		defer release()
		r.execute(context.WithoutCancel(ctx), run, fn)
	}()
	return &snapshot, nil
}

// start takes the job lock and writes the RUNNING row before any work happens
func (r *jobRunnerImpl) start(ctx context.Context, t job.Type, triggeredBy string) (*job.Run, JobFunc, func(), error) {
	if !t.IsValid() {
		return nil, nil, nil, classify(job.ErrInvalidType)
	}
	fn, ok := r.jobs[t]
	if !ok {
		return nil, nil, nil, errs.Mark(errs.Newf("no handler registered for job %s", t), errs.ErrDomainValidation)
	}

	release, err := r.locker.Acquire(ctx, t)
	if err != nil {
		return nil, nil, nil, classify(err)
	}

	run, err := job.Start(t, triggeredBy, r.clock.Now())
	if err != nil {
		release()
		return nil, nil, nil, classify(err)
	}
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.JobRuns().Create(ctx, run)
	})
	if err != nil {
		release()
		return nil, nil, nil, err
	}

	slog.Info("job started", "job_type", t, "run_id", run.ID(), "triggered_by", triggeredBy)
	return run, fn, release, nil
}

func (r *jobRunnerImpl) execute(ctx context.Context, run *job.Run, fn JobFunc) {
	res, fatal := r.safeCall(ctx, fn)

	if err := run.Complete(res, fatal, r.clock.Now()); err != nil {
		slog.Warn("job run already completed", "run_id", run.ID(), "error", err.Error())
		return
	}
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.JobRuns().Complete(ctx, run)
	})
	switch {
	case errs.Is(err, job.ErrJobRunFinished):
		slog.Warn("job run finished elsewhere", "run_id", run.ID())
	case err != nil:
		slog.Error("job run completion not stored", "run_id", run.ID(), "error", err.Error())
	}

	attrs := []any{"job_type", run.Type(), "run_id", run.ID(), "status", run.Status()}
	if run.ResultSummary() != nil {
		attrs = append(attrs, "summary", *run.ResultSummary())
	}
	if run.ErrorMessage() != nil {
		attrs = append(attrs, "error", *run.ErrorMessage())
	}
	slog.Info("job finished", attrs...)
}

func (r *jobRunnerImpl) safeCall(ctx context.Context, fn JobFunc) (res job.Result, fatal error) {
	defer func() {
		if p := recover(); p != nil {
			fatal = errs.Newf("job panicked: %s", fmt.Sprint(p))
		}
	}()
	return fn(ctx)
}
