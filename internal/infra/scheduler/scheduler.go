package scheduler

import (
	"context"
	"log/slog"

	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/pkg/config"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/commands"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler fires job runs from cron expressions
type Scheduler struct {
	inner  gocron.Scheduler
	runner commands.JobRunner
}

// Expressions maps each job type to its configured cron expression
func Expressions(cfg config.SchedulerConfig) map[job.Type]string {
	return map[job.Type]string{
		job.TypeDailyMaintenance:  cfg.DailyMaintenance,
		job.TypeMonthlyBilling:    cfg.MonthlyBilling,
		job.TypeHeynaboImport:     cfg.HeynaboImport,
		job.TypeMaintenanceImport: cfg.MaintenanceImport,
		job.TypeMaintenanceExport: cfg.MaintenanceExport,
	}
}

func New(cfg config.SchedulerConfig, runner commands.JobRunner) (*Scheduler, error) {
	inner, err := gocron.NewScheduler(gocron.WithLocation(cfg.Location()))
	if err != nil {
		return nil, errs.Wrap(err, "create scheduler")
	}
	s := &Scheduler{inner: inner, runner: runner}

	for _, t := range job.AllTypes() {
		expr := Expressions(cfg)[t]
		if expr == "" {
			slog.Info("job has no schedule", "job_type", t)
			continue
		}
		if err := s.register(t, expr); err != nil {
			_ = inner.Shutdown()
			return nil, err
		}
	}
	return s, nil
}

func (s *Scheduler) register(t job.Type, expr string) error {
	_, err := s.inner.NewJob(
		gocron.CronJob(expr, false),
		gocron.NewTask(s.fire, t),
		gocron.WithName(t.String()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return errs.Wrapf(err, "schedule %s with %q", t, expr)
	}
	slog.Info("job scheduled", "job_type", t, "cron", expr)
	return nil
}

func (s *Scheduler) fire(t job.Type) {
	_, err := s.runner.Run(context.Background(), t, job.TriggeredByScheduler)
	switch {
	case errs.Is(err, job.ErrJobAlreadyRunning):
		slog.Info("scheduled job skipped, already running", "job_type", t)
	case err != nil:
		slog.Error("scheduled job did not start", "job_type", t, "error", err.Error())
	}
}

func (s *Scheduler) Start() {
	s.inner.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.inner.Shutdown()
}

// Jobs lists the registered job names
func (s *Scheduler) Jobs() []string {
	jobs := s.inner.Jobs()
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name())
	}
	return names
}
