package bootstrap

import (
	"context"
	"log/slog"

	"commons-dinner/internal/infra/scheduler"
	"commons-dinner/internal/pkg/config"
	"commons-dinner/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(StartScheduler),
)

func StartScheduler(lc fx.Lifecycle, cfg config.Config, runner commands.JobRunner) error {
	if !cfg.Scheduler.Enabled {
		slog.Info("scheduler disabled, jobs run on manual trigger only")
		return nil
	}

	s, err := scheduler.New(cfg.Scheduler, runner)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			slog.Info("scheduler started", "jobs", s.Jobs())
			return nil
		},
		OnStop: func(_ context.Context) error {
			return s.Shutdown()
		},
	})
	return nil
}
