package commands

import (
	"context"
	"log/slog"
	"time"

	"commons-dinner/internal/domain/dinner"
	"commons-dinner/internal/domain/job"
	"commons-dinner/internal/pkg/clock"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/shared"
)

type MaintenanceCommands interface {
	// ConsumePastDinners marks every ANNOUNCED dinner dated before today as CONSUMED
	ConsumePastDinners(ctx context.Context) (job.Result, error)
}

type maintenanceUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	loc   *time.Location
}

// NewMaintenanceUseCase takes the community timezone, which decides where "today" starts
func NewMaintenanceUseCase(uow shared.UnitOfWork, clk clock.Clock, loc *time.Location) MaintenanceCommands {
	return &maintenanceUseCaseImpl{uow: uow, clock: clk, loc: loc}
}

func (uc *maintenanceUseCaseImpl) ConsumePastDinners(ctx context.Context) (job.Result, error) {
	today := clock.StartOfDay(uc.clock.Now(), uc.loc)

	var due []*dinner.Dinner
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		due, err = tx.Dinners().ListByStateBefore(ctx, dinner.StateAnnounced, today)
		return err
	})
	if err != nil {
		return job.Result{}, err
	}

	tally := job.NewTally(len(due))
	for _, d := range due {
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return consumeDinner(ctx, tx, d.ID(), uc.clock.Now())
		})
		if err != nil {
			slog.Warn("dinner consume failed", "dinner_id", d.ID(), "error", err.Error())
			tally.Fail(errs.Wrapf(err, "dinner %s", d.ID()))
			continue
		}
		tally.Succeed()
	}
	return tally.Result("consumed"), nil
}
