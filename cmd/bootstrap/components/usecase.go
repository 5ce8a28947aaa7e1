package components

import (
	"commons-dinner/internal/pkg/clock"
	"commons-dinner/internal/pkg/config"
	"commons-dinner/internal/usecase"
	"commons-dinner/internal/usecase/commands"
	"commons-dinner/internal/usecase/queries"
	"commons-dinner/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewBillingSettings,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewOrderUseCase,
		commands.NewDinnerUseCase,
		commands.NewSeasonUseCase,
		commands.NewBillingUseCase,
		NewMaintenanceUseCase,
		NewMembershipUseCase,
		commands.Jobs,
		commands.NewJobRunner,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewOrderQueries,
		queries.NewDinnerQueries,
		queries.NewSeasonQueries,
		queries.NewBillingQueries,
		queries.NewJobRunQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewBillingSettings(cfg config.Config) commands.BillingSettings {
	return commands.BillingSettings{
		Location:               cfg.Billing.Location(),
		PaymentDaysAfterCutoff: cfg.Billing.PaymentDaysAfterCutoff,
		Workers:                cfg.Billing.Workers,
		ChargeReleased:         cfg.Billing.ChargeReleased,
	}
}

func NewMaintenanceUseCase(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) commands.MaintenanceCommands {
	return commands.NewMaintenanceUseCase(uow, clk, cfg.Billing.Location())
}

func NewMembershipUseCase(uow shared.UnitOfWork, source shared.MembershipSource, clk clock.Clock, cfg config.Config) commands.MembershipCommands {
	return commands.NewMembershipUseCase(uow, source, clk, cfg.Billing.Location())
}
