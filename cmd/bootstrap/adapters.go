package bootstrap

import (
	"context"
	"log/slog"

	"commons-dinner/internal/infra/heynabo"
	"commons-dinner/internal/infra/lock"
	"commons-dinner/internal/infra/pbs"
	"commons-dinner/internal/pkg/config"
	"commons-dinner/internal/usecase/shared"

	"go.uber.org/fx"
)

var AdapterModule = fx.Module("adapters",
	fx.Provide(
		NewJobLocker,
		fx.Annotate(
			NewInvoicePublisher,
			fx.As(new(shared.InvoicePublisher)),
		),
		fx.Annotate(
			NewMembershipSource,
			fx.As(new(shared.MembershipSource)),
		),
	),
)

// NewJobLocker uses Redis when an address is configured, else an in-process lock
func NewJobLocker(lc fx.Lifecycle, cfg config.Config) shared.JobLocker {
	if cfg.Redis.Addr == "" {
		slog.Info("REDIS_ADDR not set, job lock is process local")
		return lock.NewLocalLocker()
	}

	client := lock.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return lock.NewRedisLocker(client, cfg.Redis)
}

func NewInvoicePublisher(lc fx.Lifecycle, cfg config.Config) *pbs.Publisher {
	p := pbs.NewPublisher(cfg.AMQP)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return p
}

func NewMembershipSource(cfg config.Config) *heynabo.Client {
	return heynabo.NewClient(cfg.Heynabo)
}
