package components

import (
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/infra/readstore"
	"commons-dinner/internal/infra/uow"
	"commons-dinner/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		fx.Annotate(
			readstore.NewDinnerReadStore,
			fx.As(new(queries.DinnerReadStore)),
		),
		fx.Annotate(
			readstore.NewBillingReadStore,
			fx.As(new(queries.BillingReadStore)),
		),
		fx.Annotate(
			readstore.NewJobRunReadStore,
			fx.As(new(queries.JobRunReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

// repositories are bound per transaction inside the unit of work
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
