package components

import (
	"commons-dinner/internal/handler"
	"commons-dinner/internal/handler/api"
	"commons-dinner/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOrderHandler,
		api.NewDinnerHandler,
		api.NewSeasonHandler,
		api.NewBillingHandler,
		api.NewJobHandler,
		api.NewUserHandler,
		middleware.NewAuthMiddleware,
		func(
			orders *api.OrderHandler,
			dinners *api.DinnerHandler,
			seasons *api.SeasonHandler,
			billing *api.BillingHandler,
			jobs *api.JobHandler,
			users *api.UserHandler,
		) handler.Handlers {
			return handler.Handlers{
				Orders:  orders,
				Dinners: dinners,
				Seasons: seasons,
				Billing: billing,
				Jobs:    jobs,
				Users:   users,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
