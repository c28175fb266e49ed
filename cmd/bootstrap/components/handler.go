package components

import (
	"pacectrl/internal/handler"
	"pacectrl/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewWidgetHandler,
		api.NewChoiceHandler,
		api.NewAdminHandler,
	),
	fx.Invoke(handler.NewRouter),
)
