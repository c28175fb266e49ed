package components

import (
	"pacectrl/internal/pkg/clock"
	"pacectrl/internal/usecase"
	"pacectrl/internal/usecase/commands"
	"pacectrl/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewEngine,
		commands.NewChoiceCommands,
		queries.NewChoiceQueries,
	),
)
