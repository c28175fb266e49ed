package bootstrap

import (
	"log/slog"

	"pacectrl/internal/handler/middleware"
	"pacectrl/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger builds the application logger from the env-driven log config and
// installs it as the slog default.
func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).GetSlogLogger()
}
