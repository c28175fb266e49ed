package components

import (
	"pacectrl/internal/domain/trip"
	"pacectrl/internal/infra/memstore"
	"pacectrl/internal/pkg/config"
	"pacectrl/internal/stream"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		memstore.NewStore,
		trip.NewStaticCatalog,
		func(cfg config.Config) *stream.Broadcaster {
			return stream.NewBroadcaster(cfg.Stream.Buffer)
		},
	),
)
