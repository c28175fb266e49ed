package usecase

import (
	"log/slog"
	"time"

	"pacectrl/internal/domain/trip"
	"pacectrl/internal/infra/memstore"
	"pacectrl/internal/pkg/clock"
	"pacectrl/internal/pkg/config"
	"pacectrl/internal/stream"
)

// Engine bundles the collaborators shared by the command and query sides of
// the choice state: the single-lock store, the trip catalog, the snapshot
// broadcaster and the clock driving TTL expiry.
type Engine struct {
	Store       *memstore.Store
	Catalog     trip.Catalog
	Broadcaster *stream.Broadcaster
	Clock       clock.Clock
	TTL         time.Duration
}

func NewEngine(store *memstore.Store, catalog trip.Catalog, broadcaster *stream.Broadcaster, clk clock.Clock, cfg config.Config) *Engine {
	return &Engine{
		Store:       store,
		Catalog:     catalog,
		Broadcaster: broadcaster,
		Clock:       clk,
		TTL:         cfg.Intent.TTL,
	}
}

// Prune drops expired intents and, when the pass actually removed something,
// counts as a mutation: observers get the post-prune snapshot. Runs before
// every read and write of the intent ledger.
func (e *Engine) Prune() {
	removed, snapshot := e.Store.PruneExpired(e.Clock.Now(), e.TTL)
	if len(removed) == 0 {
		return
	}
	slog.Info("pruned expired choice intents", "count", len(removed), "ttl", e.TTL)
	e.Broadcaster.Publish(snapshot)
}
