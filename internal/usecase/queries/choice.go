package queries

import (
	"context"

	"pacectrl/internal/domain/choice"
	"pacectrl/internal/domain/trip"
	"pacectrl/internal/pkg/errs"
	"pacectrl/internal/stream"
	"pacectrl/internal/usecase"
)

type TripAverageView struct {
	ExternalTripID      string
	Count               int
	AverageReductionPct float64
}

type ChoiceQueries interface {
	WidgetConfig(ctx context.Context, externalTripID string) (*trip.Config, error)
	ListIntents(ctx context.Context) []choice.Intent
	ListConfirmations(ctx context.Context) []choice.Confirmation
	TripAverage(ctx context.Context, externalTripID string) (*TripAverageView, error)
	Attach(ctx context.Context) *stream.Subscriber
	Detach(sub *stream.Subscriber)
}

type choiceQueriesImpl struct {
	engine *usecase.Engine
}

func NewChoiceQueries(engine *usecase.Engine) ChoiceQueries {
	return &choiceQueriesImpl{engine: engine}
}

func (uc *choiceQueriesImpl) WidgetConfig(_ context.Context, externalTripID string) (*trip.Config, error) {
	cfg, ok := uc.engine.Catalog.Get(externalTripID)
	if !ok {
		return nil, errs.ErrTripNotFound
	}
	return &cfg, nil
}

func (uc *choiceQueriesImpl) ListIntents(_ context.Context) []choice.Intent {
	uc.engine.Prune()
	return uc.engine.Store.LiveIntents()
}

func (uc *choiceQueriesImpl) ListConfirmations(_ context.Context) []choice.Confirmation {
	uc.engine.Prune()
	return uc.engine.Store.Confirmations()
}

// TripAverage reports the confirmation count and mean reduction for a catalog
// trip. A known trip with no confirmations yields count=0, average=0.
func (uc *choiceQueriesImpl) TripAverage(_ context.Context, externalTripID string) (*TripAverageView, error) {
	if _, ok := uc.engine.Catalog.Get(externalTripID); !ok {
		return nil, errs.ErrTripNotFound
	}
	uc.engine.Prune()

	agg := uc.engine.Store.AggregateForTrip(externalTripID)
	return &TripAverageView{
		ExternalTripID:      externalTripID,
		Count:               agg.Count,
		AverageReductionPct: agg.MeanReductionPct,
	}, nil
}

// Attach registers a stream observer. The first delivered snapshot is the
// current state, taken after the prune pass so a fresh observer never sees
// stale intents.
func (uc *choiceQueriesImpl) Attach(_ context.Context) *stream.Subscriber {
	uc.engine.Prune()
	return uc.engine.Broadcaster.Attach(uc.engine.Store.Snapshot())
}

func (uc *choiceQueriesImpl) Detach(sub *stream.Subscriber) {
	uc.engine.Broadcaster.Detach(sub)
}
