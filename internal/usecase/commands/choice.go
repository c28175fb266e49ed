package commands

import (
	"context"
	"log/slog"

	"pacectrl/internal/domain/choice"
	"pacectrl/internal/pkg/errs"
	"pacectrl/internal/usecase"
)

type CreateIntentRequest struct {
	ExternalTripID string
	ReductionPct   float64
}

type CreateIntentResult struct {
	IntentID string
}

type ConfirmChoiceRequest struct {
	BookingID int64
	IntentID  string
}

type ChoiceCommands interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*CreateIntentResult, error)
	ConfirmChoice(ctx context.Context, req ConfirmChoiceRequest) (*choice.Confirmation, error)
}

type choiceCommandsImpl struct {
	engine *usecase.Engine
}

func NewChoiceCommands(engine *usecase.Engine) ChoiceCommands {
	return &choiceCommandsImpl{engine: engine}
}

// CreateIntent validates the trip against the catalog and the requested
// reduction against the trip's bounds, then stores a fresh intent and pushes
// the new state to observers.
func (uc *choiceCommandsImpl) CreateIntent(_ context.Context, req CreateIntentRequest) (*CreateIntentResult, error) {
	cfg, ok := uc.engine.Catalog.Get(req.ExternalTripID)
	if !ok {
		return nil, errs.ErrTripNotFound
	}

	uc.engine.Prune()

	intent, err := choice.NewIntent(cfg, req.ReductionPct, uc.engine.Clock.Now())
	if err != nil {
		return nil, err
	}

	snapshot := uc.engine.Store.InsertIntent(intent)
	uc.engine.Broadcaster.Publish(snapshot)

	slog.Info("choice intent created",
		"intent_id", intent.ID,
		"external_trip_id", intent.ExternalTripID,
		"reduction_pct", intent.ReductionPct,
	)
	return &CreateIntentResult{IntentID: intent.ID}, nil
}

// ConfirmChoice consumes a live intent into a confirmation record, exactly
// once. Trip validity is not re-checked: it was enforced when the intent was
// created. An unknown, already-consumed or expired id fails with
// ErrIntentNotFound.
func (uc *choiceCommandsImpl) ConfirmChoice(_ context.Context, req ConfirmChoiceRequest) (*choice.Confirmation, error) {
	uc.engine.Prune()

	record, snapshot, err := uc.engine.Store.ConfirmIntent(req.BookingID, req.IntentID, uc.engine.Clock.Now())
	if err != nil {
		return nil, err
	}
	uc.engine.Broadcaster.Publish(snapshot)

	slog.Info("choice confirmed",
		"booking_id", record.BookingID,
		"intent_id", record.IntentID,
		"external_trip_id", record.ExternalTripID,
	)
	return &record, nil
}
