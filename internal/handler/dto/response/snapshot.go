package response

import (
	"pacectrl/internal/domain/choice"
)

type TripAggregateResponse struct {
	ExternalTripID   string  `json:"external_trip_id"`
	Count            int     `json:"count"`
	MeanReductionPct float64 `json:"mean_reduction_pct"`
}

// SnapshotResponse is the full state pushed to stream observers: one on
// attach, one per state change.
type SnapshotResponse struct {
	LiveIntents    []*ChoiceIntentResponse       `json:"live_intents"`
	Confirmations  []*ChoiceConfirmationResponse `json:"confirmations"`
	TripAggregates []*TripAggregateResponse      `json:"trip_aggregates"`
}

func FromSnapshot(snapshot choice.Snapshot) *SnapshotResponse {
	aggs := make([]*TripAggregateResponse, len(snapshot.TripAggregates))
	for i, agg := range snapshot.TripAggregates {
		aggs[i] = &TripAggregateResponse{
			ExternalTripID:   agg.ExternalTripID,
			Count:            agg.Count,
			MeanReductionPct: agg.MeanReductionPct,
		}
	}
	return &SnapshotResponse{
		LiveIntents:    FromIntentList(snapshot.LiveIntents),
		Confirmations:  FromConfirmationList(snapshot.Confirmations),
		TripAggregates: aggs,
	}
}
