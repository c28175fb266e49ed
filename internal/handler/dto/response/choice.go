package response

import (
	"time"

	"pacectrl/internal/domain/choice"
	"pacectrl/internal/usecase/queries"
)

// All timestamps on the wire are UTC ISO-8601 with a Z suffix.
func isoUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

type ChoiceIntentCreatedResponse struct {
	IntentID string `json:"intent_id"`
}

type ChoiceIntentResponse struct {
	IntentID       string  `json:"intent_id"`
	ExternalTripID string  `json:"external_trip_id"`
	ReductionPct   float64 `json:"reduction_pct"`
	CreatedAt      string  `json:"created_at"`
}

func FromIntent(intent choice.Intent) *ChoiceIntentResponse {
	return &ChoiceIntentResponse{
		IntentID:       intent.ID,
		ExternalTripID: intent.ExternalTripID,
		ReductionPct:   intent.ReductionPct,
		CreatedAt:      isoUTC(intent.CreatedAt),
	}
}

func FromIntentList(intents []choice.Intent) []*ChoiceIntentResponse {
	res := make([]*ChoiceIntentResponse, len(intents))
	for i, intent := range intents {
		res[i] = FromIntent(intent)
	}
	return res
}

type ChoiceConfirmationResponse struct {
	BookingID      int64   `json:"booking_id"`
	IntentID       string  `json:"intent_id"`
	ExternalTripID string  `json:"external_trip_id"`
	ReductionPct   float64 `json:"reduction_pct"`
	ConfirmedAt    string  `json:"confirmed_at"`
}

func FromConfirmation(record choice.Confirmation) *ChoiceConfirmationResponse {
	return &ChoiceConfirmationResponse{
		BookingID:      record.BookingID,
		IntentID:       record.IntentID,
		ExternalTripID: record.ExternalTripID,
		ReductionPct:   record.ReductionPct,
		ConfirmedAt:    isoUTC(record.ConfirmedAt),
	}
}

func FromConfirmationList(records []choice.Confirmation) []*ChoiceConfirmationResponse {
	res := make([]*ChoiceConfirmationResponse, len(records))
	for i, record := range records {
		res[i] = FromConfirmation(record)
	}
	return res
}

type TripAverageResponse struct {
	ExternalTripID      string  `json:"external_trip_id"`
	Count               int     `json:"count"`
	AverageReductionPct float64 `json:"average_reduction_pct"`
}

func FromTripAverage(v *queries.TripAverageView) *TripAverageResponse {
	return &TripAverageResponse{
		ExternalTripID:      v.ExternalTripID,
		Count:               v.Count,
		AverageReductionPct: v.AverageReductionPct,
	}
}
