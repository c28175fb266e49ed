package request

// Numeric fields are bound as pointers: reduction_pct=0 and booking_id=0 are
// legal values and must still satisfy the required binding.

type CreateChoiceIntentRequest struct {
	ExternalTripID string   `json:"external_trip_id" binding:"required"`
	ReductionPct   *float64 `json:"reduction_pct" binding:"required"`
}

type ConfirmChoiceRequest struct {
	BookingID *int64 `json:"booking_id" binding:"required"`
	IntentID  string `json:"intent_id" binding:"required"`
}
