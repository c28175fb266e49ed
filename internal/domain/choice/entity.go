package choice

import (
	"time"

	"pacectrl/internal/domain/trip"
	"pacectrl/internal/pkg/errs"
)

// Intent is a pending, unconfirmed request to apply a speed reduction on a
// trip. Immutable after creation; it is destroyed either by being consumed
// into a Confirmation (exactly once) or by TTL expiry.
type Intent struct {
	ID             string
	ExternalTripID string
	ReductionPct   float64
	CreatedAt      time.Time
}

// Confirmation binds a booking to a previously created intent. The reduction
// percentage is copied verbatim from the intent; it is never recomputed or
// clamped at confirmation time.
type Confirmation struct {
	BookingID      int64
	IntentID       string
	ExternalTripID string
	ReductionPct   float64
	ConfirmedAt    time.Time
}

// TripAggregate is the running confirmation count and mean reduction for one
// trip. Derived state: fully recomputable from the confirmation ledger.
type TripAggregate struct {
	ExternalTripID   string
	Count            int
	MeanReductionPct float64
}

// Snapshot is a self-consistent rendering of the whole choice state at one
// instant, as pushed to stream observers.
type Snapshot struct {
	LiveIntents    []Intent
	Confirmations  []Confirmation
	TripAggregates []TripAggregate
}

// NewIntent validates the requested reduction against the trip's bounds and
// returns a freshly identified intent stamped with now (UTC).
func NewIntent(cfg trip.Config, reductionPct float64, now time.Time) (Intent, error) {
	if reductionPct < 0 || reductionPct > cfg.MaxReductionPct {
		return Intent{}, errs.ErrReductionOutOfRange
	}
	return Intent{
		ID:             NewIntentID(),
		ExternalTripID: cfg.ExternalTripID,
		ReductionPct:   reductionPct,
		CreatedAt:      now.UTC(),
	}, nil
}

// Confirm consumes the intent into a confirmation record for the given
// booking, stamped with now (UTC).
func (i Intent) Confirm(bookingID int64, now time.Time) Confirmation {
	return Confirmation{
		BookingID:      bookingID,
		IntentID:       i.ID,
		ExternalTripID: i.ExternalTripID,
		ReductionPct:   i.ReductionPct,
		ConfirmedAt:    now.UTC(),
	}
}

// Expired reports whether the intent was created before now-ttl. Intents with
// a zero creation time are never considered expired; a record whose timestamp
// is unusable must not silently vanish during pruning.
func (i Intent) Expired(now time.Time, ttl time.Duration) bool {
	if i.CreatedAt.IsZero() {
		return false
	}
	return i.CreatedAt.Before(now.Add(-ttl))
}
