// Package memstore holds the volatile choice state: pending intents, the
// append-only confirmation ledger and the per-trip aggregates. All three live
// under one mutual-exclusion domain so a confirmation can never interleave
// with a prune, and every mutation returns the snapshot computed under the
// same lock hold, keeping broadcasts consistent with the mutation that
// triggered them. State is lost on process restart by design.
package memstore

import (
	"sort"
	"sync"
	"time"

	"pacectrl/internal/domain/choice"
	"pacectrl/internal/pkg/errs"
)

type Store struct {
	mu            sync.RWMutex
	intents       map[string]choice.Intent
	confirmations []choice.Confirmation
	aggregates    map[string]choice.TripAggregate
}

func NewStore() *Store {
	return &Store{
		intents:    make(map[string]choice.Intent),
		aggregates: make(map[string]choice.TripAggregate),
	}
}

// InsertIntent stores a live intent and returns the post-insert snapshot.
func (s *Store) InsertIntent(intent choice.Intent) choice.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents[intent.ID] = intent
	return s.snapshotLocked()
}

// ConfirmIntent atomically pops the intent, appends the confirmation and
// updates the trip aggregate. A second call with the same id, or a call after
// the intent expired, fails with ErrIntentNotFound.
func (s *Store) ConfirmIntent(bookingID int64, intentID string, now time.Time) (choice.Confirmation, choice.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[intentID]
	if !ok {
		err := errs.Mark(errs.New("intent "+intentID+" is not live"), errs.ErrIntentNotFound)
		return choice.Confirmation{}, choice.Snapshot{}, err
	}
	delete(s.intents, intentID)

	record := intent.Confirm(bookingID, now)
	s.confirmations = append(s.confirmations, record)
	s.aggregates[record.ExternalTripID] = accumulate(s.aggregates[record.ExternalTripID], record)

	return record, s.snapshotLocked(), nil
}

// PruneExpired removes every intent older than now-ttl and returns the removed
// ids together with the post-prune snapshot. Intents whose creation time is
// unusable (zero) are skipped, not removed.
func (s *Store) PruneExpired(now time.Time, ttl time.Duration) ([]string, choice.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for id, intent := range s.intents {
		if intent.Expired(now, ttl) {
			removed = append(removed, id)
		}
	}
	for _, id := range removed {
		delete(s.intents, id)
	}
	return removed, s.snapshotLocked()
}

// LiveIntents returns the pending intents, most recent first.
func (s *Store) LiveIntents() []choice.Intent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.liveIntentsLocked()
}

// Confirmations returns the whole ledger, most recent first.
func (s *Store) Confirmations() []choice.Confirmation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.confirmationsLocked()
}

// ConfirmationsForTrip returns the ledger entries for one trip, most recent
// first.
func (s *Store) ConfirmationsForTrip(externalTripID string) []choice.Confirmation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]choice.Confirmation, 0)
	for i := len(s.confirmations) - 1; i >= 0; i-- {
		if s.confirmations[i].ExternalTripID == externalTripID {
			records = append(records, s.confirmations[i])
		}
	}
	return records
}

// AggregateForTrip returns the running (count, mean) for a trip. A trip with
// no confirmations yet yields count=0, mean=0; that is not an error.
func (s *Store) AggregateForTrip(externalTripID string) choice.TripAggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if agg, ok := s.aggregates[externalTripID]; ok {
		return agg
	}
	return choice.TripAggregate{ExternalTripID: externalTripID}
}

// Aggregates returns all per-trip aggregates, ordered by trip id.
func (s *Store) Aggregates() []choice.TripAggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aggregatesLocked()
}

// Snapshot returns a consistent point-in-time view of the whole state.
func (s *Store) Snapshot() choice.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() choice.Snapshot {
	return choice.Snapshot{
		LiveIntents:    s.liveIntentsLocked(),
		Confirmations:  s.confirmationsLocked(),
		TripAggregates: s.aggregatesLocked(),
	}
}

func (s *Store) liveIntentsLocked() []choice.Intent {
	intents := make([]choice.Intent, 0, len(s.intents))
	for _, intent := range s.intents {
		intents = append(intents, intent)
	}
	sort.Slice(intents, func(i, j int) bool {
		if intents[i].CreatedAt.Equal(intents[j].CreatedAt) {
			return intents[i].ID < intents[j].ID
		}
		return intents[i].CreatedAt.After(intents[j].CreatedAt)
	})
	return intents
}

func (s *Store) confirmationsLocked() []choice.Confirmation {
	records := make([]choice.Confirmation, len(s.confirmations))
	for i, record := range s.confirmations {
		records[len(records)-1-i] = record
	}
	return records
}

func (s *Store) aggregatesLocked() []choice.TripAggregate {
	aggs := make([]choice.TripAggregate, 0, len(s.aggregates))
	for _, agg := range s.aggregates {
		aggs = append(aggs, agg)
	}
	sort.Slice(aggs, func(i, j int) bool {
		return aggs[i].ExternalTripID < aggs[j].ExternalTripID
	})
	return aggs
}
