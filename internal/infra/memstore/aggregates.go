package memstore

import "pacectrl/internal/domain/choice"

// accumulate folds one confirmation into a trip aggregate using the
// incremental mean update: mean += (x - mean) / count. Numerically stable and
// avoids re-summing the ledger on every confirmation.
func accumulate(agg choice.TripAggregate, record choice.Confirmation) choice.TripAggregate {
	agg.ExternalTripID = record.ExternalTripID
	agg.Count++
	agg.MeanReductionPct += (record.ReductionPct - agg.MeanReductionPct) / float64(agg.Count)
	return agg
}

// BuildAggregates rebuilds per-trip aggregates from scratch by replaying a
// confirmation ledger. The incrementally maintained aggregates must always
// match this replay; it is the canonical correctness check.
func BuildAggregates(records []choice.Confirmation) map[string]choice.TripAggregate {
	aggs := make(map[string]choice.TripAggregate)
	for _, record := range records {
		aggs[record.ExternalTripID] = accumulate(aggs[record.ExternalTripID], record)
	}
	return aggs
}
