package domain

import (
	"fmt"
	"sort"
)

// OverConsumptionError indicates an attempt to consume more quantity than
// a demand has remaining. It signals a logic fault in route construction,
// not an expected runtime condition.
type OverConsumptionError struct {
	DemandID  string
	Requested float64
	Remaining float64
}

func (e *OverConsumptionError) Error() string {
	return fmt.Sprintf(
		"over-consumption on demand %q: requested %.2f with %.2f remaining",
		e.DemandID, e.Requested, e.Remaining,
	)
}

// Ledger tracks undelivered quantity per demand across a single solve.
// It is shared by all vehicles but mutated strictly sequentially: the
// scheduler processes one vehicle at a time, so the ledger needs no
// internal locking. Remaining quantities are monotonically non-increasing.
type Ledger struct {
	remaining map[string]float64
}

// NewLedger creates a fresh ledger with every demand fully outstanding.
func NewLedger(demands []Demand) *Ledger {
	remaining := make(map[string]float64, len(demands))
	for _, d := range demands {
		remaining[d.DemandID] = d.Quantity
	}
	return &Ledger{remaining: remaining}
}

// Remaining returns the undelivered quantity for a demand.
// Unknown demand IDs report zero.
func (l *Ledger) Remaining(demandID string) float64 {
	return l.remaining[demandID]
}

// Consume records a delivery of qty against a demand and returns the
// quantity still outstanding. Consuming more than remains is rejected
// with an OverConsumptionError and leaves the ledger unchanged.
func (l *Ledger) Consume(demandID string, qty float64) (float64, error) {
	rem, ok := l.remaining[demandID]
	if !ok || qty > rem {
		return rem, &OverConsumptionError{DemandID: demandID, Requested: qty, Remaining: rem}
	}
	rem -= qty
	l.remaining[demandID] = rem
	return rem, nil
}

// TotalRemaining sums the outstanding quantity across all demands.
func (l *Ledger) TotalRemaining() float64 {
	var total float64
	for _, rem := range l.remaining {
		total += rem
	}
	return total
}

// UnmetDemandIDs returns the IDs of demands with nonzero remaining
// quantity, sorted for deterministic reporting.
func (l *Ledger) UnmetDemandIDs() []string {
	ids := make([]string, 0)
	for id, rem := range l.remaining {
		if rem > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
