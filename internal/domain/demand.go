package domain

import "time"

// DeliveryWindow is the preferred delivery interval for a demand.
// Windows are advisory: arrival outside the window never blocks an
// assignment, it is only recorded for bottleneck reporting. A zero-value
// window means the demand has no delivery preference.
type DeliveryWindow struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether no window was specified.
func (w DeliveryWindow) IsZero() bool { return w.Start.IsZero() && w.End.IsZero() }

// Represents a single delivery demand handled by the system.
// A Demand has a unique identifier, a destination, a requested quantity,
// and a soft delivery window. It is immutable once created; fulfillment
// progress is tracked separately in the Ledger.
type Demand struct {
	DemandID string
	Location Coordinates
	Quantity float64
	Window   DeliveryWindow
}
