package domain

import "time"

// StopKind distinguishes the three kinds of route stops.
type StopKind string

const (
	// StopDelivery drops quantity at a demand's destination.
	StopDelivery StopKind = "delivery"
	// StopRefill returns the vehicle to the supply location and restores
	// its full capacity mid-route.
	StopRefill StopKind = "refill"
	// StopReturn is the optional final leg back to the supply location
	// after the last delivery. Nothing is delivered.
	StopReturn StopKind = "return"
)

// Represents a single visit within a vehicle's route.
// A Stop records where the vehicle went, how much it delivered there,
// when it departed and arrived, and running totals since route start.
type Stop struct {
	Kind     StopKind
	DemandID string // empty for refill and return stops
	Location Coordinates
	Quantity float64
	DepartAt time.Time
	ArriveAt time.Time

	DistanceMeters  int
	DurationSeconds int

	TotalDistanceMeters  int
	TotalDurationSeconds int
}

// Represents the completed route for a single vehicle.
// A Route is the output of route construction and describes the ordered
// sequence of stops along with aggregate metrics. It is immutable result
// data and is never modified after the solve completes.
//
// Invariants: load after any stop never exceeds the vehicle's capacity
// and never goes negative; a refill stop restores the full capacity at
// the supply location; arrival timestamps are non-decreasing.
type Route struct {
	VehicleID string
	DepartAt  time.Time
	Stops     []Stop

	TotalDistanceMeters  int
	TotalDurationSeconds int

	// DeliveredQuantity is the total quantity dropped across all stops.
	DeliveredQuantity float64
	// Refills counts mid-route returns to the supply location.
	Refills int
	// CapacityIssued is the capacity made available over the whole route:
	// the vehicle's capacity once per departure plus once per refill.
	CapacityIssued float64
	// CompletedAt is when the vehicle finished its final stop.
	CompletedAt time.Time
}
