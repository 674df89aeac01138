package domain

import "time"

// Delivery vehicle departing from the supply location.
// Capacity is the quantity the vehicle can carry per trip; a refill at
// the supply location restores the full capacity. DepartAt is the
// earliest time the vehicle may leave on its first trip.
type Vehicle struct {
	VehicleID string
	Capacity  float64
	DepartAt  time.Time
}
