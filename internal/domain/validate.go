package domain

import "fmt"

// InvalidInputError identifies the exact record and field that failed
// validation before a solve starts.
type InvalidInputError struct {
	Record string // "supply", "vehicle", or "demand"
	ID     string // offending record identifier, empty for the supply point
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid input: %s: %s: %s", e.Record, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s %q: %s: %s", e.Record, e.ID, e.Field, e.Reason)
}

// ValidateInput rejects malformed solve inputs before any routing work
// begins. It returns the first violation found as an InvalidInputError.
func ValidateInput(supply Coordinates, vehicles []Vehicle, demands []Demand) error {
	if !supply.Valid() {
		return &InvalidInputError{Record: "supply", Field: "location", Reason: "coordinates must be finite and in range"}
	}

	seenVehicles := make(map[string]struct{}, len(vehicles))
	for i, v := range vehicles {
		if v.VehicleID == "" {
			return &InvalidInputError{
				Record: "vehicle",
				ID:     fmt.Sprintf("#%d", i+1),
				Field:  "vehicle_id",
				Reason: "must be non-empty",
			}
		}
		if _, ok := seenVehicles[v.VehicleID]; ok {
			return &InvalidInputError{Record: "vehicle", ID: v.VehicleID, Field: "vehicle_id", Reason: "duplicate identifier"}
		}
		seenVehicles[v.VehicleID] = struct{}{}

		if v.Capacity <= 0 {
			return &InvalidInputError{Record: "vehicle", ID: v.VehicleID, Field: "capacity", Reason: "must be positive"}
		}
	}

	seenDemands := make(map[string]struct{}, len(demands))
	for i, d := range demands {
		if d.DemandID == "" {
			return &InvalidInputError{
				Record: "demand",
				ID:     fmt.Sprintf("#%d", i+1),
				Field:  "demand_id",
				Reason: "must be non-empty",
			}
		}
		if _, ok := seenDemands[d.DemandID]; ok {
			return &InvalidInputError{Record: "demand", ID: d.DemandID, Field: "demand_id", Reason: "duplicate identifier"}
		}
		seenDemands[d.DemandID] = struct{}{}

		if d.Quantity <= 0 {
			return &InvalidInputError{Record: "demand", ID: d.DemandID, Field: "quantity", Reason: "must be positive"}
		}
		if !d.Location.Valid() {
			return &InvalidInputError{Record: "demand", ID: d.DemandID, Field: "location", Reason: "coordinates must be finite and in range"}
		}
		if !d.Window.IsZero() && d.Window.End.Before(d.Window.Start) {
			return &InvalidInputError{Record: "demand", ID: d.DemandID, Field: "window", Reason: "window end precedes window start"}
		}
	}

	return nil
}
