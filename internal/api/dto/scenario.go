package dto

import "time"

type DemandResponse struct {
	DemandID    string      `json:"demand_id"`
	Location    Coordinates `json:"location"`
	Quantity    float64     `json:"quantity"`
	WindowStart *time.Time  `json:"window_start,omitempty"`
	WindowEnd   *time.Time  `json:"window_end,omitempty"`
}

type VehicleResponse struct {
	VehicleID string    `json:"vehicle_id"`
	Capacity  float64   `json:"capacity"`
	DepartAt  time.Time `json:"depart_at"`
}

type ScenarioResponse struct {
	SupplyLocation Coordinates       `json:"supply_location"`
	Vehicles       []VehicleResponse `json:"vehicles"`
	Demands        []DemandResponse  `json:"demands"`
}
