package dto

import "time"

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type VehicleRequest struct {
	VehicleID string    `json:"vehicle_id"`
	Capacity  float64   `json:"capacity"`
	DepartAt  time.Time `json:"depart_at"`
}

type DemandRequest struct {
	DemandID    string      `json:"demand_id"`
	Location    Coordinates `json:"location"`
	Quantity    float64     `json:"quantity"`
	WindowStart *time.Time  `json:"window_start"`
	WindowEnd   *time.Time  `json:"window_end"`
}

// Omitted option fields fall back to the server's configured defaults.
type SolveOptionsRequest struct {
	UnloadMinutesPer100Units *float64 `json:"unload_minutes_per_100_units"`
	ReturnToDepot            *bool    `json:"return_to_depot"`
	UtilizationThreshold     *float64 `json:"utilization_threshold"`
}

type SolveRequest struct {
	SupplyLocation Coordinates          `json:"supply_location"`
	Vehicles       []VehicleRequest     `json:"vehicles"`
	Demands        []DemandRequest      `json:"demands"`
	Options        *SolveOptionsRequest `json:"options"`
}

type StopResponse struct {
	Kind                 string      `json:"kind"`
	DemandID             string      `json:"demand_id,omitempty"`
	Location             Coordinates `json:"location"`
	Quantity             float64     `json:"quantity"`
	DepartAt             time.Time   `json:"depart_at"`
	ArriveAt             time.Time   `json:"arrive_at"`
	DistanceMeters       int         `json:"distance_meters"`
	DurationSeconds      int         `json:"duration_seconds"`
	TotalDistanceMeters  int         `json:"total_distance_meters"`
	TotalDurationSeconds int         `json:"total_duration_seconds"`
}

type RouteResponse struct {
	VehicleID            string         `json:"vehicle_id"`
	DepartAt             time.Time      `json:"depart_at"`
	CompletedAt          time.Time      `json:"completed_at"`
	Stops                []StopResponse `json:"stops"`
	TotalDistanceMeters  int            `json:"total_distance_meters"`
	TotalDurationSeconds int            `json:"total_duration_seconds"`
	DeliveredQuantity    float64        `json:"delivered_quantity"`
	Refills              int            `json:"refills"`
	CapacityIssued       float64        `json:"capacity_issued"`
}

type UnmetDemandResponse struct {
	DemandID  string  `json:"demand_id"`
	Requested float64 `json:"requested"`
	Remaining float64 `json:"remaining"`
}

type VehicleSummaryResponse struct {
	VehicleID       string    `json:"vehicle_id"`
	DistanceMeters  int       `json:"distance_meters"`
	DurationSeconds int       `json:"duration_seconds"`
	Delivered       float64   `json:"delivered"`
	CapacityIssued  float64   `json:"capacity_issued"`
	LoadFactor      float64   `json:"load_factor"`
	Refills         int       `json:"refills"`
	AvgSpeedKmph    float64   `json:"avg_speed_kmph"`
	DepartAt        time.Time `json:"depart_at"`
	CompletedAt     time.Time `json:"completed_at"`
	Underused       bool      `json:"underused"`
}

type WindowViolationResponse struct {
	VehicleID        string    `json:"vehicle_id"`
	DemandID         string    `json:"demand_id"`
	ArriveAt         time.Time `json:"arrive_at"`
	WindowStart      time.Time `json:"window_start"`
	WindowEnd        time.Time `json:"window_end"`
	DeviationSeconds int       `json:"deviation_seconds"`
}

type BottleneckReportResponse struct {
	Unmet                []UnmetDemandResponse     `json:"unmet_demands"`
	TotalUnmetQuantity   float64                   `json:"total_unmet_quantity"`
	Vehicles             []VehicleSummaryResponse  `json:"vehicles"`
	UnderusedVehicles    []string                  `json:"underused_vehicles"`
	WindowViolations     []WindowViolationResponse `json:"window_violations"`
	TotalDistanceMeters  int                       `json:"total_distance_meters"`
	TotalDurationSeconds int                       `json:"total_duration_seconds"`
	TotalDelivered       float64                   `json:"total_delivered"`
	TotalRefills         int                       `json:"total_refills"`
	BottleneckVehicleID  string                    `json:"bottleneck_vehicle_id,omitempty"`
	CompletionSeconds    int                       `json:"completion_seconds"`
}

type SolveResponse struct {
	SolveID string                   `json:"solve_id"`
	Routes  []RouteResponse          `json:"routes"`
	Report  BottleneckReportResponse `json:"report"`
}
