package services

import (
	"time"

	"supply-route-service/internal/domain"
)

const defaultUtilizationThreshold = 0.5

// UnmetDemand reports a demand left with quantity outstanding.
type UnmetDemand struct {
	DemandID  string
	Requested float64
	Remaining float64
}

// VehicleSummary aggregates one vehicle's route.
type VehicleSummary struct {
	VehicleID       string
	DistanceMeters  int
	DurationSeconds int
	Delivered       float64
	CapacityIssued  float64
	// LoadFactor is delivered quantity over capacity issued across the
	// vehicle's refill cycles.
	LoadFactor   float64
	Refills      int
	AvgSpeedKmph float64
	DepartAt     time.Time
	CompletedAt  time.Time
	// Underused marks load factors below the utilization threshold.
	Underused bool
}

// WindowViolation reports an arrival outside a demand's delivery window.
// DeviationSeconds is negative for early arrivals (seconds before the
// window opens) and positive for late ones (seconds after it closes).
type WindowViolation struct {
	VehicleID        string
	DemandID         string
	ArriveAt         time.Time
	WindowStart      time.Time
	WindowEnd        time.Time
	DeviationSeconds int
}

// Report is the complete outcome of one solve: the routes plus the
// bottleneck analysis. Unmet demand and window violations are reportable
// outcomes of a feasible-but-imperfect heuristic, not errors.
type Report struct {
	SolveID string
	Routes  []*domain.Route

	Unmet              []UnmetDemand
	TotalUnmetQuantity float64

	Vehicles          []VehicleSummary
	UnderusedVehicles []string

	WindowViolations []WindowViolation

	TotalDistanceMeters  int
	TotalDurationSeconds int
	TotalDelivered       float64
	TotalRefills         int

	// BottleneckVehicleID names the vehicle whose route finishes last
	// relative to its departure; it drives overall completion time.
	BottleneckVehicleID string
	CompletionSeconds   int
}

// AnalyzeBottlenecks post-processes completed routes and the final
// ledger state. It reads but never mutates its inputs.
func AnalyzeBottlenecks(
	routes []*domain.Route,
	demands []domain.Demand,
	ledger *domain.Ledger,
	utilizationThreshold float64,
) *Report {
	if utilizationThreshold <= 0 {
		utilizationThreshold = defaultUtilizationThreshold
	}

	byID := make(map[string]domain.Demand, len(demands))
	for _, d := range demands {
		byID[d.DemandID] = d
	}

	report := &Report{
		Routes:            routes,
		Unmet:             []UnmetDemand{},
		Vehicles:          []VehicleSummary{},
		UnderusedVehicles: []string{},
		WindowViolations:  []WindowViolation{},
	}

	for _, id := range ledger.UnmetDemandIDs() {
		report.Unmet = append(report.Unmet, UnmetDemand{
			DemandID:  id,
			Requested: byID[id].Quantity,
			Remaining: ledger.Remaining(id),
		})
		report.TotalUnmetQuantity += ledger.Remaining(id)
	}

	var maxElapsed time.Duration

	for _, route := range routes {
		elapsed := route.CompletedAt.Sub(route.DepartAt)

		summary := VehicleSummary{
			VehicleID:       route.VehicleID,
			DistanceMeters:  route.TotalDistanceMeters,
			DurationSeconds: route.TotalDurationSeconds,
			Delivered:       route.DeliveredQuantity,
			CapacityIssued:  route.CapacityIssued,
			Refills:         route.Refills,
			DepartAt:        route.DepartAt,
			CompletedAt:     route.CompletedAt,
		}
		if route.CapacityIssued > 0 {
			summary.LoadFactor = route.DeliveredQuantity / route.CapacityIssued
		}
		if hours := elapsed.Hours(); hours > 0 {
			summary.AvgSpeedKmph = float64(route.TotalDistanceMeters) / 1000 / hours
		}
		if summary.LoadFactor < utilizationThreshold {
			summary.Underused = true
			report.UnderusedVehicles = append(report.UnderusedVehicles, route.VehicleID)
		}
		report.Vehicles = append(report.Vehicles, summary)

		report.TotalDistanceMeters += route.TotalDistanceMeters
		report.TotalDurationSeconds += route.TotalDurationSeconds
		report.TotalDelivered += route.DeliveredQuantity
		report.TotalRefills += route.Refills

		// The strictly-greater comparison keeps the earliest-dispatched
		// vehicle on ties, so the report is deterministic.
		if elapsed > maxElapsed || report.BottleneckVehicleID == "" {
			maxElapsed = elapsed
			report.BottleneckVehicleID = route.VehicleID
		}

		for _, stop := range route.Stops {
			if stop.Kind != domain.StopDelivery {
				continue
			}
			demand, ok := byID[stop.DemandID]
			if !ok || demand.Window.IsZero() {
				continue
			}

			if v, violated := windowDeviation(stop.ArriveAt, demand.Window); violated {
				report.WindowViolations = append(report.WindowViolations, WindowViolation{
					VehicleID:        route.VehicleID,
					DemandID:         stop.DemandID,
					ArriveAt:         stop.ArriveAt,
					WindowStart:      demand.Window.Start,
					WindowEnd:        demand.Window.End,
					DeviationSeconds: v,
				})
			}
		}
	}

	report.CompletionSeconds = int(maxElapsed.Seconds())
	return report
}

func windowDeviation(arrive time.Time, w domain.DeliveryWindow) (int, bool) {
	if arrive.Before(w.Start) {
		return -int(w.Start.Sub(arrive).Seconds()), true
	}
	if arrive.After(w.End) {
		return int(arrive.Sub(w.End).Seconds()), true
	}
	return 0, false
}
