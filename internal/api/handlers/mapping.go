package handlers

import (
	"supply-route-service/internal/api/dto"
	"supply-route-service/internal/config"
	"supply-route-service/internal/domain"
	"supply-route-service/internal/services"
)

func toCoordinates(c dto.Coordinates) domain.Coordinates {
	return domain.Coordinates{Lat: c.Lat, Lon: c.Lon}
}

func fromCoordinates(c domain.Coordinates) dto.Coordinates {
	return dto.Coordinates{Lat: c.Lat, Lon: c.Lon}
}

func toVehicles(in []dto.VehicleRequest) []domain.Vehicle {
	vehicles := make([]domain.Vehicle, 0, len(in))
	for _, v := range in {
		vehicles = append(vehicles, domain.Vehicle{
			VehicleID: v.VehicleID,
			Capacity:  v.Capacity,
			DepartAt:  v.DepartAt,
		})
	}
	return vehicles
}

func toDemands(in []dto.DemandRequest) []domain.Demand {
	demands := make([]domain.Demand, 0, len(in))
	for _, d := range in {
		demand := domain.Demand{
			DemandID: d.DemandID,
			Location: toCoordinates(d.Location),
			Quantity: d.Quantity,
		}
		if d.WindowStart != nil {
			demand.Window.Start = *d.WindowStart
		}
		if d.WindowEnd != nil {
			demand.Window.End = *d.WindowEnd
		}
		demands = append(demands, demand)
	}
	return demands
}

// toSolveOptions applies the server's configured solver defaults, then
// any per-request overrides.
func toSolveOptions(defaults config.SolverConfig, req *dto.SolveOptionsRequest) services.SolveOptions {
	opts := services.SolveOptions{
		BuildOptions: services.BuildOptions{
			UnloadMinutesPer100Units: defaults.UnloadMinutesPer100Units,
			ReturnToDepot:            defaults.ReturnToDepot,
		},
		UtilizationThreshold: defaults.UtilizationThreshold,
	}
	if req == nil {
		return opts
	}
	if req.UnloadMinutesPer100Units != nil {
		opts.UnloadMinutesPer100Units = *req.UnloadMinutesPer100Units
	}
	if req.ReturnToDepot != nil {
		opts.ReturnToDepot = *req.ReturnToDepot
	}
	if req.UtilizationThreshold != nil {
		opts.UtilizationThreshold = *req.UtilizationThreshold
	}
	return opts
}

func fromRoute(route *domain.Route) dto.RouteResponse {
	stops := make([]dto.StopResponse, 0, len(route.Stops))
	for _, s := range route.Stops {
		stops = append(stops, dto.StopResponse{
			Kind:                 string(s.Kind),
			DemandID:             s.DemandID,
			Location:             fromCoordinates(s.Location),
			Quantity:             s.Quantity,
			DepartAt:             s.DepartAt,
			ArriveAt:             s.ArriveAt,
			DistanceMeters:       s.DistanceMeters,
			DurationSeconds:      s.DurationSeconds,
			TotalDistanceMeters:  s.TotalDistanceMeters,
			TotalDurationSeconds: s.TotalDurationSeconds,
		})
	}

	return dto.RouteResponse{
		VehicleID:            route.VehicleID,
		DepartAt:             route.DepartAt,
		CompletedAt:          route.CompletedAt,
		Stops:                stops,
		TotalDistanceMeters:  route.TotalDistanceMeters,
		TotalDurationSeconds: route.TotalDurationSeconds,
		DeliveredQuantity:    route.DeliveredQuantity,
		Refills:              route.Refills,
		CapacityIssued:       route.CapacityIssued,
	}
}

func fromReport(report *services.Report) dto.SolveResponse {
	routes := make([]dto.RouteResponse, 0, len(report.Routes))
	for _, r := range report.Routes {
		routes = append(routes, fromRoute(r))
	}

	unmet := make([]dto.UnmetDemandResponse, 0, len(report.Unmet))
	for _, u := range report.Unmet {
		unmet = append(unmet, dto.UnmetDemandResponse{
			DemandID:  u.DemandID,
			Requested: u.Requested,
			Remaining: u.Remaining,
		})
	}

	vehicles := make([]dto.VehicleSummaryResponse, 0, len(report.Vehicles))
	for _, v := range report.Vehicles {
		vehicles = append(vehicles, dto.VehicleSummaryResponse{
			VehicleID:       v.VehicleID,
			DistanceMeters:  v.DistanceMeters,
			DurationSeconds: v.DurationSeconds,
			Delivered:       v.Delivered,
			CapacityIssued:  v.CapacityIssued,
			LoadFactor:      v.LoadFactor,
			Refills:         v.Refills,
			AvgSpeedKmph:    v.AvgSpeedKmph,
			DepartAt:        v.DepartAt,
			CompletedAt:     v.CompletedAt,
			Underused:       v.Underused,
		})
	}

	violations := make([]dto.WindowViolationResponse, 0, len(report.WindowViolations))
	for _, v := range report.WindowViolations {
		violations = append(violations, dto.WindowViolationResponse{
			VehicleID:        v.VehicleID,
			DemandID:         v.DemandID,
			ArriveAt:         v.ArriveAt,
			WindowStart:      v.WindowStart,
			WindowEnd:        v.WindowEnd,
			DeviationSeconds: v.DeviationSeconds,
		})
	}

	return dto.SolveResponse{
		SolveID: report.SolveID,
		Routes:  routes,
		Report: dto.BottleneckReportResponse{
			Unmet:                unmet,
			TotalUnmetQuantity:   report.TotalUnmetQuantity,
			Vehicles:             vehicles,
			UnderusedVehicles:    report.UnderusedVehicles,
			WindowViolations:     violations,
			TotalDistanceMeters:  report.TotalDistanceMeters,
			TotalDurationSeconds: report.TotalDurationSeconds,
			TotalDelivered:       report.TotalDelivered,
			TotalRefills:         report.TotalRefills,
			BottleneckVehicleID:  report.BottleneckVehicleID,
			CompletionSeconds:    report.CompletionSeconds,
		},
	}
}
