package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"supply-route-service/internal/adapters/distance"
	"supply-route-service/internal/domain"
)

func twoVehicleFixture() ([]distance.MockPair, []domain.Vehicle, []domain.Demand) {
	pairs := []distance.MockPair{
		{From: supply, To: locA, Meters: 1000, Seconds: 600},
		{From: supply, To: locB, Meters: 2000, Seconds: 1200},
		{From: locA, To: locB, Meters: 800, Seconds: 480},
		{From: locA, To: supply, Meters: 1000, Seconds: 600},
		{From: locB, To: supply, Meters: 2000, Seconds: 1200},
	}

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	vehicles := []domain.Vehicle{
		{VehicleID: "truck-late", Capacity: 400, DepartAt: day.Add(10 * time.Hour)},
		{VehicleID: "truck-early", Capacity: 400, DepartAt: day.Add(8 * time.Hour)},
	}
	demands := []domain.Demand{
		{DemandID: "d-a", Location: locA, Quantity: 400},
		{DemandID: "d-b", Location: locB, Quantity: 400},
	}

	return pairs, vehicles, demands
}

func TestSolveDispatchOrder(t *testing.T) {
	pairs, vehicles, demands := twoVehicleFixture()
	solver := NewSolver(distance.NewMockDistanceProvider(pairs), nil)

	report, err := solver.Solve(context.Background(), SolveRequest{
		Supply:   supply,
		Vehicles: vehicles,
		Demands:  demands,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the earlier departure dispatches first; its refill cycles absorb
	// all demand, so the later vehicle never rolls
	if len(report.Routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(report.Routes))
	}

	route := report.Routes[0]
	if route.VehicleID != "truck-early" {
		t.Fatalf("dispatched vehicle = %s, want truck-early", route.VehicleID)
	}

	stops := deliveryStops(route)
	if len(stops) != 2 || stops[0].DemandID != "d-a" || stops[1].DemandID != "d-b" {
		t.Fatalf("delivery order = %+v, want d-a then d-b", stops)
	}
	if route.Refills != 1 {
		t.Fatalf("refills = %d, want 1", route.Refills)
	}

	if report.TotalUnmetQuantity != 0 {
		t.Fatalf("unmet = %v, want 0", report.TotalUnmetQuantity)
	}
}

func TestSolveStopsWhenDemandExhausted(t *testing.T) {
	pairs, vehicles, _ := twoVehicleFixture()
	solver := NewSolver(distance.NewMockDistanceProvider(pairs), nil)

	// one small demand; the second vehicle never rolls
	demands := []domain.Demand{{DemandID: "d-a", Location: locA, Quantity: 50}}

	report, err := solver.Solve(context.Background(), SolveRequest{
		Supply:   supply,
		Vehicles: vehicles,
		Demands:  demands,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(report.Routes))
	}
	if report.Routes[0].VehicleID != "truck-early" {
		t.Fatalf("dispatched vehicle = %s, want truck-early", report.Routes[0].VehicleID)
	}
}

func TestSolveDeterministic(t *testing.T) {
	pairs, vehicles, demands := twoVehicleFixture()

	run := func() *Report {
		solver := NewSolver(distance.NewMockDistanceProvider(pairs), nil)
		report, err := solver.Solve(context.Background(), SolveRequest{
			Supply:   supply,
			Vehicles: vehicles,
			Demands:  demands,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return report
	}

	a, b := run(), run()

	if len(a.Routes) != len(b.Routes) {
		t.Fatalf("route counts differ: %d vs %d", len(a.Routes), len(b.Routes))
	}
	for i := range a.Routes {
		ra, rb := a.Routes[i], b.Routes[i]
		if ra.VehicleID != rb.VehicleID || len(ra.Stops) != len(rb.Stops) {
			t.Fatalf("route %d differs: %s/%d vs %s/%d", i, ra.VehicleID, len(ra.Stops), rb.VehicleID, len(rb.Stops))
		}
		for j := range ra.Stops {
			if ra.Stops[j] != rb.Stops[j] {
				t.Fatalf("route %d stop %d differs: %+v vs %+v", i, j, ra.Stops[j], rb.Stops[j])
			}
		}
	}
	if a.TotalDistanceMeters != b.TotalDistanceMeters || a.BottleneckVehicleID != b.BottleneckVehicleID {
		t.Fatal("report aggregates differ between identical runs")
	}
}

func TestSolveInvalidInput(t *testing.T) {
	pairs, vehicles, demands := twoVehicleFixture()
	solver := NewSolver(distance.NewMockDistanceProvider(pairs), nil)

	vehicles[0].Capacity = -1

	_, err := solver.Solve(context.Background(), SolveRequest{
		Supply:   supply,
		Vehicles: vehicles,
		Demands:  demands,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var inv *domain.InvalidInputError
	if !errors.As(err, &inv) {
		t.Fatalf("error type = %T, want *InvalidInputError", err)
	}
}

func TestSolveNoVehiclesReportsUnmet(t *testing.T) {
	pairs, _, demands := twoVehicleFixture()
	solver := NewSolver(distance.NewMockDistanceProvider(pairs), nil)

	report, err := solver.Solve(context.Background(), SolveRequest{
		Supply:  supply,
		Demands: demands,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Routes) != 0 {
		t.Fatalf("routes = %d, want 0", len(report.Routes))
	}
	if len(report.Unmet) != 2 {
		t.Fatalf("unmet entries = %d, want 2", len(report.Unmet))
	}
	if report.Unmet[0].DemandID != "d-a" || report.Unmet[1].DemandID != "d-b" {
		t.Fatalf("unmet order = %+v, want d-a then d-b", report.Unmet)
	}
	if report.TotalUnmetQuantity != 800 {
		t.Fatalf("total unmet = %v, want 800", report.TotalUnmetQuantity)
	}
}

func TestSolveWithFallbackProviderOffline(t *testing.T) {
	// the great-circle fallback alone serves a full solve
	provider := distance.NewFallbackProvider(nil, nil, nil, nil)
	solver := NewSolver(provider, nil)

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	report, err := solver.Solve(context.Background(), SolveRequest{
		Supply: domain.Coordinates{Lat: 19.0760, Lon: 72.8777},
		Vehicles: []domain.Vehicle{
			{VehicleID: "truck-1", Capacity: 500, DepartAt: day.Add(8 * time.Hour)},
		},
		Demands: []domain.Demand{
			{DemandID: "pune", Location: domain.Coordinates{Lat: 18.5204, Lon: 73.8567}, Quantity: 800},
			{DemandID: "nashik", Location: domain.Coordinates{Lat: 19.9975, Lon: 73.7898}, Quantity: 300},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// one vehicle refills until everything is delivered
	if report.TotalUnmetQuantity != 0 {
		t.Fatalf("unmet = %v, want 0", report.TotalUnmetQuantity)
	}
	if report.TotalDelivered != 1100 {
		t.Fatalf("delivered = %v, want 1100", report.TotalDelivered)
	}
	if report.TotalRefills < 1 {
		t.Fatalf("refills = %d, want at least 1", report.TotalRefills)
	}
	if report.SolveID == "" {
		t.Fatal("missing solve id")
	}
}
