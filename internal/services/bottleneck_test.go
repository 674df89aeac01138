package services

import (
	"testing"
	"time"

	"supply-route-service/internal/domain"
)

func TestAnalyzeBottlenecksAggregates(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	demands := []domain.Demand{
		{DemandID: "d-a", Location: locA, Quantity: 400},
		{DemandID: "d-b", Location: locB, Quantity: 400},
	}
	ledger := domain.NewLedger(demands)
	if _, err := ledger.Consume("d-a", 400); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ledger.Consume("d-b", 300); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	routes := []*domain.Route{
		{
			VehicleID:            "truck-1",
			DepartAt:             day.Add(8 * time.Hour),
			CompletedAt:          day.Add(10 * time.Hour),
			TotalDistanceMeters:  100000,
			TotalDurationSeconds: 7200,
			DeliveredQuantity:    400,
			CapacityIssued:       500,
			Refills:              0,
		},
		{
			VehicleID:            "truck-2",
			DepartAt:             day.Add(8 * time.Hour),
			CompletedAt:          day.Add(12 * time.Hour),
			TotalDistanceMeters:  200000,
			TotalDurationSeconds: 14400,
			DeliveredQuantity:    300,
			CapacityIssued:       1000,
			Refills:              1,
		},
	}

	report := AnalyzeBottlenecks(routes, demands, ledger, 0.5)

	if report.TotalDistanceMeters != 300000 {
		t.Fatalf("total distance = %d, want 300000", report.TotalDistanceMeters)
	}
	if report.TotalDelivered != 700 {
		t.Fatalf("total delivered = %v, want 700", report.TotalDelivered)
	}
	if report.TotalRefills != 1 {
		t.Fatalf("total refills = %d, want 1", report.TotalRefills)
	}

	if len(report.Unmet) != 1 || report.Unmet[0].DemandID != "d-b" {
		t.Fatalf("unmet = %+v, want single d-b", report.Unmet)
	}
	if report.Unmet[0].Requested != 400 || report.Unmet[0].Remaining != 100 {
		t.Fatalf("unmet quantities = %+v, want requested 400 remaining 100", report.Unmet[0])
	}
	if report.TotalUnmetQuantity != 100 {
		t.Fatalf("total unmet = %v, want 100", report.TotalUnmetQuantity)
	}

	// truck-2 finishes 4h after its departure, truck-1 only 2h
	if report.BottleneckVehicleID != "truck-2" {
		t.Fatalf("bottleneck = %s, want truck-2", report.BottleneckVehicleID)
	}
	if report.CompletionSeconds != 4*3600 {
		t.Fatalf("completion = %d, want %d", report.CompletionSeconds, 4*3600)
	}
}

func TestAnalyzeBottlenecksLoadFactor(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	routes := []*domain.Route{
		{
			VehicleID:         "busy",
			DepartAt:          day,
			CompletedAt:       day.Add(time.Hour),
			DeliveredQuantity: 900,
			CapacityIssued:    1000,
		},
		{
			VehicleID:         "idle",
			DepartAt:          day,
			CompletedAt:       day.Add(time.Hour),
			DeliveredQuantity: 100,
			CapacityIssued:    1000,
		},
	}

	report := AnalyzeBottlenecks(routes, nil, domain.NewLedger(nil), 0.5)

	if report.Vehicles[0].LoadFactor != 0.9 || report.Vehicles[0].Underused {
		t.Fatalf("busy vehicle summary wrong: %+v", report.Vehicles[0])
	}
	if report.Vehicles[1].LoadFactor != 0.1 || !report.Vehicles[1].Underused {
		t.Fatalf("idle vehicle summary wrong: %+v", report.Vehicles[1])
	}
	if len(report.UnderusedVehicles) != 1 || report.UnderusedVehicles[0] != "idle" {
		t.Fatalf("underused = %v, want [idle]", report.UnderusedVehicles)
	}
}

func TestAnalyzeBottlenecksWindowViolations(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	window := domain.DeliveryWindow{Start: day.Add(9 * time.Hour), End: day.Add(12 * time.Hour)}

	demands := []domain.Demand{
		{DemandID: "early", Location: locA, Quantity: 10, Window: window},
		{DemandID: "late", Location: locB, Quantity: 10, Window: window},
		{DemandID: "inside", Location: locC, Quantity: 10, Window: window},
		{DemandID: "unwindowed", Location: locC, Quantity: 10},
	}

	routes := []*domain.Route{
		{
			VehicleID:   "truck-1",
			DepartAt:    day.Add(8 * time.Hour),
			CompletedAt: day.Add(14 * time.Hour),
			Stops: []domain.Stop{
				{Kind: domain.StopDelivery, DemandID: "early", ArriveAt: day.Add(8*time.Hour + 30*time.Minute)},
				{Kind: domain.StopDelivery, DemandID: "inside", ArriveAt: day.Add(10 * time.Hour)},
				{Kind: domain.StopRefill, ArriveAt: day.Add(11 * time.Hour)},
				{Kind: domain.StopDelivery, DemandID: "late", ArriveAt: day.Add(13 * time.Hour)},
				{Kind: domain.StopDelivery, DemandID: "unwindowed", ArriveAt: day.Add(13*time.Hour + 30*time.Minute)},
			},
		},
	}

	ledger := domain.NewLedger(demands)
	for _, d := range demands {
		if _, err := ledger.Consume(d.DemandID, d.Quantity); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	report := AnalyzeBottlenecks(routes, demands, ledger, 0.5)

	if len(report.WindowViolations) != 2 {
		t.Fatalf("violations = %d, want 2", len(report.WindowViolations))
	}

	early := report.WindowViolations[0]
	if early.DemandID != "early" || early.DeviationSeconds != -30*60 {
		t.Fatalf("early violation = %+v, want -1800s on early", early)
	}

	late := report.WindowViolations[1]
	if late.DemandID != "late" || late.DeviationSeconds != 3600 {
		t.Fatalf("late violation = %+v, want 3600s on late", late)
	}
}

func TestAnalyzeBottlenecksTieKeepsFirstVehicle(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	routes := []*domain.Route{
		{VehicleID: "first", DepartAt: day, CompletedAt: day.Add(2 * time.Hour), DeliveredQuantity: 100, CapacityIssued: 100},
		{VehicleID: "second", DepartAt: day, CompletedAt: day.Add(2 * time.Hour), DeliveredQuantity: 100, CapacityIssued: 100},
	}

	report := AnalyzeBottlenecks(routes, nil, domain.NewLedger(nil), 0.5)

	if report.BottleneckVehicleID != "first" {
		t.Fatalf("bottleneck = %s, want first", report.BottleneckVehicleID)
	}
}
