package main

import (
	"fmt"
	"strings"
	"time"

	"supply-route-service/internal/domain"
	"supply-route-service/internal/services"
)

// renderReport formats a solve report as a plain-text summary for the
// terminal. Timestamps are printed in the scenario's own zone.
func renderReport(report *services.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Solve %s\n\n", report.SolveID)

	for _, route := range report.Routes {
		fmt.Fprintf(&b, "Vehicle %s (departs %s)\n", route.VehicleID, formatClock(route.DepartAt))
		for i, stop := range route.Stops {
			fmt.Fprintf(&b, "  %2d. %s\n", i+1, renderStop(stop))
		}
		fmt.Fprintf(&b, "  total: %s, %s, delivered %s, %d refill(s)\n\n",
			formatKm(route.TotalDistanceMeters),
			formatDuration(route.TotalDurationSeconds),
			formatQty(route.DeliveredQuantity),
			route.Refills,
		)
	}

	b.WriteString("Summary\n")
	fmt.Fprintf(&b, "  distance:   %s\n", formatKm(report.TotalDistanceMeters))
	fmt.Fprintf(&b, "  delivered:  %s\n", formatQty(report.TotalDelivered))
	fmt.Fprintf(&b, "  refills:    %d\n", report.TotalRefills)
	fmt.Fprintf(&b, "  completion: %s (bottleneck: %s)\n",
		formatDuration(report.CompletionSeconds), report.BottleneckVehicleID)

	for _, v := range report.Vehicles {
		fmt.Fprintf(&b, "  %s: %s, %s, %.0f%% load factor, %.1f km/h avg\n",
			v.VehicleID,
			formatKm(v.DistanceMeters),
			formatDuration(v.DurationSeconds),
			v.LoadFactor*100,
			v.AvgSpeedKmph,
		)
	}

	if len(report.UnderusedVehicles) > 0 {
		fmt.Fprintf(&b, "  underused vehicles: %s\n", strings.Join(report.UnderusedVehicles, ", "))
	}

	if len(report.Unmet) > 0 {
		b.WriteString("\nUnmet demand\n")
		for _, u := range report.Unmet {
			fmt.Fprintf(&b, "  %s: %s of %s outstanding\n",
				u.DemandID, formatQty(u.Remaining), formatQty(u.Requested))
		}
		fmt.Fprintf(&b, "  total outstanding: %s\n", formatQty(report.TotalUnmetQuantity))
	}

	if len(report.WindowViolations) > 0 {
		b.WriteString("\nWindow violations\n")
		for _, v := range report.WindowViolations {
			fmt.Fprintf(&b, "  %s at %s: arrived %s, window %s to %s (%s)\n",
				v.DemandID,
				v.VehicleID,
				formatClock(v.ArriveAt),
				formatClock(v.WindowStart),
				formatClock(v.WindowEnd),
				formatDeviation(v.DeviationSeconds),
			)
		}
	}

	return b.String()
}

func renderStop(stop domain.Stop) string {
	switch stop.Kind {
	case domain.StopDelivery:
		return fmt.Sprintf("deliver %s to %s, arrive %s (%s, %s)",
			formatQty(stop.Quantity), stop.DemandID, formatClock(stop.ArriveAt),
			formatKm(stop.DistanceMeters), formatDuration(stop.DurationSeconds))
	case domain.StopRefill:
		return fmt.Sprintf("refill at supply, arrive %s (%s, %s)",
			formatClock(stop.ArriveAt), formatKm(stop.DistanceMeters), formatDuration(stop.DurationSeconds))
	case domain.StopReturn:
		return fmt.Sprintf("return to supply, arrive %s (%s, %s)",
			formatClock(stop.ArriveAt), formatKm(stop.DistanceMeters), formatDuration(stop.DurationSeconds))
	default:
		return string(stop.Kind)
	}
}

func formatClock(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func formatKm(meters int) string {
	return fmt.Sprintf("%.1f km", float64(meters)/1000)
}

func formatDuration(seconds int) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func formatQty(q float64) string {
	return fmt.Sprintf("%.1f units", q)
}

func formatDeviation(seconds int) string {
	if seconds < 0 {
		return fmt.Sprintf("early by %s", formatDuration(-seconds))
	}
	return fmt.Sprintf("late by %s", formatDuration(seconds))
}
