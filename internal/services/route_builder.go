package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"supply-route-service/internal/domain"
	"supply-route-service/internal/ports"
)

// BuildOptions control route construction behavior shared by all
// vehicles in a solve.
type BuildOptions struct {
	// UnloadMinutesPer100Units is service time spent at a delivery stop
	// per 100 units dropped. Zero disables unload time.
	UnloadMinutesPer100Units float64
	// ReturnToDepot appends a final empty leg back to the supply
	// location after the last delivery.
	ReturnToDepot bool
}

// BuildRoute constructs the route for a single vehicle using a greedy
// nearest-first strategy against the shared ledger.
//
// The vehicle starts fully loaded at the supply location at its earliest
// departure time. Each step selects the outstanding demand nearest to
// the current location (ties broken by earlier window start, then by
// smaller demand ID), delivers as much as the current load allows, and
// advances the clock by travel plus unload time. When the load reaches
// zero with demand still outstanding, a refill stop returns the vehicle
// to the supply location and restores full capacity; refill cycles are
// unbounded. The route ends when the ledger is empty.
//
// Delivery windows never constrain the construction; they only
// participate in tie-breaking and are evaluated later by the bottleneck
// analyzer.
func BuildRoute(
	ctx context.Context,
	vehicle domain.Vehicle,
	supply domain.Coordinates,
	demands []domain.Demand,
	ledger *domain.Ledger,
	provider ports.DistanceProvider,
	opts BuildOptions,
) (*domain.Route, error) {
	route := &domain.Route{
		VehicleID:   vehicle.VehicleID,
		DepartAt:    vehicle.DepartAt,
		Stops:       []domain.Stop{},
		CompletedAt: vehicle.DepartAt,
	}

	// Zero-capacity vehicles are rejected by input validation; yield an
	// empty route rather than looping on refills.
	if vehicle.Capacity <= 0 {
		return route, nil
	}

	load := vehicle.Capacity
	route.CapacityIssued = vehicle.Capacity

	location := supply
	clock := vehicle.DepartAt

	for ledger.TotalRemaining() > 0 {
		if load <= 0 {
			// Forced refill: empty-handed with demand still outstanding.
			leg, err := provider.GetDistance(ctx, location, supply)
			if err != nil {
				return nil, fmt.Errorf("build route: vehicle %q: refill leg: %w", vehicle.VehicleID, err)
			}

			depart := clock
			clock = clock.Add(time.Duration(leg.DurationSeconds) * time.Second)

			route.TotalDistanceMeters += leg.DistanceMeters
			route.TotalDurationSeconds += leg.DurationSeconds

			route.Stops = append(route.Stops, domain.Stop{
				Kind:                 domain.StopRefill,
				Location:             supply,
				DepartAt:             depart,
				ArriveAt:             clock,
				DistanceMeters:       leg.DistanceMeters,
				DurationSeconds:      leg.DurationSeconds,
				TotalDistanceMeters:  route.TotalDistanceMeters,
				TotalDurationSeconds: route.TotalDurationSeconds,
			})

			route.Refills++
			route.CapacityIssued += vehicle.Capacity
			load = vehicle.Capacity
			location = supply
			continue
		}

		next, leg, err := selectNearestDemand(ctx, location, demands, ledger, provider)
		if err != nil {
			return nil, fmt.Errorf("build route: vehicle %q: %w", vehicle.VehicleID, err)
		}
		if next == nil {
			break
		}

		deliver := math.Min(load, ledger.Remaining(next.DemandID))
		if _, err := ledger.Consume(next.DemandID, deliver); err != nil {
			return nil, fmt.Errorf("build route: vehicle %q: %w", vehicle.VehicleID, err)
		}

		depart := clock
		arrive := clock.Add(time.Duration(leg.DurationSeconds) * time.Second)
		unload := time.Duration(deliver / 100 * opts.UnloadMinutesPer100Units * float64(time.Minute))
		clock = arrive.Add(unload)

		route.TotalDistanceMeters += leg.DistanceMeters
		route.TotalDurationSeconds += leg.DurationSeconds

		route.Stops = append(route.Stops, domain.Stop{
			Kind:                 domain.StopDelivery,
			DemandID:             next.DemandID,
			Location:             next.Location,
			Quantity:             deliver,
			DepartAt:             depart,
			ArriveAt:             arrive,
			DistanceMeters:       leg.DistanceMeters,
			DurationSeconds:      leg.DurationSeconds,
			TotalDistanceMeters:  route.TotalDistanceMeters,
			TotalDurationSeconds: route.TotalDurationSeconds,
		})

		route.DeliveredQuantity += deliver
		load -= deliver
		location = next.Location
	}

	if opts.ReturnToDepot && location != supply {
		leg, err := provider.GetDistance(ctx, location, supply)
		if err != nil {
			return nil, fmt.Errorf("build route: vehicle %q: return leg: %w", vehicle.VehicleID, err)
		}

		depart := clock
		clock = clock.Add(time.Duration(leg.DurationSeconds) * time.Second)

		route.TotalDistanceMeters += leg.DistanceMeters
		route.TotalDurationSeconds += leg.DurationSeconds

		route.Stops = append(route.Stops, domain.Stop{
			Kind:                 domain.StopReturn,
			Location:             supply,
			DepartAt:             depart,
			ArriveAt:             clock,
			DistanceMeters:       leg.DistanceMeters,
			DurationSeconds:      leg.DurationSeconds,
			TotalDistanceMeters:  route.TotalDistanceMeters,
			TotalDurationSeconds: route.TotalDurationSeconds,
		})
	}

	route.CompletedAt = clock
	return route, nil
}

// selectNearestDemand picks the outstanding demand closest to the
// current location. The selection is a total order: distance, then
// delivery-window start, then lexicographically smaller demand ID, so
// identical inputs always produce identical routes. Returns nil when no
// demand has quantity remaining.
func selectNearestDemand(
	ctx context.Context,
	from domain.Coordinates,
	demands []domain.Demand,
	ledger *domain.Ledger,
	provider ports.DistanceProvider,
) (*domain.Demand, ports.DistanceResult, error) {
	var best *domain.Demand
	var bestLeg ports.DistanceResult

	for i := range demands {
		d := &demands[i]
		if ledger.Remaining(d.DemandID) <= 0 {
			continue
		}

		leg, err := provider.GetDistance(ctx, from, d.Location)
		if err != nil {
			return nil, ports.DistanceResult{}, fmt.Errorf("get distance to demand %q: %w", d.DemandID, err)
		}

		if best == nil || demandPrecedes(d, leg, best, bestLeg) {
			best = d
			bestLeg = leg
		}
	}

	return best, bestLeg, nil
}

func demandPrecedes(d *domain.Demand, leg ports.DistanceResult, best *domain.Demand, bestLeg ports.DistanceResult) bool {
	if leg.DistanceMeters != bestLeg.DistanceMeters {
		return leg.DistanceMeters < bestLeg.DistanceMeters
	}
	if !d.Window.Start.Equal(best.Window.Start) {
		return d.Window.Start.Before(best.Window.Start)
	}
	return d.DemandID < best.DemandID
}
