package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"supply-route-service/internal/domain"
	"supply-route-service/internal/metrics"
	"supply-route-service/internal/platform/obs"
	"supply-route-service/internal/ports"
)

// SolveOptions configure a single solve.
type SolveOptions struct {
	BuildOptions
	// UtilizationThreshold flags vehicles whose load factor falls below
	// it. Non-positive values use the 0.5 default.
	UtilizationThreshold float64
}

// SolveRequest is the full input for one solve.
type SolveRequest struct {
	Supply   domain.Coordinates
	Vehicles []domain.Vehicle
	Demands  []domain.Demand
	Options  SolveOptions
}

// Solver runs the refill-aware greedy VRPTW heuristic.
type Solver struct {
	Provider ports.DistanceProvider
	Logger   *zap.Logger
}

func NewSolver(provider ports.DistanceProvider, logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{Provider: provider, Logger: logger}
}

// prefetcher is implemented by providers that can warm their cache for
// one origin against many destinations ahead of the sequential solve.
type prefetcher interface {
	Prefetch(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates)
}

// Solve validates the request, dispatches vehicles in departure order
// against a fresh ledger, and returns the completed routes with a
// bottleneck report.
//
// Vehicle processing is strictly sequential; the processing order
// decides which vehicle gets contested demand and is part of the
// contract. Only distance lookups run concurrently, during the prefetch
// phase before any ledger mutation.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (_ *Report, err error) {
	defer obs.Time(ctx, s.Logger, "solver.Solve")(&err)
	start := time.Now()

	if err := domain.ValidateInput(req.Supply, req.Vehicles, req.Demands); err != nil {
		metrics.Solves.WithLabelValues("invalid_input").Inc()
		return nil, fmt.Errorf("solve: %w", err)
	}

	s.prefetchDistances(ctx, req)

	// Ascending departure time; ties keep input order.
	ordered := make([]domain.Vehicle, len(req.Vehicles))
	copy(ordered, req.Vehicles)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DepartAt.Before(ordered[j].DepartAt)
	})

	ledger := domain.NewLedger(req.Demands)
	routes := make([]*domain.Route, 0, len(ordered))

	for _, vehicle := range ordered {
		if ledger.TotalRemaining() <= 0 {
			break
		}

		route, err := BuildRoute(ctx, vehicle, req.Supply, req.Demands, ledger, s.Provider, req.Options.BuildOptions)
		if err != nil {
			metrics.Solves.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("solve: %w", err)
		}

		s.Logger.Debug("route built",
			zap.String("vehicle_id", vehicle.VehicleID),
			zap.Int("stops", len(route.Stops)),
			zap.Int("refills", route.Refills),
			zap.Float64("delivered", route.DeliveredQuantity),
		)

		routes = append(routes, route)
	}

	report := AnalyzeBottlenecks(routes, req.Demands, ledger, req.Options.UtilizationThreshold)
	report.SolveID = uuid.NewString()

	metrics.Solves.WithLabelValues("ok").Inc()
	metrics.SolveDuration.Observe(time.Since(start).Seconds())
	metrics.Refills.Add(float64(report.TotalRefills))
	metrics.UnmetQuantity.Observe(report.TotalUnmetQuantity)

	s.Logger.Info("solve complete",
		zap.String("solve_id", report.SolveID),
		zap.Int("routes", len(report.Routes)),
		zap.Int("total_distance_meters", report.TotalDistanceMeters),
		zap.Int("refills", report.TotalRefills),
		zap.Float64("unmet_quantity", report.TotalUnmetQuantity),
	)

	return report, nil
}

// prefetchDistances warms the provider's solve-scoped cache for every
// location pair the builder may query. Lookups fan out under a small
// semaphore (remote providers rate-limit); results land in the cache
// before the sequential scheduling loop reads anything.
func (s *Solver) prefetchDistances(ctx context.Context, req SolveRequest) {
	p, ok := s.Provider.(prefetcher)
	if !ok {
		return
	}

	points := make([]domain.Coordinates, 0, 1+len(req.Demands))
	points = append(points, req.Supply)
	for _, d := range req.Demands {
		points = append(points, d.Location)
	}

	sem := make(chan struct{}, 5)
	var wg sync.WaitGroup

	for i, origin := range points {
		targets := make([]domain.Coordinates, 0, len(points)-1)
		for j, t := range points {
			if i != j {
				targets = append(targets, t)
			}
		}

		wg.Add(1)
		go func(orig domain.Coordinates, targets []domain.Coordinates) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			p.Prefetch(ctx, orig, targets)
		}(origin, targets)
	}

	wg.Wait()
}
