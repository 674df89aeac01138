package ports

import (
	"context"

	"supply-route-service/internal/domain"
)

// Port: a boundary for retrieving solve scenarios from a data source.
type ScenarioRepository interface {
	// Retrieve the shared supply location (depot).
	GetSupplyLocation(ctx context.Context) (domain.Coordinates, error)
	// Retrieve all vehicles available for routing, in stored order.
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
	// Retrieve all demands awaiting delivery, in stored order.
	ListDemands(ctx context.Context) ([]domain.Demand, error)
}
