package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"supply-route-service/internal/domain"
)

// Scenario is the YAML representation of one solve input: a supply
// location, a fleet, and the demands to serve. Used by the CLI and as
// the seed format for the scenario repository.
type Scenario struct {
	SupplyLocation struct {
		Lat float64 `yaml:"lat"`
		Lon float64 `yaml:"lon"`
	} `yaml:"supplyLocation"`

	Vehicles []struct {
		ID       string    `yaml:"id"`
		Capacity float64   `yaml:"capacity"`
		DepartAt time.Time `yaml:"departAt"`
	} `yaml:"vehicles"`

	Demands []struct {
		ID          string    `yaml:"id"`
		Lat         float64   `yaml:"lat"`
		Lon         float64   `yaml:"lon"`
		Quantity    float64   `yaml:"quantity"`
		WindowStart time.Time `yaml:"windowStart"`
		WindowEnd   time.Time `yaml:"windowEnd"`
	} `yaml:"demands"`
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: read %q: %w", path, err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("load scenario: parse %q: %w", path, err)
	}

	return &sc, nil
}

func (s *Scenario) Supply() domain.Coordinates {
	return domain.Coordinates{Lat: s.SupplyLocation.Lat, Lon: s.SupplyLocation.Lon}
}

func (s *Scenario) DomainVehicles() []domain.Vehicle {
	vehicles := make([]domain.Vehicle, 0, len(s.Vehicles))
	for _, v := range s.Vehicles {
		vehicles = append(vehicles, domain.Vehicle{
			VehicleID: v.ID,
			Capacity:  v.Capacity,
			DepartAt:  v.DepartAt,
		})
	}
	return vehicles
}

func (s *Scenario) DomainDemands() []domain.Demand {
	demands := make([]domain.Demand, 0, len(s.Demands))
	for _, d := range s.Demands {
		demands = append(demands, domain.Demand{
			DemandID: d.ID,
			Location: domain.Coordinates{Lat: d.Lat, Lon: d.Lon},
			Quantity: d.Quantity,
			Window:   domain.DeliveryWindow{Start: d.WindowStart, End: d.WindowEnd},
		})
	}
	return demands
}
