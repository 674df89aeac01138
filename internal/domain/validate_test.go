package domain

import (
	"errors"
	"testing"
	"time"
)

func validFixture() (Coordinates, []Vehicle, []Demand) {
	supply := Coordinates{Lat: 19.0760, Lon: 72.8777}
	vehicles := []Vehicle{
		{VehicleID: "truck-1", Capacity: 500, DepartAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)},
	}
	demands := []Demand{
		{DemandID: "d-1", Location: Coordinates{Lat: 18.5204, Lon: 73.8567}, Quantity: 300},
	}
	return supply, vehicles, demands
}

func TestValidateInputOK(t *testing.T) {
	supply, vehicles, demands := validFixture()
	if err := ValidateInput(supply, vehicles, demands); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateInputRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Coordinates, []Vehicle, []Demand) ([]Vehicle, []Demand)
		record string
		field  string
	}{
		{
			name: "bad supply latitude",
			mutate: func(s *Coordinates, vs []Vehicle, ds []Demand) ([]Vehicle, []Demand) {
				s.Lat = 95
				return vs, ds
			},
			record: "supply",
			field:  "location",
		},
		{
			name: "empty vehicle id",
			mutate: func(s *Coordinates, vs []Vehicle, ds []Demand) ([]Vehicle, []Demand) {
				vs[0].VehicleID = ""
				return vs, ds
			},
			record: "vehicle",
			field:  "vehicle_id",
		},
		{
			name: "duplicate vehicle id",
			mutate: func(s *Coordinates, vs []Vehicle, ds []Demand) ([]Vehicle, []Demand) {
				return append(vs, vs[0]), ds
			},
			record: "vehicle",
			field:  "vehicle_id",
		},
		{
			name: "non-positive capacity",
			mutate: func(s *Coordinates, vs []Vehicle, ds []Demand) ([]Vehicle, []Demand) {
				vs[0].Capacity = 0
				return vs, ds
			},
			record: "vehicle",
			field:  "capacity",
		},
		{
			name: "empty demand id",
			mutate: func(s *Coordinates, vs []Vehicle, ds []Demand) ([]Vehicle, []Demand) {
				ds[0].DemandID = ""
				return vs, ds
			},
			record: "demand",
			field:  "demand_id",
		},
		{
			name: "duplicate demand id",
			mutate: func(s *Coordinates, vs []Vehicle, ds []Demand) ([]Vehicle, []Demand) {
				return vs, append(ds, ds[0])
			},
			record: "demand",
			field:  "demand_id",
		},
		{
			name: "non-positive quantity",
			mutate: func(s *Coordinates, vs []Vehicle, ds []Demand) ([]Vehicle, []Demand) {
				ds[0].Quantity = -5
				return vs, ds
			},
			record: "demand",
			field:  "quantity",
		},
		{
			name: "bad demand longitude",
			mutate: func(s *Coordinates, vs []Vehicle, ds []Demand) ([]Vehicle, []Demand) {
				ds[0].Location.Lon = 200
				return vs, ds
			},
			record: "demand",
			field:  "location",
		},
		{
			name: "inverted window",
			mutate: func(s *Coordinates, vs []Vehicle, ds []Demand) ([]Vehicle, []Demand) {
				ds[0].Window = DeliveryWindow{
					Start: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
					End:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
				}
				return vs, ds
			},
			record: "demand",
			field:  "window",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			supply, vehicles, demands := validFixture()
			vehicles, demands = tc.mutate(&supply, vehicles, demands)

			err := ValidateInput(supply, vehicles, demands)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var inv *InvalidInputError
			if !errors.As(err, &inv) {
				t.Fatalf("error type = %T, want *InvalidInputError", err)
			}
			if inv.Record != tc.record || inv.Field != tc.field {
				t.Fatalf("got record=%q field=%q, want record=%q field=%q", inv.Record, inv.Field, tc.record, tc.field)
			}
		})
	}
}

func TestValidateInputZeroWindowAllowed(t *testing.T) {
	supply, vehicles, demands := validFixture()
	demands[0].Window = DeliveryWindow{}

	if err := ValidateInput(supply, vehicles, demands); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
