package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"supply-route-service/internal/api/dto"
	"supply-route-service/internal/ports"
)

// ScenarioHandler exposes read-only access to the stored scenario.
type ScenarioHandler struct {
	Repo   ports.ScenarioRepository
	Logger *zap.Logger
}

func (h *ScenarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "no scenario repository configured")
		return
	}

	supply, err := h.Repo.GetSupplyLocation(r.Context())
	if err != nil {
		h.Logger.Error("load stored supply location failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	vehicles, err := h.Repo.ListVehicles(r.Context())
	if err != nil {
		h.Logger.Error("list stored vehicles failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	demands, err := h.Repo.ListDemands(r.Context())
	if err != nil {
		h.Logger.Error("list stored demands failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ScenarioResponse{
		SupplyLocation: fromCoordinates(supply),
		Vehicles:       make([]dto.VehicleResponse, 0, len(vehicles)),
		Demands:        make([]dto.DemandResponse, 0, len(demands)),
	}
	for _, v := range vehicles {
		res.Vehicles = append(res.Vehicles, dto.VehicleResponse{
			VehicleID: v.VehicleID,
			Capacity:  v.Capacity,
			DepartAt:  v.DepartAt,
		})
	}
	for _, d := range demands {
		dr := dto.DemandResponse{
			DemandID: d.DemandID,
			Location: fromCoordinates(d.Location),
			Quantity: d.Quantity,
		}
		if !d.Window.IsZero() {
			start, end := d.Window.Start, d.Window.End
			dr.WindowStart = &start
			dr.WindowEnd = &end
		}
		res.Demands = append(res.Demands, dr)
	}

	writeJSON(w, r, http.StatusOK, res)
}
