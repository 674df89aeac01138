package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"supply-route-service/internal/api/dto"
	"supply-route-service/internal/config"
	"supply-route-service/internal/domain"
	"supply-route-service/internal/ports"
	"supply-route-service/internal/services"
)

// ReportStore archives completed solve responses.
type ReportStore interface {
	SaveReport(ctx context.Context, solveID string, report any) error
}

// SolveHandler runs solves over request-supplied or stored scenarios.
//
// The distance provider carries a solve-scoped cache, so a fresh one is
// built per request through NewProvider.
type SolveHandler struct {
	NewProvider func() ports.DistanceProvider
	Repo        ports.ScenarioRepository // optional, enables /solve/stored
	Store       ReportStore              // optional
	Defaults    config.SolverConfig
	Logger      *zap.Logger
}

// Solve runs the heuristic against the scenario in the request body.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SolveRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Vehicles) == 0 {
		writeError(w, r, http.StatusBadRequest, "at least one vehicle is required")
		return
	}
	if len(req.Demands) == 0 {
		writeError(w, r, http.StatusBadRequest, "at least one demand is required")
		return
	}

	solveReq := services.SolveRequest{
		Supply:   toCoordinates(req.SupplyLocation),
		Vehicles: toVehicles(req.Vehicles),
		Demands:  toDemands(req.Demands),
		Options:  toSolveOptions(h.Defaults, req.Options),
	}

	h.run(w, r, solveReq)
}

// SolveStored runs the heuristic against the scenario seeded in the
// repository.
func (h *SolveHandler) SolveStored(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
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

	solveReq := services.SolveRequest{
		Supply:   supply,
		Vehicles: vehicles,
		Demands:  demands,
		Options:  toSolveOptions(h.Defaults, nil),
	}

	h.run(w, r, solveReq)
}

func (h *SolveHandler) run(w http.ResponseWriter, r *http.Request, solveReq services.SolveRequest) {
	solver := services.NewSolver(h.NewProvider(), h.Logger)

	report, err := solver.Solve(r.Context(), solveReq)
	if err != nil {
		var invalid *domain.InvalidInputError
		if errors.As(err, &invalid) {
			writeError(w, r, http.StatusBadRequest, invalid.Error())
			return
		}
		h.Logger.Error("solve failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := fromReport(report)

	// Archiving is best-effort; the client still gets its routes.
	if h.Store != nil {
		if err := h.Store.SaveReport(r.Context(), report.SolveID, res); err != nil {
			h.Logger.Warn("archive solve report failed",
				zap.String("solve_id", report.SolveID),
				zap.Error(err),
			)
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}
