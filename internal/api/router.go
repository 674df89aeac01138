package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"supply-route-service/internal/api/handlers"
	"supply-route-service/internal/config"
	"supply-route-service/internal/metrics"
	"supply-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware
// of concrete adapters).
func NewRouter(
	newProvider func() ports.DistanceProvider,
	repo ports.ScenarioRepository,
	store handlers.ReportStore,
	defaults config.SolverConfig,
	logger *zap.Logger,
) http.Handler {
	metrics.RegisterDefault()

	solveHandler := &handlers.SolveHandler{
		NewProvider: newProvider,
		Repo:        repo,
		Store:       store,
		Defaults:    defaults,
		Logger:      logger,
	}
	scenarioHandler := &handlers.ScenarioHandler{Repo: repo, Logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/solve", solveHandler.Solve).Methods(http.MethodPost)
	r.HandleFunc("/solve/stored", solveHandler.SolveStored).Methods(http.MethodPost)
	r.HandleFunc("/scenario", scenarioHandler.Get).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return observeMiddleware(logger, r)
}
