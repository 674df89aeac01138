package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"supply-route-service/internal/adapters/cache"
	"supply-route-service/internal/adapters/distance"
	"supply-route-service/internal/adapters/repositories"
	"supply-route-service/internal/api"
	"supply-route-service/internal/api/handlers"
	"supply-route-service/internal/config"
	"supply-route-service/internal/platform/db"
	"supply-route-service/internal/platform/obs"
	"supply-route-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, OSRM, great-circle fallback)
// behind ports and starts the HTTP server.
func main() {
	// No .env file is fine; plain environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := obs.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	var (
		distanceCache *cache.SQLDistanceCache
		repo          ports.ScenarioRepository
		store         handlers.ReportStore
	)

	if cfg.Database.URL != "" {
		conn, err := db.Open(cfg.Database.URL)
		if err != nil {
			logger.Fatal("open database", zap.Error(err))
		}
		defer conn.Close()

		if err := repositories.InitSchema(conn); err != nil {
			logger.Fatal("init schema", zap.Error(err))
		}

		distanceCache = cache.NewSQLDistanceCache(conn, logger)
		repo = repositories.NewPgScenarioRepository(conn)
		store = repositories.NewPgSolveStore(conn)
	} else {
		logger.Info("DATABASE_URL not set; persistent cache, stored scenarios, and solve archive disabled")
	}

	var remote ports.DistanceProvider
	if cfg.Routing.OSRMBaseURL != "" {
		osrm, err := distance.NewOSRMDistanceProvider(
			cfg.Routing.OSRMBaseURL,
			time.Duration(cfg.Routing.RequestTimeoutSeconds)*time.Second,
			cfg.Routing.RequestsPerSecond,
			logger,
		)
		if err != nil {
			logger.Fatal("init OSRM provider", zap.Error(err))
		}
		remote = osrm
	} else {
		logger.Info("OSRM base URL not set; running on great-circle approximations only")
	}

	local := distance.NewHaversineProvider()

	// The fallback provider carries the solve-scoped cache, so each
	// solve gets a fresh instance.
	newProvider := func() ports.DistanceProvider {
		return distance.NewFallbackProvider(remote, distanceCache, local, logger)
	}

	router := api.NewRouter(newProvider, repo, store, cfg.Solver, logger)

	// Timeouts are tuned for cold-cache solves (external routing latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server listening", zap.String("addr", srv.Addr))
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}
