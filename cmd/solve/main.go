package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"supply-route-service/internal/adapters/cache"
	"supply-route-service/internal/adapters/distance"
	"supply-route-service/internal/adapters/repositories"
	"supply-route-service/internal/config"
	"supply-route-service/internal/domain"
	"supply-route-service/internal/platform/db"
	"supply-route-service/internal/platform/obs"
	"supply-route-service/internal/ports"
	"supply-route-service/internal/services"
)

var (
	cfgPath      string
	scenarioPath string
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "supply-route",
		Short: "Refill-aware greedy vehicle routing from a shared supply location",
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", os.Getenv("CONFIG_PATH"), "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "Path to YAML scenario file")

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadAll() (*config.Config, *config.Scenario, *zap.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, err
	}

	if scenarioPath == "" {
		return nil, nil, nil, fmt.Errorf("--scenario is required")
	}
	sc, err := config.LoadScenario(scenarioPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := obs.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, sc, logger, nil
}

func solveCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run the routing heuristic over a scenario file and print the routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sc, logger, err := loadAll()
			if err != nil {
				return err
			}
			defer logger.Sync()

			var remote ports.DistanceProvider
			if !offline && cfg.Routing.OSRMBaseURL != "" {
				osrm, err := distance.NewOSRMDistanceProvider(
					cfg.Routing.OSRMBaseURL,
					time.Duration(cfg.Routing.RequestTimeoutSeconds)*time.Second,
					cfg.Routing.RequestsPerSecond,
					logger,
				)
				if err != nil {
					return fmt.Errorf("init OSRM provider: %w", err)
				}
				remote = osrm
			}

			var persistent *cache.SQLDistanceCache
			if cfg.Database.URL != "" {
				conn, err := db.Open(cfg.Database.URL)
				if err != nil {
					return fmt.Errorf("open database: %w", err)
				}
				defer conn.Close()

				if err := repositories.InitSchema(conn); err != nil {
					return fmt.Errorf("init schema: %w", err)
				}
				persistent = cache.NewSQLDistanceCache(conn, logger)
			}

			provider := distance.NewFallbackProvider(remote, persistent, distance.NewHaversineProvider(), logger)
			solver := services.NewSolver(provider, logger)

			report, err := solver.Solve(cmd.Context(), services.SolveRequest{
				Supply:   sc.Supply(),
				Vehicles: sc.DomainVehicles(),
				Demands:  sc.DomainDemands(),
				Options: services.SolveOptions{
					BuildOptions: services.BuildOptions{
						UnloadMinutesPer100Units: cfg.Solver.UnloadMinutesPer100Units,
						ReturnToDepot:            cfg.Solver.ReturnToDepot,
					},
					UtilizationThreshold: cfg.Solver.UtilizationThreshold,
				},
			})
			if err != nil {
				return err
			}

			fmt.Print(renderReport(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the remote routing service and use great-circle estimates")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a scenario file without solving",
		RunE: func(cmd *cobra.Command, args []string) error {
			if scenarioPath == "" {
				return fmt.Errorf("--scenario is required")
			}
			sc, err := config.LoadScenario(scenarioPath)
			if err != nil {
				return err
			}

			if err := domain.ValidateInput(sc.Supply(), sc.DomainVehicles(), sc.DomainDemands()); err != nil {
				return err
			}

			fmt.Printf("scenario ok: %d vehicle(s), %d demand(s)\n", len(sc.Vehicles), len(sc.Demands))
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with a scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sc, logger, err := loadAll()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cfg.Database.URL == "" {
				return fmt.Errorf("DATABASE_URL is required for seeding")
			}

			if err := domain.ValidateInput(sc.Supply(), sc.DomainVehicles(), sc.DomainDemands()); err != nil {
				return err
			}

			conn, err := db.Open(cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer conn.Close()

			if err := repositories.InitSchema(conn); err != nil {
				return fmt.Errorf("init schema: %w", err)
			}
			if err := repositories.SeedScenario(conn, sc.Supply(), sc.DomainVehicles(), sc.DomainDemands()); err != nil {
				return err
			}

			logger.Info("scenario seeded",
				zap.Int("vehicles", len(sc.Vehicles)),
				zap.Int("demands", len(sc.Demands)),
			)
			return nil
		},
	}
}
