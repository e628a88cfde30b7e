package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"jobwatch/internal/api/routes"
	"jobwatch/internal/config"
	"jobwatch/internal/logging"
	"jobwatch/internal/poller"
	"jobwatch/internal/scraper"
	"jobwatch/internal/scraper/timesjobs"
	"jobwatch/internal/scraper/workers"
	"jobwatch/pkg/models"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting jobwatch")

	// Invalid search parameters are a configuration error: fail before any
	// scraping is attempted.
	query, err := models.NewSearchQuery(
		cfg.Search.Keywords,
		cfg.Search.Skills,
		cfg.Search.MaxDaysOld,
		cfg.Search.ResultsPerPage,
		cfg.Search.MaxWorkers,
	)
	if err != nil {
		logger.Fatal("Invalid search configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	client := scraper.NewClient(cfg)
	planner := timesjobs.NewPlanner(cfg.Scraper.BaseURL)
	probe := timesjobs.NewProbe(client, planner)
	extractor := timesjobs.NewExtractor(client, logger)
	pool := workers.NewPool(client, planner, extractor, logger)

	runner := workers.NewRunner(query, probe, pool, industryResolver(cfg, logger), cfg.Output.Path, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := poller.New(cfg.Output.UpdateInterval, runner.RunCycle, logger)
	if err := p.Start(ctx); err != nil {
		logger.Fatal("Failed to start poller", map[string]interface{}{
			"error": err.Error(),
		})
	}

	e := echo.New()
	e.HideBanner = true
	routes.SetupRoutes(e, p)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down...")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelShutdown()

		p.Stop()
		cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Shutdown complete")
	}()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Status server starting", map[string]interface{}{
		"address": address,
	})

	if err := e.Start(address); err != nil {
		logger.Info("Server stopped", map[string]interface{}{
			"reason": err.Error(),
		})
	}
}

// industryResolver picks the industry selection strategy: a configured name
// resolves silently, otherwise an interactive prompt runs once on the first
// cycle when enabled. Both degrade to "all industries" rather than failing.
func industryResolver(cfg *config.Config, logger logging.Logger) workers.IndustryResolver {
	if cfg.Search.IndustryName != "" {
		name := cfg.Search.IndustryName
		return func(industries map[string]string) *models.Industry {
			return timesjobs.Resolve(industries, name, logger)
		}
	}

	if cfg.Search.Interactive {
		return func(industries map[string]string) *models.Industry {
			return timesjobs.Prompt(os.Stdin, os.Stdout, industries, logger)
		}
	}

	return nil
}
