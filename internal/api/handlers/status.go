package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jobwatch/internal/poller"
	"jobwatch/pkg/models"
)

// StatusHandler reports the outcome of the most recent scrape cycle.
func StatusHandler(p *poller.Poller) echo.HandlerFunc {
	return func(c echo.Context) error {
		run := p.LastRun()
		if run == nil {
			return c.JSON(http.StatusOK, models.StatusResponse{Status: "waiting"})
		}

		status := "ok"
		switch {
		case run.Err != "":
			status = "error"
		case run.FailedPages > 0:
			status = "degraded"
		}

		return c.JSON(http.StatusOK, models.StatusResponse{
			Status:       status,
			StartedAt:    run.StartedAt,
			FinishedAt:   run.FinishedAt,
			Listings:     run.Listings,
			TotalMatches: run.TotalMatches,
			TotalPages:   run.TotalPages,
			FailedPages:  run.FailedPages,
			Workers:      run.Workers,
			Elapsed:      run.Elapsed,
			Error:        run.Err,
		})
	}
}
