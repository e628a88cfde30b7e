package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobwatch/internal/logging"
	"jobwatch/internal/poller"
	"jobwatch/pkg/models"
)

func callStatus(t *testing.T, p *poller.Poller) models.StatusResponse {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, StatusHandler(p)(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func waitForRun(t *testing.T, p *poller.Poller) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if p.LastRun() != nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("cycle did not finish in time")
}

func startPoller(t *testing.T, run poller.CycleFunc) *poller.Poller {
	t.Helper()
	p := poller.New(time.Hour, run, logging.NewMultiLogger())
	require.NoError(t, p.Start(context.Background()))
	t.Cleanup(p.Stop)
	waitForRun(t, p)
	return p
}

func TestStatusWaitingBeforeFirstCycle(t *testing.T) {
	p := poller.New(time.Hour, nil, logging.NewMultiLogger())

	resp := callStatus(t, p)
	assert.Equal(t, "waiting", resp.Status)
}

func TestStatusOKAfterCleanCycle(t *testing.T) {
	p := startPoller(t, func(ctx context.Context) (*models.AggregateResult, error) {
		return &models.AggregateResult{
			Listings:     []models.Listing{{Company: "Acme"}},
			TotalMatches: 100,
			TotalPages:   1,
			Workers:      1,
		}, nil
	})

	resp := callStatus(t, p)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Listings)
	assert.Equal(t, 100, resp.TotalMatches)
	assert.Empty(t, resp.Error)
}

func TestStatusDegradedWhenPagesFailed(t *testing.T) {
	p := startPoller(t, func(ctx context.Context) (*models.AggregateResult, error) {
		return &models.AggregateResult{TotalPages: 3, FailedPages: 1, Workers: 3}, nil
	})

	resp := callStatus(t, p)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, 1, resp.FailedPages)
}

func TestStatusErrorAfterFailedCycle(t *testing.T) {
	p := startPoller(t, func(ctx context.Context) (*models.AggregateResult, error) {
		return nil, errors.New("upstream markup changed")
	})

	resp := callStatus(t, p)
	assert.Equal(t, "error", resp.Status)
	assert.NotEmpty(t, resp.Error)
}
