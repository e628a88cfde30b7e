package workers

import (
	"context"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobwatch/internal/logging"
	"jobwatch/internal/logging/types"
	"jobwatch/internal/report"
	"jobwatch/internal/scraper/timesjobs"
	"jobwatch/pkg/models"
	"jobwatch/pkg/utils"
)

// IndustryResolver picks one industry (or nil for "all") out of the scraped
// industry map. Implementations may consult configuration or prompt the user.
type IndustryResolver func(industries map[string]string) *models.Industry

// Runner orchestrates one scrape cycle end to end: count probe, industry
// resolution, page fan-out, report rendering and the file write. The resolved
// industry is cached after the first cycle so an interactive resolver runs at
// most once per process.
type Runner struct {
	base       models.SearchQuery
	probe      *timesjobs.Probe
	pool       *Pool
	resolve    IndustryResolver
	outputPath string
	logger     types.Logger

	mu       sync.Mutex
	industry *models.Industry
	resolved bool
}

// NewRunner creates a cycle runner. resolve may be nil when no industry
// filter is wanted.
func NewRunner(base models.SearchQuery, probe *timesjobs.Probe, pool *Pool, resolve IndustryResolver, outputPath string, logger types.Logger) *Runner {
	return &Runner{
		base:       base,
		probe:      probe,
		pool:       pool,
		resolve:    resolve,
		outputPath: outputPath,
		logger:     logger,
	}
}

// RunCycle executes one full scrape cycle and overwrites the report file.
func (r *Runner) RunCycle(ctx context.Context) (*models.AggregateResult, error) {
	runID := utils.GenerateRunID()
	logger := logging.LogWithRunID(runID)

	logger.Info("Scrape cycle started", map[string]interface{}{
		"keywords": r.base.Keywords,
	})

	// First probe: total count for the bare query, and the document the
	// industry map is discovered from.
	total, doc, err := r.probe.TotalMatches(ctx, r.base)
	if err != nil {
		return nil, err
	}

	industry, err := r.industryFor(doc, logger)
	if err != nil {
		return nil, err
	}

	q := r.base.WithIndustry(industry)

	// Second probe: the filtered count differs once an industry narrows the
	// query, and the page count depends on it.
	if industry != nil {
		total, _, err = r.probe.TotalMatches(ctx, q)
		if err != nil {
			return nil, err
		}
	}

	result := r.pool.Scrape(ctx, q, total)

	text := report.Build(result, q, time.Now())
	if err := report.Write(r.outputPath, text); err != nil {
		return nil, err
	}

	logger.Info("Scrape cycle complete", map[string]interface{}{
		"listings":     len(result.Listings),
		"total_pages":  result.TotalPages,
		"failed_pages": result.FailedPages,
		"elapsed":      utils.FormatDuration(result.Elapsed),
		"output":       r.outputPath,
	})

	return result, nil
}

// industryFor returns the cached industry choice, resolving it from the probe
// document on the first cycle only.
func (r *Runner) industryFor(doc *goquery.Document, logger types.Logger) (*models.Industry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolved {
		return r.industry, nil
	}

	if r.resolve != nil {
		industries, err := timesjobs.ParseIndustries(doc, logger)
		if err != nil {
			return nil, err
		}
		r.industry = r.resolve(industries)
	}

	r.resolved = true
	return r.industry, nil
}
