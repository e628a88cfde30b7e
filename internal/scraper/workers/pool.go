package workers

import (
	"context"
	"sync"
	"time"

	"jobwatch/internal/logging/types"
	"jobwatch/internal/scraper"
	"jobwatch/internal/scraper/timesjobs"
	"jobwatch/pkg/models"
	"jobwatch/pkg/utils"
)

// pageOutcome is the terminal state of one page task: a result or a failure,
// never both.
type pageOutcome struct {
	result models.PageResult
	err    error
}

// Pool fans page fetches out across a bounded set of workers and joins on
// all of them before producing the aggregate. Page tasks share no mutable
// state; aggregation is a pure merge after the join.
type Pool struct {
	fetcher   scraper.Fetcher
	planner   *timesjobs.Planner
	extractor *timesjobs.Extractor
	logger    types.Logger
}

// NewPool creates a new scrape pool
func NewPool(fetcher scraper.Fetcher, planner *timesjobs.Planner, extractor *timesjobs.Extractor, logger types.Logger) *Pool {
	return &Pool{
		fetcher:   fetcher,
		planner:   planner,
		extractor: extractor,
		logger:    logger,
	}
}

// Scrape dispatches one fetch task per result page and collects every
// surviving listing. Worker count is min(totalPages, MaxWorkers). A failed
// page contributes zero listings and is counted, never propagated; the
// result is only produced once every task has reached a terminal state.
func (p *Pool) Scrape(ctx context.Context, q models.SearchQuery, totalMatches int) *models.AggregateResult {
	start := time.Now()

	totalPages := (totalMatches + q.PageSize - 1) / q.PageSize
	workerCount := min(totalPages, q.MaxWorkers)

	p.logger.Info("Dispatching page workers", map[string]interface{}{
		"total_matches": totalMatches,
		"total_pages":   totalPages,
		"workers":       workerCount,
		"page_size":     q.PageSize,
	})

	pages := make(chan int)
	outcomes := make(chan pageOutcome, totalPages)

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go p.worker(ctx, q, pages, outcomes, &wg)
	}

	for page := 1; page <= totalPages; page++ {
		pages <- page
	}
	close(pages)

	// Full join: every dispatched task finishes or fails before we aggregate.
	wg.Wait()
	close(outcomes)

	result := &models.AggregateResult{
		TotalMatches: totalMatches,
		TotalPages:   totalPages,
		Workers:      workerCount,
	}

	for outcome := range outcomes {
		if outcome.err != nil {
			result.FailedPages++
			p.logger.Warn("Page failed, continuing without it", map[string]interface{}{
				"error": outcome.err.Error(),
			})
			continue
		}
		result.Listings = append(result.Listings, outcome.result.Listings...)
	}

	result.Elapsed = time.Since(start)
	return result
}

func (p *Pool) worker(ctx context.Context, q models.SearchQuery, pages <-chan int, outcomes chan<- pageOutcome, wg *sync.WaitGroup) {
	defer wg.Done()

	for page := range pages {
		outcomes <- p.fetchPage(ctx, q, page)
	}
}

// fetchPage performs one page's fetch + extract. Transport and parse failures
// surface as a page-level failure for the coordinator to record.
func (p *Pool) fetchPage(ctx context.Context, q models.SearchQuery, page int) pageOutcome {
	doc, err := p.fetcher.Fetch(ctx, p.planner.PageURL(q, page))
	if err != nil {
		return pageOutcome{err: utils.NewPageFetchError(page, err)}
	}

	listings := p.extractor.ExtractPage(ctx, doc, q)

	p.logger.Debug("Page extracted", map[string]interface{}{
		"page":     page,
		"listings": len(listings),
	})

	return pageOutcome{result: models.PageResult{Page: page, Listings: listings}}
}
