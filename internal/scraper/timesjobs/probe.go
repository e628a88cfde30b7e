package timesjobs

import (
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobwatch/internal/scraper"
	"jobwatch/pkg/models"
	"jobwatch/pkg/utils"
)

// The site misspells "total" in this element ID. Intentional, do not fix.
const totalCountSelector = "span#totolResultCountsId"

// Probe reads the total match count for a query through a minimal-cost fetch.
type Probe struct {
	fetcher scraper.Fetcher
	planner *Planner
}

// NewProbe creates a new count probe
func NewProbe(fetcher scraper.Fetcher, planner *Planner) *Probe {
	return &Probe{fetcher: fetcher, planner: planner}
}

// TotalMatches fetches a one-result page and returns the site's total match
// count for the query, plus the probe document itself so callers can reuse it
// for industry discovery. A missing or non-numeric count field means the site
// markup changed and is fatal for the current cycle.
func (p *Probe) TotalMatches(ctx context.Context, q models.SearchQuery) (int, *goquery.Document, error) {
	doc, err := p.fetcher.Fetch(ctx, p.planner.ProbeURL(q))
	if err != nil {
		return 0, nil, err
	}

	node := doc.Find(totalCountSelector)
	if node.Length() == 0 {
		return 0, nil, utils.NewUpstreamFormatError("total_count", "count element not found")
	}

	raw := strings.ReplaceAll(strings.TrimSpace(node.First().Text()), ",", "")
	total, err := strconv.Atoi(raw)
	if err != nil {
		return 0, nil, utils.NewUpstreamFormatError("total_count", "count is not numeric: "+raw)
	}

	return total, doc, nil
}
