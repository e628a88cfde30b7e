package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves a URL and parses the response into a queryable document.
// All site markup access goes through the returned document so that selector
// changes stay isolated to one layer.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}
