package models

import "time"

// Industry pairs a display name with the site-specific identifier used in
// search URLs. The name is the natural key of the scraped industry map.
type Industry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Listing is one job posting that survived filtering. It is immutable once
// extracted; later stages only aggregate and sort.
type Listing struct {
	Company      string    `json:"company"`
	Industry     string    `json:"industry,omitempty"`
	Skills       []string  `json:"skills"`
	PostedDate   time.Time `json:"posted_date"`
	PostedPhrase string    `json:"posted_phrase"`
	DaysOld      int       `json:"days_old"`
	Link         string    `json:"link"`
}

// PageResult holds the surviving listings extracted from a single result page.
type PageResult struct {
	Page     int       `json:"page"`
	Listings []Listing `json:"listings"`
}

// AggregateResult is the merged outcome of one scrape cycle, consumed once by
// the report builder and then discarded.
type AggregateResult struct {
	Listings     []Listing     `json:"listings"`
	TotalMatches int           `json:"total_matches"`
	TotalPages   int           `json:"total_pages"`
	Workers      int           `json:"workers"`
	FailedPages  int           `json:"failed_pages"`
	Elapsed      time.Duration `json:"elapsed"`
}
