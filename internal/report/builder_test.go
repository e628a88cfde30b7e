package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobwatch/pkg/models"
)

var reportTime = time.Date(2026, 8, 23, 9, 30, 0, 0, time.UTC)

func testListing(company string, daysOld int) models.Listing {
	return models.Listing{
		Company:      company,
		Industry:     "IT-Software",
		Skills:       []string{"java", "git"},
		PostedDate:   reportTime.AddDate(0, 0, -daysOld),
		PostedPhrase: "Posted a few days ago",
		DaysOld:      daysOld,
		Link:         "https://example.test/job/" + company,
	}
}

func testQuery(t *testing.T) models.SearchQuery {
	t.Helper()
	q, err := models.NewSearchQuery("java developer", "java, git", 30, 200, 50)
	require.NoError(t, err)
	return q
}

func TestBuildSortsByAgeAscending(t *testing.T) {
	result := &models.AggregateResult{
		Listings: []models.Listing{
			testListing("Old Corp", 20),
			testListing("Fresh Corp", 0),
			testListing("Mid Corp", 7),
		},
		TotalMatches: 3,
		TotalPages:   1,
		Workers:      1,
	}

	text := Build(result, testQuery(t), reportTime)

	fresh := strings.Index(text, "Fresh Corp")
	mid := strings.Index(text, "Mid Corp")
	old := strings.Index(text, "Old Corp")
	assert.Less(t, fresh, mid)
	assert.Less(t, mid, old)

	// Numbered in sorted order.
	assert.Contains(t, text, "1.\nCompany: Fresh Corp")
	assert.Contains(t, text, "3.\nCompany: Old Corp")
}

func TestBuildSortIsStable(t *testing.T) {
	result := &models.AggregateResult{
		Listings: []models.Listing{
			testListing("Alpha", 5),
			testListing("Beta", 5),
			testListing("Gamma", 5),
		},
		TotalMatches: 3,
		TotalPages:   1,
		Workers:      1,
	}

	text := Build(result, testQuery(t), reportTime)

	assert.Less(t, strings.Index(text, "Alpha"), strings.Index(text, "Beta"))
	assert.Less(t, strings.Index(text, "Beta"), strings.Index(text, "Gamma"))
}

func TestBuildHeaderAndSummary(t *testing.T) {
	result := &models.AggregateResult{
		Listings:     []models.Listing{testListing("Acme", 2)},
		TotalMatches: 4500,
		TotalPages:   23,
		Workers:      23,
		Elapsed:      12 * time.Second,
	}

	text := Build(result, testQuery(t), reportTime)

	assert.True(t, strings.HasPrefix(text, "2026-08-23 09:30:00\n"))
	// Thousands separator in the match count.
	assert.Contains(t, text, "Searched 4,500 java developer jobs across 23 pages @ 200 results per page, using 23 workers.")
	assert.Contains(t, text, "Found 1 java developer jobs,")
	assert.Contains(t, text, "Posted within the last 30 days,")
	assert.Contains(t, text, "Within your industry: Any,")
	assert.Contains(t, text, "Matching your specific skills: java, git.")
	assert.Contains(t, text, "(Search took 12 seconds.)")
	assert.NotContains(t, text, "failed to load")
}

func TestBuildReportsFailedPages(t *testing.T) {
	result := &models.AggregateResult{
		TotalMatches: 600,
		TotalPages:   3,
		Workers:      3,
		FailedPages:  2,
	}

	text := Build(result, testQuery(t), reportTime)

	assert.Contains(t, text, "(2 of those pages failed to load; their listings are missing.)")
}

func TestBuildSingularDayWindow(t *testing.T) {
	q, err := models.NewSearchQuery("java", "", 1, 200, 50)
	require.NoError(t, err)

	text := Build(&models.AggregateResult{TotalPages: 1, Workers: 1}, q, reportTime)

	assert.Contains(t, text, "Posted within the last day,")
}

func TestBuildAnyFallbacks(t *testing.T) {
	q, err := models.NewSearchQuery("java", "", 30, 200, 50)
	require.NoError(t, err)

	text := Build(&models.AggregateResult{TotalPages: 1, Workers: 1}, q, reportTime)

	assert.Contains(t, text, "Within your industry: Any,")
	assert.Contains(t, text, "Matching your specific skills: Any.")
}

func TestBuildIndustryFilterShown(t *testing.T) {
	q := testQuery(t).WithIndustry(&models.Industry{ID: "1001", Name: "IT-Software"})

	text := Build(&models.AggregateResult{TotalPages: 1, Workers: 1}, q, reportTime)

	assert.Contains(t, text, "Within your industry: IT-Software,")
}

func TestBuildListingEntry(t *testing.T) {
	result := &models.AggregateResult{
		Listings:     []models.Listing{testListing("Acme", 3)},
		TotalMatches: 1,
		TotalPages:   1,
		Workers:      1,
	}

	text := Build(result, testQuery(t), reportTime)

	assert.Contains(t, text, "Company: Acme\n")
	assert.Contains(t, text, "Industry: IT-Software\n")
	assert.Contains(t, text, "Skills: java,git\n")
	// Phrase with the "Posted " prefix trimmed, date from the fixed clock.
	assert.Contains(t, text, "Posted: 2026-08-20 (a few days ago)\n")
	assert.Contains(t, text, "Link: https://example.test/job/Acme\n")
}
