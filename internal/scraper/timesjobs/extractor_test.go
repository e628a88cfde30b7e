package timesjobs

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobwatch/pkg/models"
)

func listingHTML(company, skills, posted, link string) string {
	return fmt.Sprintf(`
<li class="clearfix job-bx wht-shd-bx">
  <header class="clearfix"><h2><a href="%s">Some Role</a></h2></header>
  <h3 class="joblist-comp-name">
    %s
    <span class="comp-more">(More Jobs)</span>
  </h3>
  <span class="srp-skills"> %s </span>
  <span class="sim-posted"><span class="jobs-status-wfh">Work from Home</span>Posted %s</span>
</li>`, link, company, skills, posted)
}

func resultPage(listings ...string) string {
	page := "<html><body><ul>"
	for _, l := range listings {
		page += l
	}
	return page + "</ul></body></html>"
}

func fixedExtractor(fetcher *fakeFetcher) *Extractor {
	e := NewExtractor(fetcher, testLogger())
	e.now = func() time.Time { return time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC) }
	return e
}

func TestExtractPage(t *testing.T) {
	q, err := models.NewSearchQuery("java", "git, mongodb", 30, 200, 50)
	require.NoError(t, err)

	doc := mustDoc(resultPage(
		listingHTML("ACME  SOFTWARE LTD", `java, git, "mongodb"`, "3 days ago", "https://example.test/job/1"),
	))

	listings := fixedExtractor(&fakeFetcher{}).ExtractPage(context.Background(), doc, q)
	require.Len(t, listings, 1)

	got := listings[0]
	assert.Equal(t, "Acme Software Ltd", got.Company)
	assert.Equal(t, []string{"java", "git", "mongodb"}, got.Skills)
	assert.Equal(t, 3, got.DaysOld)
	assert.Equal(t, "Posted 3 days ago", got.PostedPhrase)
	assert.Equal(t, time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC), got.PostedDate)
	assert.Equal(t, "https://example.test/job/1", got.Link)
	assert.Empty(t, got.Industry) // no industry filter, no detail fetch
}

func TestSkillFilterRequiresContainment(t *testing.T) {
	q, err := models.NewSearchQuery("java", "git, mongodb", 30, 200, 50)
	require.NoError(t, err)

	tests := []struct {
		name     string
		skills   string
		survives bool
	}{
		{"superset matches", "java, git, mongodb", true},
		{"exact set matches", "git, mongodb", true},
		{"partial overlap discarded", "java, git", false},
		{"disjoint discarded", "python, django", false},
		{"single skill discarded", "java", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(resultPage(listingHTML("Acme", tt.skills, "today", "https://example.test/j")))
			listings := fixedExtractor(&fakeFetcher{}).ExtractPage(context.Background(), doc, q)
			assert.Equal(t, tt.survives, len(listings) == 1)
		})
	}
}

func TestAgeFilter(t *testing.T) {
	q, err := models.NewSearchQuery("java", "", 30, 200, 50)
	require.NoError(t, err)

	tests := []struct {
		name     string
		posted   string
		survives bool
	}{
		{"today survives", "today", true},
		{"boundary survives", "30 days ago", true},
		{"too old discarded", "45 days ago", false},
		{"uninterpretable discarded", "sometime last decade", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(resultPage(listingHTML("Acme", "java", tt.posted, "https://example.test/j")))
			listings := fixedExtractor(&fakeFetcher{}).ExtractPage(context.Background(), doc, q)
			assert.Equal(t, tt.survives, len(listings) == 1)
		})
	}
}

func TestExtractPageFetchesIndustryFromDetailPage(t *testing.T) {
	q, err := models.NewSearchQuery("java", "", 30, 200, 50)
	require.NoError(t, err)
	q = q.WithIndustry(&models.Industry{ID: "1001", Name: "IT-Software"})

	fetcher := &fakeFetcher{pages: map[string]string{
		"https://example.test/job/7": `<html><body>
			<label>Industry:</label><span>Software   Services</span>
		</body></html>`,
	}}

	doc := mustDoc(resultPage(listingHTML("Acme", "java", "today", "https://example.test/job/7")))
	listings := fixedExtractor(fetcher).ExtractPage(context.Background(), doc, q)

	require.Len(t, listings, 1)
	// The listing's own label wins over the filter category, whitespace collapsed.
	assert.Equal(t, "Software Services", listings[0].Industry)
}

func TestExtractPageIndustryFetchFailureLeavesFieldEmpty(t *testing.T) {
	q, err := models.NewSearchQuery("java", "", 30, 200, 50)
	require.NoError(t, err)
	q = q.WithIndustry(&models.Industry{ID: "1001", Name: "IT-Software"})

	doc := mustDoc(resultPage(listingHTML("Acme", "java", "today", "https://example.test/missing")))
	listings := fixedExtractor(&fakeFetcher{}).ExtractPage(context.Background(), doc, q)

	require.Len(t, listings, 1)
	assert.Empty(t, listings[0].Industry)
}

// Page workers run extraction concurrently; title-casing must hold up under
// parallel calls. Run with -race.
func TestExtractPageConcurrentWorkers(t *testing.T) {
	q, err := models.NewSearchQuery("java", "", 30, 200, 50)
	require.NoError(t, err)

	extractor := fixedExtractor(&fakeFetcher{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				doc := mustDoc(resultPage(
					listingHTML("acme software ltd", "java", "today", "https://example.test/j"),
				))
				listings := extractor.ExtractPage(context.Background(), doc, q)
				if len(listings) != 1 {
					t.Errorf("got %d listings, want 1", len(listings))
					return
				}
				if listings[0].Company != "Acme Software Ltd" {
					t.Errorf("got company %q, want %q", listings[0].Company, "Acme Software Ltd")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestExtractPageSkipsListingWithoutLink(t *testing.T) {
	q, err := models.NewSearchQuery("java", "", 30, 200, 50)
	require.NoError(t, err)

	doc := mustDoc(resultPage(`
<li class="clearfix job-bx wht-shd-bx">
  <h3 class="joblist-comp-name">Acme</h3>
  <span class="srp-skills">java</span>
  <span class="sim-posted">Posted today</span>
</li>`))

	listings := fixedExtractor(&fakeFetcher{}).ExtractPage(context.Background(), doc, q)
	assert.Empty(t, listings)
}
