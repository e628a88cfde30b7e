package timesjobs

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jobwatch/internal/logging/types"
	"jobwatch/internal/scraper"
	"jobwatch/pkg/models"
)

// Selectors for one result-page listing node and its decorative children.
const (
	listingSelector     = "li.clearfix.job-bx.wht-shd-bx"
	companySelector     = "h3.joblist-comp-name"
	moreJobsSelector    = "span.comp-more"
	skillsSelector      = "span.srp-skills"
	postedSelector      = "span.sim-posted"
	statusBadgeSelector = "span[class*=jobs-status]"
	linkSelector        = "header h2 a"
)

// Extractor turns raw listing nodes into filtered Listing records.
type Extractor struct {
	fetcher scraper.Fetcher
	logger  types.Logger
	now     func() time.Time
}

// NewExtractor creates a new listing extractor. The fetcher is used for the
// per-listing detail-page fetch when an industry filter is active.
func NewExtractor(fetcher scraper.Fetcher, logger types.Logger) *Extractor {
	return &Extractor{fetcher: fetcher, logger: logger, now: time.Now}
}

// ExtractPage extracts every listing on a fetched result page that passes the
// query's skill and age filters, in page order.
func (e *Extractor) ExtractPage(ctx context.Context, doc *goquery.Document, q models.SearchQuery) []models.Listing {
	var listings []models.Listing

	doc.Find(listingSelector).Each(func(_ int, node *goquery.Selection) {
		if listing, ok := e.extractOne(ctx, node, q); ok {
			listings = append(listings, listing)
		}
	})

	return listings
}

func (e *Extractor) extractOne(ctx context.Context, node *goquery.Selection, q models.SearchQuery) (models.Listing, bool) {
	skills := extractSkills(node)

	// Skill filter first: the configured set must be fully contained in the
	// listing's advertised skills.
	if len(q.Skills) > 0 && !containsAll(skills, q.Skills) {
		return models.Listing{}, false
	}

	phrase := extractPostedPhrase(node)
	daysOld := DaysOld(phrase)
	if daysOld < 0 || daysOld > q.MaxDaysOld {
		return models.Listing{}, false
	}

	link, ok := node.Find(linkSelector).First().Attr("href")
	if !ok || link == "" {
		e.logger.Debug("Listing without a detail link, skipping")
		return models.Listing{}, false
	}

	industry := ""
	if q.Industry != nil {
		// The listing's true industry label can differ from the filter
		// category used to find it, so read it from the detail page. One
		// extra fetch per surviving listing.
		industry = e.industryName(ctx, link)
	}

	return models.Listing{
		Company:      extractCompany(node),
		Industry:     industry,
		Skills:       skills,
		PostedDate:   e.now().AddDate(0, 0, -daysOld),
		PostedPhrase: phrase,
		DaysOld:      daysOld,
		Link:         link,
	}, true
}

// extractCompany reads the company name with decorative nested elements
// (the "more jobs" link) stripped, then trims and title-cases it.
// cases.Caser carries internal transform state and is not safe for concurrent
// use, so each call builds its own rather than sharing one across page workers.
func extractCompany(node *goquery.Selection) string {
	company := node.Find(companySelector).First()
	company.Find(moreJobsSelector).Remove()
	return cases.Title(language.English).String(strings.TrimSpace(collapseWhitespace(company.Text())))
}

// extractSkills reads the advertised skill tags: whitespace and embedded
// quotes stripped, lowercased, split on commas.
func extractSkills(node *goquery.Selection) []string {
	raw := node.Find(skillsSelector).First().Text()
	compact := strings.ToLower(strings.ReplaceAll(strings.Join(strings.Fields(raw), ""), `"`, ""))

	var skills []string
	for _, token := range strings.Split(compact, ",") {
		if token != "" {
			skills = append(skills, token)
		}
	}
	return skills
}

// extractPostedPhrase reads the posted-date text with nested status badges
// ("work from home" etc.) stripped.
func extractPostedPhrase(node *goquery.Selection) string {
	posted := node.Find(postedSelector).First()
	posted.Find(statusBadgeSelector).Remove()
	return collapseWhitespace(strings.TrimSpace(posted.Text()))
}

// industryName fetches the listing's detail page and reads the text next to
// its "Industry:" label. Best effort: failures leave the field empty.
func (e *Extractor) industryName(ctx context.Context, link string) string {
	doc, err := e.fetcher.Fetch(ctx, link)
	if err != nil {
		e.logger.Warn("Failed to fetch listing detail page", map[string]interface{}{
			"link":  link,
			"error": err.Error(),
		})
		return ""
	}

	var name string
	doc.Find("label").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) != "Industry:" {
			return true
		}
		name = collapseWhitespace(strings.TrimSpace(s.Next().Text()))
		return false
	})

	return name
}

func containsAll(haystack, needles []string) bool {
	set := make(map[string]struct{}, len(haystack))
	for _, s := range haystack {
		set[s] = struct{}{}
	}
	for _, n := range needles {
		if _, ok := set[n]; !ok {
			return false
		}
	}
	return true
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
