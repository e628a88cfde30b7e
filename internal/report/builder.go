package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"jobwatch/pkg/models"
)

var printer = message.NewPrinter(language.English)

// Build renders the report for one scrape cycle: a timestamped header, run
// statistics, the applied filters, then the surviving listings numbered
// newest-to-oldest. Pure transformation; writing is the sink's job.
func Build(result *models.AggregateResult, q models.SearchQuery, now time.Time) string {
	// Stable sort so listings with equal ages keep their arrival order.
	listings := make([]models.Listing, len(result.Listings))
	copy(listings, result.Listings)
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].DaysOld < listings[j].DaysOld
	})

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", now.Format("2006-01-02 15:04:05"))

	printer.Fprintf(&b, "Searched %d %s jobs across %d pages @ %d results per page, using %d workers.\n",
		result.TotalMatches, q.Keywords, result.TotalPages, q.PageSize, result.Workers)
	if result.FailedPages > 0 {
		printer.Fprintf(&b, "(%d of those pages failed to load; their listings are missing.)\n", result.FailedPages)
	}

	printer.Fprintf(&b, "\nFound %d %s jobs,\n", len(listings), q.Keywords)
	fmt.Fprintf(&b, "Posted within %s,\n", ageWindow(q.MaxDaysOld))
	fmt.Fprintf(&b, "Within your industry: %s,\n", industryLabel(q.Industry))
	fmt.Fprintf(&b, "Matching your specific skills: %s.\n", skillsLabel(q.Skills))
	fmt.Fprintf(&b, "(Search took %.0f seconds.)\n\n", result.Elapsed.Seconds())

	for i, listing := range listings {
		printer.Fprintf(&b, "%d.\n", i+1)
		fmt.Fprintf(&b, "Company: %s\n", listing.Company)
		fmt.Fprintf(&b, "Industry: %s\n", listing.Industry)
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(listing.Skills, ","))
		fmt.Fprintf(&b, "Posted: %s (%s)\n", listing.PostedDate.Format("2006-01-02"),
			strings.TrimPrefix(listing.PostedPhrase, "Posted "))
		fmt.Fprintf(&b, "Link: %s\n\n", listing.Link)
	}

	return strings.TrimSpace(b.String()) + "\n"
}

// ageWindow renders the age filter, singular for a one-day window.
func ageWindow(maxDaysOld int) string {
	if maxDaysOld == 1 {
		return "the last day"
	}
	return fmt.Sprintf("the last %d days", maxDaysOld)
}

func industryLabel(industry *models.Industry) string {
	if industry == nil || industry.Name == "" {
		return "Any"
	}
	return industry.Name
}

func skillsLabel(skills []string) string {
	if len(skills) == 0 {
		return "Any"
	}
	return strings.Join(skills, ", ")
}
