package timesjobs

import (
	"regexp"
	"strconv"
	"strings"
)

// fewDaysOld is the age assigned to the vague "few days ago" phrase. Exact
// phrases go up to "3 days ago", so 4 sorts vague entries strictly after any
// exactly-stated value at or below it.
const fewDaysOld = 4

const daysPerMonth = 30

var (
	exactDays   = regexp.MustCompile(`\b(\d+)\b\Wdays?`)
	exactMonths = regexp.MustCompile(`\b(\d+)\b\Wmonths?`)
)

// DaysOld converts a trimmed posted-date phrase from the site's vocabulary
// into an exact age in days, or -1 when the phrase is uninterpretable.
// The heuristics run in a fixed priority order; some phrases could textually
// satisfy more than one, so only the first match applies.
func DaysOld(phrase string) int {
	switch {
	case strings.Contains(phrase, "today"):
		return 0
	case strings.Contains(phrase, "few days"):
		return fewDaysOld
	case strings.Contains(phrase, "a month"):
		// Some listings say "a month ago" instead of "1 month ago".
		return daysPerMonth
	}

	if m := exactDays.FindStringSubmatch(phrase); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	if m := exactMonths.FindStringSubmatch(phrase); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n * daysPerMonth
		}
	}

	return -1
}
