package models

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"jobwatch/pkg/utils"
)

var validate = validator.New()

// SearchQuery is the immutable per-cycle search configuration. All numeric
// ranges are enforced at construction; components downstream never re-validate.
type SearchQuery struct {
	Keywords   string `validate:"required"`
	Skills     []string
	Industry   *Industry
	MaxDaysOld int `validate:"min=0,max=330"`
	PageSize   int `validate:"min=1,max=200"`
	MaxWorkers int `validate:"min=1,max=100"`
}

// NewSearchQuery builds a validated SearchQuery. The skills string is the
// user-facing comma-separated form; tokens are lowercased with all whitespace
// stripped so they compare exactly against scraped skill tags.
func NewSearchQuery(keywords, skills string, maxDaysOld, pageSize, maxWorkers int) (SearchQuery, error) {
	q := SearchQuery{
		Keywords:   strings.TrimSpace(keywords),
		Skills:     splitSkills(skills),
		MaxDaysOld: maxDaysOld,
		PageSize:   pageSize,
		MaxWorkers: maxWorkers,
	}

	if err := validate.Struct(&q); err != nil {
		return SearchQuery{}, utils.NewConfigurationError("search", err.Error())
	}

	return q, nil
}

// WithIndustry returns a copy of the query narrowed to the given industry.
// A nil industry means "all industries".
func (q SearchQuery) WithIndustry(industry *Industry) SearchQuery {
	q.Industry = industry
	return q
}

func splitSkills(skills string) []string {
	compact := strings.ToLower(strings.Join(strings.Fields(skills), ""))
	if compact == "" {
		return nil
	}

	var out []string
	for _, token := range strings.Split(compact, ",") {
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}
