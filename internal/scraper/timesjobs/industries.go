package timesjobs

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobwatch/internal/logging/types"
	"jobwatch/pkg/models"
	"jobwatch/pkg/utils"
)

// Industry radio buttons on the search page carry their search parameters in
// an onclick handler rather than clean attributes.
const industryRadioSelector = `input[type=radio][name=industryMap]`

// ParseIndustries scrapes the name→id industry map from a search page. When
// the source yields duplicate names the last one wins.
func ParseIndustries(doc *goquery.Document, logger types.Logger) (map[string]string, error) {
	industries := make(map[string]string)

	doc.Find(industryRadioSelector).Each(func(_ int, s *goquery.Selection) {
		id, exists := s.Attr("id")
		if !exists || !strings.HasPrefix(id, "ind_") {
			return
		}

		onclick, exists := s.Attr("onclick")
		if !exists {
			return
		}

		params := make(map[string]string)
		for _, pair := range strings.Split(onclick, "&") {
			kv := strings.SplitN(pair, "=", 2)
			if len(kv) == 2 {
				params[kv[0]] = kv[1]
			}
		}

		rawName, okName := params[paramIndustryName]
		industryID, okID := params[paramIndustryID]
		if !okName || !okID {
			return
		}

		// The name value runs up to the closing quote of the handler.
		name := rawName
		if cut := strings.Index(rawName, "'"); cut >= 0 {
			name = rawName[:cut]
		}
		if name == "" {
			return
		}

		if _, dup := industries[name]; dup {
			logger.Debug("Duplicate industry name, keeping last", map[string]interface{}{
				"industry": name,
			})
		}
		industries[name] = industryID
	})

	if len(industries) == 0 {
		return nil, utils.NewUpstreamFormatError("industries", "no industry selectors found")
	}

	return industries, nil
}

// Resolve finds a configured industry name in the scraped map. Matching is
// exact and case-sensitive; an unmatched name degrades to "no filter" with a
// warning rather than failing the run.
func Resolve(industries map[string]string, name string, logger types.Logger) *models.Industry {
	if name == "" {
		return nil
	}

	id, ok := industries[name]
	if !ok {
		logger.Warn("Ignoring unknown industry name", map[string]interface{}{
			"industry": name,
		})
		return nil
	}

	return &models.Industry{ID: id, Name: name}
}

// Prompt asks the user to pick an industry from a 1-indexed sorted list.
// Blank input means "all industries"; out-of-range or non-numeric input is
// ignored with a warning, never an error.
func Prompt(r io.Reader, w io.Writer, industries map[string]string, logger types.Logger) *models.Industry {
	names := make([]string, 0, len(industries))
	for name := range industries {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Choose an industry number to narrow down your search, or leave blank for all:")
	fmt.Fprintln(w)
	for i, name := range names {
		fmt.Fprintf(w, "%2d %s\n", i+1, name)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "Industry number (leave blank for all industries): ")

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return nil
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return nil
	}

	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(names) {
		logger.Warn("Ignoring invalid industry number", map[string]interface{}{
			"input": input,
		})
		return nil
	}

	name := names[choice-1]
	return &models.Industry{ID: industries[name], Name: name}
}
