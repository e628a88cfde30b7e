package timesjobs

import (
	"net/url"
	"strconv"

	"jobwatch/pkg/models"
)

// Query parameter names understood by the site. Grouped here so a remote
// rename only touches this file.
const (
	paramKeywords     = "txtKeywords"
	paramPageSize     = "luceneResultSize"
	paramSequence     = "sequence"
	paramClusterName  = "clusterName"
	paramUndoKey      = "undokey"
	paramIndustryID   = "cboIndustry"
	paramIndustryName = "gadLink"

	industryCluster = "CLUSTER_IND"
)

// Planner builds fully-parameterized search URLs for result pages. It is a
// pure value; the same query and page always produce the same URL.
type Planner struct {
	baseURL string
}

// NewPlanner creates a Planner rooted at the site's static search URL.
func NewPlanner(baseURL string) *Planner {
	return &Planner{baseURL: baseURL}
}

// PageURL returns the URL for one result page of the given query.
func (p *Planner) PageURL(q models.SearchQuery, page int) string {
	return p.buildURL(q, page, q.PageSize)
}

// ProbeURL returns the minimal-cost URL used to read the total match count:
// one result on page one.
func (p *Planner) ProbeURL(q models.SearchQuery) string {
	return p.buildURL(q, 1, 1)
}

func (p *Planner) buildURL(q models.SearchQuery, page, pageSize int) string {
	params := url.Values{}
	params.Set(paramKeywords, q.Keywords)
	params.Set(paramPageSize, strconv.Itoa(pageSize))
	params.Set(paramSequence, strconv.Itoa(page))

	if q.Industry != nil {
		params.Set(paramClusterName, industryCluster)
		params.Set(paramUndoKey, paramIndustryID)
		params.Set(paramIndustryID, q.Industry.ID)
		params.Set(paramIndustryName, q.Industry.Name)
	}

	// Values.Encode renders spaces as '+', the encoding the site expects
	// for keywords and industry names.
	return p.baseURL + "&" + params.Encode()
}
