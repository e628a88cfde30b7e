package utils

import "fmt"

// ConfigurationError reports an invalid configuration or search parameter.
// It is fatal for the run; no scrape is attempted.
type ConfigurationError struct {
	Field  string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration (%s): %s", e.Field, e.Detail)
}

func NewConfigurationError(field, detail string) *ConfigurationError {
	return &ConfigurationError{Field: field, Detail: detail}
}

// UpstreamFormatError reports that a well-known piece of the remote site's
// markup (total-count field, industry selection) is missing or unparsable.
// It aborts the current cycle before any page workers are dispatched; the
// polling driver retries on the next interval.
type UpstreamFormatError struct {
	Field  string
	Detail string
}

func (e *UpstreamFormatError) Error() string {
	return fmt.Sprintf("upstream markup changed (%s): %s", e.Field, e.Detail)
}

func NewUpstreamFormatError(field, detail string) *UpstreamFormatError {
	return &UpstreamFormatError{Field: field, Detail: detail}
}

// PageFetchError reports that a single result page could not be fetched or
// parsed after all retry attempts. It is isolated to its page: the page
// contributes zero listings and the cycle continues.
type PageFetchError struct {
	Page int
	Err  error
}

func (e *PageFetchError) Error() string {
	return fmt.Sprintf("page %d fetch failed: %v", e.Page, e.Err)
}

func (e *PageFetchError) Unwrap() error {
	return e.Err
}

func NewPageFetchError(page int, err error) *PageFetchError {
	return &PageFetchError{Page: page, Err: err}
}
