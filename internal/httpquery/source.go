// Package httpquery implements the engine's QuerySource capability over
// HTTP: a raw query text is a URL whose response body holds one number.
package httpquery

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"
)

const defaultTimeout = 10 * time.Second

// Source executes raw dashboard queries over HTTP. One shared client serves
// all queries; Source is safe for concurrent use.
type Source struct {
	client *resty.Client
}

// New returns a Source with the default request timeout.
func New() *Source {
	return &Source{client: resty.New().SetTimeout(defaultTimeout)}
}

// Query fetches the URL in query and parses the response body as a float.
func (s *Source) Query(ctx context.Context, query string) (float64, error) {
	res, err := s.client.R().SetContext(ctx).Get(query)
	if err != nil {
		return 0, fmt.Errorf("executing query: %w", err)
	}
	if res.IsError() {
		return 0, fmt.Errorf("query returned status %s", res.Status())
	}

	body := strings.TrimSpace(res.String())
	value, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return 0, fmt.Errorf("query response %q is not a number", body)
	}
	return value, nil
}

// Close releases the underlying HTTP client resources.
func (s *Source) Close() error {
	return s.client.Close()
}
