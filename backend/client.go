// Package backend talks to the scraping backend that turns a portal listing
// URL into a normalized ListingRecord envelope.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ficha-generator/models"
)

// ErrFetch marks transport-level failures: network errors, non-2xx statuses,
// undecodable bodies. Callers surface a generic message and do not retry.
var ErrFetch = errors.New("backend request failed")

// BackendError is the backend answering ok:false. Its message comes verbatim
// from the backend and is shown to the user as-is.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string { return e.Message }

// envelope is the backend response: the ListingRecord fields inline plus the
// ok/error pair.
type envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	models.ListingRecord
}

// Client fetches listing records over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  zerolog.Logger
}

// NewClient creates a Client against the configured backend endpoint.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "?&"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "backend").Logger(),
	}
}

// Fetch retrieves the record for a user-supplied listing URL. The URL is
// cleaned first so upstream trackers never reach the backend.
func (c *Client) Fetch(ctx context.Context, listingURL string) (*models.ListingRecord, error) {
	clean := CleanListingURL(listingURL)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty listing url", ErrFetch)
	}

	reqURL := c.baseURL + "?url=" + url.QueryEscape(clean)
	c.logger.Debug().Str("listing_url", clean).Msg("fetching listing record")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrFetch, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrFetch, err)
	}

	if !env.OK {
		msg := env.Error
		if msg == "" {
			msg = "Error en backend"
		}
		return nil, &BackendError{Message: msg}
	}

	rec := env.ListingRecord
	if rec.SourceURL == "" {
		rec.SourceURL = clean
	}
	return &rec, nil
}

// CleanListingURL strips whitespace, trailing tokens, the fragment and the
// query string from a pasted listing URL.
func CleanListingURL(raw string) string {
	s := strings.TrimSpace(raw)
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	return s
}
