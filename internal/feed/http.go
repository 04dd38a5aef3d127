// Package feed fetches the society's member register, either from the
// published CSV export or through the Google Sheets API.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dwellingconnect/society-sync/internal/sheet"
)

const defaultTimeout = 10 * time.Second

// HTTPSource fetches the register from its published CSV export URL.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a CSV export source with a bounded timeout.
func NewHTTPSource(url string, timeout time.Duration) (*HTTPSource, error) {
	if url == "" {
		return nil, fmt.Errorf("feed URL is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// FetchRows downloads and parses the register. Transient failures are
// retried once before giving up; the caller converts the error into a
// generic client-facing message.
func (s *HTTPSource) FetchRows(ctx context.Context) ([]sheet.Row, error) {
	text, err := s.fetch(ctx)
	if err != nil {
		logrus.WithError(err).Debug("feed fetch failed, retrying once")
		text, err = s.fetch(ctx)
	}
	if err != nil {
		return nil, err
	}
	return sheet.Parse(text), nil
}

func (s *HTTPSource) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching register: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching register: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading register body: %w", err)
	}
	return string(body), nil
}
