package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/dwellingconnect/society-sync/internal/sheet"
)

const readScope = "https://www.googleapis.com/auth/spreadsheets.readonly"

type valueGetter interface {
	GetValues(ctx context.Context, spreadsheetID string, readRange string) ([][]interface{}, error)
}

// SheetsSource reads the register through the Google Sheets API using
// service-account credentials. Unlike the public CSV export, it works
// for registers that are not published to the web.
type SheetsSource struct {
	getter        valueGetter
	spreadsheetID string
	readRange     string
}

// NewSheetsSource creates a Sheets API source.
func NewSheetsSource(ctx context.Context, credentialsJSON []byte, spreadsheetID string, readRange string) (*SheetsSource, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("credentials JSON is required")
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	if readRange == "" {
		readRange = "A:Z"
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, readScope)
	if err != nil {
		return nil, err
	}

	svc, err := sheetsapi.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
	if err != nil {
		return nil, err
	}

	return &SheetsSource{
		getter:        &sheetsService{svc: svc},
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}, nil
}

// FetchRows reads the configured range and maps it to register rows.
// The first returned row is the header row; later rows whose cells are
// all empty are skipped, matching the CSV parser's blank-line rule.
func (s *SheetsSource) FetchRows(ctx context.Context) ([]sheet.Row, error) {
	var values [][]interface{}
	err := retryOnGoogleError(ctx, func() error {
		var innerErr error
		values, innerErr = s.getter.GetValues(ctx, s.spreadsheetID, s.readRange)
		return innerErr
	})
	if err != nil {
		return nil, fmt.Errorf("reading spreadsheet values: %w", err)
	}

	if len(values) < 2 {
		return nil, nil
	}

	headers := make([]string, len(values[0]))
	for i, cell := range values[0] {
		headers[i] = sheet.NormalizeHeader(cellString(cell))
	}

	var rows []sheet.Row
	for _, line := range values[1:] {
		row := sheet.Row{
			Headers: headers,
			Values:  make(map[string]string, len(headers)),
		}
		empty := true
		for i, h := range headers {
			var v string
			if i < len(line) {
				v = strings.TrimSpace(cellString(line[i]))
			}
			if v != "" {
				empty = false
			}
			row.Values[h] = v
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cellString(cell interface{}) string {
	if cell == nil {
		return ""
	}
	return fmt.Sprint(cell)
}

func retryOnGoogleError(ctx context.Context, fn func() error) error {
	const maxRetries = 3
	backoff := 200 * time.Millisecond
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !isRetryableGoogleError(err) || attempt == maxRetries {
			return err
		}
		if backoff > 2*time.Second {
			backoff = 2 * time.Second
		}
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
	return nil
}

func isRetryableGoogleError(err error) bool {
	apiErr, ok := err.(*googleapi.Error)
	if !ok {
		return false
	}
	return apiErr.Code == 429 || apiErr.Code == 503
}

type sheetsService struct {
	svc *sheetsapi.Service
}

func (s *sheetsService) GetValues(ctx context.Context, spreadsheetID string, readRange string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}
