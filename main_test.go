package main

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/dwellingconnect/society-sync/internal/config"
	"github.com/dwellingconnect/society-sync/internal/dynamodb"
	"github.com/dwellingconnect/society-sync/internal/models"
)

func stubEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FEED_CSV_URL", "https://docs.google.com/spreadsheets/d/abc/pub?output=csv")
	t.Setenv("SOCIETY_ID", "green-acres")
	os.Unsetenv("AWS_LAMBDA_FUNCTION_NAME")
}

func stubResult() *models.SyncResult {
	return &models.SyncResult{
		RunID:     "run-1",
		StartTime: time.Now(),
		EndTime:   time.Now(),
		Members:   []models.Member{{MemberID: "USR001", Name: "Alice Kumar"}},
		Bills:     []models.MaintenanceBill{{ID: "BILL-USR001-2026-08-001"}},
		Summary:   models.SyncSummary{RowsParsed: 1, MembersParsed: 1, BillsSynthesized: 1},
	}
}

func TestHandleRequest(t *testing.T) {
	originalRunSync := runSync
	defer func() { runSync = originalRunSync }()
	stubEnv(t)

	runSync = func(ctx context.Context, cfg *config.Config) (*models.SyncResult, error) {
		if cfg.Society.ID != "green-acres" {
			t.Fatalf("expected society green-acres, got %s", cfg.Society.ID)
		}
		return stubResult(), nil
	}

	resp, err := HandleRequest(context.Background(), models.LambdaEvent{Action: "read"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected status 200, got %d (%s)", resp.StatusCode, resp.Message)
	}
	if resp.Result == nil || len(resp.Result.Members) != 1 {
		t.Fatalf("expected members in response, got %#v", resp.Result)
	}
}

func TestHandleRequestWriteUnsupported(t *testing.T) {
	originalRunSync := runSync
	defer func() { runSync = originalRunSync }()
	stubEnv(t)

	runSync = func(ctx context.Context, cfg *config.Config) (*models.SyncResult, error) {
		t.Fatal("write action must not trigger a sync")
		return nil, nil
	}

	resp, err := HandleRequest(context.Background(), models.LambdaEvent{Action: "write"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected status 200, got %d (%s)", resp.StatusCode, resp.Message)
	}
	if resp.Message != models.MsgWriteRequiresCredentials || resp.Result != nil {
		t.Fatalf("unexpected write response %#v", resp)
	}
}

func TestHandleRequestScheduledEvent(t *testing.T) {
	originalRunSync := runSync
	defer func() { runSync = originalRunSync }()
	stubEnv(t)

	runSync = func(ctx context.Context, cfg *config.Config) (*models.SyncResult, error) {
		return stubResult(), nil
	}

	event := models.LambdaEvent{Source: "aws.events", DetailType: "Scheduled Event"}
	resp, err := HandleRequest(context.Background(), event)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected status 200, got %d (%s)", resp.StatusCode, resp.Message)
	}
}

func TestHandleRequestUnsupportedSource(t *testing.T) {
	stubEnv(t)

	event := models.LambdaEvent{Source: "aws.s3", DetailType: "Object Created"}
	resp, err := HandleRequest(context.Background(), event)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
}

func TestFetchRunHistoryList(t *testing.T) {
	store := &dynamodb.MockStore{
		ListRunsFunc: func(ctx context.Context, society string, limit int) ([]models.SyncRunRecord, error) {
			if society != "green-acres" {
				t.Fatalf("expected society green-acres, got %s", society)
			}
			if limit != 5 {
				t.Fatalf("expected limit 5, got %d", limit)
			}
			return []models.SyncRunRecord{
				{RunID: "run-2"},
				{RunID: "run-1"},
			}, nil
		},
	}

	runs, err := fetchRunHistory(context.Background(), store, "green-acres", 5, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != "run-2" {
		t.Fatalf("unexpected runs %+v", runs)
	}
}

func TestFetchRunHistoryLatest(t *testing.T) {
	store := &dynamodb.MockStore{
		GetLatestRunFunc: func(ctx context.Context, society string) (*models.SyncRunRecord, error) {
			return &models.SyncRunRecord{RunID: "run-9"}, nil
		},
	}

	runs, err := fetchRunHistory(context.Background(), store, "green-acres", 20, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != "run-9" {
		t.Fatalf("expected only the latest run, got %+v", runs)
	}
}

func TestFetchRunHistoryLatestEmpty(t *testing.T) {
	store := &dynamodb.MockStore{}

	runs, err := fetchRunHistory(context.Background(), store, "green-acres", 20, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runs != nil {
		t.Fatalf("expected no runs, got %+v", runs)
	}
}

func TestHandleRequestSyncFailure(t *testing.T) {
	originalRunSync := runSync
	defer func() { runSync = originalRunSync }()
	stubEnv(t)

	runSync = func(ctx context.Context, cfg *config.Config) (*models.SyncResult, error) {
		return nil, errors.New("fetching feed: status 500")
	}

	resp, err := HandleRequest(context.Background(), models.LambdaEvent{})
	if err != nil {
		t.Fatalf("expected handler to absorb the error, got %v", err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
}
