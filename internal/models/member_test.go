package models

import (
	"testing"
	"time"
)

func TestParseMaintenanceStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want MaintenanceStatus
	}{
		{"paid", StatusPaid},
		{"PAID", StatusPaid},
		{" Clear ", StatusPaid},
		{"yes", StatusPaid},
		{"overdue", StatusOverdue},
		{"Late", StatusOverdue},
		{"no", StatusOverdue},
		{"pending", StatusPending},
		{"", StatusPending},
		{"whatever", StatusPending},
	}
	for _, tc := range cases {
		if got := ParseMaintenanceStatus(tc.raw); got != tc.want {
			t.Errorf("ParseMaintenanceStatus(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestBillID(t *testing.T) {
	period := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	if got := BillID("USR007", period, 7); got != "BILL-USR007-2026-08-007" {
		t.Fatalf("unexpected bill id %q", got)
	}
}

func TestNewSyncRunRecordKeys(t *testing.T) {
	start := time.Date(2026, time.August, 1, 10, 30, 0, 0, time.UTC)
	result := &SyncResult{
		RunID:     "run-1",
		StartTime: start,
		Summary:   SyncSummary{MembersParsed: 4, BillsSynthesized: 5, RowsSkipped: 1},
	}
	rec := NewSyncRunRecord("green-acres", result, 90)
	if rec.PK != "SOCIETY#green-acres" {
		t.Fatalf("expected PK SOCIETY#green-acres, got %s", rec.PK)
	}
	if rec.SK != "RUN#2026-08-01T10:30:00Z" {
		t.Fatalf("unexpected SK %s", rec.SK)
	}
	if rec.MembersParsed != 4 || rec.BillsSynthesized != 5 {
		t.Fatalf("summary not carried over: %+v", rec)
	}
	wantTTL := start.AddDate(0, 0, 90).Unix()
	if rec.TTL != wantTTL {
		t.Fatalf("expected TTL %d, got %d", wantTTL, rec.TTL)
	}
}
