package models

import "time"

// SyncRunRecord is a persisted sync run in DynamoDB. Records expire
// via TTL so the table holds a rolling window of run history.
type SyncRunRecord struct {
	PK string `dynamodbav:"pk"` // SOCIETY#<society>
	SK string `dynamodbav:"sk"` // RUN#<rfc3339 start time>

	RunID            string    `dynamodbav:"run_id"`
	StartTime        time.Time `dynamodbav:"start_time"`
	DurationMs       int64     `dynamodbav:"duration_ms"`
	MembersParsed    int       `dynamodbav:"members_parsed"`
	BillsSynthesized int       `dynamodbav:"bills_synthesized"`
	RowsSkipped      int       `dynamodbav:"rows_skipped"`
	ErrorCount       int       `dynamodbav:"error_count"`
	TTL              int64     `dynamodbav:"ttl"`
}

// NewSyncRunRecord builds a run record with its key attributes set.
func NewSyncRunRecord(society string, result *SyncResult, ttlDays int) SyncRunRecord {
	return SyncRunRecord{
		PK:               "SOCIETY#" + society,
		SK:               "RUN#" + result.StartTime.UTC().Format(time.RFC3339),
		RunID:            result.RunID,
		StartTime:        result.StartTime.UTC(),
		DurationMs:       result.DurationMs,
		MembersParsed:    result.Summary.MembersParsed,
		BillsSynthesized: result.Summary.BillsSynthesized,
		RowsSkipped:      result.Summary.RowsSkipped,
		ErrorCount:       len(result.Errors),
		TTL:              result.StartTime.UTC().AddDate(0, 0, ttlDays).Unix(),
	}
}
