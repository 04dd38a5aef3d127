package models

import "fmt"

// LambdaEvent is the input event for Lambda invocation. Scheduled
// EventBridge invocations carry Source/DetailType; direct invocations
// carry the sync action.
type LambdaEvent struct {
	Action     string `json:"action,omitempty"`
	Source     string `json:"source,omitempty"`
	DetailType string `json:"detail-type,omitempty"`
}

// EffectiveAction returns the requested sync action, defaulting to read.
func (e *LambdaEvent) EffectiveAction() string {
	if e != nil && e.Action != "" {
		return e.Action
	}
	return "read"
}

// LambdaResponse is the output from Lambda invocation.
type LambdaResponse struct {
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Result     *SyncResult `json:"result,omitempty"`
}

// NewSuccessResponse creates a success response.
func NewSuccessResponse(result *SyncResult) *LambdaResponse {
	return &LambdaResponse{
		StatusCode: 200,
		Message:    fmt.Sprintf("Sync completed: %d members, %d bills", result.Summary.MembersParsed, result.Summary.BillsSynthesized),
		Result:     result,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(err error) *LambdaResponse {
	return &LambdaResponse{
		StatusCode: 500,
		Message:    err.Error(),
	}
}
