package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

const safeDetailsPrefix = "__json__:"

// ErrorResponse is the body rendered for every failed API request
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries what a client may see of an error. Internal messages
// and causes are never included.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Display string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewErrorResponse builds the response body for err from its sentinel,
// its first hint and its reportable details
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    CodeFromErr(err),
			Display: displayMessage(err),
			Details: safeDetails(err),
		},
	}
}

// CodeFromErr returns the code of the sentinel err is marked with
func CodeFromErr(err error) string {
	var internal *InternalError
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) && errors.As(sentinel, &internal) {
			return internal.Code
		}
	}
	return ErrCodeSystemError
}

func displayMessage(err error) string {
	// GetAllHints is a post-order traversal, the first non-empty hint wins
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return "An unexpected error occurred"
}

func safeDetails(err error) map[string]any {
	details := make(map[string]any)
	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			if !strings.HasPrefix(payload, safeDetailsPrefix) {
				continue
			}
			var parsed map[string]any
			if err := json.Unmarshal([]byte(strings.TrimPrefix(payload, safeDetailsPrefix)), &parsed); err == nil {
				for k, v := range parsed {
					details[k] = v
				}
			}
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
