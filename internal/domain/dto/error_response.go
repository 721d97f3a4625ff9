package dto

import "time"

// ErrorResponse represents a standardized error body returned by the API.
//
// Fields:
//   - Message: short human-readable summary ("Stock symbol is required").
//   - ErrorDetails: optional text of the underlying error.
//   - Details: optional per-provider reasons ("FMP: Rate limit exceeded").
//   - Timestamp: when the error was produced (UTC).
type ErrorResponse struct {
	Message      string    `json:"error"`
	ErrorDetails string    `json:"error_details,omitempty"`
	Details      []string  `json:"details,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse with the current timestamp.
//
// Parameters:
//   - message: summary shown to the client.
//   - err: optional underlying error; its text becomes ErrorDetails.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// WithDetails returns a copy carrying the given reason list.
func (e ErrorResponse) WithDetails(details []string) ErrorResponse {
	e.Details = append([]string(nil), details...)
	return e
}
