package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestErrorResponse_Error(t *testing.T) {
	cases := []struct {
		name string
		resp ErrorResponse
		want string
	}{
		{name: "message only", resp: ErrorResponse{Message: "Stock symbol is required"}, want: "Stock symbol is required"},
		{name: "with underlying error", resp: ErrorResponse{Message: "invalid query parameters", ErrorDetails: "bad targetYear"}, want: "invalid query parameters: bad targetYear"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.resp.Error(); got != tc.want {
				t.Fatalf("want %q got %q", tc.want, got)
			}
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	e := NewErrorResponse("Internal server error", nil)
	if e.Message != "Internal server error" || e.ErrorDetails != "" || e.Details != nil {
		t.Fatalf("unexpected %+v", e)
	}
	if e.Timestamp.IsZero() || time.Since(e.Timestamp) > time.Second || e.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp not set to current UTC time: %v", e.Timestamp)
	}

	e2 := NewErrorResponse("invalid request body", errors.New("unexpected EOF"))
	if e2.ErrorDetails != "unexpected EOF" {
		t.Fatalf("unexpected %+v", e2)
	}
}

func TestErrorResponse_WithDetailsCopies(t *testing.T) {
	reasons := []string{"FMP: Rate limit exceeded", "Finnhub: Access forbidden"}
	e := NewErrorResponse("No dividend data available for KO", nil).WithDetails(reasons)
	reasons[0] = "mutated"
	if e.Details[0] != "FMP: Rate limit exceeded" || len(e.Details) != 2 {
		t.Fatalf("details must be copied, got %v", e.Details)
	}
}

func TestErrorResponse_JSONShape(t *testing.T) {
	b, err := json.Marshal(NewErrorResponse("Stock symbol is required", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"error":"Stock symbol is required"`) || !strings.Contains(s, `"timestamp":`) {
		t.Fatalf("unexpected body %s", s)
	}
	if strings.Contains(s, "error_details") || strings.Contains(s, `"details"`) {
		t.Fatalf("empty optional fields must be omitted: %s", s)
	}
}
