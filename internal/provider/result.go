// Package provider issues single GET calls against the upstream financial
// data APIs and classifies every outcome into a Result value.
package provider

import "fmt"

// Provider display names. They double as registry keys and appear verbatim
// in user-facing failure reasons ("FMP: Rate limit exceeded").
const (
	FMP          = "FMP"
	Finnhub      = "Finnhub"
	AlphaVantage = "Alpha Vantage"
	CNN          = "CNN"
)

// FailureKind classifies why a call produced no usable payload.
type FailureKind string

const (
	Timeout        FailureKind = "timeout"
	RateLimited    FailureKind = "rate_limited"
	Forbidden      FailureKind = "forbidden"
	NotFound       FailureKind = "not_found"
	MalformedBody  FailureKind = "malformed_body"
	TransportError FailureKind = "transport_error"
	Unconfigured   FailureKind = "unconfigured"
	NoData         FailureKind = "no_data"
)

// Describe returns the human-readable text for a kind.
func (k FailureKind) Describe() string {
	switch k {
	case Timeout:
		return "Request timed out"
	case RateLimited:
		return "Rate limit exceeded"
	case Forbidden:
		return "Access forbidden"
	case NotFound:
		return "Not found"
	case MalformedBody:
		return "Malformed response body"
	case Unconfigured:
		return "API key not configured"
	case NoData:
		return "No data in response"
	default:
		return "Transport error"
	}
}

// Failure is a classified provider failure. It is a value, never an error
// crossing the fan-out boundary.
type Failure struct {
	Kind       FailureKind `json:"kind"`
	Provider   string      `json:"provider"`
	Endpoint   string      `json:"endpoint"`
	HTTPStatus int         `json:"httpStatus,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// Reason renders the failure for the details list of an error body.
//
// Transport errors and empty responses carry their own message; every other
// kind is rendered with its fixed description.
func (f Failure) Reason() string {
	text := f.Kind.Describe()
	if (f.Kind == TransportError || f.Kind == NoData) && f.Message != "" {
		text = f.Message
	}
	return fmt.Sprintf("%s: %s", f.Provider, text)
}

// Result is the tagged outcome of one call: either Payload is set and
// Failure is nil, or Failure describes what went wrong.
type Result struct {
	Provider string
	Endpoint string
	Payload  any
	Failure  *Failure
}

// OK reports whether the call produced a payload.
func (r Result) OK() bool {
	return r.Failure == nil
}

// Succeeded builds a successful Result.
func Succeeded(providerName, endpoint string, payload any) Result {
	return Result{Provider: providerName, Endpoint: endpoint, Payload: payload}
}

// Failed builds a failed Result.
func Failed(providerName, endpoint string, kind FailureKind, status int, msg string) Result {
	return Result{
		Provider: providerName,
		Endpoint: endpoint,
		Failure: &Failure{
			Kind:       kind,
			Provider:   providerName,
			Endpoint:   endpoint,
			HTTPStatus: status,
			Message:    msg,
		},
	}
}

// NoDataFailure is used by callers when a 2xx payload normalizes to nothing.
func NoDataFailure(providerName, endpoint, msg string) Failure {
	return Failure{Kind: NoData, Provider: providerName, Endpoint: endpoint, Message: msg}
}
