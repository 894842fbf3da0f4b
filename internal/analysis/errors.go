package analysis

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/detox/internal/usage"
)

// ErrMalformedRequest indicates a request body that is not valid JSON for the endpoint.
var ErrMalformedRequest = errors.New("malformed request body")

// KindMalformedRequest is the failure kind reported for undecodable bodies.
const KindMalformedRequest = "malformed_request"

const malformedSuggestion = `Send a JSON body of the form {"usage": [screen_time, session_duration, app_switches, night_activity]}.`

// MapHTTPStatus maps analysis errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, usage.ErrInvalidUsage) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrMalformedRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Failure is the client-error payload for rejected input.
type Failure struct {
	Error      bool   `json:"error"`
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// NewFailure builds the payload for err, or returns false when err is not a client error.
func NewFailure(err error) (Failure, bool) {
	if d, ok := usage.AsDefect(err); ok {
		return Failure{
			Error:      true,
			Kind:       string(d.Kind),
			Message:    d.Message,
			Suggestion: d.Suggestion,
		}, true
	}
	if errors.Is(err, ErrMalformedRequest) {
		return Failure{
			Error:      true,
			Kind:       KindMalformedRequest,
			Message:    err.Error(),
			Suggestion: malformedSuggestion,
		}, true
	}
	return Failure{}, false
}
