package retort

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds. Every error surfaced by the client matches exactly one kind
// through errors.Is. Gateway errors are wrapped in *APIError which carries
// the HTTP context; validation errors never reach the network.
var (
	// ErrValidation indicates bad caller input rejected before any
	// network call.
	ErrValidation = errors.New("invalid input")

	// ErrAuthentication indicates the service rejected the API key
	// (HTTP 401 or 403).
	ErrAuthentication = errors.New("authentication failed")

	// ErrRateLimited indicates the service signalled rate limiting
	// (HTTP 429) or the local per-minute budget was exhausted. The client
	// never retries on its own; backoff belongs to the caller.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound indicates an unknown resource (HTTP 404 or a service
	// "not found" status). Batch-family results expire server-side after
	// an unspecified retention window, so a previously successful job
	// reporting this kind is expected, not a defect.
	ErrNotFound = errors.New("not found")

	// ErrServer indicates a 5xx response from the service.
	ErrServer = errors.New("server error")

	// ErrMalformedResponse indicates a 2xx response whose body does not
	// parse as expected, e.g. a missing required field.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNetwork indicates a transport failure with no response received.
	ErrNetwork = errors.New("network error")

	// ErrProjectNotSet indicates a project-scoped call was made before a
	// project was created or selected. Matches ErrValidation.
	ErrProjectNotSet = fmt.Errorf("%w: project identifier not set", ErrValidation)
)

// APIError is a classified gateway error. It satisfies errors.Is for its
// kind, so callers can branch without inspecting status codes:
//
//	if errors.Is(err, retort.ErrRateLimited) {
//		time.Sleep(backoff)
//	}
type APIError struct {
	Kind       error  // one of the kind sentinels above
	StatusCode int    // HTTP status, 0 when no response was received
	Method     string // HTTP method of the failed request
	Path       string // request path relative to the base URL
	Family     Family // job family issuing the request
	JobID      string // job identifier when known
	Message    string // detail from the service body, when present
	Err        error  // underlying error, when any
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Method, e.Path)
	if e.Family != "" {
		fmt.Fprintf(&b, " (%s", e.Family)
		if e.JobID != "" {
			fmt.Fprintf(&b, " %s", e.JobID)
		}
		b.WriteString(")")
	}
	fmt.Fprintf(&b, ": %v", e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	return b.String()
}

func (e *APIError) Is(target error) bool { return target == e.Kind }

func (e *APIError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// serviceError is the error shape some endpoints include in their body.
type serviceError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status string `json:"status"`
}

// classifyStatus maps an HTTP status code to an error kind. Pure: the same
// code always yields the same kind. A nil return means the response is a
// candidate for success and body-level classification still applies.
func classifyStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrAuthentication
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return ErrServer
	case code >= 200 && code < 300:
		return nil
	default:
		return ErrMalformedResponse
	}
}

// bodyDetail extracts a human-readable detail string from an error body,
// tolerating non-JSON payloads.
func bodyDetail(body []byte) string {
	var se struct {
		Payload serviceError `json:"payload"`
		serviceError
	}
	if err := json.Unmarshal(body, &se); err != nil {
		return ""
	}
	for _, s := range []string{se.Payload.Detail, se.Payload.Title, se.Detail, se.Title} {
		if s != "" {
			return s
		}
	}
	return ""
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
