package retort

import (
	"net/url"
	"time"
)

// Request flows through the gateway pipeline. It carries the outgoing
// request description and, after the transport stage, the raw response.
type Request struct {
	// Input fields
	Method      string     // HTTP verb
	Path        string     // path relative to the client base URL
	Query       url.Values // optional query parameters
	Body        any        // marshaled to JSON when non-nil
	RawBody     []byte     // sent verbatim when set (file uploads)
	ContentType string     // overrides application/json when set

	// Metadata fields
	ID     string // unique identifier for this request
	Family Family // job family issuing the request
	JobID  string // job identifier when known, for error context

	// Output fields (populated by the transport stage)
	StatusCode   int           // HTTP status of the response
	ResponseBody []byte        // raw response body
	Duration     time.Duration // round-trip time
}
