package retort

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/zoobzio/pipz"
	"golang.org/x/time/rate"
)

// Environment variables consulted by FromEnv and New. An explicit Config
// value always takes precedence over the environment.
const (
	EnvAPIKey    = "RETORT_API_KEY"
	EnvBaseURL   = "RETORT_BASE_URL"
	EnvProjectID = "RETORT_PROJECT_ID"
)

// DefaultBaseURL is the production endpoint used when neither Config nor
// the environment provides one.
const DefaultBaseURL = "https://api.retort.dev/v1"

// Service-imposed pacing defaults. The service caps some endpoints at five
// requests per minute and rejects consecutive requests closer than about
// two seconds apart.
const (
	DefaultMinRequestInterval = 2 * time.Second
	DefaultRequestsPerMinute  = 5
	DefaultTimeout            = 30 * time.Second
)

// Config holds client configuration. Only APIKey is required.
type Config struct {
	APIKey    string // credential attached to every request
	BaseURL   string // optional, overrides RETORT_BASE_URL and the default
	ProjectID string // optional, preselects a project

	// Timeout bounds each HTTP round trip. Defaults to DefaultTimeout.
	// Ignored when Transport is set.
	Timeout time.Duration

	// MinRequestInterval is the enforced spacing between consecutive
	// requests. Zero means DefaultMinRequestInterval; negative disables
	// spacing (useful against local test servers).
	MinRequestInterval time.Duration

	// RequestsPerMinute is the local request budget. Exceeding it fails
	// fast with ErrRateLimited instead of issuing a request the service
	// would reject anyway. Zero means DefaultRequestsPerMinute; negative
	// disables the budget.
	RequestsPerMinute int

	// Transport substitutes the HTTP transport, primarily for testing
	// with MockTransport. Defaults to an *http.Client with Timeout.
	Transport Doer
}

// Client talks to the prediction service. It holds the mutable session
// state (credential, endpoint, selected project) and the request gateway.
//
// A Client is not safe for concurrent mutation: the service caps the
// aggregate request rate per credential, so client-side parallelism buys
// little. Callers that want concurrent submission should serialize access
// to one Client or use one Client per goroutine.
type Client struct {
	apiKey    string
	baseURL   string
	projectID string

	transport   Doer
	clock       clock.Clock
	limiter     *rate.Limiter
	minInterval time.Duration
	lastRequest time.Time
	pipeline    pipz.Chainable[*Request]
}

// New creates a client from a Config. The base URL resolution order is
// Config.BaseURL, then RETORT_BASE_URL, then DefaultBaseURL.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, validationError("api key required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv(EnvBaseURL)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	minInterval := cfg.MinRequestInterval
	switch {
	case minInterval == 0:
		minInterval = DefaultMinRequestInterval
	case minInterval < 0:
		minInterval = 0
	}

	rpm := cfg.RequestsPerMinute
	if rpm == 0 {
		rpm = DefaultRequestsPerMinute
	}
	var limiter *rate.Limiter
	if rpm > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm)
	}

	transport := cfg.Transport
	if transport == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		transport = &http.Client{Timeout: timeout}
	}

	c := &Client{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		projectID:   cfg.ProjectID,
		transport:   transport,
		clock:       clock.New(),
		limiter:     limiter,
		minInterval: minInterval,
	}

	pipeline := pipz.NewSequence[*Request]("gateway",
		pipz.Apply("pace", c.pace),
		pipz.Apply("round-trip", c.roundTrip),
	)
	var chain pipz.Chainable[*Request] = pipeline
	for _, opt := range opts {
		chain = opt(chain)
	}
	c.pipeline = chain

	return c, nil
}

// FromEnv creates a client from RETORT_API_KEY, RETORT_BASE_URL, and
// RETORT_PROJECT_ID.
func FromEnv(opts ...Option) (*Client, error) {
	return New(Config{
		APIKey:    os.Getenv(EnvAPIKey),
		BaseURL:   os.Getenv(EnvBaseURL),
		ProjectID: os.Getenv(EnvProjectID),
	}, opts...)
}

// SetAPIKey replaces the credential used on subsequent requests.
func (c *Client) SetAPIKey(apiKey string) {
	c.apiKey = apiKey
}

// SetBaseURL replaces the service endpoint used on subsequent requests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// SetProject selects the project used by project-scoped submissions. The
// identifier can also be found in the project page URL.
func (c *Client) SetProject(projectID string) {
	c.projectID = projectID
}

// ProjectID returns the currently selected project identifier, empty when
// no project has been created or selected.
func (c *Client) ProjectID() string { return c.projectID }

// BaseURL returns the resolved service endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// requireProject fails fast when no project is selected. Submissions are
// recorded against a project, so the service rejects them without one.
func (c *Client) requireProject() error {
	if c.projectID == "" {
		return ErrProjectNotSet
	}
	return nil
}
