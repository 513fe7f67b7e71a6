package retort

import (
	"time"

	"github.com/zoobzio/pipz"
)

// Option modifies the gateway pipeline. The client never adds reliability
// behavior on its own: every request is exactly one round trip unless the
// caller opts in here. Retrying a submit is only safe when the caller knows
// the job family tolerates duplicate submission, so that decision stays
// with the caller.
type Option func(pipz.Chainable[*Request]) pipz.Chainable[*Request]

// WithTimeout bounds each gateway call. Operations exceeding the duration
// are canceled. This is per-request transport protection; there is no
// overall job deadline.
func WithTimeout(duration time.Duration) Option {
	return func(pipeline pipz.Chainable[*Request]) pipz.Chainable[*Request] {
		return pipz.NewTimeout("timeout", pipeline, duration)
	}
}

// WithRetry retries failed gateway calls up to maxAttempts times. Apply
// only to idempotent usage: a retried submit may create duplicate jobs.
func WithRetry(maxAttempts int) Option {
	return func(pipeline pipz.Chainable[*Request]) pipz.Chainable[*Request] {
		return pipz.NewRetry("retry", pipeline, maxAttempts)
	}
}

// WithBackoff retries failed gateway calls with exponential backoff. The
// delay starts at baseDelay and doubles after each failure. The same
// duplicate-submission caveat as WithRetry applies.
func WithBackoff(maxAttempts int, baseDelay time.Duration) Option {
	return func(pipeline pipz.Chainable[*Request]) pipz.Chainable[*Request] {
		return pipz.NewBackoff("backoff", pipeline, maxAttempts, baseDelay)
	}
}

// WithErrorHandler adds error handling to the pipeline. The handler
// receives error context and can log or alert as needed.
func WithErrorHandler(handler pipz.Chainable[*pipz.Error[*Request]]) Option {
	return func(pipeline pipz.Chainable[*Request]) pipz.Chainable[*Request] {
		return pipz.NewHandle("error-handler", pipeline, handler)
	}
}
