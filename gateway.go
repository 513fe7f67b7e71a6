package retort

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
)

// send performs one gateway invocation: pacing, a single HTTP round trip,
// and error classification. It returns the raw response body on success.
// There are no hidden retries; a classified error surfaces unchanged so
// the caller can decide whether to retry, abort, or report.
func (c *Client) send(ctx context.Context, req *Request) ([]byte, error) {
	req.ID = uuid.New().String()

	capitan.Info(ctx, RequestStarted,
		RequestIDKey.Field(req.ID),
		MethodKey.Field(req.Method),
		PathKey.Field(req.Path),
		FamilyKey.Field(string(req.Family)),
	)

	processed, err := c.pipeline.Process(ctx, req)
	if err != nil {
		capitan.Error(ctx, RequestFailed,
			RequestIDKey.Field(req.ID),
			MethodKey.Field(req.Method),
			PathKey.Field(req.Path),
			FamilyKey.Field(string(req.Family)),
			ErrorKey.Field(err.Error()),
			ErrorKindKey.Field(errorKind(err)),
		)
		return nil, err
	}

	capitan.Info(ctx, RequestCompleted,
		RequestIDKey.Field(req.ID),
		MethodKey.Field(req.Method),
		PathKey.Field(req.Path),
		FamilyKey.Field(string(req.Family)),
		StatusCodeKey.Field(processed.StatusCode),
		DurationMsKey.Field(int(processed.Duration.Milliseconds())),
	)
	return processed.ResponseBody, nil
}

// pace is the first pipeline stage. It enforces the service's pacing
// rules before the request leaves the process:
//
//   - the per-minute budget fails fast with ErrRateLimited, since blocking
//     up to a minute inside a library call is worse than telling the
//     caller to back off;
//   - the minimum spacing between consecutive requests blocks until the
//     interval has elapsed, which is at most a couple of seconds.
func (c *Client) pace(ctx context.Context, req *Request) (*Request, error) {
	now := c.clock.Now()

	if c.limiter != nil && !c.limiter.AllowN(now, 1) {
		return req, c.apiError(req, ErrRateLimited, 0, "local request budget exhausted")
	}

	if c.minInterval > 0 && !c.lastRequest.IsZero() {
		wait := c.minInterval - now.Sub(c.lastRequest)
		if wait > 0 {
			capitan.Info(ctx, RequestPaced,
				RequestIDKey.Field(req.ID),
				WaitMsKey.Field(int(wait.Milliseconds())),
			)
			select {
			case <-c.clock.After(wait):
			case <-ctx.Done():
				return req, c.apiError(req, ErrNetwork, 0, ctx.Err().Error())
			}
		}
	}
	c.lastRequest = c.clock.Now()
	return req, nil
}

// roundTrip is the terminal pipeline stage: exactly one HTTP exchange.
func (c *Client) roundTrip(ctx context.Context, req *Request) (*Request, error) {
	httpReq, err := c.buildHTTPRequest(ctx, req)
	if err != nil {
		return req, err
	}

	start := time.Now()
	resp, err := c.transport.Do(httpReq)
	if err != nil {
		apiErr := c.apiError(req, ErrNetwork, 0, "")
		apiErr.Err = err
		return req, apiErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := c.apiError(req, ErrNetwork, resp.StatusCode, "reading response body")
		apiErr.Err = err
		return req, apiErr
	}

	req.StatusCode = resp.StatusCode
	req.ResponseBody = body
	req.Duration = time.Since(start)

	if kind := classifyStatus(resp.StatusCode); kind != nil {
		return req, c.apiError(req, kind, resp.StatusCode, bodyDetail(body))
	}
	return req, nil
}

func (c *Client) buildHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	var body io.Reader
	contentType := req.ContentType
	if req.RawBody != nil {
		body = bytes.NewReader(req.RawBody)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	} else {
		if req.Body != nil {
			encoded, err := json.Marshal(req.Body)
			if err != nil {
				return nil, fmt.Errorf("encoding %s request: %w", req.Path, err)
			}
			body = bytes.NewReader(encoded)
		}
		if contentType == "" {
			contentType = "application/json"
		}
	}

	u := c.baseURL + "/" + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", req.Path, err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Authorization", c.apiKey)
	return httpReq, nil
}

// apiError builds a classified error carrying the request context.
func (c *Client) apiError(req *Request, kind error, status int, message string) *APIError {
	return &APIError{
		Kind:       kind,
		StatusCode: status,
		Method:     req.Method,
		Path:       req.Path,
		Family:     req.Family,
		JobID:      req.JobID,
		Message:    message,
	}
}

// errorKind names the classified kind for hook output.
func errorKind(err error) string {
	for _, kind := range []error{
		ErrValidation, ErrAuthentication, ErrRateLimited,
		ErrNotFound, ErrServer, ErrMalformedResponse, ErrNetwork,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "unknown"
}
