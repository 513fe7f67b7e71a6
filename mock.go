package retort

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MockTransport simulates the prediction service for testing. Responses
// are scripted in order; the last scripted response repeats once the
// script is exhausted, which matches the idempotent-read behavior of
// terminal polls. Install it through Config.Transport.
type MockTransport struct {
	responses []mockResponse
	served    int

	// Requests records every request received, in order.
	Requests []*http.Request
	// Bodies records the corresponding request bodies.
	Bodies []string
}

type mockResponse struct {
	status int
	body   string
	err    error
}

// NewMockTransport creates an empty mock transport. Script it with Queue
// and QueueError.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Queue appends a canned response with the given status and body.
func (m *MockTransport) Queue(status int, body string) *MockTransport {
	m.responses = append(m.responses, mockResponse{status: status, body: body})
	return m
}

// QueueError appends a transport failure, simulating a request that never
// receives a response.
func (m *MockTransport) QueueError(err error) *MockTransport {
	m.responses = append(m.responses, mockResponse{err: err})
	return m
}

// Do implements Doer.
func (m *MockTransport) Do(req *http.Request) (*http.Response, error) {
	m.Requests = append(m.Requests, req)
	body := ""
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		req.Body.Close()
		body = string(data)
	}
	m.Bodies = append(m.Bodies, body)

	if len(m.responses) == 0 {
		return nil, fmt.Errorf("mock transport: no responses scripted")
	}
	next := m.responses[m.served]
	if m.served < len(m.responses)-1 {
		m.served++
	}

	if next.err != nil {
		return nil, next.err
	}
	return &http.Response{
		StatusCode: next.status,
		Body:       io.NopCloser(strings.NewReader(next.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

// Calls returns how many requests the mock has served.
func (m *MockTransport) Calls() int {
	return len(m.Requests)
}
