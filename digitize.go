package retort

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

// DigitizedReaction is one reaction extracted from an uploaded document.
type DigitizedReaction struct {
	SMILES     string  `json:"smiles,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// DigitizationResult is the poll envelope for a digitization job.
type DigitizationResult struct {
	Status    Status              `json:"status"`
	Reactions []DigitizedReaction `json:"reactions,omitempty"`
	Raw       json.RawMessage     `json:"-"`
}

// JobStatus returns the job lifecycle status.
func (r *DigitizationResult) JobStatus() Status { return r.Status }

// Done reports whether the job reached a terminal state.
func (r *DigitizationResult) Done() bool { return r.Status.Terminal() }

// UploadFile sends raw document bytes to the service and returns the file
// identifier used to start a digitization.
func (c *Client) UploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", validationError("filename required")
	}
	if len(data) == 0 {
		return "", validationError("file data required")
	}

	req := &Request{
		Method:  "POST",
		Path:    "files",
		Query:   url.Values{"filename": {filename}},
		RawBody: data,
		Family:  FamilyDigitization,
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return "", err
	}
	ack, err := decodePayload[submitAck](c, req, body)
	if err != nil {
		return "", err
	}
	return ack.ID, nil
}

// DigitizeReaction submits a digitization job for an uploaded file and
// returns the task identifier.
func (c *Client) DigitizeReaction(ctx context.Context, fileID string) (string, error) {
	if fileID == "" {
		return "", validationError("file id required")
	}

	req := &Request{
		Method: "POST",
		Path:   "digitize",
		Body:   map[string]string{"fileId": fileID},
		Family: FamilyDigitization,
	}
	return c.submitTask(ctx, req)
}

// DigitizeReactionResults performs a single poll for a digitization job.
func (c *Client) DigitizeReactionResults(ctx context.Context, taskID string) (*DigitizationResult, error) {
	if taskID == "" {
		return nil, validationError("task id required")
	}

	req := &Request{
		Method: "GET",
		Path:   "digitize/" + taskID,
		Family: FamilyDigitization,
		JobID:  taskID,
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	result, err := decodePayload[DigitizationResult](c, req, body)
	if err != nil {
		return nil, err
	}
	result.Raw = body
	c.notePolled(ctx, req, result.Status)
	return &result, nil
}
