package retort

import (
	"context"
	"encoding/json"
	"strings"
)

// BatchPrediction is one predicted product within a batch result.
type BatchPrediction struct {
	SMILES     string  `json:"smiles,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// BatchResult is the poll envelope for a batch forward prediction, one
// prediction per submitted reaction.
type BatchResult struct {
	Status      Status            `json:"-"`
	TaskID      string            `json:"-"`
	Predictions []BatchPrediction `json:"-"`
	Raw         json.RawMessage   `json:"-"`
}

// JobStatus returns the job lifecycle status.
func (r *BatchResult) JobStatus() Status { return r.Status }

// Done reports whether the job reached a terminal state.
func (r *BatchResult) Done() bool { return r.Status.Terminal() }

// BatchTopNResult is the poll envelope for a top-N batch prediction, the
// top-N attempts per submitted reaction in submission order.
type BatchTopNResult struct {
	Status      Status              `json:"-"`
	TaskID      string              `json:"-"`
	Predictions [][]BatchPrediction `json:"-"`
	Raw         json.RawMessage     `json:"-"`
}

// JobStatus returns the job lifecycle status.
func (r *BatchTopNResult) JobStatus() Status { return r.Status }

// Done reports whether the job reached a terminal state.
func (r *BatchTopNResult) Done() bool { return r.Status.Terminal() }

// batchPayload is the task-queue envelope shared by the batch families.
type batchPayload struct {
	Task struct {
		TaskID string `json:"task_id,omitempty"`
		Status string `json:"status,omitempty"`
	} `json:"task"`
	Result json.RawMessage `json:"result,omitempty"`
}

// PredictReactionBatch submits a forward prediction for many reactions at
// once and returns the task identifier. Each entry is one precursor set.
// Batch jobs are not project-scoped.
func (c *Client) PredictReactionBatch(ctx context.Context, reactions [][]string) (string, error) {
	joined, err := joinReactions(reactions)
	if err != nil {
		return "", err
	}

	req := &Request{
		Method: "POST",
		Path:   "predictions/batch/pr",
		Body:   map[string]any{"reactions": joined},
		Family: FamilyBatch,
	}
	return c.submitTask(ctx, req)
}

// PredictReactionBatchResults performs a single poll for a batch
// prediction.
//
// Batch results are kept only for a service-defined retention window
// after completion. A previously successful task reporting ErrNotFound
// has expired; that is expected, not a defect.
func (c *Client) PredictReactionBatchResults(ctx context.Context, taskID string) (*BatchResult, error) {
	payload, body, req, err := c.pollBatch(ctx, "predictions/batch/"+taskID, FamilyBatch, taskID)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{
		Status: normalizeStatus(payload.Task.Status),
		TaskID: payload.Task.TaskID,
		Raw:    body,
	}
	if len(payload.Result) > 0 {
		var inner struct {
			Predictions []BatchPrediction `json:"predictions,omitempty"`
		}
		if err := json.Unmarshal(payload.Result, &inner); err != nil {
			apiErr := c.apiError(req, ErrMalformedResponse, req.StatusCode, "unparseable batch result")
			apiErr.Err = err
			return nil, apiErr
		}
		result.Predictions = inner.Predictions
	}
	return result, nil
}

// PredictReactionBatchTopN submits a batch prediction keeping the topN
// best attempts per reaction and returns the task identifier.
func (c *Client) PredictReactionBatchTopN(ctx context.Context, reactions [][]string, topN int) (string, error) {
	joined, err := joinReactions(reactions)
	if err != nil {
		return "", err
	}
	if topN <= 0 {
		return "", validationError("topn must be positive, got %d", topN)
	}

	req := &Request{
		Method: "POST",
		Path:   "predictions/batch/topn/pr",
		Body: map[string]any{
			"reactions": joined,
			"topn":      topN,
		},
		Family: FamilyBatchTopN,
	}
	return c.submitTask(ctx, req)
}

// PredictReactionBatchTopNResults performs a single poll for a top-N
// batch prediction. The same retention caveat as
// PredictReactionBatchResults applies.
func (c *Client) PredictReactionBatchTopNResults(ctx context.Context, taskID string) (*BatchTopNResult, error) {
	payload, body, req, err := c.pollBatch(ctx, "predictions/batch/topn/"+taskID, FamilyBatchTopN, taskID)
	if err != nil {
		return nil, err
	}

	result := &BatchTopNResult{
		Status: normalizeStatus(payload.Task.Status),
		TaskID: payload.Task.TaskID,
		Raw:    body,
	}
	if len(payload.Result) > 0 {
		var inner struct {
			Predictions [][]BatchPrediction `json:"predictions,omitempty"`
		}
		if err := json.Unmarshal(payload.Result, &inner); err != nil {
			apiErr := c.apiError(req, ErrMalformedResponse, req.StatusCode, "unparseable batch result")
			apiErr.Err = err
			return nil, apiErr
		}
		result.Predictions = inner.Predictions
	}
	return result, nil
}

func (c *Client) pollBatch(ctx context.Context, path string, family Family, taskID string) (batchPayload, []byte, *Request, error) {
	var zero batchPayload
	if taskID == "" {
		return zero, nil, nil, validationError("task id required")
	}

	req := &Request{
		Method: "GET",
		Path:   path,
		Family: family,
		JobID:  taskID,
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return zero, nil, req, err
	}
	payload, err := decodePayload[batchPayload](c, req, body)
	if err != nil {
		return zero, nil, req, err
	}
	c.notePolled(ctx, req, normalizeStatus(payload.Task.Status))
	return payload, body, req, nil
}

func joinReactions(reactions [][]string) ([]string, error) {
	if len(reactions) == 0 {
		return nil, validationError("reactions required")
	}
	joined := make([]string, len(reactions))
	for i, precursors := range reactions {
		if err := validateSMILES("reactions", precursors); err != nil {
			return nil, err
		}
		joined[i] = strings.Join(precursors, ".")
	}
	return joined, nil
}
