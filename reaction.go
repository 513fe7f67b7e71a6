package retort

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

// ReactionAttempt is one predicted product for a forward reaction.
type ReactionAttempt struct {
	SMILES     string  `json:"smiles,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// ReactionResult is the poll envelope for a forward reaction prediction.
// Attempts is populated only once Status is SUCCESS.
type ReactionResult struct {
	Status   Status            `json:"status"`
	Attempts []ReactionAttempt `json:"attempts,omitempty"`

	// Raw is the response body the result was decoded from. Terminal
	// polls are idempotent reads: the service returns the same payload
	// until its retention window expires.
	Raw json.RawMessage `json:"-"`
}

// JobStatus returns the job lifecycle status.
func (r *ReactionResult) JobStatus() Status { return r.Status }

// Done reports whether the job reached a terminal state.
func (r *ReactionResult) Done() bool { return r.Status.Terminal() }

// PredictReaction submits a forward reaction prediction for the given
// precursor SMILES and returns the prediction identifier. A project must
// be selected. The call returns as soon as the service acknowledges the
// job; fetch the outcome with PredictReactionResults.
func (c *Client) PredictReaction(ctx context.Context, precursors []string) (string, error) {
	if err := validateSMILES("precursors", precursors); err != nil {
		return "", err
	}
	if err := c.requireProject(); err != nil {
		return "", err
	}

	req := &Request{
		Method: "POST",
		Path:   "predictions/pr",
		Query:  url.Values{"projectId": {c.projectID}},
		Body:   map[string]string{"reactants": strings.Join(precursors, ".")},
		Family: FamilyReaction,
	}
	return c.submitJob(ctx, req)
}

// PredictReactionResults performs a single poll for a forward reaction
// prediction. It never sleeps or retries; re-invoke on a cadence that
// respects the service's rate limits, or use Wait.
func (c *Client) PredictReactionResults(ctx context.Context, predictionID string) (*ReactionResult, error) {
	if predictionID == "" {
		return nil, validationError("prediction id required")
	}

	req := &Request{
		Method: "GET",
		Path:   "predictions/" + predictionID,
		Family: FamilyReaction,
		JobID:  predictionID,
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	result, err := decodePayload[ReactionResult](c, req, body)
	if err != nil {
		return nil, err
	}
	result.Raw = body
	c.notePolled(ctx, req, result.Status)
	return &result, nil
}

// validateSMILES rejects empty structure lists and blank entries before
// any network call.
func validateSMILES(field string, smiles []string) error {
	if len(smiles) == 0 {
		return validationError("%s required", field)
	}
	for i, s := range smiles {
		if strings.TrimSpace(s) == "" {
			return validationError("%s[%d] is empty", field, i)
		}
	}
	return nil
}
