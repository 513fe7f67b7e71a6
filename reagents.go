package retort

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

// Reagent is one suggested reagent within a sequence.
type Reagent struct {
	Name   string `json:"name,omitempty"`
	SMILES string `json:"smiles,omitempty"`
}

// ReagentSequence is one candidate set of reagents for a transformation.
type ReagentSequence struct {
	Reagents   []Reagent `json:"reagents,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
}

// ReagentsResult is the poll envelope for a reagent prediction.
type ReagentsResult struct {
	Status    Status            `json:"status"`
	Sequences []ReagentSequence `json:"sequences,omitempty"`
	Raw       json.RawMessage   `json:"-"`
}

// JobStatus returns the job lifecycle status.
func (r *ReagentsResult) JobStatus() Status { return r.Status }

// Done reports whether the job reached a terminal state.
func (r *ReagentsResult) Done() bool { return r.Status.Terminal() }

// PredictReagents submits a reagent prediction for turning a starting
// material into a product and returns the prediction identifier. A
// project must be selected.
func (c *Client) PredictReagents(ctx context.Context, startingMaterial, product string) (string, error) {
	if strings.TrimSpace(startingMaterial) == "" {
		return "", validationError("starting material SMILES required")
	}
	if strings.TrimSpace(product) == "" {
		return "", validationError("product SMILES required")
	}
	if err := c.requireProject(); err != nil {
		return "", err
	}

	req := &Request{
		Method: "POST",
		Path:   "reagents/pr",
		Query:  url.Values{"projectId": {c.projectID}},
		Body: map[string]string{
			"startingMaterial": startingMaterial,
			"product":          product,
		},
		Family: FamilyReagents,
	}
	return c.submitJob(ctx, req)
}

// PredictReagentsResults performs a single poll for a reagent prediction.
func (c *Client) PredictReagentsResults(ctx context.Context, predictionID string) (*ReagentsResult, error) {
	if predictionID == "" {
		return nil, validationError("prediction id required")
	}

	req := &Request{
		Method: "GET",
		Path:   "reagents/" + predictionID,
		Family: FamilyReagents,
		JobID:  predictionID,
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	result, err := decodePayload[ReagentsResult](c, req, body)
	if err != nil {
		return nil, err
	}
	result.Raw = body
	c.notePolled(ctx, req, result.Status)
	return &result, nil
}
