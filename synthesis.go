package retort

import (
	"context"
	"encoding/json"
	"fmt"
)

// SynthesisResult is the poll envelope for a synthesis. Tree is the
// synthesis plan once the service has prepared it.
type SynthesisResult struct {
	Status Status          `json:"status"`
	Tree   *SynthesisNode  `json:"-"`
	Raw    json.RawMessage `json:"-"`
}

// JobStatus returns the job lifecycle status.
func (r *SynthesisResult) JobStatus() Status { return r.Status }

// Done reports whether the job reached a terminal state.
func (r *SynthesisResult) Done() bool { return r.Status.Terminal() }

// CreateSynthesisFromSequence creates a synthesis from a retrosynthetic
// sequence and returns the synthesis identifier. Sequence identifiers
// come from the paths of PredictRetrosynthesisResults. A project must be
// selected.
func (c *Client) CreateSynthesisFromSequence(ctx context.Context, sequenceID string) (string, error) {
	if sequenceID == "" {
		return "", validationError("sequence id required")
	}
	if err := c.requireProject(); err != nil {
		return "", err
	}

	req := &Request{
		Method: "POST",
		Path:   "synthesis/create-from-sequence",
		Body:   map[string]string{"sequenceId": sequenceID},
		Family: FamilySynthesis,
	}
	return c.submitJob(ctx, req)
}

// GetSynthesisStatus performs a single poll for a synthesis, returning
// its status and, when present, the synthesis tree.
func (c *Client) GetSynthesisStatus(ctx context.Context, synthesisID string) (*SynthesisResult, error) {
	if synthesisID == "" {
		return nil, validationError("synthesis id required")
	}

	req := &Request{
		Method: "GET",
		Path:   "synthesis/" + synthesisID,
		Family: FamilySynthesis,
		JobID:  synthesisID,
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	payload, err := decodePayload[struct {
		Status    Status `json:"status"`
		Sequences []struct {
			Tree json.RawMessage `json:"tree,omitempty"`
		} `json:"sequences,omitempty"`
	}](c, req, body)
	if err != nil {
		return nil, err
	}

	result := &SynthesisResult{Status: payload.Status, Raw: body}
	if len(payload.Sequences) > 0 && len(payload.Sequences[0].Tree) > 0 {
		node, err := ParseNode(payload.Sequences[0].Tree)
		if err != nil {
			apiErr := c.apiError(req, ErrMalformedResponse, req.StatusCode, "unparseable synthesis tree")
			apiErr.Err = err
			return nil, apiErr
		}
		result.Tree = node
	}
	c.notePolled(ctx, req, result.Status)
	return result, nil
}

// StartSynthesis starts a created synthesis on the robot or simulator
// configured for the account and returns the reported status.
func (c *Client) StartSynthesis(ctx context.Context, synthesisID string) (Status, error) {
	if synthesisID == "" {
		return "", validationError("synthesis id required")
	}

	req := &Request{
		Method: "POST",
		Path:   fmt.Sprintf("synthesis/%s/start", synthesisID),
		Family: FamilySynthesis,
		JobID:  synthesisID,
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return "", err
	}
	payload, err := decodePayload[struct {
		Status Status `json:"status"`
	}](c, req, body)
	if err != nil {
		return "", err
	}
	return payload.Status, nil
}

// GetSynthesisPlan fetches a synthesis and linearizes its tree into
// execution order: the tree itself, the nodes ordered children-first with
// the root last, and the flattened action list across all nodes. This is
// the plan handed to downstream robotic execution.
func (c *Client) GetSynthesisPlan(ctx context.Context, synthesisID string) (*SynthesisNode, []*SynthesisNode, []ActionRecord, error) {
	result, err := c.GetSynthesisStatus(ctx, synthesisID)
	if err != nil {
		return nil, nil, nil, err
	}
	if result.Tree == nil {
		return nil, nil, nil, &APIError{
			Kind:    ErrMalformedResponse,
			Method:  "GET",
			Path:    "synthesis/" + synthesisID,
			Family:  FamilySynthesis,
			JobID:   synthesisID,
			Message: "synthesis has no tree yet",
		}
	}
	nodes, _, actions := Flatten(result.Tree)
	return result.Tree, nodes, actions, nil
}

// GetSynthesisNodeActions returns the ordered action sequence of one
// synthesis node.
func (c *Client) GetSynthesisNodeActions(ctx context.Context, synthesisID, nodeID string) ([]ActionRecord, error) {
	if synthesisID == "" || nodeID == "" {
		return nil, validationError("synthesis id and node id required")
	}

	req := &Request{
		Method: "GET",
		Path:   fmt.Sprintf("synthesis/%s/node/%s/actions", synthesisID, nodeID),
		Family: FamilySynthesis,
		JobID:  synthesisID,
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	payload, err := decodePayload[struct {
		Actions []ActionRecord `json:"actions,omitempty"`
	}](c, req, body)
	if err != nil {
		return nil, err
	}
	return payload.Actions, nil
}

// UpdateSynthesisNodeActions replaces a node's entire action sequence.
// This is a full replace, not a merge: the service discards the previous
// sequence, so callers must resubmit every action they want kept,
// including unedited ones.
func (c *Client) UpdateSynthesisNodeActions(ctx context.Context, synthesisID, nodeID string, actions []ActionRecord) error {
	if synthesisID == "" || nodeID == "" {
		return validationError("synthesis id and node id required")
	}
	if actions == nil {
		actions = []ActionRecord{}
	}

	req := &Request{
		Method: "PUT",
		Path:   fmt.Sprintf("synthesis/%s/node/%s/actions", synthesisID, nodeID),
		Body:   map[string]any{"actions": actions},
		Family: FamilySynthesis,
		JobID:  synthesisID,
	}
	_, err := c.send(ctx, req)
	return err
}
