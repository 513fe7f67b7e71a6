package retort

import (
	"context"
	"encoding/json"
	"strings"
)

// PropertyPrediction is one predicted property value for a reaction.
type PropertyPrediction struct {
	Reaction string `json:"reaction,omitempty"`
	Property string `json:"property,omitempty"`
	Value    any    `json:"value,omitempty"`
}

// PropertiesResult is the poll envelope for a reaction property
// prediction. The properties endpoints use a flat response without the
// payload envelope.
type PropertiesResult struct {
	Status  Status               `json:"status"`
	Content []PropertyPrediction `json:"content,omitempty"`
	Raw     json.RawMessage      `json:"-"`
}

// JobStatus returns the job lifecycle status.
func (r *PropertiesResult) JobStatus() Status { return r.Status }

// Done reports whether the job reached a terminal state.
func (r *PropertiesResult) Done() bool { return r.Status.Terminal() }

// PredictReactionProperties submits a property prediction for the given
// reaction SMILES and returns the task identifier.
func (c *Client) PredictReactionProperties(ctx context.Context, reactions []string, property string) (string, error) {
	if err := validateSMILES("reactions", reactions); err != nil {
		return "", err
	}
	if strings.TrimSpace(property) == "" {
		return "", validationError("property name required")
	}

	req := &Request{
		Method: "POST",
		Path:   "predictions/properties",
		Body: map[string]any{
			"reactions": reactions,
			"property":  property,
		},
		Family: FamilyProperties,
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return "", err
	}
	ack, err := decodeFlat[taskAck](c, req, body)
	if err != nil {
		return "", err
	}
	c.noteSubmitted(ctx, req, ack.TaskID)
	return ack.TaskID, nil
}

// PredictReactionPropertiesResults performs a single poll for a property
// prediction.
func (c *Client) PredictReactionPropertiesResults(ctx context.Context, taskID string) (*PropertiesResult, error) {
	if taskID == "" {
		return nil, validationError("task id required")
	}

	req := &Request{
		Method: "GET",
		Path:   "predictions/properties/" + taskID,
		Family: FamilyProperties,
		JobID:  taskID,
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	result, err := decodeFlat[PropertiesResult](c, req, body)
	if err != nil {
		return nil, err
	}
	result.Raw = body
	c.notePolled(ctx, req, result.Status)
	return &result, nil
}
