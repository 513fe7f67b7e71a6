package retort

import (
	"context"
	"strings"
)

// ParagraphToActions extracts the action sequence described by a
// free-text experimental procedure. Unlike the prediction families this
// endpoint computes synchronously, so there is no identifier to poll.
func (c *Client) ParagraphToActions(ctx context.Context, paragraph string) ([]string, error) {
	if strings.TrimSpace(paragraph) == "" {
		return nil, validationError("paragraph required")
	}

	req := &Request{
		Method: "POST",
		Path:   "paragraph-actions",
		Body:   map[string]string{"paragraph": paragraph},
	}
	body, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	payload, err := decodePayload[struct {
		Actions []string `json:"actions,omitempty"`
	}](c, req, body)
	if err != nil {
		return nil, err
	}
	return payload.Actions, nil
}
