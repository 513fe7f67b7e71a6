package retort

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestPredictReactionProperties(t *testing.T) {
	t.Run("submit_flat_ack", func(t *testing.T) {
		// The properties endpoints answer without the payload envelope.
		mt := NewMockTransport().Queue(200, `{"task_id":"prop-1"}`)
		c, _ := newTestClient(t, mt)

		taskID, err := c.PredictReactionProperties(context.Background(),
			[]string{"CCO>>CC(=O)O"}, "yield")
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		if taskID != "prop-1" {
			t.Errorf("expected prop-1, got %s", taskID)
		}

		var body struct {
			Reactions []string `json:"reactions"`
			Property  string   `json:"property"`
		}
		if err := json.Unmarshal([]byte(mt.Bodies[0]), &body); err != nil {
			t.Fatalf("unparseable request body: %v", err)
		}
		if body.Property != "yield" || len(body.Reactions) != 1 {
			t.Errorf("unexpected request body %+v", body)
		}
	})

	t.Run("enveloped_ack_is_malformed", func(t *testing.T) {
		mt := NewMockTransport().Queue(200, `{"payload":{"task_id":"prop-1"}}`)
		c, _ := newTestClient(t, mt)

		_, err := c.PredictReactionProperties(context.Background(), []string{"CCO>>CCN"}, "yield")
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("expected ErrMalformedResponse, got %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		c, _ := newTestClient(t, NewMockTransport())
		ctx := context.Background()

		if _, err := c.PredictReactionProperties(ctx, nil, "yield"); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation for empty reactions, got %v", err)
		}
		if _, err := c.PredictReactionProperties(ctx, []string{"CCO>>CCN"}, " "); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation for blank property, got %v", err)
		}
	})
}

func TestPredictReactionPropertiesResults(t *testing.T) {
	t.Run("flat_result", func(t *testing.T) {
		mt := NewMockTransport().Queue(200, `{
			"status": "SUCCESS",
			"content": [{"reaction": "CCO>>CC(=O)O", "property": "yield", "value": 0.73}]
		}`)
		c, _ := newTestClient(t, mt)

		result, err := c.PredictReactionPropertiesResults(context.Background(), "prop-1")
		if err != nil {
			t.Fatalf("poll failed: %v", err)
		}
		if result.Status != StatusSuccess || len(result.Content) != 1 {
			t.Fatalf("unexpected result %+v", result)
		}
		if result.Content[0].Property != "yield" {
			t.Errorf("unexpected property prediction %+v", result.Content[0])
		}
	})

	t.Run("pending", func(t *testing.T) {
		mt := NewMockTransport().Queue(200, `{"status":"PROCESSING"}`)
		c, _ := newTestClient(t, mt)

		result, err := c.PredictReactionPropertiesResults(context.Background(), "prop-1")
		if err != nil {
			t.Fatalf("poll failed: %v", err)
		}
		if result.Done() {
			t.Error("a processing task is not terminal")
		}
	})
}
