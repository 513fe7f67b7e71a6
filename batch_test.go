package retort

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestPredictReactionBatch(t *testing.T) {
	t.Run("submit_joins_each_reaction", func(t *testing.T) {
		mt := NewMockTransport().Queue(200, `{"payload":{"task_id":"task-1"}}`)
		c, _ := newTestClient(t, mt)

		taskID, err := c.PredictReactionBatch(context.Background(), [][]string{
			{"BrBr", "c1ccc2cc3ccccc3cc2c1"},
			{"CCO", "CC(=O)O"},
		})
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		if taskID != "task-1" {
			t.Errorf("expected task-1, got %s", taskID)
		}

		var body struct {
			Reactions []string `json:"reactions"`
		}
		if err := json.Unmarshal([]byte(mt.Bodies[0]), &body); err != nil {
			t.Fatalf("unparseable request body: %v", err)
		}
		want := []string{"BrBr.c1ccc2cc3ccccc3cc2c1", "CCO.CC(=O)O"}
		if len(body.Reactions) != 2 || body.Reactions[0] != want[0] || body.Reactions[1] != want[1] {
			t.Errorf("expected %v on the wire, got %v", want, body.Reactions)
		}
	})

	t.Run("no_project_required", func(t *testing.T) {
		mt := NewMockTransport().Queue(200, `{"payload":{"task_id":"task-1"}}`)
		c, _ := newTestClient(t, mt)
		c.SetProject("")

		if _, err := c.PredictReactionBatch(context.Background(), [][]string{{"CCO"}}); err != nil {
			t.Errorf("batch submit must not require a project: %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		c, _ := newTestClient(t, NewMockTransport())
		ctx := context.Background()

		if _, err := c.PredictReactionBatch(ctx, nil); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation for empty batch, got %v", err)
		}
		if _, err := c.PredictReactionBatch(ctx, [][]string{{"CCO"}, {" "}}); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation for blank entry, got %v", err)
		}
	})
}

func TestPredictReactionBatchResults(t *testing.T) {
	t.Run("done_normalizes_to_success", func(t *testing.T) {
		mt := NewMockTransport().Queue(200, `{"payload":{
			"task": {"task_id": "task-1", "status": "DONE"},
			"result": {"predictions": [{"smiles": "CCO", "confidence": 0.95}, {"smiles": "CCN"}]}
		}}`)
		c, _ := newTestClient(t, mt)

		result, err := c.PredictReactionBatchResults(context.Background(), "task-1")
		if err != nil {
			t.Fatalf("poll failed: %v", err)
		}
		if result.Status != StatusSuccess {
			t.Errorf("DONE must normalize to SUCCESS, got %s", result.Status)
		}
		if len(result.Predictions) != 2 || result.Predictions[0].SMILES != "CCO" {
			t.Errorf("unexpected predictions %+v", result.Predictions)
		}
	})

	t.Run("running_normalizes_to_processing", func(t *testing.T) {
		mt := NewMockTransport().Queue(200, `{"payload":{"task":{"task_id":"task-1","status":"RUNNING"}}}`)
		c, _ := newTestClient(t, mt)

		result, err := c.PredictReactionBatchResults(context.Background(), "task-1")
		if err != nil {
			t.Fatalf("poll failed: %v", err)
		}
		if result.Status != StatusProcessing {
			t.Errorf("RUNNING must normalize to PROCESSING, got %s", result.Status)
		}
		if result.Done() {
			t.Error("a running task is not terminal")
		}
	})

	t.Run("expired_task_is_not_found", func(t *testing.T) {
		// Past the retention window the service forgets the task.
		mt := NewMockTransport().Queue(404, `{"title":"Not Found"}`)
		c, _ := newTestClient(t, mt)

		if _, err := c.PredictReactionBatchResults(context.Background(), "task-old"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPredictReactionBatchTopN(t *testing.T) {
	t.Run("submit_carries_topn", func(t *testing.T) {
		mt := NewMockTransport().Queue(200, `{"payload":{"task_id":"task-2"}}`)
		c, _ := newTestClient(t, mt)

		if _, err := c.PredictReactionBatchTopN(context.Background(), [][]string{{"CCO"}}, 5); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		var body struct {
			TopN int `json:"topn"`
		}
		if err := json.Unmarshal([]byte(mt.Bodies[0]), &body); err != nil {
			t.Fatalf("unparseable request body: %v", err)
		}
		if body.TopN != 5 {
			t.Errorf("expected topn=5 on the wire, got %d", body.TopN)
		}
	})

	t.Run("topn_must_be_positive", func(t *testing.T) {
		c, _ := newTestClient(t, NewMockTransport())
		for _, n := range []int{0, -3} {
			if _, err := c.PredictReactionBatchTopN(context.Background(), [][]string{{"CCO"}}, n); !errors.Is(err, ErrValidation) {
				t.Errorf("topn=%d: expected ErrValidation, got %v", n, err)
			}
		}
	})

	t.Run("results_keep_submission_order", func(t *testing.T) {
		mt := NewMockTransport().Queue(200, `{"payload":{
			"task": {"task_id": "task-2", "status": "DONE"},
			"result": {"predictions": [
				[{"smiles": "CCO", "confidence": 0.9}, {"smiles": "CCN", "confidence": 0.4}],
				[{"smiles": "CC(=O)O", "confidence": 0.8}]
			]}
		}}`)
		c, _ := newTestClient(t, mt)

		result, err := c.PredictReactionBatchTopNResults(context.Background(), "task-2")
		if err != nil {
			t.Fatalf("poll failed: %v", err)
		}
		if len(result.Predictions) != 2 {
			t.Fatalf("expected one entry per submitted reaction, got %d", len(result.Predictions))
		}
		if len(result.Predictions[0]) != 2 || result.Predictions[0][0].SMILES != "CCO" {
			t.Errorf("unexpected first entry %+v", result.Predictions[0])
		}
	})
}
