package retort

import (
	"context"
	"errors"
	"testing"
)

func TestUploadFile(t *testing.T) {
	t.Run("raw_body_upload", func(t *testing.T) {
		mt := NewMockTransport().Queue(200, `{"payload":{"id":"file-1"}}`)
		c, _ := newTestClient(t, mt)

		data := []byte("%PDF-1.4 fake document")
		fileID, err := c.UploadFile(context.Background(), "procedure.pdf", data)
		if err != nil {
			t.Fatalf("upload failed: %v", err)
		}
		if fileID != "file-1" {
			t.Errorf("expected file-1, got %s", fileID)
		}

		req := mt.Requests[0]
		if got := req.URL.Query().Get("filename"); got != "procedure.pdf" {
			t.Errorf("expected filename query parameter, got %q", got)
		}
		if got := req.Header.Get("Content-Type"); got != "application/octet-stream" {
			t.Errorf("expected octet-stream upload, got %s", got)
		}
		if mt.Bodies[0] != string(data) {
			t.Error("upload body must be the raw bytes, not JSON")
		}
	})

	t.Run("validation", func(t *testing.T) {
		c, _ := newTestClient(t, NewMockTransport())
		ctx := context.Background()

		if _, err := c.UploadFile(ctx, "", []byte("x")); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation for empty filename, got %v", err)
		}
		if _, err := c.UploadFile(ctx, "doc.pdf", nil); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation for empty data, got %v", err)
		}
	})
}

func TestDigitizeReaction(t *testing.T) {
	t.Run("upload_then_digitize_then_poll", func(t *testing.T) {
		mt := NewMockTransport().
			Queue(200, `{"payload":{"id":"file-1"}}`).
			Queue(200, `{"payload":{"task_id":"digi-1"}}`).
			Queue(200, `{"payload":{"status":"SUCCESS","reactions":[{"smiles":"CCO>>CC(=O)O","confidence":0.88}]}}`)
		c, _ := newTestClient(t, mt)
		ctx := context.Background()

		fileID, err := c.UploadFile(ctx, "procedure.pdf", []byte("doc"))
		if err != nil {
			t.Fatalf("upload failed: %v", err)
		}
		taskID, err := c.DigitizeReaction(ctx, fileID)
		if err != nil {
			t.Fatalf("digitize failed: %v", err)
		}
		if taskID != "digi-1" {
			t.Errorf("expected digi-1, got %s", taskID)
		}

		result, err := c.DigitizeReactionResults(ctx, taskID)
		if err != nil {
			t.Fatalf("poll failed: %v", err)
		}
		if result.Status != StatusSuccess || len(result.Reactions) != 1 {
			t.Fatalf("unexpected result %+v", result)
		}
		if result.Reactions[0].SMILES == "" {
			t.Error("digitized reaction must carry a structure string")
		}
	})

	t.Run("validation", func(t *testing.T) {
		c, _ := newTestClient(t, NewMockTransport())
		if _, err := c.DigitizeReaction(context.Background(), ""); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation for empty file id, got %v", err)
		}
		if _, err := c.DigitizeReactionResults(context.Background(), ""); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation for empty task id, got %v", err)
		}
	})
}
