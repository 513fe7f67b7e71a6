package retort

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPredictReaction(t *testing.T) {
	t.Run("submit_and_poll_to_success", func(t *testing.T) {
		mt := NewMockTransport().
			Queue(200, `{"payload":{"id":"pred-1"}}`).
			Queue(200, `{"payload":{"status":"PROCESSING"}}`).
			Queue(200, `{"payload":{"status":"SUCCESS","attempts":[{"smiles":"Brc1c2ccccc2c(Br)c2ccccc12","confidence":0.92}]}}`)
		c, _ := newTestClient(t, mt)
		ctx := context.Background()

		id, err := c.PredictReaction(ctx, []string{"BrBr", "c1ccc2cc3ccccc3cc2c1"})
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		if id != "pred-1" {
			t.Errorf("expected prediction id pred-1, got %s", id)
		}
		if !strings.Contains(mt.Bodies[0], "BrBr.c1ccc2cc3ccccc3cc2c1") {
			t.Errorf("expected dot-joined precursors on the wire, got %s", mt.Bodies[0])
		}
		if got := mt.Requests[0].URL.Query().Get("projectId"); got != "proj-1" {
			t.Errorf("expected project id query parameter, got %q", got)
		}

		first, err := c.PredictReactionResults(ctx, id)
		if err != nil {
			t.Fatalf("poll failed: %v", err)
		}
		if first.Status != StatusProcessing {
			t.Errorf("expected PROCESSING, got %s", first.Status)
		}
		if len(first.Attempts) != 0 {
			t.Error("attempts must be empty before completion")
		}

		second, err := c.PredictReactionResults(ctx, id)
		if err != nil {
			t.Fatalf("poll failed: %v", err)
		}
		if second.Status != StatusSuccess {
			t.Errorf("expected SUCCESS, got %s", second.Status)
		}
		if len(second.Attempts) == 0 {
			t.Fatal("expected attempts on success")
		}
		for _, attempt := range second.Attempts {
			if attempt.SMILES == "" {
				t.Error("every attempt must carry a structure string")
			}
		}
	})

	t.Run("terminal_poll_is_idempotent", func(t *testing.T) {
		// The mock repeats its last response, like the service does for a
		// terminal job inside the retention window.
		mt := NewMockTransport().
			Queue(200, `{"payload":{"status":"SUCCESS","attempts":[{"smiles":"CCO","confidence":0.8}]}}`)
		c, _ := newTestClient(t, mt)
		ctx := context.Background()

		first, err := c.PredictReactionResults(ctx, "pred-1")
		if err != nil {
			t.Fatalf("poll failed: %v", err)
		}
		second, err := c.PredictReactionResults(ctx, "pred-1")
		if err != nil {
			t.Fatalf("poll failed: %v", err)
		}
		if !bytes.Equal(first.Raw, second.Raw) {
			t.Error("terminal polls must return byte-identical payloads")
		}
	})

	t.Run("validation", func(t *testing.T) {
		mt := NewMockTransport()
		c, _ := newTestClient(t, mt)
		ctx := context.Background()

		cases := []struct {
			name       string
			precursors []string
		}{
			{"empty_list", nil},
			{"blank_entry", []string{"BrBr", "  "}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := c.PredictReaction(ctx, tc.precursors)
				if !errors.Is(err, ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
			})
		}
		if mt.Calls() != 0 {
			t.Errorf("validation failures must not reach the network, got %d calls", mt.Calls())
		}

		if _, err := c.PredictReactionResults(ctx, ""); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation for empty prediction id, got %v", err)
		}
	})
}
