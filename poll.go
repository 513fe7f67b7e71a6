package retort

import (
	"context"
	"time"
)

// Wait re-invokes a single-shot poll until the job reaches a terminal
// state, sleeping interval between observations. It is a convenience
// strictly layered on the family results calls; nothing in the client
// polls unless the caller asks for it here.
//
// Interval should respect the service's pacing (the gateway blocks to
// enforce minimum spacing regardless). Bound the total wait through ctx;
// without a deadline Wait runs until the job completes or a poll fails.
//
//	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
//	defer cancel()
//	result, err := retort.Wait(ctx, client, 10*time.Second,
//		func(ctx context.Context) (*retort.ReactionResult, error) {
//			return client.PredictReactionResults(ctx, id)
//		})
func Wait[T Pollable](ctx context.Context, c *Client, interval time.Duration, poll func(context.Context) (T, error)) (T, error) {
	var zero T
	if interval <= 0 {
		return zero, validationError("poll interval must be positive")
	}

	for {
		result, err := poll(ctx)
		if err != nil {
			return zero, err
		}
		if result.Done() {
			return result, nil
		}

		select {
		case <-c.clock.After(interval):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}
