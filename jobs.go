package retort

import (
	"context"

	"github.com/zoobzio/capitan"
)

// Submit acknowledgements. The service varies the identifier key by job
// kind: most prediction endpoints return {"payload": {"id": ...}}, the
// task-queue backed ones return {"payload": {"task_id": ...}}.

type submitAck struct {
	ID string `json:"id"`
}

type taskAck struct {
	TaskID string `json:"task_id"`
}

// submitJob sends a submit request and extracts the opaque job identifier.
// Submission never waits for completion: the service acknowledges the job
// and computes in the background, so the identifier comes back immediately
// and observation happens through the family's results call.
func (c *Client) submitJob(ctx context.Context, req *Request) (string, error) {
	body, err := c.send(ctx, req)
	if err != nil {
		return "", err
	}
	ack, err := decodePayload[submitAck](c, req, body)
	if err != nil {
		return "", err
	}
	c.noteSubmitted(ctx, req, ack.ID)
	return ack.ID, nil
}

// submitTask is submitJob for the task-queue backed families.
func (c *Client) submitTask(ctx context.Context, req *Request) (string, error) {
	body, err := c.send(ctx, req)
	if err != nil {
		return "", err
	}
	ack, err := decodePayload[taskAck](c, req, body)
	if err != nil {
		return "", err
	}
	c.noteSubmitted(ctx, req, ack.TaskID)
	return ack.TaskID, nil
}

func (c *Client) noteSubmitted(ctx context.Context, req *Request, jobID string) {
	capitan.Emit(ctx, JobSubmitted,
		FamilyKey.Field(string(req.Family)),
		JobIDKey.Field(jobID),
		ProjectKey.Field(c.projectID),
	)
}

func (c *Client) notePolled(ctx context.Context, req *Request, status Status) {
	capitan.Emit(ctx, JobPolled,
		FamilyKey.Field(string(req.Family)),
		JobIDKey.Field(req.JobID),
		JobStatusKey.Field(string(status)),
	)
}
