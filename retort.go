// Package retort is a Go client for a remote chemistry-prediction service.
//
// Retort submits prediction jobs to the service and retrieves their results
// once computed. All chemistry and ML work happens remotely; the client
// handles orchestration: authentication, submission, rate-limit compliant
// polling, error classification, and reshaping hierarchical retrosynthesis
// results into ordered execution plans. Seven job families are supported:
//
//   - Reaction: forward reaction prediction from precursor SMILES
//   - Retrosynthesis: candidate synthesis routes for a target molecule
//   - Reagents: reagent prediction for a transformation
//   - Batch: forward prediction over many reactions at once
//   - BatchTopN: batch prediction keeping the top-N attempts per reaction
//   - Properties: reaction property prediction
//   - Digitization: extraction of reactions from uploaded documents
//
// Submission and result retrieval are decoupled: a submit call returns an
// opaque job identifier as soon as the service acknowledges the job, and a
// matching results call performs exactly one poll. Remote predictions can
// take seconds to minutes, so polling cadence belongs to the caller (or to
// the Wait helper, which layers a caller-configured loop on top of the
// single-shot poll).
//
// Basic usage:
//
//	client, _ := retort.New(retort.Config{APIKey: apiKey})
//	client.CreateProject(ctx, "screening")
//	id, _ := client.PredictReaction(ctx, []string{"BrBr", "c1ccc2cc3ccccc3cc2c1"})
//	result, _ := retort.Wait(ctx, client, 10*time.Second, func(ctx context.Context) (*retort.ReactionResult, error) {
//		return client.PredictReactionResults(ctx, id)
//	})
//	fmt.Println(result.Attempts[0].SMILES)
package retort

import "net/http"

// Doer abstracts the HTTP transport so tests can substitute canned
// responses. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Family identifies a job family. Every family has its own submit and
// result payload shapes but shares the same lifecycle.
type Family string

// Job families.
const (
	FamilyReaction       Family = "reaction"
	FamilyRetrosynthesis Family = "retrosynthesis"
	FamilyReagents       Family = "reagents"
	FamilyBatch          Family = "batch"
	FamilyBatchTopN      Family = "batch_topn"
	FamilyProperties     Family = "properties"
	FamilyDigitization   Family = "digitization"
	FamilySynthesis      Family = "synthesis"
	FamilyProject        Family = "project"
)

// Status is the lifecycle state of a submitted job as reported by the
// service. SUCCESS and ERROR are terminal: once observed, repeated polls
// return the same payload until the service's retention window expires.
type Status string

// Job statuses.
const (
	StatusNew        Status = "NEW"
	StatusProcessing Status = "PROCESSING"
	StatusSuccess    Status = "SUCCESS"
	StatusError      Status = "ERROR"
)

// Terminal reports whether the status is final. A terminal job never
// transitions again, though batch-family results may later disappear
// entirely (see the retention caveat on PredictReactionBatchResults).
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusError
}

// normalizeStatus maps the task-queue status vocabulary used by some
// families onto the common lifecycle.
func normalizeStatus(raw string) Status {
	switch raw {
	case "DONE":
		return StatusSuccess
	case "WAITING", "RUNNING", "STARTED":
		return StatusProcessing
	case "":
		return StatusNew
	default:
		return Status(raw)
	}
}

// Pollable is implemented by family results that expose a job status.
type Pollable interface {
	JobStatus() Status
	Done() bool
}
