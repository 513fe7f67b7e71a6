package retort

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

// RetrosynthesisParams tunes the retrosynthetic search. The zero value is
// not useful; start from DefaultRetrosynthesisParams.
type RetrosynthesisParams struct {
	// AvailabilityPricingThreshold is the maximum price in USD per mg/ml
	// for a compound to count as an available precursor. Zero means no
	// threshold.
	AvailabilityPricingThreshold int

	// AvailableSMILES lists extra molecules to treat as available
	// precursors, "."-separated. Empty means the service defaults.
	AvailableSMILES string

	// ExcludeSMILES lists molecules to exclude from the precursor set,
	// "."-separated.
	ExcludeSMILES string

	// ExcludeSubstructures lists substructures to exclude from
	// precursors, "."-separated.
	ExcludeSubstructures string

	// ExcludeTargetMolecule excludes the product itself from precursors.
	ExcludeTargetMolecule bool

	// FAP is the forward acceptance probability: each retrosynthetic
	// step is kept only if the forward model's confidence exceeds it.
	FAP float64

	// MaxSteps caps the number of retrosynthetic steps.
	MaxSteps int

	// NBeams caps the number of beams exploring the hyper-tree.
	NBeams int

	// PruningSteps is the interval, in steps, at which the explored
	// hyper-tree is pruned.
	PruningSteps int
}

// DefaultRetrosynthesisParams returns the service's documented defaults.
func DefaultRetrosynthesisParams() RetrosynthesisParams {
	return RetrosynthesisParams{
		ExcludeTargetMolecule: true,
		FAP:                   0.6,
		MaxSteps:              3,
		NBeams:                10,
		PruningSteps:          2,
	}
}

type retrosynthesisParamsWire struct {
	AvailabilityPricingThreshold int     `json:"availability_pricing_threshold"`
	AvailableSMILES              string  `json:"available_smiles,omitempty"`
	ExcludeSMILES                string  `json:"exclude_smiles,omitempty"`
	ExcludeSubstructures         string  `json:"exclude_substructures,omitempty"`
	ExcludeTargetMolecule        bool    `json:"exclude_target_molecule"`
	FAP                          float64 `json:"fap"`
	MaxSteps                     int     `json:"max_steps"`
	NBeams                       int     `json:"nbeams"`
	PruningSteps                 int     `json:"pruning_steps"`
}

// RetrosynthesisResult is the poll envelope for a retrosynthesis
// prediction. Paths holds one candidate synthesis tree per sequence once
// Status is SUCCESS; choosing which path to act on is the caller's
// decision.
type RetrosynthesisResult struct {
	Status Status           `json:"status"`
	Paths  []*SynthesisNode `json:"-"`
	Raw    json.RawMessage  `json:"-"`
}

// JobStatus returns the job lifecycle status.
func (r *RetrosynthesisResult) JobStatus() Status { return r.Status }

// Done reports whether the job reached a terminal state.
func (r *RetrosynthesisResult) Done() bool { return r.Status.Terminal() }

// PredictRetrosynthesis submits a retrosynthesis prediction for a product
// SMILES and returns the prediction identifier. Pass nil params to use
// DefaultRetrosynthesisParams. A project must be selected.
func (c *Client) PredictRetrosynthesis(ctx context.Context, product string, params *RetrosynthesisParams) (string, error) {
	if strings.TrimSpace(product) == "" {
		return "", validationError("product SMILES required")
	}
	if err := c.requireProject(); err != nil {
		return "", err
	}

	p := DefaultRetrosynthesisParams()
	if params != nil {
		p = *params
	}

	req := &Request{
		Method: "POST",
		Path:   "retrosynthesis/rs",
		Query:  url.Values{"projectId": {c.projectID}},
		Body: map[string]any{
			"isinteractive": false,
			"product":       product,
			"parameters": retrosynthesisParamsWire{
				AvailabilityPricingThreshold: p.AvailabilityPricingThreshold,
				AvailableSMILES:              p.AvailableSMILES,
				ExcludeSMILES:                p.ExcludeSMILES,
				ExcludeSubstructures:         p.ExcludeSubstructures,
				ExcludeTargetMolecule:        p.ExcludeTargetMolecule,
				FAP:                          p.FAP,
				MaxSteps:                     p.MaxSteps,
				NBeams:                       p.NBeams,
				PruningSteps:                 p.PruningSteps,
			},
		},
		Family: FamilyRetrosynthesis,
	}
	return c.submitJob(ctx, req)
}

// PredictRetrosynthesisResults performs a single poll for a
// retrosynthesis prediction. Each returned path carries the sequence
// identifier needed by CreateSynthesisFromSequence, and leaves are marked
// commercially available where the service metadata says so.
func (c *Client) PredictRetrosynthesisResults(ctx context.Context, predictionID string) (*RetrosynthesisResult, error) {
	if predictionID == "" {
		return nil, validationError("prediction id required")
	}

	req := &Request{
		Method: "GET",
		Path:   "retrosynthesis/" + predictionID,
		Family: FamilyRetrosynthesis,
		JobID:  predictionID,
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

	result := &RetrosynthesisResult{Status: payload.Status, Raw: body}
	for _, seq := range payload.Sequences {
		if len(seq.Tree) == 0 {
			continue
		}
		node, err := ParseNode(seq.Tree)
		if err != nil {
			apiErr := c.apiError(req, ErrMalformedResponse, req.StatusCode, "unparseable retrosynthesis tree")
			apiErr.Err = err
			return nil, apiErr
		}
		markCommercialLeaves(node)
		result.Paths = append(result.Paths, node)
	}
	c.notePolled(ctx, req, result.Status)
	return result, nil
}
