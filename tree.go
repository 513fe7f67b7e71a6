package retort

import "encoding/json"

// ActionRecord is one atomic operation in a synthesis procedure, e.g.
// "add", "stir", "filter", with named parameters. Sequences of actions are
// attached to synthesis nodes and are intended for execution by automated
// laboratory hardware or a chemist following the procedure.
type ActionRecord struct {
	Name    string         `json:"name"`
	Content map[string]any `json:"content,omitempty"`
}

// SynthesisNode is one step in a synthesis tree. The root is the target
// molecule; leaves are starting materials. A node with children is the
// product of the reaction consuming those children as precursors; a node
// without children is a terminal reagent.
//
// Trees are immutable once parsed: the client only reads them.
type SynthesisNode struct {
	ID           string           `json:"id,omitempty"`
	SMILES       string           `json:"smiles,omitempty"`
	Confidence   *float64         `json:"confidence,omitempty"`
	SequenceID   string           `json:"sequenceId,omitempty"`
	IsCommercial bool             `json:"isCommercial,omitempty"`
	Actions      []ActionRecord   `json:"actions,omitempty"`
	Children     []*SynthesisNode `json:"children,omitempty"`
	Metadata     map[string]any   `json:"metaData,omitempty"`
}

// Leaf reports whether the node has no children. A missing children key in
// the service payload parses to a nil slice and counts as a leaf.
func (n *SynthesisNode) Leaf() bool { return len(n.Children) == 0 }

// ParseNode builds a tree from a raw service payload. Missing children and
// confidence are tolerated; anything else unparseable is an error at this
// single validation boundary.
func ParseNode(data []byte) (*SynthesisNode, error) {
	var node SynthesisNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Flatten linearizes a tree into execution order: post-order, children
// before parent, children visited in document order, root last. This
// mirrors physical synthesis order, where precursors must exist before the
// reaction that consumes them can run. Ordering is purely structural;
// confidence values never influence it.
//
// It returns the ordered nodes, their identifiers, and the concatenation
// of each visited node's action sequence in the same order. Per-node
// action order is preserved verbatim. A single-node tree yields one node
// and no actions.
func Flatten(root *SynthesisNode) ([]*SynthesisNode, []string, []ActionRecord) {
	if root == nil {
		return nil, nil, nil
	}

	var nodes []*SynthesisNode
	var walk func(n *SynthesisNode)
	walk = func(n *SynthesisNode) {
		for _, child := range n.Children {
			walk(child)
		}
		nodes = append(nodes, n)
	}
	walk(root)

	ids := make([]string, len(nodes))
	var actions []ActionRecord
	for i, n := range nodes {
		ids[i] = n.ID
		actions = append(actions, n.Actions...)
	}
	return nodes, ids, actions
}

// StartingMaterialsAvailable reports whether every leaf of the tree is
// commercially available. A leaf without availability information counts
// as unavailable.
func StartingMaterialsAvailable(root *SynthesisNode) bool {
	if root == nil {
		return false
	}
	if root.Leaf() {
		return root.IsCommercial
	}
	for _, child := range root.Children {
		if !StartingMaterialsAvailable(child) {
			return false
		}
	}
	return true
}

// Leaf border colors the service uses to mark commercial availability in
// rendering metadata.
var commercialBorderColors = map[string]bool{
	"#28a30d": true,
	"#0f62fe": true,
	"#002d9c": true,
}

// markCommercialLeaves backfills IsCommercial on leaves from rendering
// metadata when the service omits the explicit flag.
func markCommercialLeaves(n *SynthesisNode) {
	if n == nil {
		return
	}
	if n.Leaf() {
		if n.IsCommercial {
			return
		}
		if color, ok := n.Metadata["borderColor"].(string); ok {
			n.IsCommercial = commercialBorderColors[color]
		}
		return
	}
	for _, child := range n.Children {
		markCommercialLeaves(child)
	}
}
