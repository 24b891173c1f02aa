package builder

import (
	"github.com/korzen/tetcutter/hemesh"
)

// addElement inserts nodes as a positively oriented element, swapping the
// last two nodes when the given order is negative.
func addElement(m *hemesh.Mesh, method string, nodes [4]hemesh.Handle) error {
	if m.ComputeDeterminant(nodes) < 0 {
		nodes[2], nodes[3] = nodes[3], nodes[2]
	}
	if _, err := m.InsertElement(nodes); err != nil {
		return builderErrorf(method, ErrConstructFailed, "element %v: %v", nodes, err)
	}

	return nil
}
