// File: methods_edges.go
// Role: Edge surgery.
//
// SplitEdge inserts one node and rewrites every incident element into two.
// CutEdge inserts two coincident nodes and connects each to one endpoint only;
// elements are left citing the original edge until the caller replaces them.

package hemesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SplitEdge inserts a node at parameter t along edge e (t=0 at From, t=1 at To)
// and replaces every live element incident to e by the two elements obtained
// by substituting the new node for each endpoint. Orientation is preserved.
//
// Returns ErrEdgeNotFound for an invalid or released edge and ErrOpFailed for
// t outside [0,1], or t in {0,1} when degenerate elements are disallowed.
// Complexity: O(E) to find the incident elements.
func (m *Mesh) SplitEdge(e Handle, t float64) (Handle, error) {
	if !m.IsLiveEdge(e) {
		return InvalidHandle, fmt.Errorf("%w: edge %d", ErrEdgeNotFound, e)
	}
	if math.IsNaN(t) || t < 0 || t > 1 {
		return InvalidHandle, fmt.Errorf("%w: split parameter %g outside [0,1]", ErrOpFailed, t)
	}
	if !m.allowDegenerate && (t == 0 || t == 1) {
		return InvalidHandle, fmt.Errorf("%w: split at endpoint (t=%g) yields degenerate elements", ErrOpFailed, t)
	}

	ed := m.EdgeAt(e)
	a, b := ed.From, ed.To
	incident := m.ElementsAroundEdge(e)

	np := m.addNode(lerp(m.nodes[a].Pos, m.nodes[b].Pos, t), lerp(m.nodes[a].RestPos, m.nodes[b].RestPos, t))
	for _, h := range incident {
		el := m.elements[h]
		m.RemoveElement(h)

		lo, hi := el.Nodes, el.Nodes
		for i := range el.Nodes {
			if el.Nodes[i] == b {
				lo[i] = np
			}
			if el.Nodes[i] == a {
				hi[i] = np
			}
		}
		m.linkElement(lo, el.PosDet)
		m.linkElement(hi, el.PosDet)
	}
	m.ensureEdge(a, np)
	m.ensureEdge(np, b)
	m.releaseEdgeIfUnused(e)

	return np, nil
}

// CutEdge tears edge e at distance (measured from Edge.From along the edge).
// Two coincident nodes are created: np0 is connected to From and np1 to To by
// new edges; np0 and np1 are never connected to each other.
//
// Returns ErrEdgeNotFound for an invalid or released edge and ErrOpFailed for a
// zero-length edge or a distance outside [0, length].
// Complexity: O(1) amortized.
func (m *Mesh) CutEdge(e Handle, distance float64) (np0, np1 Handle, err error) {
	if !m.IsLiveEdge(e) {
		return InvalidHandle, InvalidHandle, fmt.Errorf("%w: edge %d", ErrEdgeNotFound, e)
	}

	ed := m.EdgeAt(e)
	a, b := &m.nodes[ed.From], &m.nodes[ed.To]
	length := r3.Norm(r3.Sub(b.Pos, a.Pos))
	if length == 0 {
		return InvalidHandle, InvalidHandle, fmt.Errorf("%w: edge %d has zero length", ErrOpFailed, e)
	}
	t := distance / length
	if math.IsNaN(t) || t < 0 || t > 1 {
		return InvalidHandle, InvalidHandle, fmt.Errorf("%w: cut distance %g outside edge %d of length %g",
			ErrOpFailed, distance, e, length)
	}

	pos, rest := lerp(a.Pos, b.Pos, t), lerp(a.RestPos, b.RestPos, t)
	np0 = m.addNode(pos, rest)
	np1 = m.addNode(pos, rest)
	m.ensureEdge(ed.From, np0)
	m.ensureEdge(np1, ed.To)

	return np0, np1, nil
}

// EdgeLength returns the current length of edge e, or 0 for an invalid edge.
func (m *Mesh) EdgeLength(e Handle) float64 {
	if !m.IsEdgeIndex(e) {
		return 0
	}
	ed := m.EdgeAt(e)
	return r3.Norm(r3.Sub(m.nodes[ed.To].Pos, m.nodes[ed.From].Pos))
}

// ElementsAroundEdge returns the live elements citing both endpoints of e,
// in ascending handle order.
// Complexity: O(E)
func (m *Mesh) ElementsAroundEdge(e Handle) []Handle {
	if !m.IsEdgeIndex(e) {
		return nil
	}
	ed := m.EdgeAt(e)

	var out []Handle
	for i := range m.elements {
		el := &m.elements[i]
		if el.Removed {
			continue
		}
		hasA, hasB := false, false
		for _, n := range el.Nodes {
			hasA = hasA || n == ed.From
			hasB = hasB || n == ed.To
		}
		if hasA && hasB {
			out = append(out, Handle(i))
		}
	}

	return out
}

func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
