// File: methods_traversal.go
// Role: Half-edge navigation and node/element neighbourhood queries.
// Policy:
//   - Never panics: out-of-range handles yield InvalidHandle or nil.

package hemesh

import "sort"

// NextHalfEdge returns the successor of h on its face cycle.
// Out-of-range or unowned half-edges yield InvalidHandle.
func (m *Mesh) NextHalfEdge(h Handle) Handle {
	if !m.IsHalfEdgeIndex(h) {
		return InvalidHandle
	}
	return m.halfEdges[h].Next
}

// PrevHalfEdge returns the predecessor of h on its face cycle.
func (m *Mesh) PrevHalfEdge(h Handle) Handle {
	if !m.IsHalfEdgeIndex(h) {
		return InvalidHandle
	}
	return m.halfEdges[h].Prev
}

// OppositeHalfEdge returns the paired half-edge of h.
func (m *Mesh) OppositeHalfEdge(h Handle) Handle {
	if !m.IsHalfEdgeIndex(h) {
		return InvalidHandle
	}
	return m.halfEdges[h].Opposite
}

// VertexFromHalfEdge returns the origin node of h.
func (m *Mesh) VertexFromHalfEdge(h Handle) Handle {
	if !m.IsHalfEdgeIndex(h) {
		return InvalidHandle
	}
	return m.halfEdges[h].From
}

// VertexToHalfEdge returns the destination node of h.
func (m *Mesh) VertexToHalfEdge(h Handle) Handle {
	if !m.IsHalfEdgeIndex(h) {
		return InvalidHandle
	}
	return m.halfEdges[h].To
}

// HalfEdgeFromEdge returns half-edge 2e+which; which is 0 or 1.
// Out-of-range edges yield InvalidHandle.
func (m *Mesh) HalfEdgeFromEdge(e Handle, which uint8) Handle {
	if !m.IsEdgeIndex(e) {
		return InvalidHandle
	}
	return e*2 + Handle(which&1)
}

// EdgeFromHalfEdge returns the edge owning h, InvalidHandle when out of range.
func (m *Mesh) EdgeFromHalfEdge(h Handle) Handle {
	if !m.IsHalfEdgeIndex(h) {
		return InvalidHandle
	}
	return h / 2
}

// HalfEdgeHandle looks up the half-edge from->to, InvalidHandle if absent.
// Complexity: O(1)
func (m *Mesh) HalfEdgeHandle(from, to Handle) Handle {
	if h, ok := m.halfEdgeIndex[NewHalfEdgeKey(from, to)]; ok {
		return h
	}
	return InvalidHandle
}

// HalfEdgeExists reports whether a live half-edge from->to exists.
func (m *Mesh) HalfEdgeExists(from, to Handle) bool {
	_, ok := m.halfEdgeIndex[NewHalfEdgeKey(from, to)]
	return ok
}

// FaceHandle looks up the face over the three nodes (any order).
func (m *Mesh) FaceHandle(a, b, c Handle) Handle {
	if f, ok := m.faceIndex[NewFaceKey(a, b, c)]; ok {
		return f
	}
	return InvalidHandle
}

// FaceNodes returns the nodes of face f in winding order.
func (m *Mesh) FaceNodes(f Handle) ([3]Handle, bool) {
	if !m.IsFaceIndex(f) {
		return [3]Handle{InvalidHandle, InvalidHandle, InvalidHandle}, false
	}
	var out [3]Handle
	for i, he := range m.faces[f].HalfEdge {
		out[i] = m.halfEdges[he].From
	}

	return out, true
}

// OutgoingHalfEdges returns the live half-edges leaving node n, sorted.
// Complexity: O(d log d)
func (m *Mesh) OutgoingHalfEdges(n Handle) []Handle {
	if !m.IsNodeIndex(n) {
		return nil
	}
	out := append([]Handle(nil), m.outgoing[n]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// IncomingHalfEdges returns the live half-edges arriving at node n, sorted.
// Complexity: O(d log d)
func (m *Mesh) IncomingHalfEdges(n Handle) []Handle {
	if !m.IsNodeIndex(n) {
		return nil
	}
	in := make([]Handle, 0, len(m.outgoing[n]))
	for _, he := range m.outgoing[n] {
		in = append(in, m.halfEdges[he].Opposite)
	}
	sort.Slice(in, func(i, j int) bool { return in[i] < in[j] })

	return in
}

// FirstRing returns the nodes connected to n by a live edge, sorted.
// Complexity: O(d log d)
func (m *Mesh) FirstRing(n Handle) []Handle {
	if !m.IsNodeIndex(n) {
		return nil
	}
	ring := make([]Handle, 0, len(m.outgoing[n]))
	for _, he := range m.outgoing[n] {
		ring = append(ring, m.halfEdges[he].To)
	}
	sort.Slice(ring, func(i, j int) bool { return ring[i] < ring[j] })

	return ring
}

// ElementEdge returns the edge joining the endpoints of local edge i of
// element h, numbered as in EdgeMask(true) whatever the element orientation.
// Returns InvalidHandle for a bad element, a bad index or a released edge.
func (m *Mesh) ElementEdge(h Handle, i int) Handle {
	if !m.IsElemIndex(h) || i < 0 || i >= len(edgeMaskPos) {
		return InvalidHandle
	}
	lo, hi := LocalEdge(i)
	nodes := m.elements[h].Nodes
	he := m.HalfEdgeHandle(nodes[lo], nodes[hi])
	if !he.Valid() {
		return InvalidHandle
	}
	return he / 2
}
