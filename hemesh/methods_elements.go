// File: methods_elements.go
// Role: Element and face lifecycle.
//
// Elements are inserted by building (or reusing through faceIndex) their four
// faces; faces are built from half-edges found (or allocated in opposite pairs)
// through halfEdgeIndex. Reference counts are bumped on every citation and
// dropped on removal; entities whose counts reach zero are marked removed and
// stay in their slices until GarbageCollection.

package hemesh

import (
	"fmt"
	"math"
)

// InsertElement builds a tetrahedron over the four node handles and returns
// its handle.
//
// Faces and half-edges already present (shared with neighbours) are reused and
// their reference counts incremented. The orientation is recorded in PosDet
// and never corrected.
//
// Returns ErrNodeNotFound for an out-of-range node, ErrOpFailed for a repeated
// node, a node beyond MaxNodes, or a degenerate element when degenerate
// elements are disallowed. The mesh is not mutated on failure.
// Complexity: O(1) amortized.
func (m *Mesh) InsertElement(nodes [4]Handle) (Handle, error) {
	for i, n := range nodes {
		if !m.IsNodeIndex(n) {
			return InvalidHandle, fmt.Errorf("%w: element node %d is %d", ErrNodeNotFound, i, n)
		}
		if n >= MaxNodes {
			return InvalidHandle, fmt.Errorf("%w: node %d exceeds the %d node ceiling", ErrOpFailed, n, MaxNodes)
		}
		for j := 0; j < i; j++ {
			if nodes[j] == n {
				return InvalidHandle, fmt.Errorf("%w: node %d repeated in element", ErrOpFailed, n)
			}
		}
	}

	det := m.ComputeDeterminant(nodes)
	if !m.allowDegenerate && math.Abs(det) <= m.epsilon {
		return InvalidHandle, fmt.Errorf("%w: degenerate element %v (det=%g)", ErrOpFailed, nodes, det)
	}

	return m.linkElement(nodes, det > 0), nil
}

// linkElement appends the element without validation.
func (m *Mesh) linkElement(nodes [4]Handle, posDet bool) Handle {
	el := Element{Nodes: nodes, PosDet: posDet}

	fm := faceMask4(posDet)
	for i := 0; i < 4; i++ {
		el.Faces[i] = m.insertFace(nodes[fm[i][0]], nodes[fm[i][1]], nodes[fm[i][2]])
	}
	em := edgeMask(posDet)
	for i := 0; i < 6; i++ {
		el.HalfEdge[i] = m.halfEdgeIndex[NewHalfEdgeKey(nodes[em[i][0]], nodes[em[i][1]])]
	}

	h := Handle(len(m.elements))
	m.elements = append(m.elements, el)
	m.notifyElement(h, Added)

	return h
}

// RemoveElement marks element h removed and releases one citation of each of
// its faces. Faces reaching refcount 0 are marked removed too.
// Invalid or already removed handles are a silent no-op.
// Complexity: O(1).
func (m *Mesh) RemoveElement(h Handle) {
	if !m.IsElemIndex(h) || m.elements[h].Removed {
		return
	}
	m.elements[h].Removed = true
	for _, f := range m.elements[h].Faces {
		m.releaseFace(f)
	}
	m.notifyElement(h, Removed)
}

// InsertFace returns the face over the three nodes, creating it (wound
// a->b->c) if the canonical key is unknown. Each call adds one citation to the
// face and to its three half-edges.
func (m *Mesh) InsertFace(nodes [3]Handle) (Handle, error) {
	for i, n := range nodes {
		if !m.IsNodeIndex(n) {
			return InvalidHandle, fmt.Errorf("%w: face node %d is %d", ErrNodeNotFound, i, n)
		}
		if n >= MaxNodes {
			return InvalidHandle, fmt.Errorf("%w: node %d exceeds the %d node ceiling", ErrOpFailed, n, MaxNodes)
		}
	}
	if nodes[0] == nodes[1] || nodes[1] == nodes[2] || nodes[0] == nodes[2] {
		return InvalidHandle, fmt.Errorf("%w: repeated node in face %v", ErrOpFailed, nodes)
	}

	return m.insertFace(nodes[0], nodes[1], nodes[2]), nil
}

// RemoveFace drops one citation of face h. Invalid or removed handles are a
// no-op. Dropping the citation an element holds releases the face early; the
// element then skips it on removal.
func (m *Mesh) RemoveFace(h Handle) {
	if !m.IsFaceIndex(h) || m.faces[h].Removed {
		return
	}
	m.releaseFace(h)
}

func (m *Mesh) insertFace(a, b, c Handle) Handle {
	key := NewFaceKey(a, b, c)
	if f, ok := m.faceIndex[key]; ok {
		m.faces[f].Refs++
		for _, he := range m.faces[f].HalfEdge {
			m.halfEdges[he].Refs++
		}
		return f
	}

	hes := [3]Handle{m.ensureEdge(a, b), m.ensureEdge(b, c), m.ensureEdge(c, a)}
	f := Handle(len(m.faces))
	m.faces = append(m.faces, Face{HalfEdge: hes, Refs: 1})
	for _, he := range hes {
		m.halfEdges[he].Refs++
	}
	m.faceIndex[key] = f
	m.claimCycle(f)
	m.notifyFace(f, Added)

	return f
}

// claimCycle links the face cycle when none of its half-edges is owned by
// another live face. Otherwise the face stays detached.
func (m *Mesh) claimCycle(f Handle) {
	hes := m.faces[f].HalfEdge
	for _, he := range hes {
		if m.halfEdges[he].Face.Valid() {
			return
		}
	}
	for i := 0; i < 3; i++ {
		he := &m.halfEdges[hes[i]]
		he.Face = f
		he.Next = hes[(i+1)%3]
		he.Prev = hes[(i+2)%3]
	}
}

// releaseFace drops one citation of f. A face already released (its last
// citation dropped through RemoveFace while an element still listed it) is
// left alone.
func (m *Mesh) releaseFace(f Handle) {
	face := &m.faces[f]
	if face.Removed {
		return
	}
	if face.Refs > 0 {
		face.Refs--
	}
	for _, he := range face.HalfEdge {
		if m.halfEdges[he].Refs > 0 {
			m.halfEdges[he].Refs--
		}
	}

	if face.Refs == 0 {
		face.Removed = true
		delete(m.faceIndex, m.faceKey(f))
		for _, h := range face.HalfEdge {
			he := &m.halfEdges[h]
			if he.Face == f {
				he.Face, he.Next, he.Prev = InvalidHandle, InvalidHandle, InvalidHandle
			}
		}
		m.notifyFace(f, Removed)
	}

	for _, he := range face.HalfEdge {
		m.releaseEdgeIfUnused(he / 2)
	}
}

func (m *Mesh) faceKey(f Handle) FaceKey {
	hes := m.faces[f].HalfEdge
	return NewFaceKey(m.halfEdges[hes[0]].From, m.halfEdges[hes[1]].From, m.halfEdges[hes[2]].From)
}

// ensureEdge returns the half-edge from->to, allocating the opposite pair
// (2e, 2e+1) when the directed pair is unknown.
func (m *Mesh) ensureEdge(from, to Handle) Handle {
	if h, ok := m.halfEdgeIndex[NewHalfEdgeKey(from, to)]; ok {
		return h
	}

	h := Handle(len(m.halfEdges))
	m.halfEdges = append(m.halfEdges,
		HalfEdge{From: from, To: to, Face: InvalidHandle, Prev: InvalidHandle, Next: InvalidHandle, Opposite: h + 1},
		HalfEdge{From: to, To: from, Face: InvalidHandle, Prev: InvalidHandle, Next: InvalidHandle, Opposite: h},
	)
	m.halfEdgeIndex[NewHalfEdgeKey(from, to)] = h
	m.halfEdgeIndex[NewHalfEdgeKey(to, from)] = h + 1

	m.attachOutgoing(from, h)
	m.attachOutgoing(to, h+1)
	m.notifyEdge(h/2, Added)

	return h
}

// releaseEdgeIfUnused releases pair e once neither half-edge is cited.
func (m *Mesh) releaseEdgeIfUnused(e Handle) {
	a, b := &m.halfEdges[2*e], &m.halfEdges[2*e+1]
	if a.Removed || a.Refs > 0 || b.Refs > 0 {
		return
	}
	a.Removed, b.Removed = true, true
	delete(m.halfEdgeIndex, NewHalfEdgeKey(a.From, a.To))
	delete(m.halfEdgeIndex, NewHalfEdgeKey(b.From, b.To))
	m.detachOutgoing(a.From, 2*e)
	m.detachOutgoing(b.From, 2*e+1)
	m.notifyEdge(e, Removed)
}

func (m *Mesh) attachOutgoing(n, he Handle) {
	m.outgoing[n] = append(m.outgoing[n], he)
	if !m.nodes[n].OutHE.Valid() {
		m.nodes[n].OutHE = he
	}
}

func (m *Mesh) detachOutgoing(n, he Handle) {
	out := m.outgoing[n]
	for i, h := range out {
		if h == he {
			m.outgoing[n] = append(out[:i], out[i+1:]...)
			break
		}
	}
	if m.nodes[n].OutHE == he {
		m.nodes[n].OutHE = InvalidHandle
		if len(m.outgoing[n]) > 0 {
			m.nodes[n].OutHE = m.outgoing[n][0]
		}
	}
}
