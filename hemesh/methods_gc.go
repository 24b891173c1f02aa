// File: methods_gc.go
// Role: Compaction of removed elements, faces and half-edge pairs.

package hemesh

import "log/slog"

// GarbageCollection compacts elements, faces and half-edges, dropping every
// entry marked removed and keeping every live one with its reference count,
// including faces cited only through InsertFace and loose edges left by
// CutEdge. Survivors keep their relative order. Both lookup maps and the
// outgoing lists are rebuilt, and live faces whose half-edges were freed by a
// released neighbour claim their cycle again.
//
// Nodes are kept, so node handles survive; every other handle issued before
// the call is invalid afterwards. No notifications are fired.
//
// Calling it twice in a row leaves the mesh unchanged.
// Complexity: O(V + E + F + H)
func (m *Mesh) GarbageCollection() {
	before := m.Stats()

	// half-edge pairs move together: old 2e+k becomes 2e'+k
	heMap := make([]Handle, len(m.halfEdges))
	halfEdges := make([]HalfEdge, 0, before.LiveHalfEdges)
	for e := 0; e+1 < len(m.halfEdges); e += 2 {
		if m.halfEdges[e].Removed {
			heMap[e], heMap[e+1] = InvalidHandle, InvalidHandle
			continue
		}
		h := Handle(len(halfEdges))
		heMap[e], heMap[e+1] = h, h+1
		halfEdges = append(halfEdges, m.halfEdges[e], m.halfEdges[e+1])
	}

	faceMap := make([]Handle, len(m.faces))
	faces := make([]Face, 0, before.LiveFaces)
	for i, f := range m.faces {
		if f.Removed {
			faceMap[i] = InvalidHandle
			continue
		}
		faceMap[i] = Handle(len(faces))
		for k, he := range f.HalfEdge {
			f.HalfEdge[k] = heMap[he]
		}
		faces = append(faces, f)
	}

	elements := make([]Element, 0, before.LiveElements)
	for _, el := range m.elements {
		if el.Removed {
			continue
		}
		for k, f := range el.Faces {
			el.Faces[k] = remap(faceMap, f)
		}
		for k, he := range el.HalfEdge {
			el.HalfEdge[k] = remap(heMap, he)
		}
		elements = append(elements, el)
	}

	for i := range halfEdges {
		he := &halfEdges[i]
		he.Opposite = Handle(i) ^ 1
		he.Face = remap(faceMap, he.Face)
		he.Next = remap(heMap, he.Next)
		he.Prev = remap(heMap, he.Prev)
		if !he.Face.Valid() {
			he.Next, he.Prev = InvalidHandle, InvalidHandle
		}
	}

	m.elements, m.faces, m.halfEdges = elements, faces, halfEdges
	m.faceIndex = make(map[FaceKey]Handle, len(faces))
	m.halfEdgeIndex = make(map[HalfEdgeKey]Handle, len(halfEdges))
	for i := range m.halfEdges {
		he := m.halfEdges[i]
		m.halfEdgeIndex[NewHalfEdgeKey(he.From, he.To)] = Handle(i)
	}
	for i := range m.faces {
		m.faceIndex[m.faceKey(Handle(i))] = Handle(i)
	}

	for i := range m.nodes {
		m.nodes[i].OutHE = remap(heMap, m.nodes[i].OutHE)
		m.outgoing[i] = m.outgoing[i][:0]
	}
	for i := range m.halfEdges {
		from := m.halfEdges[i].From
		m.outgoing[from] = append(m.outgoing[from], Handle(i))
	}
	for i := range m.nodes {
		if !m.nodes[i].OutHE.Valid() && len(m.outgoing[i]) > 0 {
			m.nodes[i].OutHE = m.outgoing[i][0]
		}
	}

	for i := range m.faces {
		m.claimCycle(Handle(i))
	}

	m.logger.Debug("garbage collection",
		slog.Int("elements_dropped", before.Elements-len(m.elements)),
		slog.Int("faces_dropped", before.Faces-len(m.faces)),
		slog.Int("halfedges_dropped", before.HalfEdges-len(m.halfEdges)),
	)
}

// remap translates an old handle through a compaction table.
func remap(table []Handle, h Handle) Handle {
	if int64(h) >= int64(len(table)) {
		return InvalidHandle
	}
	return table[h]
}
