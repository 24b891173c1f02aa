// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only facade: counts, index checks, accessors, callback slots.
// Policy:
//   - No mutation of topology here (SetNodePos only moves a node).
//   - Accessors return value snapshots; callers validate handles with Is*Index first.

package hemesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// CountElements returns the size of the element slice, removed entries included.
func (m *Mesh) CountElements() int { return len(m.elements) }

// CountFaces returns the size of the face slice, removed entries included.
func (m *Mesh) CountFaces() int { return len(m.faces) }

// CountHalfEdges returns the size of the half-edge slice, released pairs included.
func (m *Mesh) CountHalfEdges() int { return len(m.halfEdges) }

// CountEdges returns CountHalfEdges()/2.
func (m *Mesh) CountEdges() int { return len(m.halfEdges) / 2 }

// CountNodes returns the number of nodes.
func (m *Mesh) CountNodes() int { return len(m.nodes) }

// IsElemIndex reports whether h is within the element slice.
func (m *Mesh) IsElemIndex(h Handle) bool { return int64(h) < int64(len(m.elements)) }

// IsFaceIndex reports whether h is within the face slice.
func (m *Mesh) IsFaceIndex(h Handle) bool { return int64(h) < int64(len(m.faces)) }

// IsHalfEdgeIndex reports whether h is within the half-edge slice.
func (m *Mesh) IsHalfEdgeIndex(h Handle) bool { return int64(h) < int64(len(m.halfEdges)) }

// IsEdgeIndex reports whether e addresses a half-edge pair.
func (m *Mesh) IsEdgeIndex(e Handle) bool { return int64(e) < int64(m.CountEdges()) }

// IsNodeIndex reports whether h is within the node slice.
func (m *Mesh) IsNodeIndex(h Handle) bool { return int64(h) < int64(len(m.nodes)) }

// IsLiveElement reports whether h addresses an element that is not removed.
func (m *Mesh) IsLiveElement(h Handle) bool {
	return m.IsElemIndex(h) && !m.elements[h].Removed
}

// IsLiveEdge reports whether e addresses a pair that has not been released.
func (m *Mesh) IsLiveEdge(e Handle) bool {
	return m.IsEdgeIndex(e) && !m.halfEdges[2*e].Removed
}

// ElemAt returns a snapshot of element h. h must satisfy IsElemIndex.
func (m *Mesh) ElemAt(h Handle) Element { return m.elements[h] }

// FaceAt returns a snapshot of face h. h must satisfy IsFaceIndex.
func (m *Mesh) FaceAt(h Handle) Face { return m.faces[h] }

// HalfEdgeAt returns a snapshot of half-edge h. h must satisfy IsHalfEdgeIndex.
func (m *Mesh) HalfEdgeAt(h Handle) HalfEdge { return m.halfEdges[h] }

// NodeAt returns a snapshot of node h. h must satisfy IsNodeIndex.
func (m *Mesh) NodeAt(h Handle) Node { return m.nodes[h] }

// EdgeAt synthesizes the edge e from the half-edge pair (2e, 2e+1).
// e must satisfy IsEdgeIndex.
func (m *Mesh) EdgeAt(e Handle) Edge {
	return edgeOf(&m.halfEdges[2*e], &m.halfEdges[2*e+1])
}

func edgeOf(a, b *HalfEdge) Edge {
	return Edge{From: a.From, To: a.To, LeftFace: a.Face, RightFace: b.Face}
}

// SetNodePos moves node h to pos without touching its rest position.
func (m *Mesh) SetNodePos(h Handle, pos r3.Vec) error {
	if !m.IsNodeIndex(h) {
		return fmt.Errorf("%w: node %d", ErrNodeNotFound, h)
	}
	m.nodes[h].Pos = pos

	return nil
}

// LiveElements returns the handles of all elements not marked removed,
// in ascending order.
// Complexity: O(E)
func (m *Mesh) LiveElements() []Handle {
	out := make([]Handle, 0, len(m.elements))
	for i := range m.elements {
		if !m.elements[i].Removed {
			out = append(out, Handle(i))
		}
	}

	return out
}

// SetOnNodeEventCallback installs the node notification slot (nil clears it).
func (m *Mesh) SetOnNodeEventCallback(f NodeEventFunc) { m.onNode = f }

// SetOnEdgeEventCallback installs the edge notification slot (nil clears it).
func (m *Mesh) SetOnEdgeEventCallback(f EdgeEventFunc) { m.onEdge = f }

// SetOnFaceEventCallback installs the face notification slot (nil clears it).
func (m *Mesh) SetOnFaceEventCallback(f FaceEventFunc) { m.onFace = f }

// SetOnElemEventCallback installs the element notification slot (nil clears it).
func (m *Mesh) SetOnElemEventCallback(f ElementEventFunc) { m.onElement = f }

func (m *Mesh) notifyNode(h Handle, ev TopologyEvent) {
	if m.onNode != nil {
		m.onNode(m.nodes[h], h, ev)
	}
}

func (m *Mesh) notifyEdge(e Handle, ev TopologyEvent) {
	if m.onEdge != nil {
		m.onEdge(m.EdgeAt(e), e, ev)
	}
}

func (m *Mesh) notifyFace(h Handle, ev TopologyEvent) {
	if m.onFace != nil {
		m.onFace(m.faces[h], h, ev)
	}
}

func (m *Mesh) notifyElement(h Handle, ev TopologyEvent) {
	if m.onElement != nil {
		m.onElement(m.elements[h], h, ev)
	}
}

// MeshStats is a snapshot of slice sizes and live entity counts.
type MeshStats struct {
	Elements, LiveElements   int
	Faces, LiveFaces         int
	HalfEdges, LiveHalfEdges int
	Nodes                    int
}

// Stats scans the mesh once and returns live/total counts.
// Complexity: O(E + F + H)
func (m *Mesh) Stats() MeshStats {
	s := MeshStats{
		Elements:  len(m.elements),
		Faces:     len(m.faces),
		HalfEdges: len(m.halfEdges),
		Nodes:     len(m.nodes),
	}
	for i := range m.elements {
		if !m.elements[i].Removed {
			s.LiveElements++
		}
	}
	for i := range m.faces {
		if !m.faces[i].Removed {
			s.LiveFaces++
		}
	}
	for i := range m.halfEdges {
		if !m.halfEdges[i].Removed {
			s.LiveHalfEdges++
		}
	}

	return s
}

// String summarizes live and total entity counts.
func (m *Mesh) String() string {
	s := m.Stats()
	return fmt.Sprintf("hemesh: elements=%d/%d faces=%d/%d halfedges=%d/%d nodes=%d",
		s.LiveElements, s.Elements, s.LiveFaces, s.Faces, s.LiveHalfEdges, s.HalfEdges, s.Nodes)
}
