package hemesh

import "fmt"

// CheckKeys verifies that both lookup maps agree with the entity slices and
// that the pairing and cycle invariants hold:
//
//   - every live face is indexed under its canonical key and vice versa;
//   - every live half-edge is indexed under (From, To) and vice versa;
//   - Opposite(Opposite(h)) == h and From(h) == To(Opposite(h));
//   - every owned half-edge lies on a closed 3-cycle of its face;
//   - every node's outgoing list holds exactly its live outgoing half-edges.
//
// The first violation found is returned wrapped in ErrOpFailed.
// Complexity: O(V + F + H)
func (m *Mesh) CheckKeys() error {
	for key, f := range m.faceIndex {
		if !m.IsFaceIndex(f) || m.faces[f].Removed {
			return fmt.Errorf("%w: face key %#x maps to dead face %d", ErrOpFailed, uint64(key), f)
		}
		if got := m.faceKey(f); got != key {
			return fmt.Errorf("%w: face %d indexed under %#x, key is %#x", ErrOpFailed, f, uint64(key), uint64(got))
		}
	}
	for i := range m.faces {
		f := Handle(i)
		if m.faces[i].Removed {
			continue
		}
		if got, ok := m.faceIndex[m.faceKey(f)]; !ok || got != f {
			return fmt.Errorf("%w: live face %d missing from face map", ErrOpFailed, f)
		}
	}

	for key, h := range m.halfEdgeIndex {
		from, to := key.Nodes()
		if !m.IsHalfEdgeIndex(h) || m.halfEdges[h].Removed {
			return fmt.Errorf("%w: half-edge key (%d,%d) maps to dead half-edge %d", ErrOpFailed, from, to, h)
		}
		if he := m.halfEdges[h]; he.From != from || he.To != to {
			return fmt.Errorf("%w: half-edge %d indexed under (%d,%d)", ErrOpFailed, h, from, to)
		}
	}

	live := 0
	for i := range m.halfEdges {
		h := Handle(i)
		he := m.halfEdges[i]
		if he.Removed {
			continue
		}
		live++
		if got, ok := m.halfEdgeIndex[NewHalfEdgeKey(he.From, he.To)]; !ok || got != h {
			return fmt.Errorf("%w: live half-edge %d missing from half-edge map", ErrOpFailed, h)
		}
		op := m.halfEdges[he.Opposite]
		if op.Opposite != h || op.To != he.From || op.From != he.To {
			return fmt.Errorf("%w: half-edge %d is not paired with %d", ErrOpFailed, h, he.Opposite)
		}
		if !he.Face.Valid() {
			continue
		}
		next := m.halfEdges[he.Next]
		if next.Prev != h || next.Face != he.Face || next.From != he.To {
			return fmt.Errorf("%w: half-edge %d breaks the cycle of face %d", ErrOpFailed, h, he.Face)
		}
		if m.NextHalfEdge(m.NextHalfEdge(he.Next)) != h {
			return fmt.Errorf("%w: cycle of face %d through %d is not a triangle", ErrOpFailed, he.Face, h)
		}
	}

	outs := 0
	for n, out := range m.outgoing {
		for _, h := range out {
			if m.halfEdges[h].Removed || m.halfEdges[h].From != Handle(n) {
				return fmt.Errorf("%w: node %d lists foreign half-edge %d", ErrOpFailed, n, h)
			}
		}
		outs += len(out)
	}
	if outs != live {
		return fmt.Errorf("%w: outgoing lists hold %d half-edges, %d are live", ErrOpFailed, outs, live)
	}

	return nil
}
