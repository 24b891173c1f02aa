package hemesh_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/korzen/tetcutter/hemesh"
)

// unitTetVertices is the canonical positively oriented unit tetrahedron.
var unitTetVertices = []float64{
	0, 0, 0,
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

// MustTwoTets builds two tetrahedra glued along face {1,2,3}.
func MustTwoTets(t *testing.T) *hemesh.Mesh {
	t.Helper()
	verts := append(append([]float64(nil), unitTetVertices...), 1, 1, 1)
	m, err := hemesh.NewFromBuffers(verts, []uint32{0, 1, 2, 3, 1, 2, 3, 4})
	require.NoError(t, err)

	return m
}

// MustEdge returns the edge joining a and b, failing the test if absent.
func MustEdge(t *testing.T, m *hemesh.Mesh, a, b hemesh.Handle) hemesh.Handle {
	t.Helper()
	h := m.HalfEdgeHandle(a, b)
	require.True(t, h.Valid(), "no half-edge %d->%d", a, b)

	return m.EdgeFromHalfEdge(h)
}

// RequireConsistent checks map coherence and the pairing invariant.
func RequireConsistent(t *testing.T, m *hemesh.Mesh) {
	t.Helper()
	require.NoError(t, m.CheckKeys())
	require.Equal(t, m.CountHalfEdges(), 2*m.CountEdges())
	for i := 0; i < m.CountHalfEdges(); i++ {
		h := hemesh.Handle(i)
		op := m.OppositeHalfEdge(h)
		require.Equal(t, h, m.OppositeHalfEdge(op), "pairing of %d", h)
		require.Equal(t, m.VertexFromHalfEdge(h), m.VertexToHalfEdge(op))
	}
}

// liveVolume sums the absolute determinants of the live elements.
func liveVolume(m *hemesh.Mesh) float64 {
	var sum float64
	for _, h := range m.LiveElements() {
		d := m.ComputeDeterminant(m.ElemAt(h).Nodes)
		if d < 0 {
			d = -d
		}
		sum += d
	}

	return sum
}

func pos(m *hemesh.Mesh, n hemesh.Handle) r3.Vec { return m.NodeAt(n).Pos }
