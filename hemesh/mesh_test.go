package hemesh_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/korzen/tetcutter/hemesh"
)

// MeshSuite groups construction and lifecycle tests.
type MeshSuite struct {
	suite.Suite
	m *hemesh.Mesh
}

func (s *MeshSuite) SetupTest() {
	s.m = hemesh.CreateOneTet()
}

// TestOneTetCounts: 1 element, 4 faces, 6 edges, 4 nodes.
func (s *MeshSuite) TestOneTetCounts() {
	m := s.m
	require.Equal(s.T(), 1, m.CountElements())
	require.Equal(s.T(), 4, m.CountFaces())
	require.Equal(s.T(), 12, m.CountHalfEdges())
	require.Equal(s.T(), 6, m.CountEdges())
	require.Equal(s.T(), 4, m.CountNodes())
	require.True(s.T(), m.ElemAt(0).PosDet)
	RequireConsistent(s.T(), m)
}

// TestFaceCyclesClose: every face of a lone tet owns a closed 3-cycle.
func (s *MeshSuite) TestFaceCyclesClose() {
	m := s.m
	for f := 0; f < m.CountFaces(); f++ {
		h := m.FaceAt(hemesh.Handle(f)).HalfEdge[0]
		require.Equal(s.T(), hemesh.Handle(f), m.HalfEdgeAt(h).Face)
		require.Equal(s.T(), h, m.NextHalfEdge(m.NextHalfEdge(m.NextHalfEdge(h))), "face %d", f)
		require.Equal(s.T(), h, m.PrevHalfEdge(m.NextHalfEdge(h)))
	}
}

// TestFacesOppositeAndOutward: Faces[i] omits Nodes[i] and its normal points away from it.
func (s *MeshSuite) TestFacesOppositeAndOutward() {
	m := s.m
	el := m.ElemAt(0)
	for i, f := range el.Faces {
		nodes, ok := m.FaceNodes(f)
		require.True(s.T(), ok)
		require.NotContains(s.T(), nodes[:], el.Nodes[i])

		p0, p1, p2 := pos(m, nodes[0]), pos(m, nodes[1]), pos(m, nodes[2])
		normal := r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0))
		require.Greater(s.T(), r3.Dot(normal, r3.Sub(p0, pos(m, el.Nodes[i]))), 0.0, "face %d points inward", i)
	}
}

// TestElementHalfEdgesFollowEdgeMask: HalfEdge[i] runs along local edge i.
func (s *MeshSuite) TestElementHalfEdgesFollowEdgeMask() {
	m := s.m
	el := m.ElemAt(0)
	mask := hemesh.EdgeMask(true)
	for i, he := range el.HalfEdge {
		require.Equal(s.T(), el.Nodes[mask[i][0]], m.VertexFromHalfEdge(he), "edge %d", i)
		require.Equal(s.T(), el.Nodes[mask[i][1]], m.VertexToHalfEdge(he), "edge %d", i)
	}
}

// TestSharedFaceIsReused: gluing a second tet reuses the common face.
func (s *MeshSuite) TestSharedFaceIsReused() {
	m := MustTwoTets(s.T())
	require.Equal(s.T(), 2, m.CountElements())
	require.Equal(s.T(), 7, m.CountFaces())
	require.Equal(s.T(), 9, m.CountEdges())
	require.Equal(s.T(), 5, m.CountNodes())

	shared := m.FaceHandle(3, 1, 2)
	require.True(s.T(), shared.Valid())
	require.Equal(s.T(), uint32(2), m.FaceAt(shared).Refs)
	require.Equal(s.T(), shared, m.ElemAt(0).Faces[0])
	require.Equal(s.T(), shared, m.ElemAt(1).Faces[3])

	// each shared half-edge is cited by the shared face twice and by one more face of the second tet
	for _, he := range m.FaceAt(shared).HalfEdge {
		require.Equal(s.T(), uint32(3), m.HalfEdgeAt(he).Refs)
	}
	RequireConsistent(s.T(), m)
}

// TestInsertFaceBumpsRefs: re-inserting a face adds exactly one citation.
func (s *MeshSuite) TestInsertFaceBumpsRefs() {
	m := s.m
	f := m.FaceHandle(1, 2, 3)
	before := m.FaceAt(f)

	got, err := m.InsertFace([3]hemesh.Handle{2, 3, 1})
	require.NoError(s.T(), err)
	require.Equal(s.T(), f, got)
	require.Equal(s.T(), before.Refs+1, m.FaceAt(f).Refs)
	for _, he := range before.HalfEdge {
		require.Equal(s.T(), uint32(2), m.HalfEdgeAt(he).Refs)
	}

	m.RemoveFace(f)
	require.Equal(s.T(), before.Refs, m.FaceAt(f).Refs)
	RequireConsistent(s.T(), m)

	_, err = m.InsertFace([3]hemesh.Handle{1, 1, 2})
	require.ErrorIs(s.T(), err, hemesh.ErrOpFailed)
	_, err = m.InsertFace([3]hemesh.Handle{1, 2, 40})
	require.ErrorIs(s.T(), err, hemesh.ErrNodeNotFound)
}

// TestRemoveElementReleasesEverything: a lone tet leaves nothing live behind.
func (s *MeshSuite) TestRemoveElementReleasesEverything() {
	m := s.m
	m.RemoveElement(0)

	st := m.Stats()
	require.Equal(s.T(), 0, st.LiveElements)
	require.Equal(s.T(), 0, st.LiveFaces)
	require.Equal(s.T(), 0, st.LiveHalfEdges)
	require.Equal(s.T(), 1, m.CountElements(), "removed entries stay until GC")
	require.False(s.T(), m.FaceHandle(1, 2, 3).Valid())
	require.False(s.T(), m.HalfEdgeExists(0, 1))
	require.Empty(s.T(), m.OutgoingHalfEdges(0))
	require.False(s.T(), m.NodeAt(0).OutHE.Valid())
	RequireConsistent(s.T(), m)

	// second removal and bad handles are no-ops
	m.RemoveElement(0)
	m.RemoveElement(hemesh.InvalidHandle)
	require.Equal(s.T(), st, m.Stats())
}

// TestRemoveGluedElement: the shared face survives with one citation.
func (s *MeshSuite) TestRemoveGluedElement() {
	m := MustTwoTets(s.T())
	m.RemoveElement(1)

	shared := m.FaceHandle(1, 2, 3)
	require.True(s.T(), shared.Valid())
	require.Equal(s.T(), uint32(1), m.FaceAt(shared).Refs)
	require.False(s.T(), m.FaceHandle(2, 3, 4).Valid())
	for _, n := range []hemesh.Handle{1, 2, 3} {
		require.False(s.T(), m.HalfEdgeExists(n, 4))
	}
	require.Empty(s.T(), m.FirstRing(4))
	require.Equal(s.T(), []hemesh.Handle{1, 2, 3}, m.FirstRing(0))
	RequireConsistent(s.T(), m)
}

// TestGarbageCollection compacts and is idempotent.
func (s *MeshSuite) TestGarbageCollection() {
	m := MustTwoTets(s.T())
	m.RemoveElement(0)
	m.GarbageCollection()

	require.Equal(s.T(), 1, m.CountElements())
	require.Equal(s.T(), 4, m.CountFaces())
	require.Equal(s.T(), 6, m.CountEdges())
	require.Equal(s.T(), 5, m.CountNodes(), "nodes are never collected")
	require.Equal(s.T(), [4]hemesh.Handle{1, 2, 3, 4}, m.ElemAt(0).Nodes)
	RequireConsistent(s.T(), m)

	once := m.Stats()
	m.GarbageCollection()
	require.Equal(s.T(), once, m.Stats())
	RequireConsistent(s.T(), m)
}

// TestGarbageCollectionKeepsLooseEdges: cut edges survive with their refcounts.
func (s *MeshSuite) TestGarbageCollectionKeepsLooseEdges() {
	m := s.m
	np0, np1, err := m.CutEdge(MustEdge(s.T(), m, 0, 1), 0.5)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 8, m.CountEdges())

	m.GarbageCollection()
	require.Equal(s.T(), 8, m.CountEdges())
	require.Equal(s.T(), 6, m.CountNodes())
	require.True(s.T(), m.HalfEdgeExists(0, np0))
	require.True(s.T(), m.HalfEdgeExists(np1, 1))
	require.Zero(s.T(), m.HalfEdgeAt(m.HalfEdgeHandle(0, np0)).Refs)
	require.Equal(s.T(), np0, m.VertexFromHalfEdge(m.NodeAt(np0).OutHE))
	RequireConsistent(s.T(), m)
}

// TestGarbageCollectionKeepsCitedFaces: faces held only through InsertFace
// survive compaction with their refcounts.
func (s *MeshSuite) TestGarbageCollectionKeepsCitedFaces() {
	m := MustTwoTets(s.T())
	n := m.AddNode(r3.Vec{X: -1})
	loose, err := m.InsertFace([3]hemesh.Handle{0, 1, n})
	require.NoError(s.T(), err)
	_, err = m.InsertFace([3]hemesh.Handle{1, 2, 3})
	require.NoError(s.T(), err)
	require.NotEqual(s.T(), loose, m.HalfEdgeAt(m.HalfEdgeHandle(0, 1)).Face, "0->1 belongs to the tet")

	m.RemoveElement(0)
	require.Equal(s.T(), uint32(2), m.FaceAt(m.FaceHandle(1, 2, 3)).Refs)

	m.GarbageCollection()
	require.Equal(s.T(), 1, m.CountElements())
	require.Equal(s.T(), 5, m.CountFaces())
	require.Equal(s.T(), 9, m.CountEdges())

	f := m.FaceHandle(0, 1, n)
	require.True(s.T(), f.Valid())
	require.Equal(s.T(), uint32(1), m.FaceAt(f).Refs)
	require.Equal(s.T(), uint32(2), m.FaceAt(m.FaceHandle(1, 2, 3)).Refs)
	require.Contains(s.T(), m.ElemAt(0).Faces, m.FaceHandle(1, 2, 3))

	// the freed cycle is claimed by the loose face
	he := m.HalfEdgeHandle(0, 1)
	require.Equal(s.T(), f, m.HalfEdgeAt(he).Face)
	require.Equal(s.T(), m.HalfEdgeHandle(1, n), m.NextHalfEdge(he))
	RequireConsistent(s.T(), m)

	once := m.Stats()
	m.GarbageCollection()
	require.Equal(s.T(), once, m.Stats())
	require.Equal(s.T(), f, m.FaceHandle(0, 1, n))
}

// TestInsertElementRejects covers the failing inputs; none mutates the mesh.
func (s *MeshSuite) TestInsertElementRejects() {
	m := s.m
	before := m.Stats()

	_, err := m.InsertElement([4]hemesh.Handle{0, 1, 1, 3})
	require.ErrorIs(s.T(), err, hemesh.ErrOpFailed)

	_, err = m.InsertElement([4]hemesh.Handle{0, 1, 2, 9})
	require.ErrorIs(s.T(), err, hemesh.ErrNodeNotFound)
	require.Equal(s.T(), hemesh.CodeNodeNotFound, hemesh.Code(err))

	flat := m.AddNode(r3.Vec{X: 1, Y: 1})
	_, err = m.InsertElement([4]hemesh.Handle{0, 1, 2, flat})
	require.ErrorIs(s.T(), err, hemesh.ErrOpFailed, "coplanar nodes are degenerate")

	after := m.Stats()
	after.Nodes--
	require.Equal(s.T(), before, after)
}

// TestDegenerateElementsAllowed: the option lets flat elements through.
func (s *MeshSuite) TestDegenerateElementsAllowed() {
	m, err := hemesh.NewFromBuffers(
		[]float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0},
		[]uint32{0, 1, 2, 3},
		hemesh.WithDegenerateElements(true),
	)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, m.Stats().LiveElements)
}

// TestNegativeOrientation: a flipped tet keeps its orientation and still links cleanly.
func (s *MeshSuite) TestNegativeOrientation() {
	m, err := hemesh.NewFromBuffers(unitTetVertices, []uint32{0, 2, 1, 3})
	require.NoError(s.T(), err)

	el := m.ElemAt(0)
	require.False(s.T(), el.PosDet)
	mask := hemesh.EdgeMask(false)
	for i, he := range el.HalfEdge {
		require.Equal(s.T(), el.Nodes[mask[i][0]], m.VertexFromHalfEdge(he))
	}
	RequireConsistent(s.T(), m)
}

// TestNewFromBuffers covers empty and malformed buffers.
func (s *MeshSuite) TestNewFromBuffers() {
	m, err := hemesh.NewFromBuffers(unitTetVertices, nil)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 4, m.CountNodes())
	require.Equal(s.T(), 0, m.CountElements())

	_, err = hemesh.NewFromBuffers([]float64{0, 0}, nil)
	require.ErrorIs(s.T(), err, hemesh.ErrOpFailed)

	_, err = hemesh.NewFromBuffers(unitTetVertices, []uint32{0, 1, 2})
	require.ErrorIs(s.T(), err, hemesh.ErrOpFailed)

	_, err = hemesh.NewFromBuffers(unitTetVertices, []uint32{0, 1, 2, 7})
	require.ErrorIs(s.T(), err, hemesh.ErrNodeNotFound)
	require.Contains(s.T(), err.Error(), "element 0")
}

// TestBuffersRoundTrip: exported buffers rebuild an equivalent mesh.
func (s *MeshSuite) TestBuffersRoundTrip() {
	m := MustTwoTets(s.T())
	m.RemoveElement(0)

	verts, elems := m.Buffers()
	require.Len(s.T(), verts, 15)
	require.Equal(s.T(), []uint32{1, 2, 3, 4}, elems)

	back, err := hemesh.NewFromBuffers(verts, elems)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, back.CountElements())
	require.Equal(s.T(), 4, back.CountFaces())
}

// TestCloneIsDeep: mutating the clone leaves the source intact.
func (s *MeshSuite) TestCloneIsDeep() {
	c := s.m.Clone()
	c.RemoveElement(0)
	require.NoError(s.T(), c.SetNodePos(0, r3.Vec{X: 5}))

	require.True(s.T(), s.m.IsLiveElement(0))
	require.Equal(s.T(), r3.Vec{}, pos(s.m, 0))
	require.True(s.T(), s.m.HalfEdgeExists(0, 1))
	RequireConsistent(s.T(), s.m)
	RequireConsistent(s.T(), c)
}

// TestCleanup empties the mesh.
func (s *MeshSuite) TestCleanup() {
	s.m.Cleanup()
	require.Equal(s.T(), hemesh.MeshStats{}, s.m.Stats())
	require.False(s.T(), s.m.HalfEdgeExists(0, 1))
}

func TestMeshSuite(t *testing.T) {
	suite.Run(t, new(MeshSuite))
}
