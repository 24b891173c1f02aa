package hemesh_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/korzen/tetcutter/hemesh"
)

type eventCounter struct {
	added, removed map[string]int
}

func newEventCounter(m *hemesh.Mesh) *eventCounter {
	c := &eventCounter{added: map[string]int{}, removed: map[string]int{}}
	count := func(kind string, ev hemesh.TopologyEvent) {
		if ev == hemesh.Added {
			c.added[kind]++
		} else {
			c.removed[kind]++
		}
	}
	m.SetOnNodeEventCallback(func(_ hemesh.Node, _ hemesh.Handle, ev hemesh.TopologyEvent) { count("node", ev) })
	m.SetOnEdgeEventCallback(func(_ hemesh.Edge, _ hemesh.Handle, ev hemesh.TopologyEvent) { count("edge", ev) })
	m.SetOnFaceEventCallback(func(_ hemesh.Face, _ hemesh.Handle, ev hemesh.TopologyEvent) { count("face", ev) })
	m.SetOnElemEventCallback(func(_ hemesh.Element, _ hemesh.Handle, ev hemesh.TopologyEvent) { count("elem", ev) })

	return c
}

// TestCallbacksFireOnce: one notification per created or released entity.
func TestCallbacksFireOnce(t *testing.T) {
	m := hemesh.New()
	c := newEventCounter(m)
	require.NoError(t, m.Setup(unitTetVertices, []uint32{0, 1, 2, 3}))
	require.Equal(t, map[string]int{"node": 4, "edge": 6, "face": 4, "elem": 1}, c.added)
	require.Empty(t, c.removed)

	m.RemoveElement(0)
	require.Equal(t, map[string]int{"edge": 6, "face": 4, "elem": 1}, c.removed)

	// garbage collection is silent
	m.GarbageCollection()
	require.Equal(t, 1, c.added["elem"])
	require.Equal(t, 1, c.removed["elem"])
}

// TestCallbacksOnReuse: a reused face is not announced again.
func TestCallbacksOnReuse(t *testing.T) {
	m := hemesh.CreateOneTet()
	c := newEventCounter(m)
	n := m.AddNode(r3.Vec{X: 1, Y: 1, Z: 1})
	_, err := m.InsertElement([4]hemesh.Handle{1, 2, 3, n})
	require.NoError(t, err)

	require.Equal(t, map[string]int{"node": 1, "edge": 3, "face": 3, "elem": 1}, c.added)
}

// TestRemoveFaceThenElement: a face released early through RemoveFace is
// skipped when its element goes, and a face re-inserted under the same key
// stays indexed.
func TestRemoveFaceThenElement(t *testing.T) {
	m := hemesh.CreateOneTet()
	c := newEventCounter(m)
	old := m.FaceHandle(1, 2, 3)
	m.RemoveFace(old)
	require.True(t, m.FaceAt(old).Removed)
	require.Equal(t, 1, c.removed["face"])

	fresh, err := m.InsertFace([3]hemesh.Handle{1, 2, 3})
	require.NoError(t, err)
	require.NotEqual(t, old, fresh)

	m.RemoveElement(0)
	require.Equal(t, 4, c.removed["face"], "one notification per face")
	require.Equal(t, fresh, m.FaceHandle(1, 2, 3))
	require.False(t, m.FaceAt(fresh).Removed)
	require.Equal(t, uint32(1), m.FaceAt(fresh).Refs)
	for _, he := range m.FaceAt(fresh).HalfEdge {
		require.Equal(t, uint32(1), m.HalfEdgeAt(he).Refs)
	}
	require.Equal(t, 6, m.Stats().LiveHalfEdges)
	RequireConsistent(t, m)

	m.GarbageCollection()
	require.Equal(t, 1, m.CountFaces())
	require.Equal(t, 3, m.CountEdges())
	RequireConsistent(t, m)
}

// TestCallbackSnapshot: the edge notification carries its endpoints.
func TestCallbackSnapshot(t *testing.T) {
	m := hemesh.CreateOneTet()
	var got []hemesh.Edge
	m.SetOnEdgeEventCallback(func(e hemesh.Edge, _ hemesh.Handle, ev hemesh.TopologyEvent) {
		require.Equal(t, hemesh.Added, ev)
		got = append(got, e)
	})
	np0, np1, err := m.CutEdge(MustEdge(t, m, 0, 1), 0.5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, hemesh.Handle(0), got[0].From)
	require.Equal(t, np0, got[0].To)
	require.Equal(t, np1, got[1].From)
	require.Equal(t, hemesh.Handle(1), got[1].To)
	require.Equal(t, hemesh.InvalidHandle, got[0].LeftFace, "cut edges belong to no face")
}

// TestKeys: face keys ignore winding, half-edge keys do not.
func TestKeys(t *testing.T) {
	require.Equal(t, hemesh.NewFaceKey(1, 2, 3), hemesh.NewFaceKey(3, 1, 2))
	require.Equal(t, hemesh.NewFaceKey(1, 2, 3), hemesh.NewFaceKey(2, 3, 1))
	require.Equal(t, [3]hemesh.Handle{1, 2, 3}, hemesh.NewFaceKey(3, 2, 1).Nodes())

	top := hemesh.Handle(hemesh.MaxNodes - 1)
	require.Equal(t, [3]hemesh.Handle{0, 5, top}, hemesh.NewFaceKey(top, 0, 5).Nodes())
	require.NotEqual(t, hemesh.NewFaceKey(0, 1, top), hemesh.NewFaceKey(0, 1, top-1))

	require.NotEqual(t, hemesh.NewHalfEdgeKey(1, 2), hemesh.NewHalfEdgeKey(2, 1))
	from, to := hemesh.NewHalfEdgeKey(7, math.MaxUint32-1).Nodes()
	require.Equal(t, hemesh.Handle(7), from)
	require.Equal(t, hemesh.Handle(math.MaxUint32-1), to)
}

// TestMasksAreCopies: mutating a returned table leaves the mesh tables intact.
func TestMasksAreCopies(t *testing.T) {
	em := hemesh.EdgeMask(true)
	em[0] = [2]int{3, 3}
	fm := hemesh.FaceMask(false)
	fm[0] = [3]int{0, 0, 0}

	require.Equal(t, [2]int{1, 2}, hemesh.EdgeMask(true)[0])
	require.Equal(t, [3]int{3, 2, 1}, hemesh.FaceMask(false)[0])
	lo, hi := hemesh.LocalEdge(0)
	require.Equal(t, [2]int{1, 2}, [2]int{lo, hi})

	m, err := hemesh.NewFromBuffers(unitTetVertices, []uint32{0, 1, 2, 3})
	require.NoError(t, err)
	RequireConsistent(t, m)
}

// TestLocalEdge orders endpoints ascending.
func TestLocalEdge(t *testing.T) {
	want := [6][2]int{{1, 2}, {2, 3}, {1, 3}, {0, 2}, {0, 3}, {0, 1}}
	for i := 0; i < 6; i++ {
		lo, hi := hemesh.LocalEdge(i)
		require.Equal(t, want[i], [2]int{lo, hi})
	}
}

// TestTraversalOnBadHandles never panics.
func TestTraversalOnBadHandles(t *testing.T) {
	m := hemesh.CreateOneTet()
	bad := hemesh.Handle(1000)
	require.Equal(t, hemesh.InvalidHandle, m.NextHalfEdge(bad))
	require.Equal(t, hemesh.InvalidHandle, m.PrevHalfEdge(hemesh.InvalidHandle))
	require.Equal(t, hemesh.InvalidHandle, m.OppositeHalfEdge(bad))
	require.Equal(t, hemesh.InvalidHandle, m.VertexFromHalfEdge(bad))
	require.Equal(t, hemesh.InvalidHandle, m.VertexToHalfEdge(bad))
	require.Equal(t, hemesh.InvalidHandle, m.HalfEdgeHandle(0, bad))
	require.Equal(t, hemesh.InvalidHandle, m.HalfEdgeFromEdge(hemesh.InvalidHandle, 0))
	require.Equal(t, hemesh.InvalidHandle, m.HalfEdgeFromEdge(bad, 1))
	require.Equal(t, hemesh.InvalidHandle, m.HalfEdgeFromEdge(6, 0))
	require.Equal(t, hemesh.InvalidHandle, m.EdgeFromHalfEdge(hemesh.InvalidHandle))
	require.Equal(t, hemesh.InvalidHandle, m.EdgeFromHalfEdge(12))
	require.Equal(t, hemesh.Handle(11), m.HalfEdgeFromEdge(5, 1))
	require.Equal(t, hemesh.Handle(5), m.EdgeFromHalfEdge(11))
	require.Nil(t, m.FirstRing(bad))
	require.Nil(t, m.OutgoingHalfEdges(bad))
	require.Nil(t, m.IncomingHalfEdges(bad))
	require.Nil(t, m.ElementsAroundEdge(bad))
	_, ok := m.FaceNodes(bad)
	require.False(t, ok)
	require.False(t, m.IsLiveElement(bad))
	require.ErrorIs(t, m.SetNodePos(bad, r3.Vec{}), hemesh.ErrNodeNotFound)
}

// TestIncomingOutgoing: every node of a tet has three of each.
func TestIncomingOutgoing(t *testing.T) {
	m := hemesh.CreateOneTet()
	for n := hemesh.Handle(0); n < 4; n++ {
		out, in := m.OutgoingHalfEdges(n), m.IncomingHalfEdges(n)
		require.Len(t, out, 3)
		require.Len(t, in, 3)
		for _, h := range out {
			require.Equal(t, n, m.VertexFromHalfEdge(h))
		}
		for _, h := range in {
			require.Equal(t, n, m.VertexToHalfEdge(h))
		}
		require.Contains(t, out, m.NodeAt(n).OutHE)
	}
	require.Equal(t, m.HalfEdgeFromEdge(2, 1), m.OppositeHalfEdge(m.HalfEdgeFromEdge(2, 0)))
	require.Equal(t, hemesh.Handle(2), m.EdgeFromHalfEdge(m.HalfEdgeFromEdge(2, 1)))
}

// TestErrorCodes maps wrapped sentinels.
func TestErrorCodes(t *testing.T) {
	require.Equal(t, hemesh.CodeOK, hemesh.Code(nil))
	require.Equal(t, hemesh.CodeElemNotFound, hemesh.Code(hemesh.ErrElemNotFound))
	require.Equal(t, hemesh.CodeFaceNotFound, hemesh.Code(hemesh.ErrFaceNotFound))
	require.Equal(t, hemesh.CodeOpFailed, hemesh.Code(errors.New("other")))
}

// TestGeometry covers AABB, Displace and Centroid.
func TestGeometry(t *testing.T) {
	require.Equal(t, r3.Box{}, hemesh.New().AABB())

	m := hemesh.CreateOneTet()
	require.Equal(t, r3.Box{Max: r3.Vec{X: 1, Y: 1, Z: 1}}, m.AABB())
	require.Equal(t, r3.Vec{X: 0.25, Y: 0.25, Z: 0.25}, m.Centroid([]hemesh.Handle{0, 1, 2, 3}))
	require.InDelta(t, 1.0, m.ComputeDeterminant([4]hemesh.Handle{0, 1, 2, 3}), 1e-12)

	u := make([]float64, 12)
	u[3] = 2 // node 1 moves along x
	require.NoError(t, m.Displace(u))
	require.Equal(t, r3.Vec{X: 3}, pos(m, 1))
	require.Equal(t, r3.Vec{X: 1}, m.NodeAt(1).RestPos)
	require.ErrorIs(t, m.Displace(u[:5]), hemesh.ErrOpFailed)
}

// TestString reports live and total counts.
func TestString(t *testing.T) {
	m := hemesh.CreateOneTet()
	require.Equal(t, "hemesh: elements=1/1 faces=4/4 halfedges=12/12 nodes=4", m.String())
}

// TestElementEdge uses the positive numbering for both orientations.
func TestElementEdge(t *testing.T) {
	for _, elems := range [][]uint32{{0, 1, 2, 3}, {0, 2, 1, 3}} {
		m, err := hemesh.NewFromBuffers(unitTetVertices, elems)
		require.NoError(t, err)
		el := m.ElemAt(0)
		for i := 0; i < 6; i++ {
			lo, hi := hemesh.LocalEdge(i)
			e := m.ElementEdge(0, i)
			require.True(t, e.Valid())
			ed := m.EdgeAt(e)
			require.ElementsMatch(t, []hemesh.Handle{el.Nodes[lo], el.Nodes[hi]}, []hemesh.Handle{ed.From, ed.To})
		}
		require.Equal(t, hemesh.InvalidHandle, m.ElementEdge(0, 6))
		require.Equal(t, hemesh.InvalidHandle, m.ElementEdge(5, 0))
	}
}
