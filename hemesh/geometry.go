package hemesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ElementDeterminant returns (v1-v0) . ((v2-v0) x (v3-v0)), six times the
// signed volume of the tetrahedron.
func ElementDeterminant(v [4]r3.Vec) float64 {
	a := r3.Sub(v[1], v[0])
	b := r3.Sub(v[2], v[0])
	c := r3.Sub(v[3], v[0])

	return r3.Dot(a, r3.Cross(b, c))
}

// ComputeDeterminant evaluates ElementDeterminant over the current positions
// of four nodes. Handles must be valid.
func (m *Mesh) ComputeDeterminant(nodes [4]Handle) float64 {
	var v [4]r3.Vec
	for i, n := range nodes {
		v[i] = m.nodes[n].Pos
	}
	return ElementDeterminant(v)
}

// AABB returns the axis-aligned bounding box of all node positions.
// An empty mesh yields the zero box.
// Complexity: O(V)
func (m *Mesh) AABB() r3.Box {
	if len(m.nodes) == 0 {
		return r3.Box{}
	}
	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, n := range m.nodes {
		lo.X, hi.X = math.Min(lo.X, n.Pos.X), math.Max(hi.X, n.Pos.X)
		lo.Y, hi.Y = math.Min(lo.Y, n.Pos.Y), math.Max(hi.Y, n.Pos.Y)
		lo.Z, hi.Z = math.Min(lo.Z, n.Pos.Z), math.Max(hi.Z, n.Pos.Z)
	}

	return r3.Box{Min: lo, Max: hi}
}

// Displace adds one 3D offset per node (flat, 3 floats per node) to the
// current positions. Rest positions are untouched.
func (m *Mesh) Displace(u []float64) error {
	if len(u) != 3*len(m.nodes) {
		return fmt.Errorf("%w: displacement length %d, want %d", ErrOpFailed, len(u), 3*len(m.nodes))
	}
	for i := range m.nodes {
		m.nodes[i].Pos = r3.Add(m.nodes[i].Pos, r3.Vec{X: u[3*i], Y: u[3*i+1], Z: u[3*i+2]})
	}

	return nil
}

// Centroid returns the mean of the current positions of the given nodes.
func (m *Mesh) Centroid(nodes []Handle) r3.Vec {
	var c r3.Vec
	if len(nodes) == 0 {
		return c
	}
	for _, n := range nodes {
		c = r3.Add(c, m.nodes[n].Pos)
	}
	return r3.Scale(1/float64(len(nodes)), c)
}
