// Package vbuf mirrors a hemesh.Mesh into float32 buffers a renderer can
// upload directly: one mgl32.Vec3 per node and an index list of the boundary
// triangles, wound outward.
//
// A Mirror follows the mesh through its notification slots, so nodes created
// by cuts and splits show up without a rescan. Position edits (SetNodePos,
// Displace, crack opening) do not notify; call Sync after them.
package vbuf

import (
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/korzen/tetcutter/hemesh"
)

// Mirror holds the render-side copy of one mesh.
//
// Attach takes over the node, face and element callback slots of the mesh;
// Detach clears them. A Mirror is not safe for concurrent use.
type Mirror struct {
	mesh      *hemesh.Mesh
	positions []mgl32.Vec3
	triangles []uint32
	dirty     bool
}

// Attach builds a Mirror of m and installs its callbacks.
// Complexity: O(V + E)
func Attach(m *hemesh.Mesh) *Mirror {
	b := &Mirror{mesh: m, dirty: true}
	b.positions = make([]mgl32.Vec3, 0, m.CountNodes())
	for n := 0; n < m.CountNodes(); n++ {
		b.positions = append(b.positions, vec3(m.NodeAt(hemesh.Handle(n)).Pos))
	}

	m.SetOnNodeEventCallback(b.onNode)
	m.SetOnFaceEventCallback(func(hemesh.Face, hemesh.Handle, hemesh.TopologyEvent) { b.dirty = true })
	m.SetOnElemEventCallback(func(hemesh.Element, hemesh.Handle, hemesh.TopologyEvent) { b.dirty = true })

	return b
}

// Detach removes the Mirror's callbacks from the mesh.
func (b *Mirror) Detach() {
	b.mesh.SetOnNodeEventCallback(nil)
	b.mesh.SetOnFaceEventCallback(nil)
	b.mesh.SetOnElemEventCallback(nil)
}

func (b *Mirror) onNode(n hemesh.Node, h hemesh.Handle, ev hemesh.TopologyEvent) {
	if ev != hemesh.Added {
		return
	}
	for int(h) >= len(b.positions) {
		b.positions = append(b.positions, mgl32.Vec3{})
	}
	b.positions[h] = vec3(n.Pos)
}

// Dirty reports whether the topology changed since the last Triangles call.
// GarbageCollection is silent: call Sync after it.
func (b *Mirror) Dirty() bool { return b.dirty }

// Sync re-reads every node position and marks the triangle list stale.
// Complexity: O(V)
func (b *Mirror) Sync() {
	n := b.mesh.CountNodes()
	if cap(b.positions) < n {
		b.positions = make([]mgl32.Vec3, n)
	}
	b.positions = b.positions[:n]
	for i := range b.positions {
		b.positions[i] = vec3(b.mesh.NodeAt(hemesh.Handle(i)).Pos)
	}
	b.dirty = true
}

// Positions returns the node positions indexed by node handle. The slice is
// owned by the Mirror and valid until the next Sync.
func (b *Mirror) Positions() []mgl32.Vec3 { return b.positions }

// Vertices returns the positions flattened as x,y,z float32 triples.
func (b *Mirror) Vertices() []float32 {
	out := make([]float32, 0, 3*len(b.positions))
	for _, p := range b.positions {
		out = append(out, p[0], p[1], p[2])
	}
	return out
}

// Triangles returns the boundary triangles (faces cited by one live
// element), 3 node indices each, wound outward. The list is rebuilt only
// when Dirty.
// Complexity: O(E) when rebuilt.
func (b *Mirror) Triangles() []uint32 {
	if !b.dirty {
		return b.triangles
	}
	b.triangles = b.triangles[:0]
	for _, h := range b.mesh.LiveElements() {
		el := b.mesh.ElemAt(h)
		mask := hemesh.FaceMask(el.PosDet)
		for i, f := range el.Faces {
			if b.mesh.FaceAt(f).Refs != 1 {
				continue
			}
			for _, local := range mask[i] {
				b.triangles = append(b.triangles, uint32(el.Nodes[local]))
			}
		}
	}
	b.dirty = false

	return b.triangles
}

// Normals returns one unit normal per boundary triangle, in Triangles order.
// Zero-area triangles get the zero vector.
func (b *Mirror) Normals() []mgl32.Vec3 {
	tris := b.Triangles()
	out := make([]mgl32.Vec3, 0, len(tris)/3)
	for i := 0; i+2 < len(tris); i += 3 {
		p0, p1, p2 := b.positions[tris[i]], b.positions[tris[i+1]], b.positions[tris[i+2]]
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		if n.Len() == 0 {
			out = append(out, mgl32.Vec3{})
			continue
		}
		out = append(out, n.Normalize())
	}
	return out
}

func vec3(v r3.Vec) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
