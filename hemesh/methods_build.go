// File: methods_build.go
// Role: Construction from flat buffers, the canonical single tet, cloning and clearing.

package hemesh

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"
)

// NewFromBuffers builds a mesh from a flat position buffer (3 floats per node)
// and a flat element buffer (4 node indices per tetrahedron).
// An empty element buffer yields a valid mesh without elements.
func NewFromBuffers(vertices []float64, elements []uint32, opts ...Option) (*Mesh, error) {
	m := New(opts...)
	if err := m.Setup(vertices, elements); err != nil {
		return nil, err
	}

	return m, nil
}

// CreateOneTet returns the canonical positively oriented unit tetrahedron
// over (0,0,0), (1,0,0), (0,1,0), (0,0,1).
func CreateOneTet(opts ...Option) *Mesh {
	m := New(opts...)
	// The buffers are constant and valid.
	_ = m.Setup(
		[]float64{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		},
		[]uint32{0, 1, 2, 3},
	)

	return m
}

// Setup clears the mesh and rebuilds it from flat buffers.
// Returns ErrOpFailed for malformed buffer lengths and the InsertElement
// error (wrapped with the element index) for a bad element.
// Complexity: O(V + E)
func (m *Mesh) Setup(vertices []float64, elements []uint32) error {
	if len(vertices)%3 != 0 {
		return fmt.Errorf("%w: vertex buffer length %d is not a multiple of 3", ErrOpFailed, len(vertices))
	}
	if len(elements)%4 != 0 {
		return fmt.Errorf("%w: element buffer length %d is not a multiple of 4", ErrOpFailed, len(elements))
	}
	m.Cleanup()

	ctNodes := len(vertices) / 3
	m.nodes = make([]Node, 0, ctNodes)
	m.outgoing = make([][]Handle, 0, ctNodes)
	for i := 0; i < ctNodes; i++ {
		m.AddNode(r3.Vec{X: vertices[3*i], Y: vertices[3*i+1], Z: vertices[3*i+2]})
	}

	for i := 0; i < len(elements)/4; i++ {
		var n [4]Handle
		for j := 0; j < 4; j++ {
			n[j] = Handle(elements[4*i+j])
		}
		if _, err := m.InsertElement(n); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	m.logger.Debug("mesh setup",
		slog.Int("nodes", len(m.nodes)),
		slog.Int("elements", len(m.elements)),
		slog.Int("faces", len(m.faces)),
		slog.Int("edges", m.CountEdges()),
	)

	return nil
}

// Cleanup empties every slice and map. Callbacks and configuration are kept;
// no notifications are fired.
func (m *Mesh) Cleanup() {
	m.elements = nil
	m.faces = nil
	m.halfEdges = nil
	m.nodes = nil
	m.outgoing = nil
	m.faceIndex = make(map[FaceKey]Handle)
	m.halfEdgeIndex = make(map[HalfEdgeKey]Handle)
}

// AddNode appends an isolated node whose rest position equals pos.
func (m *Mesh) AddNode(pos r3.Vec) Handle {
	return m.addNode(pos, pos)
}

func (m *Mesh) addNode(pos, rest r3.Vec) Handle {
	h := Handle(len(m.nodes))
	m.nodes = append(m.nodes, Node{Pos: pos, RestPos: rest, OutHE: InvalidHandle})
	m.outgoing = append(m.outgoing, nil)
	m.notifyNode(h, Added)

	return h
}

// Clone returns a deep copy of the mesh. Callbacks are not copied.
// Complexity: O(V + E + F + H)
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		elements:        append([]Element(nil), m.elements...),
		faces:           append([]Face(nil), m.faces...),
		halfEdges:       append([]HalfEdge(nil), m.halfEdges...),
		nodes:           append([]Node(nil), m.nodes...),
		outgoing:        make([][]Handle, len(m.outgoing)),
		faceIndex:       make(map[FaceKey]Handle, len(m.faceIndex)),
		halfEdgeIndex:   make(map[HalfEdgeKey]Handle, len(m.halfEdgeIndex)),
		allowDegenerate: m.allowDegenerate,
		epsilon:         m.epsilon,
		logger:          m.logger,
	}
	for i, out := range m.outgoing {
		c.outgoing[i] = append([]Handle(nil), out...)
	}
	for k, v := range m.faceIndex {
		c.faceIndex[k] = v
	}
	for k, v := range m.halfEdgeIndex {
		c.halfEdgeIndex[k] = v
	}

	return c
}

// Buffers exports the current node positions (3 floats per node) and the
// live elements (4 indices per tetrahedron), the inverse of Setup.
func (m *Mesh) Buffers() (vertices []float64, elements []uint32) {
	vertices = make([]float64, 0, 3*len(m.nodes))
	for _, n := range m.nodes {
		vertices = append(vertices, n.Pos.X, n.Pos.Y, n.Pos.Z)
	}
	elements = make([]uint32, 0, 4*len(m.elements))
	for _, el := range m.elements {
		if el.Removed {
			continue
		}
		for _, n := range el.Nodes {
			elements = append(elements, uint32(n))
		}
	}

	return vertices, elements
}
