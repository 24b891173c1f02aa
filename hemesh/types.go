// Package hemesh defines the half-edge tetrahedral Mesh, its Node, HalfEdge,
// Edge, Face and Element records, and the sentinel errors returned by the
// topology primitives.
//
// All entities live in dense slices owned by the Mesh and are referenced by
// Handle (an index into the owning slice). Nothing outside this package may
// allocate or free entries directly.
//
// Errors:
//
//	ErrOpFailed       - general failure (degenerate element, bad buffer, out of range parameter).
//	ErrElemNotFound   - requested element does not exist or was removed.
//	ErrFaceNotFound   - requested face does not exist or was removed.
//	ErrEdgeNotFound   - requested edge does not exist or was released.
//	ErrNodeNotFound   - requested node does not exist.
package hemesh

import (
	"errors"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sentinel errors for mesh operations.
var (
	// ErrOpFailed indicates a general failure of a topology operation.
	ErrOpFailed = errors.New("hemesh: operation failed")

	// ErrElemNotFound indicates an operation referenced a missing element.
	ErrElemNotFound = errors.New("hemesh: element not found")

	// ErrFaceNotFound indicates an operation referenced a missing face.
	ErrFaceNotFound = errors.New("hemesh: face not found")

	// ErrEdgeNotFound indicates an operation referenced a missing edge.
	ErrEdgeNotFound = errors.New("hemesh: edge not found")

	// ErrNodeNotFound indicates an operation referenced a missing node.
	ErrNodeNotFound = errors.New("hemesh: node not found")
)

// Numeric error codes, kept for collaborators that exchange integer status values.
const (
	CodeOK           = 0
	CodeOpFailed     = -1
	CodeElemNotFound = -2
	CodeFaceNotFound = -3
	CodeEdgeNotFound = -4
	CodeNodeNotFound = -5
)

// Code maps err to its numeric error code. nil maps to CodeOK and any error
// that does not wrap one of the sentinels maps to CodeOpFailed.
func Code(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrElemNotFound):
		return CodeElemNotFound
	case errors.Is(err, ErrFaceNotFound):
		return CodeFaceNotFound
	case errors.Is(err, ErrEdgeNotFound):
		return CodeEdgeNotFound
	case errors.Is(err, ErrNodeNotFound):
		return CodeNodeNotFound
	default:
		return CodeOpFailed
	}
}

// Handle is a dense index into one of the Mesh entity slices.
// Handles are invalidated wholesale by GarbageCollection.
type Handle uint32

// InvalidHandle marks the absence of an entity.
const InvalidHandle = ^Handle(0)

// Valid reports whether h is not the InvalidHandle sentinel.
func (h Handle) Valid() bool { return h != InvalidHandle }

// Node is a mesh vertex.
type Node struct {
	// Pos is the current (deformed) position.
	Pos r3.Vec

	// RestPos is the undeformed reference position.
	RestPos r3.Vec

	// OutHE is one outgoing half-edge, InvalidHandle for isolated nodes.
	OutHE Handle
}

// HalfEdge is one directed traversal of an edge.
//
// Half-edges are allocated in opposite pairs (2e, 2e+1) and there is exactly
// one half-edge per directed node pair. A half-edge lies on the face cycle of
// at most one face; Face, Next and Prev are InvalidHandle while it is not
// owned by a live face.
type HalfEdge struct {
	From, To Handle

	Face Handle

	Prev, Next, Opposite Handle

	// Refs counts face citations through this half-edge.
	Refs uint32

	// Removed is set once both half-edges of the pair are released.
	Removed bool
}

// Edge is the undirected view of a half-edge pair. It is synthesized on demand.
type Edge struct {
	From, To            Handle
	LeftFace, RightFace Handle
}

// Face is a triangle shared by up to two elements.
type Face struct {
	// HalfEdge holds the cycle From(0)->From(1)->From(2).
	HalfEdge [3]Handle

	// Refs counts the elements citing this face.
	Refs uint32

	Removed bool
}

// Element is a tetrahedron.
type Element struct {
	// Faces[i] is the face opposite Nodes[i].
	Faces [4]Handle

	Nodes [4]Handle

	// HalfEdge[i] is the representative half-edge of local edge i (see EdgeMask).
	HalfEdge [6]Handle

	// PosDet reports a positive determinant at insertion time.
	PosDet bool

	Removed bool
}

// TopologyEvent tells a callback whether an entity was added or removed.
type TopologyEvent uint8

const (
	// Added is reported once for every newly created entity.
	Added TopologyEvent = iota
	// Removed is reported once when an entity is released.
	Removed
)

// String returns "added" or "removed".
func (e TopologyEvent) String() string {
	if e == Removed {
		return "removed"
	}
	return "added"
}

// Notification callbacks, one slot per entity kind. They receive a value
// snapshot, the handle and the event. Callbacks run synchronously inside the
// mutating call and must not mutate the mesh.
type (
	NodeEventFunc    func(n Node, h Handle, ev TopologyEvent)
	EdgeEventFunc    func(e Edge, h Handle, ev TopologyEvent)
	FaceEventFunc    func(f Face, h Handle, ev TopologyEvent)
	ElementEventFunc func(el Element, h Handle, ev TopologyEvent)
)

// Option configures a Mesh at construction time.
type Option func(m *Mesh)

// WithLogger sets the structured logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mesh) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithDegenerateElements controls whether zero-volume elements are accepted
// by InsertElement. They are rejected with ErrOpFailed by default.
func WithDegenerateElements(allow bool) Option {
	return func(m *Mesh) { m.allowDegenerate = allow }
}

// WithDegeneracyEpsilon sets the absolute determinant threshold below which an
// element counts as degenerate. Non-positive values are ignored.
func WithDegeneracyEpsilon(eps float64) Option {
	return func(m *Mesh) {
		if eps > 0 {
			m.epsilon = eps
		}
	}
}

// DefaultDegeneracyEpsilon is the determinant threshold used unless overridden.
const DefaultDegeneracyEpsilon = 1e-12

// Mesh is the half-edge tetrahedral mesh.
//
// The Mesh is not safe for concurrent mutation. Readers may run concurrently
// with each other between mutations only.
type Mesh struct {
	// Storage
	elements  []Element
	faces     []Face
	halfEdges []HalfEdge
	nodes     []Node

	// outgoing[n] lists the live half-edges leaving node n.
	outgoing [][]Handle

	// Lookup maps
	faceIndex     map[FaceKey]Handle
	halfEdgeIndex map[HalfEdgeKey]Handle

	// Notifications
	onNode    NodeEventFunc
	onEdge    EdgeEventFunc
	onFace    FaceEventFunc
	onElement ElementEventFunc

	// Configuration
	allowDegenerate bool
	epsilon         float64
	logger          *slog.Logger
}

// New creates an empty Mesh.
// Complexity: O(1)
func New(opts ...Option) *Mesh {
	m := &Mesh{
		faceIndex:     make(map[FaceKey]Handle),
		halfEdgeIndex: make(map[HalfEdgeKey]Handle),
		epsilon:       DefaultDegeneracyEpsilon,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default().With(slog.String("component", "hemesh"))
	}

	return m
}
