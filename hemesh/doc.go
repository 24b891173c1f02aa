// Package hemesh maintains the topology of a tetrahedral volume mesh with a
// half-edge representation and performs local surgery on it.
//
// Storage is four dense slices (nodes, half-edges, faces, elements) indexed by
// Handle, plus two maps keyed by canonical packed integers:
//
//	FaceKey     - the 3 node handles of a face sorted ascending, 21 bits each
//	HalfEdgeKey - the ordered (from, to) pair, 32 bits each
//
// Two elements sharing a triangle resolve to the same face and the same three
// half-edges. Half-edges are allocated in opposite pairs, so edge e owns
// half-edges 2e and 2e+1 and CountEdges() == CountHalfEdges()/2 always holds.
//
// Mutation:
//
//	InsertElement(nodes)       // builds or reuses 4 faces and 6 edges
//	RemoveElement(h)           // marks removed, drops face citations
//	InsertFace / RemoveFace    // the single dedup point for triangles
//	SplitEdge(e, t)            // one new node, incident elements rewritten
//	CutEdge(e, dist)           // two coincident nodes, never connected
//	GarbageCollection()        // compacts, invalidates all but node handles
//
// Traversal (NextHalfEdge, PrevHalfEdge, OppositeHalfEdge, FirstRing,
// IncomingHalfEdges, OutgoingHalfEdges, ...) never panics on bad handles;
// it returns InvalidHandle or an empty slice. The plain accessors (ElemAt,
// FaceAt, HalfEdgeAt, NodeAt, EdgeAt) do not check bounds: validate with the
// Is*Index methods first.
//
// Topology changes are reported through four callback slots
// (SetOnNodeEventCallback, ...), invoked synchronously from inside the
// mutating call. A callback must not mutate the mesh.
//
// Concurrency: a Mesh has no internal locking. Use a single writer; readers
// are safe only between mutations.
package hemesh
