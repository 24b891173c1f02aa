// Package tetcutter is a toolkit for cutting and tearing tetrahedral volume
// meshes: a half-edge topology engine plus the local subdivision rules that
// open cracks through individual elements.
//
// 🚀 What is in the box?
//
//	• Topology: dense handle-indexed storage, shared faces and edges, local
//	  surgery (SplitEdge, CutEdge), garbage collection, change callbacks
//	• Subdivision: case A (corner cut) and case B (quad cut) tables, cut plan
//	  generation, optional split that pries the pieces apart
//	• Analysis: face- or node-connected fragments after a tear
//	• Rendering: a float32 mirror of positions and boundary triangles
//	• Fixtures: Kuhn grids, helix strips and single tets for tests and demos
//
// Packages:
//
//	hemesh/    - Mesh, Handle, keys, traversal, SplitEdge/CutEdge, GC
//	subdivide/ - Subdivider, CutPlan, case tables, tracing & logging
//	fragments/ - BFS over element adjacency, Result with pieces
//	vbuf/      - Mirror: mgl32 positions, triangles and normals
//	builder/   - BuildMesh with Tet, Helix and Grid constructors
//
// A case A cut on corner 0 marks the three edges leaving it (edge code 56):
//
//	    3
//	    |
//	    x
//	    |
//	    0--x--2      x = cut node pair on each marked edge
//	     \
//	      x
//	       \
//	        1
//
// Start from examples/teardemo for an end-to-end run.
package tetcutter
