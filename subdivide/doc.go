// Package subdivide replaces one tetrahedron of a hemesh.Mesh by a fixed set of
// smaller tetrahedra according to which of its six local edges are cut.
//
// A cut plan is two 6-bit masks plus one distance per local edge:
//
//	EdgeCode  bit i set -> local edge i is cut
//	NodeCode  bit i set -> local node i is cut (reserved, always 0 today)
//	Distances[i]       -> distance from Edge.From of local edge i
//
// Cutting edge i creates two coincident nodes stored in virtual slots 4+2i
// and 5+2i: slot 4+2i stays attached to the lower-numbered local endpoint of
// edge i, slot 5+2i to the higher one. Slots 0..3 are the element's own nodes.
// The tables below list each output tetrahedron as four virtual slots.
//
// Two patterns are handled:
//
//	Case A: 3 edges sharing one node cut; codes 56, 37, 11, 22.
//	        The corner tet is detached from the remaining 3 (4 tets total).
//	Case B: 4 edges cut; codes 46, 51, 29.
//	        The element falls apart into two groups of 3 tets (6 total).
//
// Any other pattern is rejected before the mesh is touched.
//
// With split enabled, the detached piece is pushed away so the crack opens:
// case A moves the corner tet away from its own centroid, case B moves group 1
// away from group 2. The step length is SplitFactor times the centroid offset.
//
// A Subdivider holds no lock; like the mesh it mutates, use it from one
// goroutine at a time.
package subdivide
