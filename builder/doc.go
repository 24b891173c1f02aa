// Package builder provides deterministic tetrahedral mesh fixtures for tests,
// benchmarks and demos. It follows the functional-options style used across
// the module: constructors are closures composed by a single orchestrator.
//
// The package offers the following key components:
//
//   - Orchestration:
//     - BuildMesh:   creates a hemesh.Mesh, resolves options, runs constructors.
//     - Constructor: func(*hemesh.Mesh, builderConfig) error.
//   - Constructors:
//     - Tet():          the unit tetrahedron scaled by the spacing.
//     - Helix(n):       n face-connected tets over points on a helix.
//     - Grid(nx,ny,nz): a conforming Kuhn decomposition, 6 tets per cube.
//   - Options (BuilderOption):
//     - WithSpacing, WithOrigin: placement of generated nodes.
//     - WithRand, WithSeed:      the random source.
//     - WithJitter:              random node displacement, needs a source.
//
// Guarantees:
//
//   - Every generated element is positively oriented.
//   - Constructors append nodes after the existing ones, so several of them
//     compose into one mesh without sharing nodes.
//   - Option constructors panic on meaningless input; constructors return
//     sentinel errors wrapped with the method name.
//   - Same options, same seed and same constructor order give identical meshes.
package builder
