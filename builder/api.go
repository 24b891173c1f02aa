// SPDX-License-Identifier: MIT
// Package: tetcutter/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildMesh(mopts, bopts, cons...). Creates m, resolves cfg, runs cons in order.
//   - All public factories are declared here, implemented in impl_*.go.
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical meshes.

package builder

import (
	"fmt"

	"github.com/korzen/tetcutter/hemesh"
)

// Constructor appends nodes and elements to m using the resolved
// builderConfig. Constructors validate parameters early and return sentinel
// errors; they never panic.
type Constructor func(m *hemesh.Mesh, cfg builderConfig) error

// BuildMesh creates a new hemesh.Mesh with mesh options mopts, resolves the
// builder configuration from bopts, and applies all constructors in order.
// Any constructor error is wrapped with "BuildMesh: %w" and returned
// immediately; the partial mesh is discarded.
//
// Complexity: O(len(bopts)) plus the cost of each constructor.
func BuildMesh(mopts []hemesh.Option, bopts []BuilderOption, cons ...Constructor) (*hemesh.Mesh, error) {
	m := hemesh.New(mopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildMesh: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(m, cfg); err != nil {
			return nil, fmt.Errorf("BuildMesh: %w", err)
		}
	}

	return m, nil
}

// Tet appends one unit tetrahedron scaled by the spacing.
// Nodes: 4, elements: 1.
func Tet() Constructor { return buildTet() }

// Helix appends a strip of n tetrahedra (k, k+1, k+2, k+3) over points on a
// helix; consecutive elements share a face.
// Nodes: n+3, elements: n, faces: 3n+1. Requires n >= MinHelixElements.
func Helix(n int) Constructor { return buildHelix(n) }

// Grid appends an nx×ny×nz block of cubes, each split into the 6 Kuhn
// tetrahedra around its main diagonal. The result is conforming.
// Nodes: (nx+1)(ny+1)(nz+1), elements: 6·nx·ny·nz. Requires every
// dimension >= MinGridDim.
func Grid(nx, ny, nz int) Constructor { return buildGrid(nx, ny, nz) }
