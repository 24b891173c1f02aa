// SPDX-License-Identifier: MIT
// Package: tetcutter/builder
//
// impl_grid.go - Kuhn (Freudenthal) decomposition of a block of cubes.
//
// Each cube with lower corner c is split into 6 tetrahedra, one per axis
// permutation (a,b,d): c → c+e_a → c+e_a+e_b → c+(1,1,1). Every cube uses the
// same main diagonal, so face diagonals agree between neighbours and the
// mesh is conforming.

package builder

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/korzen/tetcutter/hemesh"
)

// kuhnPaths lists the first two axes of each monotone path across a cube.
var kuhnPaths = [6][2]int{{0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}}

// buildGrid adds the (nx+1)(ny+1)(nz+1) lattice nodes, then 6 elements per cube.
// Complexity: O(nx·ny·nz).
func buildGrid(nx, ny, nz int) Constructor {
	return func(m *hemesh.Mesh, cfg builderConfig) error {
		if nx < MinGridDim || ny < MinGridDim || nz < MinGridDim {
			return builderErrorf(MethodGrid, ErrTooSmall, "dims=%dx%dx%d, min=%d", nx, ny, nz, MinGridDim)
		}
		if err := cfg.validate(MethodGrid); err != nil {
			return err
		}

		base := hemesh.Handle(m.CountNodes())
		index := func(p [3]int) hemesh.Handle {
			return base + hemesh.Handle(p[0]+(nx+1)*(p[1]+(ny+1)*p[2]))
		}

		// x fastest, matching index
		for k := 0; k <= nz; k++ {
			for j := 0; j <= ny; j++ {
				for i := 0; i <= nx; i++ {
					m.AddNode(cfg.place(r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)}))
				}
			}
		}

		for k := 0; k < nz; k++ {
			for j := 0; j < ny; j++ {
				for i := 0; i < nx; i++ {
					c := [3]int{i, j, k}
					for _, path := range kuhnPaths {
						p1 := c
						p1[path[0]]++
						p2 := p1
						p2[path[1]]++
						p3 := [3]int{i + 1, j + 1, k + 1}
						nodes := [4]hemesh.Handle{index(c), index(p1), index(p2), index(p3)}
						if err := addElement(m, MethodGrid, nodes); err != nil {
							return err
						}
					}
				}
			}
		}

		return nil
	}
}
