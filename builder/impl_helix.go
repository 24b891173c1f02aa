package builder

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/korzen/tetcutter/hemesh"
)

// buildHelix places n+3 points on a unit-radius helix and links every four
// consecutive ones.
// Complexity: O(n).
func buildHelix(n int) Constructor {
	return func(m *hemesh.Mesh, cfg builderConfig) error {
		if n < MinHelixElements {
			return builderErrorf(MethodHelix, ErrTooSmall, "n=%d < %d", n, MinHelixElements)
		}
		if err := cfg.validate(MethodHelix); err != nil {
			return err
		}

		base := hemesh.Handle(m.CountNodes())
		for k := 0; k < n+3; k++ {
			a := float64(k) * helixTurn
			m.AddNode(cfg.place(r3.Vec{X: math.Cos(a), Y: math.Sin(a), Z: helixPitch * float64(k)}))
		}
		for k := hemesh.Handle(0); k < hemesh.Handle(n); k++ {
			h := base + k
			if err := addElement(m, MethodHelix, [4]hemesh.Handle{h, h + 1, h + 2, h + 3}); err != nil {
				return err
			}
		}

		return nil
	}
}
