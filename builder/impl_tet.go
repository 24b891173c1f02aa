package builder

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/korzen/tetcutter/hemesh"
)

// unitTet lists the corners of the reference tetrahedron.
var unitTet = [4]r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}

func buildTet() Constructor {
	return func(m *hemesh.Mesh, cfg builderConfig) error {
		if err := cfg.validate(MethodTet); err != nil {
			return err
		}
		var nodes [4]hemesh.Handle
		for i, p := range unitTet {
			nodes[i] = m.AddNode(cfg.place(p))
		}

		return addElement(m, MethodTet, nodes)
	}
}
