package hemesh

// Local tetrahedron connectivity. Row i of a face mask lists the face opposite
// node i, wound outward. Row i of an edge mask lists local edge i.
// Negative tables are used for elements with a negative determinant.
var (
	edgeMaskPos = [6][2]int{{1, 2}, {2, 3}, {3, 1}, {2, 0}, {0, 3}, {0, 1}}
	edgeMaskNeg = [6][2]int{{3, 2}, {2, 1}, {1, 3}, {3, 0}, {0, 2}, {1, 0}}

	faceMaskPos = [4][3]int{{1, 2, 3}, {2, 0, 3}, {3, 0, 1}, {1, 0, 2}}
	faceMaskNeg = [4][3]int{{3, 2, 1}, {3, 0, 2}, {1, 0, 3}, {2, 0, 1}}
)

// EdgeMask returns a copy of the local edge table for the given orientation.
// Element.HalfEdge[i] runs from Nodes[mask[i][0]] to Nodes[mask[i][1]].
func EdgeMask(posDet bool) [6][2]int { return *edgeMask(posDet) }

// FaceMask returns a copy of the local face table for the given orientation.
// Row i is the face opposite Nodes[i], wound outward.
func FaceMask(posDet bool) [4][3]int { return *faceMask4(posDet) }

// LocalEdge returns the two local node indices of local edge i, ordered so the
// lower index comes first.
func LocalEdge(i int) (lo, hi int) {
	a, b := edgeMaskPos[i][0], edgeMaskPos[i][1]
	if a > b {
		a, b = b, a
	}
	return a, b
}

func edgeMask(posDet bool) *[6][2]int {
	if posDet {
		return &edgeMaskPos
	}
	return &edgeMaskNeg
}

func faceMask4(posDet bool) *[4][3]int {
	if posDet {
		return &faceMaskPos
	}
	return &faceMaskNeg
}
