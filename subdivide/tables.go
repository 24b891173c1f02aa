package subdivide

import "sort"

// Virtual slot layout of one element: 4 corner nodes, then 2 cut nodes per local edge.
const (
	slotCount   = 16
	cornerSlots = 4
)

// caseA[entry] lists 4 tetrahedra, 4 virtual slots each. The first one is the
// detached corner.
var caseA = [4][16]uint8{
	{0, 12, 10, 14, 3, 13, 11, 15, 3, 1, 15, 11, 1, 2, 3, 11},
	{1, 4, 8, 15, 3, 9, 5, 14, 0, 3, 14, 5, 0, 2, 3, 5},
	{2, 5, 6, 11, 3, 7, 10, 4, 3, 1, 4, 10, 0, 1, 3, 10},
	{3, 13, 9, 7, 1, 8, 12, 6, 1, 2, 12, 6, 0, 1, 2, 12},
}

// caseB[entry] lists 6 tetrahedra; rows 0..2 form group 1 and rows 3..5 group 2.
var caseB = [3][6][4]uint8{
	{{2, 6, 11, 1}, {8, 11, 15, 1}, {6, 11, 8, 1}, {3, 7, 9, 10}, {3, 10, 0, 9}, {0, 14, 10, 9}},
	{{3, 7, 13, 15}, {15, 1, 4, 7}, {15, 1, 3, 7}, {0, 12, 14, 6}, {2, 5, 6, 14}, {0, 14, 6, 2}},
	{{4, 10, 12, 0}, {0, 8, 12, 4}, {0, 8, 1, 4}, {3, 9, 13, 5}, {2, 5, 11, 3}, {3, 13, 5, 11}},
}

// cutCodeEntry maps an edge code to its row in caseA or caseB.
var cutCodeEntry = map[uint8]int{
	56: 0, 37: 1, 11: 2, 22: 3,
	46: 0, 51: 1, 29: 2,
}

// enteringFaceEdges lists the local edges cut when a blade enters through
// face 0, 1 or 2.
var enteringFaceEdges = [3][4]uint8{
	{1, 2, 3, 5},
	{1, 4, 0, 5},
	{2, 4, 0, 3},
}

// caseANodeEdges lists the local edges incident to each local node.
var caseANodeEdges = [4][3]uint8{
	{3, 4, 5},
	{0, 2, 5},
	{0, 1, 3},
	{1, 2, 4},
}

// TableEntry returns the table row for edge code and whether the code is handled.
func TableEntry(code uint8) (int, bool) {
	e, ok := cutCodeEntry[code]
	return e, ok
}

// CaseACodes returns the handled 3-edge codes in table order.
func CaseACodes() []uint8 { return []uint8{56, 37, 11, 22} }

// CaseBCodes returns the handled 4-edge codes in table order.
func CaseBCodes() []uint8 { return []uint8{46, 51, 29} }

// groupSlots returns the sorted distinct virtual slots used by rows.
func groupSlots(rows [][4]uint8) []uint8 {
	seen := make(map[uint8]bool, 8)
	var out []uint8
	for _, r := range rows {
		for _, s := range r {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
