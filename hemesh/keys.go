package hemesh

// Face keys pack three node handles into 21-bit fields, which bounds the
// mesh to MaxNodes nodes. Half-edge keys pack (from, to) into two 32-bit fields.
const (
	faceShiftB = 21
	faceShiftC = 42
	faceMask   = 0x001FFFFF

	halfEdgeShiftB = 32
	halfEdgeMask   = 0xFFFFFFFF

	// MaxNodes is the node count ceiling imposed by FaceKey.
	MaxNodes = faceMask
)

// FaceKey identifies a triangle independently of its winding.
type FaceKey uint64

// NewFaceKey sorts a, b, c ascending and packs them.
func NewFaceKey(a, b, c Handle) FaceKey {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}

	return FaceKey(uint64(c&faceMask)<<faceShiftC | uint64(b&faceMask)<<faceShiftB | uint64(a&faceMask))
}

// Nodes unpacks the sorted node handles.
func (k FaceKey) Nodes() [3]Handle {
	return [3]Handle{
		Handle(uint64(k) & faceMask),
		Handle(uint64(k) >> faceShiftB & faceMask),
		Handle(uint64(k) >> faceShiftC & faceMask),
	}
}

// HalfEdgeKey identifies a directed node pair.
type HalfEdgeKey uint64

// NewHalfEdgeKey packs from into the low and to into the high 32 bits.
func NewHalfEdgeKey(from, to Handle) HalfEdgeKey {
	return HalfEdgeKey(uint64(to&halfEdgeMask)<<halfEdgeShiftB | uint64(from&halfEdgeMask))
}

// Nodes unpacks (from, to).
func (k HalfEdgeKey) Nodes() (from, to Handle) {
	return Handle(uint64(k) & halfEdgeMask), Handle(uint64(k) >> halfEdgeShiftB)
}
