// Package builder defines shared constants used by the mesh constructors.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants
//   used to prefix errors with the constructor name for context.
//-----------------------------------------------------------------------------

const (
	// MethodTet is the canonical name for the Tet constructor.
	MethodTet = "Tet"
	// MethodHelix is the canonical name for the Helix constructor.
	MethodHelix = "Helix"
	// MethodGrid is the canonical name for the Grid constructor.
	MethodGrid = "Grid"
)

//-----------------------------------------------------------------------------
// Minimum Sizes
//-----------------------------------------------------------------------------

// MinHelixElements is the smallest helix strip: a single tetrahedron.
const MinHelixElements = 1

// MinGridDim is the smallest allowed cube count along any grid axis.
const MinGridDim = 1

//-----------------------------------------------------------------------------
// Placement Defaults
//-----------------------------------------------------------------------------

// DefaultSpacing is the edge length of a grid cube and the helix radius.
const DefaultSpacing = 1.0

// MaxJitter bounds the relative node displacement accepted by WithJitter.
// Below it every node stays closer to its original place than a quarter of
// the smallest Kuhn tetrahedron height.
const MaxJitter = 0.1

// Helix shape per unit spacing.
const (
	helixTurn  = 0.9 // radians between consecutive points
	helixPitch = 0.3 // rise between consecutive points
)
