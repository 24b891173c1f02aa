// SPDX-License-Identifier: MIT
// Package: tetcutter/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; branch with errors.Is.
//   • Context is attached with %w at the failure site (see builderErrorf).
//   • Constructors never panic; option constructors may.

package builder

import (
	"errors"
	"fmt"
)

// ErrTooSmall indicates that a size parameter (n, nx, ny, nz) is below the
// minimum accepted by the constructor.
var ErrTooSmall = errors.New("builder: parameter too small")

// ErrNeedRandSource indicates that a stochastic option (WithJitter) was set
// without a random source (WithSeed or WithRand).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates that the mesh rejected a generated element,
// or that a nil constructor was passed to BuildMesh.
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf prefixes err with the method name and a formatted detail,
// keeping err reachable through errors.Is.
func builderErrorf(method string, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), err)
}
