// SPDX-License-Identifier: MIT
// Package: tetcutter/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng     = nil          (no randomness unless seeded)
//   • spacing = DefaultSpacing
//   • origin  = (0,0,0)
//   • jitter  = 0

package builder

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// RNG for jitter; nil means no randomness.
	rng *rand.Rand

	spacing float64
	origin  r3.Vec
	// jitter is the node displacement bound as a fraction of spacing.
	jitter float64
}

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (last wins).
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{spacing: DefaultSpacing}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// validate reports option combinations that can only be judged together.
func (c builderConfig) validate(method string) error {
	if c.jitter > 0 && c.rng == nil {
		return builderErrorf(method, ErrNeedRandSource, "jitter %g without a random source", c.jitter)
	}

	return nil
}

// place maps a lattice point to world space, jittered when configured.
func (c builderConfig) place(p r3.Vec) r3.Vec {
	w := r3.Add(c.origin, r3.Scale(c.spacing, p))
	if c.jitter > 0 {
		amp := c.jitter * c.spacing
		w.X += amp * (2*c.rng.Float64() - 1)
		w.Y += amp * (2*c.rng.Float64() - 1)
		w.Z += amp * (2*c.rng.Float64() - 1)
	}

	return w
}
