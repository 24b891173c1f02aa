// SPDX-License-Identifier: MIT
// Package: tetcutter/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves MUST NOT panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// BuilderOption customizes constructors by mutating a builderConfig before
// construction begins.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit random source. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
// Use this in tests to lock jittered outcomes.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSpacing sets the lattice step. Panics unless h is finite and > 0.
func WithSpacing(h float64) BuilderOption {
	if !(h > 0) || math.IsInf(h, 1) {
		panic("builder: WithSpacing(h<=0)")
	}
	return func(c *builderConfig) {
		c.spacing = h
	}
}

// WithOrigin translates every generated node by o.
func WithOrigin(o r3.Vec) BuilderOption {
	return func(c *builderConfig) {
		c.origin = o
	}
}

// WithJitter displaces each generated node by up to j*spacing per axis.
// Panics unless 0 <= j <= MaxJitter. A positive jitter needs WithSeed or
// WithRand; constructors report ErrNeedRandSource otherwise.
func WithJitter(j float64) BuilderOption {
	if !(j >= 0 && j <= MaxJitter) {
		panic("builder: WithJitter(j out of [0,MaxJitter])")
	}
	return func(c *builderConfig) {
		c.jitter = j
	}
}
