// Package fragments provides tunable options and error definitions for
// splitting a hemesh.Mesh into connected pieces.
package fragments

import (
	"context"
	"errors"
	"fmt"

	"github.com/korzen/tetcutter/hemesh"
)

// Sentinel errors for component search.
var (
	// ErrMeshNil is returned if a nil mesh pointer is passed.
	ErrMeshNil = errors.New("fragments: mesh is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("fragments: invalid option supplied")
)

// Adjacency selects which shared entity glues two elements together.
type Adjacency uint8

const (
	// ByFace joins elements citing the same face.
	ByFace Adjacency = iota
	// ByNode joins elements sharing any node.
	ByNode
)

// String returns "face" or "node".
func (a Adjacency) String() string {
	if a == ByNode {
		return "node"
	}
	return "face"
}

// Option configures Components via functional arguments.
// If an Option is invalid it is recorded internally and surfaced as
// ErrOptionViolation when Components is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize the search.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// Adjacency picks face or node connectivity.
	Adjacency Adjacency

	// OnVisit is called once per element with the index of its piece.
	// Returning an error aborts the search.
	OnVisit func(elem hemesh.Handle, piece int) error

	// FilterNeighbor can cut a link by returning false.
	FilterNeighbor func(curr, neighbor hemesh.Handle) bool

	err error
}

// DefaultOptions returns face adjacency, a background context and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		Adjacency:      ByFace,
		OnVisit:        func(hemesh.Handle, int) error { return nil },
		FilterNeighbor: func(_, _ hemesh.Handle) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithAdjacency selects ByFace or ByNode. Other values are an ErrOptionViolation.
func WithAdjacency(a Adjacency) Option {
	return func(o *Options) {
		switch a {
		case ByFace, ByNode:
			o.Adjacency = a
		default:
			o.err = fmt.Errorf("%w: unknown adjacency %d", ErrOptionViolation, a)
		}
	}
}

// WithOnVisit registers a callback run on every visited element.
func WithOnVisit(fn func(elem hemesh.Handle, piece int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithFilterNeighbor skips links when fn returns false.
func WithFilterNeighbor(fn func(curr, neighbor hemesh.Handle) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// Result holds the pieces found:
//   - Pieces: element handles per piece, each in visit order; pieces are
//     ordered by their lowest element handle.
//   - PieceOf: element handle to piece index.
type Result struct {
	Pieces  [][]hemesh.Handle
	PieceOf map[hemesh.Handle]int
}

// Count returns the number of pieces.
func (r *Result) Count() int { return len(r.Pieces) }

// Largest returns the index of the piece with the most elements, -1 if none.
// Ties go to the lower index.
func (r *Result) Largest() int {
	best := -1
	for i, p := range r.Pieces {
		if best < 0 || len(p) > len(r.Pieces[best]) {
			best = i
		}
	}
	return best
}

// Connected reports whether elements a and b lie in the same piece.
func (r *Result) Connected(a, b hemesh.Handle) bool {
	pa, okA := r.PieceOf[a]
	pb, okB := r.PieceOf[b]
	return okA && okB && pa == pb
}
