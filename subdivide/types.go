package subdivide

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/bits"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/korzen/tetcutter/hemesh"
)

// Sentinel errors for subdivision.
var (
	// ErrMeshNil is returned when a Subdivider has no mesh.
	ErrMeshNil = errors.New("subdivide: mesh is nil")

	// ErrNodeSelector is returned for a local node index outside 0..3.
	ErrNodeSelector = errors.New("subdivide: local node selector out of range")

	// ErrFaceSelector is returned for an entering face outside 0..2.
	ErrFaceSelector = errors.New("subdivide: entering face selector out of range")

	// ErrFraction is returned for a cut fraction outside [0,1].
	ErrFraction = errors.New("subdivide: cut fraction out of range")

	// ErrUnhandledCase is returned for a cut pattern without a table entry.
	ErrUnhandledCase = errors.New("subdivide: unhandled cut pattern")

	// ErrCutDistance is returned when a cut distance does not fall inside its edge.
	ErrCutDistance = errors.New("subdivide: cut distance outside edge")

	// ErrInconsistentSplit is returned when a split group does not span exactly 6 nodes.
	ErrInconsistentSplit = errors.New("subdivide: inconsistent split groups")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("subdivide: invalid option supplied")
)

// Case names the subdivision pattern applied to an element.
type Case uint8

const (
	// CaseNone means no pattern matched.
	CaseNone Case = iota
	// CaseA detaches one corner: 3 cut edges, 4 output tets.
	CaseA
	// CaseB separates two halves: 4 cut edges, 6 output tets.
	CaseB
)

// String returns "A", "B" or "none".
func (c Case) String() string {
	switch c {
	case CaseA:
		return "A"
	case CaseB:
		return "B"
	default:
		return "none"
	}
}

// CutPlan describes which local edges (and nodes) of an element are cut and
// where. Distances[i] is measured from Edge.From of local edge i and is only
// read when bit i of EdgeCode is set.
type CutPlan struct {
	EdgeCode  uint8
	NodeCode  uint8
	Distances [6]float64
}

// CountEdges returns the number of cut edges.
func (p CutPlan) CountEdges() int { return bits.OnesCount8(p.EdgeCode & 0x3F) }

// CountNodes returns the number of cut nodes.
func (p CutPlan) CountNodes() int { return bits.OnesCount8(p.NodeCode & 0x0F) }

// Cuts reports whether local edge i is cut.
func (p CutPlan) Cuts(i int) bool { return p.EdgeCode&(1<<uint(i)) != 0 }

// Result reports what a successful Subdivide did.
type Result struct {
	// Code is the edge code that selected the table row.
	Code uint8

	Case Case

	// Removed is the replaced element.
	Removed hemesh.Handle

	// Inserted holds the new elements in table order.
	Inserted []hemesh.Handle

	// CutNodes maps virtual slots to node handles; unused slots hold InvalidHandle.
	CutNodes [slotCount]hemesh.Handle
}

// Option configures a Subdivider via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by every
// Subdivider operation.
type Option func(*Options)

// Options holds the Subdivider configuration.
type Options struct {
	// Logger receives Info on each subdivision and Error on failures.
	Logger *slog.Logger

	// Tracer starts one span per SubdivideContext call.
	Tracer trace.Tracer

	// SplitFactor scales the centroid offset used to open the crack.
	SplitFactor float64

	// CaseBFraction positions case B cuts along each edge, measured from Edge.From.
	CaseBFraction float64

	// OnSubdivide runs after every successful subdivision.
	OnSubdivide func(Result)

	err error
}

// Default configuration values.
const (
	DefaultSplitFactor   = 0.3
	DefaultCaseBFraction = 0.8
)

// DefaultOptions returns the defaults: component logger, global tracer,
// SplitFactor 0.3, CaseBFraction 0.8 and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Logger:        slog.Default().With(slog.String("component", "subdivide")),
		Tracer:        otel.Tracer("github.com/korzen/tetcutter/subdivide"),
		SplitFactor:   DefaultSplitFactor,
		CaseBFraction: DefaultCaseBFraction,
		OnSubdivide:   func(Result) {},
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTracer sets the tracer used for subdivision spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		if t != nil {
			o.Tracer = t
		}
	}
}

// WithSplitFactor sets the crack opening factor. Negative or non-finite
// values are an ErrOptionViolation.
func WithSplitFactor(f float64) Option {
	return func(o *Options) {
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			o.err = fmt.Errorf("%w: split factor %g", ErrOptionViolation, f)
			return
		}
		o.SplitFactor = f
	}
}

// WithCaseBFraction sets where case B cuts fall along each edge. The value
// must lie strictly inside (0,1).
func WithCaseBFraction(f float64) Option {
	return func(o *Options) {
		if !(f > 0 && f < 1) {
			o.err = fmt.Errorf("%w: case B fraction %g outside (0,1)", ErrOptionViolation, f)
			return
		}
		o.CaseBFraction = f
	}
}

// WithOnSubdivide registers a hook run after every successful subdivision.
func WithOnSubdivide(fn func(Result)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSubdivide = fn
		}
	}
}
