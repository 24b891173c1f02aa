package subdivide

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/korzen/tetcutter/hemesh"
)

// Subdivider applies case A and case B subdivisions to the elements of one mesh.
type Subdivider struct {
	mesh *hemesh.Mesh
	opts Options
}

// New binds a Subdivider to m. Option errors are reported by the first call
// that uses the Subdivider.
func New(m *hemesh.Mesh, opts ...Option) *Subdivider {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Subdivider{mesh: m, opts: o}
}

// Mesh returns the mesh being subdivided.
func (s *Subdivider) Mesh() *hemesh.Mesh { return s.mesh }

func (s *Subdivider) ready() error {
	if s.opts.err != nil {
		return s.opts.err
	}
	if s.mesh == nil {
		return ErrMeshNil
	}
	return nil
}

// Subdivide is SubdivideContext with a background context.
func (s *Subdivider) Subdivide(elem hemesh.Handle, plan CutPlan, split bool) (Result, error) {
	return s.SubdivideContext(context.Background(), elem, plan, split)
}

// SubdivideContext replaces elem by the tetrahedra its cut pattern selects.
//
// The plan is validated first: the element must be live, exactly 3 or 4
// edges and no nodes may be cut, the edge code must have a table entry and
// every distance must fall strictly inside its edge. A rejected plan leaves the
// mesh untouched and returns hemesh.ErrElemNotFound, ErrUnhandledCase,
// ErrCutDistance or ErrInconsistentSplit.
//
// Once validated, the marked edges are cut, elem is removed and 4 (case A) or
// 6 (case B) elements are inserted. When split is set the detached piece is
// displaced to open the crack. An error past validation (a mesh primitive
// failing) is returned as is and may leave the mutation partially applied.
func (s *Subdivider) SubdivideContext(ctx context.Context, elem hemesh.Handle, plan CutPlan, split bool) (Result, error) {
	_, span := s.opts.Tracer.Start(ctx, "subdivide.Subdivider.Subdivide",
		trace.WithAttributes(
			attribute.Int64("element", int64(elem)),
			attribute.Int("cut_edge_code", int(plan.EdgeCode)),
			attribute.Int("cut_node_code", int(plan.NodeCode)),
			attribute.Bool("split", split),
		),
	)
	defer span.End()

	res, err := s.subdivide(span, elem, plan, split)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "subdivision failed")
		return res, err
	}

	span.SetAttributes(
		attribute.String("case", res.Case.String()),
		attribute.Int("inserted", len(res.Inserted)),
	)
	span.SetStatus(codes.Ok, "subdivision complete")
	s.opts.OnSubdivide(res)

	return res, nil
}

func (s *Subdivider) subdivide(span trace.Span, elem hemesh.Handle, plan CutPlan, split bool) (Result, error) {
	if err := s.ready(); err != nil {
		return Result{}, err
	}
	lg := s.opts.Logger.With(
		slog.Int64("element", int64(elem)),
		slog.Int("cut_edge_code", int(plan.EdgeCode)),
		slog.Int("cut_node_code", int(plan.NodeCode)),
	)

	c, entry, err := s.validate(elem, plan, split)
	if err != nil {
		lg.Error("subdivision rejected", slog.Any("error", err))
		return Result{}, err
	}

	res := Result{Code: plan.EdgeCode, Case: c, Removed: elem}
	if err := s.cut(elem, plan, &res.CutNodes); err != nil {
		lg.Error("edge cut failed", slog.Any("error", err))
		return res, err
	}
	span.AddEvent("edges_cut", trace.WithAttributes(attribute.Int("edges", plan.CountEdges())))

	s.mesh.RemoveElement(elem)
	switch c {
	case CaseA:
		err = s.applyCaseA(&res, entry, split)
	case CaseB:
		err = s.applyCaseB(&res, entry, split)
	}
	if err != nil {
		lg.Error("element insertion failed", slog.Int("inserted", len(res.Inserted)), slog.Any("error", err))
		return res, err
	}

	lg.Info("element subdivided",
		slog.String("case", c.String()),
		slog.Int("entry", entry),
		slog.Int("inserted", len(res.Inserted)),
		slog.Bool("split", split),
	)

	return res, nil
}

// validate is the dry run: it checks everything Subdivide relies on without
// touching the mesh and returns the case and table row.
func (s *Subdivider) validate(elem hemesh.Handle, plan CutPlan, split bool) (Case, int, error) {
	if !s.mesh.IsLiveElement(elem) {
		return CaseNone, 0, fmt.Errorf("%w: element %d", hemesh.ErrElemNotFound, elem)
	}

	ctEdges, ctNodes := plan.CountEdges(), plan.CountNodes()
	var c Case
	switch {
	case plan.EdgeCode&^0x3F != 0 || ctNodes != 0:
		c = CaseNone
	case ctEdges == 3:
		c = CaseA
	case ctEdges == 4:
		c = CaseB
	}
	entry, ok := TableEntry(plan.EdgeCode)
	if c == CaseNone || !ok {
		return CaseNone, 0, fmt.Errorf("%w: code %d (%d edges, %d nodes)", ErrUnhandledCase, plan.EdgeCode, ctEdges, ctNodes)
	}

	for i := 0; i < 6; i++ {
		if !plan.Cuts(i) {
			continue
		}
		e := s.mesh.ElementEdge(elem, i)
		if !s.mesh.IsLiveEdge(e) {
			return CaseNone, 0, fmt.Errorf("%w: local edge %d of element %d", hemesh.ErrEdgeNotFound, i, elem)
		}
		length, d := s.mesh.EdgeLength(e), plan.Distances[i]
		if !(d > 0 && d < length) {
			return CaseNone, 0, fmt.Errorf("%w: local edge %d, distance %g, length %g", ErrCutDistance, i, d, length)
		}
	}

	if c == CaseB && split {
		if err := checkSplitGroups(&caseB[entry]); err != nil {
			return CaseNone, 0, fmt.Errorf("code %d: %w", plan.EdgeCode, err)
		}
	}

	return c, entry, nil
}

// checkSplitGroups requires each 3-tet group of a case B row to span 6 slots.
func checkSplitGroups(rows *[6][4]uint8) error {
	for g := 0; g < 2; g++ {
		if n := len(groupSlots(rows[3*g : 3*g+3])); n != 6 {
			return fmt.Errorf("%w: group %d spans %d nodes", ErrInconsistentSplit, g+1, n)
		}
	}
	return nil
}

// cut tears every marked edge and fills the virtual slots.
func (s *Subdivider) cut(elem hemesh.Handle, plan CutPlan, slots *[slotCount]hemesh.Handle) error {
	el := s.mesh.ElemAt(elem)
	for i := range slots {
		slots[i] = hemesh.InvalidHandle
	}
	copy(slots[:cornerSlots], el.Nodes[:])

	for i := 0; i < 6; i++ {
		if !plan.Cuts(i) {
			continue
		}
		e := s.mesh.ElementEdge(elem, i)
		from := s.mesh.EdgeAt(e).From
		np0, np1, err := s.mesh.CutEdge(e, plan.Distances[i])
		if err != nil {
			return fmt.Errorf("local edge %d: %w", i, err)
		}

		lo, _ := hemesh.LocalEdge(i)
		if from == el.Nodes[lo] {
			slots[4+2*i], slots[5+2*i] = np0, np1
		} else {
			slots[4+2*i], slots[5+2*i] = np1, np0
		}
	}

	return nil
}

func (s *Subdivider) applyCaseA(res *Result, entry int, split bool) error {
	row := &caseA[entry]
	for k := 0; k < 4; k++ {
		var r [4]uint8
		copy(r[:], row[4*k:4*k+4])
		nodes := resolve(&res.CutNodes, r)
		if k == 0 && split {
			s.pryCorner(nodes)
		}
		h, err := s.mesh.InsertElement(nodes)
		if err != nil {
			return fmt.Errorf("case A tet %d: %w", k, err)
		}
		res.Inserted = append(res.Inserted, h)
	}

	return nil
}

func (s *Subdivider) applyCaseB(res *Result, entry int, split bool) error {
	rows := &caseB[entry]
	for k, r := range rows {
		h, err := s.mesh.InsertElement(resolve(&res.CutNodes, r))
		if err != nil {
			return fmt.Errorf("case B tet %d: %w", k, err)
		}
		res.Inserted = append(res.Inserted, h)
	}
	if split {
		s.pryGroups(&res.CutNodes, rows)
	}

	return nil
}

// pryCorner moves the four nodes of the corner tet along the direction from
// its centroid to its first node, by SplitFactor times that distance.
func (s *Subdivider) pryCorner(nodes [4]hemesh.Handle) {
	c := s.mesh.Centroid(nodes[:])
	d := r3.Sub(s.mesh.NodeAt(nodes[0]).Pos, c)
	s.translate(nodes[:], d)
}

// pryGroups moves group 1 away from group 2 by SplitFactor times the
// distance between their centroids.
func (s *Subdivider) pryGroups(slots *[slotCount]hemesh.Handle, rows *[6][4]uint8) {
	g1 := handles(slots, groupSlots(rows[0:3]))
	g2 := handles(slots, groupSlots(rows[3:6]))
	d := r3.Sub(s.mesh.Centroid(g1), s.mesh.Centroid(g2))
	s.translate(g1, d)
}

func (s *Subdivider) translate(nodes []hemesh.Handle, d r3.Vec) {
	l := r3.Norm(d)
	if l == 0 {
		return
	}
	off := r3.Scale(s.opts.SplitFactor*l, r3.Scale(1/l, d))
	for _, n := range nodes {
		_ = s.mesh.SetNodePos(n, r3.Add(s.mesh.NodeAt(n).Pos, off))
	}
}

func resolve(slots *[slotCount]hemesh.Handle, r [4]uint8) [4]hemesh.Handle {
	return [4]hemesh.Handle{slots[r[0]], slots[r[1]], slots[r[2]], slots[r[3]]}
}

func handles(slots *[slotCount]hemesh.Handle, idx []uint8) []hemesh.Handle {
	out := make([]hemesh.Handle, len(idx))
	for i, v := range idx {
		out[i] = slots[v]
	}
	return out
}
