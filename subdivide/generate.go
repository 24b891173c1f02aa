package subdivide

import (
	"fmt"
	"math"

	"github.com/korzen/tetcutter/hemesh"
)

// GenerateCaseA builds a plan that detaches local node `node` of elem by
// cutting its three incident edges at `fraction` of their length from that
// node. It returns the plan and the number of cut edges (always 3).
//
// Errors: hemesh.ErrElemNotFound, ErrNodeSelector, ErrFraction, ErrOptionViolation.
func (s *Subdivider) GenerateCaseA(elem hemesh.Handle, node uint8, fraction float64) (CutPlan, int, error) {
	if err := s.ready(); err != nil {
		return CutPlan{}, 0, err
	}
	if node > 3 {
		return CutPlan{}, 0, fmt.Errorf("%w: node %d", ErrNodeSelector, node)
	}
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return CutPlan{}, 0, fmt.Errorf("%w: %g", ErrFraction, fraction)
	}
	if !s.mesh.IsLiveElement(elem) {
		return CutPlan{}, 0, fmt.Errorf("%w: element %d", hemesh.ErrElemNotFound, elem)
	}

	el := s.mesh.ElemAt(elem)
	target := el.Nodes[node]

	var plan CutPlan
	for _, i := range caseANodeEdges[node] {
		e := s.mesh.ElementEdge(elem, int(i))
		length := s.mesh.EdgeLength(e)
		plan.EdgeCode |= 1 << i
		if s.mesh.EdgeAt(e).From == target {
			plan.Distances[i] = fraction * length
		} else {
			plan.Distances[i] = (1 - fraction) * length
		}
	}

	return plan, plan.CountEdges(), nil
}

// GenerateCaseB builds a plan for a blade entering through face 0, 1 or 2 of
// elem: four edges are cut at CaseBFraction of their length from Edge.From.
//
// Errors: hemesh.ErrElemNotFound, ErrFaceSelector, ErrOptionViolation.
func (s *Subdivider) GenerateCaseB(elem hemesh.Handle, enteringFace uint8) (CutPlan, error) {
	if err := s.ready(); err != nil {
		return CutPlan{}, err
	}
	if enteringFace > 2 {
		return CutPlan{}, fmt.Errorf("%w: face %d", ErrFaceSelector, enteringFace)
	}
	if !s.mesh.IsLiveElement(elem) {
		return CutPlan{}, fmt.Errorf("%w: element %d", hemesh.ErrElemNotFound, elem)
	}

	var plan CutPlan
	for _, i := range enteringFaceEdges[enteringFace] {
		e := s.mesh.ElementEdge(elem, int(i))
		plan.EdgeCode |= 1 << i
		plan.Distances[i] = s.opts.CaseBFraction * s.mesh.EdgeLength(e)
	}

	return plan, nil
}
