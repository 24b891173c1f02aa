// Package fragments labels the connected pieces of a torn hemesh.Mesh with a
// breadth-first walk over element adjacency.
//
// After a case A subdivision the detached corner tet shares no node with the
// rest of the element, so Components reports it as its own piece.
package fragments

import (
	"context"
	"fmt"

	"github.com/korzen/tetcutter/hemesh"
)

// walker encapsulates mutable search state.
type walker struct {
	mesh    *hemesh.Mesh
	opts    Options
	ctx     context.Context
	links   map[hemesh.Handle][]hemesh.Handle
	queue   []hemesh.Handle
	visited map[hemesh.Handle]bool
	res     *Result
}

// Components partitions the live elements of m into connected pieces.
// Returns ErrMeshNil, ErrOptionViolation, the context error on cancellation
// or any OnVisit error.
// Complexity: O(E) for face adjacency.
func Components(m *hemesh.Mesh, opts ...Option) (*Result, error) {
	if m == nil {
		return nil, ErrMeshNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	live := m.LiveElements()
	w := &walker{
		mesh:    m,
		opts:    o,
		ctx:     o.Ctx,
		links:   index(m, live, o.Adjacency),
		queue:   make([]hemesh.Handle, 0, len(live)),
		visited: make(map[hemesh.Handle]bool, len(live)),
		res:     &Result{PieceOf: make(map[hemesh.Handle]int, len(live))},
	}

	for _, h := range live {
		if w.visited[h] {
			continue
		}
		w.res.Pieces = append(w.res.Pieces, nil)
		w.enqueue(h)
		if err := w.loop(len(w.res.Pieces) - 1); err != nil {
			return w.res, err
		}
	}

	return w.res, nil
}

// index maps each shared entity (face or node) to the live elements citing it.
func index(m *hemesh.Mesh, live []hemesh.Handle, adj Adjacency) map[hemesh.Handle][]hemesh.Handle {
	links := make(map[hemesh.Handle][]hemesh.Handle, 4*len(live))
	for _, h := range live {
		el := m.ElemAt(h)
		keys := el.Faces
		if adj == ByNode {
			keys = el.Nodes
		}
		for _, k := range keys {
			links[k] = append(links[k], h)
		}
	}
	return links
}

func (w *walker) enqueue(h hemesh.Handle) {
	w.visited[h] = true
	w.queue = append(w.queue, h)
}

// loop drains the queue into piece p.
func (w *walker) loop(p int) error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		h := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Pieces[p] = append(w.res.Pieces[p], h)
		w.res.PieceOf[h] = p
		if err := w.opts.OnVisit(h, p); err != nil {
			return fmt.Errorf("fragments: OnVisit error at element %d: %w", h, err)
		}
		w.enqueueNeighbors(h)
	}
	return nil
}

func (w *walker) enqueueNeighbors(h hemesh.Handle) {
	el := w.mesh.ElemAt(h)
	keys := el.Faces
	if w.opts.Adjacency == ByNode {
		keys = el.Nodes
	}
	for _, k := range keys {
		for _, nbr := range w.links[k] {
			if nbr == h || w.visited[nbr] {
				continue
			}
			if !w.opts.FilterNeighbor(h, nbr) {
				continue
			}
			w.enqueue(nbr)
		}
	}
}
