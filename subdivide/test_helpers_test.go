package subdivide_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/korzen/tetcutter/hemesh"
	"github.com/korzen/tetcutter/subdivide"
)

// quiet returns a logger writing to buf so tests can inspect log lines.
func quiet(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// MustSubdivider returns a Subdivider over a fresh unit tet and its log buffer.
func MustSubdivider(t *testing.T, opts ...subdivide.Option) (*subdivide.Subdivider, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	opts = append([]subdivide.Option{subdivide.WithLogger(quiet(buf))}, opts...)
	s := subdivide.New(hemesh.CreateOneTet(), opts...)
	require.NotNil(t, s.Mesh())

	return s, buf
}

// liveVolume sums |det| over live elements (6x the total volume).
func liveVolume(m *hemesh.Mesh) float64 {
	var sum float64
	for _, h := range m.LiveElements() {
		sum += math.Abs(m.ComputeDeterminant(m.ElemAt(h).Nodes))
	}
	return sum
}

// nodeSet collects the nodes of the given elements.
func nodeSet(m *hemesh.Mesh, elems ...hemesh.Handle) map[hemesh.Handle]bool {
	set := map[hemesh.Handle]bool{}
	for _, h := range elems {
		for _, n := range m.ElemAt(h).Nodes {
			set[n] = true
		}
	}
	return set
}
