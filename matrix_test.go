package blendmark

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// minimalMatrix covers a single cell: every range collapsed to one value.
func minimalMatrix() MatrixParams {
	return MatrixParams{
		MinW: 8, MaxW: 8,
		MinH: 1, MaxH: 1,
		SrcStrideFactor: 1, SrcStrideStep: 1,
		DestStrideFactor: 1, DestStrideStep: 1,
		SrcUnalignStep:  1,
		DestUnalignStep: 1,
		BgOpa:           fixedOpa(),
		FgOpa:           fixedOpa(),
	}
}

func TestSweepSingleCell(t *testing.T) {
	assert := assert.New(t)

	m := minimalMatrix()
	var got []CaseGeometry
	n, err := m.Sweep(func(g CaseGeometry) error {
		got = append(got, g)
		return nil
	})
	assert.NoError(err)
	assert.Equal(1, n)
	assert.Equal([]CaseGeometry{{
		W: 8, H: 1,
		SrcStride: 8, DestStride: 8,
		BgOpa: 255, FgOpa: 255,
	}}, got)
}

func TestSweepCountsGeometry(t *testing.T) {
	assert := assert.New(t)

	m := minimalMatrix()
	m.MinW, m.MaxW = 8, 10
	m.MinH, m.MaxH = 1, 4
	m.MaxDestUnalign = 3
	n, err := m.Sweep(func(CaseGeometry) error { return nil })
	assert.NoError(err)
	// widths * heights * dest unalignments
	assert.Equal(3*4*4, n)
}

func TestSweepStrideSweep(t *testing.T) {
	assert := assert.New(t)

	m := minimalMatrix()
	m.MinW, m.MaxW = 8, 8
	m.DestStrideFactor = 2
	var strides []int
	_, err := m.Sweep(func(g CaseGeometry) error {
		strides = append(strides, g.DestStride)
		return nil
	})
	assert.NoError(err)
	assert.Equal([]int{8, 9, 10, 11, 12, 13, 14, 15, 16}, strides)
}

func TestSweepFixedStrideNeverExceedsWidth(t *testing.T) {
	assert := assert.New(t)

	m := minimalMatrix()
	m.MinW, m.MaxW = 8, 16
	_, err := m.Sweep(func(g CaseGeometry) error {
		assert.Equal(g.W, g.SrcStride)
		assert.Equal(g.W, g.DestStride)
		return nil
	})
	assert.NoError(err)
}

func TestSweepStopsAtFirstError(t *testing.T) {
	assert := assert.New(t)

	boom := errors.New("boom")
	m := minimalMatrix()
	m.MinH, m.MaxH = 1, 16
	calls := 0
	n, err := m.Sweep(func(CaseGeometry) error {
		calls++
		if calls == 5 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(err, boom)
	assert.Equal(5, calls)
	// Cells completed before the failing one.
	assert.Equal(4, n)
}

func TestOpaRangeStepDensity(t *testing.T) {
	assert := assert.New(t)

	r := OpaRange{Min: 0, Max: 255, Step: 1}
	// Fine near the transparent edge.
	assert.Equal(1, r.step(0))
	assert.Equal(1, r.step(5))
	// Coarse through the middle.
	assert.Equal(20, r.step(6))
	assert.Equal(20, r.step(128))
	assert.Equal(20, r.step(245))
	// Fine again near the covering edge.
	assert.Equal(1, r.step(246))
	assert.Equal(1, r.step(255))
}

func TestOpaRangeVisitsEdges(t *testing.T) {
	assert := assert.New(t)

	r := OpaRange{Min: 0, Max: 254, Step: 1}
	var visited []int
	for opa := r.Min; opa <= r.Max; opa += r.step(opa) {
		visited = append(visited, opa)
	}
	// Every value at the edges, sparse in the middle.
	assert.Equal([]int{0, 1, 2, 3, 4, 5, 6}, visited[:7])
	assert.Contains(visited, 246)
	assert.Equal(254, visited[len(visited)-1])
	assert.NotContains(visited, 100)
	assert.Less(len(visited), 40)
}

func TestOpaRangeZeroStepClamped(t *testing.T) {
	assert := assert.New(t)

	r := OpaRange{Min: 250, Max: 255, Step: 0}
	count := 0
	for opa := r.Min; opa <= r.Max; opa += r.step(opa) {
		count++
	}
	assert.Equal(6, count)
}

func TestCaseGeometryString(t *testing.T) {
	g := CaseGeometry{W: 9, H: 3, SrcStride: 12, DestStride: 10, SrcUnalign: 1, DestUnalign: 2, BgOpa: 7, FgOpa: 200}
	assert.Equal(t,
		"w=9 h=3 src_stride=12 dest_stride=10 src_unalign=1 dest_unalign=2 bg_opa=7 fg_opa=200",
		g.String())
}
