package blendmark

import "fmt"

// OpaRange is an opacity sweep: Min..Max inclusive with a configured fine
// step. A zero or negative step is clamped to 1 so a sweep can never stall.
type OpaRange struct {
	Min, Max int
	Step     int
}

// step returns the increment to apply after visiting opa. Density is
// concentrated at the blending edge cases: within 5 of Min and within 10
// of Max the configured fine step applies, the middle range moves in
// coarse steps of 20.
func (r OpaRange) step(opa int) int {
	if opa > r.Min+5 && opa <= r.Max-10 {
		return 20
	}
	if r.Step <= 0 {
		return 1
	}
	return r.Step
}

// fixedOpa is the degenerate range visiting only the full-cover value.
func fixedOpa() OpaRange {
	return OpaRange{Min: 255, Max: 255, Step: 1}
}

// MatrixParams defines the combination space of one functionality sweep:
// nested ranges over window width and height, source and destination
// stride and byte misalignment, and background/foreground opacity.
// Strides run from the width up to StrideFactor times the width; a factor
// below 2 pins the stride to the width, which is what fill-only sweeps
// use. All ranges are read-only during a sweep.
type MatrixParams struct {
	MinW, MaxW int
	MinH, MaxH int

	SrcStrideFactor  int // 1 = stride fixed at width, 2 = sweep to 2*width
	SrcStrideStep    int
	DestStrideFactor int
	DestStrideStep   int

	MinSrcUnalign, MaxSrcUnalign, SrcUnalignStep    int
	MinDestUnalign, MaxDestUnalign, DestUnalignStep int

	BgOpa OpaRange
	FgOpa OpaRange
}

// FillMatrix is the canonical plain-fill sweep: widths spanning one full
// vector register up to two, every height from a single row to a square
// window, stride pinned to the width and every destination byte
// misalignment an accelerated kernel could be handed.
func FillMatrix() MatrixParams {
	return MatrixParams{
		MinW: 8, MaxW: 16,
		MinH: 1, MaxH: 16,
		SrcStrideFactor: 1, SrcStrideStep: 1,
		DestStrideFactor: 1, DestStrideStep: 1,
		MaxDestUnalign: 16, DestUnalignStep: 1,
		BgOpa: fixedOpa(),
		FgOpa: fixedOpa(),
	}
}

// FillOpaMatrix extends the fill sweep with full background and
// foreground opacity ranges up to one below cover.
func FillOpaMatrix() MatrixParams {
	m := FillMatrix()
	m.BgOpa = OpaRange{Min: 0, Max: 254, Step: 1}
	m.FgOpa = OpaRange{Min: 0, Max: 254, Step: 1}
	return m
}

// ImageMatrix is the canonical image-copy sweep: independent source and
// destination strides from the width up to twice the width, and
// independent byte misalignment on both buffers.
func ImageMatrix() MatrixParams {
	m := FillMatrix()
	m.SrcStrideFactor = 2
	m.DestStrideFactor = 2
	m.MaxSrcUnalign = 16
	m.SrcUnalignStep = 1
	return m
}

// CaseGeometry is one instantiated matrix cell.
type CaseGeometry struct {
	W, H                    int
	SrcStride, DestStride   int // elements
	SrcUnalign, DestUnalign int // bytes
	BgOpa, FgOpa            uint8
}

func (g CaseGeometry) String() string {
	return fmt.Sprintf("w=%d h=%d src_stride=%d dest_stride=%d src_unalign=%d dest_unalign=%d bg_opa=%d fg_opa=%d",
		g.W, g.H, g.SrcStride, g.DestStride, g.SrcUnalign, g.DestUnalign, g.BgOpa, g.FgOpa)
}

// Sweep iterates every combination in the matrix, strictly sequentially,
// invoking fn once per cell. It stops at the first error and returns the
// number of combinations visited so far; on success the count is the full
// matrix size. The count is diagnostic only.
func (m *MatrixParams) Sweep(fn func(g CaseGeometry) error) (int, error) {
	count := 0

	srcFactor := m.SrcStrideFactor
	if srcFactor < 2 {
		srcFactor = 1
	}
	destFactor := m.DestStrideFactor
	if destFactor < 2 {
		destFactor = 1
	}

	for w := m.MinW; w <= m.MaxW; w++ {
		for h := m.MinH; h <= m.MaxH; h++ {
			for srcStride := w; srcStride <= w*srcFactor; srcStride += clampStep(m.SrcStrideStep) {
				for destStride := w; destStride <= w*destFactor; destStride += clampStep(m.DestStrideStep) {
					for srcUA := m.MinSrcUnalign; srcUA <= m.MaxSrcUnalign; srcUA += clampStep(m.SrcUnalignStep) {
						for destUA := m.MinDestUnalign; destUA <= m.MaxDestUnalign; destUA += clampStep(m.DestUnalignStep) {
							for bg := m.BgOpa.Min; bg <= m.BgOpa.Max; bg += m.BgOpa.step(bg) {
								for fg := m.FgOpa.Min; fg <= m.FgOpa.Max; fg += m.FgOpa.step(fg) {
									g := CaseGeometry{
										W: w, H: h,
										SrcStride: srcStride, DestStride: destStride,
										SrcUnalign: srcUA, DestUnalign: destUA,
										BgOpa: uint8(bg), FgOpa: uint8(fg),
									}
									if err := fn(g); err != nil {
										return count, err
									}
									count++
								}
							}
						}
					}
				}
			}
		}
	}
	return count, nil
}

func clampStep(step int) int {
	if step <= 0 {
		return 1
	}
	return step
}
