package blendmark

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hexelm/blendmark-go/blend"
)

// ErrMismatch is reported when the accelerated and reference outputs
// differ in the active window.
var ErrMismatch = errors.New("blendmark: variant outputs differ")

// ErrRowCopyMismatch is reported when, after an image copy, a destination
// row does not equal the corresponding source row.
var ErrRowCopyMismatch = errors.New("blendmark: destination row differs from source")

// Runner drives one (operation, format) pair across a combination matrix.
// Each cell runs hermetically on a fresh pair of guard-banded buffers, the
// accelerated and the reference variant over identical logical input, and
// the outputs are compared element-wise, guards included.
type Runner struct {
	Op     Operation
	Format blend.ColorFormat
	Fg     blend.Color
	Bg     blend.Color
	Log    *slog.Logger
}

// NewRunner returns a Runner with the default test colors.
func NewRunner(op Operation, format blend.ColorFormat) *Runner {
	return &Runner{
		Op:     op,
		Format: format,
		Fg:     blend.DefaultFgColor,
		Bg:     blend.DefaultBgColor,
		Log:    slog.Default(),
	}
}

// RunMatrix sweeps the matrix and runs one comparison case per cell. It
// returns the number of combinations exercised and the first failure, if
// any, wrapped with the failing cell's geometry.
func (r *Runner) RunMatrix(m *MatrixParams) (int, error) {
	count, err := m.Sweep(r.RunCase)
	if err != nil {
		return count, err
	}
	r.Log.Info("matrix sweep complete", "op", r.Op.String(), "format", r.Format.String(), "combinations", count)
	return count, nil
}

// RunCase runs a single matrix cell: allocate twin destinations (and a
// shared source for image ops), generate identical vectors, invoke both
// variants, then compare.
func (r *Runner) RunCase(g CaseGeometry) error {
	elem := r.Format.ElemSize()
	activeLen := g.H * g.DestStride

	accel, err := NewBuffer(activeLen, GuardElems, elem, g.DestUnalign)
	if err != nil {
		return fmt.Errorf("allocating accelerated buffer (%s): %w", g, err)
	}
	ref, err := NewBuffer(activeLen, GuardElems, elem, g.DestUnalign)
	if err != nil {
		return fmt.Errorf("allocating reference buffer (%s): %w", g, err)
	}

	// Source buffers carry no guards; overruns surface on the destination
	// side, where the writes land.
	var src []byte
	switch r.Op {
	case OpFill:
		fillRampVector(accel)
		fillRampVector(ref)
	case OpFillOpa:
		fillOpaBackground(accel, r.Format, r.Bg, g.BgOpa)
		fillOpaBackground(ref, r.Format, r.Bg, g.BgOpa)
	case OpImage:
		srcBuf, err := NewBuffer(g.H*g.SrcStride, 0, elem, g.SrcUnalign)
		if err != nil {
			return fmt.Errorf("allocating source buffer (%s): %w", g, err)
		}
		src = srcBuf.Active()
		fillImageSource(src, r.Format)
		fillImageDest(accel)
		fillImageDest(ref)
	}

	if err := r.invoke(accel.Active(), src, g, blend.Accelerated); err != nil {
		return fmt.Errorf("accelerated invocation (%s): %w", g, err)
	}
	if err := r.invoke(ref.Active(), src, g, blend.Reference); err != nil {
		return fmt.Errorf("reference invocation (%s): %w", g, err)
	}

	return r.compare(accel, ref, src, g)
}

func (r *Runner) invoke(dest, src []byte, g CaseGeometry, v blend.Variant) error {
	elem := r.Format.ElemSize()
	switch r.Op {
	case OpFill, OpFillOpa:
		opa := uint8(blend.OpaCover)
		if r.Op == OpFillOpa {
			opa = g.FgOpa
		}
		d := &blend.FillDesc{
			Dest:       dest,
			DestW:      g.W,
			DestH:      g.H,
			DestStride: g.DestStride * elem,
			Color:      r.Fg,
			Opa:        opa,
			Variant:    v,
		}
		if r.Format == blend.FormatRGB565 {
			return blend.FillRGB565(d)
		}
		return blend.FillARGB8888(d)
	case OpImage:
		d := &blend.ImageDesc{
			Dest:       dest,
			DestW:      g.W,
			DestH:      g.H,
			DestStride: g.DestStride * elem,
			Src:        src,
			SrcStride:  g.SrcStride * elem,
			Opa:        g.FgOpa,
			Variant:    v,
		}
		if r.Format == blend.FormatRGB565 {
			return blend.ImageRGB565(d)
		}
		return blend.ImageARGB8888(d)
	default:
		return fmt.Errorf("blendmark: unknown operation %d", r.Op)
	}
}

// compare performs the full evaluation of one cell: guard integrity on
// both buffers, element-wise equality of the active windows, and for
// image copies the row-by-row destination/source check. The first
// difference aborts the comparison so the report stays anchored to the
// failing input class.
func (r *Runner) compare(accel, ref *Buffer, src []byte, g CaseGeometry) error {
	if err := accel.CheckGuards(); err != nil {
		return fmt.Errorf("accelerated buffer (%s): %w", g, err)
	}
	if err := ref.CheckGuards(); err != nil {
		return fmt.Errorf("reference buffer (%s): %w", g, err)
	}

	if err := compareActive(accel.Active(), ref.Active(), r.Format.ElemSize()); err != nil {
		return fmt.Errorf("%s op=%s format=%s: %w", g, r.Op, r.Format, err)
	}

	if r.Op == OpImage && g.FgOpa >= blend.OpaMax {
		if err := compareRows(accel.Active(), src, g, r.Format.ElemSize()); err != nil {
			return fmt.Errorf("%s op=%s format=%s: %w", g, r.Op, r.Format, err)
		}
	}
	return nil
}

// compareActive checks the two active windows element-wise with the
// format's native width, reporting the first differing element.
func compareActive(accel, ref []byte, elemSize int) error {
	if elemSize == 2 {
		for i := 0; i+2 <= len(accel); i += 2 {
			a := binary.LittleEndian.Uint16(accel[i:])
			b := binary.LittleEndian.Uint16(ref[i:])
			if a != b {
				return fmt.Errorf("%w: element %d accelerated=%#04x reference=%#04x", ErrMismatch, i/2, a, b)
			}
		}
		return nil
	}
	for i := 0; i+4 <= len(accel); i += 4 {
		a := binary.LittleEndian.Uint32(accel[i:])
		b := binary.LittleEndian.Uint32(ref[i:])
		if a != b {
			return fmt.Errorf("%w: element %d accelerated=%#08x reference=%#08x", ErrMismatch, i/4, a, b)
		}
	}
	return nil
}

// compareRows verifies that each destination row's first W elements equal
// the corresponding source row, honoring both strides.
func compareRows(dest, src []byte, g CaseGeometry, elemSize int) error {
	rowBytes := g.W * elemSize
	for row := 0; row < g.H; row++ {
		d := dest[row*g.DestStride*elemSize:]
		s := src[row*g.SrcStride*elemSize:]
		for i := 0; i < rowBytes; i++ {
			if d[i] != s[i] {
				return fmt.Errorf("%w: row %d byte %d dest=%#02x src=%#02x", ErrRowCopyMismatch, row, i, d[i], s[i])
			}
		}
	}
	return nil
}
