package blend

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillARGB8888Plain(t *testing.T) {
	const w, h, stride = 3, 2, 16 // stride in bytes, one pixel of padding
	dest := make([]byte, h*stride)
	d := &FillDesc{
		Dest:       dest,
		DestW:      w,
		DestH:      h,
		DestStride: stride,
		Color:      Color{R: 0x12, G: 0x34, B: 0x56},
		Opa:        OpaCover,
		Variant:    Reference,
	}
	assert.NoError(t, FillARGB8888(d))

	want := uint32(0xFF123456)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			got := binary.LittleEndian.Uint32(dest[y*stride+x*4:])
			assert.Equalf(t, want, got, "pixel (%d,%d)", x, y)
		}
		assert.Zerof(t, binary.LittleEndian.Uint32(dest[y*stride+w*4:]), "stride padding row %d", y)
	}
}

func TestFillARGB8888OpaOnZeroBackground(t *testing.T) {
	dest := make([]byte, 4)
	d := &FillDesc{
		Dest:       dest,
		DestW:      1,
		DestH:      1,
		DestStride: 4,
		Color:      Color{R: 0x12, G: 0x34, B: 0x56},
		Opa:        128,
		Variant:    Reference,
	}
	assert.NoError(t, FillARGB8888(d))

	// (c*128 + 0*127) >> 8 == c>>1, alpha stays the background's zero.
	assert.Equal(t, uint32(0x00091A2B), binary.LittleEndian.Uint32(dest))
}

func TestFillARGB8888OpaTransparentIsNoop(t *testing.T) {
	dest := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	d := &FillDesc{
		Dest:       dest,
		DestW:      1,
		DestH:      1,
		DestStride: 4,
		Color:      Color{R: 0xFF, G: 0xFF, B: 0xFF},
		Opa:        OpaMin,
		Variant:    Reference,
	}
	assert.NoError(t, FillARGB8888(d))
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, dest)
}

func TestFillRGB565Plain(t *testing.T) {
	const w, h, stride = 5, 3, 12
	dest := make([]byte, h*stride)
	d := &FillDesc{
		Dest:       dest,
		DestW:      w,
		DestH:      h,
		DestStride: stride,
		Color:      Color{R: 0x12, G: 0x34, B: 0x56},
		Opa:        OpaCover,
		Variant:    Reference,
	}
	assert.NoError(t, FillRGB565(d))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			got := binary.LittleEndian.Uint16(dest[y*stride+x*2:])
			assert.Equalf(t, uint16(0x11AA), got, "pixel (%d,%d)", x, y)
		}
		assert.Zerof(t, binary.LittleEndian.Uint16(dest[y*stride+w*2:]), "stride padding row %d", y)
	}
}

func TestImageRGB565FullOpacityIsRowCopy(t *testing.T) {
	const w, h = 4, 3
	const srcStride, destStride = 12, 10 // bytes, both padded past w*2
	src := make([]byte, h*srcStride)
	for i := range src {
		src[i] = byte(i*2 + 1)
	}
	dest := make([]byte, h*destStride)

	d := &ImageDesc{
		Dest:       dest,
		DestW:      w,
		DestH:      h,
		DestStride: destStride,
		Src:        src,
		SrcStride:  srcStride,
		Opa:        OpaCover,
		Variant:    Reference,
	}
	assert.NoError(t, ImageRGB565(d))

	for y := 0; y < h; y++ {
		assert.Equalf(t, src[y*srcStride:y*srcStride+w*2], dest[y*destStride:y*destStride+w*2], "row %d", y)
		assert.Zerof(t, binary.LittleEndian.Uint16(dest[y*destStride+w*2:]), "stride padding row %d", y)
	}
}

func TestImageARGB8888OpaqueSourceIsCopy(t *testing.T) {
	const w, h, stride = 2, 2, 8
	src := make([]byte, h*stride)
	for i := range src {
		src[i] = byte(i * 3)
	}
	// Opaque alpha on every source pixel forces the mix to return the
	// source outright.
	for i := 3; i < len(src); i += 4 {
		src[i] = 0xFF
	}
	dest := make([]byte, h*stride)

	d := &ImageDesc{
		Dest:       dest,
		DestW:      w,
		DestH:      h,
		DestStride: stride,
		Src:        src,
		SrcStride:  stride,
		Opa:        OpaCover,
		Variant:    Reference,
	}
	assert.NoError(t, ImageARGB8888(d))
	assert.Equal(t, src, dest)
}

func TestImageARGB8888TransparentSourceKeepsDest(t *testing.T) {
	src := []byte{0x11, 0x22, 0x33, 0x00} // alpha 0
	dest := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	d := &ImageDesc{
		Dest:       dest,
		DestW:      1,
		DestH:      1,
		DestStride: 4,
		Src:        src,
		SrcStride:  4,
		Opa:        OpaCover,
		Variant:    Reference,
	}
	assert.NoError(t, ImageARGB8888(d))
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, dest)
}

func TestFillGeometryValidation(t *testing.T) {
	tests := []struct {
		name string
		d    FillDesc
	}{
		{"zero width", FillDesc{Dest: make([]byte, 64), DestW: 0, DestH: 1, DestStride: 16}},
		{"zero height", FillDesc{Dest: make([]byte, 64), DestW: 2, DestH: 0, DestStride: 16}},
		{"stride below row", FillDesc{Dest: make([]byte, 64), DestW: 8, DestH: 1, DestStride: 16}},
		{"short buffer", FillDesc{Dest: make([]byte, 15), DestW: 4, DestH: 1, DestStride: 16}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.d
			assert.ErrorIs(t, FillARGB8888(&d), ErrBadGeometry)
		})
	}
}

func TestFillUnknownVariant(t *testing.T) {
	d := &FillDesc{Dest: make([]byte, 16), DestW: 1, DestH: 1, DestStride: 4, Variant: Variant(7)}
	assert.ErrorIs(t, FillARGB8888(d), ErrUnknownVariant)
}

// TestFastMatchesReferenceSpotChecks smoke-tests the accelerated paths on
// a handful of geometries before the exhaustive harness matrix runs. The
// destinations start from a deterministic byte pattern.
func TestFastMatchesReferenceSpotChecks(t *testing.T) {
	if !HasAccelerated() {
		t.Skip("accelerated path disabled")
	}
	widths := []int{1, 2, 3, 4, 5, 7, 8, 13, 16, 17}
	opas := []uint8{0, 1, OpaMin, 3, 77, 128, 200, OpaMax - 1, OpaMax, 254, OpaCover}

	for _, w := range widths {
		for _, opa := range opas {
			t.Run(fmt.Sprintf("w%d_opa%d", w, opa), func(t *testing.T) {
				const h = 3
				stride := (w + 2) * 4
				ref := seededBuf(h * stride)
				fast := seededBuf(h * stride)

				dRef := &FillDesc{Dest: ref, DestW: w, DestH: h, DestStride: stride,
					Color: DefaultFgColor, Opa: opa, Variant: Reference}
				dFast := &FillDesc{Dest: fast, DestW: w, DestH: h, DestStride: stride,
					Color: DefaultFgColor, Opa: opa, Variant: Accelerated}

				assert.NoError(t, FillARGB8888(dRef))
				assert.NoError(t, FillARGB8888(dFast))
				assert.Equal(t, ref, fast)
			})
		}
	}
}

func TestFastMatchesReferenceRGB565(t *testing.T) {
	if !HasAccelerated() {
		t.Skip("accelerated path disabled")
	}
	for _, w := range []int{1, 3, 4, 7, 8, 9, 15, 16, 31} {
		for _, opa := range []uint8{0, 5, 130, OpaMax, OpaCover} {
			const h = 2
			stride := (w + 1) * 2
			ref := seededBuf(h * stride)
			fast := seededBuf(h * stride)

			dRef := &FillDesc{Dest: ref, DestW: w, DestH: h, DestStride: stride,
				Color: DefaultFgColor, Opa: opa, Variant: Reference}
			dFast := &FillDesc{Dest: fast, DestW: w, DestH: h, DestStride: stride,
				Color: DefaultFgColor, Opa: opa, Variant: Accelerated}

			assert.NoError(t, FillRGB565(dRef))
			assert.NoError(t, FillRGB565(dFast))
			assert.Equalf(t, ref, fast, "w=%d opa=%d", w, opa)
		}
	}
}

func TestFastMatchesReferenceImage(t *testing.T) {
	if !HasAccelerated() {
		t.Skip("accelerated path disabled")
	}
	const w, h = 7, 4
	for _, opa := range []uint8{0, 64, 130, OpaMax, OpaCover} {
		srcStride := (w + 3) * 4
		destStride := (w + 1) * 4
		src := seededBuf(h * srcStride)
		ref := seededBuf(h * destStride)
		fast := append([]byte(nil), ref...)

		dRef := &ImageDesc{Dest: ref, DestW: w, DestH: h, DestStride: destStride,
			Src: src, SrcStride: srcStride, Opa: opa, Variant: Reference}
		dFast := &ImageDesc{Dest: fast, DestW: w, DestH: h, DestStride: destStride,
			Src: src, SrcStride: srcStride, Opa: opa, Variant: Accelerated}

		assert.NoError(t, ImageARGB8888(dRef))
		assert.NoError(t, ImageARGB8888(dFast))
		assert.Equalf(t, ref, fast, "opa=%d", opa)
	}
}

func seededBuf(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i*7 + 3)
	}
	return buf
}
