package blendmark

import (
	"encoding/binary"

	"github.com/hexelm/blendmark-go/blend"
)

// Operation selects the blend primitive a test case exercises.
type Operation int

const (
	// OpFill is a plain color fill at full opacity.
	OpFill Operation = iota
	// OpFillOpa is a color fill blended with a foreground opacity over a
	// seeded background.
	OpFillOpa
	// OpImage is an image copy-blend from an independent source buffer.
	OpImage
)

func (op Operation) String() string {
	switch op {
	case OpFill:
		return "fill"
	case OpFillOpa:
		return "fill_opa"
	case OpImage:
		return "image"
	default:
		return "unknown"
	}
}

// Test vector generation. All fills are pure functions of the geometry and
// operation: repeated invocation produces identical bytes, which is what
// makes failing matrix cells reproducible.

// fillRampVector writes the plain-fill destination pattern: the first byte
// of every element carries a ramp over the element index counted from the
// start of the leading guard. Both twin buffers get identical bytes; the
// guard regions stay zero.
func fillRampVector(b *Buffer) {
	data := b.WithGuards()
	elem := b.ElemSize()
	guard := b.GuardLen()
	for i := guard; i < guard+b.ActiveLen(); i++ {
		data[i*elem] = byte(i % 255)
	}
}

// fillOpaBackground seeds every active element with the background color.
// For ARGB8888 the element alpha carries bgOpa, the swept background
// opacity; RGB565 has no alpha so the color is stored as-is.
func fillOpaBackground(b *Buffer, format blend.ColorFormat, bg blend.Color, bgOpa uint8) {
	active := b.Active()
	switch format {
	case blend.FormatARGB8888:
		v := bg.ARGB8888(bgOpa)
		for i := 0; i < len(active); i += 4 {
			binary.LittleEndian.PutUint32(active[i:], v)
		}
	case blend.FormatRGB565:
		v := bg.RGB565()
		for i := 0; i < len(active); i += 2 {
			binary.LittleEndian.PutUint16(active[i:], v)
		}
	}
}

// fillImageDest writes the image-op destination pattern, an even-value
// byte ramp, so source and destination contributions stay distinguishable
// after blending.
func fillImageDest(dest *Buffer) {
	active := dest.Active()
	for i := range active {
		active[i] = byte((i * 2) % 256)
	}
}

// fillImageSource writes the odd-value byte ramp into the shared source.
// For ARGB8888 every source alpha byte is forced opaque, which turns the
// normal-mode blend into a copy and keeps the row-copy invariant
// checkable.
func fillImageSource(src []byte, format blend.ColorFormat) {
	for i := range src {
		src[i] = byte((i*2 + 1) % 256)
	}
	if format == blend.FormatARGB8888 {
		for i := 3; i < len(src); i += 4 {
			src[i] = 0xFF
		}
	}
}
