// Package blend implements software pixel-blending primitives for the
// ARGB8888 and RGB565 color formats in two interchangeable variants: a
// portable per-pixel reference path and an accelerated word-wise path
// selected at runtime. Both variants produce bit-identical output; the
// accelerated path only changes how the pixels are walked and stored.
//
// The color math follows the LVGL software renderer: channel mixes use the
// (fg*alpha + bg*(255-alpha)) >> 8 form for 32-bit pixels and the 5-bit
// packed-field mix for RGB565. Pixels are little-endian in memory,
// ARGB8888 laid out as B,G,R,A.
package blend

// Opacity landmarks. Values above OpaMax are treated as fully covering,
// values at or below OpaMin as fully transparent.
const (
	OpaMin   = 2
	OpaMax   = 253
	OpaCover = 255
)

// ColorFormat identifies the pixel layout of a destination buffer.
type ColorFormat int

const (
	// FormatARGB8888 is a 4-byte pixel, bytes B,G,R,A in memory.
	FormatARGB8888 ColorFormat = iota
	// FormatRGB565 is a 2-byte pixel, little-endian rrrrrggggggbbbbb.
	FormatRGB565
)

// ElemSize returns the pixel size in bytes.
func (f ColorFormat) ElemSize() int {
	if f == FormatRGB565 {
		return 2
	}
	return 4
}

func (f ColorFormat) String() string {
	switch f {
	case FormatARGB8888:
		return "ARGB8888"
	case FormatRGB565:
		return "RGB565"
	default:
		return "unknown"
	}
}

// Color is a plain RGB888 fill color without opacity.
type Color struct {
	R, G, B uint8
}

// ARGB8888 packs the color with the given alpha into a 32-bit pixel value
// (A<<24 | R<<16 | G<<8 | B, matching the B,G,R,A byte order in memory).
func (c Color) ARGB8888(alpha uint8) uint32 {
	return uint32(alpha)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// RGB565 packs the color into a 16-bit 5-6-5 pixel value, truncating the
// low bits of each channel.
func (c Color) RGB565() uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// mix32 blends fg over bg. The fg alpha channel is the mix ratio; the
// result keeps the bg alpha channel. Alphas above OpaMax short-circuit to
// fg (including its alpha), alphas at or below OpaMin leave bg untouched.
func mix32(fg, bg uint32) uint32 {
	a := fg >> 24
	if a >= OpaMax {
		return fg
	}
	if a <= OpaMin {
		return bg
	}
	inv := 255 - a
	r := ((fg>>16&0xFF)*a + (bg>>16&0xFF)*inv) >> 8
	g := ((fg>>8&0xFF)*a + (bg>>8&0xFF)*inv) >> 8
	b := ((fg&0xFF)*a + (bg&0xFF)*inv) >> 8
	return bg&0xFF000000 | r<<16 | g<<8 | b
}

// mix16 blends two RGB565 pixels with the given ratio (0 = full bg,
// 255 = full fg). The ratio is reduced to 5 bits and both pixels are
// spread into a sparse 32-bit form so all three channels mix in one
// multiply.
func mix16(fg, bg uint16, mix uint8) uint16 {
	if mix == 0 {
		return bg
	}
	if mix == 255 {
		return fg
	}
	m := (uint32(mix) + 4) >> 3
	bgx := (uint32(bg) | uint32(bg)<<16) & 0x7E0F81F
	fgx := (uint32(fg) | uint32(fg)<<16) & 0x7E0F81F
	res := ((((fgx - bgx) * m) >> 5) + bgx) & 0x7E0F81F
	return uint16(res>>16) | uint16(res)
}

// opaMix2 combines a pixel alpha with a blend opacity.
func opaMix2(a1, a2 uint8) uint8 {
	return uint8((uint16(a1) * uint16(a2)) >> 8)
}
