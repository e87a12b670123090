package blend

import (
	"errors"
	"fmt"
)

// ErrBadGeometry is returned when a descriptor's dimensions, stride and
// buffer length do not agree.
var ErrBadGeometry = errors.New("blend: invalid descriptor geometry")

// ErrVariantUnavailable is returned when the Accelerated variant is
// requested on a platform where no accelerated path was selected.
var ErrVariantUnavailable = errors.New("blend: accelerated variant unavailable")

// ErrUnknownVariant is returned for a Variant value outside the enum.
var ErrUnknownVariant = errors.New("blend: unknown variant")

// Variant selects which implementation of an operation runs. The two
// variants are observably equivalent; Reference is the portable baseline
// and Accelerated is the optimized path under test.
type Variant int

const (
	Reference Variant = iota
	Accelerated
)

func (v Variant) String() string {
	switch v {
	case Reference:
		return "reference"
	case Accelerated:
		return "accelerated"
	default:
		return "unknown"
	}
}

// FillDesc describes a fill operation: write Color (blended with Opa when
// Opa < OpaMax) into a DestW x DestH window of Dest. Dest addresses the
// window's first pixel; DestStride is in bytes and may exceed the row
// width, in which case the padding is left untouched.
type FillDesc struct {
	Dest       []byte
	DestW      int
	DestH      int
	DestStride int
	Color      Color
	Opa        uint8
	Variant    Variant
}

func (d *FillDesc) validate(f ColorFormat) error {
	return checkWindow(len(d.Dest), d.DestW, d.DestH, d.DestStride, f.ElemSize(), "dest")
}

// ImageDesc describes an image copy/blend: combine a DestW x DestH window
// of Src into Dest. Both strides are in bytes. Opa scales the source
// coverage; at OpaMax and above the source is applied as-is.
type ImageDesc struct {
	Dest       []byte
	DestW      int
	DestH      int
	DestStride int
	Src        []byte
	SrcStride  int
	Opa        uint8
	Variant    Variant
}

func (d *ImageDesc) validate(f ColorFormat) error {
	if err := checkWindow(len(d.Dest), d.DestW, d.DestH, d.DestStride, f.ElemSize(), "dest"); err != nil {
		return err
	}
	return checkWindow(len(d.Src), d.DestW, d.DestH, d.SrcStride, f.ElemSize(), "src")
}

func checkWindow(bufLen, w, h, stride, elemSize int, name string) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %s %dx%d", ErrBadGeometry, name, w, h)
	}
	if stride < w*elemSize {
		return fmt.Errorf("%w: %s stride %d below row width %d", ErrBadGeometry, name, stride, w*elemSize)
	}
	if need := (h-1)*stride + w*elemSize; bufLen < need {
		return fmt.Errorf("%w: %s buffer %d bytes, need %d", ErrBadGeometry, name, bufLen, need)
	}
	return nil
}

// FillARGB8888 runs the fill described by d on an ARGB8888 destination.
// Opa at or above OpaMax is a plain fill storing the color with full
// alpha; below that each pixel is mixed with the existing background.
func FillARGB8888(d *FillDesc) error {
	if err := d.validate(FormatARGB8888); err != nil {
		return err
	}
	switch d.Variant {
	case Reference:
		fillRefARGB8888(d)
	case Accelerated:
		if !hasAccel {
			return ErrVariantUnavailable
		}
		fillFastARGB8888(d)
	default:
		return ErrUnknownVariant
	}
	return nil
}

// FillRGB565 runs the fill described by d on an RGB565 destination.
func FillRGB565(d *FillDesc) error {
	if err := d.validate(FormatRGB565); err != nil {
		return err
	}
	switch d.Variant {
	case Reference:
		fillRefRGB565(d)
	case Accelerated:
		if !hasAccel {
			return ErrVariantUnavailable
		}
		fillFastRGB565(d)
	default:
		return ErrUnknownVariant
	}
	return nil
}

// ImageARGB8888 blends an ARGB8888 source window into an ARGB8888
// destination, normal blend mode. Each source pixel's own alpha (scaled by
// Opa when Opa < OpaMax) decides its coverage.
func ImageARGB8888(d *ImageDesc) error {
	if err := d.validate(FormatARGB8888); err != nil {
		return err
	}
	switch d.Variant {
	case Reference:
		imageRefARGB8888(d)
	case Accelerated:
		if !hasAccel {
			return ErrVariantUnavailable
		}
		imageFastARGB8888(d)
	default:
		return ErrUnknownVariant
	}
	return nil
}

// ImageRGB565 copies or blends an RGB565 source window into an RGB565
// destination. RGB565 carries no alpha, so Opa at or above OpaMax is a
// straight row copy.
func ImageRGB565(d *ImageDesc) error {
	if err := d.validate(FormatRGB565); err != nil {
		return err
	}
	switch d.Variant {
	case Reference:
		imageRefRGB565(d)
	case Accelerated:
		if !hasAccel {
			return ErrVariantUnavailable
		}
		imageFastRGB565(d)
	default:
		return ErrUnknownVariant
	}
	return nil
}
