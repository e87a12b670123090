package blend

import "errors"

// ErrAlreadyInitialized is returned when a second live Params is requested.
var ErrAlreadyInitialized = errors.New("blend: params already initialized")

// ErrNotInitialized is returned by accessors on a closed or zero Params.
var ErrNotInitialized = errors.New("blend: params not initialized")

// Default test colors. The foreground is the fill color under test, the
// background seeds opacity-blended destinations.
var (
	DefaultFgColor = Color{R: 0x12, G: 0x34, B: 0x56}
	DefaultBgColor = Color{R: 0xAB, G: 0xCD, B: 0xEF}
)

// Area is a blend window geometry in pixels. Stride is in elements and
// never below W.
type Area struct {
	W, H   int
	Stride int
}

// Params is the shared blend configuration for a verification or benchmark
// run: destination/source color formats, the common opacity, the fill
// colors and the current blend area. At most one Params is live per
// process; it is built at suite setup, mutated between cases and released
// at teardown. It is not safe for concurrent use, matching the strictly
// sequential execution model of the harness.
type Params struct {
	format    ColorFormat
	srcFormat ColorFormat
	opa       uint8
	fg, bg    Color
	area      Area
	live      bool
}

// The harness runs single-threaded, a plain flag is enough to reject a
// second instance.
var paramsLive bool

// NewParams returns the process-wide blend parameter context, or
// ErrAlreadyInitialized when one is already live.
func NewParams() (*Params, error) {
	if paramsLive {
		return nil, ErrAlreadyInitialized
	}
	paramsLive = true
	return &Params{
		format:    FormatARGB8888,
		srcFormat: FormatARGB8888,
		opa:       OpaCover,
		fg:        DefaultFgColor,
		bg:        DefaultBgColor,
		live:      true,
	}, nil
}

// Close releases the context so a later suite can create a fresh one.
// Closing twice is an error.
func (p *Params) Close() error {
	if p == nil || !p.live {
		return ErrNotInitialized
	}
	p.live = false
	paramsLive = false
	return nil
}

func (p *Params) check() error {
	if p == nil || !p.live {
		return ErrNotInitialized
	}
	return nil
}

// SetFormat selects the destination color format.
func (p *Params) SetFormat(f ColorFormat) error {
	if err := p.check(); err != nil {
		return err
	}
	p.format = f
	return nil
}

// SetSrcFormat selects the source color format for image operations.
func (p *Params) SetSrcFormat(f ColorFormat) error {
	if err := p.check(); err != nil {
		return err
	}
	p.srcFormat = f
	return nil
}

// SetOpacity sets the common blend opacity.
func (p *Params) SetOpacity(opa uint8) error {
	if err := p.check(); err != nil {
		return err
	}
	p.opa = opa
	return nil
}

// SetArea sets the active blend window. The stride is clamped up to the
// width so a descriptor built from the area is always self-consistent.
func (p *Params) SetArea(a Area) error {
	if err := p.check(); err != nil {
		return err
	}
	if a.Stride < a.W {
		a.Stride = a.W
	}
	p.area = a
	return nil
}

// Format returns the destination color format.
func (p *Params) Format() ColorFormat { return p.format }

// Opacity returns the common blend opacity.
func (p *Params) Opacity() uint8 { return p.opa }

// FgColor returns the fill color under test.
func (p *Params) FgColor() Color { return p.fg }

// BgColor returns the background seed color.
func (p *Params) BgColor() Color { return p.bg }

// Area returns the current blend window.
func (p *Params) Area() Area { return p.area }

// FillDesc builds the fill descriptor for the current area on dest, for
// the given variant. The two variants of a case differ only in the
// destination buffer and this selector.
func (p *Params) FillDesc(dest []byte, v Variant) FillDesc {
	return FillDesc{
		Dest:       dest,
		DestW:      p.area.W,
		DestH:      p.area.H,
		DestStride: p.area.Stride * p.format.ElemSize(),
		Color:      p.fg,
		Opa:        p.opa,
		Variant:    v,
	}
}

// ImageDesc builds the image blend descriptor for the current area. The
// source shares the destination geometry: the harness always copies a
// window of identical shape.
func (p *Params) ImageDesc(dest, src []byte, v Variant) ImageDesc {
	return ImageDesc{
		Dest:       dest,
		DestW:      p.area.W,
		DestH:      p.area.H,
		DestStride: p.area.Stride * p.format.ElemSize(),
		Src:        src,
		SrcStride:  p.area.Stride * p.srcFormat.ElemSize(),
		Opa:        p.opa,
		Variant:    v,
	}
}
