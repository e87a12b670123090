package blendmark

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hexelm/blendmark-go/blend"
)

// Benchmark defaults, matching the verification setup this harness grew
// out of: a 128x128 window, stride equal to the width, one byte of
// misalignment for the corner case and 750 timed iterations.
const (
	DefaultBenchWidth      = 128
	DefaultBenchHeight     = 128
	DefaultBenchIterations = 750
	benchMisalign          = 1
)

// ErrBadBenchConfig is returned for unusable benchmark configurations.
var ErrBadBenchConfig = errors.New("blendmark: invalid benchmark configuration")

// BenchConfig describes one cycle-count benchmark: the operation and the
// ideal-case window. The corner case derives from it: one byte of buffer
// misalignment and both dimensions reduced by one, deliberately
// unfavorable to an accelerated kernel's preferred vector width.
type BenchConfig struct {
	Op         Operation
	Width      int // ideal-case width, also the stride in elements
	Height     int
	Iterations int
	DynamicBg  bool // vary the background alpha per sample in the corner case
}

// Measurement is the average cycles per invocation of one variant under
// the two benchmark configurations.
type Measurement struct {
	IdealCycles  float64
	CornerCycles float64
}

// Speedup is the reference/accelerated cycle ratio per configuration.
// Values above 1 mean the accelerated path is faster.
type Speedup struct {
	Ideal  float64
	Corner float64
}

// Result carries both variants' measurements and the derived speedups.
type Result struct {
	Accelerated Measurement
	Reference   Measurement
	Speedup     Speedup
}

// Bench times repeated invocations of one blend operation through both
// variants. The tick source is the hardware cycle counter by default and
// is injectable for deterministic tests.
type Bench struct {
	p     *blend.Params
	cfg   BenchConfig
	ticks func() uint64
	log   *slog.Logger
}

// NewBench builds a benchmark over the shared blend parameters. Zero
// geometry fields take the defaults.
func NewBench(p *blend.Params, cfg BenchConfig) (*Bench, error) {
	if cfg.Width == 0 {
		cfg.Width = DefaultBenchWidth
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultBenchHeight
	}
	if cfg.Iterations == 0 {
		cfg.Iterations = DefaultBenchIterations
	}
	if cfg.Width < 2 || cfg.Height < 2 || cfg.Iterations < 1 {
		return nil, fmt.Errorf("%w: %dx%d, %d iterations", ErrBadBenchConfig, cfg.Width, cfg.Height, cfg.Iterations)
	}
	if p == nil {
		return nil, blend.ErrNotInitialized
	}
	return &Bench{p: p, cfg: cfg, ticks: Ticks, log: slog.Default()}, nil
}

// Run measures both variants under the ideal and the corner configuration
// and returns the cycle averages plus the speedup ratios. The accelerated
// variant must be available; benchmarking the reference against itself
// would only ever report a speedup of one.
func (b *Bench) Run() (*Result, error) {
	if !blend.HasAccelerated() {
		return nil, blend.ErrVariantUnavailable
	}

	elem := b.p.Format().ElemSize()
	activeLen := b.cfg.Width * b.cfg.Height

	aligned, err := NewBuffer(activeLen, 0, elem, 0)
	if err != nil {
		return nil, err
	}
	misaligned, err := NewBuffer(activeLen, 0, elem, benchMisalign)
	if err != nil {
		return nil, err
	}

	var src []byte
	if b.cfg.Op == OpImage {
		// The benchmark source always shares the destination's format.
		if err := b.p.SetSrcFormat(b.p.Format()); err != nil {
			return nil, err
		}
		srcBuf, err := NewBuffer(activeLen, 0, elem, 0)
		if err != nil {
			return nil, err
		}
		src = srcBuf.Active()
		fillImageSource(src, b.p.Format())
	}

	res := &Result{}
	for _, v := range []blend.Variant{blend.Accelerated, blend.Reference} {
		ideal, err := b.measure(aligned.Active(), src, b.cfg.Width, b.cfg.Height, v, false)
		if err != nil {
			return nil, err
		}
		// Corner case: misaligned buffer, dimensions off the vector grid,
		// and (when configured) a background re-seeded with a different
		// alpha per sample to force the most demanding code path.
		corner, err := b.measure(misaligned.Active(), src, b.cfg.Width-1, b.cfg.Height-1, v, b.cfg.DynamicBg)
		if err != nil {
			return nil, err
		}

		m := Measurement{IdealCycles: ideal, CornerCycles: corner}
		if v == blend.Accelerated {
			res.Accelerated = m
		} else {
			res.Reference = m
		}
		b.log.Info("benchmark pass",
			"op", b.cfg.Op.String(),
			"format", b.p.Format().String(),
			"variant", v.String(),
			"ideal_cycles", ideal,
			"ideal_per_sample", ideal/float64(b.cfg.Width*b.cfg.Height),
			"corner_cycles", corner,
			"corner_per_sample", corner/float64((b.cfg.Width-1)*(b.cfg.Height-1)))
	}

	res.Speedup = Speedup{
		Ideal:  res.Reference.IdealCycles / res.Accelerated.IdealCycles,
		Corner: res.Reference.CornerCycles / res.Accelerated.CornerCycles,
	}
	return res, nil
}

// measure runs the warmup call, then the timed loop: re-seed the
// destination where the operation mutates its own input distribution,
// read the counter immediately around the invocation, accumulate, and
// reduce to the arithmetic mean.
func (b *Bench) measure(dest, src []byte, w, h int, v blend.Variant, dynamicBg bool) (float64, error) {
	invoke, err := b.invoker(dest, src, w, h, v)
	if err != nil {
		return 0, err
	}

	// Untimed warmup absorbs first-call effects.
	if err := invoke(); err != nil {
		return 0, err
	}

	var total uint64
	for i := 0; i < b.cfg.Iterations; i++ {
		b.reinitDest(dest, w, h, i, dynamicBg)
		start := b.ticks()
		err := invoke()
		end := b.ticks()
		if err != nil {
			return 0, err
		}
		total += end - start
	}
	return float64(total) / float64(b.cfg.Iterations), nil
}

func (b *Bench) invoker(dest, src []byte, w, h int, v blend.Variant) (func() error, error) {
	if err := b.p.SetArea(blend.Area{W: w, H: h, Stride: b.cfg.Width}); err != nil {
		return nil, err
	}
	switch b.cfg.Op {
	case OpFill, OpFillOpa:
		d := b.p.FillDesc(dest, v)
		if b.cfg.Op == OpFill {
			d.Opa = blend.OpaCover
		}
		if b.p.Format() == blend.FormatRGB565 {
			return func() error { return blend.FillRGB565(&d) }, nil
		}
		return func() error { return blend.FillARGB8888(&d) }, nil
	case OpImage:
		d := b.p.ImageDesc(dest, src, v)
		if b.p.Format() == blend.FormatRGB565 {
			return func() error { return blend.ImageRGB565(&d) }, nil
		}
		return func() error { return blend.ImageARGB8888(&d) }, nil
	default:
		return nil, fmt.Errorf("%w: unknown operation %d", ErrBadBenchConfig, b.cfg.Op)
	}
}

// reinitDest restores the destination before a timed iteration. Plain
// fills and image copies overwrite the window wholesale, so only the
// opacity fill needs it: the blend mutates its own background, and
// without re-seeding the input distribution would drift across samples.
func (b *Bench) reinitDest(dest []byte, w, h, iter int, dynamicBg bool) {
	if b.cfg.Op != OpFillOpa {
		return
	}
	if !dynamicBg {
		for i := range dest {
			dest[i] = 0
		}
		return
	}
	// Walk the same stride-spaced window the blend will, so the corner
	// configuration's trailing rows are re-seeded too.
	bg := b.p.BgColor()
	switch b.p.Format() {
	case blend.FormatARGB8888:
		v := bg.ARGB8888(byte(iter % 255))
		for y := 0; y < h; y++ {
			row := dest[y*b.cfg.Width*4:]
			for x := 0; x < w; x++ {
				binary.LittleEndian.PutUint32(row[x*4:], v)
			}
		}
	case blend.FormatRGB565:
		v := bg.RGB565()
		for y := 0; y < h; y++ {
			row := dest[y*b.cfg.Width*2:]
			for x := 0; x < w; x++ {
				binary.LittleEndian.PutUint16(row[x*2:], v)
			}
		}
	}
}
