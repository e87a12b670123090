package blendmark

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/goccy/go-json"

	"github.com/hexelm/blendmark-go/blend"
)

// Threshold is the minimum acceptable reference/accelerated speedup for
// one operation, format and target, in both benchmark configurations.
type Threshold struct {
	Ideal  float64
	Corner float64
}

// ThresholdKey identifies a threshold entry. Target names the CPU
// backend as GOARCH/backend, for example "amd64/sse2".
type ThresholdKey struct {
	Op     Operation
	Format blend.ColorFormat
	Target string
}

// ThresholdTable maps benchmark identities to their minimum speedups.
type ThresholdTable map[ThresholdKey]Threshold

var (
	// ErrNoThreshold means the table has no entry for the requested
	// target. A missing entry is a configuration failure, not a pass.
	ErrNoThreshold = errors.New("blendmark: no threshold entry for target")

	// ErrBelowThreshold means a measured speedup did not reach its
	// configured minimum.
	ErrBelowThreshold = errors.New("blendmark: speedup below threshold")

	// ErrBadThresholdFile is returned for malformed threshold overrides.
	ErrBadThresholdFile = errors.New("blendmark: invalid threshold file")
)

// Target returns the threshold target string for the running process.
func Target() string {
	return runtime.GOARCH + "/" + blend.Backend()
}

// DefaultThresholds returns the built-in minimum speedups. Plain fills
// vectorize well; opacity blends and image copies are load-bound, so
// their floors sit closer to parity. Corner floors are lower throughout
// since the misaligned odd-sized window defeats part of the fast path.
func DefaultThresholds() ThresholdTable {
	t := ThresholdTable{}
	for _, target := range []string{"amd64/sse2", "arm64/asimd"} {
		t[ThresholdKey{OpFill, blend.FormatARGB8888, target}] = Threshold{Ideal: 2.0, Corner: 1.4}
		t[ThresholdKey{OpFill, blend.FormatRGB565, target}] = Threshold{Ideal: 2.5, Corner: 1.5}
		t[ThresholdKey{OpFillOpa, blend.FormatARGB8888, target}] = Threshold{Ideal: 1.2, Corner: 1.1}
		t[ThresholdKey{OpFillOpa, blend.FormatRGB565, target}] = Threshold{Ideal: 1.2, Corner: 1.1}
		t[ThresholdKey{OpImage, blend.FormatARGB8888, target}] = Threshold{Ideal: 1.1, Corner: 1.0}
		t[ThresholdKey{OpImage, blend.FormatRGB565, target}] = Threshold{Ideal: 1.3, Corner: 1.1}
	}
	return t
}

// Lookup returns the threshold for one benchmark identity or
// ErrNoThreshold when the target is not configured.
func (t ThresholdTable) Lookup(op Operation, format blend.ColorFormat, target string) (Threshold, error) {
	th, ok := t[ThresholdKey{Op: op, Format: format, Target: target}]
	if !ok {
		return Threshold{}, fmt.Errorf("%w: %s %s on %s", ErrNoThreshold, op, format, target)
	}
	return th, nil
}

// Check validates a measured speedup against its minimums. Both
// configurations must pass.
func (s Speedup) Check(th Threshold) error {
	if s.Ideal < th.Ideal {
		return fmt.Errorf("%w: ideal %.2fx < %.2fx", ErrBelowThreshold, s.Ideal, th.Ideal)
	}
	if s.Corner < th.Corner {
		return fmt.Errorf("%w: corner %.2fx < %.2fx", ErrBelowThreshold, s.Corner, th.Corner)
	}
	return nil
}

type thresholdEntry struct {
	Operation string  `json:"operation"`
	Format    string  `json:"format"`
	Target    string  `json:"target"`
	Ideal     float64 `json:"ideal"`
	Corner    float64 `json:"corner"`
}

// LoadThresholds reads a JSON threshold override, an array of entries
// with operation, format, target, ideal and corner fields. Entries are
// merged over the built-in defaults; an unknown operation or format name
// is an error.
func LoadThresholds(r io.Reader) (ThresholdTable, error) {
	var entries []thresholdEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadThresholdFile, err)
	}
	t := DefaultThresholds()
	for i, e := range entries {
		op, err := parseOperation(e.Operation)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrBadThresholdFile, i, err)
		}
		format, err := parseFormat(e.Format)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrBadThresholdFile, i, err)
		}
		if e.Target == "" || e.Ideal <= 0 || e.Corner <= 0 {
			return nil, fmt.Errorf("%w: entry %d: empty target or non-positive threshold", ErrBadThresholdFile, i)
		}
		t[ThresholdKey{Op: op, Format: format, Target: e.Target}] = Threshold{Ideal: e.Ideal, Corner: e.Corner}
	}
	return t, nil
}

func parseOperation(s string) (Operation, error) {
	switch s {
	case "fill":
		return OpFill, nil
	case "fill_opa":
		return OpFillOpa, nil
	case "image":
		return OpImage, nil
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}

func parseFormat(s string) (blend.ColorFormat, error) {
	switch s {
	case "ARGB8888":
		return blend.FormatARGB8888, nil
	case "RGB565":
		return blend.FormatRGB565, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}
