// Package blendmark is a differential test and benchmark harness for the
// blend package. It proves that the accelerated blend variant produces
// output bit-identical to the reference variant across an exhaustive
// matrix of buffer geometries, strides, byte misalignments and opacities,
// and that the accelerated variant meets per-target speedup thresholds.
//
// Every matrix cell gets a fresh pair of guard-banded destination buffers:
// sentinel elements flank the active window and must read back zero after
// any operation, so an out-of-bounds write by an implementation under test
// is caught by the same comparison pass that checks equivalence.
package blendmark

import (
	"errors"
	"fmt"
	"unsafe"
)

const (
	// GuardElems is the number of sentinel elements on each side of the
	// active window.
	GuardElems = 4

	// baseAlign is the allocation alignment; misalignment offsets are
	// applied on top of it.
	baseAlign = 16
)

// ErrBadBufferParams is returned for impossible buffer geometries.
var ErrBadBufferParams = errors.New("blendmark: invalid buffer parameters")

// ErrGuardViolation is reported when a sentinel element is no longer zero.
var ErrGuardViolation = errors.New("blendmark: guard region violated")

// Buffer is an aligned allocation laid out as
//
//	[alignment slack][misalign bytes][guard][active][guard]
//
// where guard and active are counted in elements. The struct tracks all
// offsets itself; callers only see the active window and the guard views,
// so there is no pointer to shift back before release.
type Buffer struct {
	raw      []byte // full allocation, keeps the region alive
	data     []byte // guard|active|guard, starting at alignedBase+misalign
	elemSize int
	active   int // elements
	guard    int // elements per flank
	misalign int
}

// NewBuffer allocates a zeroed guard-banded buffer of activeLen elements
// of elemSize bytes, with guardLen sentinel elements per flank, whose
// data region starts misalign bytes past a 16-byte-aligned address.
func NewBuffer(activeLen, guardLen, elemSize, misalign int) (*Buffer, error) {
	if activeLen <= 0 || guardLen < 0 || misalign < 0 {
		return nil, fmt.Errorf("%w: active %d, guard %d, misalign %d", ErrBadBufferParams, activeLen, guardLen, misalign)
	}
	if elemSize != 2 && elemSize != 4 {
		return nil, fmt.Errorf("%w: element size %d", ErrBadBufferParams, elemSize)
	}

	total := (activeLen + 2*guardLen) * elemSize
	raw := make([]byte, total+misalign+baseAlign)

	base := uintptr(unsafe.Pointer(&raw[0]))
	shift := int(align16(base) - base)

	return &Buffer{
		raw:      raw,
		data:     raw[shift+misalign : shift+misalign+total],
		elemSize: elemSize,
		active:   activeLen,
		guard:    guardLen,
		misalign: misalign,
	}, nil
}

func align16(ptr uintptr) uintptr {
	const mask = baseAlign - 1
	return (ptr + mask) &^ mask
}

// Active returns the working view: activeLen elements addressed from
// element zero, past the misalignment prefix and the leading guard.
func (b *Buffer) Active() []byte {
	lo := b.guard * b.elemSize
	return b.data[lo : lo+b.active*b.elemSize]
}

// WithGuards returns the guard|active|guard region as one view.
func (b *Buffer) WithGuards() []byte {
	return b.data
}

// LeadingGuard returns the sentinel region before the active window.
func (b *Buffer) LeadingGuard() []byte {
	return b.data[:b.guard*b.elemSize]
}

// TrailingGuard returns the sentinel region after the active window.
func (b *Buffer) TrailingGuard() []byte {
	lo := (b.guard + b.active) * b.elemSize
	return b.data[lo:]
}

// ElemSize returns the element width in bytes.
func (b *Buffer) ElemSize() int { return b.elemSize }

// GuardLen returns the sentinel length per flank in elements.
func (b *Buffer) GuardLen() int { return b.guard }

// ActiveLen returns the active window length in elements.
func (b *Buffer) ActiveLen() int { return b.active }

// Misalign returns the byte offset applied past the aligned base.
func (b *Buffer) Misalign() int { return b.misalign }

// CheckGuards verifies both sentinel regions element-wise. The returned
// error names the flank and the first corrupted element.
func (b *Buffer) CheckGuards() error {
	if err := checkZero(b.LeadingGuard(), b.elemSize, "leading"); err != nil {
		return err
	}
	return checkZero(b.TrailingGuard(), b.elemSize, "trailing")
}

func checkZero(region []byte, elemSize int, flank string) error {
	for i := 0; i < len(region); i += elemSize {
		for j := 0; j < elemSize; j++ {
			if region[i+j] != 0 {
				return fmt.Errorf("%w: %s guard element %d", ErrGuardViolation, flank, i/elemSize)
			}
		}
	}
	return nil
}
