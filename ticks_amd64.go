//go:build amd64 && !noasm

package blendmark

// Implemented in ticks_amd64.s.
//
//go:noescape
func cputicks() uint64

// Ticks reads the hardware cycle counter. The value is monotonic modulo
// wraparound, which end-start subtraction on uint64 absorbs.
func Ticks() uint64 {
	return cputicks()
}
