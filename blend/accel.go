//go:build (amd64 || arm64) && !noasm

package blend

import (
	"log/slog"
	"runtime"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Accelerated paths. Little-endian targets with unaligned load/store
// support only; the word stores below land on arbitrary byte offsets when
// the destination window is deliberately misaligned.

func init() {
	switch runtime.GOARCH {
	case "amd64":
		if cpu.X86.HasSSE2 {
			enableAccel("sse2")
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			enableAccel("asimd")
		}
	}
}

func enableAccel(name string) {
	hasAccel = true
	backend = name
	fillFastARGB8888 = fastFillARGB8888
	fillFastRGB565 = fastFillRGB565
	imageFastARGB8888 = fastImageARGB8888
	imageFastRGB565 = fastImageRGB565
	slog.Debug("accelerated blend path selected", "backend", name, "arch", runtime.GOARCH)
}

func fastFillARGB8888(d *FillDesc) {
	if d.Opa >= OpaMax {
		v := d.Color.ARGB8888(OpaCover)
		pair := uint64(v)<<32 | uint64(v)
		for y := 0; y < d.DestH; y++ {
			p := unsafe.Pointer(&d.Dest[y*d.DestStride])
			x := 0
			for ; x+4 <= d.DestW; x += 4 {
				*(*uint64)(unsafe.Add(p, uintptr(x)*4)) = pair
				*(*uint64)(unsafe.Add(p, uintptr(x)*4+8)) = pair
			}
			for ; x < d.DestW; x++ {
				*(*uint32)(unsafe.Add(p, uintptr(x)*4)) = v
			}
		}
		return
	}
	if d.Opa <= OpaMin {
		return
	}
	// The fg products are constant across the window, hoist them out of
	// the pixel loop. The arithmetic stays the mix32 form exactly.
	a := uint32(d.Opa)
	inv := 255 - a
	pr := uint32(d.Color.R) * a
	pg := uint32(d.Color.G) * a
	pb := uint32(d.Color.B) * a
	for y := 0; y < d.DestH; y++ {
		p := unsafe.Pointer(&d.Dest[y*d.DestStride])
		for x := 0; x < d.DestW; x++ {
			q := (*uint32)(unsafe.Add(p, uintptr(x)*4))
			bg := *q
			r := (pr + (bg>>16&0xFF)*inv) >> 8
			g := (pg + (bg>>8&0xFF)*inv) >> 8
			b := (pb + (bg&0xFF)*inv) >> 8
			*q = bg&0xFF000000 | r<<16 | g<<8 | b
		}
	}
}

func fastFillRGB565(d *FillDesc) {
	fg := d.Color.RGB565()
	if d.Opa >= OpaMax {
		quad := uint64(fg) * 0x0001000100010001
		for y := 0; y < d.DestH; y++ {
			p := unsafe.Pointer(&d.Dest[y*d.DestStride])
			x := 0
			for ; x+8 <= d.DestW; x += 8 {
				*(*uint64)(unsafe.Add(p, uintptr(x)*2)) = quad
				*(*uint64)(unsafe.Add(p, uintptr(x)*2+8)) = quad
			}
			for ; x+4 <= d.DestW; x += 4 {
				*(*uint64)(unsafe.Add(p, uintptr(x)*2)) = quad
			}
			for ; x < d.DestW; x++ {
				*(*uint16)(unsafe.Add(p, uintptr(x)*2)) = fg
			}
		}
		return
	}
	if d.Opa <= OpaMin {
		return
	}
	// mix16 with the fg expansion and the 5-bit ratio hoisted out of the
	// loop. Opa is strictly between OpaMin and OpaMax here, so the 0/255
	// early-outs of mix16 can never fire and are omitted.
	m := (uint32(d.Opa) + 4) >> 3
	fgx := (uint32(fg) | uint32(fg)<<16) & 0x7E0F81F
	for y := 0; y < d.DestH; y++ {
		p := unsafe.Pointer(&d.Dest[y*d.DestStride])
		for x := 0; x < d.DestW; x++ {
			q := (*uint16)(unsafe.Add(p, uintptr(x)*2))
			bg := uint32(*q)
			bgx := (bg | bg<<16) & 0x7E0F81F
			res := ((((fgx - bgx) * m) >> 5) + bgx) & 0x7E0F81F
			*q = uint16(res>>16) | uint16(res)
		}
	}
}

func fastImageARGB8888(d *ImageDesc) {
	scale := d.Opa < OpaMax
	for y := 0; y < d.DestH; y++ {
		sp := unsafe.Pointer(&d.Src[y*d.SrcStride])
		dp := unsafe.Pointer(&d.Dest[y*d.DestStride])
		for x := 0; x < d.DestW; x++ {
			fg := *(*uint32)(unsafe.Add(sp, uintptr(x)*4))
			if scale {
				fg = fg&0x00FFFFFF | uint32(opaMix2(uint8(fg>>24), d.Opa))<<24
			}
			q := (*uint32)(unsafe.Add(dp, uintptr(x)*4))
			a := fg >> 24
			switch {
			case a >= OpaMax:
				*q = fg
			case a <= OpaMin:
				// fully transparent source pixel, keep bg
			default:
				bg := *q
				inv := 255 - a
				r := ((fg>>16&0xFF)*a + (bg>>16&0xFF)*inv) >> 8
				g := ((fg>>8&0xFF)*a + (bg>>8&0xFF)*inv) >> 8
				b := ((fg&0xFF)*a + (bg&0xFF)*inv) >> 8
				*q = bg&0xFF000000 | r<<16 | g<<8 | b
			}
		}
	}
}

func fastImageRGB565(d *ImageDesc) {
	if d.Opa >= OpaMax {
		rowBytes := d.DestW * 2
		for y := 0; y < d.DestH; y++ {
			copy(d.Dest[y*d.DestStride:y*d.DestStride+rowBytes], d.Src[y*d.SrcStride:y*d.SrcStride+rowBytes])
		}
		return
	}
	if d.Opa <= OpaMin {
		return
	}
	m := (uint32(d.Opa) + 4) >> 3
	for y := 0; y < d.DestH; y++ {
		sp := unsafe.Pointer(&d.Src[y*d.SrcStride])
		dp := unsafe.Pointer(&d.Dest[y*d.DestStride])
		for x := 0; x < d.DestW; x++ {
			fg := uint32(*(*uint16)(unsafe.Add(sp, uintptr(x)*2)))
			q := (*uint16)(unsafe.Add(dp, uintptr(x)*2))
			bg := uint32(*q)
			fgx := (fg | fg<<16) & 0x7E0F81F
			bgx := (bg | bg<<16) & 0x7E0F81F
			res := ((((fgx - bgx) * m) >> 5) + bgx) & 0x7E0F81F
			*q = uint16(res>>16) | uint16(res)
		}
	}
}
