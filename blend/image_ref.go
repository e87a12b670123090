package blend

import "encoding/binary"

// Reference image paths, normal blend mode.

func imageRefARGB8888(d *ImageDesc) {
	scale := d.Opa < OpaMax
	for y := 0; y < d.DestH; y++ {
		srcRow := d.Src[y*d.SrcStride:]
		dstRow := d.Dest[y*d.DestStride:]
		for x := 0; x < d.DestW; x++ {
			fg := binary.LittleEndian.Uint32(srcRow[x*4:])
			if scale {
				a := opaMix2(uint8(fg>>24), d.Opa)
				fg = fg&0x00FFFFFF | uint32(a)<<24
			}
			bg := binary.LittleEndian.Uint32(dstRow[x*4:])
			binary.LittleEndian.PutUint32(dstRow[x*4:], mix32(fg, bg))
		}
	}
}

func imageRefRGB565(d *ImageDesc) {
	if d.Opa >= OpaMax {
		// No alpha in RGB565, full opacity degenerates to a row copy.
		for y := 0; y < d.DestH; y++ {
			srcRow := d.Src[y*d.SrcStride:]
			dstRow := d.Dest[y*d.DestStride:]
			for x := 0; x < d.DestW; x++ {
				dstRow[x*2] = srcRow[x*2]
				dstRow[x*2+1] = srcRow[x*2+1]
			}
		}
		return
	}
	if d.Opa <= OpaMin {
		return
	}
	for y := 0; y < d.DestH; y++ {
		srcRow := d.Src[y*d.SrcStride:]
		dstRow := d.Dest[y*d.DestStride:]
		for x := 0; x < d.DestW; x++ {
			fg := binary.LittleEndian.Uint16(srcRow[x*2:])
			bg := binary.LittleEndian.Uint16(dstRow[x*2:])
			binary.LittleEndian.PutUint16(dstRow[x*2:], mix16(fg, bg, d.Opa))
		}
	}
}
