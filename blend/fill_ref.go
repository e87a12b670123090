package blend

import "encoding/binary"

// Reference fill paths. Plain per-pixel loops over encoding/binary, no
// alignment assumptions, valid on every platform. These define the
// ground-truth output the accelerated paths must reproduce byte for byte.

func fillRefARGB8888(d *FillDesc) {
	if d.Opa >= OpaMax {
		v := d.Color.ARGB8888(OpaCover)
		for y := 0; y < d.DestH; y++ {
			row := d.Dest[y*d.DestStride:]
			for x := 0; x < d.DestW; x++ {
				binary.LittleEndian.PutUint32(row[x*4:], v)
			}
		}
		return
	}
	if d.Opa <= OpaMin {
		return
	}
	fg := d.Color.ARGB8888(d.Opa)
	for y := 0; y < d.DestH; y++ {
		row := d.Dest[y*d.DestStride:]
		for x := 0; x < d.DestW; x++ {
			bg := binary.LittleEndian.Uint32(row[x*4:])
			binary.LittleEndian.PutUint32(row[x*4:], mix32(fg, bg))
		}
	}
}

func fillRefRGB565(d *FillDesc) {
	fg := d.Color.RGB565()
	if d.Opa >= OpaMax {
		for y := 0; y < d.DestH; y++ {
			row := d.Dest[y*d.DestStride:]
			for x := 0; x < d.DestW; x++ {
				binary.LittleEndian.PutUint16(row[x*2:], fg)
			}
		}
		return
	}
	if d.Opa <= OpaMin {
		return
	}
	for y := 0; y < d.DestH; y++ {
		row := d.Dest[y*d.DestStride:]
		for x := 0; x < d.DestW; x++ {
			bg := binary.LittleEndian.Uint16(row[x*2:])
			binary.LittleEndian.PutUint16(row[x*2:], mix16(fg, bg, d.Opa))
		}
	}
}
