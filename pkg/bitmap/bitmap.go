// Package bitmap reads and writes Windows BMP files at 16 (BI_BITFIELDS),
// 24, and 32 bits per pixel into/out of a canvas.Canvas. Field layout and
// constants are grounded on jsummers-bmpinspect's header inspector
// (getDWORD/getWORD/getLONG little-endian readers and the BI_* / LCS_*
// constant tables), adapted here from an inspector into a full codec.
package bitmap

import (
	"encoding/binary"
	"io"
	"math/bits"

	"github.com/Fepozopo/thermview/pkg/canvas"
	"github.com/Fepozopo/thermview/pkg/therr"
)

const (
	biRGB       = 0
	biBitfields = 3
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40 // BITMAPINFOHEADER
)

// Load reads a BMP file and returns its pixels as a Canvas. Supported
// formats: 16bpp BI_BITFIELDS with masks 0xF800/0x07E0/0x001F, 24bpp, and
// 32bpp, all uncompressed. A negative biHeight (top-down) is canonical; a
// positive (bottom-up, "top-up") biHeight is flipped on load so Canvas rows
// always read top to bottom.
func Load(r io.Reader) (*canvas.Canvas, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, therr.Wrap(err, therr.IOFail, therr.Bitmap, "read bmp")
	}
	if len(raw) < fileHeaderSize+infoHeaderSize {
		return nil, therr.New(therr.Format, therr.Bitmap, "file too small for a BMP header")
	}
	if raw[0] != 'B' || raw[1] != 'M' {
		return nil, therr.New(therr.Format, therr.Bitmap, "missing BM magic")
	}
	bfOffBits := binary.LittleEndian.Uint32(raw[10:14])

	biSize := binary.LittleEndian.Uint32(raw[14:18])
	if biSize < infoHeaderSize {
		return nil, therr.New(therr.Format, therr.Bitmap, "unsupported DIB header size")
	}
	width := int(int32(binary.LittleEndian.Uint32(raw[18:22])))
	height := int(int32(binary.LittleEndian.Uint32(raw[22:26])))
	bitCount := binary.LittleEndian.Uint16(raw[28:30])
	compression := binary.LittleEndian.Uint32(raw[30:34])

	if width <= 0 {
		return nil, therr.New(therr.ImageShape, therr.Bitmap, "non-positive width")
	}
	topDown := height < 0
	if topDown {
		height = -height
	}
	if height <= 0 {
		return nil, therr.New(therr.ImageShape, therr.Bitmap, "non-positive height")
	}

	var rMask, gMask, bMask uint32 = 0xF800, 0x07E0, 0x001F
	pixelDataOffset := int(bfOffBits)

	switch bitCount {
	case 16:
		if compression == biBitfields {
			// BITFIELDS masks follow the 40-byte BITMAPINFOHEADER.
			masksOff := fileHeaderSize + infoHeaderSize
			if len(raw) < masksOff+12 {
				return nil, therr.New(therr.Format, therr.Bitmap, "truncated bitfields masks")
			}
			rMask = binary.LittleEndian.Uint32(raw[masksOff : masksOff+4])
			gMask = binary.LittleEndian.Uint32(raw[masksOff+4 : masksOff+8])
			bMask = binary.LittleEndian.Uint32(raw[masksOff+8 : masksOff+12])
		} else if compression != biRGB {
			return nil, therr.New(therr.Format, therr.Bitmap, "unsupported 16bpp compression")
		}
	case 24, 32:
		if compression != biRGB {
			return nil, therr.New(therr.Format, therr.Bitmap, "unsupported compression for 24/32bpp")
		}
	default:
		return nil, therr.New(therr.Format, therr.Bitmap, "unsupported bit depth")
	}

	bytesPerPixel := int(bitCount) / 8
	rowStride := ((width*bytesPerPixel + 3) / 4) * 4
	needed := pixelDataOffset + rowStride*height
	if len(raw) < needed {
		return nil, therr.New(therr.IOFail, therr.Bitmap, "truncated pixel data")
	}

	out, err := canvas.New(width, height)
	if err != nil {
		return nil, therr.Wrap(err, therr.AllocFail, therr.Bitmap, "alloc canvas")
	}

	rShift, gShift, bShift := shiftForMask(rMask), shiftForMask(gMask), shiftForMask(bMask)

	for fileRow := 0; fileRow < height; fileRow++ {
		// BMP pixel rows are stored bottom-up on disk unless topDown is set.
		canvasY := fileRow
		if !topDown {
			canvasY = height - 1 - fileRow
		}
		rowOff := pixelDataOffset + fileRow*rowStride
		for x := 0; x < width; x++ {
			var col canvas.Color
			switch bitCount {
			case 16:
				px := binary.LittleEndian.Uint16(raw[rowOff+x*2 : rowOff+x*2+2])
				r8 := expand(uint32(px), rMask, rShift)
				g8 := expand(uint32(px), gMask, gShift)
				b8 := expand(uint32(px), bMask, bShift)
				col = canvas.RGB888(r8, g8, b8)
			case 24:
				o := rowOff + x*3
				col = canvas.RGB888(raw[o+2], raw[o+1], raw[o])
			case 32:
				o := rowOff + x*4
				col = canvas.RGB888(raw[o+2], raw[o+1], raw[o])
			}
			_ = out.Set(x, canvasY, col)
		}
	}
	return out, nil
}

// shiftForMask returns the bit position of a mask's lowest set bit.
func shiftForMask(mask uint32) uint {
	if mask == 0 {
		return 0
	}
	shift := uint(0)
	for mask&1 == 0 {
		mask >>= 1
		shift++
	}
	return shift
}

// expand extracts the field selected by mask/shift and widens it to 8 bits
// by replicating its high bits, matching the 5/6-bit to 8-bit expansion
// canvas.Color already performs for its own channels.
func expand(px uint32, mask uint32, shift uint) uint8 {
	width := bits.OnesCount32(mask)
	val := (px & mask) >> shift
	switch width {
	case 5:
		return uint8(val<<3 | val>>2)
	case 6:
		return uint8(val<<2 | val>>4)
	case 8:
		return uint8(val)
	default:
		if width == 0 {
			return 0
		}
		return uint8((val * 255) / ((1 << width) - 1))
	}
}

// Save writes c to w as an uncompressed BMP at the given bit depth
// (16, 24, or 32). The DIB height is written negative (top-down), the
// canonical form spec.md §4.5 calls for.
func Save(w io.Writer, c *canvas.Canvas, bpp int) error {
	if c == nil {
		return therr.New(therr.NullInput, therr.Bitmap, "save nil canvas")
	}
	var bytesPerPixel int
	switch bpp {
	case 16, 24, 32:
		bytesPerPixel = bpp / 8
	default:
		return therr.New(therr.OutOfRange, therr.Bitmap, "unsupported save bit depth")
	}
	rowStride := ((c.Width*bytesPerPixel + 3) / 4) * 4
	pixelDataOffset := fileHeaderSize + infoHeaderSize
	if bpp == 16 {
		pixelDataOffset += 12 // BITFIELDS masks
	}
	pixelDataSize := rowStride * c.Height
	fileSize := pixelDataOffset + pixelDataSize

	buf := make([]byte, fileSize)
	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[2:6], uint32(fileSize))
	binary.LittleEndian.PutUint32(buf[10:14], uint32(pixelDataOffset))

	binary.LittleEndian.PutUint32(buf[14:18], infoHeaderSize)
	binary.LittleEndian.PutUint32(buf[18:22], uint32(c.Width))
	binary.LittleEndian.PutUint32(buf[22:26], uint32(int32(-c.Height))) // top-down
	binary.LittleEndian.PutUint16(buf[26:28], 1)
	binary.LittleEndian.PutUint16(buf[28:30], uint16(bpp))
	if bpp == 16 {
		binary.LittleEndian.PutUint32(buf[30:34], biBitfields)
	} else {
		binary.LittleEndian.PutUint32(buf[30:34], biRGB)
	}
	binary.LittleEndian.PutUint32(buf[34:38], uint32(pixelDataSize))

	if bpp == 16 {
		masksOff := fileHeaderSize + infoHeaderSize
		binary.LittleEndian.PutUint32(buf[masksOff:masksOff+4], 0xF800)
		binary.LittleEndian.PutUint32(buf[masksOff+4:masksOff+8], 0x07E0)
		binary.LittleEndian.PutUint32(buf[masksOff+8:masksOff+12], 0x001F)
	}

	for y := 0; y < c.Height; y++ {
		rowOff := pixelDataOffset + y*rowStride
		for x := 0; x < c.Width; x++ {
			col, _ := c.Get(x, y)
			switch bpp {
			case 16:
				binary.LittleEndian.PutUint16(buf[rowOff+x*2:rowOff+x*2+2], uint16(col))
			case 24:
				o := rowOff + x*3
				buf[o], buf[o+1], buf[o+2] = col.B8(), col.G8(), col.R8()
			case 32:
				o := rowOff + x*4
				buf[o], buf[o+1], buf[o+2], buf[o+3] = col.B8(), col.G8(), col.R8(), 0xFF
			}
		}
	}

	if _, err := w.Write(buf); err != nil {
		return therr.Wrap(err, therr.IOFail, therr.Bitmap, "write bmp")
	}
	return nil
}
