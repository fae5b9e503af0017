// Package image1bit provides a 1-bit image format laid out in 8-pixel pages.
//
// Pixels are packed vertically: each byte covers one column of 8 rows and the
// least significant bit is the top row.
package image1bit

import (
	"image"
	"image/color"
)

// Bit is a monochrome pixel.
type Bit bool

const (
	On  Bit = true
	Off Bit = false
)

// RGBA converts the Bit to standard RGBA. On is white.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// ITU-R 601 luma, thresholded at half intensity
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// VerticalLSB is a 1-bit image stored as pages of 8 pixel rows.
// Each byte holds one column of a page, bit 0 being the top pixel.
type VerticalLSB struct {
	Pix    []byte          // Page data, Stride bytes per page
	Stride int             // Bytes per page (equals the image width)
	Rect   image.Rectangle // Image bounds
}

// NewVerticalLSB creates a new VerticalLSB image with the specified bounds.
// The height is rounded up to whole pages in memory.
func NewVerticalLSB(r image.Rectangle) *VerticalLSB {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &VerticalLSB{Rect: r}
	}
	pages := (h + 7) / 8
	return &VerticalLSB{
		Pix:    make([]byte, w*pages),
		Stride: w,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *VerticalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *VerticalLSB) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *VerticalLSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit of the pixel at (x, y).
func (p *VerticalLSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return Bit(p.Pix[offset]&mask != 0)
}

// Set sets the color of the pixel at (x, y).
func (p *VerticalLSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit of the pixel at (x, y).
func (p *VerticalLSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// Pages returns the number of 8-row pages backing the image.
func (p *VerticalLSB) Pages() int {
	if p.Stride == 0 {
		return 0
	}
	return len(p.Pix) / p.Stride
}

// Page returns the bytes of page n, one per column. The slice aliases Pix.
// It returns nil when n is out of range.
func (p *VerticalLSB) Page(n int) []byte {
	if n < 0 || n >= p.Pages() {
		return nil
	}
	return p.Pix[n*p.Stride : (n+1)*p.Stride]
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
func (p *VerticalLSB) pixOffset(x, y int) (offset int, mask byte) {
	dy := y - p.Rect.Min.Y
	offset = (dy/8)*p.Stride + (x - p.Rect.Min.X)
	mask = 1 << uint(dy&7)
	return
}
