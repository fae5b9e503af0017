package bitfont

import (
	"github.com/flavioheleno/ssd1306/image1bit"
)

// Draw blits the glyph for code with its top-left corner at (x, y), setting lit
// pixels On and leaving the others untouched. It returns the glyph width.
func (f *Font) Draw(img *image1bit.VerticalLSB, x, y int, code byte) (int, error) {
	loc, err := f.GlyphFor(code)
	if err != nil {
		return 0, err
	}
	m := f.metrics
	for band := 0; band < m.RowBands; band++ {
		for col, b := range f.Columns(loc, band) {
			if band == m.RowBands-1 {
				b >>= m.Shift
			}
			for bit := 0; bit < 8; bit++ {
				row := band*8 + bit
				if row >= m.Height {
					break
				}
				if b&(1<<uint(bit)) != 0 {
					img.SetBit(x+col, y+row, image1bit.On)
				}
			}
		}
	}
	return loc.Width, nil
}
