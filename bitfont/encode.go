package bitfont

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/flavioheleno/ssd1306/image1bit"
)

// EncodeOpts selects the character range and layout produced by Encode.
type EncodeOpts struct {
	First    byte // First character code
	Count    int  // Number of characters, First+Count-1 must not exceed 255
	Variable bool // Trim glyphs and emit a width table
}

// Encode rasterises face into a font resource that Parse accepts.
//
// Fixed width output uses the widest advance for every glyph. Variable width
// output trims blank columns on both sides of each glyph; a glyph without any
// lit pixel keeps half of its advance.
func Encode(face font.Face, opts EncodeOpts) ([]byte, error) {
	if opts.Count <= 0 || int(opts.First)+opts.Count-1 > 0xFF {
		return nil, fmt.Errorf("bitfont: invalid range %d+%d", opts.First, opts.Count)
	}
	fm := face.Metrics()
	ascent := fm.Ascent.Ceil()
	height := ascent + fm.Descent.Ceil()
	if height <= 0 || height > 0xFF {
		return nil, fmt.Errorf("bitfont: unsupported face height %d", height)
	}
	bands := (height + 7) / 8

	type glyph struct {
		img     *image1bit.VerticalLSB
		advance int
	}
	glyphs := make([]glyph, opts.Count)
	maxAdvance := 0
	for i := range glyphs {
		r := rune(int(opts.First) + i)
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv = 0
		}
		advance := adv.Ceil()
		if advance > maxAdvance {
			maxAdvance = advance
		}
		img, err := rasterise(face, r, ascent, height, advance)
		if err != nil {
			return nil, err
		}
		glyphs[i] = glyph{img: img, advance: advance}
	}
	if maxAdvance == 0 || maxAdvance > 0xFF {
		return nil, fmt.Errorf("bitfont: unsupported glyph advance %d", maxAdvance)
	}

	if !opts.Variable {
		out := make([]byte, headerSize, headerSize+opts.Count*bands*maxAdvance)
		binary.BigEndian.PutUint16(out[0:2], 0)
		out[2] = byte(maxAdvance)
		out[3] = byte(height)
		out[4] = opts.First
		out[5] = byte(opts.Count)
		for _, g := range glyphs {
			for band := 0; band < bands; band++ {
				page := g.img.Page(band)
				for x := 0; x < maxAdvance; x++ {
					if x < len(page) {
						out = append(out, page[x])
					} else {
						out = append(out, 0)
					}
				}
			}
		}
		return out, nil
	}

	shift := uint(0)
	if rem := height % 8; rem != 0 {
		shift = uint(8 - rem)
	}
	widths := make([]byte, opts.Count)
	var bitmap []byte
	for i, g := range glyphs {
		lo, hi := litColumns(g.img)
		if lo > hi {
			w := (g.advance + 1) / 2
			if w == 0 {
				w = 1
			}
			lo, hi = 0, w-1
		}
		widths[i] = byte(hi - lo + 1)
		for band := 0; band < bands; band++ {
			page := g.img.Page(band)
			for x := lo; x <= hi; x++ {
				var b byte
				if x < len(page) {
					b = page[x]
				}
				if band == bands-1 {
					b <<= shift
				}
				bitmap = append(bitmap, b)
			}
		}
	}

	total := headerSize + len(widths) + len(bitmap)
	size := total
	if size > 0xFFFF {
		size = 0xFFFF
	}
	out := make([]byte, headerSize, total)
	binary.BigEndian.PutUint16(out[0:2], uint16(size))
	out[2] = byte(maxAdvance)
	out[3] = byte(height)
	out[4] = opts.First
	out[5] = byte(opts.Count)
	out = append(out, widths...)
	out = append(out, bitmap...)
	return out, nil
}

// rasterise draws r into a page image of the given advance and height with the
// baseline at ascent. Pixels outside the cell are dropped.
func rasterise(face font.Face, r rune, ascent, height, advance int) (*image1bit.VerticalLSB, error) {
	dr, mask, mp, _, ok := face.Glyph(fixed.P(0, ascent), r)
	width := advance
	if ok && dr.Max.X > width {
		width = dr.Max.X
	}
	if width > 0xFF {
		return nil, errors.New("bitfont: glyph wider than 255 pixels")
	}
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, width, height))
	if !ok || width == 0 {
		return img, nil
	}
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			_, _, _, a := mask.At(mp.X+x-dr.Min.X, mp.Y+y-dr.Min.Y).RGBA()
			if a >= 0x8000 {
				img.SetBit(x, y, image1bit.On)
			}
		}
	}
	return img, nil
}

// litColumns returns the first and last column holding a lit pixel, or lo > hi
// when the image is blank.
func litColumns(img *image1bit.VerticalLSB) (lo, hi int) {
	lo, hi = img.Stride, -1
	for band := 0; band < img.Pages(); band++ {
		for x, b := range img.Page(band) {
			if b == 0 {
				continue
			}
			if x < lo {
				lo = x
			}
			if x > hi {
				hi = x
			}
		}
	}
	return lo, hi
}
