// Package bitfont decodes the compact bitmap font resources used by page-addressed
// monochrome displays.
//
// A resource starts with a 6 byte header:
//
//	offset  size  field
//	0       2     size/mode (big-endian): 0 fixed width, 1 compact, >= 2 variable width
//	2       1     fixed glyph width in pixels
//	3       1     glyph height in pixels
//	4       1     first character code
//	5       1     character count
//
// Fixed width fonts follow the header with count glyphs of RowBands*width bytes each.
// Variable width fonts follow it with a count byte width table and then the packed
// glyphs, each RowBands*width[i] bytes. Inside a glyph the bytes are grouped by row
// band: all columns of the top band first, one byte per column, least significant
// bit on top.
//
// The size field is always read big-endian, as font sources write it, whatever
// the host byte order. A resource dumped from memory on a little-endian machine
// stores the compact value 1 as 01 00, which reads as 256 and selects the
// variable width layout; swap the two bytes before parsing such a resource.
package bitfont

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const headerSize = 6

// ErrNotInFont is returned when a character code is outside the font's range.
var ErrNotInFont = errors.New("bitfont: character not in font")

// WidthMode is the glyph layout selected by the size/mode header field.
type WidthMode int

const (
	// FixedWidth fonts share one glyph width and have no width table.
	FixedWidth WidthMode = iota
	// CompactWidth is the size value 1. It is laid out like FixedWidth.
	CompactWidth
	// VariableWidth fonts carry a per-glyph width table.
	VariableWidth
)

func (m WidthMode) String() string {
	switch m {
	case FixedWidth:
		return "fixed"
	case CompactWidth:
		return "compact"
	case VariableWidth:
		return "variable"
	}
	return fmt.Sprintf("WidthMode(%d)", int(m))
}

// Metrics describes a font. The zero value is returned for a nil *Font.
type Metrics struct {
	Height    int       // Glyph height in pixels
	RowBands  int       // Pages covered by a glyph, ceil(Height/8)
	Width     int       // Fixed glyph width, or the header width of a variable font
	Mode      WidthMode // Layout of the glyph data
	FirstChar byte      // First character code covered
	CharCount int       // Number of characters covered
	Shift     uint      // Right shift applied to the last row band
}

// Location addresses one glyph inside the resource.
type Location struct {
	Offset int // Byte offset of the glyph's first row band
	Width  int // Glyph width in pixels
}

// FormatError reports a malformed font resource.
type FormatError struct {
	Field string
	Msg   string
}

func (e *FormatError) Error() string {
	return "bitfont: invalid " + e.Field + ": " + e.Msg
}

// Font is a parsed, immutable font resource.
type Font struct {
	data    []byte
	size    uint16
	metrics Metrics
	offsets []int
	widths  []int
}

// Parse validates a font resource and precomputes every glyph location.
// The data is copied; the returned Font never changes.
func Parse(data []byte) (*Font, error) {
	if len(data) < headerSize {
		return nil, &FormatError{"header", fmt.Sprintf("need %d bytes, have %d", headerSize, len(data))}
	}

	size := binary.BigEndian.Uint16(data[0:2])
	m := Metrics{
		Width:     int(data[2]),
		Height:    int(data[3]),
		FirstChar: data[4],
		CharCount: int(data[5]),
	}
	switch {
	case size == 0:
		m.Mode = FixedWidth
	case size == 1:
		m.Mode = CompactWidth
	default:
		m.Mode = VariableWidth
	}

	if m.Height == 0 {
		return nil, &FormatError{"height", "must not be zero"}
	}
	if m.CharCount == 0 {
		return nil, &FormatError{"char count", "must not be zero"}
	}
	if int(m.FirstChar)+m.CharCount-1 > 0xFF {
		return nil, &FormatError{"char count", fmt.Sprintf("range %d+%d exceeds 255", m.FirstChar, m.CharCount)}
	}
	m.RowBands = (m.Height + 7) / 8
	if rem := m.Height % 8; rem != 0 && m.Mode == VariableWidth {
		m.Shift = uint(8 - rem)
	}

	f := &Font{
		size:    size,
		metrics: m,
		offsets: make([]int, m.CharCount),
		widths:  make([]int, m.CharCount),
	}

	var end int
	if m.Mode == VariableWidth {
		table := headerSize + m.CharCount
		if len(data) < table {
			return nil, &FormatError{"width table", fmt.Sprintf("need %d bytes, have %d", table, len(data))}
		}
		// Glyphs start after the width table: prefix sum of widths times bands, plus count.
		sum := 0
		for i := 0; i < m.CharCount; i++ {
			w := int(data[headerSize+i])
			f.offsets[i] = headerSize + sum*m.RowBands + m.CharCount
			f.widths[i] = w
			sum += w
		}
		end = headerSize + sum*m.RowBands + m.CharCount
	} else {
		if m.Width == 0 {
			return nil, &FormatError{"width", "must not be zero for a fixed width font"}
		}
		stride := m.RowBands * m.Width
		for i := 0; i < m.CharCount; i++ {
			f.offsets[i] = headerSize + i*stride
			f.widths[i] = m.Width
		}
		end = headerSize + m.CharCount*stride
	}
	if len(data) < end {
		return nil, &FormatError{"glyph data", fmt.Sprintf("need %d bytes, have %d", end, len(data))}
	}

	f.data = make([]byte, end)
	copy(f.data, data)
	return f, nil
}

// MustParse is like Parse but panics on a malformed resource.
// It is meant for fonts compiled into the program.
func MustParse(data []byte) *Font {
	f, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return f
}

// Metrics returns the font metrics, or zero metrics when f is nil.
func (f *Font) Metrics() Metrics {
	if f == nil {
		return Metrics{}
	}
	return f.metrics
}

// Size returns the raw size/mode header field.
func (f *Font) Size() uint16 {
	if f == nil {
		return 0
	}
	return f.size
}

// LastChar returns the last character code covered by the font.
func (f *Font) LastChar() byte {
	m := f.Metrics()
	return byte(int(m.FirstChar) + m.CharCount - 1)
}

// Contains reports whether code is covered by the font.
func (f *Font) Contains(code byte) bool {
	if f == nil {
		return false
	}
	return code >= f.metrics.FirstChar && int(code) <= int(f.metrics.FirstChar)+f.metrics.CharCount-1
}

// GlyphFor returns the location of the glyph for code.
func (f *Font) GlyphFor(code byte) (Location, error) {
	if !f.Contains(code) {
		return Location{}, ErrNotInFont
	}
	i := int(code - f.metrics.FirstChar)
	return Location{Offset: f.offsets[i], Width: f.widths[i]}, nil
}

// Columns returns the raw column bytes of row band band of the glyph at loc,
// before any sub-page shift. The slice aliases the font and must not be modified.
func (f *Font) Columns(loc Location, band int) []byte {
	if band < 0 || band >= f.metrics.RowBands {
		return nil
	}
	start := loc.Offset + band*loc.Width
	return f.data[start : start+loc.Width : start+loc.Width]
}

// Bytes returns a copy of the resource.
func (f *Font) Bytes() []byte {
	return append([]byte(nil), f.data...)
}

func (f *Font) String() string {
	m := f.Metrics()
	return fmt.Sprintf("bitfont.Font{%s %dx%d %q-%q}", m.Mode, m.Width, m.Height, m.FirstChar, f.LastChar())
}
