package ssd1306

// RenderChar draws the glyph for ch at the cursor and advances the cursor by
// the glyph width plus one spacing column.
//
// Every row band goes through SetCursor, so a band below the last row is
// written over the last row, as the controller would with the page unchanged.
//
// It returns ErrNoFont without a font, ErrNotInFont for a character outside
// the font and ErrOverflow when the glyph does not fit on the line. None of
// these write anything or move the cursor. Control characters are not
// interpreted; use PrintChar for those.
func (d *Dev) RenderChar(ch byte, invert bool) error {
	if d.font == nil {
		return ErrNoFont
	}
	loc, err := d.font.GlyphFor(ch)
	if err != nil {
		return err
	}
	m := d.font.Metrics()

	col, row := d.column, d.row
	if col+loc.Width >= d.dev.Width {
		return ErrOverflow
	}

	buf := make([]byte, loc.Width+1)
	if invert {
		buf[loc.Width] = 0xFF
	}
	last := m.RowBands - 1
	for y := 0; y <= last; y++ {
		if y > 0 {
			if err := d.SetCursor(col, row+y); err != nil {
				return err
			}
		}
		for x, b := range d.font.Columns(loc, y) {
			if y == last {
				b >>= m.Shift
			}
			if invert {
				b ^= 0xFF
			}
			buf[x] = b
		}
		if err := d.data(buf); err != nil {
			return err
		}
	}

	// A glyph ending on the last column leaves the column where it was.
	return d.SetCursor(col+loc.Width+1, row)
}
