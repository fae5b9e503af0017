package ssd1306

import (
	"errors"
	"strings"
)

// Here, as a PrintOpts column or row, keeps the cursor's coordinate. Any
// other out of range value does the same.
const Here = -1

// tabWidth is the number of spaces a '\t' expands to.
const tabWidth = 4

// PrintOpts configures PrintWith.
type PrintOpts struct {
	Invert bool // Draw light background with dark glyphs
	Column int  // Start column, or Here
	Row    int  // Start row band, or Here
}

// Print prints s at the cursor. See PrintWith.
func (d *Dev) Print(s string) error {
	return d.PrintWith(s, PrintOpts{Column: Here, Row: Here})
}

// PrintWith prints s, stopping at the first NUL byte.
//
// '\r' clears the rest of the line and returns to column 0. '\n' does the same
// and moves down one line, unless the cursor is already on the last line. A
// '\n' does not change where wrapped lines go: they follow the start row.
// '\t' prints four spaces. Characters missing from the font are skipped.
//
// A character that does not fit wraps to the next line at the start column of
// the call, then to column 0 of that line; if it still does not fit it is
// dropped. Printing stops silently once the next line would be below the
// screen. Only ErrNoFont and transport errors are returned.
func (d *Dev) PrintWith(s string, o PrintOpts) error {
	l := line{invert: o.Invert, column: o.Column, row: o.Row}

	if l.column < 0 || l.column >= d.dev.Width {
		l.column = d.column
	} else if err := d.SetColumn(l.column); err != nil {
		return err
	}
	if l.row < 0 || l.row >= d.dev.Rows() {
		l.row = d.row
	} else if err := d.SetRow(l.row); err != nil {
		return err
	}

	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	for i := 0; i < len(s); i++ {
		more, err := d.step(&l, s[i])
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return nil
}

// PrintChar prints a single character through the same rules as PrintWith,
// wrapping relative to the current cursor.
func (d *Dev) PrintChar(ch byte, invert bool) error {
	l := line{invert: invert, column: d.column, row: d.row}
	_, err := d.step(&l, ch)
	return err
}

// Write prints p, implementing io.Writer.
func (d *Dev) Write(p []byte) (int, error) {
	if err := d.Print(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString prints s, implementing io.StringWriter.
func (d *Dev) WriteString(s string) (int, error) {
	if err := d.Print(s); err != nil {
		return 0, err
	}
	return len(s), nil
}

// line is the wrap state of one print call: the column and row band wraps
// start from. Only wraps move row.
type line struct {
	invert bool
	column int
	row    int
}

// step prints one character and reports whether printing may go on.
func (d *Dev) step(l *line, ch byte) (bool, error) {
	if d.font == nil {
		return false, ErrNoFont
	}
	bands := d.font.Metrics().RowBands

	switch ch {
	case '\r':
		if err := d.clearLine(bands, l.invert); err != nil {
			return false, err
		}
		return true, d.SetColumn(0)

	case '\n':
		if d.row == d.dev.Rows()-bands {
			return true, nil
		}
		if err := d.clearLine(bands, l.invert); err != nil {
			return false, err
		}
		return true, d.SetCursor(0, d.row+bands)

	case '\t':
		for i := 0; i < tabWidth; i++ {
			if more, err := d.step(l, ' '); !more || err != nil {
				return more, err
			}
		}
		return true, nil
	}

	err := d.RenderChar(ch, l.invert)
	if !errors.Is(err, ErrOverflow) {
		return settle(err)
	}

	// Next line, at the start column of the call.
	l.row += bands
	if l.row >= d.dev.Rows() {
		return false, nil
	}
	if err := d.SetCursor(l.column, l.row); err != nil {
		return false, err
	}
	err = d.RenderChar(ch, l.invert)
	if !errors.Is(err, ErrOverflow) {
		return settle(err)
	}

	// Still too wide: left edge. Whatever happens the character is done.
	if err := d.SetColumn(0); err != nil {
		return false, err
	}
	return settle(d.RenderChar(ch, l.invert))
}

// settle turns the per-character soft errors into "go on".
func settle(err error) (bool, error) {
	if err == nil || errors.Is(err, ErrNotInFont) || errors.Is(err, ErrOverflow) {
		return true, nil
	}
	return false, err
}

// clearLine blanks the current line from the cursor to the right edge.
func (d *Dev) clearLine(bands int, invert bool) error {
	return d.ClearRegion(d.column, d.row, d.dev.Width-1, d.row+bands-1, invert)
}
