package ssd1306

// Clear blanks the whole screen and moves the cursor to (0, 0).
func (d *Dev) Clear() error {
	return d.ClearRegion(0, 0, d.dev.Width-1, d.dev.Rows()-1, false)
}

// ClearToEnd clears from the cursor to the bottom-right corner of the screen,
// row band by row band, starting every band at the cursor column.
func (d *Dev) ClearToEnd(invert bool) error {
	return d.ClearRegion(d.column, d.row, d.dev.Width-1, d.dev.Rows()-1, invert)
}

// ClearRegion fills columns [columnStart, columnEnd] of row bands
// [rowStart, rowEnd] with 0x00, or 0xFF when invert is set, then moves the
// cursor to (columnStart, rowStart).
//
// End coordinates past the screen are clamped and negative starts count from
// zero. An empty region writes nothing and leaves the cursor alone.
func (d *Dev) ClearRegion(columnStart, rowStart, columnEnd, rowEnd int, invert bool) error {
	if columnEnd >= d.dev.Width {
		columnEnd = d.dev.Width - 1
	}
	if rowEnd >= d.dev.Rows() {
		rowEnd = d.dev.Rows() - 1
	}
	if columnStart < 0 {
		columnStart = 0
	}
	if rowStart < 0 {
		rowStart = 0
	}
	if columnStart > columnEnd || rowStart > rowEnd {
		return nil
	}

	fill := make([]byte, columnEnd-columnStart+1)
	if invert {
		for i := range fill {
			fill[i] = 0xFF
		}
	}

	for r := rowStart; r <= rowEnd; r++ {
		if err := d.SetCursor(columnStart, r); err != nil {
			return err
		}
		if err := d.data(fill); err != nil {
			return err
		}
	}

	return d.SetCursor(columnStart, rowStart)
}
