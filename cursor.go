package ssd1306

// Cursor returns the current column (pixels) and row (row bands).
func (d *Dev) Cursor() (column, row int) {
	return d.column, d.row
}

// SetColumn moves the cursor to column c. Out of range values are ignored.
func (d *Dev) SetColumn(c int) error {
	if c < 0 || c >= d.dev.Width {
		return nil
	}
	d.column = c
	hw := c + d.dev.ColOffset
	if err := d.command(cmdSetLowColumn | byte(hw&0x0F)); err != nil {
		return err
	}
	return d.command(cmdSetHighColumn | byte(hw>>4))
}

// SetRow moves the cursor to row band r. Out of range values are ignored.
func (d *Dev) SetRow(r int) error {
	if r < 0 || r >= d.dev.Rows() {
		return nil
	}
	d.row = r
	return d.command(cmdSetStartPage | byte(r))
}

// SetCursor sets the column, then the row. Each coordinate is ignored on its
// own when out of range.
func (d *Dev) SetCursor(column, row int) error {
	if err := d.SetColumn(column); err != nil {
		return err
	}
	return d.SetRow(row)
}
