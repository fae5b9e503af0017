// Package image1bit provides a 1-bit monochrome image format for page-addressed OLED controllers.
//
// The SSD1306 and SH1106 controllers split their RAM into pages (row bands) of 8 pixel rows.
// Each byte of a page holds one column of 8 vertical pixels, least significant bit on top.
//
// Memory layout example for a 3-column, 8-row image:
//
//	Column:  0     1     2
//	Byte:    0x01  0x80  0xFF
//	         (0x01 = only the top pixel lit)
//	         (0x80 = only the bottom pixel lit)
//	         (0xFF = full column lit)
//
// The same layout is used by the glyph bitmaps in package bitfont, so a page of a
// VerticalLSB can be sent to the display, or compared with what was sent, byte for byte.
//
// This package provides:
//
// - Bit: A color type that is either On or Off
// - BitModel: A color model converting standard Go colors to Bit
// - VerticalLSB: An image.Image and draw.Image implementation in page layout
//
// Example usage:
//
//	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
//	img.SetBit(10, 20, image1bit.On)
//	page := img.Page(2) // 128 bytes covering pixel rows 16-23
package image1bit
