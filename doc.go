// Package ssd1306 prints text on SSD1306 and SH1106 OLED displays via I2C or SPI.
//
// The SSD1306 is a monochrome OLED controller with 128x64 pixels of RAM; the
// SH1106 is a close relative with 132 columns of RAM. This driver keeps no
// framebuffer: it addresses the controller RAM in page mode and sends every
// glyph row band as one data write at the cursor.
//
// # Display Characteristics
//
// - 1 bit per pixel
// - RAM organised in pages of 8 pixel rows, one byte per column, LSB on top
// - Widths up to 128 columns, heights of 8 to 64 pixels in steps of 8
// - Adjustable contrast (0-255)
// - Display inversion
//
// # Hardware Connection
//
// Connect the display via I2C:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I2C Clock (SCL)
//	SDA         → I2C Data (SDA)
//	RES         → Optional: GPIO for hardware reset
//
// or via 4-wire SPI, with the DC pin on any available GPIO:
//
//	Display Pin → System Pin
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO
//	CS          → SPI Chip Select (or GND if always selected)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"github.com/flavioheleno/ssd1306"
//		"periph.io/x/conn/v3/i2c/i2creg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		b, _ := i2creg.Open("")
//		defer b.Close()
//
//		dev, _ := ssd1306.NewI2C(b, &ssd1306.Opts{
//			Device: ssd1306.Adafruit128x32,
//		})
//		defer dev.Halt()
//
//		dev.Print("Hello\nworld")
//	}
//
// # Devices
//
// A Device describes a display module: its visible size, the RAM column the
// visible area starts at and the init sequence. Adafruit128x64 is the default;
// Adafruit128x32, Adafruit96x16 and SH1106_128x64 are also provided, and
// Devices maps their names to them.
//
// # Cursor
//
// The cursor is a pixel column and a row band of 8 pixel rows. SetColumn,
// SetRow and SetCursor ignore out of range values, and rendering moves the
// cursor only through them. A glyph that ends on the last column therefore
// leaves the column where the glyph started.
//
// # Fonts
//
// Fonts are bitfont resources, either fixed width or variable width. The
// default is bitfont.Basic7x13; SetFont changes it and Opts.NoFont starts the
// device without one.
//
// # Printing
//
// Print and PrintWith handle '\r', '\n' and '\t', skip characters missing from
// the font and wrap long lines back to the column printing started at.
// RenderChar draws a single glyph without any of that. Dev implements
// io.Writer, so fmt.Fprintf works too:
//
//	fmt.Fprintf(dev, "%3d%%", 42)
//
// Every print operation accepts an invert flag that draws dark glyphs on a lit
// background. ClearRegion, ClearToEnd and Clear fill rectangles of row bands.
//
// # Testing
//
// Package ssd1306test emulates the controller. Pass a ssd1306test.Panel to New
// to check both the transfers and the resulting picture.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306
