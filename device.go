package ssd1306

import (
	"errors"
	"fmt"
)

// Controller commands used by the driver.
const (
	cmdSetLowColumn  = 0x00 // | low nibble of the column
	cmdSetHighColumn = 0x10 // | high nibble of the column
	cmdSetStartPage  = 0xB0 // | page, page addressing mode only
	cmdSetContrast   = 0x81
	cmdNormalDisplay = 0xA6
	cmdInvertDisplay = 0xA7
	cmdDisplayOff    = 0xAE
	cmdDisplayOn     = 0xAF
)

// ramWidth is the widest column RAM among the supported controllers (SH1106).
const ramWidth = 132

// Device describes one display module: its geometry and the command sequence
// that brings it up in page addressing mode.
type Device struct {
	Name      string
	Width     int    // Visible columns
	Height    int    // Visible pixel rows, a multiple of 8
	ColOffset int    // Added to a column before it is sent to the controller
	Init      []byte // Initialization commands, sent one by one
}

// Adafruit128x64 is the common 0.96" SSD1306 module.
var Adafruit128x64 = Device{
	Name:   "Adafruit128x64",
	Width:  128,
	Height: 64,
	Init: []byte{
		0xAE,       // Display OFF
		0xD5, 0x80, // Clock divider
		0xA8, 0x3F, // Multiplex ratio (64)
		0xD3, 0x00, // Display offset
		0x40,       // Start line 0
		0x8D, 0x14, // Charge pump on
		0x20, 0x02, // Page addressing mode
		0xA1,       // Segment remap
		0xC8,       // COM scan direction decrement
		0xDA, 0x12, // COM pins
		0x81, 0xCF, // Contrast
		0xD9, 0xF1, // Pre-charge period
		0xDB, 0x40, // VCOMH deselect level
		0xA4, // Resume from RAM
		0xA6, // Normal display
		0xAF, // Display ON
	},
}

// Adafruit128x32 is the 0.91" SSD1306 module.
var Adafruit128x32 = Device{
	Name:   "Adafruit128x32",
	Width:  128,
	Height: 32,
	Init: []byte{
		0xAE,
		0xD5, 0x80,
		0xA8, 0x1F, // Multiplex ratio (32)
		0xD3, 0x00,
		0x40,
		0x8D, 0x14,
		0x20, 0x02,
		0xA1,
		0xC8,
		0xDA, 0x02, // Sequential COM pins
		0x81, 0x8F,
		0xD9, 0xF1,
		0xDB, 0x40,
		0xA4,
		0xA6,
		0xAF,
	},
}

// Adafruit96x16 is the 0.69" SSD1306 module.
var Adafruit96x16 = Device{
	Name:   "Adafruit96x16",
	Width:  96,
	Height: 16,
	Init: []byte{
		0xAE,
		0xD5, 0x80,
		0xA8, 0x0F, // Multiplex ratio (16)
		0xD3, 0x00,
		0x40,
		0x8D, 0x14,
		0x20, 0x02,
		0xA1,
		0xC8,
		0xDA, 0x02,
		0x81, 0xAF,
		0xD9, 0xF1,
		0xDB, 0x40,
		0xA4,
		0xA6,
		0xAF,
	},
}

// SH1106_128x64 is the 1.3" module; the SH1106 has 132 columns of RAM and the
// glass starts at column 2.
var SH1106_128x64 = Device{
	Name:      "SH1106_128x64",
	Width:     128,
	Height:    64,
	ColOffset: 2,
	Init: []byte{
		0xAE,
		0xD5, 0x80,
		0xA8, 0x3F,
		0xD3, 0x00,
		0x40,
		0x8D, 0x14,
		0x20, 0x02,
		0xA1,
		0xC8,
		0xDA, 0x12,
		0x81, 0xCF,
		0xD9, 0xF1,
		0xDB, 0x40,
		0xA4,
		0xA6,
		0xAF,
	},
}

// Devices lists the predefined descriptors by name.
var Devices = map[string]Device{
	Adafruit128x64.Name: Adafruit128x64,
	Adafruit128x32.Name: Adafruit128x32,
	Adafruit96x16.Name:  Adafruit96x16,
	SH1106_128x64.Name:  SH1106_128x64,
}

// Rows returns the number of 8 pixel row bands.
func (d Device) Rows() int {
	return d.Height / 8
}

func (d Device) validate() error {
	if d.Width <= 0 || d.Width > 128 {
		return errors.New("ssd1306: width must be between 1 and 128")
	}
	if d.Height < 8 || d.Height > 64 || d.Height%8 != 0 {
		return errors.New("ssd1306: height must be a multiple of 8 between 8 and 64")
	}
	if d.ColOffset < 0 || d.ColOffset+d.Width > ramWidth {
		return fmt.Errorf("ssd1306: column offset %d does not fit %d columns of RAM", d.ColOffset, ramWidth)
	}
	return nil
}
