// Package ssd1306 prints text on SSD1306 and SH1106 monochrome OLED displays.
//
// Common display resolutions are 128x64, 128x32 and 96x16.
package ssd1306

import (
	"errors"
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/flavioheleno/ssd1306/bitfont"
)

var (
	// ErrNoFont is returned by print operations when no font is bound.
	ErrNoFont = errors.New("ssd1306: no font")
	// ErrNotInFont is returned by RenderChar for a character outside the font.
	ErrNotInFont = bitfont.ErrNotInFont
	// ErrOverflow is returned by RenderChar when the glyph and its spacing
	// column do not fit between the cursor and the right edge.
	ErrOverflow = errors.New("ssd1306: glyph overflows the line")
	// ErrHalted is returned by every operation after Halt.
	ErrHalted = errors.New("ssd1306: halted")
)

// Opts is the configuration for the display.
type Opts struct {
	// Display module; the zero value selects Adafruit128x64
	Device Device

	// Font used by the print operations; nil selects bitfont.Basic7x13
	// unless NoFont is set
	Font   *bitfont.Font
	NoFont bool

	// I2C only
	Addr    uint16           // Slave address (default: 0x3C)
	Speed   physic.Frequency // Bus speed, left untouched when zero
	Timeout time.Duration    // Per transfer (default: 100ms, negative disables)

	// Optional hardware reset pin
	RST gpio.PinIO
}

// Dev is the device handle for the display.
type Dev struct {
	t   Transport
	rst gpio.PinIO
	dev Device

	font *bitfont.Font

	// Cursor, in pixels and row bands; only changed by SetColumn and SetRow.
	column, row int

	halted bool
}

// NewI2C creates a new device connected via I2C.
//
// opts can be nil to use defaults (128x64 at address 0x3C).
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	o := withDefaults(opts)
	if o.Speed != 0 {
		if err := b.SetSpeed(o.Speed); err != nil {
			return nil, fmt.Errorf("ssd1306: failed to set bus speed: %w", err)
		}
	}
	t := &i2cTransport{
		dev:     i2c.Dev{Bus: b, Addr: o.Addr},
		timeout: o.Timeout,
	}
	return newDev(t, o)
}

// NewSPI creates a new device connected via 4-wire SPI.
//
// The SPI port is configured for 8MHz, Mode0, 8-bit transfers. The dc
// (Data/Command) GPIO pin must be provided and configured as an output.
//
// opts can be nil to use defaults (128x64).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil {
		return nil, errors.New("ssd1306: dc pin is required")
	}
	c, err := p.Connect(8*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return newDev(&spiTransport{c: c, dc: dc}, withDefaults(opts))
}

// New creates a device on top of an arbitrary transport.
func New(t Transport, opts *Opts) (*Dev, error) {
	return newDev(t, withDefaults(opts))
}

func withDefaults(opts *Opts) Opts {
	var o Opts
	if opts != nil {
		o = *opts
	}
	if o.Device.Width == 0 && o.Device.Height == 0 {
		o.Device = Adafruit128x64
	}
	if o.Font == nil && !o.NoFont {
		o.Font = bitfont.Basic7x13()
	}
	if o.NoFont {
		o.Font = nil
	}
	if o.Addr == 0 {
		o.Addr = 0x3C
	}
	if o.Timeout == 0 {
		o.Timeout = 100 * time.Millisecond
	}
	return o
}

func newDev(t Transport, o Opts) (*Dev, error) {
	if err := o.Device.validate(); err != nil {
		return nil, err
	}
	d := &Dev{
		t:    t,
		rst:  o.RST,
		dev:  o.Device,
		font: o.Font,
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// init resets the controller, sends the device's command sequence and clears
// the screen.
func (d *Dev) init() error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ssd1306: failed to pull RST low: %w", err)
		}
		time.Sleep(10 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ssd1306: failed to pull RST high: %w", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	for _, c := range d.dev.Init {
		if err := d.command(c); err != nil {
			return fmt.Errorf("ssd1306: init: %w", err)
		}
	}

	if err := d.Clear(); err != nil {
		return fmt.Errorf("ssd1306: init: %w", err)
	}
	return nil
}

// command sends one command byte.
func (d *Dev) command(c byte) error {
	if d.halted {
		return ErrHalted
	}
	return d.t.WriteCommand(c)
}

// data sends data bytes at the current column and page.
func (d *Dev) data(b []byte) error {
	if d.halted {
		return ErrHalted
	}
	return d.t.WriteData(b)
}

// Bounds returns the screen bounds in pixels.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.dev.Width, d.dev.Height)
}

// Device returns the display module descriptor.
func (d *Dev) Device() Device {
	return d.dev
}

// Rows returns the number of row bands on the screen.
func (d *Dev) Rows() int {
	return d.dev.Rows()
}

// Font returns the bound font, possibly nil.
func (d *Dev) Font() *bitfont.Font {
	return d.font
}

// SetFont binds a new font; nil unbinds it. The cursor is left unchanged.
func (d *Dev) SetFont(f *bitfont.Font) {
	d.font = f
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if err := d.command(cmdSetContrast); err != nil {
		return err
	}
	return d.command(contrast)
}

// Invert inverts the whole panel (black becomes white and vice versa).
// This is independent of the per-print inversion.
func (d *Dev) Invert(invert bool) error {
	mode := byte(cmdNormalDisplay)
	if invert {
		mode = cmdInvertDisplay
	}
	return d.command(mode)
}

// Halt turns the display off.
// After calling Halt, every operation fails with ErrHalted.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	err := d.command(cmdDisplayOff)
	d.halted = true
	return err
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306.Dev{%s %dx%d}", d.dev.Name, d.dev.Width, d.dev.Height)
}
