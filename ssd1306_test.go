package ssd1306

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/flavioheleno/ssd1306/bitfont"
	"github.com/flavioheleno/ssd1306/ssd1306test"
)

// fixed5x7 builds a fixed 5x7 font covering count characters from first.
// Column x of glyph i is (i*5+x+1) & 0x7F, never zero for small fonts.
func fixed5x7(first byte, count int) *bitfont.Font {
	data := []byte{0x00, 0x00, 5, 7, first, byte(count)}
	for i := 0; i < count; i++ {
		for x := 0; x < 5; x++ {
			data = append(data, byte(i*5+x+1)&0x7F)
		}
	}
	return bitfont.MustParse(data)
}

// variable12 is a 12 pixel high variable width font with glyphs 'a' (2 wide)
// and 'b' (3 wide).
func variable12() *bitfont.Font {
	return bitfont.MustParse([]byte{
		0x00, 0x10, 0, 12, 'a', 2,
		2, 3,
		0x81, 0x42, 0x30, 0xF0, // 'a'
		0x01, 0x02, 0x03, 0x10, 0x20, 0x40, // 'b'
	})
}

// newTestDev returns an initialized device on an emulated panel with the
// recorded transfers reset.
func newTestDev(t *testing.T, dev Device, f *bitfont.Font) (*Dev, *ssd1306test.Panel) {
	t.Helper()
	p := ssd1306test.NewPanel(dev.Width, dev.Height, dev.ColOffset)
	d, err := New(p, &Opts{Device: dev, Font: f, NoFont: f == nil})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	p.Reset()
	return d, p
}

func TestNewInitSequence(t *testing.T) {
	p := ssd1306test.NewPanel(128, 64, 0)
	d, err := New(p, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cmds := p.Commands()
	if !bytes.HasPrefix(cmds, Adafruit128x64.Init) {
		t.Errorf("commands = % X, want the Adafruit128x64 init sequence first", cmds)
	}
	if !p.On {
		t.Error("panel should be on after init")
	}
	if got := len(p.DataWrites()); got != 8 {
		t.Errorf("init clear wrote %d pages, want 8", got)
	}
	for n := 0; n < 8; n++ {
		for x, b := range p.Page(n) {
			if b != 0 {
				t.Fatalf("page %d column %d = 0x%02X after init, want 0x00", n, x, b)
			}
		}
	}
	if c, r := d.Cursor(); c != 0 || r != 0 {
		t.Errorf("Cursor() = (%d, %d), want (0, 0)", c, r)
	}
	if d.Font() != bitfont.Basic7x13() {
		t.Error("default font should be Basic7x13")
	}
	if d.Device().Name != "Adafruit128x64" {
		t.Errorf("default device = %q, want Adafruit128x64", d.Device().Name)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		dev     Device
		wantErr bool
	}{
		{"128x64", Adafruit128x64, false},
		{"128x32", Adafruit128x32, false},
		{"96x16", Adafruit96x16, false},
		{"sh1106", SH1106_128x64, false},
		{"width too large", Device{Width: 129, Height: 64}, true},
		{"negative width", Device{Width: -1, Height: 64}, true},
		{"height not page aligned", Device{Width: 128, Height: 60}, true},
		{"height too large", Device{Width: 128, Height: 72}, true},
		{"offset past RAM", Device{Width: 128, Height: 64, ColOffset: 5}, true},
		{"negative offset", Device{Width: 128, Height: 64, ColOffset: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ssd1306test.NewPanel(128, 64, 0)
			_, err := New(p, &Opts{Device: tt.dev})
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewInitError(t *testing.T) {
	busErr := errors.New("bus stuck")
	p := ssd1306test.NewPanel(128, 64, 0)
	p.Err = busErr
	if _, err := New(p, nil); !errors.Is(err, busErr) {
		t.Errorf("New() error = %v, want wrapped %v", err, busErr)
	}
}

func TestNewResetPulse(t *testing.T) {
	rst := &gpiotest.Pin{N: "RST", L: gpio.Low}
	p := ssd1306test.NewPanel(128, 64, 0)
	if _, err := New(p, &Opts{RST: rst}); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if rst.L != gpio.High {
		t.Errorf("RST level after init = %v, want High", rst.L)
	}
}

func TestDevBounds(t *testing.T) {
	d, _ := newTestDev(t, Adafruit128x32, nil)
	want := image.Rect(0, 0, 128, 32)
	if got := d.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if d.Rows() != 4 {
		t.Errorf("Rows() = %d, want 4", d.Rows())
	}
}

func TestDevString(t *testing.T) {
	d, _ := newTestDev(t, Adafruit96x16, nil)
	want := "ssd1306.Dev{Adafruit96x16 96x16}"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSetCursorCommands(t *testing.T) {
	d, p := newTestDev(t, SH1106_128x64, nil)

	if err := d.SetCursor(30, 5); err != nil {
		t.Fatalf("SetCursor() error = %v", err)
	}
	// 30 + 2 = 0x20: low nibble 0, high nibble 2.
	want := []byte{0x00, 0x12, 0xB5}
	if got := p.Commands(); !bytes.Equal(got, want) {
		t.Errorf("commands = % X, want % X", got, want)
	}
	if c, r := d.Cursor(); c != 30 || r != 5 {
		t.Errorf("Cursor() = (%d, %d), want (30, 5)", c, r)
	}
	if col, page := p.Cursor(); col != 32 || page != 5 {
		t.Errorf("panel cursor = (%d, %d), want (32, 5)", col, page)
	}
}

func TestSetCursorOutOfRange(t *testing.T) {
	d, p := newTestDev(t, Adafruit128x64, nil)
	d.SetCursor(10, 3)
	p.Reset()

	tests := []struct {
		name string
		fn   func() error
	}{
		{"column = width", func() error { return d.SetColumn(128) }},
		{"negative column", func() error { return d.SetColumn(-1) }},
		{"row = rows", func() error { return d.SetRow(8) }},
		{"negative row", func() error { return d.SetRow(-3) }},
		{"both", func() error { return d.SetCursor(200, 200) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); err != nil {
				t.Fatalf("error = %v", err)
			}
			if c, r := d.Cursor(); c != 10 || r != 3 {
				t.Errorf("Cursor() = (%d, %d), want (10, 3)", c, r)
			}
			if len(p.Ops) != 0 {
				t.Errorf("%d transfers, want none", len(p.Ops))
			}
		})
	}
}

func TestSetCursorIndependentAxes(t *testing.T) {
	d, _ := newTestDev(t, Adafruit128x64, nil)
	d.SetCursor(200, 4)
	if c, r := d.Cursor(); c != 0 || r != 4 {
		t.Errorf("Cursor() = (%d, %d), want (0, 4)", c, r)
	}
}

func TestSetContrastAndInvert(t *testing.T) {
	d, p := newTestDev(t, Adafruit128x64, nil)

	if err := d.SetContrast(0x42); err != nil {
		t.Fatalf("SetContrast() error = %v", err)
	}
	if p.Contrast != 0x42 {
		t.Errorf("panel contrast = 0x%02X, want 0x42", p.Contrast)
	}
	if err := d.Invert(true); err != nil {
		t.Fatalf("Invert() error = %v", err)
	}
	if !p.Inverted {
		t.Error("panel should be inverted")
	}
	d.Invert(false)
	if p.Inverted {
		t.Error("panel should not be inverted")
	}
}

func TestHalt(t *testing.T) {
	d, p := newTestDev(t, Adafruit128x64, fixed5x7('A', 3))

	if err := d.Halt(); err != nil {
		t.Fatalf("Halt() error = %v", err)
	}
	if p.On {
		t.Error("panel should be off after Halt")
	}
	p.Reset()

	if err := d.Print("AB"); !errors.Is(err, ErrHalted) {
		t.Errorf("Print after Halt error = %v, want ErrHalted", err)
	}
	if err := d.Clear(); !errors.Is(err, ErrHalted) {
		t.Errorf("Clear after Halt error = %v, want ErrHalted", err)
	}
	if err := d.SetContrast(1); !errors.Is(err, ErrHalted) {
		t.Errorf("SetContrast after Halt error = %v, want ErrHalted", err)
	}
	if err := d.Halt(); err != nil {
		t.Errorf("second Halt() error = %v, want nil", err)
	}
	if len(p.Ops) != 0 {
		t.Errorf("%d transfers after Halt, want none", len(p.Ops))
	}
}

func TestSetFont(t *testing.T) {
	d, _ := newTestDev(t, Adafruit128x64, nil)
	if d.Font() != nil {
		t.Fatal("font should be nil with NoFont")
	}
	f := fixed5x7('0', 10)
	d.SetFont(f)
	if d.Font() != f {
		t.Error("Font() should return the font just set")
	}
	if err := d.Print("42"); err != nil {
		t.Errorf("Print() error = %v", err)
	}
}

func TestI2CTransport(t *testing.T) {
	bus := &i2ctest.Record{}
	d, err := NewI2C(bus, &Opts{Device: Adafruit96x16, Font: fixed5x7('A', 1)})
	if err != nil {
		t.Fatalf("NewI2C() error = %v", err)
	}

	if len(bus.Ops) == 0 {
		t.Fatal("no I2C transfers recorded")
	}
	first := bus.Ops[0]
	if first.Addr != 0x3C {
		t.Errorf("address = 0x%02X, want 0x3C", first.Addr)
	}
	if !bytes.Equal(first.W, []byte{0x00, 0xAE}) {
		t.Errorf("first transfer = % X, want 00 AE", first.W)
	}

	bus.Ops = nil
	if err := d.RenderChar('A', false); err != nil {
		t.Fatalf("RenderChar() error = %v", err)
	}
	want := []byte{0x40, 1, 2, 3, 4, 5, 0x00}
	var found bool
	for _, op := range bus.Ops {
		if bytes.Equal(op.W, want) {
			found = true
		}
	}
	if !found {
		t.Errorf("no data transfer % X in %v", want, bus.Ops)
	}
}

func TestI2CCustomAddress(t *testing.T) {
	bus := &i2ctest.Record{}
	if _, err := NewI2C(bus, &Opts{Addr: 0x3D, NoFont: true}); err != nil {
		t.Fatalf("NewI2C() error = %v", err)
	}
	for _, op := range bus.Ops {
		if op.Addr != 0x3D {
			t.Fatalf("address = 0x%02X, want 0x3D", op.Addr)
		}
	}
}

// spiConn records transfers with the DC level at the time of the transfer.
type spiConn struct {
	spi.Conn
	dc  *gpiotest.Pin
	ops []spiOp
}

type spiOp struct {
	dc gpio.Level
	w  []byte
}

func (c *spiConn) Tx(w, r []byte) error {
	c.ops = append(c.ops, spiOp{dc: c.dc.L, w: append([]byte(nil), w...)})
	return nil
}

type spiPort struct {
	spi.Port
	conn *spiConn
	hz   physic.Frequency
	mode spi.Mode
}

func (p *spiPort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.hz, p.mode = f, mode
	return p.conn, nil
}

func TestSPITransport(t *testing.T) {
	dc := &gpiotest.Pin{N: "DC"}
	port := &spiPort{conn: &spiConn{dc: dc}}
	d, err := NewSPI(port, dc, &Opts{Device: Adafruit128x32, Font: fixed5x7('A', 1)})
	if err != nil {
		t.Fatalf("NewSPI() error = %v", err)
	}
	if port.hz != 8*physic.MegaHertz || port.mode != spi.Mode0 {
		t.Errorf("Connect(%v, %v), want 8MHz Mode0", port.hz, port.mode)
	}

	ops := port.conn.ops
	if len(ops) == 0 {
		t.Fatal("no SPI transfers recorded")
	}
	if ops[0].dc != gpio.Low || !bytes.Equal(ops[0].w, []byte{0xAE}) {
		t.Fatalf("first SPI transfer = %+v, want command AE with DC low", ops[0])
	}

	port.conn.ops = nil
	if err := d.RenderChar('A', true); err != nil {
		t.Fatalf("RenderChar() error = %v", err)
	}
	// The cursor moves after the glyph, so the data is not the last transfer.
	var last *spiOp
	for i := range port.conn.ops {
		if port.conn.ops[i].dc == gpio.High {
			last = &port.conn.ops[i]
		}
	}
	if last == nil {
		t.Fatal("no SPI transfer with DC high")
	}
	want := []byte{^byte(1), ^byte(2), ^byte(3), ^byte(4), ^byte(5), 0xFF}
	if !bytes.Equal(last.w, want) {
		t.Errorf("last data transfer = % X, want % X", last.w, want)
	}
	if end := port.conn.ops[len(port.conn.ops)-1]; end.dc != gpio.Low {
		t.Errorf("last SPI transfer = %+v, want a cursor command with DC low", end)
	}
}

func TestNewSPIRequiresDC(t *testing.T) {
	if _, err := NewSPI(&spiPort{}, nil, nil); err == nil {
		t.Error("NewSPI without a DC pin should fail")
	}
}
