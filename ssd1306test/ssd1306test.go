// Package ssd1306test provides an emulated page-addressed OLED controller.
//
// Panel implements ssd1306.Transport. It decodes the page and column addressing
// commands, stores data writes in controller RAM and records every transfer, so
// tests can check both the bytes on the bus and the resulting picture.
package ssd1306test

import (
	"image"
	"strings"
	"sync"

	"github.com/flavioheleno/ssd1306/image1bit"
)

// RAMWidth is the column RAM of the emulated controller (SH1106 sized).
const RAMWidth = 132

// RAMPages is the number of 8-row pages of controller RAM.
const RAMPages = 8

// argCount is the number of argument bytes that follow a command.
var argCount = map[byte]int{
	0x20: 1, // Memory addressing mode
	0x21: 2, // Column address range
	0x22: 2, // Page address range
	0x26: 6, // Horizontal scroll setup (right)
	0x27: 6, // Horizontal scroll setup (left)
	0x29: 5, // Vertical and horizontal scroll
	0x2A: 5,
	0x81: 1, // Contrast
	0x8D: 1, // Charge pump
	0xA3: 2, // Vertical scroll area
	0xA8: 1, // Multiplex ratio
	0xD3: 1, // Display offset
	0xD5: 1, // Clock divider
	0xD9: 1, // Pre-charge period
	0xDA: 1, // COM pins
	0xDB: 1, // VCOMH deselect level
}

// Op is one recorded transfer.
type Op struct {
	Command bool   // Command or data transfer
	Bytes   []byte // Bytes sent, a single byte for commands
	Page    int    // Page addressed when the transfer started
	Column  int    // RAM column addressed when the transfer started
}

// Panel is an emulated controller.
type Panel struct {
	sync.Mutex

	// Ops holds every successful transfer in order.
	Ops []Op
	// Err, when set, is returned by every transfer, which is then not applied.
	Err error

	// On, Inverted and Contrast reflect the last panel-level commands.
	On       bool
	Inverted bool
	Contrast byte

	width, height, colOffset int

	ram    *image1bit.VerticalLSB
	page   int
	column int

	pending byte // Command waiting for arguments
	args    []byte
	want    int
}

// NewPanel returns a panel showing width x height pixels of RAM starting at
// RAM column colOffset.
func NewPanel(width, height, colOffset int) *Panel {
	return &Panel{
		Contrast:  0x7F,
		width:     width,
		height:    height,
		colOffset: colOffset,
		ram:       image1bit.NewVerticalLSB(image.Rect(0, 0, RAMWidth, RAMPages*8)),
	}
}

// WriteCommand decodes one command byte.
func (p *Panel) WriteCommand(cmd byte) error {
	p.Lock()
	defer p.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Ops = append(p.Ops, Op{Command: true, Bytes: []byte{cmd}, Page: p.page, Column: p.column})

	if p.want > 0 {
		p.args = append(p.args, cmd)
		p.want--
		if p.want == 0 {
			p.apply(p.pending, p.args)
		}
		return nil
	}
	if n := argCount[cmd]; n > 0 {
		p.pending, p.args, p.want = cmd, nil, n
		return nil
	}
	p.apply(cmd, nil)
	return nil
}

// WriteData stores data at the addressed page, auto-incrementing the column.
// Bytes past the end of RAM are dropped.
func (p *Panel) WriteData(data []byte) error {
	p.Lock()
	defer p.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Ops = append(p.Ops, Op{Bytes: append([]byte(nil), data...), Page: p.page, Column: p.column})

	row := p.ram.Page(p.page)
	for _, b := range data {
		if p.column >= RAMWidth {
			break
		}
		row[p.column] = b
		p.column++
	}
	return nil
}

func (p *Panel) apply(cmd byte, args []byte) {
	switch {
	case cmd <= 0x0F:
		p.column = p.column&0xF0 | int(cmd&0x0F)
	case cmd >= 0x10 && cmd <= 0x1F:
		p.column = int(cmd&0x0F)<<4 | p.column&0x0F
	case cmd >= 0xB0 && cmd <= 0xB7:
		p.page = int(cmd & 0x07)
	case cmd == 0x81:
		p.Contrast = args[0]
	case cmd == 0xA6:
		p.Inverted = false
	case cmd == 0xA7:
		p.Inverted = true
	case cmd == 0xAE:
		p.On = false
	case cmd == 0xAF:
		p.On = true
	}
}

// Cursor returns the addressed RAM page and column.
func (p *Panel) Cursor() (column, page int) {
	p.Lock()
	defer p.Unlock()
	return p.column, p.page
}

// Image returns a copy of the visible area.
func (p *Panel) Image() *image1bit.VerticalLSB {
	p.Lock()
	defer p.Unlock()
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, p.width, p.height))
	for n := 0; n < img.Pages(); n++ {
		copy(img.Page(n), p.ram.Page(n)[p.colOffset:p.colOffset+p.width])
	}
	return img
}

// Page returns a copy of the visible columns of page n.
func (p *Panel) Page(n int) []byte {
	return append([]byte(nil), p.Image().Page(n)...)
}

// Commands returns the command bytes recorded so far.
func (p *Panel) Commands() []byte {
	p.Lock()
	defer p.Unlock()
	var out []byte
	for _, op := range p.Ops {
		if op.Command {
			out = append(out, op.Bytes...)
		}
	}
	return out
}

// DataWrites returns the data transfers recorded so far.
func (p *Panel) DataWrites() []Op {
	p.Lock()
	defer p.Unlock()
	var out []Op
	for _, op := range p.Ops {
		if !op.Command {
			out = append(out, op)
		}
	}
	return out
}

// Reset forgets the recorded transfers. RAM and addressing are kept.
func (p *Panel) Reset() {
	p.Lock()
	defer p.Unlock()
	p.Ops = nil
}

// String renders the visible area, '#' for lit pixels and '.' for dark ones.
func (p *Panel) String() string {
	return Render(p.Image(), '#', '.')
}

// Render draws img one character per pixel.
func Render(img *image1bit.VerticalLSB, on, off rune) string {
	var sb strings.Builder
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.BitAt(x, y) {
				sb.WriteRune(on)
			} else {
				sb.WriteRune(off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
