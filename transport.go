package ssd1306

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// ErrTimeout is returned when an I2C transfer took longer than Opts.Timeout.
var ErrTimeout = errors.New("ssd1306: bus write timed out")

// Transport moves command and data bytes to the controller. Both calls block
// until the bus operation completes.
type Transport interface {
	WriteCommand(cmd byte) error
	WriteData(data []byte) error
}

// I2C control bytes: Co=0, D/C# selects command or data for the rest of the transfer.
const (
	i2cCommand = 0x00
	i2cData    = 0x40
)

// i2cTransport prefixes every transfer with the control byte.
type i2cTransport struct {
	dev     i2c.Dev
	timeout time.Duration
}

func (t *i2cTransport) WriteCommand(cmd byte) error {
	return t.tx([]byte{i2cCommand, cmd})
}

func (t *i2cTransport) WriteData(data []byte) error {
	buf := make([]byte, len(data)+1)
	buf[0] = i2cData
	copy(buf[1:], data)
	return t.tx(buf)
}

// tx runs one transfer. periph buses have no per-transfer deadline, so the
// transfer completes and is then judged against the timeout.
func (t *i2cTransport) tx(w []byte) error {
	start := time.Now()
	if err := t.dev.Tx(w, nil); err != nil {
		return err
	}
	if t.timeout > 0 {
		if d := time.Since(start); d > t.timeout {
			return fmt.Errorf("%w: %d bytes to %s took %s", ErrTimeout, len(w), t.dev.String(), d)
		}
	}
	return nil
}

// spiTransport selects command or data with the DC pin.
type spiTransport struct {
	c  conn.Conn
	dc gpio.PinOut
}

func (t *spiTransport) WriteCommand(cmd byte) error {
	if err := t.dc.Out(gpio.Low); err != nil {
		return err
	}
	return t.c.Tx([]byte{cmd}, nil)
}

func (t *spiTransport) WriteData(data []byte) error {
	if err := t.dc.Out(gpio.High); err != nil {
		return err
	}
	return t.c.Tx(data, nil)
}
