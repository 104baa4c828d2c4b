// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package spidev connects touch controllers via the Linux SPI and GPIO
// drivers, using periph.io.
//
// The controller chip select should be wired to a GPIO pin, rather than the
// SPI chip select, as the kernel deselects the device between each transfer.
package spidev

import (
	"errors"
	"fmt"

	"github.com/warthog618/utouch"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// DefaultFrequency is the fastest clock supported by the XPT2046.
const DefaultFrequency = 2 * physic.MegaHertz

var (
	// ErrUnknownPin indicates the pin is not known to the periph registry.
	ErrUnknownPin = errors.New("unknown pin")
)

// hostInit loads the periph host drivers, which populate the SPI and GPIO
// registries.  Repeated calls are cheap.
var hostInit = host.Init

// Bus is an SPI bus connected via a periph SPI port.
type Bus struct {
	closer spi.PortCloser
	conn   spi.Conn
	w      [1]byte
	r      [1]byte
}

// Open opens the named SPI port, e.g. "/dev/spidev0.1" or "SPI0.1".
// An empty name opens the first available port.
func Open(name string, f physic.Frequency) (*Bus, error) {
	if _, err := hostInit(); err != nil {
		return nil, err
	}
	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("spidev: %w", err)
	}
	b, err := New(p, f)
	if err != nil {
		p.Close()
		return nil, err
	}
	b.closer = p
	return b, nil
}

// New connects to the port in mode 0 with 8 bit words.
func New(p spi.Port, f physic.Frequency) (*Bus, error) {
	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("spidev: %w", err)
	}
	return &Bus{conn: c}, nil
}

// Close closes the port, if it was opened by Open.
func (b *Bus) Close() error {
	if b.closer == nil {
		return nil
	}
	err := b.closer.Close()
	b.closer = nil
	return err
}

// Transfer writes a byte while reading a byte.
func (b *Bus) Transfer(v byte) (byte, error) {
	b.w[0] = v
	if err := b.conn.Tx(b.w[:], b.r[:]); err != nil {
		return 0, err
	}
	return b.r[0], nil
}

// Tx writes w while reading into r.
func (b *Bus) Tx(w, r []byte) error {
	return b.conn.Tx(w, r)
}

// Pin adapts a periph pin for use as a touch controller chip select or
// interrupt line.
//
// Errors reported by the underlying pin are latched and returned by Err.
type Pin struct {
	pin   gpio.PinIO
	level gpio.Level
	err   error
}

// NewPin returns the named pin, e.g. "GPIO17".
func NewPin(name string) (*Pin, error) {
	if _, err := hostInit(); err != nil {
		return nil, err
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownPin, name)
	}
	return WrapPin(p), nil
}

// WrapPin wraps a periph pin.
func WrapPin(p gpio.PinIO) *Pin {
	return &Pin{pin: p, level: gpio.High}
}

// SetMode sets the pin mode.
// Inputs are pulled up, as the touch interrupt is open drain.
// Outputs are driven to the last level written, high by default.
func (p *Pin) SetMode(m utouch.Mode) {
	if m == utouch.Input {
		p.latch(p.pin.In(gpio.PullUp, gpio.NoEdge))
		return
	}
	p.latch(p.pin.Out(p.level))
}

// Read returns the pin level.
func (p *Pin) Read() utouch.Level {
	return utouch.Level(p.pin.Read())
}

// Write sets the pin level.
func (p *Pin) Write(l utouch.Level) {
	p.level = gpio.Level(l)
	p.latch(p.pin.Out(p.level))
}

// Err returns the first error reported by the pin.
func (p *Pin) Err() error {
	return p.err
}

func (p *Pin) latch(err error) {
	if p.err == nil && err != nil {
		p.err = fmt.Errorf("%s: %w", p.pin.Name(), err)
	}
}
