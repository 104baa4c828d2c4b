// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package utouch provides a driver for ADS7843/XPT2046 family resistive
// touchscreen controllers connected via SPI.
//
// The driver is polled:
//
//	d := utouch.New(bus, cs, irq)
//	if err := d.Init(utouch.Portrait, cal); err != nil {
//		...
//	}
//	for {
//		if d.DataAvailable() {
//			if _, err := d.Read(); err == nil {
//				x, _ := d.X()
//				y, _ := d.Y()
//				...
//			}
//		}
//	}
//
// The Device is not safe for concurrent use.  Callers sharing the bus with
// other devices must serialise access themselves.
package utouch

import (
	"errors"
	"image"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/touch"
)

// Level represents the high (true) or low (false) level of a Pin.
type Level bool

// Mode defines the IO mode of a Pin.
type Mode int

// Pin Mode, a pin can be set in Input or Output mode.
// Values match those of github.com/warthog618/gpio.
const (
	Input Mode = iota
	Output
)

// Level of pin, High / Low
const (
	Low  Level = false
	High Level = true
)

// Pin is a digital line used for chip select or the touch interrupt.
type Pin interface {
	SetMode(Mode)
	Read() Level
	Write(Level)
}

// Bus exchanges single bytes with the controller.
//
// The TinyGo drivers.SPI satisfies Bus.
type Bus interface {
	Transfer(b byte) (byte, error)
}

// beginner is implemented by buses that require initialisation.
type beginner interface {
	Begin() error
}

var _ Bus = drivers.SPI(nil)

// Controller commands - 12 bit, differential reference, power down between
// conversions.
const (
	CmdX  byte = 0x90
	CmdY  byte = 0xD0
	CmdZ1 byte = 0xB0
	CmdZ2 byte = 0xC0
)

// Precision determines the number of samples averaged by Read.
type Precision int

// Precision levels.
const (
	PrecLow Precision = iota + 1
	PrecMedium
	PrecHigh
	PrecExtreme
)

var (
	// ErrNoTouch indicates Read found no valid samples.
	ErrNoTouch = errors.New("no touch")

	// ErrNotInitialised indicates the Device has not been initialised.
	ErrNotInitialised = errors.New("not initialised")
)

// Device is an ADS7843/XPT2046 touch controller.
type Device struct {
	// Immutable fields
	bus Bus
	cs  Pin
	irq Pin
	// Set by Init
	initialised bool
	orientation Orientation
	cal         Calibration
	// Mutable fields
	samples int
	raw     image.Point
	valid   bool
}

// New creates a Device.
// No I/O is performed until Init.
func New(bus Bus, cs, irq Pin) *Device {
	return &Device{
		bus: bus,
		cs:  cs,
		irq: irq,
	}
}

// Init prepares the Device for reading in the given display orientation.
//
// Init deselects the controller, places the interrupt pin in output mode,
// and initialises the bus if it requires it.  The Device state is left
// unchanged if the calibration is invalid or the bus fails to initialise.
func (d *Device) Init(o Orientation, cal Calibration) error {
	if err := cal.Validate(); err != nil {
		return err
	}
	d.cs.Write(High)
	d.cs.SetMode(Output)
	d.irq.SetMode(Output)
	if b, ok := d.bus.(beginner); ok {
		if err := b.Begin(); err != nil {
			return err
		}
	}
	d.initialised = true
	d.orientation = o
	d.cal = cal
	d.samples = 10
	d.valid = false
	return nil
}

// Close returns the chip select and interrupt pins to input mode.
// The Device must be initialised again before further use.
// The bus is not closed, as it may be shared with other devices.
func (d *Device) Close() {
	d.cs.SetMode(Input)
	d.irq.SetMode(Input)
	d.initialised = false
	d.valid = false
}

// Orientation returns the display orientation set by Init.
func (d *Device) Orientation() Orientation {
	return d.orientation
}

// Calibration returns the calibration set by Init.
func (d *Device) Calibration() Calibration {
	return d.cal
}

// SetPrecision sets the number of samples averaged by Read.
// Unrecognised levels are treated as PrecMedium.
func (d *Device) SetPrecision(p Precision) {
	switch p {
	case PrecLow:
		d.samples = 1
	case PrecHigh:
		d.samples = 25
	case PrecExtreme:
		d.samples = 100
	default:
		d.samples = 10
	}
}

// Samples returns the number of samples averaged by Read.
func (d *Device) Samples() int {
	return d.samples
}

// DataAvailable returns true if the controller is signalling a touch.
//
// The interrupt pin is switched to input to sample it, and then returned to
// output mode.
func (d *Device) DataAvailable() bool {
	d.irq.SetMode(Input)
	l := d.irq.Read()
	d.irq.SetMode(Output)
	return l == Low
}

// ReadRaw performs a single conversion and returns the 12 bit result.
func (d *Device) ReadRaw(cmd byte) (uint16, error) {
	d.cs.Write(Low)
	defer d.cs.Write(High)
	if _, err := d.bus.Transfer(cmd); err != nil {
		return 0, err
	}
	hi, err := d.bus.Transfer(0)
	if err != nil {
		return 0, err
	}
	lo, err := d.bus.Transfer(0)
	if err != nil {
		return 0, err
	}
	// result is MSB first, followed by 3 bits of padding
	return (uint16(hi)<<8 | uint16(lo)) >> 3, nil
}

// Read averages a set of samples and returns the resulting raw point.
//
// Samples with a zero, or above the calibrated range, in either axis are
// discarded.  If no samples remain then ErrNoTouch is returned and the
// Device is left without a valid reading.
func (d *Device) Read() (image.Point, error) {
	if !d.initialised {
		return image.Point{}, ErrNotInitialised
	}
	d.valid = false
	xMax := d.cal.xMax()
	yMax := d.cal.yMax()
	var tx, ty, n int
	for i := 0; i < d.samples; i++ {
		x, err := d.ReadRaw(CmdX)
		if err != nil {
			return image.Point{}, err
		}
		y, err := d.ReadRaw(CmdY)
		if err != nil {
			return image.Point{}, err
		}
		if x == 0 || y == 0 || int(x) > xMax || int(y) > yMax {
			continue
		}
		// the controller X axis is the display Y axis
		ty += int(x)
		tx += int(y)
		n++
	}
	if n == 0 {
		return image.Point{}, ErrNoTouch
	}
	if d.orientation == d.cal.Orientation {
		d.raw = image.Point{X: tx / n, Y: ty / n}
	} else {
		d.raw = image.Point{X: ty / n, Y: tx / n}
	}
	d.valid = true
	return d.raw, nil
}

// CalibrateRead takes a single unfiltered sample and returns the raw point.
//
// This is intended for calibration tools which need the unmapped readings.
func (d *Device) CalibrateRead() (image.Point, error) {
	if !d.initialised {
		return image.Point{}, ErrNotInitialised
	}
	d.valid = false
	x, err := d.ReadRaw(CmdX)
	if err != nil {
		return image.Point{}, err
	}
	y, err := d.ReadRaw(CmdY)
	if err != nil {
		return image.Point{}, err
	}
	d.raw = image.Point{X: int(y), Y: int(x)}
	d.valid = true
	return d.raw, nil
}

// Pressure returns an estimate of the touch pressure.
// Larger values indicate firmer touches, and 0 no touch.
func (d *Device) Pressure() (int, error) {
	if !d.initialised {
		return 0, ErrNotInitialised
	}
	z1, err := d.ReadRaw(CmdZ1)
	if err != nil {
		return 0, err
	}
	z2, err := d.ReadRaw(CmdZ2)
	if err != nil {
		return 0, err
	}
	z := int(z1) + 4095 - int(z2)
	if z < 0 {
		z = 0
	}
	return z, nil
}

// Raw returns the raw point from the last read.
// Returns false if there is no valid reading.
func (d *Device) Raw() (image.Point, bool) {
	return d.raw, d.valid
}

// X returns the pixel column of the last read.
// Returns false if there is no valid reading.
func (d *Device) X() (int, bool) {
	if !d.valid {
		return 0, false
	}
	return d.cal.mapX(d.raw.X, d.orientation), true
}

// Y returns the pixel row of the last read.
// Returns false if there is no valid reading.
func (d *Device) Y() (int, bool) {
	if !d.valid {
		return 0, false
	}
	return d.cal.mapY(d.raw.Y, d.orientation), true
}

// Point returns the pixel coordinates of the last read.
// Returns false if there is no valid reading.
func (d *Device) Point() (image.Point, bool) {
	if !d.valid {
		return image.Point{}, false
	}
	return image.Point{
		X: d.cal.mapX(d.raw.X, d.orientation),
		Y: d.cal.mapY(d.raw.Y, d.orientation),
	}, true
}

// ReadTouchPoint reads the touch position in pixels.
// Z is 1 while touched, and the Point is zero otherwise.
//
// This satisfies the TinyGo touch.Pointer interface.
func (d *Device) ReadTouchPoint() touch.Point {
	if _, err := d.Read(); err != nil {
		return touch.Point{}
	}
	p, _ := d.Point()
	return touch.Point{X: p.X, Y: p.Y, Z: 1}
}

var _ touch.Pointer = (*Device)(nil)
