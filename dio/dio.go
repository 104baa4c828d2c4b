// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux

// Package dio connects touch controllers to the Raspberry Pi GPIO pins,
// driven directly via /dev/gpiomem.
//
// The gpio must be opened with gpio.Open before any pins are created.
package dio

import (
	"time"

	"github.com/warthog618/gpio"
	"github.com/warthog618/utouch"
	"github.com/warthog618/utouch/spi"
)

// Pin adapts a gpio.Pin to a utouch.Pin.
type Pin struct {
	pin *gpio.Pin
}

var _ utouch.Pin = (*Pin)(nil)

// NewPin creates a Pin for the BCM numbered GPIO pin.
func NewPin(offset int) *Pin {
	return &Pin{pin: gpio.NewPin(offset)}
}

// SetMode sets the pin to input or output.
func (p *Pin) SetMode(m utouch.Mode) {
	p.pin.SetMode(gpio.Mode(m))
}

func (p *Pin) Read() utouch.Level {
	return utouch.Level(p.pin.Read())
}

// Write sets the output latch.  The pin only drives the level while in
// output mode.
func (p *Pin) Write(l utouch.Level) {
	p.pin.Write(gpio.Level(l))
}

// NewSPI creates a bit bashed SPI bus using BCM numbered GPIO pins.
func NewSPI(tclk time.Duration, sclk, mosi, miso int) *spi.SPI {
	return spi.New(tclk, NewPin(sclk), NewPin(mosi), NewPin(miso))
}
