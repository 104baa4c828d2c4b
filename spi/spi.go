// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package spi provides a bit bashed SPI bus for touch controllers connected
// via GPIO pins.
package spi

import (
	"sync"
	"time"

	"github.com/warthog618/utouch"
	"tinygo.org/x/drivers"
)

// SPI represents an SPI bus driven by 3 GPIO lines in mode 0, MSB first.
// Chip select is left to the device driver, as the touch controller holds it
// across several transfers.
// This is the basis for bit bashed SPI interfaces using GPIO pins.
// It is not related to the SPI device drivers provided by Linux.
type SPI struct {
	Mu sync.Mutex
	// time between clock edges (i.e. half the cycle time)
	Tclk time.Duration
	Sclk utouch.Pin
	Mosi utouch.Pin
	Miso utouch.Pin
}

var _ drivers.SPI = (*SPI)(nil)

// New creates a SPI.
func New(tclk time.Duration, sclk, mosi, miso utouch.Pin) *SPI {
	spi := &SPI{
		Tclk: tclk,
		Sclk: sclk,
		Mosi: mosi,
		Miso: miso,
	}
	// hold the clock idle until needed...
	spi.Sclk.Write(utouch.Low)
	spi.Sclk.SetMode(utouch.Output)
	return spi
}

// Begin sets the pins to their active modes.
func (spi *SPI) Begin() error {
	spi.Mu.Lock()
	spi.Sclk.Write(utouch.Low)
	spi.Sclk.SetMode(utouch.Output)
	spi.Mosi.Write(utouch.Low)
	spi.Mosi.SetMode(utouch.Output)
	spi.Miso.SetMode(utouch.Input)
	spi.Mu.Unlock()
	return nil
}

// Close disables the output pins used to drive the SPI device.
func (spi *SPI) Close() {
	spi.Mu.Lock()
	spi.Sclk.SetMode(utouch.Input)
	spi.Mosi.SetMode(utouch.Input)
	spi.Mu.Unlock()
}

// Transfer writes a byte to Mosi while reading a byte from Miso.
func (spi *SPI) Transfer(b byte) (byte, error) {
	spi.Mu.Lock()
	r := spi.transfer(b)
	spi.Mu.Unlock()
	return r, nil
}

// Tx writes w while reading into r.
// If the two differ in length the shorter is padded, with zeros for w.
func (spi *SPI) Tx(w, r []byte) error {
	n := len(w)
	if len(r) > n {
		n = len(r)
	}
	spi.Mu.Lock()
	for i := 0; i < n; i++ {
		var b byte
		if i < len(w) {
			b = w[i]
		}
		b = spi.transfer(b)
		if i < len(r) {
			r[i] = b
		}
	}
	spi.Mu.Unlock()
	return nil
}

// Assumes caller already holds the Mu lock.
func (spi *SPI) transfer(w byte) (r byte) {
	for i := 7; i >= 0; i-- {
		r = r << 1
		if spi.clock(w>>uint(i)&0x01 == 0x01) {
			r = r | 0x01
		}
	}
	return
}

// clock clocks a data bit out on Mosi while clocking a data bit in on Miso.
// Assumes clock starts low and ends with the falling edge of the cycle.
func (spi *SPI) clock(l utouch.Level) utouch.Level {
	spi.Mosi.Write(l)
	time.Sleep(spi.Tclk)
	spi.Sclk.Write(utouch.High) // SPI device reads on the rising edge
	b := spi.Miso.Read()
	time.Sleep(spi.Tclk)
	spi.Sclk.Write(utouch.Low) // and writes on the falling edge
	return b
}
