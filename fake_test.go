// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package utouch_test

import (
	"errors"

	"github.com/warthog618/utouch"
)

// fakePin records the modes and levels applied to it.
type fakePin struct {
	mode   utouch.Mode
	level  utouch.Level
	modes  []utouch.Mode
	writes []utouch.Level
	reads  int
}

func (p *fakePin) SetMode(m utouch.Mode) {
	p.mode = m
	p.modes = append(p.modes, m)
}

func (p *fakePin) Read() utouch.Level {
	p.reads++
	return p.level
}

func (p *fakePin) Write(l utouch.Level) {
	p.level = l
	p.writes = append(p.writes, l)
}

var errNotSelected = errors.New("chip not selected")

// fakeBus plays back scripted conversions for each command.
// Exhausted scripts convert as 0.
type fakeBus struct {
	cs       *fakePin
	samples  map[byte][]uint16
	cmds     []byte
	out      []byte
	err      error
	beginErr error
	begun    int
}

func newFakeBus(cs *fakePin) *fakeBus {
	return &fakeBus{cs: cs, samples: make(map[byte][]uint16)}
}

// script queues x and y conversions as pairs.
func (b *fakeBus) script(xx, yy []uint16) {
	b.samples[utouch.CmdX] = append(b.samples[utouch.CmdX], xx...)
	b.samples[utouch.CmdY] = append(b.samples[utouch.CmdY], yy...)
}

func (b *fakeBus) Begin() error {
	b.begun++
	return b.beginErr
}

func (b *fakeBus) Transfer(v byte) (byte, error) {
	if b.err != nil {
		return 0, b.err
	}
	if b.cs.level != utouch.Low {
		return 0, errNotSelected
	}
	if len(b.out) > 0 {
		r := b.out[0]
		b.out = b.out[1:]
		return r, nil
	}
	b.cmds = append(b.cmds, v)
	var s uint16
	if ss := b.samples[v]; len(ss) > 0 {
		s = ss[0]
		b.samples[v] = ss[1:]
	}
	w := s << 3
	b.out = []byte{byte(w >> 8), byte(w)}
	return 0xff, nil
}

func newDevice() (*utouch.Device, *fakeBus, *fakePin, *fakePin) {
	cs := &fakePin{level: utouch.Low}
	irq := &fakePin{level: utouch.High}
	bus := newFakeBus(cs)
	return utouch.New(bus, cs, irq), bus, cs, irq
}

// testCal has round numbers to simplify the expected mappings.
var testCal = utouch.Calibration{
	XLeft:   100,
	XRight:  1100,
	YTop:    200,
	YBottom: 1200,
	Width:   240,
	Height:  320,
}
