// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package utouch

import (
	"errors"
	"fmt"
)

// Orientation is the orientation of the display.
type Orientation int

// Values match the orientation bit in packed calibration constants.
const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	}
	return fmt.Sprintf("orientation(%d)", int(o))
}

// Calibration maps the raw controller coordinates onto the display.
//
// The extents are the raw readings at the edges of the active area, and may
// be in either order.  Width and Height are the display size in pixels.
// Orientation is the orientation the calibration was captured in.
type Calibration struct {
	XLeft       int
	XRight      int
	YTop        int
	YBottom     int
	Width       int
	Height      int
	Orientation Orientation
}

var (
	// ErrInvalidCalibration indicates a calibration that cannot be used to
	// map raw readings.
	ErrInvalidCalibration = errors.New("invalid calibration")
)

// Validate checks that the calibration describes a usable mapping.
func (c Calibration) Validate() error {
	switch {
	case c.XLeft == c.XRight:
		return fmt.Errorf("%w: zero width x extent (%d)", ErrInvalidCalibration, c.XLeft)
	case c.YTop == c.YBottom:
		return fmt.Errorf("%w: zero width y extent (%d)", ErrInvalidCalibration, c.YTop)
	case c.Width <= 0:
		return fmt.Errorf("%w: display width %d", ErrInvalidCalibration, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: display height %d", ErrInvalidCalibration, c.Height)
	}
	return nil
}

// xMax and yMax are the largest raw values accepted by Read.
func (c Calibration) xMax() int {
	return max(c.XLeft, c.XRight)
}

func (c Calibration) yMax() int {
	return max(c.YTop, c.YBottom)
}

// lin linearly maps v in [lo,hi] onto [0,size].
// Integer division truncates, as the controller hosts have no FPU.
func lin(v, lo, hi, size int) int {
	return (v - lo) * size / (hi - lo)
}

func clamp(v, size int) int {
	if v < 0 {
		return 0
	}
	if v > size {
		return size
	}
	return v
}

// mapX maps the raw X reading to a pixel column for the given orientation.
func (c Calibration) mapX(raw int, o Orientation) int {
	switch {
	case o == c.Orientation:
		return clamp(lin(raw, c.XLeft, c.XRight, c.Width), c.Width)
	case c.Orientation == Portrait:
		return clamp(lin(raw, c.YTop, c.YBottom, -c.Height)+c.Height, c.Height)
	default:
		return clamp(lin(raw, c.YTop, c.YBottom, c.Height), c.Height)
	}
}

// mapY maps the raw Y reading to a pixel row for the given orientation.
func (c Calibration) mapY(raw int, o Orientation) int {
	switch {
	case o == c.Orientation:
		return clamp(lin(raw, c.YTop, c.YBottom, c.Height), c.Height)
	case c.Orientation == Portrait:
		return clamp(lin(raw, c.XLeft, c.XRight, c.Width), c.Width)
	default:
		return clamp(lin(raw, c.XLeft, c.XRight, -c.Width)+c.Width, c.Width)
	}
}
