// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package packed converts between the bit packed calibration constants
// produced by calibration tools and utouch.Calibration.
//
// The constants are three 32 bit words:
//
//	X: XLeft<<14 | XRight      (14 bits each)
//	Y: YTop<<14 | YBottom      (14 bits each)
//	S: O<<31 | Width<<12 | Height  (12 bits each, O is the orientation)
package packed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/warthog618/utouch"
)

// Constants are the packed calibration words.
type Constants struct {
	X uint32
	Y uint32
	S uint32
}

const (
	extentMask = 0x3fff
	extentBits = 14
	sizeMask   = 0x0fff
	sizeBits   = 12
	orientBit  = 31
)

// Default is the calibration for a typical 2.4" 240x320 panel in portrait.
var Default = Constants{
	X: 0x00378F66,
	Y: 0x03C34155,
	S: 0x000EF13F,
}

// Decode unpacks the constants.
// The result is not validated.
func Decode(c Constants) utouch.Calibration {
	return utouch.Calibration{
		XLeft:       int(c.X >> extentBits & extentMask),
		XRight:      int(c.X & extentMask),
		YTop:        int(c.Y >> extentBits & extentMask),
		YBottom:     int(c.Y & extentMask),
		Width:       int(c.S >> sizeBits & sizeMask),
		Height:      int(c.S & sizeMask),
		Orientation: utouch.Orientation(c.S >> orientBit),
	}
}

// Encode packs the calibration.
// Fields are truncated to fit their width.
func Encode(cal utouch.Calibration) Constants {
	return Constants{
		X: uint32(cal.XLeft)&extentMask<<extentBits | uint32(cal.XRight)&extentMask,
		Y: uint32(cal.YTop)&extentMask<<extentBits | uint32(cal.YBottom)&extentMask,
		S: uint32(cal.Orientation)&1<<orientBit |
			uint32(cal.Width)&sizeMask<<sizeBits |
			uint32(cal.Height)&sizeMask,
	}
}

// Parse parses the constants from integer literals, such as "0x00378F66UL"
// as found in calibration headers.
func Parse(x, y, s string) (c Constants, err error) {
	if c.X, err = parseWord(x); err != nil {
		return
	}
	if c.Y, err = parseWord(y); err != nil {
		return
	}
	c.S, err = parseWord(s)
	return
}

func parseWord(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimRight(s, "uUlL"), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("can't parse calibration word '%s'", s)
	}
	return uint32(v), nil
}

// String returns the constants in the form used by calibration headers.
func (c Constants) String() string {
	return fmt.Sprintf("CAL_X 0x%08XUL CAL_Y 0x%08XUL CAL_S 0x%08XUL", c.X, c.Y, c.S)
}
