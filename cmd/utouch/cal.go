// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/warthog618/utouch"
	"github.com/warthog618/utouch/packed"
)

func init() {
	rootCmd.AddCommand(calCmd)
}

var calCmd = &cobra.Command{
	Use:   "cal [<calx> <caly> <cals>]",
	Short: "Decode calibration constants",
	Long: `Decode and validate packed calibration constants.
If no constants are provided then those from the configuration are used.`,
	Example: "  utouch cal 0x00378F66 0x03C34155 0x000EF13F",
	Args:    cobra.RangeArgs(0, 3),
	PreRunE: precal,
	RunE:    cal,
}

func precal(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return cobra.ExactArgs(3)(cmd, args)
	}
	return nil
}

func cal(cmd *cobra.Command, args []string) error {
	var c utouch.Calibration
	if len(args) == 3 {
		pc, err := packed.Parse(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		c = packed.Decode(pc)
	} else {
		var err error
		c, err = loadCalibration(loadConfig())
		if err != nil {
			return err
		}
	}
	printCalibration(os.Stdout, c)
	return c.Validate()
}

func printCalibration(w io.Writer, c utouch.Calibration) {
	fmt.Fprintf(w, "x: left=%d right=%d\n", c.XLeft, c.XRight)
	fmt.Fprintf(w, "y: top=%d bottom=%d\n", c.YTop, c.YBottom)
	fmt.Fprintf(w, "display: %dx%d %s\n", c.Width, c.Height, c.Orientation)
	fmt.Fprintf(w, "packed: %s\n", packed.Encode(c))
}
