// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rawCmd)
}

var rawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Read a single unfiltered sample",
	Long: `Read a single raw sample from the controller, without averaging or
range checks, for use by calibration tools.`,
	Args: cobra.NoArgs,
	RunE: raw,
}

func raw(cmd *cobra.Command, args []string) error {
	d, closer, err := openDevice(loadConfig())
	if err != nil {
		return err
	}
	defer closer()
	p, err := d.CalibrateRead()
	if err != nil {
		return err
	}
	fmt.Printf("raw.x=%d raw.y=%d\n", p.X, p.Y)
	return nil
}
