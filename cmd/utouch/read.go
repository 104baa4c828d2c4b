// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warthog618/utouch"
)

func init() {
	readCmd.Flags().StringVarP(&readOpts.Precision, "precision", "p", "", "samples to average [low|medium|high|extreme]")
	readCmd.Flags().BoolVarP(&readOpts.Raw, "raw", "r", false, "also display the raw controller coordinates")
	readCmd.Flags().BoolVarP(&readOpts.Pressure, "pressure", "z", false, "also display the touch pressure")
	readCmd.SetHelpTemplate(readCmd.HelpTemplate() + extendedReadHelp)
	rootCmd.AddCommand(readCmd)
}

var (
	readCmd = &cobra.Command{
		Use:     "read",
		Short:   "Read the touch position",
		Example: "  utouch read -p high -r",
		Args:    cobra.NoArgs,
		RunE:    read,
	}
	readOpts = struct {
		Precision string
		Raw       bool
		Pressure  bool
	}{}
)

var extendedReadHelp = `
Precision:
  low, medium, high and extreme average 1, 10, 25 and 100 samples.

The read fails with "no touch" if the panel is not being touched.
`

func read(cmd *cobra.Command, args []string) error {
	var prec utouch.Precision
	if readOpts.Precision != "" {
		var err error
		prec, err = parsePrecision(readOpts.Precision)
		if err != nil {
			return err
		}
	}
	d, closer, err := openDevice(loadConfig())
	if err != nil {
		return err
	}
	defer closer()
	if prec != 0 {
		d.SetPrecision(prec)
	}
	raw, err := d.Read()
	if err != nil {
		return err
	}
	p, _ := d.Point()
	fmt.Printf("x=%d y=%d", p.X, p.Y)
	if readOpts.Raw {
		fmt.Printf(" raw.x=%d raw.y=%d", raw.X, raw.Y)
	}
	if readOpts.Pressure {
		z, err := d.Pressure()
		if err != nil {
			fmt.Println()
			return err
		}
		fmt.Printf(" z=%d", z)
	}
	fmt.Println()
	return nil
}
