// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "undefined"

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootOpts.ConfigFile, "config", "c", "", "board configuration file (JSON)")
	rootCmd.PersistentFlags().StringVarP(&rootOpts.Backend, "backend", "b", "", "bus backend [dio|spidev]")
	rootCmd.SetHelpTemplate(rootCmd.HelpTemplate() + extendedRootHelp)
}

var rootCmd = &cobra.Command{
	Use:   "utouch",
	Short: "utouch is a utility to read XPT2046 touch controllers",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	Version: version,
}

var rootOpts = struct {
	ConfigFile string
	Backend    string
}{}

var extendedRootHelp = `
Configuration:
  The board is configured by a JSON file, utouch.json by default, and by
  environment variables prefixed UTOUCH_, e.g. UTOUCH_CS=J8P24.

  backend      dio (bit bashed via /dev/gpiomem) or spidev (periph.io)
  sclk mosi miso cs irq tclk
               dio pins (BCM number or J8pXX) and half clock period
  port hz spics spiirq
               spidev port, clock frequency, and chip select and
               interrupt pin names
  calx caly cals
               packed calibration constants
  orientation  portrait or landscape
  precision    low, medium, high or extreme
`

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func logErr(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "utouch %s: %s\n", cmd.Name(), err)
}
