// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/utouch"
	"golang.org/x/sys/unix"
)

func init() {
	monCmd.Flags().DurationVarP(&monOpts.Interval, "interval", "i", 20*time.Millisecond, "period between polls of the interrupt line")
	monCmd.Flags().UintVarP(&monOpts.NumEvents, "num-events", "n", 0, "exit after n touches")
	monCmd.Flags().BoolVarP(&monOpts.Quiet, "quiet", "q", false, "don't display event details")
	monCmd.Flags().BoolVarP(&monOpts.Raw, "raw", "r", false, "also display the raw controller coordinates")
	monCmd.SetHelpTemplate(monCmd.HelpTemplate() + extendedMonHelp)
	rootCmd.AddCommand(monCmd)
}

var extendedMonHelp = `
A touch event is reported for each successful read while the panel is touched.
`

var (
	monCmd = &cobra.Command{
		Use:   "mon",
		Short: "Monitor the panel for touches",
		Long:  `Poll the controller and print touch positions to standard output.`,
		Args:  cobra.NoArgs,
		RunE:  mon,
	}
	monOpts = struct {
		Interval  time.Duration
		NumEvents uint
		Quiet     bool
		Raw       bool
	}{}
)

type event struct {
	Time  time.Time
	Pixel image.Point
	Raw   image.Point
}

func mon(cmd *cobra.Command, args []string) error {
	if monOpts.Interval <= 0 {
		return errors.New("interval must be positive")
	}
	d, closer, err := openDevice(loadConfig())
	if err != nil {
		return err
	}
	defer closer()
	sigdone := make(chan os.Signal, 1)
	signal.Notify(sigdone, os.Interrupt, unix.SIGTERM)
	defer signal.Stop(sigdone)
	ticker := time.NewTicker(monOpts.Interval)
	defer ticker.Stop()
	count := uint(0)
	for {
		select {
		case <-ticker.C:
			evt, ok := poll(cmd, d)
			if !ok {
				continue
			}
			if !monOpts.Quiet {
				printEvent(evt)
			}
			count++
			if monOpts.NumEvents > 0 && count >= monOpts.NumEvents {
				return nil
			}
		case <-sigdone:
			return nil
		}
	}
}

func poll(cmd *cobra.Command, d *utouch.Device) (evt event, ok bool) {
	if !d.DataAvailable() {
		return
	}
	raw, err := d.Read()
	if err != nil {
		if !errors.Is(err, utouch.ErrNoTouch) {
			logErr(cmd, err)
		}
		return
	}
	p, _ := d.Point()
	return event{Time: time.Now(), Pixel: p, Raw: raw}, true
}

func printEvent(evt event) {
	fmt.Printf("touch: x=%-4d y=%-4d", evt.Pixel.X, evt.Pixel.Y)
	if monOpts.Raw {
		fmt.Printf(" raw.x=%-5d raw.y=%-5d", evt.Raw.X, evt.Raw.Y)
	}
	fmt.Printf(" %s\n", evt.Time.Format(time.RFC3339Nano))
}
