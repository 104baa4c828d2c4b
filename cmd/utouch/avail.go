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
	availCmd.Flags().BoolVarP(&availOpts.Short, "short", "s", false, "print 1 if a touch is pending, else 0")
	rootCmd.AddCommand(availCmd)
}

var (
	availCmd = &cobra.Command{
		Use:   "avail",
		Short: "Report if a touch is pending",
		Long:  `Sample the controller interrupt line, which is low while the panel is touched.`,
		Args:  cobra.NoArgs,
		RunE:  avail,
	}
	availOpts = struct {
		Short bool
	}{}
)

func avail(cmd *cobra.Command, args []string) error {
	d, closer, err := openDevice(loadConfig())
	if err != nil {
		return err
	}
	defer closer()
	a := d.DataAvailable()
	if availOpts.Short {
		fmt.Println(bool2Int(a))
		return nil
	}
	if a {
		fmt.Println("touch pending")
	} else {
		fmt.Println("no touch")
	}
	return nil
}

func bool2Int(b bool) int {
	if b {
		return 1
	}
	return 0
}
