// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/config/pflag"
	"github.com/warthog618/gpio"
	"github.com/warthog618/utouch"
	"github.com/warthog618/utouch/dio"
	"github.com/warthog618/utouch/packed"
)

// This example reports touches on an XPT2046 connected to the RPI by five
// data lines - CS, SCLK, MOSI, MISO and IRQ. The default pin assignments are
// defined in loadConfig, but can be altered via configuration (env, flag or
// config file).
// The calibration defaults to that of a common 2.4" 240x320 panel.
// All pins other than MISO are outputs so do not run this example on a board
// where those pins serve other purposes.
func main() {
	cfg := loadConfig(os.Args[1:])
	err := gpio.Open()
	if err != nil {
		panic(err)
	}
	defer gpio.Close()
	bus := dio.NewSPI(
		cfg.MustGet("tclk").Duration(),
		cfg.MustGet("sclk").Int(),
		cfg.MustGet("mosi").Int(),
		cfg.MustGet("miso").Int())
	defer bus.Close()
	t := utouch.New(
		bus,
		dio.NewPin(cfg.MustGet("cs").Int()),
		dio.NewPin(cfg.MustGet("irq").Int()))
	c, err := packed.Parse(
		cfg.MustGet("calx").String(),
		cfg.MustGet("caly").String(),
		cfg.MustGet("cals").String())
	if err != nil {
		panic(err)
	}
	err = t.Init(utouch.Portrait, packed.Decode(c))
	if err != nil {
		panic(err)
	}
	defer t.Close()
	for n := cfg.MustGet("touches").Int(); n > 0; {
		if !t.DataAvailable() {
			time.Sleep(20 * time.Millisecond)
			continue
		}
		if _, err := t.Read(); err != nil {
			continue
		}
		x, _ := t.X()
		y, _ := t.Y()
		fmt.Printf("x=%d y=%d\n", x, y)
		n--
	}
}

func loadConfig(args []string) *config.Config {
	defaultConfig := map[string]interface{}{
		"tclk":    "500ns",
		"sclk":    gpio.GPIO11,
		"mosi":    gpio.GPIO10,
		"miso":    gpio.GPIO9,
		"cs":      gpio.GPIO8,
		"irq":     gpio.GPIO17,
		"calx":    "0x00378F66",
		"caly":    "0x03C34155",
		"cals":    "0x000EF13F",
		"touches": 10,
	}
	def := dict.New(dict.WithMap(defaultConfig))
	cfg := config.New(
		pflag.New(
			pflag.WithCommandLine(args),
			pflag.WithFlags([]pflag.Flag{{Short: 'c', Name: "config-file"}})),
		env.New(env.WithEnvPrefix("TOUCH_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "touch.json", json.NewDecoder()))
	cfg = cfg.GetConfig("", config.WithMust)
	return cfg
}
