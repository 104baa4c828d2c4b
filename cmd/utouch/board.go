// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/gpio"
	"github.com/warthog618/utouch"
	"github.com/warthog618/utouch/dio"
	"github.com/warthog618/utouch/packed"
	"github.com/warthog618/utouch/spidev"
	"periph.io/x/conn/v3/physic"
)

func defaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"backend":     "dio",
		"tclk":        "500ns",
		"sclk":        gpio.GPIO11,
		"mosi":        gpio.GPIO10,
		"miso":        gpio.GPIO9,
		"cs":          gpio.GPIO8,
		"irq":         gpio.GPIO17,
		"port":        "",
		"hz":          int(spidev.DefaultFrequency / physic.Hertz),
		"spics":       "GPIO25",
		"spiirq":      "GPIO17",
		"calx":        fmt.Sprintf("0x%08X", packed.Default.X),
		"caly":        fmt.Sprintf("0x%08X", packed.Default.Y),
		"cals":        fmt.Sprintf("0x%08X", packed.Default.S),
		"orientation": "portrait",
		"precision":   "medium",
	}
}

func loadConfig() *config.Config {
	dc := defaultConfig()
	if rootOpts.ConfigFile != "" {
		dc["config.file"] = rootOpts.ConfigFile
	}
	if rootOpts.Backend != "" {
		dc["backend"] = rootOpts.Backend
	}
	def := dict.New(dict.WithMap(dc))
	cfg := config.New(
		env.New(env.WithEnvPrefix("UTOUCH_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "utouch.json", json.NewDecoder()))
	return cfg
}

// openDevice creates and initialises the Device described by the config.
// The returned func returns the device pins to inputs and releases the bus.
func openDevice(cfg *config.Config) (*utouch.Device, func(), error) {
	cal, err := loadCalibration(cfg)
	if err != nil {
		return nil, nil, err
	}
	orient, err := parseOrientation(cfg.MustGet("orientation").String())
	if err != nil {
		return nil, nil, err
	}
	prec, err := parsePrecision(cfg.MustGet("precision").String())
	if err != nil {
		return nil, nil, err
	}
	var d *utouch.Device
	var closer func()
	switch backend := cfg.MustGet("backend").String(); backend {
	case "dio":
		d, closer, err = openDIO(cfg)
	case "spidev":
		d, closer, err = openSPIDev(cfg)
	default:
		err = fmt.Errorf("unknown backend '%s'", backend)
	}
	if err != nil {
		return nil, nil, err
	}
	closer = deviceCloser(d, closer)
	if err = d.Init(orient, cal); err != nil {
		closer()
		return nil, nil, err
	}
	d.SetPrecision(prec)
	return d, closer, nil
}

// deviceCloser returns a closer that releases the device pins before
// releasing the bus.
func deviceCloser(d *utouch.Device, release func()) func() {
	return func() {
		d.Close()
		release()
	}
}

func openDIO(cfg *config.Config) (*utouch.Device, func(), error) {
	names := []string{"sclk", "mosi", "miso", "cs", "irq"}
	oo := make([]int, len(names))
	for i, name := range names {
		o, err := parseOffset(cfg.MustGet(name).String())
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		oo[i] = o
	}
	if err := gpio.Open(); err != nil {
		return nil, nil, err
	}
	bus := dio.NewSPI(cfg.MustGet("tclk").Duration(), oo[0], oo[1], oo[2])
	closer := func() {
		bus.Close()
		gpio.Close()
	}
	return utouch.New(bus, dio.NewPin(oo[3]), dio.NewPin(oo[4])), closer, nil
}

func openSPIDev(cfg *config.Config) (*utouch.Device, func(), error) {
	f := physic.Frequency(cfg.MustGet("hz").Int()) * physic.Hertz
	bus, err := spidev.Open(cfg.MustGet("port").String(), f)
	if err != nil {
		return nil, nil, err
	}
	cs, err := spidev.NewPin(cfg.MustGet("spics").String())
	if err != nil {
		bus.Close()
		return nil, nil, err
	}
	irq, err := spidev.NewPin(cfg.MustGet("spiirq").String())
	if err != nil {
		bus.Close()
		return nil, nil, err
	}
	closer := func() {
		bus.Close()
	}
	return utouch.New(bus, cs, irq), closer, nil
}

func loadCalibration(cfg *config.Config) (utouch.Calibration, error) {
	c, err := packed.Parse(
		cfg.MustGet("calx").String(),
		cfg.MustGet("caly").String(),
		cfg.MustGet("cals").String())
	if err != nil {
		return utouch.Calibration{}, err
	}
	return packed.Decode(c), nil
}

func parseOrientation(arg string) (utouch.Orientation, error) {
	switch strings.ToLower(arg) {
	case "portrait", "p", "0":
		return utouch.Portrait, nil
	case "landscape", "l", "1":
		return utouch.Landscape, nil
	}
	return 0, fmt.Errorf("can't parse orientation '%s'", arg)
}

var precisions = map[string]utouch.Precision{
	"low":     utouch.PrecLow,
	"medium":  utouch.PrecMedium,
	"high":    utouch.PrecHigh,
	"extreme": utouch.PrecExtreme,
}

func parsePrecision(arg string) (utouch.Precision, error) {
	if p, ok := precisions[strings.ToLower(arg)]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("can't parse precision '%s'", arg)
}

var pinNames = map[string]int{
	"J8P3":  gpio.J8p3,
	"J8P03": gpio.J8p3,
	"J8P5":  gpio.J8p5,
	"J8P05": gpio.J8p5,
	"J8P7":  gpio.J8p7,
	"J8P07": gpio.J8p7,
	"J8P8":  gpio.J8p8,
	"J8P08": gpio.J8p8,
	"J8P10": gpio.J8p10,
	"J8P11": gpio.J8p11,
	"J8P12": gpio.J8p12,
	"J8P13": gpio.J8p13,
	"J8P15": gpio.J8p15,
	"J8P16": gpio.J8p16,
	"J8P18": gpio.J8p18,
	"J8P19": gpio.J8p19,
	"J8P21": gpio.J8p21,
	"J8P22": gpio.J8p22,
	"J8P23": gpio.J8p23,
	"J8P24": gpio.J8p24,
	"J8P26": gpio.J8p26,
	"J8P27": gpio.J8p27,
	"J8P28": gpio.J8p28,
	"J8P29": gpio.J8p29,
	"J8P31": gpio.J8p31,
	"J8P32": gpio.J8p32,
	"J8P33": gpio.J8p33,
	"J8P35": gpio.J8p35,
	"J8P36": gpio.J8p36,
	"J8P37": gpio.J8p37,
	"J8P38": gpio.J8p38,
	"J8P40": gpio.J8p40,
}

func parseOffset(arg string) (int, error) {
	if o, ok := pinNames[strings.ToUpper(arg)]; ok {
		return o, nil
	}
	o, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("can't parse pin '%s'", arg)
	}
	if o >= gpio.MaxGPIOPin {
		return 0, fmt.Errorf("unknown pin '%d'", o)
	}
	return int(o), nil
}
