// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/utouch/packed"
)

func TestLoadConfig(t *testing.T) {
	cfg := loadConfig([]string{"--touches", "3"})
	require.NotNil(t, cfg)
	assert.Equal(t, 3, cfg.MustGet("touches").Int())
	assert.Equal(t, 500*time.Nanosecond, cfg.MustGet("tclk").Duration())
	c, err := packed.Parse(
		cfg.MustGet("calx").String(),
		cfg.MustGet("caly").String(),
		cfg.MustGet("cals").String())
	require.Nil(t, err)
	assert.Equal(t, packed.Default, c)

	// errors panic rather than return
	assert.Panics(t, func() { cfg.Get("nosuchkey") })
	assert.Panics(t, func() { cfg.MustGet("calx").Int() })
}
