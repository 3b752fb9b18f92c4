// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux

package bridge

import (
	"errors"

	"periph.io/x/conn/v3/physic"
)

// I2CDev is a Linux i2c-dev bus. It is unavailable on this platform.
type I2CDev struct{}

// OpenI2CDev always fails on this platform.
func OpenI2CDev(bus int) (*I2CDev, error) {
	return nil, errors.New("bridge: i2c-dev is only available on linux")
}

func (b *I2CDev) String() string { return "i2c-dev" }

// Tx implements i2c.Bus.
func (b *I2CDev) Tx(addr uint16, w, r []byte) error {
	return errors.New("bridge: i2c-dev is only available on linux")
}

// SetSpeed implements i2c.Bus.
func (b *I2CDev) SetSpeed(f physic.Frequency) error {
	return errors.New("bridge: i2c-dev is only available on linux")
}

// Close implements io.Closer.
func (b *I2CDev) Close() error { return nil }
