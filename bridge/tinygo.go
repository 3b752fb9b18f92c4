// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bridge

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// TinyGo adapts a TinyGo I²C bus.
type TinyGo struct {
	bus  drivers.I2C
	name string
}

// NewTinyGo returns a bus forwarding transactions to b. The bus must already
// be configured; name is only used by String.
//
// TinyGo's machine package reports bus timeouts as plain errors whose text
// contains "timeout". Tx wraps those in os.ErrDeadlineExceeded. Other
// drivers.I2C implementations should wrap os.ErrDeadlineExceeded themselves
// or return an error with a Timeout() bool method.
func NewTinyGo(b drivers.I2C, name string) *TinyGo {
	if name == "" {
		name = "tinygo"
	}
	return &TinyGo{bus: b, name: name}
}

func (t *TinyGo) String() string {
	return t.name
}

// Tx implements i2c.Bus.
func (t *TinyGo) Tx(addr uint16, w, r []byte) error {
	if err := t.bus.Tx(addr, w, r); err != nil {
		if strings.Contains(err.Error(), "timeout") && !errors.Is(err, os.ErrDeadlineExceeded) {
			return fmt.Errorf("bridge: %s: %w: %w", t.name, os.ErrDeadlineExceeded, err)
		}
		return fmt.Errorf("bridge: %s: %w", t.name, err)
	}
	return nil
}

// SetSpeed implements i2c.Bus. The clock of a TinyGo bus is set when it is
// configured and cannot be changed afterward.
func (t *TinyGo) SetSpeed(f physic.Frequency) error {
	return errors.New("bridge: tinygo bus speed is set by machine.I2CConfig")
}

var _ i2c.Bus = &TinyGo{}
