// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bridge

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/serfreeman1337/go-ch347"
	"github.com/sstallion/go-hid"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const (
	ch347VendorID  = 0x1a86
	ch347ProductID = 0x55dc
	// Interface 0 is the UART, interface 1 is SPI+I2C+GPIO.
	ch347Interface = 1
	ch347Product   = "HID To UART+SPI+I2C"

	// ch347SensorAddr is the only address the adapter is wired to route:
	// the AHT20.
	ch347SensorAddr = 0x38
)

// CH347 is a WCH CH347 USB to I²C adapter in HID mode.
type CH347 struct {
	mu  sync.Mutex
	dev *hid.Device
	io  *ch347.IO
}

// OpenCH347 finds the first CH347 adapter and configures its I²C master
// for 100kHz.
//
// On Linux the hidraw node must be accessible to the user.
func OpenCH347() (*CH347, error) {
	path, err := ch347Path()
	if err != nil {
		return nil, err
	}
	dev, err := hid.OpenPath(path)
	if err != nil {
		return nil, fmt.Errorf("bridge: ch347: %w", err)
	}
	c := &CH347{dev: dev, io: &ch347.IO{Dev: &hidTimeout{dev}}}
	if err := c.io.SetI2C(ch347.I2CMode1); err != nil {
		_ = dev.Close()
		return nil, fmt.Errorf("bridge: ch347: %w", err)
	}
	return c, nil
}

func (c *CH347) String() string {
	return "ch347"
}

// Tx implements i2c.Bus. Write and read are chained with a repeated start.
func (c *CH347) Tx(addr uint16, w, r []byte) error {
	if addr != ch347SensorAddr {
		return fmt.Errorf("bridge: ch347: address 0x%02x is not routed", addr)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.io == nil {
		return errors.New("bridge: ch347: closed")
	}
	if err := c.io.I2C(ch347SensorAddr, w, r); err != nil {
		return ch347Error(err)
	}
	return nil
}

// ch347Error wraps an adapter error. A reply that did not arrive in time
// also wraps os.ErrDeadlineExceeded.
func ch347Error(err error) error {
	if errors.Is(err, hid.ErrTimeout) {
		return fmt.Errorf("bridge: ch347: %w: %w", os.ErrDeadlineExceeded, err)
	}
	return fmt.Errorf("bridge: ch347: %w", err)
}

// SetSpeed implements i2c.Bus. The adapter supports 20kHz, 100kHz, 400kHz
// and 750kHz; f is rounded down to one of them.
func (c *CH347) SetSpeed(f physic.Frequency) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.io == nil {
		return errors.New("bridge: ch347: closed")
	}
	var err error
	switch {
	case f < 20*physic.KiloHertz:
		return fmt.Errorf("bridge: ch347: %s is below the slowest mode", f)
	case f < 100*physic.KiloHertz:
		err = c.io.SetI2C(ch347.I2CMode0)
	case f < 400*physic.KiloHertz:
		err = c.io.SetI2C(ch347.I2CMode1)
	case f < 750*physic.KiloHertz:
		err = c.io.SetI2C(ch347.I2CMode2)
	default:
		err = c.io.SetI2C(ch347.I2CMode3)
	}
	if err != nil {
		return fmt.Errorf("bridge: ch347: %w", err)
	}
	return nil
}

// Close releases the HID device.
func (c *CH347) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dev == nil {
		return nil
	}
	err := c.dev.Close()
	c.dev, c.io = nil, nil
	return err
}

func ch347Path() (string, error) {
	var path string
	err := hid.Enumerate(ch347VendorID, ch347ProductID, func(info *hid.DeviceInfo) error {
		if path == "" && info.ProductStr == ch347Product && info.InterfaceNbr == ch347Interface {
			path = info.Path
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("bridge: ch347: %w", err)
	}
	if path == "" {
		return "", errors.New("bridge: ch347 not found")
	}
	return path, nil
}

// hidTimeout bounds reads so a missing reply does not block forever.
type hidTimeout struct {
	*hid.Device
}

func (d *hidTimeout) Read(p []byte) (n int, err error) {
	for {
		n, err = d.Device.ReadWithTimeout(p, time.Second)
		// hidapi reports EINTR as a plain error string.
		if err == nil || err.Error() != "Interrupted system call" {
			return
		}
	}
}

var _ i2c.Bus = &CH347{}
