// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package bridge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/d2r2/go-i2c"
	logger "github.com/d2r2/go-logger"
	"periph.io/x/conn/v3/physic"
)

// I2CDev is a Linux i2c-dev bus.
//
// go-i2c binds a file handle to a single slave address, so a handle is
// opened on first use of each address and kept until Close.
type I2CDev struct {
	mu      sync.Mutex
	bus     int
	open    func(addr uint8, bus int) (handle, error)
	handles map[uint16]handle
}

// handle is the subset of *i2c.I2C used by I2CDev.
type handle interface {
	WriteBytes(buf []byte) (int, error)
	ReadBytes(buf []byte) (int, error)
	Close() error
}

func openHandle(addr uint8, bus int) (handle, error) {
	return i2c.NewI2C(addr, bus)
}

// OpenI2CDev opens /dev/i2c-<bus>.
func OpenI2CDev(bus int) (*I2CDev, error) {
	path := fmt.Sprintf("/dev/i2c-%d", bus)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("bridge: %w", err)
	}
	// go-i2c logs every transfer at debug level.
	logger.ChangePackageLogLevel("i2c", logger.InfoLevel)
	return &I2CDev{bus: bus, open: openHandle, handles: map[uint16]handle{}}, nil
}

func (b *I2CDev) String() string {
	return fmt.Sprintf("i2c-dev%d", b.bus)
}

// Tx implements i2c.Bus. The write and the read are issued as two
// transfers; devices requiring a repeated start are not supported.
func (b *I2CDev) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, err := b.handleFor(addr)
	if err != nil {
		return err
	}
	if len(w) != 0 {
		if _, err := h.WriteBytes(w); err != nil {
			return fmt.Errorf("bridge: %s write to 0x%02x: %w", b, addr, err)
		}
	}
	if len(r) != 0 {
		n, err := h.ReadBytes(r)
		if err != nil {
			return fmt.Errorf("bridge: %s read from 0x%02x: %w", b, addr, err)
		}
		if n != len(r) {
			return fmt.Errorf("bridge: %s read from 0x%02x: got %d of %d bytes: %w", b, addr, n, len(r), io.ErrUnexpectedEOF)
		}
	}
	return nil
}

// SetSpeed implements i2c.Bus. The i2c-dev interface has no way to change
// the bus clock; it is set in the device tree.
func (b *I2CDev) SetSpeed(f physic.Frequency) error {
	return errors.New("bridge: i2c-dev bus speed is set by the kernel")
}

// Close releases every handle.
func (b *I2CDev) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var errs []error
	for addr, h := range b.handles {
		if err := h.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(b.handles, addr)
	}
	return errors.Join(errs...)
}

func (b *I2CDev) handleFor(addr uint16) (handle, error) {
	if h, ok := b.handles[addr]; ok {
		return h, nil
	}
	if addr > 0x7F {
		return nil, fmt.Errorf("bridge: 10 bit address 0x%03x is not supported", addr)
	}
	h, err := b.open(uint8(addr), b.bus)
	if err != nil {
		return nil, fmt.Errorf("bridge: %s: %w", b, err)
	}
	b.handles[addr] = h
	return h, nil
}
