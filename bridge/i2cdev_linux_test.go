// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux

package bridge

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/GermanBionicSystems/thermo/aht20"
)

// fakeHandle answers every read with reply, truncated to the buffer.
type fakeHandle struct {
	reply  []byte
	writes [][]byte
	closed bool
}

func (f *fakeHandle) WriteBytes(buf []byte) (int, error) {
	f.writes = append(f.writes, append([]byte(nil), buf...))
	return len(buf), nil
}

func (f *fakeHandle) ReadBytes(buf []byte) (int, error) {
	return copy(buf, f.reply), nil
}

func (f *fakeHandle) Close() error {
	f.closed = true
	return nil
}

func newFakeI2CDev(h *fakeHandle) *I2CDev {
	return &I2CDev{
		bus: 1,
		open: func(addr uint8, bus int) (handle, error) {
			return h, nil
		},
		handles: map[uint16]handle{},
	}
}

func TestOpenI2CDev_Missing(t *testing.T) {
	b, err := OpenI2CDev(9999)
	if err == nil || b != nil {
		t.Fatalf("expected error, got %v, %v", b, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("%v does not wrap os.ErrNotExist", err)
	}
}

func TestI2CDev_Tx(t *testing.T) {
	h := &fakeHandle{reply: []byte{0x1C}}
	b := newFakeI2CDev(h)
	r := make([]byte, 1)
	if err := b.Tx(aht20.DeviceAddress, []byte{0x71}, r); err != nil {
		t.Fatal(err)
	}
	if r[0] != 0x1C || len(h.writes) != 1 || h.writes[0][0] != 0x71 {
		t.Errorf("unexpected transfer: writes=%v read=%v", h.writes, r)
	}
	if err := b.Tx(0x80, []byte{0x00}, nil); err == nil {
		t.Error("10 bit address accepted")
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if !h.closed || len(b.handles) != 0 {
		t.Error("handle not released")
	}
}

func TestI2CDev_ShortRead(t *testing.T) {
	h := &fakeHandle{}
	b := newFakeI2CDev(h)
	if err := b.Tx(aht20.DeviceAddress, []byte{0x71}, make([]byte, 1)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}

	// The sensor answers nothing: the status read must surface as a bus
	// failure, not as a missing calibration flag.
	dev := &fakeHandle{}
	_, err := aht20.NewI2C(newFakeI2CDev(dev))
	var be *aht20.BusError
	if !errors.As(err, &be) {
		t.Fatalf("expected BusError, got %v", err)
	}
	if errors.Is(err, aht20.ErrSensor) {
		t.Errorf("short read %v matches ErrSensor", err)
	}
}
