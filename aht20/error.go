// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht20

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrSensor is matched by every error the sensor itself reports: failed
// calibration, busy, lost calibration and corrupt data. Bus failures do not
// match it.
var ErrSensor = errors.New("aht20: sensor error")

var errNilReading = errors.New("aht20: nil *Reading")

// CalibrationError is returned by Initialize when the calibrated flag is
// still clear after the calibration command.
type CalibrationError struct {
	Status Status
}

func (e *CalibrationError) Error() string {
	return fmt.Sprintf("aht20: sensor is not calibrated after initialization (status %s)", e.Status)
}

func (e *CalibrationError) Is(target error) bool { return target == ErrSensor }

// NotCalibratedError is returned by Measure when the frame reports the
// calibrated flag clear.
type NotCalibratedError struct {
	Status Status
}

func (e *NotCalibratedError) Error() string {
	return fmt.Sprintf("aht20: sensor lost calibration (status %s)", e.Status)
}

func (e *NotCalibratedError) Is(target error) bool { return target == ErrSensor }

// BusyError is returned by Measure when the measurement was still running
// once the conversion time elapsed.
type BusyError struct {
	Status Status
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("aht20: measurement still in progress (status %s)", e.Status)
}

func (e *BusyError) Is(target error) bool { return target == ErrSensor }

// DataCorruptionError is returned when the CRC-8 of the measurement frame
// does not check out.
type DataCorruptionError struct {
	// Residue is the CRC computed over the whole frame, checksum included.
	Residue byte
}

func (e *DataCorruptionError) Error() string {
	return fmt.Sprintf("aht20: data is corrupt, CRC residue 0x%02x", e.Residue)
}

func (e *DataCorruptionError) Is(target error) bool { return target == ErrSensor }

// BusError wraps a failure of the underlying I²C transaction.
type BusError struct {
	Op  string
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("aht20: %s: %v", e.Op, e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }

// Timeout reports whether the transport gave up waiting for the device.
func (e *BusError) Timeout() bool {
	return isTransportTimeout(e.Err)
}

// IsTimeout reports whether err originates from a bus timeout.
//
// A transport signals a timeout by returning an error that wraps
// os.ErrDeadlineExceeded or context.DeadlineExceeded, or that implements
// Timeout() bool.
func IsTimeout(err error) bool {
	var be *BusError
	if errors.As(err, &be) {
		return be.Timeout()
	}
	return isTransportTimeout(err)
}

func isTransportTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
