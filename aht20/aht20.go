// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht20

import (
	"errors"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// DeviceAddress is the fixed 7-bit I²C address of the sensor.
const DeviceAddress uint16 = 0x38

const (
	cmdStatus     byte = 0x71
	cmdInitialize byte = 0xBE
	cmdMeasure    byte = 0xAC
	cmdSoftReset  byte = 0xBA
)

var (
	argsInitialize = []byte{cmdInitialize, 0x08, 0x00}
	argsMeasure    = []byte{cmdMeasure, 0x33, 0x00}
)

// Timing according to datasheet.
const (
	stabilizeDelay   = 40 * time.Millisecond
	commandDelay     = 10 * time.Millisecond
	measurementDelay = 80 * time.Millisecond
)

// Dev is a handle to an AHT20 sensor.
//
// Dev holds no protocol state between calls. It does not lock: when several
// goroutines share the bus, the caller must serialize Initialize and
// Measure.
type Dev struct {
	d     *i2c.Dev
	sleep func(time.Duration)
}

// NewI2C returns an object that communicates over I²C to the AHT20
// environmental sensor. The sensor is reset and calibrated before NewI2C
// returns; see Initialize.
func NewI2C(b i2c.Bus) (*Dev, error) {
	d := &Dev{d: &i2c.Dev{Bus: b, Addr: DeviceAddress}}
	if err := d.Initialize(); err != nil {
		return nil, err
	}
	return d, nil
}

// Initialize brings the sensor into a calibrated state.
//
// It waits for the power-on stabilization time, issues a soft reset, reads
// the status and sends the calibration command if the calibrated flag is
// clear. After 10ms the status is read again and a *CalibrationError is
// returned if the flag is still clear. There is no retry; the caller may call
// Initialize again.
func (d *Dev) Initialize() error {
	d.wait(stabilizeDelay)
	if err := d.SoftReset(); err != nil {
		return err
	}
	st, err := d.Status()
	if err != nil {
		return err
	}
	if !st.Calibrated() {
		if err := d.tx("calibrate", argsInitialize, nil); err != nil {
			return err
		}
	}
	d.wait(commandDelay)
	if st, err = d.Status(); err != nil {
		return err
	}
	if !st.Calibrated() {
		return &CalibrationError{Status: st}
	}
	return nil
}

// Measure triggers a single measurement, waits 80ms for the conversion and
// reads the result into r.
//
// A *BusyError, *NotCalibratedError or *DataCorruptionError is returned
// when the frame cannot be trusted; bus failures are returned as *BusError.
// r must not be nil and is left untouched on error. Successive calls should
// be spaced at least 80ms apart.
func (d *Dev) Measure(r *Reading) error {
	if r == nil {
		return errNilReading
	}
	if err := d.tx("trigger measurement", argsMeasure, nil); err != nil {
		return err
	}
	d.wait(measurementDelay)
	var frame [FrameSize]byte
	if err := d.tx("read measurement", nil, frame[:]); err != nil {
		return err
	}
	return Decode(frame[:], r)
}

// Status reads the status byte.
func (d *Dev) Status() (Status, error) {
	var data [1]byte
	if err := d.tx("read status", []byte{cmdStatus}, data[:]); err != nil {
		return 0, err
	}
	return Status(data[0]), nil
}

// SoftReset reboots the sensor without power cycling it and waits for it to
// settle. The calibration coefficients survive the reset.
func (d *Dev) SoftReset() error {
	if err := d.tx("soft reset", []byte{cmdSoftReset}, nil); err != nil {
		return err
	}
	d.wait(stabilizeDelay)
	return nil
}

// Sense implements physic.SenseEnv. It returns the current temperature and
// humidity, the pressure is always 0 since the AHT20 does not measure
// pressure. The measurement takes at least 80ms.
func (d *Dev) Sense(e *physic.Env) error {
	var r Reading
	if err := d.Measure(&r); err != nil {
		return err
	}
	e.Temperature = physic.Temperature(r.Temperature*float64(physic.Kelvin)) + physic.ZeroCelsius
	e.Humidity = physic.RelativeHumidity(r.Humidity * float64(physic.PercentRH))
	e.Pressure = 0
	return nil
}

// SenseContinuous implements physic.SenseEnv. The driver only performs
// one-shot measurements, so it always returns an error.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	return nil, errors.New("aht20: continuous sensing is not supported, call Sense periodically")
}

// Precision implements physic.SenseEnv.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = 10 * physic.MilliKelvin
	e.Humidity = 24 * physic.MilliRH
	e.Pressure = 0
}

// Halt implements conn.Resource. Nothing runs in the background.
func (d *Dev) Halt() error {
	return nil
}

func (d *Dev) String() string {
	return "AHT20"
}

func (d *Dev) tx(op string, w, r []byte) error {
	if err := d.d.Tx(w, r); err != nil {
		return &BusError{Op: op, Err: err}
	}
	return nil
}

func (d *Dev) wait(t time.Duration) {
	if d.sleep != nil {
		d.sleep(t)
		return
	}
	time.Sleep(t)
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
