// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht20

import (
	"fmt"

	"github.com/GermanBionicSystems/thermo/common"
)

// FrameSize is the length of a measurement response: status, five data
// bytes and a CRC-8.
const FrameSize = 7

const (
	rawMask  = 0xFFFFF
	rawScale = 1 << 20
)

// Status is the sensor status byte.
type Status byte

const (
	bitBusy       Status = 1 << 7
	bitCalibrated Status = 1 << 3
)

// Busy reports whether a measurement is in progress.
func (s Status) Busy() bool { return s&bitBusy != 0 }

// Calibrated reports whether the sensor holds valid calibration
// coefficients.
func (s Status) Calibrated() bool { return s&bitCalibrated != 0 }

func (s Status) String() string {
	return fmt.Sprintf("0x%02x busy=%t cal=%t", byte(s), s.Busy(), s.Calibrated())
}

// Reading is a single decoded measurement.
type Reading struct {
	// Temperature in °C.
	Temperature float64
	// Humidity in %RH.
	Humidity float64

	RawTemperature uint32
	RawHumidity    uint32
}

func (r Reading) String() string {
	return fmt.Sprintf("%.2f°C %.2f%%rH", r.Temperature, r.Humidity)
}

// Decode validates a measurement frame and converts it into r.
//
// The status flags are checked first, then the CRC over all seven bytes
// which must be zero. r must not be nil; it is only written when nil is
// returned.
func Decode(frame []byte, r *Reading) error {
	if r == nil {
		return errNilReading
	}
	if len(frame) != FrameSize {
		return fmt.Errorf("aht20: frame must be %d bytes, got %d", FrameSize, len(frame))
	}
	st := Status(frame[0])
	if st.Busy() {
		return &BusyError{Status: st}
	}
	if !st.Calibrated() {
		return &NotCalibratedError{Status: st}
	}
	if res := common.CRC8Sensirion.Checksum(frame); res != 0 {
		return &DataCorruptionError{Residue: res}
	}
	t := rawTemperature(frame)
	h := rawHumidity(frame)
	*r = Reading{
		Temperature:    toCelsius(t),
		Humidity:       toPercentRH(h),
		RawTemperature: t,
		RawHumidity:    h,
	}
	return nil
}

// rawTemperature returns the low nibble of byte 3 followed by bytes 4 and 5.
func rawTemperature(frame []byte) uint32 {
	v := uint32(frame[3])<<16 | uint32(frame[4])<<8 | uint32(frame[5])
	return v & rawMask
}

// rawHumidity returns bytes 1 and 2 followed by the high nibble of byte 3.
func rawHumidity(frame []byte) uint32 {
	v := uint32(frame[1])<<16 | uint32(frame[2])<<8 | uint32(frame[3])
	return v >> 4
}

func toCelsius(raw uint32) float64 {
	return float64(raw)*(200.0/rawScale) - 50.0
}

func toPercentRH(raw uint32) float64 {
	return float64(raw) * (100.0 / rawScale)
}
