// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package aht20 controls an AHT20 device over I²C.
// The sensor is a temperature and humidity sensor with a typical accuracy of ±2% RH and ±0.3°C.
//
// The driver performs one-shot measurements only: Measure triggers a
// conversion, waits the 80ms conversion time and validates the 7-byte
// response (status flags and CRC-8) before converting the two 20-bit raw
// fields. There is no polling and no retry; callers decide how to retry. The
// aht20.Dev type also implements the physic.SenseEnv interface for use with
// the rest of periph, except for SenseContinuous.
//
// Bus timeouts surface as *BusError values for which IsTimeout reports true.
// Every other failure reported by the sensor matches ErrSensor.
//
// **Datasheet:** http://www.aosong.com/userfiles/files/media/Data%20Sheet%20AHT20.pdf
package aht20
