// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, a CRC8 calculation
package common

import "math/bits"

// CRC8Params describes a CRC-8 variant using the usual Rocksoft model
// parameters.
type CRC8Params struct {
	Poly   byte
	Init   byte
	RefIn  bool
	RefOut bool
	XorOut byte
}

var (
	// CRC8Sensirion is the profile used by AHT20, SHT and HDC sensors.
	// It is catalogued as CRC-8/NRSC-5.
	CRC8Sensirion = CRC8Params{Poly: 0x31, Init: 0xff}
	// CRC8Maxim is the 1-Wire profile (CRC-8/MAXIM-DOW).
	CRC8Maxim = CRC8Params{Poly: 0x31, RefIn: true, RefOut: true}
	// CRC8SMBus is the SMBus packet error code profile.
	CRC8SMBus = CRC8Params{Poly: 0x07}
)

// Checksum computes the CRC of data with the profile p.
//
// Running the Sensirion profile over a payload followed by its transmitted
// CRC byte yields 0.
func (p CRC8Params) Checksum(data []byte) byte {
	crc := p.Init
	for _, val := range data {
		if p.RefIn {
			val = bits.Reverse8(val)
		}
		crc ^= val
		for range 8 {
			if (crc & 0x80) == 0 {
				crc <<= 1
			} else {
				crc = (crc << 1) ^ p.Poly
			}
		}
	}
	if p.RefOut {
		crc = bits.Reverse8(crc)
	}
	return crc ^ p.XorOut
}

// CRC8 calculates the 8-bit CRC of the byte slice parameter and returns the
// calculated value. CRC bytes are used in sensors from TI, Sensirion and
// Aosong.
func CRC8(bytes []byte) byte {
	return CRC8Sensirion.Checksum(bytes)
}
