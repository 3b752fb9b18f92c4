// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package thermo is a container for the AHT20 temperature and humidity
// driver, the CRC helpers it shares with other Sensirion-style sensors and
// the bus bridges it runs on.
package thermo
