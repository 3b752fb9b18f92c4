// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bridge exposes I²C masters that are not periph drivers as
// periph i2c.Bus values, so that device drivers such as aht20 run unchanged
// over them.
//
//   - TinyGo wraps a tinygo.org/x/drivers I2C bus (machine.I2C on a
//     microcontroller, or the drivers tester mocks).
//   - I2CDev talks to /dev/i2c-N through github.com/d2r2/go-i2c.
//   - CH347 drives a WCH CH347 USB to I²C adapter over HID.
//
// None of the bridges arbitrate or recover the bus.
package bridge
