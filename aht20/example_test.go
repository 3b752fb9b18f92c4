// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package aht20_test

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/GermanBionicSystems/thermo/aht20"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg I²C bus registry to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer b.Close()

	// Create a new AHT20 device using I²C bus. This resets and calibrates the sensor.
	d, err := aht20.NewI2C(b)
	if err != nil {
		log.Fatalf("failed to initialize AHT20: %v", err)
	}

	// Read temperature and humidity from the sensor
	var r aht20.Reading
	if err := d.Measure(&r); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%8.2f°C %8.2f%%rH\n", r.Temperature, r.Humidity)
}

// Example_retry shows a caller-side retry policy. The driver never retries on
// its own.
func Example_retry() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	d, err := aht20.NewI2C(b)
	if err != nil {
		log.Fatal(err)
	}

	e := physic.Env{}
	for attempt := 0; attempt < 3; attempt++ {
		err = d.Sense(&e)
		if err == nil || aht20.IsTimeout(err) || !errors.Is(err, aht20.ErrSensor) {
			break
		}
		// Keep the 80ms spacing between measurements.
		time.Sleep(80 * time.Millisecond)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%8s %9s\n", e.Temperature, e.Humidity)
}
