// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// aht20 reads the temperature and humidity from an AHT20 sensor once.
//
// The sensor can be reached through a periph host bus, a Linux i2c-dev node
// or a CH347 USB adapter. Options may be given in a YAML file:
//
//	transport: i2cdev
//	i2cdev: 1
//	attempts: 3
//	png: /tmp/aht20.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/thermo/aht20"
	"github.com/GermanBionicSystems/thermo/bridge"
)

// Minimum spacing between two measurements.
const measurementSpacing = 80 * time.Millisecond

type measurer interface {
	Measure(r *aht20.Reading) error
}

// measure tries up to attempts measurements. Only errors reported by the
// sensor are retried; bus failures and timeouts are returned at once.
func measure(m measurer, attempts int, wait func(time.Duration)) (aht20.Reading, error) {
	var r aht20.Reading
	var err error
	for i := 0; i < attempts; i++ {
		if i != 0 {
			wait(measurementSpacing)
		}
		if err = m.Measure(&r); err == nil {
			return r, nil
		}
		if aht20.IsTimeout(err) || !errors.Is(err, aht20.ErrSensor) {
			return r, err
		}
		log.Printf("attempt %d/%d: %v", i+1, attempts, err)
	}
	return r, err
}

func openBus(c *Config) (i2c.Bus, io.Closer, error) {
	switch c.Transport {
	case transportI2CDev:
		b, err := bridge.OpenI2CDev(c.I2CDev)
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil
	case transportCH347:
		b, err := bridge.OpenCH347()
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil
	default:
		if _, err := host.Init(); err != nil {
			return nil, nil, err
		}
		b, err := i2creg.Open(c.Bus)
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil
	}
}

func loadConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	cfgPath := fs.String("config", "", "YAML configuration file")
	transport := fs.String("transport", transportPeriph, "bus transport: periph, i2cdev or ch347")
	busName := fs.String("bus", "", "periph I²C bus name or number")
	i2cdev := fs.Int("i2cdev", 1, "N in /dev/i2c-N for the i2cdev transport")
	attempts := fs.Int("attempts", 1, "number of measurements tried before failing")
	pngPath := fs.String("png", "", "also render the reading to this PNG file")
	noColor := fs.Bool("no-color", false, "disable the colour swatch")
	verbose := fs.Bool("v", false, "verbose mode")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, errors.New("unexpected argument, try -help")
	}
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	c := Default()
	if *cfgPath != "" {
		var err error
		if c, err = Load(*cfgPath); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "transport":
			c.Transport = *transport
		case "bus":
			c.Bus = *busName
		case "i2cdev":
			c.I2CDev = *i2cdev
		case "attempts":
			c.Attempts = *attempts
		case "png":
			c.PNG = *pngPath
		case "no-color":
			c.NoColor = *noColor
		}
	})
	return c, c.validate()
}

func mainImpl() error {
	c, err := loadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}
	b, closer, err := openBus(c)
	if err != nil {
		return err
	}
	defer closer.Close()
	log.Printf("using %s", b)

	d, err := aht20.NewI2C(b)
	if err != nil {
		return err
	}
	r, err := measure(d, c.Attempts, time.Sleep)
	if err != nil {
		return err
	}
	if err := writeLine(colorable.NewColorableStdout(), r, !c.NoColor); err != nil {
		return err
	}
	if c.PNG != "" {
		return writePNG(c.PNG, badge(r))
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "aht20: %s.\n", err)
		os.Exit(1)
	}
}
