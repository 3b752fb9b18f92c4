// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Transports understood by openBus.
const (
	transportPeriph = "periph"
	transportI2CDev = "i2cdev"
	transportCH347  = "ch347"
)

// Config is the tool configuration. Command line flags override the values
// read from the file.
type Config struct {
	// Transport is one of periph, i2cdev or ch347.
	Transport string `yaml:"transport"`
	// Bus is the periph bus name as understood by i2creg.Open; empty selects
	// the first bus.
	Bus string `yaml:"bus"`
	// I2CDev is N in /dev/i2c-N for the i2cdev transport.
	I2CDev int `yaml:"i2cdev"`
	// Attempts is the number of measurements tried before giving up.
	Attempts int `yaml:"attempts"`
	// PNG, when set, is the path of an image rendering of the reading.
	PNG     string `yaml:"png"`
	NoColor bool   `yaml:"no_color"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	return &Config{
		Transport: transportPeriph,
		I2CDev:    1,
		Attempts:  1,
	}
}

// Load reads a YAML configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&c)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	d := Default()
	if c.Transport == "" {
		c.Transport = d.Transport
	}
	if c.Attempts == 0 {
		c.Attempts = d.Attempts
	}
}

func (c *Config) validate() error {
	switch c.Transport {
	case transportPeriph, transportI2CDev, transportCH347:
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	if c.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got %d", c.Attempts)
	}
	if c.I2CDev < 0 {
		return fmt.Errorf("invalid i2c-dev bus %d", c.I2CDev)
	}
	return nil
}
