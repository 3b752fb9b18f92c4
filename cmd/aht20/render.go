// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/maruel/ansi256"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/GermanBionicSystems/thermo/aht20"
)

// Rated operating range of the sensor.
const (
	minRated = -40.0
	maxRated = 85.0
)

// swatch maps a temperature onto a blue to red gradient across the rated
// range.
func swatch(celsius float64) color.NRGBA {
	f := (celsius - minRated) / (maxRated - minRated)
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return color.NRGBA{R: uint8(255 * f), G: 0x20, B: uint8(255 * (1 - f)), A: 255}
}

func formatLine(r aht20.Reading, colored bool) string {
	line := fmt.Sprintf("%6.2f°C %6.2f%%rH", r.Temperature, r.Humidity)
	if !colored {
		return line
	}
	return ansi256.Default.Block(swatch(r.Temperature)) + "\033[0m " + line
}

func writeLine(w io.Writer, r aht20.Reading, colored bool) error {
	_, err := fmt.Fprintln(w, formatLine(r, colored))
	return err
}

// badge renders the reading as white text over the temperature swatch.
// basicfont only covers ASCII, hence the plain C.
func badge(r aht20.Reading) *image.RGBA {
	const margin = 4
	f := basicfont.Face7x13
	text := fmt.Sprintf("%.2fC %.2f%%RH", r.Temperature, r.Humidity)
	img := image.NewRGBA(image.Rect(0, 0, len(text)*f.Advance+2*margin, f.Height+2*margin))
	draw.Draw(img, img.Bounds(), &image.Uniform{swatch(r.Temperature)}, image.Point{}, draw.Src)
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: f,
		Dot:  fixed.P(margin, img.Bounds().Dy()-margin-f.Descent),
	}
	drawer.DrawString(text)
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
