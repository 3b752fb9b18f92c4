// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/thermo/aht20"
)

func TestSwatch(t *testing.T) {
	var tests = []struct {
		celsius float64
		r, b    uint8
	}{
		{-50, 0, 255},
		{minRated, 0, 255},
		{maxRated, 255, 0},
		{150, 255, 0},
	}
	for _, test := range tests {
		c := swatch(test.celsius)
		if c.R != test.r || c.B != test.b || c.A != 255 {
			t.Errorf("swatch(%f) = %v", test.celsius, c)
		}
	}
	if warm, cold := swatch(30), swatch(10); warm.R <= cold.R {
		t.Errorf("30°C %v should be redder than 10°C %v", warm, cold)
	}
}

func TestFormatLine(t *testing.T) {
	r := aht20.Reading{Temperature: 21.456, Humidity: 45.1}
	if s := formatLine(r, false); s != " 21.46°C  45.10%rH" {
		t.Errorf("formatLine() = %q", s)
	}
	s := formatLine(r, true)
	if !strings.HasPrefix(s, "\033[") || !strings.HasSuffix(s, " 21.46°C  45.10%rH") {
		t.Errorf("colored formatLine() = %q", s)
	}
	var buf bytes.Buffer
	if err := writeLine(&buf, r, false); err != nil {
		t.Fatal(err)
	}
	if buf.String() != " 21.46°C  45.10%rH\n" {
		t.Errorf("writeLine() = %q", buf.String())
	}
}

func TestBadge(t *testing.T) {
	r := aht20.Reading{Temperature: 20, Humidity: 50}
	img := badge(r)
	if img.Bounds().Dx() < 100 || img.Bounds().Dy() < 13 {
		t.Fatalf("badge too small: %v", img.Bounds())
	}
	bg := swatch(20)
	if got := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA); got != bg {
		t.Errorf("corner %v != background %v", got, bg)
	}
	text := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !text; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{255, 255, 255, 255}) {
				text = true
				break
			}
		}
	}
	if !text {
		t.Error("no text drawn")
	}

	p := filepath.Join(t.TempDir(), "badge.png")
	if err := writePNG(p, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds %v != %v", decoded.Bounds(), img.Bounds())
	}
}
