// Package testutil provides font and overlay fixtures shared by package tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

const (
	OverlayWidth  = 200
	OverlayHeight = 100
)

// OverlayColor fills the generated overlay.
var OverlayColor = color.NRGBA{R: 0xe0, G: 0x20, B: 0x20, A: 0xff}

// FontBytes returns the Go Regular TrueType font.
func FontBytes() []byte {
	return goregular.TTF
}

// OverlayPNG encodes a solid OverlayColor image of the given size.
func OverlayPNG(t testing.TB, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, OverlayColor)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode overlay fixture: %v", err)
	}
	return buf.Bytes()
}

// WriteAssets writes the font and a default-sized overlay into a temp dir and
// returns their paths.
func WriteAssets(t testing.TB) (fontPath, overlayPath string) {
	t.Helper()
	dir := t.TempDir()
	fontPath = filepath.Join(dir, "font.ttf")
	overlayPath = filepath.Join(dir, "overlay.png")
	if err := os.WriteFile(fontPath, FontBytes(), 0o644); err != nil {
		t.Fatalf("write font fixture: %v", err)
	}
	if err := os.WriteFile(overlayPath, OverlayPNG(t, OverlayWidth, OverlayHeight), 0o644); err != nil {
		t.Fatalf("write overlay fixture: %v", err)
	}
	return fontPath, overlayPath
}
