// Package assets loads the font and overlay image shared by every render.
package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"rns-image/internal/config"
	"rns-image/internal/domain"
	"rns-image/internal/infra/logging"
)

// Assets is the read-only font and overlay pair. It is safe for concurrent
// use because nothing mutates it after Parse returns.
type Assets struct {
	family  string
	font    *sfnt.Font
	overlay image.Image
}

// Load reads both files named in cfg. Any error is fatal for the service.
func Load(cfg config.AssetsConfig) (*Assets, error) {
	fontData, err := os.ReadFile(cfg.FontPath)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", cfg.FontPath, err)
	}
	overlayData, err := os.ReadFile(cfg.OverlayPath)
	if err != nil {
		return nil, fmt.Errorf("read overlay %s: %w", cfg.OverlayPath, err)
	}

	a, err := Parse(cfg.FontFamily, fontData, overlayData)
	if err != nil {
		return nil, err
	}

	b := a.overlay.Bounds()
	logging.Info("Assets loaded",
		"font_family", a.family,
		"font_path", cfg.FontPath,
		"overlay_path", cfg.OverlayPath,
		"overlay_width", b.Dx(),
		"overlay_height", b.Dy(),
	)
	return a, nil
}

// Parse builds Assets from raw font and PNG bytes, registering the font
// under family.
func Parse(family string, fontData, overlayData []byte) (*Assets, error) {
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFontInvalid, err)
	}
	overlay, err := png.Decode(bytes.NewReader(overlayData))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrOverlayInvalid, err)
	}
	return &Assets{family: family, font: f, overlay: overlay}, nil
}

// Family returns the name the font was registered under.
func (a *Assets) Family() string { return a.family }

// Overlay returns the decoded overlay image. Callers must not modify it.
func (a *Assets) Overlay() image.Image { return a.overlay }

// NewFace returns a fresh face at size points and 72 DPI. Faces are not safe
// for concurrent use, so each render gets its own.
func (a *Assets) NewFace(size float64) (font.Face, error) {
	return opentype.NewFace(a.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// HasGlyph reports whether the font maps r to a real glyph.
func (a *Assets) HasGlyph(r rune) bool {
	var buf sfnt.Buffer
	idx, err := a.font.GlyphIndex(&buf, r)
	return err == nil && idx != 0
}
