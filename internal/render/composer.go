// Package render composes the name card: background fill, centered label and
// the scaled overlay, encoded as PNG.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"rns-image/internal/domain"
	"rns-image/internal/infra/assets"
)

const (
	// CanvasSize is the width and height of every image.
	CanvasSize = 700
	// FontSize is the label size in points at 72 DPI.
	FontSize = 38
	// TextBaseline is the y of the label baseline.
	TextBaseline = 620
	// OverlayTop is the y of the overlay's top edge.
	OverlayTop = 20

	centerX = CanvasSize / 2

	fallbackGlyph = '?'
)

var (
	// Background is #040d21.
	Background = color.RGBA{R: 0x04, G: 0x0d, B: 0x21, A: 0xff}
	TextColor  = color.White
)

// Layout is where the label and overlay land for a given name.
type Layout struct {
	Label      string
	TextWidth  fixed.Int26_6
	TextOrigin fixed.Point26_6
	Overlay    image.Rectangle
}

// Composer renders images from one set of shared assets. It holds no
// per-request state and may be used from many goroutines.
type Composer struct {
	assets *assets.Assets
	policy domain.LabelPolicy
	encode func(io.Writer, image.Image) error
}

// Option configures a Composer.
type Option func(*Composer)

// WithLabelPolicy overrides domain.DefaultLabelPolicy.
func WithLabelPolicy(p domain.LabelPolicy) Option {
	return func(c *Composer) { c.policy = p }
}

// WithCompression sets the PNG compression level.
func WithCompression(level png.CompressionLevel) Option {
	return func(c *Composer) {
		enc := &png.Encoder{CompressionLevel: level}
		c.encode = enc.Encode
	}
}

// ParseCompression maps a config value to a png.CompressionLevel.
func ParseCompression(s string) (png.CompressionLevel, error) {
	switch strings.ToLower(s) {
	case "", "default":
		return png.DefaultCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	case "none":
		return png.NoCompression, nil
	}
	return 0, fmt.Errorf("unknown png compression %q", s)
}

// New returns a Composer drawing with a.
func New(a *assets.Assets, opts ...Option) (*Composer, error) {
	if a == nil {
		return nil, domain.ErrAssetsNotLoaded
	}
	c := &Composer{
		assets: a,
		policy: domain.DefaultLabelPolicy,
		encode: png.Encode,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Compose renders name and returns the PNG bytes.
func (c *Composer) Compose(name string) ([]byte, error) {
	face, err := c.assets.NewFace(FontSize)
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	canvas := image.NewRGBA(image.Rect(0, 0, CanvasSize, CanvasSize))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	l := c.layout(name, face)

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(TextColor),
		Face: face,
		Dot:  l.TextOrigin,
	}
	d.DrawString(l.Label)

	overlay := c.assets.Overlay()
	xdraw.CatmullRom.Scale(canvas, l.Overlay, overlay, overlay.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := c.encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEncodeFailed, err)
	}
	return buf.Bytes(), nil
}

// Layout reports the placement Compose would use for name.
func (c *Composer) Layout(name string) (Layout, error) {
	face, err := c.assets.NewFace(FontSize)
	if err != nil {
		return Layout{}, fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()
	return c.layout(name, face), nil
}

func (c *Composer) layout(name string, face font.Face) Layout {
	label := c.drawable(c.policy.Label(name))
	w := font.MeasureString(face, label)

	b := c.assets.Overlay().Bounds()
	left := centerX - b.Dx()/4

	return Layout{
		Label:     label,
		TextWidth: w,
		TextOrigin: fixed.Point26_6{
			X: fixed.I(centerX) - w/2,
			Y: fixed.I(TextBaseline),
		},
		Overlay: image.Rect(left, OverlayTop, left+b.Dx()/2, OverlayTop+b.Dy()/2),
	}
}

// drawable replaces runes the font cannot render with fallbackGlyph, so the
// measured width matches what gets drawn.
func (c *Composer) drawable(label string) string {
	return strings.Map(func(r rune) rune {
		if c.assets.HasGlyph(r) {
			return r
		}
		return fallbackGlyph
	}, label)
}
