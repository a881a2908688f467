package domain

import "errors"

var (
	// ErrAssetsNotLoaded signals that rendering was attempted without a font or overlay.
	ErrAssetsNotLoaded = errors.New("render assets not loaded")
	// ErrFontInvalid signals that the font file could not be parsed.
	ErrFontInvalid = errors.New("invalid font asset")
	// ErrOverlayInvalid signals that the overlay file is not a decodable PNG.
	ErrOverlayInvalid = errors.New("invalid overlay asset")
	// ErrEncodeFailed signals that the composed canvas could not be serialized.
	ErrEncodeFailed = errors.New("png encode failed")
)
