package domain

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// Suffix is appended to every requested name.
	Suffix = ".rns"
	// DefaultMaxNameRunes is the name cap applied by Label.
	DefaultMaxNameRunes = 64
)

// LabelPolicy turns a requested name into the text drawn on the image.
type LabelPolicy struct {
	// MaxNameRunes caps the name (not the suffix). 0 means no cap.
	MaxNameRunes int
}

// DefaultLabelPolicy is the policy used by Label.
var DefaultLabelPolicy = LabelPolicy{MaxNameRunes: DefaultMaxNameRunes}

// Label returns name + Suffix under DefaultLabelPolicy.
func Label(name string) string {
	return DefaultLabelPolicy.Label(name)
}

// Label normalizes name to NFC, caps it to MaxNameRunes and appends Suffix.
func (p LabelPolicy) Label(name string) string {
	name = norm.NFC.String(name)
	if p.MaxNameRunes > 0 && utf8.RuneCountInString(name) > p.MaxNameRunes {
		name = string([]rune(name)[:p.MaxNameRunes])
	}
	return name + Suffix
}
