package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestLabel_AppendsSuffix(t *testing.T) {
	assert.Equal(t, "alice.rns", Label("alice"))
	assert.Equal(t, ".rns", Label(""))
	assert.Equal(t, "a b/c.rns", Label("a b/c"))
}

func TestLabel_NormalizesToNFC(t *testing.T) {
	decomposed := "cafe\u0301"
	assert.Equal(t, "caf\u00e9.rns", Label(decomposed))
}

func TestLabel_CapsNameButKeepsSuffix(t *testing.T) {
	p := LabelPolicy{MaxNameRunes: 3}
	assert.Equal(t, "abc.rns", p.Label("abcdef"))
	assert.Equal(t, "日本語.rns", p.Label("日本語です"))

	long := strings.Repeat("x", 500)
	got := Label(long)
	assert.Equal(t, DefaultMaxNameRunes+utf8.RuneCountInString(Suffix), utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, Suffix))
}

func TestLabel_ZeroCapIsUnlimited(t *testing.T) {
	long := strings.Repeat("y", 200)
	assert.Equal(t, long+Suffix, LabelPolicy{}.Label(long))
}
