package text

import (
	"strings"

	"github.com/matzehuels/explaintext/pkg/errors"
)

// Glyphs holds the punctuation the formatter prints.
type Glyphs struct {
	// PlusMinus separates a feature importance from its uncertainty.
	PlusMinus string

	// Ellipsis marks a "N more features" line.
	Ellipsis string

	// Space replaces each space inside a plain feature name. It must be a
	// single character so normalized names keep their length.
	Space string
}

var (
	// UnicodeGlyphs is the default glyph set.
	UnicodeGlyphs = Glyphs{PlusMinus: "±", Ellipsis: "…", Space: "░"}

	// ASCIIGlyphs is the glyph set for terminals limited to ASCII.
	ASCIIGlyphs = Glyphs{PlusMinus: "+-", Ellipsis: "...", Space: "_"}
)

// Glyph set names accepted by [ParseGlyphs].
const (
	GlyphsUnicode = "unicode"
	GlyphsASCII   = "ascii"
)

// ParseGlyphs returns the glyph set registered under name.
// The empty name selects [UnicodeGlyphs].
func ParseGlyphs(name string) (Glyphs, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", GlyphsUnicode:
		return UnicodeGlyphs, nil
	case GlyphsASCII:
		return ASCIIGlyphs, nil
	}
	return Glyphs{}, errors.New(errors.ErrCodeInvalidGlyphs,
		"unknown glyph set %q (must be %q or %q)", name, GlyphsUnicode, GlyphsASCII)
}
