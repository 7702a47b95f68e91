package text

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/explaintext/pkg/explain"
)

const hashedSeparator = " | "

// Normalize returns the display string for a feature name.
//
// Formatted names are returned unchanged. Hashed names list their parts as
// "+name" or "-name" joined by " | ". In plain names every space becomes the
// Space glyph, so significant whitespace stays visible next to the padding.
func (f *Formatter) Normalize(name explain.FeatureName) string {
	switch name.Kind {
	case explain.NameFormatted:
		return name.Text
	case explain.NameHashed:
		return f.hashedName(name.Parts)
	default:
		return f.plainName(name.Text)
	}
}

func (f *Formatter) plainName(s string) string {
	// One glyph per space keeps every run of spaces at its original length.
	return strings.ReplaceAll(s, " ", f.glyphs.Space)
}

func (f *Formatter) hashedName(parts []explain.HashedPart) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteString(hashedSeparator)
		}
		if p.Sign > 0 {
			b.WriteByte('+')
		} else {
			b.WriteByte('-')
		}
		b.WriteString(f.plainName(p.Name))
	}
	return b.String()
}

// width is the display length used for alignment.
func width(s string) int {
	return utf8.RuneCountInString(s)
}

// padRight pads s with spaces up to n characters.
func padRight(s string, n int) string {
	if pad := n - width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
