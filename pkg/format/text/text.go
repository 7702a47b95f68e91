package text

import (
	"strings"

	"github.com/matzehuels/explaintext/pkg/explain"
	"github.com/matzehuels/explaintext/pkg/tree"
)

// Options configures a [Formatter].
type Options struct {
	// Glyphs defaults to UnicodeGlyphs when zero.
	Glyphs Glyphs

	// TreeRenderer turns a decision tree into the text embedded in the
	// decision tree section. Defaults to tree.Text.
	TreeRenderer func(*tree.Tree) string
}

// Formatter renders explanations with a fixed set of glyphs.
type Formatter struct {
	glyphs     Glyphs
	renderTree func(*tree.Tree) string
}

// New returns a Formatter configured by opts.
func New(opts Options) *Formatter {
	f := &Formatter{glyphs: opts.Glyphs, renderTree: opts.TreeRenderer}
	if f.glyphs == (Glyphs{}) {
		f.glyphs = UnicodeGlyphs
	}
	if f.renderTree == nil {
		f.renderTree = tree.Text
	}
	return f
}

// Glyphs returns the glyph set f was built with.
func (f *Formatter) Glyphs() Glyphs {
	return f.glyphs
}

var defaultFormatter = New(Options{})

// Format renders e with the Unicode glyph set. See [Formatter.Format].
func Format(e *explain.Explanation, show ...Section) string {
	return defaultFormatter.Format(e, show...)
}

// Format renders e as text.
//
// The error line comes first whenever e carries an error, whether or not it
// was asked for. Then each section in show is rendered in the given order,
// skipping those e has nothing for. Called without sections (a nil show),
// all sections are rendered in canonical order; a non-nil empty show renders
// none, leaving only the error line. Lines are joined with "\n"; an
// explanation with nothing to show renders as the empty string.
func (f *Formatter) Format(e *explain.Explanation, show ...Section) string {
	return strings.Join(f.Lines(e, show...), "\n")
}

// Lines is like Format but returns the lines before joining.
func (f *Formatter) Lines(e *explain.Explanation, show ...Section) []string {
	if e == nil {
		return nil
	}
	if show == nil {
		show = AllSections()
	}

	var lines []string
	if e.HasError() {
		lines = append(lines, f.errorLines(e)...)
	}
	for _, s := range show {
		if s >= numSections {
			continue
		}
		sec := sections[s]
		if !sec.present(e) {
			continue
		}
		lines = append(lines, sec.lines(f, e)...)
	}
	return lines
}
