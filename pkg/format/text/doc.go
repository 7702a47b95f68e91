// Package text renders an [explain.Explanation] as aligned plain text for a
// terminal or a log.
//
// # Overview
//
// The output is a sequence of sections, each a block of lines:
//
//	Explained as: LIME
//	y='cat' (probability=0.830)
//	-------------
//	  +1.200  fur
//
// An upstream error, when present, is always printed first as
// "Error: ...". The remaining sections are printed in the order requested by
// the caller and skipped silently when the explanation has nothing for them.
// [AllSections] gives the default order: method, description, targets,
// feature importances, decision tree.
//
// # Alignment
//
// Feature names are normalized to one display string each (see
// [Formatter.Normalize]) and padded to a shared column width, so all weights
// of one block, and all targets of one explanation, line up. Widths are
// counted in characters, not bytes.
//
// # Glyphs
//
// The plus/minus sign, the ellipsis and the placeholder shown for spaces in
// feature names come from a [Glyphs] record fixed when the [Formatter] is
// built. [UnicodeGlyphs] is the default; [ASCIIGlyphs] suits terminals that
// cannot display "±", "…" or "░".
//
// # Concurrency
//
// A Formatter holds no mutable state and never modifies its input; it is safe
// for concurrent use.
//
// [explain.Explanation]: github.com/matzehuels/explaintext/pkg/explain.Explanation
package text
