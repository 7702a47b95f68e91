package cache

import "strings"

// RenderKeyOpts holds the options that change rendered text.
type RenderKeyOpts struct {
	Show   []string
	Glyphs string
}

// TreeKeyOpts holds the options that change a rendered decision tree.
type TreeKeyOpts struct {
	Format string
}

// Keyer builds cache keys. Implementations must be deterministic.
type Keyer interface {
	// RenderKey identifies formatted text for the explanation with the given hash.
	RenderKey(explanationHash string, opts RenderKeyOpts) string
	// TreeKey identifies a decision tree rendered in opts.Format.
	TreeKey(explanationHash string, opts TreeKeyOpts) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey combines the explanation hash with a digest of the normalized options.
// Section keys are compared case-insensitively but keep their order, which
// decides the order of the rendered sections.
func (DefaultKeyer) RenderKey(explanationHash string, opts RenderKeyOpts) string {
	parts := make([]string, 0, len(opts.Show)+1)
	parts = append(parts, "glyphs="+strings.ToLower(strings.TrimSpace(opts.Glyphs)))
	for _, s := range opts.Show {
		parts = append(parts, strings.ToLower(strings.TrimSpace(s)))
	}
	return hashKey("render", explanationHash, parts...)
}

// TreeKey combines the explanation hash with a digest of the output format.
func (DefaultKeyer) TreeKey(explanationHash string, opts TreeKeyOpts) string {
	return hashKey("tree", explanationHash, strings.ToLower(opts.Format))
}

var _ Keyer = DefaultKeyer{}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// KeyPatterns returns Redis glob patterns matching every key DefaultKeyer
// builds, scoped under prefix as by [NewScopedKeyer].
func KeyPatterns(prefix string) []string {
	p := globEscaper.Replace(prefix)
	return []string{p + "render:*", p + "tree:*"}
}
