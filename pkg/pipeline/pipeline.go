// Package pipeline provides the decode → format pipeline shared by the CLI
// and the HTTP server.
//
// Both entry points receive an explanation as JSON and want text back. The
// [Runner] decodes the JSON, hashes its canonical re-encoding, looks the
// rendering up in a [cache.Cache] and only formats on a miss. Keeping this in
// one place means `explaintext format` and `POST /v1/format` always agree on
// the output for the same input and options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    Show:   []string{"method", "targets"},
//	    Glyphs: "ascii",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Text)
//
// Render the decision tree on its own:
//
//	out, err := runner.RenderTree(ctx, data, pipeline.TreeFormatSVG)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/explaintext/pkg/cache"
	"github.com/matzehuels/explaintext/pkg/errors"
	"github.com/matzehuels/explaintext/pkg/explain"
	"github.com/matzehuels/explaintext/pkg/format/text"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultGlyphs is the glyph set used when none is configured.
	DefaultGlyphs = text.GlyphsUnicode

	// DefaultTTL is how long rendered text stays cached. Renderings are a
	// pure function of the input, so a long TTL only bounds disk usage.
	DefaultTTL = 7 * 24 * time.Hour
)

// Decision tree output formats.
const (
	TreeFormatText = "text"
	TreeFormatDOT  = "dot"
	TreeFormatSVG  = "svg"
)

// ValidTreeFormats is the set of supported decision tree formats.
var ValidTreeFormats = map[string]bool{
	TreeFormatText: true,
	TreeFormatDOT:  true,
	TreeFormatSVG:  true,
}

// ValidateTreeFormat checks that a decision tree format is supported.
func ValidateTreeFormat(format string) error {
	if !ValidTreeFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid tree format: %q (must be one of: text, dot, svg)", format)
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Show lists section keys to render, in order. Nil means all sections;
	// a list naming no known section renders only the error line, if any.
	Show []string `json:"show,omitempty"`

	// Glyphs names the glyph set: "unicode" (default) or "ascii".
	Glyphs string `json:"glyphs,omitempty"`

	// TTL is the cache lifetime of the rendering. Zero uses DefaultTTL.
	TTL time.Duration `json:"-"`

	// Refresh skips the cache lookup but still stores the fresh rendering.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	sections  []text.Section
	glyphs    text.Glyphs
	validated bool
}

// ValidateAndSetDefaults resolves section keys and the glyph set.
//
// Unknown section keys are dropped with a debug log, the same way the
// formatter ignores them. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Glyphs == "" {
		o.Glyphs = DefaultGlyphs
	}
	o.Glyphs = strings.ToLower(strings.TrimSpace(o.Glyphs))
	g, err := text.ParseGlyphs(o.Glyphs)
	if err != nil {
		return err
	}
	o.glyphs = g

	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}

	o.sections = text.ParseSections(o.Show)
	if len(o.sections) < len(o.Show) {
		for _, key := range o.Show {
			if _, ok := text.ParseSection(key); !ok {
				o.Logger.Debug("ignoring unknown section", "key", key)
			}
		}
	}
	o.validated = true
	return nil
}

// Sections returns the resolved sections: nil for all of them, an empty
// slice for none.
// Valid after ValidateAndSetDefaults.
func (o *Options) Sections() []text.Section {
	return o.sections
}

// RenderKeyOpts returns the cache key options for this rendering. "All
// sections" is spelled out in canonical order, so it never shares a key with
// an empty selection.
func (o *Options) RenderKeyOpts() cache.RenderKeyOpts {
	return cache.RenderKeyOpts{Show: o.sectionKeys(), Glyphs: o.Glyphs}
}

// sectionKeys returns the keys of the sections that will be rendered.
func (o *Options) sectionKeys() []string {
	if o.sections == nil {
		return text.SectionKeys()
	}
	keys := make([]string, len(o.sections))
	for i, s := range o.sections {
		keys[i] = s.String()
	}
	return keys
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Explanation is the decoded input.
	Explanation *explain.Explanation

	// Hash identifies the canonical form of the input.
	Hash string

	// Text is the rendered explanation.
	Text string

	// CacheHit reports whether Text came from the cache.
	CacheHit bool

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InputBytes int
	Lines      int
	DecodeTime time.Duration
	FormatTime time.Duration
}
