package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/explaintext/pkg/cache"
	"github.com/matzehuels/explaintext/pkg/errors"
	"github.com/matzehuels/explaintext/pkg/explain"
	"github.com/matzehuels/explaintext/pkg/format/text"
	explio "github.com/matzehuels/explaintext/pkg/io"
	"github.com/matzehuels/explaintext/pkg/observability"
	"github.com/matzehuels/explaintext/pkg/tree"
)

// Cache key types reported to observability hooks.
const (
	keyTypeRender = "render"
	keyTypeTree   = "tree"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Decode parses data and returns the explanation with the hash of its
// canonical JSON encoding. Inputs that differ only in whitespace, key order
// or unknown keys hash the same.
func (r *Runner) Decode(ctx context.Context, data []byte) (*explain.Explanation, string, error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnDecodeStart(ctx, len(data))

	e, err := explio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		hooks.OnDecodeComplete(ctx, "", time.Since(start), err)
		return nil, "", err
	}

	var canon bytes.Buffer
	if err := explio.WriteJSON(e, &canon); err != nil {
		err = errors.Wrap(errors.ErrCodeInternal, err, "canonicalize explanation")
		hooks.OnDecodeComplete(ctx, "", time.Since(start), err)
		return nil, "", err
	}
	hash := cache.Hash(canon.Bytes())
	hooks.OnDecodeComplete(ctx, hash, time.Since(start), nil)
	return e, hash, nil
}

// Execute decodes data and renders it as text, consulting the cache first.
//
// Cache failures never fail the run: they are logged and the text is
// rendered as if the cache were empty.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}
	result.Stats.InputBytes = len(data)

	decodeStart := time.Now()
	e, hash, err := r.Decode(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Explanation = e
	result.Hash = hash
	result.Stats.DecodeTime = time.Since(decodeStart)

	key := r.Keyer.RenderKey(hash, opts.RenderKeyOpts())
	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, keyTypeRender, key); ok {
			result.Text = string(cached)
			result.CacheHit = true
			result.Stats.Lines = countLines(result.Text)
			opts.Logger.Debug("rendered from cache", "hash", hash[:12])
			return result, nil
		}
	}

	hooks := observability.Pipeline()
	formatStart := time.Now()
	hooks.OnFormatStart(ctx, opts.sectionKeys())

	f := text.New(text.Options{Glyphs: opts.glyphs})
	lines := f.Lines(e, opts.sections...)
	result.Text = strings.Join(lines, "\n")
	result.Stats.Lines = len(lines)
	result.Stats.FormatTime = time.Since(formatStart)
	hooks.OnFormatComplete(ctx, len(lines), result.Stats.FormatTime)

	opts.Logger.Debug("formatted explanation",
		"lines", len(lines),
		"duration", result.Stats.FormatTime)

	r.store(ctx, keyTypeRender, key, []byte(result.Text), opts.TTL)
	return result, nil
}

// RenderTree decodes data and renders its decision tree in format.
// SVG output is cached; text and DOT are cheap enough to render every time.
func (r *Runner) RenderTree(ctx context.Context, data []byte, format string) ([]byte, error) {
	if err := ValidateTreeFormat(format); err != nil {
		return nil, err
	}
	e, hash, err := r.Decode(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if !e.HasDecisionTree() {
		return nil, errors.New(errors.ErrCodeNotFound, "explanation has no decision tree")
	}

	hooks := observability.Pipeline()
	start := time.Now()
	switch format {
	case TreeFormatText:
		out := []byte(tree.Text(e.DecisionTree))
		hooks.OnTreeRender(ctx, format, time.Since(start), nil)
		return out, nil
	case TreeFormatDOT:
		out := []byte(tree.ToDOT(e.DecisionTree))
		hooks.OnTreeRender(ctx, format, time.Since(start), nil)
		return out, nil
	}

	key := r.Keyer.TreeKey(hash, cache.TreeKeyOpts{Format: format})
	if cached, ok := r.lookup(ctx, keyTypeTree, key); ok {
		return cached, nil
	}
	svg, err := tree.RenderSVG(ctx, tree.ToDOT(e.DecisionTree))
	hooks.OnTreeRender(ctx, format, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render decision tree")
	}
	r.store(ctx, keyTypeTree, key, svg, DefaultTTL)
	return svg, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		hooks.OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache lookup failed", "type", keyType, "err", err)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		observability.Cache().OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache store failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
