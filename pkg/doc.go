// Package pkg provides the core libraries for explaintext, a formatter that
// turns machine-learning model explanations into aligned plain text.
//
// # Overview
//
// An explanation describes why a model made its predictions: per-target
// feature weights, global feature importances, or a surrogate decision tree.
// The pkg directory is organized into these areas:
//
//  1. [explain] and [tree] - The explanation model
//  2. [format/text] - Rendering an explanation as text
//  3. [io] - JSON import and export
//  4. [pipeline] - Orchestration (decode → format) with caching
//  5. [cache], [observability], [errors], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Explanation JSON (file, stdin or HTTP body)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [explain] package (Explanation, Target, FeatureName)
//	         ↓
//	    [format/text] package (sections → lines)
//	         ↓
//	    Plain text
//
// # Quick Start
//
// Format an explanation read from a file:
//
//	import (
//	    "github.com/matzehuels/explaintext/pkg/format/text"
//	    "github.com/matzehuels/explaintext/pkg/io"
//	)
//
//	e, _ := io.ImportJSON("explanation.json")
//	fmt.Println(text.Format(e, text.SectionMethod, text.SectionTargets))
//
// Or run the cached pipeline the CLI and server use:
//
//	runner := pipeline.NewRunner(store, nil, logger)
//	result, _ := runner.Execute(ctx, data, pipeline.Options{
//	    Show:   []string{"targets"},
//	    Glyphs: "ascii",
//	})
//	fmt.Println(result.Text)
//
// # Main Packages
//
// [explain] - The explanation model. Feature names come in three forms:
// plain strings, pre-formatted strings and hashed features made of signed
// parts.
//
// [tree] - Decision trees with text, Graphviz DOT and SVG renderings.
//
// [format/text] - The text formatter. Sections are rendered in the order the
// caller asks for; feature names are normalized and padded to shared columns.
//
// [io] - JSON wire format. Decoding reports the path of invalid values.
//
// [pipeline] - Decode, hash and format with a cache in front. Used by the CLI
// and the HTTP server so both behave the same.
//
// [cache] - File, Redis and null cache backends plus cache key derivation.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/format/text/...  # Specific package
//	go test -run Example           # Examples only
//
// [explain]: https://pkg.go.dev/github.com/matzehuels/explaintext/pkg/explain
// [tree]: https://pkg.go.dev/github.com/matzehuels/explaintext/pkg/tree
// [format/text]: https://pkg.go.dev/github.com/matzehuels/explaintext/pkg/format/text
// [io]: https://pkg.go.dev/github.com/matzehuels/explaintext/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/explaintext/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/explaintext/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/explaintext/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/explaintext/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/explaintext/pkg/buildinfo
package pkg
