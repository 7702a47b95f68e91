package text

import (
	"fmt"

	"github.com/matzehuels/explaintext/pkg/explain"
)

// Polarity names the sign of the features summarized by [Formatter.RemainingLine].
type Polarity string

const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
)

// WeightLine renders one feature weight as "  +1.200  name", with the weight
// signed in an 8-character field and the name padded to width.
func (f *Formatter) WeightLine(name explain.FeatureName, weight float64, width int) string {
	return fmt.Sprintf("%+8.3f  %s", weight, padRight(f.Normalize(name), width))
}

// RemainingLine renders the summary for count omitted features, e.g.
// "       …  (3 more negative features)".
func (f *Formatter) RemainingLine(count int, p Polarity) string {
	return fmt.Sprintf("%8s  (%d more %s features)", f.glyphs.Ellipsis, count, p)
}

// ColumnWidth returns the longest normalized name among weights, or 0.
func (f *Formatter) ColumnWidth(weights []explain.FeatureWeight) int {
	n := 0
	for _, w := range weights {
		n = max(n, width(f.Normalize(w.Feature)))
	}
	return n
}

// MaxColumnWidth returns the longest normalized name over the positive and
// negative weights of all targets, so every target block shares one column.
func (f *Formatter) MaxColumnWidth(targets []explain.Target) int {
	n := 0
	for _, t := range targets {
		n = max(n,
			f.ColumnWidth(t.FeatureWeights.Pos),
			f.ColumnWidth(t.FeatureWeights.Neg))
	}
	return n
}

func (f *Formatter) importancesWidth(imps []explain.FeatureImportance) int {
	n := 0
	for _, imp := range imps {
		n = max(n, width(f.Normalize(imp.Feature)))
	}
	return n
}
