package text

import (
	"testing"

	"github.com/matzehuels/explaintext/pkg/explain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		glyphs Glyphs
		in     explain.FeatureName
		want   string
	}{
		{"plain", UnicodeGlyphs, explain.Plain("age"), "age"},
		{"single space", UnicodeGlyphs, explain.Plain("petal width"), "petal░width"},
		{"space run keeps length", UnicodeGlyphs, explain.Plain(" a   b "), "░a░░░b░"},
		{"ascii spaces", ASCIIGlyphs, explain.Plain("a  b"), "a__b"},
		{"formatted verbatim", UnicodeGlyphs, explain.Formatted("Bias  term"), "Bias  term"},
		{"hashed", UnicodeGlyphs, explain.Hashed(
			explain.HashedPart{Name: "x", Sign: 1},
			explain.HashedPart{Name: "y", Sign: -1},
		), "+x | -y"},
		{"hashed inner spaces", UnicodeGlyphs, explain.Hashed(
			explain.HashedPart{Name: "new york", Sign: 1},
		), "+new░york"},
		{"hashed empty", UnicodeGlyphs, explain.Hashed(), ""},
		{"tab untouched", UnicodeGlyphs, explain.Plain("a\tb"), "a\tb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(Options{Glyphs: tt.glyphs})
			if got := f.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWeightLine(t *testing.T) {
	f := New(Options{})
	tests := []struct {
		name   string
		weight float64
		width  int
		want   string
	}{
		{"a", 1.2, 0, "  +1.200  a"},
		{"a", -0.0004, 3, "  -0.000  a  "},
		{"a b", 12345.678, 5, "+12345.678  a░b  "},
		{"long", 0, 2, "  +0.000  long"},
	}

	for _, tt := range tests {
		if got := f.WeightLine(explain.Plain(tt.name), tt.weight, tt.width); got != tt.want {
			t.Errorf("WeightLine(%q, %v, %d) = %q, want %q", tt.name, tt.weight, tt.width, got, tt.want)
		}
	}
}

func TestRemainingLine(t *testing.T) {
	f := New(Options{})
	if got, want := f.RemainingLine(3, Negative), "       …  (3 more negative features)"; got != want {
		t.Errorf("RemainingLine() = %q, want %q", got, want)
	}
	if got, want := f.RemainingLine(12, Positive), "       …  (12 more positive features)"; got != want {
		t.Errorf("RemainingLine() = %q, want %q", got, want)
	}
}

func TestColumnWidth(t *testing.T) {
	f := New(Options{})

	if got := f.ColumnWidth(nil); got != 0 {
		t.Errorf("ColumnWidth(nil) = %d, want 0", got)
	}

	weights := []explain.FeatureWeight{
		{Feature: explain.Plain("ab")},
		{Feature: explain.Hashed(explain.HashedPart{Name: "x", Sign: 1}, explain.HashedPart{Name: "y", Sign: -1})},
	}
	// "+x | -y" is 7 characters.
	if got := f.ColumnWidth(weights); got != 7 {
		t.Errorf("ColumnWidth() = %d, want 7", got)
	}
}

func TestMaxColumnWidth(t *testing.T) {
	f := New(Options{})
	targets := []explain.Target{
		{FeatureWeights: explain.FeatureWeights{Pos: []explain.FeatureWeight{{Feature: explain.Plain("abc")}}}},
		{FeatureWeights: explain.FeatureWeights{Neg: []explain.FeatureWeight{{Feature: explain.Plain("ab cd")}}}},
		{},
	}
	if got := f.MaxColumnWidth(targets); got != 5 {
		t.Errorf("MaxColumnWidth() = %d, want 5", got)
	}
	if got := f.MaxColumnWidth(nil); got != 0 {
		t.Errorf("MaxColumnWidth(nil) = %d, want 0", got)
	}
}

func TestParseSections(t *testing.T) {
	got := ParseSections([]string{"Targets", "bogus", "method", " decision_tree "})
	want := []Section{SectionTargets, SectionMethod, SectionDecisionTree}
	if len(got) != len(want) {
		t.Fatalf("ParseSections() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseSections()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if got := ParseSections(nil); got != nil {
		t.Errorf("ParseSections(nil) = %v, want nil", got)
	}
	if got := ParseSections([]string{"bogus"}); got == nil || len(got) != 0 {
		t.Errorf("ParseSections([bogus]) = %#v, want empty non-nil slice", got)
	}

	if s := Section(99).String(); s != "unknown" {
		t.Errorf("Section(99).String() = %q", s)
	}
	keys := SectionKeys()
	if len(keys) != 5 || keys[0] != "method" || keys[4] != "decision_tree" {
		t.Errorf("SectionKeys() = %v", keys)
	}
	for _, s := range AllSections() {
		if back, ok := ParseSection(s.String()); !ok || back != s {
			t.Errorf("ParseSection(%q) = %v, %v", s.String(), back, ok)
		}
	}
}

func TestParseGlyphs(t *testing.T) {
	tests := []struct {
		in      string
		want    Glyphs
		wantErr bool
	}{
		{"", UnicodeGlyphs, false},
		{"unicode", UnicodeGlyphs, false},
		{"ASCII", ASCIIGlyphs, false},
		{"emoji", Glyphs{}, true},
	}
	for _, tt := range tests {
		got, err := ParseGlyphs(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseGlyphs(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseGlyphs(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
