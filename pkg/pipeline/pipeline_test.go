package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/explaintext/pkg/cache"
	apperrors "github.com/matzehuels/explaintext/pkg/errors"
	"github.com/matzehuels/explaintext/pkg/format/text"
)

const catJSON = `{
  "method": "LIME",
  "targets": [{
    "target": "cat",
    "proba": 0.83,
    "feature_weights": {
      "pos": [{"feature": "fur length", "weight": 1.2}],
      "neg": [{"feature": "size", "weight": -0.3}],
      "neg_remaining": 2
    }
  }]
}`

const treeJSON = `{
  "decision_tree": {
    "criterion": "gini",
    "is_classification": true,
    "tree": {
      "id": 0, "feature_name": "fur", "threshold": 0.5, "samples": 10, "sample_ratio": 1,
      "left": {"id": 1, "is_leaf": true, "value": [4], "sample_ratio": 0.4},
      "right": {"id": 2, "is_leaf": true, "value": [6], "sample_ratio": 0.6}
    }
  }
}`

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(&strings.Builder{}, log.Options{}))
}

func TestValidateTreeFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"SVG", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateTreeFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTreeFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.Glyphs != DefaultGlyphs {
		t.Errorf("Glyphs = %q, want %q", opts.Glyphs, DefaultGlyphs)
	}
	if opts.TTL != DefaultTTL {
		t.Errorf("TTL = %v, want %v", opts.TTL, DefaultTTL)
	}
	if opts.Sections() != nil {
		t.Errorf("Sections() = %v, want nil (all sections)", opts.Sections())
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		code     apperrors.Code
		sections []text.Section
	}{
		{
			name:     "known sections keep order",
			opts:     Options{Show: []string{"targets", "Method"}},
			sections: []text.Section{text.SectionTargets, text.SectionMethod},
		},
		{
			name:     "unknown sections dropped",
			opts:     Options{Show: []string{"bogus", "description"}},
			sections: []text.Section{text.SectionDescription},
		},
		{
			name:     "only unknown sections select none",
			opts:     Options{Show: []string{"bogus"}},
			sections: []text.Section{},
		},
		{
			name: "unknown glyphs",
			opts: Options{Glyphs: "emoji"},
			code: apperrors.ErrCodeInvalidGlyphs,
		},
		{
			name: "glyph name is case-insensitive",
			opts: Options{Glyphs: " ASCII "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.code != "" {
				if !apperrors.Is(err, tt.code) {
					t.Errorf("error = %v, want code %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := tt.opts.Sections()
			if len(got) != len(tt.sections) {
				t.Fatalf("Sections() = %v, want %v", got, tt.sections)
			}
			for i := range got {
				if got[i] != tt.sections[i] {
					t.Errorf("Sections()[%d] = %v, want %v", i, got[i], tt.sections[i])
				}
			}
		})
	}
}

func TestOptionsIdempotent(t *testing.T) {
	opts := Options{Show: []string{"method"}, Glyphs: "ascii"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts.RenderKeyOpts()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	second := opts.RenderKeyOpts()
	if first.Glyphs != second.Glyphs || len(first.Show) != len(second.Show) {
		t.Errorf("second call changed options: %+v vs %+v", first, second)
	}
}

func TestExecuteMatchesFormatter(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), []byte(catJSON), Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := text.Format(res.Explanation)
	if res.Text != want {
		t.Errorf("Execute().Text =\n%s\nwant\n%s", res.Text, want)
	}
	if !strings.Contains(res.Text, "fur░length") {
		t.Errorf("default glyphs should be Unicode:\n%s", res.Text)
	}
	if res.Stats.Lines != strings.Count(want, "\n")+1 {
		t.Errorf("Stats.Lines = %d", res.Stats.Lines)
	}
	if res.CacheHit {
		t.Error("NullCache run should not report a hit")
	}
}

func TestExecuteShowAndGlyphs(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), []byte(catJSON), Options{
		Show:   []string{"method"},
		Glyphs: "ascii",
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.Text != "Explained as: LIME" {
		t.Errorf("Execute().Text = %q, want %q", res.Text, "Explained as: LIME")
	}

	res, err = r.Execute(context.Background(), []byte(catJSON), Options{Glyphs: "ascii"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Text, "fur_length") || !strings.Contains(res.Text, "...") {
		t.Errorf("ascii glyphs not applied:\n%s", res.Text)
	}
}

func TestExecuteUnknownSectionsOnly(t *testing.T) {
	r := quietRunner(nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no error", `{"method": "LIME", "description": "d"}`, ""},
		{"error only", `{"error": "boom", "method": "LIME"}`, "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Execute(ctx, []byte(tt.input), Options{Show: []string{"bogus"}})
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if res.Text != tt.want {
				t.Errorf("Execute().Text = %q, want %q", res.Text, tt.want)
			}
		})
	}
}

func TestRenderKeySeparatesAllFromNone(t *testing.T) {
	all := Options{}
	none := Options{Show: []string{"bogus"}}
	for _, o := range []*Options{&all, &none} {
		if err := o.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
	}

	keyer := cache.NewDefaultKeyer()
	if keyer.RenderKey("h", all.RenderKeyOpts()) == keyer.RenderKey("h", none.RenderKeyOpts()) {
		t.Error("rendering all sections and no sections should not share a cache key")
	}

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(fc)
	ctx := context.Background()
	if _, err := r.Execute(ctx, []byte(catJSON), Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, []byte(catJSON), Options{Show: []string{"bogus"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit || res.Text != "" {
		t.Errorf("Execute() = hit %v, text %q; want a fresh empty rendering", res.CacheHit, res.Text)
	}
}

func TestExecuteCacheHit(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(fc)
	ctx := context.Background()

	first, err := r.Execute(ctx, []byte(catJSON), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Error("first run should miss")
	}

	reformatted := strings.Join(strings.Fields(catJSON), " ")
	second, err := r.Execute(ctx, []byte(reformatted), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second run with equivalent input should hit")
	}
	if second.Text != first.Text || second.Hash != first.Hash {
		t.Error("cached run should return identical text and hash")
	}
	if second.Explanation == nil {
		t.Error("cached run should still return the decoded explanation")
	}

	third, err := r.Execute(ctx, []byte(catJSON), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("Refresh should bypass the cache")
	}

	other, err := r.Execute(ctx, []byte(catJSON), Options{Glyphs: "ascii"})
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheHit {
		t.Error("different glyphs should not share a cache entry")
	}
}

type failingCache struct{}

var errBackend = errors.New("backend down")

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errBackend
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errBackend
}

func (failingCache) Delete(context.Context, string) error { return errBackend }

func (failingCache) Close() error { return nil }

func TestExecuteSurvivesCacheFailure(t *testing.T) {
	r := quietRunner(failingCache{})
	res, err := r.Execute(context.Background(), []byte(catJSON), Options{Show: []string{"method"}})
	if err != nil {
		t.Fatalf("Execute() should not fail on cache errors: %v", err)
	}
	if res.Text != "Explained as: LIME" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := quietRunner(nil)
	ctx := context.Background()

	_, err := r.Execute(ctx, []byte(`{"method":`), Options{})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("malformed JSON: error = %v, want INVALID_FORMAT", err)
	}

	_, err = r.Execute(ctx, []byte(catJSON), Options{Glyphs: "emoji"})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidGlyphs) {
		t.Errorf("bad glyphs: error = %v, want INVALID_GLYPHS", err)
	}
}

func TestExecuteEmptyExplanation(t *testing.T) {
	res, err := quietRunner(nil).Execute(context.Background(), []byte(`{}`), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "" || res.Stats.Lines != 0 {
		t.Errorf("empty explanation rendered %q (%d lines)", res.Text, res.Stats.Lines)
	}
}

func TestRenderTree(t *testing.T) {
	r := quietRunner(nil)
	ctx := context.Background()

	out, err := r.RenderTree(ctx, []byte(treeJSON), TreeFormatText)
	if err != nil {
		t.Fatalf("RenderTree(text) error: %v", err)
	}
	if !strings.HasPrefix(string(out), "fur <= 0.500") {
		t.Errorf("RenderTree(text) =\n%s", out)
	}

	out, err = r.RenderTree(ctx, []byte(treeJSON), TreeFormatDOT)
	if err != nil {
		t.Fatalf("RenderTree(dot) error: %v", err)
	}
	if !strings.HasPrefix(string(out), "digraph Tree {") {
		t.Errorf("RenderTree(dot) =\n%s", out)
	}

	if _, err := r.RenderTree(ctx, []byte(catJSON), TreeFormatText); !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("missing tree: error = %v, want NOT_FOUND", err)
	}
	if _, err := r.RenderTree(ctx, []byte(treeJSON), "png"); !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: error = %v, want INVALID_FORMAT", err)
	}
}
