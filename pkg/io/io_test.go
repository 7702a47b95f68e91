package io

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/explaintext/pkg/errors"
	"github.com/matzehuels/explaintext/pkg/explain"
	"github.com/matzehuels/explaintext/pkg/tree"
)

const sampleJSON = `{
  "method": "LIME",
  "description": "local surrogate",
  "targets": [
    {
      "target": "cat",
      "proba": 0.83,
      "feature_weights": {
        "pos": [
          {"feature": "fur", "weight": 1.2},
          {"feature": {"formatted": "<BIAS>"}, "weight": 0.1}
        ],
        "neg": [
          {"feature": [{"name": "x", "sign": 1}, {"name": "y", "sign": -1}], "weight": -0.4}
        ],
        "pos_remaining": 0,
        "neg_remaining": 3
      }
    },
    {"target": 2, "score": -1.5, "feature_weights": {"pos": [], "neg": []}}
  ],
  "feature_importances": [{"feature": "fur", "weight": 0.41, "std": 0.02}],
  "decision_tree": {
    "criterion": "gini",
    "is_classification": true,
    "tree": {
      "id": 0, "feature_name": "fur", "threshold": 0.5, "samples": 10, "sample_ratio": 1,
      "left": {"id": 1, "is_leaf": true, "value": [4], "sample_ratio": 0.4},
      "right": {"id": 2, "is_leaf": true, "value": [6], "sample_ratio": 0.6}
    }
  },
  "estimator": "ignored"
}`

func TestReadJSON(t *testing.T) {
	e, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	if e.Method != "LIME" || e.Description != "local surrogate" || e.Error != "" {
		t.Errorf("scalar fields = %q, %q, %q", e.Method, e.Description, e.Error)
	}
	if len(e.Targets) != 2 {
		t.Fatalf("len(Targets) = %d, want 2", len(e.Targets))
	}

	cat := e.Targets[0]
	if cat.Target != "cat" || cat.Proba == nil || *cat.Proba != 0.83 || cat.Score != nil {
		t.Errorf("target[0] = %+v", cat)
	}
	wantPos := []explain.FeatureWeight{
		{Feature: explain.Plain("fur"), Weight: 1.2},
		{Feature: explain.Formatted("<BIAS>"), Weight: 0.1},
	}
	if diff := cmp.Diff(wantPos, cat.FeatureWeights.Pos); diff != "" {
		t.Errorf("pos mismatch (-want +got):\n%s", diff)
	}
	wantNeg := []explain.FeatureWeight{{
		Feature: explain.Hashed(explain.HashedPart{Name: "x", Sign: 1}, explain.HashedPart{Name: "y", Sign: -1}),
		Weight:  -0.4,
	}}
	if diff := cmp.Diff(wantNeg, cat.FeatureWeights.Neg); diff != "" {
		t.Errorf("neg mismatch (-want +got):\n%s", diff)
	}
	if cat.FeatureWeights.NegRemaining != 3 {
		t.Errorf("NegRemaining = %d, want 3", cat.FeatureWeights.NegRemaining)
	}

	if got := e.Targets[1].Target; got != json.Number("2") {
		t.Errorf("target[1].Target = %#v, want json.Number(2)", got)
	}

	if len(e.FeatureImportances) != 1 || e.FeatureImportances[0].Std != 0.02 {
		t.Errorf("FeatureImportances = %+v", e.FeatureImportances)
	}

	dt := e.DecisionTree
	if dt == nil || dt.Criterion != "gini" || dt.LeafCount() != 2 {
		t.Fatalf("DecisionTree = %+v", dt)
	}
	if dt.Root.Right.SampleRatio != 0.6 {
		t.Errorf("right SampleRatio = %v, want 0.6", dt.Root.Right.SampleRatio)
	}
}

func TestReadJSONEmptyObject(t *testing.T) {
	e, err := ReadJSON(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if !e.IsEmpty() {
		t.Errorf("ReadJSON({}) = %+v, want empty explanation", e)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
		path  string
	}{
		{
			name:  "malformed",
			input: `{"method": `,
			code:  errors.ErrCodeInvalidFormat,
		},
		{
			name:  "hashed part without sign",
			input: `{"targets": [{"target": "a", "feature_weights": {"pos": [{"feature": [{"name": "x"}], "weight": 1}]}}]}`,
			code:  errors.ErrCodeInvalidFeature,
			path:  "targets[0].feature_weights.pos[0].feature[0]",
		},
		{
			name:  "hashed sign out of range",
			input: `{"targets": [{"target": "a", "feature_weights": {"neg": [{"feature": [{"name": "x", "sign": 2}], "weight": -1}]}}]}`,
			code:  errors.ErrCodeInvalidFeature,
			path:  "targets[0].feature_weights.neg[0].feature[0].sign",
		},
		{
			name:  "object without formatted key",
			input: `{"feature_importances": [{"feature": {"name": "x"}, "weight": 1, "std": 0}]}`,
			code:  errors.ErrCodeInvalidFeature,
			path:  "feature_importances[0].feature",
		},
		{
			name:  "numeric feature",
			input: `{"feature_importances": [{"feature": 3, "weight": 1, "std": 0}]}`,
			code:  errors.ErrCodeInvalidFeature,
			path:  "feature_importances[0].feature",
		},
		{
			name:  "missing feature",
			input: `{"feature_importances": [{"weight": 1, "std": 0}]}`,
			code:  errors.ErrCodeInvalidFeature,
			path:  "feature_importances[0].feature",
		},
		{
			name:  "negative remaining",
			input: `{"targets": [{"target": "a", "feature_weights": {"pos_remaining": -2}}]}`,
			code:  errors.ErrCodeInvalidInput,
			path:  "targets[0].feature_weights.pos_remaining",
		},
		{
			name:  "probability above one",
			input: `{"targets": [{"target": "a", "proba": 1.5, "feature_weights": {}}]}`,
			code:  errors.ErrCodeInvalidInput,
			path:  "targets[0].proba",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadJSON() should fail")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
			if got := errors.PathOf(err); got != tt.path {
				t.Errorf("PathOf() = %q, want %q", got, tt.path)
			}
			if tt.path != "" && !strings.Contains(err.Error(), tt.path) {
				t.Errorf("error %q should mention %q", err, tt.path)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	orig := &explain.Explanation{
		Error:        "partial",
		Method:       "permutation",
		IsRegression: true,
		Targets: []explain.Target{{
			Target: "price",
			Score:  explain.Float(3.25),
			FeatureWeights: explain.FeatureWeights{
				Pos:          []explain.FeatureWeight{{Feature: explain.Plain("rooms"), Weight: 2}},
				Neg:          []explain.FeatureWeight{{Feature: explain.Formatted("age  (yrs)"), Weight: -1}},
				PosRemaining: 4,
			},
		}},
		FeatureImportances: []explain.FeatureImportance{{
			Feature: explain.Hashed(explain.HashedPart{Name: "a b", Sign: -1}),
			Weight:  0.5,
			Std:     0.1,
		}},
		DecisionTree: &tree.Tree{
			Criterion: "mse",
			Root:      &tree.Node{IsLeaf: true, Value: []float64{1.5}, SampleRatio: 1, Samples: 7},
		},
	}

	var buf bytes.Buffer
	if err := WriteJSON(orig, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	first := buf.String()

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	var again bytes.Buffer
	if err := WriteJSON(got, &again); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if again.String() != first {
		t.Error("WriteJSON() should be deterministic across a round trip")
	}
}

func TestImportExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expl.json")
	orig := &explain.Explanation{Method: "LIME", Description: "d"}

	if err := ExportJSON(orig, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if got.Method != "LIME" || got.Description != "d" {
		t.Errorf("ImportJSON() = %+v", got)
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want FILE_NOT_FOUND", err)
	}
}
