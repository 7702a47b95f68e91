package explain

import (
	"testing"

	"github.com/matzehuels/explaintext/pkg/tree"
)

func TestPresence(t *testing.T) {
	tests := []struct {
		name string
		expl *Explanation
		has  func(*Explanation) bool
		want bool
	}{
		{"nil error", nil, (*Explanation).HasError, false},
		{"error set", &Explanation{Error: "boom"}, (*Explanation).HasError, true},
		{"method set", &Explanation{Method: "LIME"}, (*Explanation).HasMethod, true},
		{"description empty", &Explanation{}, (*Explanation).HasDescription, false},
		{"targets empty slice", &Explanation{Targets: []Target{}}, (*Explanation).HasTargets, false},
		{"targets set", &Explanation{Targets: []Target{{Target: "a"}}}, (*Explanation).HasTargets, true},
		{"importances set", &Explanation{FeatureImportances: []FeatureImportance{{}}}, (*Explanation).HasFeatureImportances, true},
		{"tree without root", &Explanation{DecisionTree: &tree.Tree{}}, (*Explanation).HasDecisionTree, false},
		{"tree with root", &Explanation{DecisionTree: &tree.Tree{Root: &tree.Node{IsLeaf: true}}}, (*Explanation).HasDecisionTree, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.has(tt.expl); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	if !(&Explanation{IsRegression: true}).IsEmpty() {
		t.Error("explanation with only IsRegression should be empty")
	}
	if (&Explanation{Description: "d"}).IsEmpty() {
		t.Error("explanation with a description should not be empty")
	}
}

func TestFeatureNameConstructors(t *testing.T) {
	if n := Plain("a b"); n.Kind != NamePlain || n.Text != "a b" {
		t.Errorf("Plain() = %+v", n)
	}
	if n := Formatted("<BIAS>"); n.Kind != NameFormatted || n.Text != "<BIAS>" {
		t.Errorf("Formatted() = %+v", n)
	}
	n := Hashed(HashedPart{"x", 1}, HashedPart{"y", -1})
	if n.Kind != NameHashed || len(n.Parts) != 2 || n.Parts[1].Sign != -1 {
		t.Errorf("Hashed() = %+v", n)
	}
	if (FeatureName{}).Kind != NamePlain {
		t.Error("zero FeatureName should be plain")
	}
	if NameHashed.String() != "hashed" || NameKind(9).String() != "unknown" {
		t.Error("NameKind.String() mismatch")
	}
}

func TestFloat(t *testing.T) {
	p := Float(0.5)
	if p == nil || *p != 0.5 {
		t.Errorf("Float(0.5) = %v", p)
	}
}
