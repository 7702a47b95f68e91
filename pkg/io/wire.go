package io

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/explaintext/pkg/errors"
	"github.com/matzehuels/explaintext/pkg/explain"
)

type explanation struct {
	Error              string              `json:"error,omitempty"`
	Method             string              `json:"method,omitempty"`
	Description        string              `json:"description,omitempty"`
	IsRegression       bool                `json:"is_regression,omitempty"`
	Targets            []target            `json:"targets,omitempty"`
	FeatureImportances []featureImportance `json:"feature_importances,omitempty"`
	DecisionTree       *decisionTree       `json:"decision_tree,omitempty"`
}

type target struct {
	Target         any            `json:"target"`
	Proba          *float64       `json:"proba,omitempty"`
	Score          *float64       `json:"score,omitempty"`
	FeatureWeights featureWeights `json:"feature_weights"`
}

type featureWeights struct {
	Pos          []featureWeight `json:"pos"`
	Neg          []featureWeight `json:"neg"`
	PosRemaining int             `json:"pos_remaining"`
	NegRemaining int             `json:"neg_remaining"`
}

type featureWeight struct {
	Feature json.RawMessage `json:"feature"`
	Weight  float64         `json:"weight"`
}

type featureImportance struct {
	Feature json.RawMessage `json:"feature"`
	Weight  float64         `json:"weight"`
	Std     float64         `json:"std"`
}

type decisionTree struct {
	Criterion        string    `json:"criterion,omitempty"`
	IsClassification bool      `json:"is_classification"`
	Tree             *treeNode `json:"tree"`
}

type treeNode struct {
	ID          int       `json:"id"`
	IsLeaf      bool      `json:"is_leaf"`
	Value       []float64 `json:"value,omitempty"`
	ValueRatio  []float64 `json:"value_ratio,omitempty"`
	Impurity    float64   `json:"impurity"`
	Samples     int       `json:"samples"`
	SampleRatio float64   `json:"sample_ratio"`
	FeatureName string    `json:"feature_name,omitempty"`
	FeatureID   int       `json:"feature_id,omitempty"`
	Threshold   float64   `json:"threshold,omitempty"`
	Left        *treeNode `json:"left,omitempty"`
	Right       *treeNode `json:"right,omitempty"`
}

type formattedName struct {
	Formatted *string `json:"formatted"`
}

type hashedPart struct {
	Name *string `json:"name"`
	Sign *int    `json:"sign"`
}

// decodeFeature parses the three wire forms of a feature name.
func decodeFeature(raw json.RawMessage) (explain.FeatureName, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return explain.FeatureName{}, errors.New(errors.ErrCodeInvalidFeature, "feature is missing")
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return explain.FeatureName{}, errors.Wrap(errors.ErrCodeInvalidFeature, err, "decode feature")
		}
		return explain.Plain(s), nil

	case '{':
		var f formattedName
		if err := json.Unmarshal(raw, &f); err != nil {
			return explain.FeatureName{}, errors.Wrap(errors.ErrCodeInvalidFeature, err, "decode formatted feature")
		}
		if f.Formatted == nil {
			return explain.FeatureName{}, errors.New(errors.ErrCodeInvalidFeature, `feature object needs a "formatted" key`)
		}
		return explain.Formatted(*f.Formatted), nil

	case '[':
		var parts []hashedPart
		if err := json.Unmarshal(raw, &parts); err != nil {
			return explain.FeatureName{}, errors.Wrap(errors.ErrCodeInvalidFeature, err, "decode hashed feature")
		}
		out := make([]explain.HashedPart, len(parts))
		for i, p := range parts {
			if p.Name == nil || p.Sign == nil {
				return explain.FeatureName{}, errors.At(errors.New(errors.ErrCodeInvalidFeature,
					`hashed feature part needs "name" and "sign"`), "[%d]", i)
			}
			if err := errors.ValidateSign(*p.Sign); err != nil {
				return explain.FeatureName{}, errors.At(err, "[%d].sign", i)
			}
			out[i] = explain.HashedPart{Name: *p.Name, Sign: *p.Sign}
		}
		return explain.Hashed(out...), nil
	}

	return explain.FeatureName{}, errors.New(errors.ErrCodeInvalidFeature,
		"feature must be a string, an object or a list, got %s", raw)
}

// encodeFeature is the inverse of decodeFeature.
func encodeFeature(n explain.FeatureName) (json.RawMessage, error) {
	var v any
	switch n.Kind {
	case explain.NameFormatted:
		v = formattedName{Formatted: &n.Text}
	case explain.NameHashed:
		parts := make([]hashedPart, len(n.Parts))
		for i := range n.Parts {
			parts[i] = hashedPart{Name: &n.Parts[i].Name, Sign: &n.Parts[i].Sign}
		}
		v = parts
	default:
		v = n.Text
	}
	return json.Marshal(v)
}
