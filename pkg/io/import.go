package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/explaintext/pkg/errors"
	"github.com/matzehuels/explaintext/pkg/explain"
	"github.com/matzehuels/explaintext/pkg/tree"
)

// ReadJSON decodes a JSON explanation from r.
//
// Unknown keys are ignored, so explanations exported by newer tools still
// load. ReadJSON returns an INVALID_FORMAT error when the JSON is malformed
// and an INVALID_INPUT or INVALID_FEATURE error, prefixed with the path of
// the offending value, when it breaks a rendering invariant.
//
// Numeric targets are kept as [json.Number] so integer and float labels
// stay apart ("2" versus "2.0"). ReadJSON does not close r.
func ReadJSON(r io.Reader) (*explain.Explanation, error) {
	var data explanation
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode explanation")
	}
	return data.toExplanation()
}

// ImportJSON reads the JSON explanation stored at path.
// A missing file yields a FILE_NOT_FOUND error.
func ImportJSON(path string) (*explain.Explanation, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func (d *explanation) toExplanation() (*explain.Explanation, error) {
	e := &explain.Explanation{
		Error:        d.Error,
		Method:       d.Method,
		Description:  d.Description,
		IsRegression: d.IsRegression,
	}

	if len(d.Targets) > 0 {
		e.Targets = make([]explain.Target, len(d.Targets))
		for i, t := range d.Targets {
			out, err := t.toTarget()
			if err != nil {
				return nil, errors.At(err, "targets[%d]", i)
			}
			e.Targets[i] = out
		}
	}

	if len(d.FeatureImportances) > 0 {
		e.FeatureImportances = make([]explain.FeatureImportance, len(d.FeatureImportances))
		for i, fi := range d.FeatureImportances {
			name, err := decodeFeature(fi.Feature)
			if err != nil {
				return nil, errors.At(err, "feature_importances[%d].feature", i)
			}
			e.FeatureImportances[i] = explain.FeatureImportance{Feature: name, Weight: fi.Weight, Std: fi.Std}
		}
	}

	if d.DecisionTree != nil {
		e.DecisionTree = &tree.Tree{
			Criterion:        d.DecisionTree.Criterion,
			IsClassification: d.DecisionTree.IsClassification,
			Root:             d.DecisionTree.Tree.toNode(),
		}
	}

	return e, nil
}

// toTarget converts t. Error paths are relative to the target.
func (t *target) toTarget() (explain.Target, error) {
	out := explain.Target{Target: t.Target, Proba: t.Proba, Score: t.Score}
	if t.Proba != nil {
		if err := errors.ValidateProbability(*t.Proba); err != nil {
			return out, errors.At(err, "proba")
		}
	}

	w := t.FeatureWeights
	if err := errors.ValidateRemaining(w.PosRemaining); err != nil {
		return out, errors.At(err, "feature_weights.pos_remaining")
	}
	if err := errors.ValidateRemaining(w.NegRemaining); err != nil {
		return out, errors.At(err, "feature_weights.neg_remaining")
	}

	pos, err := toWeights(w.Pos, "pos")
	if err != nil {
		return out, err
	}
	neg, err := toWeights(w.Neg, "neg")
	if err != nil {
		return out, err
	}

	out.FeatureWeights = explain.FeatureWeights{
		Pos:          pos,
		Neg:          neg,
		PosRemaining: w.PosRemaining,
		NegRemaining: w.NegRemaining,
	}
	return out, nil
}

func toWeights(in []featureWeight, field string) ([]explain.FeatureWeight, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]explain.FeatureWeight, len(in))
	for i, fw := range in {
		name, err := decodeFeature(fw.Feature)
		if err != nil {
			return nil, errors.At(err, "feature_weights.%s[%d].feature", field, i)
		}
		out[i] = explain.FeatureWeight{Feature: name, Weight: fw.Weight}
	}
	return out, nil
}

func (n *treeNode) toNode() *tree.Node {
	if n == nil {
		return nil
	}
	return &tree.Node{
		ID:          n.ID,
		IsLeaf:      n.IsLeaf,
		Value:       n.Value,
		ValueRatio:  n.ValueRatio,
		Impurity:    n.Impurity,
		Samples:     n.Samples,
		SampleRatio: n.SampleRatio,
		FeatureName: n.FeatureName,
		FeatureID:   n.FeatureID,
		Threshold:   n.Threshold,
		Left:        n.Left.toNode(),
		Right:       n.Right.toNode(),
	}
}
