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

// WriteJSON encodes e as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON]; encoding the same
// explanation always yields the same bytes.
func WriteJSON(e *explain.Explanation, w io.Writer) error {
	out, err := fromExplanation(e)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes e as JSON to the file at path, replacing it if present.
func ExportJSON(e *explain.Explanation, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(e, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fromExplanation(e *explain.Explanation) (*explanation, error) {
	out := &explanation{}
	if e == nil {
		return out, nil
	}
	out.Error = e.Error
	out.Method = e.Method
	out.Description = e.Description
	out.IsRegression = e.IsRegression

	for i, t := range e.Targets {
		pos, err := fromWeights(t.FeatureWeights.Pos)
		if err != nil {
			return nil, errors.At(err, "targets[%d].feature_weights.pos", i)
		}
		neg, err := fromWeights(t.FeatureWeights.Neg)
		if err != nil {
			return nil, errors.At(err, "targets[%d].feature_weights.neg", i)
		}
		out.Targets = append(out.Targets, target{
			Target: t.Target,
			Proba:  t.Proba,
			Score:  t.Score,
			FeatureWeights: featureWeights{
				Pos:          pos,
				Neg:          neg,
				PosRemaining: t.FeatureWeights.PosRemaining,
				NegRemaining: t.FeatureWeights.NegRemaining,
			},
		})
	}

	for i, fi := range e.FeatureImportances {
		raw, err := encodeFeature(fi.Feature)
		if err != nil {
			return nil, errors.At(err, "feature_importances[%d]", i)
		}
		out.FeatureImportances = append(out.FeatureImportances,
			featureImportance{Feature: raw, Weight: fi.Weight, Std: fi.Std})
	}

	if e.DecisionTree != nil {
		out.DecisionTree = &decisionTree{
			Criterion:        e.DecisionTree.Criterion,
			IsClassification: e.DecisionTree.IsClassification,
			Tree:             fromNode(e.DecisionTree.Root),
		}
	}
	return out, nil
}

func fromWeights(in []explain.FeatureWeight) ([]featureWeight, error) {
	out := make([]featureWeight, len(in))
	for i, fw := range in {
		raw, err := encodeFeature(fw.Feature)
		if err != nil {
			return nil, err
		}
		out[i] = featureWeight{Feature: raw, Weight: fw.Weight}
	}
	return out, nil
}

func fromNode(n *tree.Node) *treeNode {
	if n == nil {
		return nil
	}
	return &treeNode{
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
		Left:        fromNode(n.Left),
		Right:       fromNode(n.Right),
	}
}
