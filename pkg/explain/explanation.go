package explain

import "github.com/matzehuels/explaintext/pkg/tree"

// Explanation is the root of an explained prediction or model.
// Every facet is optional; an empty facet is simply not rendered.
type Explanation struct {
	// Error is set when the upstream computation failed.
	Error string

	// Method names the explanation technique, e.g. "LIME".
	Method string

	Description string

	// IsRegression drops the "y=" prefix from target headers.
	IsRegression bool

	Targets            []Target
	FeatureImportances []FeatureImportance
	DecisionTree       *tree.Tree
}

// Target explains one predicted class or output dimension.
type Target struct {
	// Target identifies the class or output; usually a string or a number.
	Target any

	Proba *float64
	Score *float64

	FeatureWeights FeatureWeights
}

// FeatureWeights holds the contributions shown for a target.
//
// Pos is ordered as it should be displayed. Neg is kept in the same
// production order as Pos and renderers show it reversed, so the strongest
// negative contributions end up at the bottom of the block.
type FeatureWeights struct {
	Pos []FeatureWeight
	Neg []FeatureWeight

	// Counts of features left out of Pos and Neg. Never negative.
	PosRemaining int
	NegRemaining int
}

// FeatureWeight is a single (name, contribution) pair.
type FeatureWeight struct {
	Feature FeatureName
	Weight  float64
}

// FeatureImportance is a global importance with its standard deviation.
type FeatureImportance struct {
	Feature FeatureName
	Weight  float64
	Std     float64
}

// Float returns a pointer to v, for filling Target.Proba and Target.Score.
func Float(v float64) *float64 {
	return &v
}

// HasError reports whether e carries an upstream error.
func (e *Explanation) HasError() bool { return e != nil && e.Error != "" }

// HasMethod reports whether e names its explanation method.
func (e *Explanation) HasMethod() bool { return e != nil && e.Method != "" }

// HasDescription reports whether e has a description.
func (e *Explanation) HasDescription() bool { return e != nil && e.Description != "" }

// HasTargets reports whether e explains at least one target.
func (e *Explanation) HasTargets() bool { return e != nil && len(e.Targets) > 0 }

// HasFeatureImportances reports whether e has global feature importances.
func (e *Explanation) HasFeatureImportances() bool {
	return e != nil && len(e.FeatureImportances) > 0
}

// HasDecisionTree reports whether e has a non-empty decision tree.
func (e *Explanation) HasDecisionTree() bool {
	return e != nil && !e.DecisionTree.IsEmpty()
}

// IsEmpty reports whether e has no error and no renderable facet.
func (e *Explanation) IsEmpty() bool {
	return !e.HasError() && !e.HasMethod() && !e.HasDescription() &&
		!e.HasTargets() && !e.HasFeatureImportances() && !e.HasDecisionTree()
}
