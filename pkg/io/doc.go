// Package io provides JSON import and export for model explanations.
//
// # Overview
//
// Explanations are usually computed by a separate process (often not written
// in Go) and handed over as JSON. This package reads that JSON into an
// [explain.Explanation] and writes it back, so a stored explanation can be
// re-rendered later or hashed for caching.
//
// # JSON Format
//
// Every top-level key is optional:
//
//	{
//	  "error": "optional upstream failure",
//	  "method": "LIME",
//	  "description": "free text",
//	  "is_regression": false,
//	  "targets": [
//	    {
//	      "target": "cat",
//	      "proba": 0.83,
//	      "score": 1.7,
//	      "feature_weights": {
//	        "pos": [{"feature": "fur", "weight": 1.2}],
//	        "neg": [{"feature": "size", "weight": -0.3}],
//	        "pos_remaining": 0,
//	        "neg_remaining": 4
//	      }
//	    }
//	  ],
//	  "feature_importances": [
//	    {"feature": "fur", "weight": 0.41, "std": 0.02}
//	  ],
//	  "decision_tree": {
//	    "criterion": "gini",
//	    "is_classification": true,
//	    "tree": {"id": 0, "is_leaf": true, "value": [3.0], "sample_ratio": 1.0}
//	  }
//	}
//
// # Feature Names
//
// A "feature" value takes one of three forms:
//
//   - a string: a plain feature name
//   - {"formatted": "..."}: a name to display verbatim
//   - [{"name": "x", "sign": 1}, {"name": "y", "sign": -1}]: a hashed bucket
//
// # Validation
//
// [ReadJSON] rejects input that would break rendering invariants: hashed
// parts without both keys or with a sign other than ±1, negative remaining
// counts and probabilities outside [0, 1]. Errors carry
// the path of the offending value, e.g. "targets[1].feature_weights.neg[0]".
//
// # Concurrency
//
// All functions are safe for concurrent use; decoded explanations share no
// state with the reader they came from.
//
// [explain.Explanation]: github.com/matzehuels/explaintext/pkg/explain.Explanation
package io
