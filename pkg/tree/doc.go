// Package tree models a fitted decision tree as it appears inside a model
// explanation and renders it for humans.
//
// # Overview
//
// A [Tree] is a binary tree of [Node] values. Split nodes carry the feature
// name and threshold they test; leaves carry the predicted value (a single
// number for regression or single-class models, a class distribution
// otherwise). Every node also records the share of training samples that
// reached it, which is what the text form prints next to each branch.
//
// # Rendering
//
// [Text] produces the indented plain-text form embedded verbatim by the text
// formatter:
//
//	petal_width <= 0.800  (33.3%)  ---> [1.000, 0.000, 0.000]
//	petal_width > 0.800  (66.7%)
//	    petal_length <= 4.950  (35.3%)  ---> [0.000, 0.917, 0.083]
//	    petal_length > 4.950  (31.3%)  ---> [0.000, 0.024, 0.976]
//
// [ToDOT] converts the tree to Graphviz DOT, and [RenderSVG] turns DOT into
// SVG using an embedded Graphviz build, so no system binaries are required.
package tree
