package tree

// Tree is a fitted decision tree.
type Tree struct {
	// Criterion is the split quality measure, e.g. "gini" or "mse".
	Criterion string

	// IsClassification distinguishes classifiers from regressors.
	IsClassification bool

	// Root is the top split (or a single leaf for a stump).
	Root *Node
}

// Node is a single split or leaf of a [Tree].
type Node struct {
	ID          int
	IsLeaf      bool
	Value       []float64 // raw leaf values (per class for classifiers)
	ValueRatio  []float64 // Value normalized to sum to 1
	Impurity    float64
	Samples     int
	SampleRatio float64 // share of training samples reaching this node

	// Split fields, unset for leaves.
	FeatureName string
	FeatureID   int
	Threshold   float64
	Left        *Node
	Right       *Node
}

// IsEmpty reports whether t has nothing to render.
// A nil tree and a tree without a root are both empty.
func (t *Tree) IsEmpty() bool {
	return t == nil || t.Root == nil
}

// Depth returns the number of split levels below the root.
// A single-leaf tree has depth 0; an empty tree has depth -1.
func (t *Tree) Depth() int {
	if t.IsEmpty() {
		return -1
	}
	return depth(t.Root)
}

func depth(n *Node) int {
	if n == nil || n.IsLeaf {
		return 0
	}
	return 1 + max(depth(n.Left), depth(n.Right))
}

// LeafCount returns the number of leaves in t.
func (t *Tree) LeafCount() int {
	if t.IsEmpty() {
		return 0
	}
	return leaves(t.Root)
}

func leaves(n *Node) int {
	switch {
	case n == nil:
		return 0
	case n.IsLeaf:
		return 1
	}
	return leaves(n.Left) + leaves(n.Right)
}

// Walk visits every node of t in pre-order, stopping early when fn returns false.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	if t.IsEmpty() {
		return
	}
	walk(t.Root, 0, fn)
}

func walk(n *Node, d int, fn func(*Node, int) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n, d) {
		return false
	}
	if n.IsLeaf {
		return true
	}
	return walk(n.Left, d+1, fn) && walk(n.Right, d+1, fn)
}
