package tree

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts t to Graphviz DOT format.
//
// Split nodes are labelled with their test and sample count; leaves with their
// value. Edges from a split are labelled "yes" (left, the <= branch) and
// "no" (right). An empty tree yields an empty digraph.
func ToDOT(t *Tree) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Tree {\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=helvetica];\n")
	buf.WriteString("  edge [fontname=helvetica];\n")

	if !t.IsEmpty() {
		buf.WriteString("\n")
		t.Walk(func(n *Node, _ int) bool {
			fmt.Fprintf(&buf, "  %d [label=%q", n.ID, dotLabel(t, n))
			if n.IsLeaf {
				buf.WriteString(", fillcolor=lightgrey")
			}
			buf.WriteString("];\n")
			return true
		})
		buf.WriteString("\n")
		t.Walk(func(n *Node, _ int) bool {
			if n.IsLeaf {
				return true
			}
			if n.Left != nil {
				fmt.Fprintf(&buf, "  %d -> %d [label=\"yes\"];\n", n.ID, n.Left.ID)
			}
			if n.Right != nil {
				fmt.Fprintf(&buf, "  %d -> %d [label=\"no\"];\n", n.ID, n.Right.ID)
			}
			return true
		})
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotLabel(t *Tree, n *Node) string {
	var lines []string
	if !n.IsLeaf {
		lines = append(lines, fmt.Sprintf("%s <= %.3f", n.FeatureName, n.Threshold))
	}
	if t.Criterion != "" {
		lines = append(lines, fmt.Sprintf("%s = %.3f", t.Criterion, n.Impurity))
	}
	lines = append(lines, fmt.Sprintf("samples = %d", n.Samples))
	if n.IsLeaf {
		if len(n.Value) == 1 {
			lines = append(lines, fmt.Sprintf("value = %.3f", n.Value[0]))
		} else {
			lines = append(lines, "value = "+formatArray(n.ValueRatio))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
