package tree

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultIndent is the number of spaces added per tree level by [Text].
const DefaultIndent = 4

// Text renders t as indented plain text using [DefaultIndent].
// An empty tree renders as the empty string.
func Text(t *Tree) string {
	return TextIndent(t, DefaultIndent)
}

// TextIndent renders t as plain text, indenting each level by indent spaces.
//
// Each split produces two branch lines, "feat <= thr  (pct)" and
// "feat > thr  (pct)", where pct is the share of samples taking that branch.
// A leaf is appended to the line of the branch leading to it as
// "  ---> value". The output has no trailing newline.
func TextIndent(t *Tree, indent int) string {
	if t.IsEmpty() {
		return ""
	}
	w := &textWriter{
		indent: max(indent, 0),
		num:    message.NewPrinter(language.English),
	}
	w.node(t.Root, 0)
	return w.buf.String()
}

type textWriter struct {
	buf    strings.Builder
	indent int
	num    *message.Printer
}

func (w *textWriter) line(depth int, format string, args ...any) {
	w.buf.WriteString(strings.Repeat(" ", depth*w.indent))
	fmt.Fprintf(&w.buf, format, args...)
}

func (w *textWriter) node(n *Node, depth int) {
	if n == nil {
		return
	}
	if n.IsLeaf {
		w.buf.WriteString("  ---> ")
		w.buf.WriteString(w.leafValue(n))
		return
	}

	if depth > 0 {
		w.buf.WriteByte('\n')
	}
	w.line(depth, "%s <= %.3f  (%s)", n.FeatureName, n.Threshold, percent(n.Left))
	w.node(n.Left, depth+1)
	w.buf.WriteByte('\n')
	w.line(depth, "%s > %.3f  (%s)", n.FeatureName, n.Threshold, percent(n.Right))
	w.node(n.Right, depth+1)
}

// leafValue formats a single value with thousands grouping ("1,234.500")
// and a class distribution as "[0.250, 0.750]".
func (w *textWriter) leafValue(n *Node) string {
	if len(n.Value) == 1 {
		return w.num.Sprintf("%.3f", n.Value[0])
	}
	return formatArray(n.ValueRatio)
}

func formatArray(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func percent(n *Node) string {
	if n == nil {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", n.SampleRatio*100)
}
