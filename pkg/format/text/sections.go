package text

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/explaintext/pkg/explain"
)

func (f *Formatter) errorLines(e *explain.Explanation) []string {
	return []string{"Error: " + e.Error}
}

func (f *Formatter) methodLines(e *explain.Explanation) []string {
	return []string{"Explained as: " + e.Method}
}

func (f *Formatter) descriptionLines(e *explain.Explanation) []string {
	return []string{e.Description}
}

// featureImportancesLines prints one "weight ± 2*std name" line per feature,
// names padded to the widest one.
func (f *Formatter) featureImportancesLines(e *explain.Explanation) []string {
	sz := f.importancesWidth(e.FeatureImportances)
	lines := make([]string, 0, len(e.FeatureImportances))
	for _, imp := range e.FeatureImportances {
		lines = append(lines, fmt.Sprintf("%.4f %s %.4f %s",
			imp.Weight, f.glyphs.PlusMinus, 2*imp.Std,
			padRight(f.Normalize(imp.Feature), sz)))
	}
	return lines
}

func (f *Formatter) decisionTreeLines(e *explain.Explanation) []string {
	return []string{"", f.renderTree(e.DecisionTree)}
}

func (f *Formatter) targetsLines(e *explain.Explanation) []string {
	sz := f.MaxColumnWidth(e.Targets)
	var lines []string
	for _, t := range e.Targets {
		lines = append(lines, targetHeader(t, e.IsRegression))
		lines = append(lines, strings.Repeat("-", sz+10))

		w := t.FeatureWeights
		for _, fw := range w.Pos {
			lines = append(lines, f.WeightLine(fw.Feature, fw.Weight, sz))
		}
		if w.PosRemaining > 0 {
			lines = append(lines, f.RemainingLine(w.PosRemaining, Positive))
		}
		for i := len(w.Neg) - 1; i >= 0; i-- {
			lines = append(lines, f.WeightLine(w.Neg[i].Feature, w.Neg[i].Weight, sz))
		}
		if w.NegRemaining > 0 {
			lines = append(lines, f.RemainingLine(w.NegRemaining, Negative))
		}
		lines = append(lines, "")
	}
	return lines
}

// targetHeader renders "y='cat' (probability=0.830, score=1.200)".
func targetHeader(t explain.Target, regression bool) string {
	var b strings.Builder
	if !regression {
		b.WriteString("y=")
	}
	b.WriteString(targetRepr(t.Target))

	var scores []string
	if t.Proba != nil {
		scores = append(scores, fmt.Sprintf("probability=%.3f", *t.Proba))
	}
	if t.Score != nil {
		scores = append(scores, fmt.Sprintf("score=%.3f", *t.Score))
	}
	if len(scores) > 0 {
		b.WriteString(" (" + strings.Join(scores, ", ") + ")")
	}
	return b.String()
}

var reprEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// targetRepr prints a target label the way Python's repr does: strings
// quoted, floats always with a fraction or exponent, None, True and False.
func targetRepr(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case string:
		q := "'"
		if strings.Contains(v, "'") && !strings.Contains(v, `"`) {
			q = `"`
		}
		s := reprEscaper.Replace(v)
		if q == "'" {
			s = strings.ReplaceAll(s, "'", `\'`)
		}
		return q + s + q
	case json.Number:
		return numberRepr(v)
	case float64:
		return floatRepr(v, 64)
	case float32:
		return floatRepr(float64(v), 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// numberRepr prints a JSON number as an int when it is written as one and
// as a float otherwise.
func numberRepr(n json.Number) string {
	if !strings.ContainsAny(string(n), ".eE") {
		if i, err := n.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return string(n)
	}
	f, err := n.Float64()
	if err != nil {
		return string(n)
	}
	return floatRepr(f, 64)
}

// floatRepr prints the shortest form that round-trips, switching to
// exponent notation below 1e-4 and from 1e16 up, e.g. 1.0, 0.5, 1e-05.
func floatRepr(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, bits)
	}
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
