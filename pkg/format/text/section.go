package text

import (
	"strings"

	"github.com/matzehuels/explaintext/pkg/explain"
)

// Section identifies one renderable facet of an explanation.
type Section uint8

const (
	SectionMethod Section = iota
	SectionDescription
	SectionTargets
	SectionFeatureImportances
	SectionDecisionTree

	numSections
)

// section binds a Section to its key, its presence test and its renderer.
type section struct {
	key     string
	present func(*explain.Explanation) bool
	lines   func(*Formatter, *explain.Explanation) []string
}

// sections is indexed by Section and lists them in canonical order.
var sections = [numSections]section{
	SectionMethod: {
		key:     "method",
		present: (*explain.Explanation).HasMethod,
		lines:   (*Formatter).methodLines,
	},
	SectionDescription: {
		key:     "description",
		present: (*explain.Explanation).HasDescription,
		lines:   (*Formatter).descriptionLines,
	},
	SectionTargets: {
		key:     "targets",
		present: (*explain.Explanation).HasTargets,
		lines:   (*Formatter).targetsLines,
	},
	SectionFeatureImportances: {
		key:     "feature_importances",
		present: (*explain.Explanation).HasFeatureImportances,
		lines:   (*Formatter).featureImportancesLines,
	},
	SectionDecisionTree: {
		key:     "decision_tree",
		present: (*explain.Explanation).HasDecisionTree,
		lines:   (*Formatter).decisionTreeLines,
	},
}

// String returns the section key, e.g. "feature_importances".
func (s Section) String() string {
	if s < numSections {
		return sections[s].key
	}
	return "unknown"
}

// Present reports whether e has anything to render for s.
func (s Section) Present(e *explain.Explanation) bool {
	return s < numSections && e != nil && sections[s].present(e)
}

// AllSections returns every section in canonical order.
func AllSections() []Section {
	all := make([]Section, numSections)
	for i := range all {
		all[i] = Section(i)
	}
	return all
}

// ParseSection looks up a section by key. Matching is case-insensitive.
func ParseSection(key string) (Section, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, s := range sections {
		if s.key == key {
			return Section(i), true
		}
	}
	return 0, false
}

// ParseSections maps keys to sections, keeping their order and dropping
// keys that name no section. A nil keys returns nil, which Format reads as
// every section; any other list returns a non-nil slice, empty when no key
// is known.
func ParseSections(keys []string) []Section {
	if keys == nil {
		return nil
	}
	out := make([]Section, 0, len(keys))
	for _, k := range keys {
		if s, ok := ParseSection(k); ok {
			out = append(out, s)
		}
	}
	return out
}

// SectionKeys returns the keys of all sections in canonical order.
func SectionKeys() []string {
	keys := make([]string, numSections)
	for i, s := range sections {
		keys[i] = s.key
	}
	return keys
}
