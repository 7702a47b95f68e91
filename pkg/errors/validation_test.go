package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code // empty when the value is valid
	}{
		{"sign +1", ValidateSign(1), ""},
		{"sign -1", ValidateSign(-1), ""},
		{"sign 0", ValidateSign(0), ErrCodeInvalidFeature},
		{"sign 2", ValidateSign(2), ErrCodeInvalidFeature},

		{"remaining 0", ValidateRemaining(0), ""},
		{"remaining 12", ValidateRemaining(12), ""},
		{"remaining -1", ValidateRemaining(-1), ErrCodeInvalidInput},

		{"proba 0", ValidateProbability(0), ""},
		{"proba 1", ValidateProbability(1), ""},
		{"proba 0.83", ValidateProbability(0.83), ""},
		{"proba -0.1", ValidateProbability(-0.1), ErrCodeInvalidInput},
		{"proba 1.01", ValidateProbability(1.01), ErrCodeInvalidInput},
		{"proba NaN", ValidateProbability(math.NaN()), ErrCodeInvalidInput},
		{"proba +Inf", ValidateProbability(math.Inf(1)), ErrCodeInvalidInput},

		{"path simple", ValidatePath("out.txt"), ""},
		{"path nested", ValidatePath("reports/2026/explanation.txt"), ""},
		{"path absolute", ValidatePath("/tmp/explanation.txt"), ""},
		{"path empty", ValidatePath(""), ErrCodeInvalidPath},
		{"path too long", ValidatePath(strings.Repeat("a", maxPathLength+1)), ErrCodeInvalidPath},
		{"path null byte", ValidatePath("foo\x00bar"), ErrCodeInvalidPath},
		{"path newline", ValidatePath("foo\nbar"), ErrCodeInvalidPath},
		{"path trailing space", ValidatePath("out.txt "), ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("code = %q, want %q (err %v)", got, tt.want, tt.err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	seen := make(map[Code]bool)
	for _, code := range []Code{
		ErrCodeInvalidInput, ErrCodeInvalidFormat,
		ErrCodeInvalidGlyphs, ErrCodeInvalidFeature, ErrCodeInvalidConfig,
		ErrCodeInvalidPath, ErrCodeNotFound, ErrCodeFileNotFound,
		ErrCodeNetwork, ErrCodeInternal,
	} {
		if seen[code] {
			t.Errorf("duplicate error code %s", code)
		}
		seen[code] = true
	}
}
