package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateSign checks that a hashed feature part has sign +1 or -1.
func ValidateSign(sign int) error {
	if sign != 1 && sign != -1 {
		return New(ErrCodeInvalidFeature, "sign must be 1 or -1, got %d", sign)
	}
	return nil
}

// ValidateRemaining checks that an omitted-feature count is not negative.
func ValidateRemaining(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "remaining count cannot be negative, got %d", n)
	}
	return nil
}

// ValidateProbability checks that p is a finite value within [0, 1].
func ValidateProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return New(ErrCodeInvalidInput, "probability must be within [0, 1], got %v", p)
	}
	return nil
}

// maxPathLength bounds output paths given with --output.
const maxPathLength = 500

// ValidatePath checks an --output path before the file is created. It rejects
// empty or overlong paths, control characters and surrounding whitespace.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(path) > maxPathLength:
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	case strings.IndexFunc(path, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "path contains control characters")
	case strings.TrimSpace(path) != path:
		return New(ErrCodeInvalidPath, "path cannot start or end with whitespace")
	}
	return nil
}
