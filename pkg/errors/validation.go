package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/matzehuels/pairquest/pkg/geom"
)

// ValidatePoints rejects point sets containing NaN or infinite coordinates.
//
// The solvers do not check their input, so harness entry points
// (file import, HTTP requests) call this before handing points over.
func ValidatePoints(points []geom.Point) error {
	for i, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			return New(ErrCodeInvalidPoints, "point %d has a non-finite coordinate: %s", i, p)
		}
	}
	return nil
}

// ValidateMinPoints checks that points holds at least two points.
func ValidateMinPoints(points []geom.Point) error {
	if len(points) < 2 {
		return New(ErrCodeNotEnoughPoints, "need at least 2 points, got %d", len(points))
	}
	return nil
}

// ValidateChoice checks that value is one of allowed.
func ValidateChoice(code Code, kind, value string, allowed []string) error {
	if !slices.Contains(allowed, value) {
		return New(code, "invalid %s: %q (must be one of: %s)", kind, value, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidatePath validates a user-supplied output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
