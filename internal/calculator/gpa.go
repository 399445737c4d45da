package calculator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mmynk/gpacalc/internal/models"
)

const (
	// MinGPA and MaxGPA bound a single course's grade points (inclusive).
	MinGPA = 0.0
	MaxGPA = 4.0
)

// Kind classifies a validation failure.
type Kind string

const (
	KindInvalidGPA     Kind = "InvalidGpa"
	KindInvalidCredits Kind = "InvalidCredits"
	KindZeroCredits    Kind = "ZeroCredits"
)

// ValidationError reports why a course list could not be averaged.
// Validation stops at the first failing course.
type ValidationError struct {
	Kind Kind

	// Position is the zero-based index of the failing course, or -1 when the
	// failure is not tied to one course (ZeroCredits).
	Position int

	// Value is the raw text that failed to validate.
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindInvalidGPA:
		return "Please enter a valid GPA between 0.0 and 4.0 for all courses."
	case KindInvalidCredits:
		return "Please enter valid credit hours (greater than 0) for all courses."
	case KindZeroCredits:
		return "Total credit hours cannot be zero. Please add at least one course with credit hours."
	default:
		return fmt.Sprintf("invalid course list: %s", e.Kind)
	}
}

// Result is a successfully computed weighted average.
type Result struct {
	// GPA is the weighted average rounded to two decimals.
	GPA float64

	// QualityPoints is Σ(gpa × credits) over all courses.
	QualityPoints float64

	// CreditHours is Σ(credits) over all courses.
	CreditHours float64
}

// String formats the GPA with exactly two decimals (e.g. "3.25").
func (r Result) String() string {
	return strconv.FormatFloat(r.GPA, 'f', 2, 64)
}

// Calculate computes the credit-weighted GPA of courses.
//
// Algorithm:
//   - each course contributes gpa × credits quality points and credits hours
//   - gpa = Σ quality points / Σ credit hours, rounded half away from zero
//
// The first course with an unparsable or out-of-range GPA, or with unparsable
// or non-positive credits, aborts the calculation with a *ValidationError.
// Credits so large that the totals overflow fail with KindInvalidCredits at
// the course that overflowed. An empty list fails with KindZeroCredits.
// courses is never modified.
func Calculate(courses []models.Course) (Result, error) {
	var qualityPoints, creditHours float64

	for i, course := range courses {
		gpa, ok := parseNumber(course.GPA)
		if !ok || gpa < MinGPA || gpa > MaxGPA {
			return Result{}, &ValidationError{Kind: KindInvalidGPA, Position: i, Value: course.GPA}
		}

		credits, ok := parseNumber(course.Credits)
		if !ok || credits <= 0 {
			return Result{}, &ValidationError{Kind: KindInvalidCredits, Position: i, Value: course.Credits}
		}

		qualityPoints += gpa * credits
		creditHours += credits
		if math.IsInf(qualityPoints, 0) || math.IsInf(creditHours, 0) {
			return Result{}, &ValidationError{Kind: KindInvalidCredits, Position: i, Value: course.Credits}
		}
	}

	if creditHours == 0 {
		return Result{}, &ValidationError{Kind: KindZeroCredits, Position: -1}
	}

	return Result{
		GPA:           Round2(qualityPoints / creditHours),
		QualityPoints: qualityPoints,
		CreditHours:   creditHours,
	}, nil
}

// Round2 rounds x to two decimal places, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// parseNumber parses user-typed decimal text. Hex floats, NaN and infinities
// are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	digits := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
