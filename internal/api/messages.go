// Package api defines the gpacalc Connect services: message types, procedure
// names, handlers and clients.
package api

import "github.com/mmynk/gpacalc/internal/models"

// ValidationKindKey is the error metadata key holding the validation kind
// (InvalidGpa, InvalidCredits or ZeroCredits) of a failed CalculateGPA call.
const ValidationKindKey = "Gpa-Validation-Kind"

// ValidationError is a displayable calculation failure.
type ValidationError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`

	// Position is the zero-based index of the offending course, -1 when no
	// single course is at fault.
	Position int `json:"position"`

	// Value is the raw text that failed to validate.
	Value string `json:"value,omitempty"`
}

// Session is the renderable state of one form.
// At most one of Result and Error is set.
type Session struct {
	ID        string           `json:"id"`
	Courses   []models.Course  `json:"courses"`
	Result    string           `json:"result,omitempty"`
	Error     *ValidationError `json:"error,omitempty"`
	CanRemove bool             `json:"can_remove"`
}

type CreateSessionRequest struct{}

type GetSessionRequest struct {
	SessionID string `json:"session_id"`
}

type AddCourseRequest struct {
	SessionID string `json:"session_id"`
}

type RemoveCourseRequest struct {
	SessionID string `json:"session_id"`
	CourseID  string `json:"course_id"`
}

type UpdateCourseRequest struct {
	SessionID string `json:"session_id"`
	CourseID  string `json:"course_id"`
	Field     string `json:"field"`
	Value     string `json:"value"`
}

type CalculateRequest struct {
	SessionID string `json:"session_id"`
}

type DeleteSessionRequest struct {
	SessionID string `json:"session_id"`
}

type DeleteSessionResponse struct{}

// SessionResponse is returned by every session operation.
type SessionResponse struct {
	Session Session `json:"session"`
}

// CalculateGPARequest computes a GPA without a session.
type CalculateGPARequest struct {
	Courses []models.Course `json:"courses"`
}

type CalculateGPAResponse struct {
	GPA           string  `json:"gpa"`
	QualityPoints float64 `json:"quality_points"`
	CreditHours   float64 `json:"credit_hours"`
}

type RecordVisitRequest struct{}

type RecordVisitResponse struct {
	Visits   int64 `json:"visits"`
	Fallback bool  `json:"fallback"`
}
