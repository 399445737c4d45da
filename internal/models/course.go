package models

import "fmt"

// Course represents one entry of the course list.
type Course struct {
	// ID identifies the entry for edits and removal. Assigned at creation and
	// never changed.
	ID string `json:"id"`

	// Name is the optional course name (e.g., "CS101").
	Name string `json:"name"`

	// GPA is the grade-point value as typed by the user (expected 0.0-4.0).
	GPA string `json:"gpa"`

	// Credits is the credit-hour value as typed by the user (expected > 0).
	Credits string `json:"credits"`
}

// Field names an editable attribute of a Course.
type Field string

const (
	FieldName    Field = "name"
	FieldGPA     Field = "gpa"
	FieldCredits Field = "credits"
)

// ParseField converts a wire value into a Field.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldName, FieldGPA, FieldCredits:
		return f, nil
	default:
		return "", fmt.Errorf("unknown course field %q", s)
	}
}

// With returns a copy of c with field set to value.
func (c Course) With(field Field, value string) Course {
	switch field {
	case FieldName:
		c.Name = value
	case FieldGPA:
		c.GPA = value
	case FieldCredits:
		c.Credits = value
	}
	return c
}
