// Package session holds the state of one GPA form: its course list, the last
// computed GPA and the active validation error.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/gpacalc/internal/calculator"
	"github.com/mmynk/gpacalc/internal/courses"
	"github.com/mmynk/gpacalc/internal/models"
)

// Session is one form. At most one of result and failure is set.
// A Session is not safe for concurrent use; Registry serialises access.
type Session struct {
	id       string
	list     *courses.List
	result   *calculator.Result
	failure  *calculator.ValidationError
	lastUsed time.Time

	calculate func([]models.Course) (calculator.Result, error)
}

// ErrorView is the displayable form of a validation failure.
type ErrorView struct {
	Kind     calculator.Kind `json:"kind"`
	Message  string          `json:"message"`
	Position int             `json:"position"`

	// Value is the raw text of the failing field, empty for ZeroCredits.
	Value string `json:"value,omitempty"`
}

// View is what the presentation layer renders.
type View struct {
	ID      string          `json:"id"`
	Courses []models.Course `json:"courses"`

	// Result is the formatted GPA, empty when nothing has been calculated.
	Result string     `json:"result,omitempty"`
	Error  *ErrorView `json:"error,omitempty"`

	// CanRemove is false when a single course remains.
	CanRemove bool `json:"can_remove"`
}

// New creates a session seeded with one blank course.
func New(id string, gen courses.IDGenerator) *Session {
	s := &Session{
		id:        id,
		list:      courses.NewList(gen),
		lastUsed:  time.Now(),
		calculate: calculator.Calculate,
	}
	s.list.Add()
	return s
}

// Add appends a blank course. It clears the error but keeps a computed result.
func (s *Session) Add() View {
	s.list.Add()
	s.failure = nil
	return s.View()
}

// Remove deletes a course and clears both the result and the error.
func (s *Session) Remove(courseID string) View {
	s.list.Remove(courseID)
	s.clear()
	return s.View()
}

// Update edits one field of a course and clears both the result and the error.
// An unknown field name is rejected without touching any state.
func (s *Session) Update(courseID string, field models.Field, value string) (View, error) {
	if _, err := s.list.Update(courseID, field, value); err != nil {
		return s.View(), err
	}
	s.clear()
	return s.View(), nil
}

// Calculate runs the calculator over the current courses and records either
// the result or the validation error. A validation failure is part of the
// view, not an error; any other failure is returned with both cleared.
func (s *Session) Calculate() (View, error) {
	s.clear()
	result, err := s.calculate(s.list.Courses())
	if err != nil {
		var verr *calculator.ValidationError
		if !errors.As(err, &verr) {
			return s.View(), fmt.Errorf("calculate session %s: %w", s.id, err)
		}
		s.failure = verr
		return s.View(), nil
	}
	s.result = &result
	return s.View(), nil
}

// Result returns the last computed result, if any.
func (s *Session) Result() (calculator.Result, bool) {
	if s.result == nil {
		return calculator.Result{}, false
	}
	return *s.result, true
}

// CanRemove reports whether removing a course is allowed.
func (s *Session) CanRemove() bool {
	return s.list.Len() > 1
}

// View returns a snapshot for rendering.
func (s *Session) View() View {
	v := View{
		ID:        s.id,
		Courses:   s.list.Courses(),
		CanRemove: s.CanRemove(),
	}
	switch {
	case s.failure != nil:
		v.Error = &ErrorView{
			Kind:     s.failure.Kind,
			Message:  s.failure.Error(),
			Position: s.failure.Position,
			Value:    s.failure.Value,
		}
	case s.result != nil:
		v.Result = s.result.String()
	}
	return v
}

func (s *Session) clear() {
	s.result = nil
	s.failure = nil
}
