// Package courses manages the ordered course list of a form.
package courses

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/mmynk/gpacalc/internal/models"
)

// ErrUnknownField is returned by Update for a field name other than
// name, gpa or credits.
var ErrUnknownField = errors.New("unknown course field")

// IDGenerator produces course ids. Ids must be unique for the lifetime of a list.
type IDGenerator func() string

// RandomIDs generates UUIDv4 ids.
func RandomIDs() string {
	return uuid.NewString()
}

// Sequence returns a generator yielding "1", "2", "3", ...
// Safe for concurrent use.
func Sequence() IDGenerator {
	var n atomic.Uint64
	return func() string {
		return strconv.FormatUint(n.Add(1), 10)
	}
}

// List is an ordered collection of course entries.
// Every method returns a fresh snapshot; callers never share the internal slice.
// A List is not safe for concurrent use.
type List struct {
	courses []models.Course
	nextID  IDGenerator
}

// NewList creates an empty list. A nil gen defaults to RandomIDs.
func NewList(gen IDGenerator) *List {
	if gen == nil {
		gen = RandomIDs
	}
	return &List{nextID: gen}
}

// Add appends a blank course with a fresh id.
func (l *List) Add() []models.Course {
	l.courses = append(l.courses, models.Course{ID: l.nextID()})
	return l.Courses()
}

// Remove deletes the course with the given id. An unknown id leaves the list
// unchanged. Removing the last course empties the list.
func (l *List) Remove(id string) []models.Course {
	kept := make([]models.Course, 0, len(l.courses))
	for _, c := range l.courses {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	l.courses = kept
	return l.Courses()
}

// Update sets one field of the course with the given id. Other courses and
// fields are untouched; an unknown id leaves the list unchanged.
func (l *List) Update(id string, field models.Field, value string) ([]models.Course, error) {
	if _, err := models.ParseField(string(field)); err != nil {
		return l.Courses(), fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	for i := range l.courses {
		if l.courses[i].ID == id {
			l.courses[i] = l.courses[i].With(field, value)
		}
	}
	return l.Courses(), nil
}

// Courses returns a snapshot of the list in order.
func (l *List) Courses() []models.Course {
	out := make([]models.Course, len(l.courses))
	copy(out, l.courses)
	return out
}

// Len returns the number of courses.
func (l *List) Len() int {
	return len(l.courses)
}
