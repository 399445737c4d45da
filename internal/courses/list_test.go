package courses

import (
	"errors"
	"slices"
	"testing"

	"github.com/mmynk/gpacalc/internal/models"
)

func TestAddAssignsUniqueIDs(t *testing.T) {
	l := NewList(nil)
	for i := 0; i < 100; i++ {
		l.Add()
	}

	seen := make(map[string]bool)
	for _, c := range l.Courses() {
		if c.ID == "" {
			t.Fatal("Add() assigned an empty id")
		}
		if seen[c.ID] {
			t.Errorf("duplicate id %s", c.ID)
		}
		seen[c.ID] = true
	}
	if len(seen) != 100 {
		t.Errorf("got %d distinct ids, want 100", len(seen))
	}
}

func TestAddThenUpdateName(t *testing.T) {
	l := NewList(Sequence())
	l.Add()
	added := l.Add()
	newID := added[len(added)-1].ID

	got, err := l.Update(newID, models.FieldName, "CS101")
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if last := got[len(got)-1]; last != (models.Course{ID: newID, Name: "CS101"}) {
		t.Errorf("last course = %+v, want only name CS101 set", last)
	}
	if got[0] != (models.Course{ID: "1"}) {
		t.Errorf("first course = %+v, want untouched", got[0])
	}
}

func TestUpdateFields(t *testing.T) {
	l := NewList(Sequence())
	l.Add()
	l.Add()

	if _, err := l.Update("2", models.FieldGPA, "3.7"); err != nil {
		t.Fatalf("Update(gpa) error: %v", err)
	}
	got, err := l.Update("2", models.FieldCredits, "4")
	if err != nil {
		t.Fatalf("Update(credits) error: %v", err)
	}

	want := []models.Course{
		{ID: "1"},
		{ID: "2", GPA: "3.7", Credits: "4"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Courses = %+v, want %+v", got, want)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	l := NewList(Sequence())
	before := l.Add()

	got, err := l.Update("missing", models.FieldName, "x")
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if !slices.Equal(got, before) {
		t.Errorf("Courses = %+v, want unchanged %+v", got, before)
	}
}

func TestUpdateUnknownField(t *testing.T) {
	l := NewList(Sequence())
	before := l.Add()

	got, err := l.Update("1", models.Field("grade"), "A")
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("Update() error = %v, want ErrUnknownField", err)
	}
	if !slices.Equal(got, before) {
		t.Errorf("Courses = %+v, want unchanged %+v", got, before)
	}
}

func TestRemove(t *testing.T) {
	l := NewList(Sequence())
	l.Add()
	l.Add()
	l.Add()

	got := l.Remove("2")
	want := []models.Course{{ID: "1"}, {ID: "3"}}
	if !slices.Equal(got, want) {
		t.Errorf("Remove(2) = %+v, want %+v", got, want)
	}

	if got = l.Remove("missing"); len(got) != 2 {
		t.Errorf("Remove(missing) left %d courses, want 2", len(got))
	}
}

func TestRemoveLastEmptiesList(t *testing.T) {
	l := NewList(Sequence())
	l.Add()

	if got := l.Remove("1"); len(got) != 0 {
		t.Errorf("Remove(1) = %+v, want empty", got)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestSnapshotsDoNotAlias(t *testing.T) {
	l := NewList(Sequence())
	snap := l.Add()
	snap[0].Name = "mutated"

	if name := l.Courses()[0].Name; name != "" {
		t.Errorf("internal name = %q, want empty", name)
	}
}
