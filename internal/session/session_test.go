package session

import (
	"errors"
	"testing"

	"github.com/mmynk/gpacalc/internal/calculator"
	"github.com/mmynk/gpacalc/internal/courses"
	"github.com/mmynk/gpacalc/internal/models"
)

func newTestSession() *Session {
	return New("s1", courses.Sequence())
}

func fill(t *testing.T, s *Session, id, gpa, credits string) {
	t.Helper()
	if _, err := s.Update(id, models.FieldGPA, gpa); err != nil {
		t.Fatalf("Update(%s, gpa) error: %v", id, err)
	}
	if _, err := s.Update(id, models.FieldCredits, credits); err != nil {
		t.Fatalf("Update(%s, credits) error: %v", id, err)
	}
}

func calculate(t *testing.T, s *Session) View {
	t.Helper()
	v, err := s.Calculate()
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}
	return v
}

func TestNewSeedsOneBlankCourse(t *testing.T) {
	v := newTestSession().View()

	if v.ID != "s1" {
		t.Errorf("ID = %q, want s1", v.ID)
	}
	if len(v.Courses) != 1 || v.Courses[0] != (models.Course{ID: "1"}) {
		t.Errorf("Courses = %+v, want one blank course with id 1", v.Courses)
	}
	if v.CanRemove {
		t.Error("CanRemove = true with a single course")
	}
	if v.Result != "" || v.Error != nil {
		t.Errorf("new session has result %q, error %+v", v.Result, v.Error)
	}
}

func TestCalculateSetsResult(t *testing.T) {
	s := newTestSession()
	fill(t, s, "1", "3.0", "3")
	s.Add()
	fill(t, s, "2", "4.0", "1")

	v := calculate(t, s)
	if v.Result != "3.25" {
		t.Errorf("Result = %q, want 3.25", v.Result)
	}
	if v.Error != nil {
		t.Errorf("Error = %+v, want nil", v.Error)
	}

	again := calculate(t, s)
	if again.Result != v.Result || again.Error != nil {
		t.Errorf("second Calculate() = %q/%+v, want %q", again.Result, again.Error, v.Result)
	}
}

func TestCalculateSetsError(t *testing.T) {
	s := newTestSession()
	fill(t, s, "1", "5", "3")

	v := calculate(t, s)
	if v.Error == nil {
		t.Fatal("Calculate() Error = nil, want InvalidGpa")
	}
	if v.Error.Kind != calculator.KindInvalidGPA {
		t.Errorf("Kind = %s, want %s", v.Error.Kind, calculator.KindInvalidGPA)
	}
	if v.Error.Position != 0 {
		t.Errorf("Position = %d, want 0", v.Error.Position)
	}
	if v.Error.Value != "5" {
		t.Errorf("Value = %q, want 5", v.Error.Value)
	}
	if v.Result != "" {
		t.Errorf("Result = %q, want empty", v.Result)
	}
	if _, ok := s.Result(); ok {
		t.Error("Result() ok = true after a validation error")
	}
}

func TestCalculateUnexpectedError(t *testing.T) {
	s := newTestSession()
	fill(t, s, "1", "4", "3")
	calculate(t, s)

	boom := errors.New("boom")
	s.calculate = func([]models.Course) (calculator.Result, error) {
		return calculator.Result{}, boom
	}

	v, err := s.Calculate()
	if !errors.Is(err, boom) {
		t.Fatalf("Calculate() error = %v, want %v", err, boom)
	}
	if v.Error != nil {
		t.Errorf("Error = %+v, want nil for a non-validation failure", v.Error)
	}
	if v.Result != "" {
		t.Errorf("Result = %q, want cleared", v.Result)
	}
}

func TestErrorReplacesResult(t *testing.T) {
	s := newTestSession()
	fill(t, s, "1", "3", "3")
	calculate(t, s)

	s.Add()
	v := calculate(t, s)
	if v.Error == nil {
		t.Fatal("Error = nil, want InvalidGpa for the blank course")
	}
	if v.Error.Kind != calculator.KindInvalidGPA || v.Error.Position != 1 {
		t.Errorf("Error = %+v, want InvalidGpa at 1", v.Error)
	}
	if v.Result != "" {
		t.Errorf("Result = %q, want empty", v.Result)
	}
}

func TestAddClearsErrorKeepsResult(t *testing.T) {
	s := newTestSession()
	fill(t, s, "1", "4", "3")
	calculate(t, s)

	v := s.Add()
	if v.Result != "4.00" {
		t.Errorf("Result after Add = %q, want 4.00", v.Result)
	}
	if !v.CanRemove {
		t.Error("CanRemove = false with two courses")
	}

	if v = calculate(t, s); v.Error == nil {
		t.Fatal("Error = nil, want one for the blank course")
	}

	v = s.Add()
	if v.Error != nil {
		t.Errorf("Error after Add = %+v, want nil", v.Error)
	}
	if v.Result != "" {
		t.Errorf("Result after Add = %q, want empty", v.Result)
	}
}

func TestUpdateClearsResultAndError(t *testing.T) {
	s := newTestSession()
	fill(t, s, "1", "4", "3")
	calculate(t, s)

	v, err := s.Update("1", models.FieldName, "CS101")
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if v.Result != "" || v.Error != nil {
		t.Errorf("after Update: result %q, error %+v, want both cleared", v.Result, v.Error)
	}

	fill(t, s, "1", "x", "3")
	calculate(t, s)
	v, err = s.Update("1", models.FieldGPA, "3")
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if v.Error != nil {
		t.Errorf("Error after Update = %+v, want nil", v.Error)
	}
}

func TestUpdateUnknownFieldKeepsState(t *testing.T) {
	s := newTestSession()
	fill(t, s, "1", "4", "3")
	calculate(t, s)

	v, err := s.Update("1", models.Field("grade"), "A")
	if !errors.Is(err, courses.ErrUnknownField) {
		t.Errorf("Update() error = %v, want ErrUnknownField", err)
	}
	if v.Result != "4.00" {
		t.Errorf("Result = %q, want 4.00", v.Result)
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name      string
		firstGPA  string
		wantError bool
	}{
		{name: "clears result", firstGPA: "4"},
		{name: "clears error", firstGPA: "5", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			fill(t, s, "1", tt.firstGPA, "3")
			s.Add()
			s.Add()
			fill(t, s, "2", "3", "3")
			fill(t, s, "3", "2", "3")

			before := calculate(t, s)
			if tt.wantError && before.Error == nil {
				t.Fatal("Calculate() Error = nil, want InvalidGpa")
			}
			if !tt.wantError && before.Result != "3.00" {
				t.Fatalf("Calculate() Result = %q, want 3.00", before.Result)
			}

			v := s.Remove("2")
			if len(v.Courses) != 2 {
				t.Fatalf("len(Courses) = %d, want 2", len(v.Courses))
			}
			for _, c := range v.Courses {
				if c.ID == "2" {
					t.Errorf("course 2 still present: %+v", v.Courses)
				}
			}
			if v.Result != "" {
				t.Errorf("Result = %q, want cleared", v.Result)
			}
			if v.Error != nil {
				t.Errorf("Error = %+v, want cleared", v.Error)
			}
		})
	}
}

func TestCalculateOnEmptyList(t *testing.T) {
	s := newTestSession()
	s.Remove("1")

	v := calculate(t, s)
	if v.Error == nil {
		t.Fatal("Error = nil, want ZeroCredits")
	}
	if v.Error.Kind != calculator.KindZeroCredits || v.Error.Position != -1 {
		t.Errorf("Error = %+v, want ZeroCredits at -1", v.Error)
	}
	if v.Error.Value != "" {
		t.Errorf("Value = %q, want empty", v.Error.Value)
	}
	if v.CanRemove {
		t.Error("CanRemove = true on an empty list")
	}
}
