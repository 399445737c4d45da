package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/gpacalc/internal/api"
	"github.com/mmynk/gpacalc/internal/calculator"
	"github.com/mmynk/gpacalc/internal/courses"
	"github.com/mmynk/gpacalc/internal/metrics"
	"github.com/mmynk/gpacalc/internal/models"
	"github.com/mmynk/gpacalc/internal/session"
)

// ErrLastCourse is returned when removing the only course of a form.
var ErrLastCourse = errors.New("cannot remove the last course")

// Ensure GPAService implements api.GPAServiceHandler
var _ api.GPAServiceHandler = (*GPAService)(nil)

// GPAService implements the Connect GPAService over in-memory form sessions.
type GPAService struct {
	sessions *session.Registry
	metrics  *metrics.Metrics
}

// NewGPAService creates a new GPAService backed by the given session registry.
func NewGPAService(sessions *session.Registry, m *metrics.Metrics) *GPAService {
	return &GPAService{sessions: sessions, metrics: m}
}

// CreateSession starts a form seeded with one blank course.
func (s *GPAService) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.SessionResponse], error) {
	view := s.sessions.Create()
	slog.Info("Session created", "session_id", view.ID)
	return sessionResponse(view), nil
}

// GetSession returns the current state of a form.
func (s *GPAService) GetSession(ctx context.Context, req *connect.Request[api.GetSessionRequest]) (*connect.Response[api.SessionResponse], error) {
	return s.do(req.Msg.SessionID, func(sess *session.Session) (session.View, error) {
		return sess.View(), nil
	})
}

// AddCourse appends a blank course.
func (s *GPAService) AddCourse(ctx context.Context, req *connect.Request[api.AddCourseRequest]) (*connect.Response[api.SessionResponse], error) {
	return s.do(req.Msg.SessionID, func(sess *session.Session) (session.View, error) {
		return sess.Add(), nil
	})
}

// RemoveCourse deletes a course. The last remaining course cannot be removed.
func (s *GPAService) RemoveCourse(ctx context.Context, req *connect.Request[api.RemoveCourseRequest]) (*connect.Response[api.SessionResponse], error) {
	return s.do(req.Msg.SessionID, func(sess *session.Session) (session.View, error) {
		if !sess.CanRemove() {
			return session.View{}, connect.NewError(connect.CodeFailedPrecondition, ErrLastCourse)
		}
		return sess.Remove(req.Msg.CourseID), nil
	})
}

// UpdateCourse edits one field of a course.
func (s *GPAService) UpdateCourse(ctx context.Context, req *connect.Request[api.UpdateCourseRequest]) (*connect.Response[api.SessionResponse], error) {
	field, err := models.ParseField(req.Msg.Field)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: %q", courses.ErrUnknownField, req.Msg.Field))
	}

	return s.do(req.Msg.SessionID, func(sess *session.Session) (session.View, error) {
		slog.Debug("Updating course",
			"session_id", req.Msg.SessionID,
			"course_id", req.Msg.CourseID,
			"field", field,
		)
		return sess.Update(req.Msg.CourseID, field, req.Msg.Value)
	})
}

// Calculate computes the GPA of the form's courses. A validation failure is
// part of the returned session state, not an RPC error.
func (s *GPAService) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.SessionResponse], error) {
	return s.do(req.Msg.SessionID, func(sess *session.Session) (session.View, error) {
		view, err := sess.Calculate()
		if err != nil {
			return view, err
		}
		if view.Error != nil {
			s.recordOutcome(string(view.Error.Kind))
			slog.Info("GPA validation failed",
				"session_id", view.ID,
				"kind", view.Error.Kind,
				"position", view.Error.Position,
			)
		} else {
			s.recordOutcome(metrics.OutcomeOK)
			slog.Info("GPA calculated", "session_id", view.ID, "gpa", view.Result, "courses", len(view.Courses))
		}
		return view, nil
	})
}

// CalculateGPA computes a GPA for the given courses without a session.
func (s *GPAService) CalculateGPA(ctx context.Context, req *connect.Request[api.CalculateGPARequest]) (*connect.Response[api.CalculateGPAResponse], error) {
	result, err := calculator.Calculate(req.Msg.Courses)
	if err != nil {
		var verr *calculator.ValidationError
		if !errors.As(err, &verr) {
			slog.Error("CalculateGPA failed", "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		s.recordOutcome(string(verr.Kind))
		connectErr := connect.NewError(connect.CodeInvalidArgument, verr)
		connectErr.Meta().Set(api.ValidationKindKey, string(verr.Kind))
		return nil, connectErr
	}

	s.recordOutcome(metrics.OutcomeOK)
	return connect.NewResponse(&api.CalculateGPAResponse{
		GPA:           result.String(),
		QualityPoints: result.QualityPoints,
		CreditHours:   result.CreditHours,
	}), nil
}

// DeleteSession discards a form.
func (s *GPAService) DeleteSession(ctx context.Context, req *connect.Request[api.DeleteSessionRequest]) (*connect.Response[api.DeleteSessionResponse], error) {
	if !s.sessions.Delete(req.Msg.SessionID) {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("%w: %s", session.ErrNotFound, req.Msg.SessionID))
	}
	slog.Info("Session deleted", "session_id", req.Msg.SessionID)
	return connect.NewResponse(&api.DeleteSessionResponse{}), nil
}

// do runs fn against a session and maps its errors to Connect codes.
func (s *GPAService) do(sessionID string, fn func(*session.Session) (session.View, error)) (*connect.Response[api.SessionResponse], error) {
	var view session.View
	err := s.sessions.Do(sessionID, func(sess *session.Session) error {
		v, err := fn(sess)
		view = v
		return err
	})
	if err != nil {
		return nil, toConnectError(sessionID, err)
	}
	return sessionResponse(view), nil
}

func (s *GPAService) recordOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.Calculations.WithLabelValues(outcome).Inc()
	}
}

func toConnectError(sessionID string, err error) error {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return connectErr
	case errors.Is(err, session.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, fmt.Errorf("%w: %s", err, sessionID))
	case errors.Is(err, courses.ErrUnknownField):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		slog.Error("Session operation failed", "session_id", sessionID, "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}

func sessionResponse(v session.View) *connect.Response[api.SessionResponse] {
	out := api.Session{
		ID:        v.ID,
		Courses:   v.Courses,
		Result:    v.Result,
		CanRemove: v.CanRemove,
	}
	if v.Error != nil {
		out.Error = &api.ValidationError{
			Kind:     string(v.Error.Kind),
			Message:  v.Error.Message,
			Position: v.Error.Position,
			Value:    v.Error.Value,
		}
	}
	return connect.NewResponse(&api.SessionResponse{Session: out})
}
