package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/gpacalc/internal/api"
	"github.com/mmynk/gpacalc/internal/metrics"
	"github.com/mmynk/gpacalc/internal/visits"
)

// Ensure VisitService implements api.VisitServiceHandler
var _ api.VisitServiceHandler = (*VisitService)(nil)

// VisitService implements the Connect VisitService.
type VisitService struct {
	counter *visits.Fallback
	backend string
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewVisitService creates a VisitService. backend labels metrics and logs;
// timeout bounds each round trip to the counter backend.
func NewVisitService(counter visits.Counter, backend string, timeout time.Duration, m *metrics.Metrics) *VisitService {
	return &VisitService{
		counter: visits.NewFallback(counter),
		backend: backend,
		timeout: timeout,
		metrics: m,
	}
}

// RecordVisit counts one visit. It never fails: when the backend is down the
// response carries a local count and Fallback is set.
func (s *VisitService) RecordVisit(ctx context.Context, req *connect.Request[api.RecordVisitRequest]) (*connect.Response[api.RecordVisitResponse], error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	visit := s.counter.Record(ctx)
	if s.metrics != nil {
		s.metrics.Visits.WithLabelValues(s.backend, strconv.FormatBool(visit.Fallback)).Inc()
	}
	slog.Debug("Visit recorded", "backend", s.backend, "visits", visit.Count, "fallback", visit.Fallback)

	return connect.NewResponse(&api.RecordVisitResponse{
		Visits:   visit.Count,
		Fallback: visit.Fallback,
	}), nil
}
