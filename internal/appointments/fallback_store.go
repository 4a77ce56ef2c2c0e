package appointments

import (
	"context"
	"errors"

	"github.com/sumanachary99/dentalclinic/internal/observability/metrics"
	"github.com/sumanachary99/dentalclinic/pkg/logging"
)

// FallbackStore wraps a primary store with a local fallback. Transport
// failures against the primary are logged as warnings and served from the
// fallback; they never reach the caller. Writes that land in the fallback
// stay there (last write wins, no reconciliation).
//
// The fallback decision lives here, once, rather than at every call site.
type FallbackStore struct {
	primary  Store
	fallback Store
	logger   *logging.Logger
	metrics  *metrics.BookingMetrics
}

// NewFallbackStore composes primary and fallback stores.
func NewFallbackStore(primary, fallback Store, logger *logging.Logger, m *metrics.BookingMetrics) *FallbackStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &FallbackStore{primary: primary, fallback: fallback, logger: logger, metrics: m}
}

// Add writes through the primary, degrading to the fallback on failure. The
// record is mirrored into the fallback either way so dashboard reads survive
// a later primary outage.
func (s *FallbackStore) Add(ctx context.Context, appt *Appointment) error {
	if err := s.primary.Add(ctx, appt); err != nil {
		s.logger.Warn("primary store add failed, using fallback", "id", appt.ID, "error", err)
		s.metrics.ObserveFallback("add")
		return s.fallback.Add(ctx, appt)
	}
	if err := s.fallback.Add(ctx, appt); err != nil {
		s.logger.Warn("fallback mirror failed", "id", appt.ID, "error", err)
	}
	return nil
}

// List reads from the primary, degrading to the fallback on failure.
func (s *FallbackStore) List(ctx context.Context, date string) ([]Appointment, error) {
	appts, err := s.primary.List(ctx, date)
	if err != nil {
		s.logger.Warn("primary store list failed, using fallback", "date", date, "error", err)
		s.metrics.ObserveFallback("list")
		return s.fallback.List(ctx, date)
	}
	return appts, nil
}

// UpdateStatus writes through the primary, degrading to the fallback on
// transport failure. A NotFound from the primary is a real answer, not a
// transport failure, and is returned as-is.
func (s *FallbackStore) UpdateStatus(ctx context.Context, id string, status Status, stage Stage) (*Appointment, error) {
	appt, err := s.primary.UpdateStatus(ctx, id, status, stage)
	if err == nil {
		if _, ferr := s.fallback.UpdateStatus(ctx, id, status, stage); ferr != nil && !errors.Is(ferr, ErrNotFound) {
			s.logger.Warn("fallback mirror update failed", "id", id, "error", ferr)
		}
		return appt, nil
	}
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	s.logger.Warn("primary store update failed, using fallback", "id", id, "error", err)
	s.metrics.ObserveFallback("updateStatus")
	return s.fallback.UpdateStatus(ctx, id, status, stage)
}
