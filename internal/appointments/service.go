package appointments

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sumanachary99/dentalclinic/internal/observability/metrics"
	"github.com/sumanachary99/dentalclinic/pkg/logging"
)

var apptTracer = otel.Tracer("dentalclinic.internal.appointments")

// ValidationError carries the aggregated field errors of a rejected form.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("appointment form failed validation on %d field(s)", len(e.Fields))
}

// Service owns the appointment write path: validation, identity, defaults.
type Service struct {
	store   Store
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
	now     func() time.Time
}

// NewService constructs an appointment service.
func NewService(store Store, logger *logging.Logger, m *metrics.BookingMetrics) *Service {
	if store == nil {
		panic("appointments: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, logger: logger, metrics: m, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create validates the request, assigns an ID and initial lifecycle values,
// and persists the appointment. A rejected form returns *ValidationError.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Appointment, error) {
	ctx, span := apptTracer.Start(ctx, "appointments.create", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	result := ValidateForm(req, s.now())
	if !result.Valid {
		return nil, &ValidationError{Fields: result.Errors}
	}

	appt := &Appointment{
		ID:              NewID(),
		PatientName:     req.PatientName,
		PhoneNumber:     StripNonDigits(req.PhoneNumber),
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		ServiceType:     req.ServiceType,
		Status:          StatusBooked,
		FollowUpStage:   StageNone,
		Notes:           req.Notes,
		CreatedAt:       s.now().UTC(),
	}
	span.SetAttributes(
		attribute.String("dentalclinic.appointment_id", appt.ID),
		attribute.String("dentalclinic.service", appt.ServiceType),
	)

	if err := s.store.Add(ctx, appt); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("appointments: create: %w", err)
	}

	s.metrics.ObserveBookingCreated()
	s.logger.Info("appointment created",
		"id", appt.ID,
		"date", appt.AppointmentDate,
		"time", appt.AppointmentTime,
		"service", appt.ServiceType,
	)
	return appt, nil
}

// List fetches appointments for a date ("" means all).
func (s *Service) List(ctx context.Context, date string) ([]Appointment, error) {
	ctx, span := apptTracer.Start(ctx, "appointments.list")
	defer span.End()
	appts, err := s.store.List(ctx, date)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("appointments: list: %w", err)
	}
	return appts, nil
}

// SetStatus updates the workflow status (and optionally the follow-up stage)
// of one appointment. Unknown enum values are rejected before touching the
// store so a bypassing caller cannot persist invalid data.
func (s *Service) SetStatus(ctx context.Context, id string, status Status, stage Stage) (*Appointment, error) {
	ctx, span := apptTracer.Start(ctx, "appointments.set_status")
	defer span.End()

	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if stage != "" && !stage.Valid() {
		return nil, ErrInvalidStage
	}

	appt, err := s.store.UpdateStatus(ctx, id, status, stage)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.logger.Info("appointment status updated", "id", id, "status", status, "stage", stage)
	return appt, nil
}
