// Package followup maps appointments to their post-visit outreach messages
// and advances them through the outreach stages.
package followup

import (
	"fmt"

	"github.com/sumanachary99/dentalclinic/internal/appointments"
	"github.com/sumanachary99/dentalclinic/internal/clinic"
	"github.com/sumanachary99/dentalclinic/internal/messaging"
	"github.com/sumanachary99/dentalclinic/internal/observability/metrics"
	"github.com/sumanachary99/dentalclinic/pkg/logging"
)

// SelectTemplate picks the outreach template for an appointment. A no-show
// always gets the reschedule message regardless of stage; otherwise the stage
// on the record drives the choice, defaulting to the Day-7 template for any
// unrecognized stage. Deterministic: no elapsed-time computation here.
func SelectTemplate(appt *appointments.Appointment) string {
	if appt.Status == appointments.StatusNoShow {
		return messaging.TemplateNoShowReschedule
	}
	switch appt.FollowUpStage {
	case appointments.StageDay1:
		return messaging.TemplateFollowUpDay1
	case appointments.StageDay3:
		return messaging.TemplateFollowUpDay3
	default:
		return messaging.TemplateFollowUpDay7
	}
}

// FollowUp is a prepared outbound message, ready to hand to the deep-link
// opener.
type FollowUp struct {
	TemplateKey string `json:"templateKey"`
	To          string `json:"to"` // international phone, country code included
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
}

// Engine builds follow-up messages for the dashboard.
type Engine struct {
	profile     clinic.Profile
	countryCode string
	logger      *logging.Logger
	metrics     *metrics.BookingMetrics
}

// NewEngine creates a follow-up engine.
func NewEngine(profile clinic.Profile, countryCode string, logger *logging.Logger, m *metrics.BookingMetrics) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	if countryCode == "" {
		countryCode = "91"
	}
	return &Engine{profile: profile, countryCode: countryCode, logger: logger, metrics: m}
}

// Build selects and fills the right template for the appointment and wraps it
// in a WhatsApp deep link addressed to the patient.
func (e *Engine) Build(appt *appointments.Appointment) (*FollowUp, error) {
	return e.BuildTemplate(appt, SelectTemplate(appt))
}

// BuildTemplate fills a specific template for the appointment. Used by the
// dashboard's reminder buttons, which pick the template themselves.
func (e *Engine) BuildTemplate(appt *appointments.Appointment, key string) (*FollowUp, error) {
	message, err := messaging.Fill(key, map[string]string{
		"name":    appt.PatientName,
		"clinic":  e.profile.Name,
		"service": appt.ServiceType,
		"phone":   e.profile.Phone,
		"date":    appt.AppointmentDate,
		"time":    appt.AppointmentTime,
		"address": e.profile.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("followup: build %s: %w", key, err)
	}

	to := messaging.NormalizeWithCountryCode(appt.PhoneNumber, e.countryCode)
	e.metrics.ObserveFollowUpSent(key)
	e.logger.Info("follow-up prepared", "id", appt.ID, "template", key)

	return &FollowUp{
		TemplateKey: key,
		To:          to,
		Message:     message,
		WhatsAppURL: messaging.WALink(to, message),
	}, nil
}

// Stats summarizes one loaded appointment set. Recomputed on every load.
type Stats struct {
	Total   int `json:"total"`
	Booked  int `json:"booked"`
	Visited int `json:"visited"`
	NoShow  int `json:"noShow"`
}

// ComputeStats counts statuses across the given set.
func ComputeStats(appts []appointments.Appointment) Stats {
	s := Stats{Total: len(appts)}
	for _, a := range appts {
		switch a.Status {
		case appointments.StatusBooked:
			s.Booked++
		case appointments.StatusVisited:
			s.Visited++
		case appointments.StatusNoShow:
			s.NoShow++
		}
	}
	return s
}
