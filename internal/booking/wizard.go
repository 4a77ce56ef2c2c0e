// Package booking drives the multi-step appointment wizard.
package booking

import (
	"time"

	"github.com/sumanachary99/dentalclinic/internal/appointments"
	"github.com/sumanachary99/dentalclinic/internal/clinic"
)

// Step is one state of the linear wizard.
type Step int

const (
	StepService Step = iota
	StepDateTime
	StepDetails
	StepConfirmed
)

// String returns the step's wire name.
func (s Step) String() string {
	switch s {
	case StepService:
		return "service"
	case StepDateTime:
		return "datetime"
	case StepDetails:
		return "details"
	case StepConfirmed:
		return "confirmed"
	}
	return "unknown"
}

// Wizard is the stateful, step-gated booking form. Field values survive
// back-navigation; errors are keyed per field with at most one message each
// and replaced wholesale on every revalidation.
type Wizard struct {
	Step    Step                     `json:"step"`
	Form    appointments.CreateRequest `json:"form"`
	Errors  appointments.FieldErrors `json:"errors"`
	Created *appointments.Appointment `json:"created,omitempty"`
}

// New starts a wizard at the service-selection step.
func New() *Wizard {
	return &Wizard{Step: StepService, Errors: appointments.FieldErrors{}}
}

// NewWithService starts a wizard with a pre-selected service (carried from an
// external link), short-circuiting straight into the date/time step exactly as
// if the first transition had already succeeded. An unknown service ID starts
// a normal wizard.
func NewWithService(serviceID string) *Wizard {
	w := New()
	svc, ok := clinic.ServiceByID(serviceID)
	if !ok {
		return w
	}
	w.Form.ServiceType = svc.Name
	w.Step = StepDateTime
	return w
}

// SetService records the chosen service by display name.
func (w *Wizard) SetService(name string) {
	w.Form.ServiceType = name
}

// SetDateTime records the chosen date (YYYY-MM-DD) and slot label.
func (w *Wizard) SetDateTime(date, slot string) {
	w.Form.AppointmentDate = date
	w.Form.AppointmentTime = slot
}

// SetDetails records the patient details collected on the final step.
func (w *Wizard) SetDetails(name, phone, notes string) {
	w.Form.PatientName = name
	w.Form.PhoneNumber = phone
	w.Form.Notes = notes
}

// Next validates the current step's gate and advances on success. On failure
// the wizard stays put and Errors holds the violated fields. Advancing clears
// the prior step's errors unconditionally. The details step is gated by
// Submit, not Next.
func (w *Wizard) Next(now time.Time) bool {
	switch w.Step {
	case StepService:
		if msg := appointments.ValidateService(w.Form.ServiceType); msg != "" {
			w.Errors = appointments.FieldErrors{"serviceType": msg}
			return false
		}
		w.Errors = appointments.FieldErrors{}
		w.Step = StepDateTime
		return true
	case StepDateTime:
		// Date is checked first; a time error only surfaces once the date passes.
		if msg := appointments.ValidateDate(w.Form.AppointmentDate, now); msg != "" {
			w.Errors = appointments.FieldErrors{"appointmentDate": msg}
			return false
		}
		if msg := appointments.ValidateTime(w.Form.AppointmentTime); msg != "" {
			w.Errors = appointments.FieldErrors{"appointmentTime": msg}
			return false
		}
		w.Errors = appointments.FieldErrors{}
		w.Step = StepDetails
		return true
	}
	return false
}

// Back steps backward one state, clearing current-step errors and keeping all
// entered values. It is a no-op on the first step and after confirmation.
func (w *Wizard) Back() {
	if w.Step == StepService || w.Step == StepConfirmed {
		return
	}
	w.Errors = appointments.FieldErrors{}
	w.Step--
}

// Validate runs the full-form gate guarding the final transition. On failure
// every violated field lands in Errors at once.
func (w *Wizard) Validate(now time.Time) bool {
	if w.Step != StepDetails {
		return false
	}
	result := appointments.ValidateForm(w.Form, now)
	if !result.Valid {
		w.Errors = result.Errors
		return false
	}
	w.Errors = appointments.FieldErrors{}
	return true
}

// Confirm moves the wizard to its terminal state after a successful persist.
func (w *Wizard) Confirm(appt *appointments.Appointment) {
	w.Created = appt
	w.Errors = appointments.FieldErrors{}
	w.Step = StepConfirmed
}
