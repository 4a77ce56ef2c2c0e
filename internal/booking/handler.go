package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sumanachary99/dentalclinic/internal/appointments"
	"github.com/sumanachary99/dentalclinic/internal/clinic"
	"github.com/sumanachary99/dentalclinic/internal/messaging"
	"github.com/sumanachary99/dentalclinic/internal/observability/metrics"
	"github.com/sumanachary99/dentalclinic/pkg/logging"
)

// Handler exposes the booking wizard over HTTP. Each response carries the
// wizard snapshot so the page can render the current step and its errors.
type Handler struct {
	sessions SessionStore
	appts    *appointments.Service
	profile  clinic.Profile
	logger   *logging.Logger
	metrics  *metrics.BookingMetrics
	now      func() time.Time
}

// NewHandler creates a booking handler.
func NewHandler(sessions SessionStore, appts *appointments.Service, profile clinic.Profile, logger *logging.Logger, m *metrics.BookingMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		sessions: sessions,
		appts:    appts,
		profile:  profile,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// Routes mounts the wizard endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/catalog", h.Catalog)
	r.Post("/start", h.Start)
	r.Get("/{sessionID}", h.Snapshot)
	r.Post("/{sessionID}/service", h.SubmitService)
	r.Post("/{sessionID}/datetime", h.SubmitDateTime)
	r.Post("/{sessionID}/details", h.SubmitDetails)
	r.Post("/{sessionID}/back", h.GoBack)
	return r
}

type wizardResponse struct {
	SessionID string                     `json:"sessionId"`
	Step      string                     `json:"step"`
	Form      appointments.CreateRequest `json:"form"`
	Errors    appointments.FieldErrors   `json:"errors"`

	// Set once the wizard reaches its terminal state.
	Appointment *appointments.Appointment `json:"appointment,omitempty"`
	Message     string                    `json:"message,omitempty"`
	WhatsAppURL string                    `json:"whatsappUrl,omitempty"`
}

func (h *Handler) respond(w http.ResponseWriter, status int, sessionID string, wiz *Wizard, confirm *confirmation) {
	resp := wizardResponse{
		SessionID: sessionID,
		Step:      wiz.Step.String(),
		Form:      wiz.Form,
		Errors:    wiz.Errors,
	}
	if confirm != nil {
		resp.Appointment = wiz.Created
		resp.Message = confirm.message
		resp.WhatsAppURL = confirm.link
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

type confirmation struct {
	message string
	link    string
}

// Catalog returns the bookable services and time slots for the pickers.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"services":  clinic.Services,
		"timeSlots": clinic.TimeSlots,
	})
}

// Start opens a new wizard session. An optional service query parameter
// (service ID from an external link) pre-selects the service and skips the
// first step.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var wiz *Wizard
	if serviceID := r.URL.Query().Get("service"); serviceID != "" {
		wiz = NewWithService(serviceID)
	} else {
		wiz = New()
	}

	sessionID := uuid.NewString()
	if err := h.sessions.Put(r.Context(), sessionID, wiz); err != nil {
		h.logger.Error("failed to store wizard session", "error", err)
		http.Error(w, "failed to start booking", http.StatusInternalServerError)
		return
	}
	h.logger.Info("booking wizard started", "session_id", sessionID, "step", wiz.Step.String())
	h.respond(w, http.StatusCreated, sessionID, wiz, nil)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (string, *Wizard, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	wiz, err := h.sessions.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "booking session not found or expired", http.StatusNotFound)
		} else {
			h.logger.Error("failed to load wizard session", "session_id", sessionID, "error", err)
			http.Error(w, "failed to load booking", http.StatusInternalServerError)
		}
		return "", nil, false
	}
	return sessionID, wiz, true
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, sessionID string, wiz *Wizard) bool {
	if err := h.sessions.Put(r.Context(), sessionID, wiz); err != nil {
		h.logger.Error("failed to store wizard session", "session_id", sessionID, "error", err)
		http.Error(w, "failed to save booking", http.StatusInternalServerError)
		return false
	}
	return true
}

// Snapshot returns the current wizard state.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	sessionID, wiz, ok := h.load(w, r)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK, sessionID, wiz, nil)
}

// SubmitService records the service choice and tries to advance.
func (h *Handler) SubmitService(w http.ResponseWriter, r *http.Request) {
	sessionID, wiz, ok := h.load(w, r)
	if !ok {
		return
	}
	var req struct {
		ServiceType string `json:"serviceType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	wiz.SetService(req.ServiceType)
	advanced := wiz.Next(h.now())
	if !advanced {
		h.metrics.ObserveWizardRejection(StepService.String())
	}
	if !h.save(w, r, sessionID, wiz) {
		return
	}
	status := http.StatusOK
	if !advanced {
		status = http.StatusUnprocessableEntity
	}
	h.respond(w, status, sessionID, wiz, nil)
}

// SubmitDateTime records the date and slot and tries to advance.
func (h *Handler) SubmitDateTime(w http.ResponseWriter, r *http.Request) {
	sessionID, wiz, ok := h.load(w, r)
	if !ok {
		return
	}
	var req struct {
		AppointmentDate string `json:"appointmentDate"`
		AppointmentTime string `json:"appointmentTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	wiz.SetDateTime(req.AppointmentDate, req.AppointmentTime)
	advanced := wiz.Next(h.now())
	if !advanced {
		h.metrics.ObserveWizardRejection(StepDateTime.String())
	}
	if !h.save(w, r, sessionID, wiz) {
		return
	}
	status := http.StatusOK
	if !advanced {
		status = http.StatusUnprocessableEntity
	}
	h.respond(w, status, sessionID, wiz, nil)
}

// SubmitDetails records the patient details, validates the whole form and, on
// success, persists the appointment and returns the pre-filled confirmation
// message plus its WhatsApp link. Sending is a separate, user-triggered
// action: this endpoint only builds the link.
func (h *Handler) SubmitDetails(w http.ResponseWriter, r *http.Request) {
	sessionID, wiz, ok := h.load(w, r)
	if !ok {
		return
	}
	var req struct {
		PatientName string `json:"patientName"`
		PhoneNumber string `json:"phoneNumber"`
		Notes       string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	wiz.SetDetails(req.PatientName, req.PhoneNumber, req.Notes)
	if !wiz.Validate(h.now()) {
		h.metrics.ObserveWizardRejection(StepDetails.String())
		if !h.save(w, r, sessionID, wiz) {
			return
		}
		h.respond(w, http.StatusUnprocessableEntity, sessionID, wiz, nil)
		return
	}

	appt, err := h.appts.Create(r.Context(), wiz.Form)
	if err != nil {
		var verr *appointments.ValidationError
		if errors.As(err, &verr) {
			wiz.Errors = verr.Fields
			h.save(w, r, sessionID, wiz)
			h.respond(w, http.StatusUnprocessableEntity, sessionID, wiz, nil)
			return
		}
		h.logger.Error("failed to persist appointment", "session_id", sessionID, "error", err)
		http.Error(w, "failed to book appointment", http.StatusInternalServerError)
		return
	}

	wiz.Confirm(appt)
	confirm, err := h.buildConfirmation(appt)
	if err != nil {
		h.logger.Error("failed to build confirmation message", "id", appt.ID, "error", err)
		http.Error(w, "failed to build confirmation", http.StatusInternalServerError)
		return
	}
	if !h.save(w, r, sessionID, wiz) {
		return
	}
	h.respond(w, http.StatusCreated, sessionID, wiz, confirm)
}

// GoBack steps the wizard backward one state.
func (h *Handler) GoBack(w http.ResponseWriter, r *http.Request) {
	sessionID, wiz, ok := h.load(w, r)
	if !ok {
		return
	}
	wiz.Back()
	if !h.save(w, r, sessionID, wiz) {
		return
	}
	h.respond(w, http.StatusOK, sessionID, wiz, nil)
}

func (h *Handler) buildConfirmation(appt *appointments.Appointment) (*confirmation, error) {
	message, err := messaging.Fill(messaging.TemplateBookingConfirm, map[string]string{
		"name":    appt.PatientName,
		"clinic":  h.profile.Name,
		"date":    appt.AppointmentDate,
		"time":    appt.AppointmentTime,
		"service": appt.ServiceType,
		"address": h.profile.Address,
		"phone":   h.profile.Phone,
	})
	if err != nil {
		return nil, err
	}
	// Confirmation goes to the clinic's own WhatsApp inbox, as on the site.
	return &confirmation{
		message: message,
		link:    messaging.WALink(h.profile.WhatsAppNumber, message),
	}, nil
}
