package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sumanachary99/dentalclinic/internal/appointments"
	"github.com/sumanachary99/dentalclinic/internal/auth"
	"github.com/sumanachary99/dentalclinic/internal/clinic"
	"github.com/sumanachary99/dentalclinic/internal/followup"
)

func newTestHandler(t *testing.T) (*Handler, *appointments.MemoryStore) {
	t.Helper()
	store := appointments.NewMemoryStore()
	appts := appointments.NewService(store, nil, nil)
	profile := clinic.Profile{Name: "Smile Care Dental Clinic", WhatsAppNumber: "919812345678"}
	engine := followup.NewEngine(profile, "91", nil, nil)
	sessions := auth.NewSessions(auth.NewStaticPIN("1234"), "test-secret", time.Hour)
	return NewHandler(appts, engine, sessions, nil), store
}

func seed(t *testing.T, store *appointments.MemoryStore, name, phone, date string, status appointments.Status, stage appointments.Stage) *appointments.Appointment {
	t.Helper()
	appt := &appointments.Appointment{
		ID:              appointments.NewID(),
		PatientName:     name,
		PhoneNumber:     phone,
		AppointmentDate: date,
		AppointmentTime: "10:00 AM",
		ServiceType:     "Teeth Cleaning",
		Status:          status,
		FollowUpStage:   stage,
		CreatedAt:       time.Now().UTC(),
	}
	if err := store.Add(context.Background(), appt); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return appt
}

func testRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Get("/appointments", h.List)
	r.Patch("/appointments/{id}/status", h.SetStatus)
	r.Get("/stats", h.Stats)
	r.Post("/appointments/{id}/followup", h.SendFollowUp)
	return r
}

func TestLogin(t *testing.T) {
	h, _ := newTestHandler(t)
	r := testRouter(h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"pin":"1234"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["token"] == "" {
		t.Fatal("expected a session token")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"pin":"0000"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong PIN, got %d", rec.Code)
	}
}

func TestListWithSearch(t *testing.T) {
	h, store := newTestHandler(t)
	r := testRouter(h)

	seed(t, store, "Priya Sharma", "9876543210", "2025-06-20", appointments.StatusBooked, appointments.StageNone)
	seed(t, store, "Rahul Verma", "9123456789", "2025-06-20", appointments.StatusVisited, appointments.StageDay1)
	seed(t, store, "Anita Rao", "9988776655", "2025-06-21", appointments.StatusBooked, appointments.StageNone)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments?date=2025-06-20", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp ListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Appointments) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(resp.Appointments))
	}
	if resp.Stats.Total != 2 || resp.Stats.Booked != 1 || resp.Stats.Visited != 1 {
		t.Fatalf("unexpected stats: %+v", resp.Stats)
	}

	// Case-insensitive name search.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments?date=2025-06-20&q=priya", nil))
	resp = ListResponse{}
	json.NewDecoder(rec.Body).Decode(&resp)
	if len(resp.Appointments) != 1 || resp.Appointments[0].PatientName != "Priya Sharma" {
		t.Fatalf("name search failed: %+v", resp.Appointments)
	}
	// Stats describe the full date, not the narrowed list.
	if resp.Stats.Total != 2 {
		t.Fatalf("stats should ignore search filter, got %+v", resp.Stats)
	}

	// Phone substring search.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments?date=2025-06-20&q=912345", nil))
	resp = ListResponse{}
	json.NewDecoder(rec.Body).Decode(&resp)
	if len(resp.Appointments) != 1 || resp.Appointments[0].PatientName != "Rahul Verma" {
		t.Fatalf("phone search failed: %+v", resp.Appointments)
	}

	// No match yields an empty array, not null.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments?date=2025-06-20&q=nobody", nil))
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"appointments":[]`)) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestSetStatus(t *testing.T) {
	h, store := newTestHandler(t)
	r := testRouter(h)

	appt := seed(t, store, "Priya Sharma", "9876543210", "2025-06-20", appointments.StatusBooked, appointments.StageNone)

	rec := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"status":"Visited","followUpStage":"Day-1"}`)
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/appointments/"+appt.ID+"/status", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated appointments.Appointment
	json.NewDecoder(rec.Body).Decode(&updated)
	if updated.Status != appointments.StatusVisited || updated.FollowUpStage != appointments.StageDay1 {
		t.Fatalf("unexpected update: %+v", updated)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/appointments/APT-MISSING/status",
		bytes.NewBufferString(`{"status":"Visited"}`)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/appointments/"+appt.ID+"/status",
		bytes.NewBufferString(`{"status":"Teleported"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d", rec.Code)
	}
}

func TestStats(t *testing.T) {
	h, store := newTestHandler(t)
	r := testRouter(h)

	seed(t, store, "Priya Sharma", "9876543210", "2025-06-20", appointments.StatusVisited, appointments.StageNone)
	seed(t, store, "Rahul Verma", "9123456789", "2025-06-20", appointments.StatusNoShow, appointments.StageNone)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats?date=2025-06-20", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var stats followup.Stats
	json.NewDecoder(rec.Body).Decode(&stats)
	if stats.Total != 2 || stats.Visited != 1 || stats.NoShow != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestSendFollowUp(t *testing.T) {
	h, store := newTestHandler(t)
	r := testRouter(h)

	appt := seed(t, store, "Priya Sharma", "9876543210", "2025-06-20", appointments.StatusNoShow, appointments.StageNone)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/"+appt.ID+"/followup?date=2025-06-20", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var fu followup.FollowUp
	json.NewDecoder(rec.Body).Decode(&fu)
	if fu.TemplateKey == "" || fu.WhatsAppURL == "" {
		t.Fatalf("incomplete follow-up: %+v", fu)
	}
	if fu.To != "919876543210" {
		t.Fatalf("expected normalized number, got %q", fu.To)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/APT-MISSING/followup?date=2025-06-20", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSendFollowUpTemplateOverride(t *testing.T) {
	h, store := newTestHandler(t)
	r := testRouter(h)

	appt := seed(t, store, "Priya Sharma", "9876543210", "2025-06-20", appointments.StatusBooked, appointments.StageNone)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/"+appt.ID+"/followup?date=2025-06-20",
		bytes.NewBufferString(`{"template":"REMINDER_24HR"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var fu followup.FollowUp
	json.NewDecoder(rec.Body).Decode(&fu)
	if fu.TemplateKey != "REMINDER_24HR" {
		t.Fatalf("expected overridden template, got %q", fu.TemplateKey)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/"+appt.ID+"/followup?date=2025-06-20",
		bytes.NewBufferString(`{"template":"NOT_A_TEMPLATE"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown template, got %d", rec.Code)
	}
}
