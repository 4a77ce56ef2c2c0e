package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sumanachary99/dentalclinic/internal/appointments"
	"github.com/sumanachary99/dentalclinic/internal/clinic"
)

func testProfile() clinic.Profile {
	return clinic.Profile{
		Name:           "Suman Dental Clinic",
		Phone:          "9110443004",
		WhatsAppNumber: "919110443004",
		Address:        "MG Road, Bengaluru",
	}
}

func handlerFixture(t *testing.T) (*Handler, *appointments.MemoryStore) {
	t.Helper()
	store := appointments.NewMemoryStore()
	svc := appointments.NewService(store, nil, nil).WithNow(func() time.Time {
		return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	})
	h := NewHandler(NewMemorySessionStore(time.Minute), svc, testProfile(), nil, nil)
	h.now = func() time.Time { return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC) }
	return h, store
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, wizardResponse) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp wizardResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	return rec, resp
}

func TestHandlerFullFlow(t *testing.T) {
	h, _ := handlerFixture(t)
	router := h.Routes()

	rec, resp := doJSON(t, router, http.MethodPost, "/start", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("start status = %d", rec.Code)
	}
	if resp.Step != "service" || resp.SessionID == "" {
		t.Fatalf("unexpected start response %+v", resp)
	}
	sid := resp.SessionID

	// Step 1 without a service: rejected with exactly the serviceType error.
	rec, resp = doJSON(t, router, http.MethodPost, "/"+sid+"/service", `{"serviceType":""}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if resp.Step != "service" || len(resp.Errors) != 1 || resp.Errors["serviceType"] == "" {
		t.Fatalf("unexpected rejection %+v", resp)
	}

	rec, resp = doJSON(t, router, http.MethodPost, "/"+sid+"/service", `{"serviceType":"Teeth Cleaning"}`)
	if rec.Code != http.StatusOK || resp.Step != "datetime" {
		t.Fatalf("service step failed: %d %+v", rec.Code, resp)
	}
	if len(resp.Errors) != 0 {
		t.Fatalf("advancing should clear errors: %+v", resp.Errors)
	}

	rec, resp = doJSON(t, router, http.MethodPost, "/"+sid+"/datetime", `{"appointmentDate":"2025-06-16","appointmentTime":"10:00 AM"}`)
	if rec.Code != http.StatusOK || resp.Step != "details" {
		t.Fatalf("datetime step failed: %d %+v", rec.Code, resp)
	}

	rec, resp = doJSON(t, router, http.MethodPost, "/"+sid+"/details", `{"patientName":"Asha Rao","phoneNumber":"9876543210","notes":"first visit"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("details step failed: %d %s", rec.Code, rec.Body.String())
	}
	if resp.Step != "confirmed" || resp.Appointment == nil {
		t.Fatalf("expected confirmed wizard, got %+v", resp)
	}
	if resp.Appointment.Status != appointments.StatusBooked {
		t.Errorf("new appointment status = %s", resp.Appointment.Status)
	}
	if !strings.Contains(resp.Message, "Asha Rao") || !strings.Contains(resp.Message, "Teeth Cleaning") {
		t.Errorf("confirmation message not filled: %q", resp.Message)
	}
	if !strings.HasPrefix(resp.WhatsAppURL, "https://wa.me/919110443004?text=") {
		t.Errorf("unexpected WhatsApp link %q", resp.WhatsAppURL)
	}
}

func TestHandlerDetailsAggregatesErrors(t *testing.T) {
	h, store := handlerFixture(t)
	router := h.Routes()

	_, resp := doJSON(t, router, http.MethodPost, "/start?service=teeth-cleaning", "")
	sid := resp.SessionID
	if resp.Step != "datetime" {
		t.Fatalf("preselected service should start at datetime, got %s", resp.Step)
	}

	doJSON(t, router, http.MethodPost, "/"+sid+"/datetime", `{"appointmentDate":"2025-06-16","appointmentTime":"10:00 AM"}`)

	rec, resp := doJSON(t, router, http.MethodPost, "/"+sid+"/details", `{"patientName":"A","phoneNumber":"12"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if resp.Errors["patientName"] == "" || resp.Errors["phoneNumber"] == "" {
		t.Fatalf("expected both errors at once, got %+v", resp.Errors)
	}

	// Nothing persisted on failure.
	appts, _ := store.List(context.Background(), "")
	if len(appts) != 0 {
		t.Errorf("rejected form must not persist, found %d", len(appts))
	}
}

func TestHandlerBack(t *testing.T) {
	h, _ := handlerFixture(t)
	router := h.Routes()

	_, resp := doJSON(t, router, http.MethodPost, "/start", "")
	sid := resp.SessionID

	doJSON(t, router, http.MethodPost, "/"+sid+"/service", `{"serviceType":"Teeth Cleaning"}`)
	rec, resp := doJSON(t, router, http.MethodPost, "/"+sid+"/back", "")
	if rec.Code != http.StatusOK || resp.Step != "service" {
		t.Fatalf("back failed: %d %+v", rec.Code, resp)
	}
	if resp.Form.ServiceType != "Teeth Cleaning" {
		t.Errorf("back lost the chosen service: %+v", resp.Form)
	}
}

func TestHandlerUnknownSession(t *testing.T) {
	h, _ := handlerFixture(t)
	router := h.Routes()

	rec, _ := doJSON(t, router, http.MethodPost, "/not-a-session/service", `{"serviceType":"Teeth Cleaning"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", rec.Code)
	}
}

func TestHandlerCatalog(t *testing.T) {
	h, _ := handlerFixture(t)
	router := h.Routes()

	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("catalog status = %d", rec.Code)
	}
	var payload struct {
		Services  []clinic.Service `json:"services"`
		TimeSlots []string         `json:"timeSlots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Services) == 0 || len(payload.TimeSlots) == 0 {
		t.Error("catalog should list services and slots")
	}
}
