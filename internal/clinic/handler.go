package clinic

import (
	"encoding/json"
	"net/http"
)

// Handler serves the public clinic information endpoints.
type Handler struct {
	profile Profile
}

// NewHandler creates a clinic info handler.
func NewHandler(profile Profile) *Handler {
	return &Handler{profile: profile}
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// GetProfile returns the clinic identity and timings.
func (h *Handler) GetProfile(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, h.profile)
}

// GetServices returns the service catalog with the bookable time slots.
func (h *Handler) GetServices(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, map[string]any{
		"services":  Services,
		"timeSlots": TimeSlots,
	})
}

// GetFAQs returns the static FAQ entries.
func (h *Handler) GetFAQs(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, FAQs())
}
