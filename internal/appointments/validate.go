package appointments

import (
	"strings"
	"time"
	"unicode"

	"github.com/sumanachary99/dentalclinic/internal/clinic"
)

// FieldErrors maps form field names to a single human-readable message each.
type FieldErrors map[string]string

// FormResult is the outcome of validating a full booking form.
type FormResult struct {
	Valid  bool        `json:"valid"`
	Errors FieldErrors `json:"errors"`
}

// ValidateName checks the trimmed patient name length is within [2, 100].
func ValidateName(name string) string {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 {
		return "Name must be at least 2 characters"
	}
	if len(trimmed) > 100 {
		return "Name is too long"
	}
	return ""
}

// ValidatePhone strips non-digits and checks for a 10-digit Indian mobile
// number (leading digit 6-9).
func ValidatePhone(phone string) string {
	cleaned := StripNonDigits(phone)
	if len(cleaned) != 10 {
		return "Phone number must be 10 digits"
	}
	if cleaned[0] < '6' || cleaned[0] > '9' {
		return "Invalid Indian phone number"
	}
	return ""
}

// ValidateDate checks the date parses as YYYY-MM-DD and is not before today
// at day granularity. now is injectable for tests.
func ValidateDate(dateStr string, now time.Time) string {
	if dateStr == "" {
		return "Please select a date"
	}
	selected, err := time.ParseInLocation(time.DateOnly, dateStr, now.Location())
	if err != nil {
		return "Invalid date"
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if selected.Before(today) {
		return "Cannot book in the past"
	}
	return ""
}

// ValidateTime checks the slot label against the clinic's slot enumeration.
func ValidateTime(slot string) string {
	if slot == "" {
		return "Please select a time slot"
	}
	if !clinic.IsValidSlot(slot) {
		return "Unknown time slot"
	}
	return ""
}

// ValidateService checks the service name against the treatment catalog.
func ValidateService(name string) string {
	if name == "" {
		return "Please select a service"
	}
	if _, ok := clinic.ServiceByName(name); !ok {
		return "Unknown service"
	}
	return ""
}

// ValidateForm runs every field validator and aggregates all failures so the
// caller can surface them at once. It never short-circuits.
func ValidateForm(req CreateRequest, now time.Time) FormResult {
	errs := FieldErrors{}

	if msg := ValidateName(req.PatientName); msg != "" {
		errs["patientName"] = msg
	}
	if msg := ValidatePhone(req.PhoneNumber); msg != "" {
		errs["phoneNumber"] = msg
	}
	if msg := ValidateDate(req.AppointmentDate, now); msg != "" {
		errs["appointmentDate"] = msg
	}
	if msg := ValidateTime(req.AppointmentTime); msg != "" {
		errs["appointmentTime"] = msg
	}
	if msg := ValidateService(req.ServiceType); msg != "" {
		errs["serviceType"] = msg
	}

	return FormResult{Valid: len(errs) == 0, Errors: errs}
}

// StripNonDigits removes every non-digit rune from s.
func StripNonDigits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
