package appointments

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		ok    bool
	}{
		{"valid with dash", "98765-43210", true},
		{"valid plain", "9876543210", true},
		{"valid with spaces", "987 654 3210", true},
		{"bad leading digit", "12345 67890", false},
		{"nine digits", "987654321", false},
		{"eleven digits", "98765432100", false},
		{"empty", "", false},
		{"letters only", "abcdefghij", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ValidatePhone(tt.phone)
			if (msg == "") != tt.ok {
				t.Errorf("ValidatePhone(%q) = %q, want ok=%v", tt.phone, msg, tt.ok)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"two chars", "Jo", true},
		{"trims to one", " A ", false},
		{"empty", "", false},
		{"normal", "Asha Rao", true},
		{"exactly 100", repeat("a", 100), true},
		{"over 100", repeat("a", 101), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ValidateName(tt.input)
			if (msg == "") != tt.ok {
				t.Errorf("ValidateName(%q) = %q, want ok=%v", tt.input, msg, tt.ok)
			}
		})
	}
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		ok   bool
	}{
		{"today", "2025-06-15", true},
		{"tomorrow", "2025-06-16", true},
		{"yesterday", "2025-06-14", false},
		{"far future", "2026-01-01", true},
		{"empty", "", false},
		{"garbage", "15/06/2025", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ValidateDate(tt.date, testNow)
			if (msg == "") != tt.ok {
				t.Errorf("ValidateDate(%q) = %q, want ok=%v", tt.date, msg, tt.ok)
			}
			// Idempotent under repeated calls.
			if again := ValidateDate(tt.date, testNow); again != msg {
				t.Errorf("ValidateDate not idempotent: %q then %q", msg, again)
			}
		})
	}
}

func TestValidateTimeAndService(t *testing.T) {
	if msg := ValidateTime("10:00 AM"); msg != "" {
		t.Errorf("valid slot rejected: %s", msg)
	}
	if msg := ValidateTime(""); msg == "" {
		t.Error("empty slot accepted")
	}
	if msg := ValidateTime("13:37"); msg == "" {
		t.Error("non-catalog slot accepted")
	}

	if msg := ValidateService("Teeth Cleaning"); msg != "" {
		t.Errorf("valid service rejected: %s", msg)
	}
	if msg := ValidateService(""); msg == "" {
		t.Error("empty service accepted")
	}
	if msg := ValidateService("Hair Transplant"); msg == "" {
		t.Error("non-catalog service accepted")
	}
}

func TestValidateForm(t *testing.T) {
	valid := CreateRequest{
		PatientName:     "Asha Rao",
		PhoneNumber:     "9876543210",
		AppointmentDate: "2025-06-16",
		AppointmentTime: "10:00 AM",
		ServiceType:     "Teeth Cleaning",
	}

	res := ValidateForm(valid, testNow)
	if !res.Valid {
		t.Fatalf("expected valid form, got errors %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Errorf("expected empty error map, got %v", res.Errors)
	}

	res = ValidateForm(CreateRequest{}, testNow)
	if res.Valid {
		t.Fatal("empty form should not validate")
	}
	if len(res.Errors) != 5 {
		t.Errorf("expected exactly five field errors, got %d: %v", len(res.Errors), res.Errors)
	}
	for _, field := range []string{"patientName", "phoneNumber", "appointmentDate", "appointmentTime", "serviceType"} {
		if res.Errors[field] == "" {
			t.Errorf("expected error for field %s", field)
		}
	}

	// One bad field leaves the rest untouched.
	bad := valid
	bad.PhoneNumber = "12345"
	res = ValidateForm(bad, testNow)
	if res.Valid {
		t.Fatal("bad phone should fail the form")
	}
	if len(res.Errors) != 1 || res.Errors["phoneNumber"] == "" {
		t.Errorf("expected only the phoneNumber error, got %v", res.Errors)
	}
}

func TestStripNonDigits(t *testing.T) {
	if got := StripNonDigits("+91 (98765) 43210"); got != "919876543210" {
		t.Errorf("unexpected strip result %q", got)
	}
}
