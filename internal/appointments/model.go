// Package appointments models booked visits and their persistence.
package appointments

import "time"

// Status is the appointment workflow state set by the receptionist.
type Status string

const (
	StatusBooked    Status = "Booked"
	StatusVisited   Status = "Visited"
	StatusNoShow    Status = "No-Show"
	StatusFollowUp  Status = "Follow-Up Required"
	StatusCancelled Status = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusVisited, StatusNoShow, StatusFollowUp, StatusCancelled:
		return true
	}
	return false
}

// Stage is an appointment's position in the post-visit outreach sequence.
type Stage string

const (
	StageNone      Stage = "None"
	StageDay1      Stage = "Day-1"
	StageDay3      Stage = "Day-3"
	StageDay7      Stage = "Day-7"
	StageCompleted Stage = "Completed"
)

// Valid reports whether g is one of the known follow-up stages.
func (g Stage) Valid() bool {
	switch g {
	case StageNone, StageDay1, StageDay3, StageDay7, StageCompleted:
		return true
	}
	return false
}

// Appointment is a booked visit record. Dates are stored as YYYY-MM-DD and
// times as slot labels from the clinic catalog.
type Appointment struct {
	ID              string    `json:"id"`
	PatientName     string    `json:"patientName"`
	PhoneNumber     string    `json:"phoneNumber"`
	AppointmentDate string    `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	ServiceType     string    `json:"serviceType"`
	Status          Status    `json:"status"`
	FollowUpStage   Stage     `json:"followUpStage"`
	LastMessageSent string    `json:"lastMessageSent"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
}

// CreateRequest carries the patient-entered booking form fields.
type CreateRequest struct {
	PatientName     string `json:"patientName"`
	PhoneNumber     string `json:"phoneNumber"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	ServiceType     string `json:"serviceType"`
	Notes           string `json:"notes"`
}
