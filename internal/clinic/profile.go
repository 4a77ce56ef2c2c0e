// Package clinic holds the clinic profile and the static service catalog.
package clinic

import "github.com/sumanachary99/dentalclinic/internal/config"

// Timings describes the clinic's opening hours for display.
type Timings struct {
	Weekdays string `json:"weekdays"`
	Saturday string `json:"saturday"`
	Sunday   string `json:"sunday"`
}

// Profile is the clinic identity used in outbound messages and on pages.
type Profile struct {
	Name           string  `json:"name"`
	Tagline        string  `json:"tagline"`
	Phone          string  `json:"phone"`
	WhatsAppNumber string  `json:"whatsapp_number"` // includes country code
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	Timings        Timings `json:"timings"`
}

// ProfileFromConfig builds the clinic profile from application config.
func ProfileFromConfig(cfg *config.Config) Profile {
	return Profile{
		Name:           cfg.ClinicName,
		Tagline:        cfg.ClinicTagline,
		Phone:          cfg.ClinicPhone,
		WhatsAppNumber: cfg.ClinicWhatsApp,
		Email:          cfg.ClinicEmail,
		Address:        cfg.ClinicAddress,
		City:           cfg.ClinicCity,
		Timings: Timings{
			Weekdays: "9:00 AM – 9:00 PM",
			Saturday: "9:00 AM – 9:00 PM",
			Sunday:   "10:00 AM – 7:00 PM",
		},
	}
}

// FAQ is a single frequently-asked question shown on the contact page.
type FAQ struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// FAQs returns the static FAQ entries.
func FAQs() []FAQ {
	return []FAQ{
		{
			Question: "What are the clinic timings?",
			Answer:   "We are open Monday to Saturday from 9 AM to 9 PM, and Sunday from 10 AM to 7 PM. Prior appointments are recommended for early morning and evening slots.",
		},
		{
			Question: "Do I need to book an appointment in advance?",
			Answer:   "While walk-ins are welcome, we recommend booking an appointment to ensure you get your preferred time slot and minimal waiting time.",
		},
		{
			Question: "What payment methods do you accept?",
			Answer:   "We accept Cash, UPI (Google Pay, PhonePe, Paytm), Credit/Debit Cards, and Net Banking. EMI options are available for major treatments.",
		},
		{
			Question: "Is the treatment painful?",
			Answer:   "We use modern anesthesia techniques and advanced equipment to ensure all procedures are as painless as possible. Our doctors prioritize patient comfort.",
		},
		{
			Question: "Do you provide emergency dental services?",
			Answer:   "Yes! We handle dental emergencies including severe toothaches, broken teeth, and infections. Call us immediately and we will prioritize your appointment.",
		},
		{
			Question: "What safety measures do you follow?",
			Answer:   "We follow strict sterilization protocols, use disposable instruments where possible, and maintain the highest hygiene standards as per dental council guidelines.",
		},
	}
}
