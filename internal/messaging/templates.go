// Package messaging holds the outbound WhatsApp message templates and the
// deep-link plumbing that delivers them.
package messaging

import (
	"fmt"
	"strings"
)

// Template keys. Keys are stable identifiers; bodies are editable copy.
const (
	TemplateBookingConfirm   = "BOOKING_CONFIRM"
	TemplateReminder24Hr     = "REMINDER_24HR"
	TemplateReminder2Hr      = "REMINDER_2HR"
	TemplateFollowUpDay1     = "FOLLOWUP_DAY1"
	TemplateFollowUpDay3     = "FOLLOWUP_DAY3"
	TemplateFollowUpDay7     = "FOLLOWUP_DAY7"
	TemplateNoShowReschedule = "NOSHOW_RESCHEDULE"
)

// Template is a named, parameterized message body. Placeholders use the
// {fieldName} form; every occurrence of a known field is substituted.
type Template struct {
	Key   string
	Label string
	Body  string
}

var templates = map[string]Template{
	TemplateBookingConfirm: {
		Key:   TemplateBookingConfirm,
		Label: "Booking Confirmation",
		Body: `Hi {name}! 😊

Your appointment at {clinic} is confirmed! ✅

📅 Date: {date}
⏰ Time: {time}
🦷 Service: {service}

📍 Address: {address}

Please arrive 10 minutes early. For any changes, call us at {phone}.

Thank you for choosing {clinic}! 🙏`,
	},
	TemplateReminder24Hr: {
		Key:   TemplateReminder24Hr,
		Label: "24-Hour Reminder",
		Body: `Hi {name}! 👋

This is a friendly reminder about your appointment tomorrow:

📅 Date: {date}
⏰ Time: {time}
🦷 Service: {service}

📍 {clinic}, {address}

See you tomorrow! 😊`,
	},
	TemplateReminder2Hr: {
		Key:   TemplateReminder2Hr,
		Label: "2-Hour Reminder",
		Body: `Hi {name}! ⏰

Your appointment at {clinic} is in 2 hours ({time}).

🦷 Service: {service}

We're looking forward to seeing you! 😊`,
	},
	TemplateFollowUpDay1: {
		Key:   TemplateFollowUpDay1,
		Label: "Day-1 Follow-up",
		Body: `Hi {name}! 😊

Hope your {service} went well yesterday!

Here are some care tips:
✅ Avoid very hot or cold food for 24 hours
✅ Take prescribed medicines on time
✅ Avoid chewing on the treated side
✅ Rinse with lukewarm salt water

If you have any concerns, call us at {phone}. We're here for you! 🙏`,
	},
	TemplateFollowUpDay3: {
		Key:   TemplateFollowUpDay3,
		Label: "Day-3 Follow-up",
		Body: `Hi {name}! 👋

It's been 3 days since your {service} at {clinic}.

How are you feeling? Any discomfort or concerns?

If yes, please reply or call us at {phone}. We're happy to help! 😊`,
	},
	TemplateFollowUpDay7: {
		Key:   TemplateFollowUpDay7,
		Label: "Day-7 Follow-up",
		Body: `Hi {name}! 🌟

It's been a week since your {service}!

We'd love to hear about your experience. Your feedback helps us serve you better:
⭐ How was the treatment?
⭐ How was the staff?
⭐ Would you recommend us?

Thank you for choosing {clinic}! 🙏`,
	},
	TemplateNoShowReschedule: {
		Key:   TemplateNoShowReschedule,
		Label: "No-Show Reschedule",
		Body: `Hi {name}! 👋

We missed you at your appointment today for {service}.

We understand things come up! Would you like to reschedule?

📞 Call us at {phone}
💬 Or reply to this message

We hope to see you soon! 😊`,
	},
}

// Lookup returns the template for key.
func Lookup(key string) (Template, bool) {
	t, ok := templates[key]
	return t, ok
}

// Fill substitutes every {field} occurrence in the keyed template with the
// matching value. Unmatched placeholders are left verbatim. An unknown key is
// a hard error; returning empty text silently would let a caller send a
// blank message.
func Fill(key string, fields map[string]string) (string, error) {
	t, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("messaging: unknown template %q", key)
	}
	body := t.Body
	for field, value := range fields {
		body = strings.ReplaceAll(body, "{"+field+"}", value)
	}
	return body, nil
}
