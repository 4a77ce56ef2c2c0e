package clinic

// Service is one bookable treatment.
type Service struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Duration string `json:"duration"`
	Popular  bool   `json:"popular"`
}

// Services is the authoritative treatment catalog. The booking wizard and the
// service validator both check membership against this list.
var Services = []Service{
	{ID: "teeth-cleaning", Name: "Teeth Cleaning", Category: "Preventive", Duration: "30-45 min", Popular: true},
	{ID: "root-canal", Name: "Root Canal Treatment", Category: "Restorative", Duration: "60-90 min", Popular: true},
	{ID: "dental-implant", Name: "Dental Implant", Category: "Restorative", Duration: "90-120 min", Popular: true},
	{ID: "teeth-whitening", Name: "Teeth Whitening", Category: "Cosmetic", Duration: "45-60 min", Popular: true},
	{ID: "braces-aligners", Name: "Braces & Aligners", Category: "Orthodontic", Duration: "45 min", Popular: true},
	{ID: "tooth-extraction", Name: "Tooth Extraction", Category: "Surgical", Duration: "30-45 min", Popular: false},
	{ID: "kids-dentistry", Name: "Kids Dentistry", Category: "Pediatric", Duration: "30 min", Popular: true},
	{ID: "dentures", Name: "Dentures", Category: "Restorative", Duration: "60 min", Popular: false},
	{ID: "crowns-bridges", Name: "Crowns & Bridges", Category: "Restorative", Duration: "60 min", Popular: false},
	{ID: "gum-treatment", Name: "Gum Treatment", Category: "Periodontic", Duration: "45 min", Popular: false},
}

// TimeSlots is the fixed set of bookable slot labels.
var TimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
	"6:00 PM", "7:00 PM", "8:00 PM",
}

// ServiceByID looks up a service by its URL-safe identifier.
func ServiceByID(id string) (Service, bool) {
	for _, s := range Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// ServiceByName looks up a service by its display name.
func ServiceByName(name string) (Service, bool) {
	for _, s := range Services {
		if s.Name == name {
			return s, true
		}
	}
	return Service{}, false
}

// IsValidSlot reports whether label is one of the bookable time slots.
func IsValidSlot(label string) bool {
	for _, s := range TimeSlots {
		if s == label {
			return true
		}
	}
	return false
}
