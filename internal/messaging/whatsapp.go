package messaging

import (
	"net/url"
	"strings"
	"unicode"
)

const waHost = "https://wa.me/"

// NormalizeWithCountryCode strips formatting from a national phone number and
// prefixes the country code unless it is already present.
func NormalizeWithCountryCode(phone, countryCode string) string {
	digits := stripNonDigits(phone)
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, countryCode) && len(digits) > 10 {
		return digits
	}
	return countryCode + digits
}

// WALink builds the wa.me deep link that opens a chat with the given
// international number and a pre-filled, URL-encoded message.
func WALink(internationalPhone, message string) string {
	return waHost + internationalPhone + "?text=" + url.QueryEscape(message)
}

func stripNonDigits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
