// Package whatsapp builds wa.me click-to-chat links for order hand-off.
package whatsapp

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const baseHost = "https://wa.me"

// numberRe matches the phone format WhatsApp accepts in wa.me links:
// digits only, international format without the leading plus.
var numberRe = regexp.MustCompile(`^[0-9]{10,15}$`)

// ValidNumber reports whether number can be used in a wa.me link.
func ValidNumber(number string) bool {
	return numberRe.MatchString(number)
}

// Link builds a click-to-chat URL carrying message as prefilled text.
// When number is empty the link omits the recipient and WhatsApp lets
// the user pick one.
func Link(number string, message string) (string, error) {
	if number != "" && !ValidNumber(number) {
		return "", fmt.Errorf("invalid whatsapp number %q", number)
	}

	// encode with %20 for spaces, the way WhatsApp documents the text param
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")

	if number == "" {
		return fmt.Sprintf("%s/?text=%s", baseHost, text), nil
	}
	return fmt.Sprintf("%s/%s?text=%s", baseHost, number, text), nil
}
