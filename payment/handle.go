package payment

import (
	"regexp"
	"strings"
)

// handleRe validates a lowercased virtual payment handle: identifier @
// identifier, each side at least two characters.
var handleRe = regexp.MustCompile(`^[a-z0-9._-]{2,}@[a-z0-9._-]{2,}$`)

// platformRule maps a domain substring to the payment platform behind
// it. Evaluated in order; first match wins.
type platformRule struct {
	substr   string
	platform string
}

var platformTable = []platformRule{
	{"ybl", "PhonePe"},
	{"paytm", "Paytm"},
	{"ok", "Google Pay"},
	{"apl", "Amazon Pay"},
	{"upi", "BHIM"},
}

// DetectPlatform infers the payment platform from the handle's domain
// segment. Unknown domains echo back uppercased so the UI still has
// something to show.
func DetectPlatform(domain string) string {
	for _, rule := range platformTable {
		if strings.Contains(domain, rule.substr) {
			return rule.platform
		}
	}
	return strings.ToUpper(domain)
}

func validateHandle(raw string) (Summary, error) {
	handle := strings.ToLower(strings.TrimSpace(raw))
	if !handleRe.MatchString(handle) {
		return Summary{}, &ValidationError{Field: "handle", Reason: "enter a valid payment handle like name@bank"}
	}
	domain := handle[strings.LastIndex(handle, "@")+1:]
	return Summary{
		Method:   MethodUPI,
		Handle:   handle,
		Platform: DetectPlatform(domain),
	}, nil
}
