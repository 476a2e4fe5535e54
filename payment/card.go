package payment

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Brand is the card issuer family, inferred from number-prefix ranges.
type Brand string

const (
	BrandVisa       Brand = "visa"
	BrandMastercard Brand = "mastercard"
	BrandAmex       Brand = "amex"
	BrandDiscover   Brand = "discover"
	BrandDiners     Brand = "diners"
	BrandJCB        Brand = "jcb"
	BrandUnknown    Brand = "unknown"
)

// defaultCVCLength applies when the brand is unknown.
const defaultCVCLength = 3

// minPANDigits is the fewest digits a checksummable PAN can have.
const minPANDigits = 12

// brandRule associates an issuer-prefix pattern with a brand and its
// required CVC length.
type brandRule struct {
	pattern *regexp.Regexp
	brand   Brand
	cvcLen  int
}

// brandTable is evaluated top to bottom; first match wins. Mastercard
// covers both the classic 51-55 range and the 2221-2720 range.
var brandTable = []brandRule{
	{regexp.MustCompile(`^4`), BrandVisa, 3},
	{regexp.MustCompile(`^(5[1-5]|222[1-9]|22[3-9][0-9]|2[3-6][0-9]{2}|27[01][0-9]|2720)`), BrandMastercard, 3},
	{regexp.MustCompile(`^3[47]`), BrandAmex, 4},
	{regexp.MustCompile(`^6(011|5)`), BrandDiscover, 3},
	{regexp.MustCompile(`^3(0[0-5]|[68])`), BrandDiners, 3},
	{regexp.MustCompile(`^35`), BrandJCB, 3},
}

var (
	nonDigits = regexp.MustCompile(`\D`)
	expiryRe  = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
)

// PANDigits strips everything but digits from a card number as entered.
func PANDigits(cardNumber string) string {
	return nonDigits.ReplaceAllString(cardNumber, "")
}

// DetectBrand matches panDigits against the issuer table. Unmatched
// numbers report BrandUnknown with the default CVC length.
func DetectBrand(panDigits string) (Brand, int) {
	for _, rule := range brandTable {
		if rule.pattern.MatchString(panDigits) {
			return rule.brand, rule.cvcLen
		}
	}
	return BrandUnknown, defaultCVCLength
}

// LuhnValid reports whether panDigits passes the Luhn checksum. Numbers
// shorter than minPANDigits never pass.
func LuhnValid(panDigits string) bool {
	if len(panDigits) < minPANDigits {
		return false
	}
	sum := 0
	double := false
	for i := len(panDigits) - 1; i >= 0; i-- {
		d := int(panDigits[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// expiryValid reports whether an MM/YY expiry is well-formed and the
// card is still valid at now: the last instant of month 20YY-MM must
// not be in the past.
func expiryValid(expiry string, now time.Time) bool {
	m := expiryRe.FindStringSubmatch(strings.TrimSpace(expiry))
	if m == nil {
		return false
	}
	month := atoi2(m[1])
	year := 2000 + atoi2(m[2])
	if month < 1 || month > 12 {
		return false
	}
	// First instant of the following month; the card is good strictly
	// before it.
	endOfMonth := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return now.Before(endOfMonth)
}

func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

func (v *Validator) validateCard(in Input) (Summary, error) {
	pan := PANDigits(in.CardNumber)
	brand, cvcLen := DetectBrand(pan)

	if !LuhnValid(pan) {
		return Summary{}, &ValidationError{Field: "cardNumber", Reason: "card number is invalid"}
	}
	if !expiryValid(in.Expiry, v.now()) {
		return Summary{}, &ValidationError{Field: "expiry", Reason: "expiry must be MM/YY and in the future"}
	}
	if !cvcValid(in.CVC, cvcLen) {
		return Summary{}, &ValidationError{Field: "cvc", Reason: fmt.Sprintf("security code must be %d digits", cvcLen)}
	}

	return Summary{
		Method: MethodCard,
		Brand:  brand,
		Last4:  pan[len(pan)-4:],
	}, nil
}

func cvcValid(cvc string, length int) bool {
	if len(cvc) != length {
		return false
	}
	for i := 0; i < len(cvc); i++ {
		if cvc[i] < '0' || cvc[i] > '9' {
			return false
		}
	}
	return true
}
