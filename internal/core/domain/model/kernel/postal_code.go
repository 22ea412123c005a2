package kernel

import (
	"strconv"
	"strings"

	"freight/internal/pkg/errs"
)

// ErrPostalCodeIsNotConstructed is returned when attempting to use an improperly initialized PostalCode.
// PostalCodes must be created using the NewPostalCode constructor to ensure validity.
var ErrPostalCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"PostalCode must be created via NewPostalCode constructor")

// ErrInvalidPostalCode indicates that the raw input could not be normalized into
// exactly 8 digits. This is the only fatal input error of the engine: a request
// carrying a malformed postal code fails as a whole, with no partial result.
var ErrInvalidPostalCode = errs.NewValueIsInvalidError(
	"postal code must contain exactly 8 digits")

// PostalCode is an immutable value object holding a normalized 8-digit
// Brazilian postal code (CEP). Normalization strips every non-digit character
// and left-pads the remainder with zeros to 8 digits; inputs that yield no
// digits, or more than 8, are rejected.
//
// Example:
//
//	pc, err := kernel.NewPostalCode("01310-100")
//	if err != nil {
//	    // handle ErrInvalidPostalCode
//	}
//	fmt.Println(pc.String())    // "01310100"
//	fmt.Println(pc.Formatted()) // "01310-100"
//	fmt.Println(pc.StateCode()) // "SP"
type PostalCode struct {
	digits string
	guard  ConstructorGuard
}

// NewPostalCode normalizes and validates a raw postal code string.
// Returns ErrInvalidPostalCode if the normalized result is not exactly 8 digits.
func NewPostalCode(raw string) (PostalCode, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) == 0 || len(digits) > 8 {
		return PostalCode{}, ErrInvalidPostalCode
	}

	if len(digits) < 8 {
		digits = strings.Repeat("0", 8-len(digits)) + digits
	}

	return PostalCode{
		digits: digits,
		guard:  NewConstructorGuard(),
	}, nil
}

// Validate checks if the PostalCode was properly constructed using the constructor.
// The zero value of PostalCode is invalid and will fail this validation.
func (p PostalCode) Validate() error {
	return p.guard.Validate(ErrPostalCodeIsNotConstructed)
}

// String returns the normalized 8-digit form, e.g. "01310100".
func (p PostalCode) String() string {
	return p.digits
}

// Formatted returns the display form with a dash after the fifth digit,
// e.g. "01310-100".
func (p PostalCode) Formatted() string {
	if len(p.digits) != 8 {
		return p.digits
	}
	return p.digits[:5] + "-" + p.digits[5:]
}

// Code returns the postal code as an integer, used for coverage range matching.
func (p PostalCode) Code() int {
	code, _ := strconv.Atoi(p.digits)
	return code
}

// Prefix returns the first two digits, which identify the postal region.
func (p PostalCode) Prefix() string {
	if len(p.digits) < 2 {
		return ""
	}
	return p.digits[:2]
}

// StateCode maps the two-digit postal region prefix to the federative unit it
// belongs to, following the national CEP region plan. Returns an empty string
// when the prefix does not belong to any state (e.g. "00").
//
// Prefixes that span more than one state at finer granularity (such as the
// 69 and 70-73 regions) resolve to the state holding the bulk of the range.
func (p PostalCode) StateCode() string {
	prefix, err := strconv.Atoi(p.Prefix())
	if err != nil {
		return ""
	}

	switch {
	case prefix >= 1 && prefix <= 19:
		return "SP"
	case prefix >= 20 && prefix <= 28:
		return "RJ"
	case prefix == 29:
		return "ES"
	case prefix >= 30 && prefix <= 39:
		return "MG"
	case prefix >= 40 && prefix <= 48:
		return "BA"
	case prefix == 49:
		return "SE"
	case prefix >= 50 && prefix <= 56:
		return "PE"
	case prefix == 57:
		return "AL"
	case prefix == 58:
		return "PB"
	case prefix == 59:
		return "RN"
	case prefix >= 60 && prefix <= 63:
		return "CE"
	case prefix == 64:
		return "PI"
	case prefix == 65:
		return "MA"
	case prefix >= 66 && prefix <= 68:
		return "PA"
	case prefix == 69:
		return "AM"
	case prefix >= 70 && prefix <= 73:
		return "DF"
	case prefix >= 74 && prefix <= 76:
		return "GO"
	case prefix == 77:
		return "TO"
	case prefix == 78:
		return "MT"
	case prefix == 79:
		return "MS"
	case prefix >= 80 && prefix <= 87:
		return "PR"
	case prefix >= 88 && prefix <= 89:
		return "SC"
	case prefix >= 90 && prefix <= 99:
		return "RS"
	default:
		return ""
	}
}

// IsEqual compares two postal codes for equality.
// Both must be properly constructed for the comparison to succeed.
func (p PostalCode) IsEqual(other PostalCode) bool {
	return p.digits == other.digits
}
