// Package currency defines the closed set of currencies the agency bills in.
package currency

// Code is an ISO-4217 style currency code. There is no conversion between
// currencies anywhere in the system; every amount is scoped to one code.
type Code string

const (
	SAR Code = "SAR"
	EGP Code = "EGP"
)

// Valid reports whether the code belongs to the supported set.
func Valid(code Code) bool {
	switch code {
	case SAR, EGP:
		return true
	default:
		return false
	}
}

// Codes lists the supported currencies.
func Codes() []Code {
	return []Code{SAR, EGP}
}
