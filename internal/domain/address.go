package domain

import (
	"fmt"
	"strings"
)

// Address is a shipping address. Country is held as a two-letter code in the
// client and the payment gateway, and as a display name by the order and
// account services; CountryCodeToName/CountryNameToCode bridge the two.
type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Street    string `json:"street"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// Validate checks that every field required for checkout submission is
// non-empty.
func (a Address) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"first name", a.FirstName},
		{"last name", a.LastName},
		{"street", a.Street},
		{"city", a.City},
		{"country", a.Country},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidAddress, f.name)
		}
	}
	return nil
}

// FullName joins first and last name for billing/shipping metadata.
func (a Address) FullName() string {
	return a.FirstName + " " + a.LastName
}

// DefaultCountryCode is the fallback when a country value cannot be mapped.
const DefaultCountryCode = "EG"

var countryCodeToName = map[string]string{
	"EG": "Egypt", "US": "United States", "GB": "United Kingdom", "CA": "Canada", "AU": "Australia",
	"DE": "Germany", "FR": "France", "IT": "Italy", "ES": "Spain", "NL": "Netherlands", "BE": "Belgium",
	"CH": "Switzerland", "AT": "Austria", "SE": "Sweden", "NO": "Norway", "DK": "Denmark", "FI": "Finland",
	"IE": "Ireland", "PT": "Portugal", "GR": "Greece", "PL": "Poland", "CZ": "Czech Republic", "HU": "Hungary",
	"SK": "Slovakia", "SI": "Slovenia", "HR": "Croatia", "RO": "Romania", "BG": "Bulgaria", "LT": "Lithuania",
	"LV": "Latvia", "EE": "Estonia", "MT": "Malta", "CY": "Cyprus", "LU": "Luxembourg", "JP": "Japan",
	"KR": "South Korea", "CN": "China", "IN": "India", "SG": "Singapore", "MY": "Malaysia", "TH": "Thailand",
	"ID": "Indonesia", "PH": "Philippines", "VN": "Vietnam", "BR": "Brazil", "MX": "Mexico", "AR": "Argentina",
	"CL": "Chile", "CO": "Colombia", "PE": "Peru", "ZA": "South Africa", "NG": "Nigeria", "KE": "Kenya",
	"GH": "Ghana", "MA": "Morocco", "TN": "Tunisia", "DZ": "Algeria", "LY": "Libya", "SD": "Sudan",
	"AE": "United Arab Emirates", "SA": "Saudi Arabia", "KW": "Kuwait", "QA": "Qatar", "OM": "Oman",
	"BH": "Bahrain", "JO": "Jordan", "LB": "Lebanon", "SY": "Syria", "IQ": "Iraq", "IR": "Iran", "TR": "Turkey",
	"IL": "Israel", "PS": "Palestine",
}

var countryNameToCode = func() map[string]string {
	m := make(map[string]string, len(countryCodeToName))
	for code, name := range countryCodeToName {
		m[strings.ToLower(name)] = code
	}
	return m
}()

// CountryNameToCode converts a display name (or an already-valid code) to the
// two-letter code, falling back to DefaultCountryCode for unmapped input.
func CountryNameToCode(value string) string {
	if value == "" {
		return DefaultCountryCode
	}
	if len(value) == 2 {
		if _, ok := countryCodeToName[strings.ToUpper(value)]; ok {
			return strings.ToUpper(value)
		}
	}
	if code, ok := countryNameToCode[strings.ToLower(value)]; ok {
		return code
	}
	return DefaultCountryCode
}

// CountryCodeToName converts a two-letter code to its display name. Unmapped
// codes are returned unchanged so the caller never loses information.
func CountryCodeToName(code string) string {
	if name, ok := countryCodeToName[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

// ForOrderService returns a copy with the country in display-name form, the
// representation the order and account services expect.
func (a Address) ForOrderService() Address {
	a.Country = CountryCodeToName(a.Country)
	return a
}

// FromOrderService returns a copy with the country normalized back to the
// two-letter form used by the client and the payment gateway.
func (a Address) FromOrderService() Address {
	a.Country = CountryNameToCode(a.Country)
	return a
}
