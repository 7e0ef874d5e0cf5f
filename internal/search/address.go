package search

import (
	"regexp"
	"strings"
)

var (
	zipPattern      = regexp.MustCompile(`\b(\d{5})(?:-\d{4})?\b`)
	stateZipPattern = regexp.MustCompile(`^(?:[A-Za-z]{2}(?:\s+\d{5}(?:-\d{4})?)?|\d{5}(?:-\d{4})?)$`)
)

var countryNames = map[string]bool{
	"usa":                      true,
	"us":                       true,
	"united states":            true,
	"united states of america": true,
}

// Secondary address lines stay part of the street.
var unitWords = map[string]bool{
	"suite": true, "ste": true, "apt": true, "unit": true,
	"floor": true, "fl": true, "bldg": true, "room": true, "rm": true,
}

// Address is a one-line US address split into its parts. Street is
// normalized; City is lowercased.
type Address struct {
	Street string
	City   string
	Zip    string
}

// ParseAddress splits addresses such as "123 Main Street, Springfield, IL
// 62701, USA" or "123 Main St, Springfield". Parts that are not present
// are left empty.
func ParseAddress(address string) Address {
	var parts []string
	for _, p := range strings.Split(address, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	for len(parts) > 0 && countryNames[NormalizeAddress(parts[len(parts)-1])] {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return Address{}
	}

	street := parts[0]
	rest := parts[1:]
	for len(rest) > 0 && isUnit(rest[0]) {
		street += " " + rest[0]
		rest = rest[1:]
	}

	out := Address{Street: NormalizeAddress(street)}
	cityIdx := len(rest) - 1
	for i := len(rest) - 1; i >= 0; i-- {
		if !stateZipPattern.MatchString(rest[i]) {
			break
		}
		if m := zipPattern.FindStringSubmatch(rest[i]); m != nil && out.Zip == "" {
			out.Zip = m[1]
		}
		cityIdx = i - 1
	}
	if cityIdx >= 0 {
		out.City = strings.ToLower(strings.Join(strings.Fields(rest[cityIdx]), " "))
	}
	return out
}

func isUnit(part string) bool {
	if strings.HasPrefix(part, "#") {
		return true
	}
	first, _, _ := strings.Cut(strings.ToLower(part), " ")
	return unitWords[strings.TrimSuffix(first, ".")]
}

// addressKeys lists every key a record can be matched on, most specific
// first. Explicit city and zip fields win over the ones parsed from the
// address.
func addressKeys(r Record) []string {
	addr := ParseAddress(r.Address)
	if addr.Street == "" {
		return nil
	}
	if m := zipPattern.FindStringSubmatch(r.ZipCode); m != nil {
		addr.Zip = m[1]
	}
	if city := strings.ToLower(strings.Join(strings.Fields(r.City), " ")); city != "" {
		addr.City = city
	}

	var keys []string
	if addr.Zip != "" {
		keys = append(keys, "addr:"+addr.Street+"|"+addr.Zip)
	}
	if addr.City != "" {
		keys = append(keys, "addr:"+addr.Street+"|"+addr.City)
	}
	if len(keys) == 0 {
		keys = append(keys, "addr:"+addr.Street)
	}
	return keys
}
