// Package search aggregates business records from several external
// providers into a single deduplicated lead list.
package search

import (
	"strings"
)

const DefaultLimit = 50

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is either a postal code or a coordinate pair.
type Location struct {
	ZipCode     string       `json:"zip_code,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

func (l Location) IsZero() bool {
	return strings.TrimSpace(l.ZipCode) == "" && l.Coordinates == nil
}

type Request struct {
	Location    Location `json:"location"`
	RadiusMiles float64  `json:"radius_miles"`
	Categories  []string `json:"business_categories"`
	Limit       int      `json:"limit"`
}

// EffectiveLimit is Limit, or DefaultLimit when unset.
func (r Request) EffectiveLimit() int {
	if r.Limit <= 0 {
		return DefaultLimit
	}
	return r.Limit
}

// RadiusMeters converts the radius for providers that take metric input.
func (r Request) RadiusMeters() int {
	return int(r.RadiusMiles * 1609.344)
}
