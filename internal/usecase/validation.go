package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xavierca1/leadlocal/internal/search"
)

const (
	MaxRadiusMiles = 100
	MaxSearchLimit = 500
	maxCategories  = 10
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateSearchRequest(req search.Request) []ValidationError {
	var errs []ValidationError

	zip := strings.TrimSpace(req.Location.ZipCode)
	coords := req.Location.Coordinates
	switch {
	case zip == "" && coords == nil:
		errs = append(errs, ValidationError{"location", "zip_code or coordinates is required"})
	case zip != "" && !zipPattern.MatchString(zip):
		errs = append(errs, ValidationError{"location.zip_code", "must be a 5 digit US zip code"})
	}
	if coords != nil {
		if coords.Lat < -90 || coords.Lat > 90 {
			errs = append(errs, ValidationError{"location.coordinates.lat", "must be between -90 and 90"})
		}
		if coords.Lng < -180 || coords.Lng > 180 {
			errs = append(errs, ValidationError{"location.coordinates.lng", "must be between -180 and 180"})
		}
	}

	if req.RadiusMiles < 0 || req.RadiusMiles > MaxRadiusMiles {
		errs = append(errs, ValidationError{"radius_miles", fmt.Sprintf("must be between 0 and %d", MaxRadiusMiles)})
	}

	if len(req.Categories) > maxCategories {
		errs = append(errs, ValidationError{"business_categories", fmt.Sprintf("must not exceed %d entries", maxCategories)})
	}

	if req.Limit < 0 || req.Limit > MaxSearchLimit {
		errs = append(errs, ValidationError{"limit", fmt.Sprintf("must be between 0 and %d", MaxSearchLimit)})
	}

	return errs
}

func validationDomainError(errs []ValidationError) *DomainError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(parts, ", "),
	}
}
