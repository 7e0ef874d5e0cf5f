package search

import "strings"

// Category holds the provider-specific codes for one business category.
type Category struct {
	Code       string
	Label      string
	PlacesType string
	YelpAlias  string
	NAICS      string
}

var categories = map[string]Category{
	"retail":        {Code: "retail", Label: "retail", PlacesType: "store", YelpAlias: "shopping", NAICS: "44-45"},
	"healthcare":    {Code: "healthcare", Label: "healthcare", PlacesType: "doctor", YelpAlias: "health", NAICS: "62"},
	"professional":  {Code: "professional", Label: "professional services", PlacesType: "accounting", YelpAlias: "professional", NAICS: "54"},
	"manufacturing": {Code: "manufacturing", Label: "manufacturing", PlacesType: "establishment", YelpAlias: "localservices", NAICS: "31-33"},
	"restaurants":   {Code: "restaurants", Label: "restaurants", PlacesType: "restaurant", YelpAlias: "restaurants", NAICS: "722"},
	"construction":  {Code: "construction", Label: "construction", PlacesType: "general_contractor", YelpAlias: "contractors", NAICS: "23"},
	"real_estate":   {Code: "real_estate", Label: "real estate", PlacesType: "real_estate_agency", YelpAlias: "realestate", NAICS: "53"},
	"automotive":    {Code: "automotive", Label: "automotive", PlacesType: "car_repair", YelpAlias: "auto", NAICS: "8111"},
}

var categoryAliases = map[string]string{
	"professional services": "professional",
	"professional_services": "professional",
	"real estate":           "real_estate",
	"restaurant":            "restaurants",
}

// LookupCategory resolves a category code. Unknown codes are passed through
// unchanged to every provider.
func LookupCategory(code string) Category {
	key := strings.ToLower(strings.TrimSpace(code))
	if alias, ok := categoryAliases[key]; ok {
		key = alias
	}
	if c, ok := categories[key]; ok {
		return c
	}
	return Category{Code: key, Label: key, PlacesType: key, YelpAlias: key, NAICS: key}
}

// ResolveCategories maps every requested code, dropping blanks.
func ResolveCategories(codes []string) []Category {
	out := make([]Category, 0, len(codes))
	for _, c := range codes {
		if strings.TrimSpace(c) == "" {
			continue
		}
		out = append(out, LookupCategory(c))
	}
	return out
}
