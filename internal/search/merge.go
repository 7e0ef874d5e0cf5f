package search

import (
	"strings"
	"unicode"

	"github.com/xavierca1/leadlocal/internal/entity"
)

var streetSuffixes = map[string]string{
	"street":    "st",
	"avenue":    "ave",
	"road":      "rd",
	"boulevard": "blvd",
	"drive":     "dr",
	"lane":      "ln",
	"court":     "ct",
	"place":     "pl",
	"highway":   "hwy",
	"parkway":   "pkwy",
	"suite":     "ste",
	"north":     "n",
	"south":     "s",
	"east":      "e",
	"west":      "w",
}

// NormalizeAddress lowercases the address, drops punctuation, collapses
// whitespace and abbreviates common street words.
func NormalizeAddress(address string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return ' '
		}
	}, address)

	words := strings.Fields(cleaned)
	for i, w := range words {
		if short, ok := streetSuffixes[w]; ok {
			words[i] = short
		}
	}
	return strings.Join(words, " ")
}

// dedupeKeys identifies a business by its address keys, or by name when it
// has no address. No keys means the record cannot be matched.
func dedupeKeys(r Record) []string {
	if keys := addressKeys(r); len(keys) > 0 {
		return keys
	}
	if name := strings.ToLower(strings.Join(strings.Fields(r.Name), " ")); name != "" {
		return []string{"name:" + name}
	}
	return nil
}

// dedupeKey is the stable key stored with a lead.
func dedupeKey(r Record) string {
	if keys := dedupeKeys(r); len(keys) > 0 {
		return keys[0]
	}
	return ""
}

type sourcedRecord struct {
	source string
	record Record
}

// merge deduplicates records in order. Records sharing any key are the same
// business. The first record wins and only its empty fields are filled from
// later duplicates.
func merge(records []sourcedRecord) []entity.Lead {
	leads := make([]entity.Lead, 0, len(records))
	index := make(map[string]int, len(records))

	for _, sr := range records {
		keys := dedupeKeys(sr.record)
		var (
			i     int
			found bool
		)
		for _, k := range keys {
			if i, found = index[k]; found {
				break
			}
		}
		if found {
			backfill(&leads[i], sr.record)
			leads[i].Sources = appendUnique(leads[i].Sources, sr.source)
		} else {
			i = len(leads)
			leads = append(leads, toLead(sr))
		}
		for _, k := range keys {
			if _, taken := index[k]; !taken {
				index[k] = i
			}
		}
	}

	// Backfilled zip codes and cities make the stored key more specific.
	for i := range leads {
		l := &leads[i]
		l.Key = dedupeKey(Record{Name: l.Name, Address: l.Address, City: l.City, ZipCode: l.ZipCode})
	}
	return leads
}

func toLead(sr sourcedRecord) entity.Lead {
	r := sr.record
	return entity.Lead{
		Name:          strings.TrimSpace(r.Name),
		Address:       strings.TrimSpace(r.Address),
		City:          strings.TrimSpace(r.City),
		ZipCode:       strings.TrimSpace(r.ZipCode),
		Phone:         strings.TrimSpace(r.Phone),
		Email:         strings.TrimSpace(r.Email),
		Website:       strings.TrimSpace(r.Website),
		Industry:      strings.TrimSpace(r.Industry),
		EmployeeCount: r.EmployeeCount,
		Revenue:       strings.TrimSpace(r.Revenue),
		SocialMedia:   append([]string(nil), r.SocialMedia...),
		ReviewCount:   r.ReviewCount,
		Rating:        r.Rating,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Sources:       []string{sr.source},
		Status:        entity.LeadStatusNew,
	}
}

func backfill(l *entity.Lead, r Record) {
	fillString(&l.Name, r.Name)
	fillString(&l.Address, r.Address)
	fillString(&l.City, r.City)
	fillString(&l.ZipCode, r.ZipCode)
	fillString(&l.Phone, r.Phone)
	fillString(&l.Email, r.Email)
	fillString(&l.Website, r.Website)
	fillString(&l.Industry, r.Industry)
	fillString(&l.Revenue, r.Revenue)

	if l.EmployeeCount == 0 {
		l.EmployeeCount = r.EmployeeCount
	}
	if l.ReviewCount == 0 {
		l.ReviewCount = r.ReviewCount
	}
	if l.Rating == 0 {
		l.Rating = r.Rating
	}
	if l.Latitude == 0 && l.Longitude == 0 {
		l.Latitude, l.Longitude = r.Latitude, r.Longitude
	}
	if len(l.SocialMedia) == 0 && len(r.SocialMedia) > 0 {
		l.SocialMedia = append([]string(nil), r.SocialMedia...)
	}
}

func fillString(dst *string, src string) {
	if *dst == "" {
		*dst = strings.TrimSpace(src)
	}
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
