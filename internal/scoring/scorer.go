// Package scoring computes the AI-readiness score of a lead.
package scoring

import (
	"strings"

	"github.com/xavierca1/leadlocal/internal/entity"
)

const MaxScore = 100

// Rubric points.
const (
	pointsWebsite         = 20
	pointsPlatformHint    = 10
	pointsEmployeesOver10 = 15
	pointsEmployeesOver50 = 10
	pointsIndustry        = 25
	pointsSocial          = 10
	pointsReviews         = 10
)

// Site builders and CMS tokens recognized in a website URL.
var platformTokens = []string{
	"shopify",
	"wordpress",
	"wix",
	"squarespace",
	"weebly",
	"webflow",
	"bigcommerce",
	"godaddysites",
}

// industryOpportunity doubles as the AI-ready allow-list.
var industryOpportunity = map[string]string{
	"manufacturing":         "Predictive maintenance and automated quality inspection",
	"professional services": "Document drafting and client intake automation",
	"healthcare":            "Appointment scheduling and patient follow-up automation",
	"retail":                "Inventory forecasting and personalized product recommendations",
}

var industryAliases = map[string]string{
	"professional": "professional services",
	"health care":  "healthcare",
}

const (
	opportunityWebsite   = "AI chatbot for 24/7 website lead capture"
	opportunityPlatform  = "Plug-in AI tools for the existing site builder or CMS"
	opportunityTeam      = "Internal workflow automation for a growing team"
	opportunityLargeTeam = "Company knowledge assistant for staff onboarding and support"
	opportunitySocial    = "AI-assisted social media content and replies"
	opportunityReviews   = "Automated review responses and sentiment tracking"
)

// Score returns a copy of lead with ReadinessScore and Opportunities set.
// The result is always within [0, MaxScore].
func Score(lead entity.Lead) entity.Lead {
	score := 0
	opportunities := make([]string, 0, 7)

	if strings.TrimSpace(lead.Website) != "" {
		score += pointsWebsite
		opportunities = append(opportunities, opportunityWebsite)
	}
	if HasPlatformHint(lead.Website) {
		score += pointsPlatformHint
		opportunities = append(opportunities, opportunityPlatform)
	}

	if lead.EmployeeCount > 10 {
		score += pointsEmployeesOver10
		opportunities = append(opportunities, opportunityTeam)
	}
	if lead.EmployeeCount > 50 {
		score += pointsEmployeesOver50
		opportunities = append(opportunities, opportunityLargeTeam)
	}

	if phrase, ok := industryOpportunity[NormalizeIndustry(lead.Industry)]; ok {
		score += pointsIndustry
		opportunities = append(opportunities, phrase)
	}

	if hasSocial(lead.SocialMedia) {
		score += pointsSocial
		opportunities = append(opportunities, opportunitySocial)
	}
	if lead.ReviewCount > 20 {
		score += pointsReviews
		opportunities = append(opportunities, opportunityReviews)
	}

	lead.ReadinessScore = clamp(score)
	lead.Opportunities = opportunities
	return lead
}

// ScoreAll scores every lead, returning a new slice.
func ScoreAll(leads []entity.Lead) []entity.Lead {
	out := make([]entity.Lead, len(leads))
	for i, l := range leads {
		out[i] = Score(l)
	}
	return out
}

// HasPlatformHint reports whether website contains a known site-builder token.
func HasPlatformHint(website string) bool {
	w := strings.ToLower(website)
	if w == "" {
		return false
	}
	for _, token := range platformTokens {
		if strings.Contains(w, token) {
			return true
		}
	}
	return false
}

// NormalizeIndustry lowercases the label and folds "_" and "-" into spaces.
func NormalizeIndustry(industry string) string {
	s := strings.ToLower(strings.TrimSpace(industry))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	if alias, ok := industryAliases[s]; ok {
		return alias
	}
	return s
}

// IsAIReadyIndustry reports whether the industry is on the allow-list.
func IsAIReadyIndustry(industry string) bool {
	_, ok := industryOpportunity[NormalizeIndustry(industry)]
	return ok
}

func hasSocial(links []string) bool {
	for _, l := range links {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
