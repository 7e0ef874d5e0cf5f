package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/leadlocal/internal/entity"
)

func TestScoreShopifyRetailer(t *testing.T) {
	lead := entity.Lead{
		Name:          "Corner Shop",
		Website:       "shop.example.myshopify.com",
		EmployeeCount: 60,
		Industry:      "retail",
	}

	scored := Score(lead)

	assert.Equal(t, 80, scored.ReadinessScore)
	assert.Equal(t, []string{
		opportunityWebsite,
		opportunityPlatform,
		opportunityTeam,
		opportunityLargeTeam,
		industryOpportunity["retail"],
	}, scored.Opportunities)
}

func TestScoreDoesNotMutateInput(t *testing.T) {
	lead := entity.Lead{Website: "https://acme.com"}
	_ = Score(lead)
	assert.Zero(t, lead.ReadinessScore)
	assert.Nil(t, lead.Opportunities)
}

func TestScoreCapsAtMax(t *testing.T) {
	lead := entity.Lead{
		Website:       "https://acme.wordpress.com",
		EmployeeCount: 500,
		Industry:      "Healthcare",
		SocialMedia:   []string{"https://facebook.com/acme"},
		ReviewCount:   120,
	}

	scored := Score(lead)

	// 20+10+15+10+25+10+10 = 100
	assert.Equal(t, MaxScore, scored.ReadinessScore)
	assert.Len(t, scored.Opportunities, 7)
}

func TestScoreBounds(t *testing.T) {
	websites := []string{"", "https://a.com", "https://a.wixsite.com"}
	employees := []int{-5, 0, 11, 51, 10_000}
	industries := []string{"", "retail", "professional_services", "mining"}
	socials := [][]string{nil, {""}, {"https://x.com/a"}}
	reviews := []int{-1, 0, 21, 999}

	for _, w := range websites {
		for _, e := range employees {
			for _, ind := range industries {
				for _, s := range socials {
					for _, r := range reviews {
						got := Score(entity.Lead{
							Website:       w,
							EmployeeCount: e,
							Industry:      ind,
							SocialMedia:   s,
							ReviewCount:   r,
						}).ReadinessScore
						assert.GreaterOrEqual(t, got, 0)
						assert.LessOrEqual(t, got, MaxScore)
					}
				}
			}
		}
	}
}

func TestScoreEmptyLead(t *testing.T) {
	scored := Score(entity.Lead{})
	assert.Equal(t, 0, scored.ReadinessScore)
	assert.Empty(t, scored.Opportunities)
}

func TestScoreEmployeeThresholdsAreStrict(t *testing.T) {
	assert.Equal(t, 0, Score(entity.Lead{EmployeeCount: 10}).ReadinessScore)
	assert.Equal(t, 15, Score(entity.Lead{EmployeeCount: 50}).ReadinessScore)
	assert.Equal(t, 25, Score(entity.Lead{EmployeeCount: 51}).ReadinessScore)
}

func TestScoreBlankSocialLinksIgnored(t *testing.T) {
	assert.Equal(t, 0, Score(entity.Lead{SocialMedia: []string{"  "}}).ReadinessScore)
}

func TestNormalizeIndustry(t *testing.T) {
	cases := map[string]string{
		"Retail":                "retail",
		" professional ":        "professional services",
		"Professional-Services": "professional services",
		"health_care":           "healthcare",
		"MANUFACTURING":         "manufacturing",
		"Food  Service":         "food service",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeIndustry(in), in)
	}
}

func TestIsAIReadyIndustry(t *testing.T) {
	assert.True(t, IsAIReadyIndustry("professional"))
	assert.True(t, IsAIReadyIndustry("Manufacturing"))
	assert.False(t, IsAIReadyIndustry("restaurants"))
	assert.False(t, IsAIReadyIndustry(""))
}

func TestHasPlatformHint(t *testing.T) {
	assert.True(t, HasPlatformHint("https://SHOP.MyShopify.com"))
	assert.True(t, HasPlatformHint("mybakery.squarespace.com"))
	assert.False(t, HasPlatformHint("https://acme.com"))
	assert.False(t, HasPlatformHint(""))
}

func TestScoreAll(t *testing.T) {
	leads := []entity.Lead{{Website: "a.com"}, {Industry: "retail"}}
	scored := ScoreAll(leads)
	assert.Equal(t, 20, scored[0].ReadinessScore)
	assert.Equal(t, 25, scored[1].ReadinessScore)
	assert.Zero(t, leads[0].ReadinessScore)
}
