package entity

import (
	"context"
	"errors"
	"time"
)

var ErrLeadNotFound = errors.New("lead not found")

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusEngaged   LeadStatus = "engaged"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusArchived  LeadStatus = "archived"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusEngaged,
		LeadStatusQualified, LeadStatusConverted, LeadStatusArchived:
		return true
	}
	return false
}

// Lead is a prospective business found through the search providers.
// EmployeeCount, ReviewCount and Rating use zero for "unknown".
type Lead struct {
	ID string `json:"id"`
	// Key identifies the same business across searches; empty when the
	// lead has neither an address nor a name.
	Key           string   `json:"-"`
	Name          string   `json:"name"`
	Address       string   `json:"address,omitempty"`
	City          string   `json:"city,omitempty"`
	ZipCode       string   `json:"zip_code,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Email         string   `json:"email,omitempty"`
	Website       string   `json:"website,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	EmployeeCount int      `json:"employee_count,omitempty"`
	Revenue       string   `json:"revenue,omitempty"`
	SocialMedia   []string `json:"social_media,omitempty"`
	ReviewCount   int      `json:"review_count,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	Latitude      float64  `json:"latitude,omitempty"`
	Longitude     float64  `json:"longitude,omitempty"`
	Sources       []string `json:"sources,omitempty"`

	ReadinessScore int      `json:"readiness_score"`
	Opportunities  []string `json:"opportunities,omitempty"`
	Insight        *Insight `json:"insight,omitempty"`

	Status    LeadStatus `json:"status"`
	Tags      []string   `json:"tags,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Insight is the validated result of the LLM analysis of a lead.
type Insight struct {
	Score                int      `json:"score"`
	Opportunities        []string `json:"opportunities,omitempty"`
	TalkingPoints        []string `json:"talking_points,omitempty"`
	CompetitorAnalysis   []string `json:"competitor_analysis,omitempty"`
	RecommendedSolutions []string `json:"recommended_solutions,omitempty"`
}

// TopOpportunity returns the first opportunity or "".
func (l Lead) TopOpportunity() string {
	return first(l.Opportunities)
}

func (l Lead) TopRecommendedSolution() string {
	if l.Insight == nil {
		return ""
	}
	return first(l.Insight.RecommendedSolutions)
}

func (l Lead) TopTalkingPoint() string {
	if l.Insight == nil {
		return ""
	}
	return first(l.Insight.TalkingPoints)
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

type LeadFilter struct {
	Status   LeadStatus
	Industry string
	MinScore int
	Limit    int
	Offset   int
}

// LeadContact carries a manual contact edit. Nil fields are left as stored.
type LeadContact struct {
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Website *string `json:"website,omitempty"`
}

func (c LeadContact) Empty() bool {
	return c.Email == nil && c.Phone == nil && c.Website == nil
}

type LeadRepositoryInterface interface {
	Upsert(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindByIDs(ctx context.Context, ids []string) ([]Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]Lead, error)
	UpdateStatus(ctx context.Context, id string, status LeadStatus) error
	SaveInsight(ctx context.Context, id string, insight *Insight) error
	UpdateContact(ctx context.Context, id string, contact LeadContact) error
}
