package entity

import (
	"context"
	"errors"
	"time"
)

var ErrCampaignNotFound = errors.New("campaign not found")

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// CampaignMetrics are funnel counters owned by the sending/tracking side.
type CampaignMetrics struct {
	Sent         int `json:"sent"`
	Delivered    int `json:"delivered"`
	Opened       int `json:"opened"`
	Clicked      int `json:"clicked"`
	Replied      int `json:"replied"`
	Converted    int `json:"converted"`
	Unsubscribed int `json:"unsubscribed"`
	Bounced      int `json:"bounced"`
}

type Campaign struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      CampaignStatus  `json:"status"`
	TemplateID  string          `json:"template_id"`
	LeadIDs     []string        `json:"leads"`
	Metrics     CampaignMetrics `json:"metrics"`
	Tags        []string        `json:"tags,omitempty"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Metric names accepted by IncrementMetric.
const (
	MetricSent    = "sent"
	MetricBounced = "bounced"
)

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *Campaign) error
	FindByID(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context) ([]Campaign, error)
	UpdateStatus(ctx context.Context, id string, status CampaignStatus) error
	IncrementMetric(ctx context.Context, id, metric string) error
}
