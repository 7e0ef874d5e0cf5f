package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/infra/queue"
	"github.com/xavierca1/leadlocal/internal/templating"
)

type CreateCampaignInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	TemplateID  string     `json:"template_id"`
	LeadIDs     []string   `json:"leads"`
	Tags        []string   `json:"tags"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type DispatchCampaignOutput struct {
	CampaignID string `json:"campaign_id"`
	Enqueued   int    `json:"enqueued"`
}

// CampaignUseCase creates campaigns and hands their leads to the outreach
// queue.
type CampaignUseCase struct {
	Campaigns entity.CampaignRepositoryInterface
	Catalog   TemplateCatalog
	Queue     QueueProducerInterface
	Logger    *zap.Logger
	now       func() time.Time
}

func NewCampaignUseCase(campaigns entity.CampaignRepositoryInterface, catalog TemplateCatalog, q QueueProducerInterface, logger *zap.Logger) *CampaignUseCase {
	return &CampaignUseCase{
		Campaigns: campaigns,
		Catalog:   catalog,
		Queue:     q,
		Logger:    logger,
		now:       time.Now,
	}
}

// Create stores a draft campaign, or a scheduled one when StartDate is in
// the future.
func (uc *CampaignUseCase) Create(ctx context.Context, input CreateCampaignInput) (*entity.Campaign, error) {
	var errs []ValidationError
	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if len(input.LeadIDs) == 0 {
		errs = append(errs, ValidationError{"leads", "must contain at least one lead"})
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		errs = append(errs, ValidationError{"end_date", "must be after start_date"})
	}
	if len(errs) > 0 {
		return nil, validationDomainError(errs)
	}
	if _, err := uc.emailTemplate(input.TemplateID); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	c := &entity.Campaign{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Status:      entity.CampaignStatusDraft,
		TemplateID:  input.TemplateID,
		LeadIDs:     input.LeadIDs,
		Tags:        input.Tags,
		StartDate:   now,
		EndDate:     input.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.StartDate != nil {
		c.StartDate = input.StartDate.UTC()
		if c.StartDate.After(now) {
			c.Status = entity.CampaignStatusScheduled
		}
	}

	if err := uc.Campaigns.Create(ctx, c); err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "create campaign", Err: err}
	}
	return c, nil
}

// Execute marks the campaign active and enqueues one outreach job per lead.
// If enqueueing fails the campaign returns to its previous status. Jobs
// already published stay queued.
func (uc *CampaignUseCase) Execute(ctx context.Context, campaignID string) (*DispatchCampaignOutput, error) {
	if uc.Queue == nil {
		return nil, &DomainError{Code: CodeFeatureUnavailable, Message: "outreach queue is not configured"}
	}

	c, err := uc.Campaigns.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, entity.ErrCampaignNotFound) {
			return nil, &DomainError{Code: CodeCampaignNotFound, Message: "campaign not found: " + campaignID, Err: err}
		}
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "load campaign", Err: err}
	}

	switch c.Status {
	case entity.CampaignStatusDraft, entity.CampaignStatusScheduled, entity.CampaignStatusPaused:
	default:
		return nil, &DomainError{
			Code:    CodeInvalidTransition,
			Message: fmt.Sprintf("campaign is %s and cannot be dispatched", c.Status),
		}
	}
	if len(c.LeadIDs) == 0 {
		return nil, validationDomainError([]ValidationError{{"leads", "campaign has no leads"}})
	}
	if _, err := uc.emailTemplate(c.TemplateID); err != nil {
		return nil, err
	}

	previous := c.Status
	enqueued := 0

	txn := NewTransaction(uc.Logger)
	txn.AddOperation("activate campaign",
		func(ctx context.Context) error {
			return uc.Campaigns.UpdateStatus(ctx, c.ID, entity.CampaignStatusActive)
		},
		func(ctx context.Context) error {
			return uc.Campaigns.UpdateStatus(ctx, c.ID, previous)
		},
	)
	txn.AddOperation("enqueue outreach",
		func(ctx context.Context) error {
			for _, leadID := range c.LeadIDs {
				job := queue.OutreachJob{CampaignID: c.ID, LeadID: leadID, TemplateID: c.TemplateID}
				if err := uc.Queue.PublishOutreach(ctx, job); err != nil {
					return err
				}
				enqueued++
			}
			return nil
		},
		nil,
	)

	if err := txn.Execute(ctx); err != nil {
		uc.Logger.Error("campaign dispatch failed",
			zap.String("campaign_id", c.ID),
			zap.Int("enqueued", enqueued),
			zap.Error(err),
		)
		return nil, &TechnicalError{Code: CodeQueueError, Message: "dispatch campaign", Err: err}
	}

	uc.Logger.Info("campaign dispatched", zap.String("campaign_id", c.ID), zap.Int("enqueued", enqueued))
	return &DispatchCampaignOutput{CampaignID: c.ID, Enqueued: enqueued}, nil
}

// Dispatch lets the scheduler start a campaign.
func (uc *CampaignUseCase) Dispatch(ctx context.Context, campaignID string) error {
	_, err := uc.Execute(ctx, campaignID)
	return err
}

func (uc *CampaignUseCase) emailTemplate(id string) (entity.Template, error) {
	tmpl, err := uc.Catalog.Get(id)
	if err != nil {
		if errors.Is(err, templating.ErrTemplateNotFound) {
			return tmpl, &DomainError{Code: CodeTemplateNotFound, Message: "template not found: " + id, Err: err}
		}
		return tmpl, &TechnicalError{Code: CodeTemplateNotFound, Message: "load template", Err: err}
	}
	if tmpl.Type != entity.TemplateTypeEmail {
		return tmpl, &DomainError{
			Code:    CodeValidation,
			Message: fmt.Sprintf("template %s is a %s template; campaigns send email", id, tmpl.Type),
		}
	}
	return tmpl, nil
}
