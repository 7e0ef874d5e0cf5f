package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/infra/queue"
	"github.com/xavierca1/leadlocal/internal/templating"
)

const defaultDecisionMaker = "there"

// Outreach results passed to Record.
const (
	OutreachSent    = "sent"
	OutreachBounced = "bounced"
)

// ProcessOutreachUseCase sends one campaign email. Delivery failures are
// counted as bounced and do not fail the job; lookup failures do.
type ProcessOutreachUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Campaigns entity.CampaignRepositoryInterface
	Catalog   TemplateCatalog
	Mailer    EmailService
	Record    func(result string)
	Logger    *zap.Logger
}

func NewProcessOutreachUseCase(leads entity.LeadRepositoryInterface, campaigns entity.CampaignRepositoryInterface, catalog TemplateCatalog, mailer EmailService, logger *zap.Logger) *ProcessOutreachUseCase {
	return &ProcessOutreachUseCase{
		Leads:     leads,
		Campaigns: campaigns,
		Catalog:   catalog,
		Mailer:    mailer,
		Record:    func(string) {},
		Logger:    logger,
	}
}

func (uc *ProcessOutreachUseCase) ProcessOutreach(ctx context.Context, job queue.OutreachJob) error {
	lead, err := uc.Leads.FindByID(ctx, job.LeadID)
	if err != nil {
		return fmt.Errorf("load lead %s: %w", job.LeadID, err)
	}
	tmpl, err := uc.Catalog.Get(job.TemplateID)
	if err != nil {
		return err
	}

	if lead.Email == "" {
		uc.Logger.Info("lead has no email, counting as bounced", zap.String("lead_id", lead.ID))
		return uc.count(ctx, job.CampaignID, entity.MetricBounced)
	}

	values := templating.LeadValues(*lead)
	values["decision_maker"] = defaultDecisionMaker

	subject, body := templating.SplitSubject(templating.Render(tmpl, values))
	if subject == "" {
		subject = tmpl.Name
	}

	if err := uc.Mailer.SendOutreach(lead.Email, subject, body); err != nil {
		uc.Logger.Warn("outreach email bounced",
			zap.String("campaign_id", job.CampaignID),
			zap.String("lead_id", lead.ID),
			zap.Error(err),
		)
		return uc.count(ctx, job.CampaignID, entity.MetricBounced)
	}

	if lead.Status == entity.LeadStatusNew {
		if err := uc.Leads.UpdateStatus(ctx, lead.ID, entity.LeadStatusContacted); err != nil {
			uc.Logger.Warn("could not mark lead contacted", zap.String("lead_id", lead.ID), zap.Error(err))
		}
	}
	return uc.count(ctx, job.CampaignID, entity.MetricSent)
}

func (uc *ProcessOutreachUseCase) count(ctx context.Context, campaignID, metric string) error {
	uc.Record(metric)
	if err := uc.Campaigns.IncrementMetric(ctx, campaignID, metric); err != nil {
		uc.Logger.Error("increment campaign metric",
			zap.String("campaign_id", campaignID),
			zap.String("metric", metric),
			zap.Error(err),
		)
	}
	return nil
}
