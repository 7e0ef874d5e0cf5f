package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
)

// Dispatcher starts sending a scheduled campaign.
type Dispatcher interface {
	Dispatch(ctx context.Context, campaignID string) error
}

// CampaignScheduler starts scheduled campaigns once their start date has
// passed and completes active ones past their end date.
type CampaignScheduler struct {
	repo         entity.CampaignRepositoryInterface
	dispatcher   Dispatcher
	tickInterval time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

func NewCampaignScheduler(repo entity.CampaignRepositoryInterface, dispatcher Dispatcher, logger *zap.Logger) *CampaignScheduler {
	return &CampaignScheduler{
		repo:         repo,
		dispatcher:   dispatcher,
		tickInterval: time.Minute,
		now:          time.Now,
		logger:       logger.Named("campaign-scheduler"),
	}
}

func (w *CampaignScheduler) Start(ctx context.Context) {
	w.logger.Info("campaign scheduler started", zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("campaign scheduler stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *CampaignScheduler) tick(ctx context.Context) {
	campaigns, err := w.repo.List(ctx)
	if err != nil {
		w.logger.Error("list campaigns", zap.Error(err))
		return
	}

	now := w.now()
	started, completed := 0, 0
	for _, c := range campaigns {
		switch {
		case c.Status == entity.CampaignStatusScheduled && !c.StartDate.After(now):
			if err := w.dispatcher.Dispatch(ctx, c.ID); err != nil {
				w.logger.Error("dispatch scheduled campaign", zap.String("campaign_id", c.ID), zap.Error(err))
				continue
			}
			started++
		case c.Status == entity.CampaignStatusActive && c.EndDate != nil && c.EndDate.Before(now):
			if err := w.repo.UpdateStatus(ctx, c.ID, entity.CampaignStatusCompleted); err != nil {
				w.logger.Error("complete campaign", zap.String("campaign_id", c.ID), zap.Error(err))
				continue
			}
			completed++
		}
	}

	if started > 0 || completed > 0 {
		w.logger.Info("campaigns updated", zap.Int("started", started), zap.Int("completed", completed))
	}
}
