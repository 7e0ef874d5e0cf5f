package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/scoring"
	"github.com/xavierca1/leadlocal/internal/search"
)

// WarningLeadStore marks a warning raised by the lead store rather than by a
// search provider.
const WarningLeadStore = "lead_store"

type SearchLeadsOutput struct {
	Leads    []entity.Lead    `json:"leads"`
	Warnings []search.Warning `json:"warnings,omitempty"`
}

// SearchLeadsUseCase aggregates, optionally enriches, scores and stores
// leads. Enricher, Repo and Notifier are optional.
type SearchLeadsUseCase struct {
	Searcher LeadSearcher
	Enricher LeadEnricher
	Repo     entity.LeadRepositoryInterface
	Notifier Notifier
	Logger   *zap.Logger
}

func NewSearchLeadsUseCase(searcher LeadSearcher, enricher LeadEnricher, repo entity.LeadRepositoryInterface, notifier Notifier, logger *zap.Logger) *SearchLeadsUseCase {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &SearchLeadsUseCase{
		Searcher: searcher,
		Enricher: enricher,
		Repo:     repo,
		Notifier: notifier,
		Logger:   logger,
	}
}

func (uc *SearchLeadsUseCase) Execute(ctx context.Context, req search.Request) (*SearchLeadsOutput, error) {
	if errs := ValidateSearchRequest(req); len(errs) > 0 {
		return nil, validationDomainError(errs)
	}

	result, err := uc.Searcher.Search(ctx, req)
	if err != nil {
		uc.Notifier.Error("Search failed: no data provider responded. Please try again.")
		if errors.Is(err, search.ErrSearchFailed) {
			return nil, &TechnicalError{Code: CodeSearchFailed, Message: "all providers failed", Err: err}
		}
		return nil, &TechnicalError{Code: CodeSearchFailed, Message: "search failed", Err: err}
	}

	for _, w := range result.Warnings {
		uc.Notifier.Warn(fmt.Sprintf("%s is unavailable; results may be incomplete.", w.Provider))
	}

	leads := result.Leads
	if uc.Enricher != nil {
		leads = uc.Enricher.Enrich(ctx, leads)
	}
	leads = scoring.ScoreAll(leads)

	warnings := result.Warnings
	if uc.Repo != nil {
		if err := uc.persist(ctx, leads); err != nil {
			uc.Logger.Error("failed to store leads", zap.Error(err))
			warnings = append(warnings, search.Warning{Provider: WarningLeadStore, Message: "leads were not saved"})
		}
	}

	return &SearchLeadsOutput{Leads: leads, Warnings: warnings}, nil
}

// persist upserts in place so stored ids replace the fresh ones of
// businesses seen before.
func (uc *SearchLeadsUseCase) persist(ctx context.Context, leads []entity.Lead) error {
	for i := range leads {
		if err := uc.Repo.Upsert(ctx, &leads[i]); err != nil {
			return fmt.Errorf("lead %q: %w", leads[i].Name, err)
		}
	}
	return nil
}
