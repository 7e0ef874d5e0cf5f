package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/insight"
)

type GenerateInsightsUseCase struct {
	Leads    entity.LeadRepositoryInterface
	Analyzer insight.Analyzer
	Logger   *zap.Logger
}

func NewGenerateInsightsUseCase(leads entity.LeadRepositoryInterface, analyzer insight.Analyzer, logger *zap.Logger) *GenerateInsightsUseCase {
	return &GenerateInsightsUseCase{Leads: leads, Analyzer: analyzer, Logger: logger}
}

// Execute analyzes a stored lead and saves the validated insight.
func (uc *GenerateInsightsUseCase) Execute(ctx context.Context, leadID string) (*entity.Lead, error) {
	if uc.Analyzer == nil || uc.Leads == nil {
		return nil, &DomainError{Code: CodeFeatureUnavailable, Message: "AI insights are not configured"}
	}

	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, leadLookupError(leadID, err)
	}

	raw, err := uc.Analyzer.Analyze(ctx, *lead)
	if err != nil {
		return nil, &TechnicalError{Code: CodeIntegrationError, Message: "analyze lead", Err: err}
	}

	in, err := insight.Parse(raw)
	if err != nil {
		uc.Logger.Warn("discarding malformed insight", zap.String("lead_id", leadID), zap.Error(err))
		return nil, &TechnicalError{Code: CodeInsightFailed, Message: "invalid analysis", Err: err}
	}

	if err := uc.Leads.SaveInsight(ctx, leadID, in); err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "save insight", Err: err}
	}

	merged := insight.Merge(*lead, in)
	return &merged, nil
}
