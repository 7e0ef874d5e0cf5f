package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/infra/integration/kommo"
)

const defaultSyncLimit = 100

type SyncCRMInput struct {
	LeadIDs  []string `json:"lead_ids"`
	MinScore int      `json:"min_score"`
}

type SyncFailure struct {
	LeadID  string `json:"lead_id"`
	Message string `json:"message"`
}

type SyncCRMOutput struct {
	Pushed []kommo.PushResult `json:"pushed"`
	Failed []SyncFailure      `json:"failed,omitempty"`
}

type SyncCRMUseCase struct {
	Leads  entity.LeadRepositoryInterface
	CRM    CRMClient
	Logger *zap.Logger
}

func NewSyncCRMUseCase(leads entity.LeadRepositoryInterface, crm CRMClient, logger *zap.Logger) *SyncCRMUseCase {
	return &SyncCRMUseCase{Leads: leads, CRM: crm, Logger: logger}
}

// Execute pushes the given leads, or the best stored ones scoring at least
// MinScore. A failing lead does not stop the others.
func (uc *SyncCRMUseCase) Execute(ctx context.Context, input SyncCRMInput) (*SyncCRMOutput, error) {
	if uc.CRM == nil || uc.Leads == nil {
		return nil, &DomainError{Code: CodeFeatureUnavailable, Message: "CRM sync is not configured"}
	}
	if input.MinScore < 0 || input.MinScore > 100 {
		return nil, validationDomainError([]ValidationError{{"min_score", "must be between 0 and 100"}})
	}

	var (
		leads []entity.Lead
		err   error
	)
	if len(input.LeadIDs) > 0 {
		leads, err = uc.Leads.FindByIDs(ctx, input.LeadIDs)
	} else {
		leads, err = uc.Leads.List(ctx, entity.LeadFilter{MinScore: input.MinScore, Limit: defaultSyncLimit})
	}
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "load leads", Err: err}
	}

	out := &SyncCRMOutput{Pushed: []kommo.PushResult{}}
	for _, lead := range leads {
		res, err := uc.CRM.PushLead(ctx, lead)
		if err != nil {
			uc.Logger.Warn("crm push failed", zap.String("lead_id", lead.ID), zap.Error(err))
			out.Failed = append(out.Failed, SyncFailure{LeadID: lead.ID, Message: "push failed"})
			continue
		}
		out.Pushed = append(out.Pushed, res)
	}

	uc.Logger.Info("crm sync finished", zap.Int("pushed", len(out.Pushed)), zap.Int("failed", len(out.Failed)))
	return out, nil
}
