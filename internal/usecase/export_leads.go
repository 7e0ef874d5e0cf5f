package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/export"
)

type ExportLeadsInput struct {
	Format string        `json:"format"`
	Leads  []entity.Lead `json:"leads,omitempty"`
	// LeadIDs loads the leads from the store instead of the request body.
	LeadIDs []string `json:"lead_ids,omitempty"`
	Archive bool     `json:"archive,omitempty"`
}

type ExportLeadsOutput struct {
	File       *export.File
	ArchiveKey string
}

type ExportLeadsUseCase struct {
	Exporter Exporter
	Archive  ExportArchive
	Leads    entity.LeadRepositoryInterface
	Notifier Notifier
	Logger   *zap.Logger
}

func NewExportLeadsUseCase(exporter Exporter, archive ExportArchive, leads entity.LeadRepositoryInterface, notifier Notifier, logger *zap.Logger) *ExportLeadsUseCase {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &ExportLeadsUseCase{
		Exporter: exporter,
		Archive:  archive,
		Leads:    leads,
		Notifier: notifier,
		Logger:   logger,
	}
}

func (uc *ExportLeadsUseCase) Execute(ctx context.Context, input ExportLeadsInput) (*ExportLeadsOutput, error) {
	format, err := export.ParseFormat(input.Format)
	if err != nil {
		return nil, &DomainError{Code: CodeUnsupportedFormat, Message: err.Error(), Err: err}
	}
	if input.Archive && uc.Archive == nil {
		return nil, &DomainError{Code: CodeFeatureUnavailable, Message: "export archive is not configured"}
	}

	leads := input.Leads
	if len(input.LeadIDs) > 0 {
		if uc.Leads == nil {
			return nil, &DomainError{Code: CodeFeatureUnavailable, Message: "lead store is not configured"}
		}
		if leads, err = uc.Leads.FindByIDs(ctx, input.LeadIDs); err != nil {
			return nil, &TechnicalError{Code: CodeDatabaseError, Message: "load leads", Err: err}
		}
	}

	file, err := uc.Exporter.Export(format, leads)
	if err != nil {
		uc.Logger.Error("export failed", zap.String("format", string(format)), zap.Int("leads", len(leads)), zap.Error(err))
		uc.Notifier.Error("Export failed. Please try again.")
		if errors.Is(err, export.ErrUnsupportedFormat) {
			return nil, &DomainError{Code: CodeUnsupportedFormat, Message: err.Error(), Err: err}
		}
		return nil, &TechnicalError{Code: CodeExportFailed, Message: "export failed", Err: err}
	}

	out := &ExportLeadsOutput{File: file}
	if input.Archive {
		key, err := uc.Archive.Store(ctx, file)
		if err != nil {
			uc.Notifier.Error("Export could not be archived. Please try again.")
			return nil, &TechnicalError{Code: CodeIntegrationError, Message: "archive export", Err: err}
		}
		out.ArchiveKey = key
	}
	return out, nil
}
