package usecase

import (
	"context"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/export"
	"github.com/xavierca1/leadlocal/internal/infra/integration/kommo"
	"github.com/xavierca1/leadlocal/internal/infra/queue"
	"github.com/xavierca1/leadlocal/internal/search"
)

type LeadSearcher interface {
	Search(ctx context.Context, req search.Request) (*search.Result, error)
}

type LeadEnricher interface {
	Enrich(ctx context.Context, leads []entity.Lead) []entity.Lead
}

type TemplateCatalog interface {
	Get(id string) (entity.Template, error)
	List(typ entity.TemplateType) []entity.Template
}

type Exporter interface {
	Export(format export.Format, leads []entity.Lead) (*export.File, error)
}

type ExportArchive interface {
	Store(ctx context.Context, file *export.File) (string, error)
}

type QueueProducerInterface = queue.QueueProducerInterface

type EmailService interface {
	SendOutreach(to, subject, body string) error
}

type CRMClient interface {
	PushLead(ctx context.Context, lead entity.Lead) (kommo.PushResult, error)
}

// Notifier posts user-facing notifications.
type Notifier interface {
	Warn(message string)
	Error(message string)
}

type nopNotifier struct{}

func (nopNotifier) Warn(string)  {}
func (nopNotifier) Error(string) {}
