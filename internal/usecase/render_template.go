package usecase

import (
	"context"
	"errors"
	"maps"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/templating"
)

type RenderTemplateInput struct {
	TemplateID string            `json:"-"`
	Values     map[string]string `json:"values"`
	// LeadID pre-fills the standard variables from a stored lead; explicit
	// Values win.
	LeadID string `json:"lead_id,omitempty"`
}

type RenderTemplateOutput struct {
	TemplateID string              `json:"template_id"`
	Type       entity.TemplateType `json:"type"`
	Subject    string              `json:"subject,omitempty"`
	Body       string              `json:"body"`
	Content    string              `json:"content"`
	Missing    []string            `json:"missing,omitempty"`
}

type RenderTemplateUseCase struct {
	Catalog TemplateCatalog
	Leads   entity.LeadRepositoryInterface
}

func NewRenderTemplateUseCase(catalog TemplateCatalog, leads entity.LeadRepositoryInterface) *RenderTemplateUseCase {
	return &RenderTemplateUseCase{Catalog: catalog, Leads: leads}
}

func (uc *RenderTemplateUseCase) Execute(ctx context.Context, input RenderTemplateInput) (*RenderTemplateOutput, error) {
	tmpl, err := uc.Catalog.Get(input.TemplateID)
	if err != nil {
		if errors.Is(err, templating.ErrTemplateNotFound) {
			return nil, &DomainError{Code: CodeTemplateNotFound, Message: "template not found: " + input.TemplateID, Err: err}
		}
		return nil, &TechnicalError{Code: CodeTemplateNotFound, Message: "load template", Err: err}
	}

	values := map[string]string{}
	if input.LeadID != "" {
		if uc.Leads == nil {
			return nil, &DomainError{Code: CodeFeatureUnavailable, Message: "lead store is not configured"}
		}
		lead, err := uc.Leads.FindByID(ctx, input.LeadID)
		if err != nil {
			return nil, leadLookupError(input.LeadID, err)
		}
		values = templating.LeadValues(*lead)
	}
	maps.Copy(values, input.Values)

	content := templating.Render(tmpl, values)
	out := &RenderTemplateOutput{
		TemplateID: tmpl.ID,
		Type:       tmpl.Type,
		Body:       content,
		Content:    content,
		Missing:    templating.MissingRequired(tmpl, values),
	}
	if tmpl.Type == entity.TemplateTypeEmail {
		out.Subject, out.Body = templating.SplitSubject(content)
	}
	return out, nil
}

func leadLookupError(id string, err error) error {
	if errors.Is(err, entity.ErrLeadNotFound) {
		return &DomainError{Code: CodeLeadNotFound, Message: "lead not found: " + id, Err: err}
	}
	return &TechnicalError{Code: CodeDatabaseError, Message: "load lead", Err: err}
}
