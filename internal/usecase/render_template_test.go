package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/templating"
)

func TestRenderTemplateEmail(t *testing.T) {
	uc := NewRenderTemplateUseCase(templating.MustDefault(), nil)

	out, err := uc.Execute(context.Background(), RenderTemplateInput{
		TemplateID: "value-proposition-direct",
		Values:     map[string]string{"decision_maker": "Dana", "business_name": "Acme"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Boost Your Local Presence with Targeted Marketing Campaigns", out.Subject)
	assert.Contains(t, out.Body, "Hello Dana,")
	assert.Contains(t, out.Body, "in the [city] area")
	assert.Equal(t, []string{"city", "business_industry"}, out.Missing)
	assert.Contains(t, out.Content, "Subject:")
}

func TestRenderTemplateFromLead(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, "l1").Return(&entity.Lead{ID: "l1", Name: "Acme", Industry: "retail", City: "Austin"}, nil)

	uc := NewRenderTemplateUseCase(templating.MustDefault(), repo)
	out, err := uc.Execute(context.Background(), RenderTemplateInput{
		TemplateID: "direct-engaging-call",
		LeadID:     "l1",
		Values:     map[string]string{"decision_maker": "Sam", "city": "Round Rock"},
	})
	require.NoError(t, err)

	assert.Empty(t, out.Subject)
	assert.Equal(t, out.Content, out.Body)
	assert.Contains(t, out.Content, "Round Rock")
	assert.NotContains(t, out.Content, "Austin")
	assert.Empty(t, out.Missing)
}

func TestRenderTemplateNotFound(t *testing.T) {
	_, err := NewRenderTemplateUseCase(templating.MustDefault(), nil).Execute(context.Background(), RenderTemplateInput{TemplateID: "nope"})

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeTemplateNotFound, de.Code)
	assert.ErrorIs(t, err, templating.ErrTemplateNotFound)
}
