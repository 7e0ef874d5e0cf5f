package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/infra/queue"
	"github.com/xavierca1/leadlocal/internal/templating"
)

func newCampaignUseCase(repo *MockCampaignRepository, q QueueProducerInterface) *CampaignUseCase {
	return NewCampaignUseCase(repo, templating.MustDefault(), q, zap.NewNop())
}

func draftCampaign() *entity.Campaign {
	return &entity.Campaign{
		ID:         "c1",
		Status:     entity.CampaignStatusDraft,
		TemplateID: "value-proposition-direct",
		LeadIDs:    []string{"l1", "l2"},
	}
}

func TestDispatchEnqueuesOneJobPerLead(t *testing.T) {
	repo := new(MockCampaignRepository)
	repo.On("FindByID", mock.Anything, "c1").Return(draftCampaign(), nil)
	repo.On("UpdateStatus", mock.Anything, "c1", entity.CampaignStatusActive).Return(nil)

	q := new(MockQueueProducer)
	q.On("PublishOutreach", mock.Anything, mock.AnythingOfType("queue.OutreachJob")).Return(nil)

	out, err := newCampaignUseCase(repo, q).Execute(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, out.Enqueued)

	q.AssertCalled(t, "PublishOutreach", mock.Anything, queue.OutreachJob{CampaignID: "c1", LeadID: "l2", TemplateID: "value-proposition-direct"})
	repo.AssertExpectations(t)
}

func TestDispatchRollsBackStatusWhenQueueFails(t *testing.T) {
	repo := new(MockCampaignRepository)
	repo.On("FindByID", mock.Anything, "c1").Return(draftCampaign(), nil)
	repo.On("UpdateStatus", mock.Anything, "c1", entity.CampaignStatusActive).Return(nil)
	repo.On("UpdateStatus", mock.Anything, "c1", entity.CampaignStatusDraft).Return(nil)

	q := new(MockQueueProducer)
	q.On("PublishOutreach", mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	_, err := newCampaignUseCase(repo, q).Execute(context.Background(), "c1")
	require.Error(t, err)

	var te *TechnicalError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, CodeQueueError, te.Code)
	repo.AssertCalled(t, "UpdateStatus", mock.Anything, "c1", entity.CampaignStatusDraft)
}

func TestDispatchRejects(t *testing.T) {
	active := draftCampaign()
	active.Status = entity.CampaignStatusActive

	callScript := draftCampaign()
	callScript.TemplateID = "direct-engaging-call"

	empty := draftCampaign()
	empty.LeadIDs = nil

	tests := []struct {
		name     string
		campaign *entity.Campaign
		findErr  error
		code     string
	}{
		{"not found", nil, entity.ErrCampaignNotFound, CodeCampaignNotFound},
		{"already active", active, nil, CodeInvalidTransition},
		{"not an email template", callScript, nil, CodeValidation},
		{"no leads", empty, nil, CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCampaignRepository)
			repo.On("FindByID", mock.Anything, "c1").Return(tt.campaign, tt.findErr)

			_, err := newCampaignUseCase(repo, new(MockQueueProducer)).Execute(context.Background(), "c1")

			var de *DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.code, de.Code)
			repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDispatchWithoutQueue(t *testing.T) {
	err := newCampaignUseCase(new(MockCampaignRepository), nil).Dispatch(context.Background(), "c1")
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeFeatureUnavailable, de.Code)
}

func TestCreateCampaign(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour)

	repo := new(MockCampaignRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := newCampaignUseCase(repo, nil)
	uc.now = func() time.Time { return now }

	c, err := uc.Create(context.Background(), CreateCampaignInput{
		Name: " Spring push ", TemplateID: "problem-solution-appointment", LeadIDs: []string{"l1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Spring push", c.Name)
	assert.Equal(t, entity.CampaignStatusDraft, c.Status)
	assert.Equal(t, now, c.StartDate)
	assert.NotEmpty(t, c.ID)

	c, err = uc.Create(context.Background(), CreateCampaignInput{
		Name: "Later", TemplateID: "problem-solution-appointment", LeadIDs: []string{"l1"}, StartDate: &tomorrow,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CampaignStatusScheduled, c.Status)
}

func TestCreateCampaignValidation(t *testing.T) {
	uc := newCampaignUseCase(new(MockCampaignRepository), nil)

	_, err := uc.Create(context.Background(), CreateCampaignInput{TemplateID: "value-proposition-direct"})
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeValidation, de.Code)
	assert.Contains(t, de.Message, "name")
	assert.Contains(t, de.Message, "leads")

	_, err = uc.Create(context.Background(), CreateCampaignInput{Name: "x", TemplateID: "nope", LeadIDs: []string{"l1"}})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeTemplateNotFound, de.Code)
}
