package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/infra/integration/kommo"
)

func TestSyncCRMByScore(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything, entity.LeadFilter{MinScore: 60, Limit: defaultSyncLimit}).Return([]entity.Lead{
		{ID: "l1", Name: "Acme"},
		{ID: "l2", Name: "Beta"},
	}, nil)

	crm := new(MockCRM)
	crm.On("PushLead", mock.Anything, mock.MatchedBy(func(l entity.Lead) bool { return l.ID == "l1" })).
		Return(kommo.PushResult{LeadID: "l1", KommoID: 10}, nil)
	crm.On("PushLead", mock.Anything, mock.MatchedBy(func(l entity.Lead) bool { return l.ID == "l2" })).
		Return(kommo.PushResult{}, errors.New("status 500"))

	out, err := NewSyncCRMUseCase(repo, crm, zap.NewNop()).Execute(context.Background(), SyncCRMInput{MinScore: 60})
	require.NoError(t, err)
	assert.Equal(t, []kommo.PushResult{{LeadID: "l1", KommoID: 10}}, out.Pushed)
	assert.Equal(t, []SyncFailure{{LeadID: "l2", Message: "push failed"}}, out.Failed)
}

func TestSyncCRMByIDs(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByIDs", mock.Anything, []string{"l1"}).Return([]entity.Lead{{ID: "l1"}}, nil)
	crm := new(MockCRM)
	crm.On("PushLead", mock.Anything, mock.Anything).Return(kommo.PushResult{LeadID: "l1"}, nil)

	out, err := NewSyncCRMUseCase(repo, crm, zap.NewNop()).Execute(context.Background(), SyncCRMInput{LeadIDs: []string{"l1"}})
	require.NoError(t, err)
	assert.Len(t, out.Pushed, 1)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSyncCRMErrors(t *testing.T) {
	_, err := NewSyncCRMUseCase(new(MockLeadRepository), nil, zap.NewNop()).Execute(context.Background(), SyncCRMInput{})
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeFeatureUnavailable, de.Code)

	_, err = NewSyncCRMUseCase(new(MockLeadRepository), new(MockCRM), zap.NewNop()).Execute(context.Background(), SyncCRMInput{MinScore: 101})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeValidation, de.Code)
}
