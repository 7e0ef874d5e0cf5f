package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/export"
	"github.com/xavierca1/leadlocal/internal/infra/integration/kommo"
	"github.com/xavierca1/leadlocal/internal/infra/queue"
	"github.com/xavierca1/leadlocal/internal/search"
)

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, req search.Request) (*search.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*search.Result), args.Error(1)
}

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.Lead, error) {
	args := m.Called(ctx, ids)
	leads, _ := args.Get(0).([]entity.Lead)
	return leads, args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, f entity.LeadFilter) ([]entity.Lead, error) {
	args := m.Called(ctx, f)
	leads, _ := args.Get(0).([]entity.Lead)
	return leads, args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockLeadRepository) SaveInsight(ctx context.Context, id string, in *entity.Insight) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockLeadRepository) UpdateContact(ctx context.Context, id string, c entity.LeadContact) error {
	return m.Called(ctx, id, c).Error(0)
}

type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) List(ctx context.Context) ([]entity.Campaign, error) {
	args := m.Called(ctx)
	campaigns, _ := args.Get(0).([]entity.Campaign)
	return campaigns, args.Error(1)
}

func (m *MockCampaignRepository) UpdateStatus(ctx context.Context, id string, status entity.CampaignStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockCampaignRepository) IncrementMetric(ctx context.Context, id, metric string) error {
	return m.Called(ctx, id, metric).Error(0)
}

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishOutreach(ctx context.Context, job queue.OutreachJob) error {
	return m.Called(ctx, job).Error(0)
}

type MockCRM struct {
	mock.Mock
}

func (m *MockCRM) PushLead(ctx context.Context, lead entity.Lead) (kommo.PushResult, error) {
	args := m.Called(ctx, lead)
	return args.Get(0).(kommo.PushResult), args.Error(1)
}

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, lead entity.Lead) ([]byte, error) {
	args := m.Called(ctx, lead)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Store(ctx context.Context, file *export.File) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}
