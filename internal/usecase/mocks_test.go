package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/export"
	"github.com/xavierca1/leadlocal/internal/infra/integration/kommo"
	"github.com/xavierca1/leadlocal/internal/infra/queue"
	"github.com/xavierca1/leadlocal/internal/search"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*entity.Lead)
	return l, args.Error(1)
}

func (m *MockLeadRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.Lead, error) {
	args := m.Called(ctx, ids)
	l, _ := args.Get(0).([]entity.Lead)
	return l, args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, f entity.LeadFilter) ([]entity.Lead, error) {
	args := m.Called(ctx, f)
	l, _ := args.Get(0).([]entity.Lead)
	return l, args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, s entity.LeadStatus) error {
	return m.Called(ctx, id, s).Error(0)
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
	c, _ := args.Get(0).(*entity.Campaign)
	return c, args.Error(1)
}

func (m *MockCampaignRepository) List(ctx context.Context) ([]entity.Campaign, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]entity.Campaign)
	return c, args.Error(1)
}

func (m *MockCampaignRepository) UpdateStatus(ctx context.Context, id string, s entity.CampaignStatus) error {
	return m.Called(ctx, id, s).Error(0)
}

func (m *MockCampaignRepository) IncrementMetric(ctx context.Context, id, metric string) error {
	return m.Called(ctx, id, metric).Error(0)
}

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, req search.Request) (*search.Result, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*search.Result)
	return r, args.Error(1)
}

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, lead entity.Lead) ([]byte, error) {
	args := m.Called(ctx, lead)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishOutreach(ctx context.Context, job queue.OutreachJob) error {
	return m.Called(ctx, job).Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOutreach(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type MockCRM struct {
	mock.Mock
}

func (m *MockCRM) PushLead(ctx context.Context, lead entity.Lead) (kommo.PushResult, error) {
	args := m.Called(ctx, lead)
	r, _ := args.Get(0).(kommo.PushResult)
	return r, args.Error(1)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Store(ctx context.Context, f *export.File) (string, error) {
	args := m.Called(ctx, f)
	return args.String(0), args.Error(1)
}

type recordingNotifier struct {
	mu       sync.Mutex
	warnings []string
	errors   []string
}

func (n *recordingNotifier) Warn(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}
