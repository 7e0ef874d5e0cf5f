package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
)

type mockCampaignRepo struct {
	mock.Mock
}

func (m *mockCampaignRepo) Create(ctx context.Context, c *entity.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaignRepo) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Campaign)
	return c, args.Error(1)
}

func (m *mockCampaignRepo) List(ctx context.Context) ([]entity.Campaign, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]entity.Campaign)
	return c, args.Error(1)
}

func (m *mockCampaignRepo) UpdateStatus(ctx context.Context, id string, status entity.CampaignStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockCampaignRepo) IncrementMetric(ctx context.Context, id, metric string) error {
	return m.Called(ctx, id, metric).Error(0)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestSchedulerTick(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	past, future := now.Add(-time.Hour), now.Add(time.Hour)

	repo := new(mockCampaignRepo)
	repo.On("List", mock.Anything).Return([]entity.Campaign{
		{ID: "due", Status: entity.CampaignStatusScheduled, StartDate: past},
		{ID: "later", Status: entity.CampaignStatusScheduled, StartDate: future},
		{ID: "over", Status: entity.CampaignStatusActive, StartDate: past, EndDate: &past},
		{ID: "running", Status: entity.CampaignStatusActive, StartDate: past, EndDate: &future},
		{ID: "open-ended", Status: entity.CampaignStatusActive, StartDate: past},
		{ID: "draft", Status: entity.CampaignStatusDraft, StartDate: past},
	}, nil)
	repo.On("UpdateStatus", mock.Anything, "over", entity.CampaignStatusCompleted).Return(nil)

	disp := new(mockDispatcher)
	disp.On("Dispatch", mock.Anything, "due").Return(nil)

	s := NewCampaignScheduler(repo, disp, zap.NewNop())
	s.now = func() time.Time { return now }
	s.tick(context.Background())

	repo.AssertExpectations(t)
	disp.AssertExpectations(t)
	disp.AssertNumberOfCalls(t, "Dispatch", 1)
	repo.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestSchedulerContinuesAfterErrors(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)

	repo := new(mockCampaignRepo)
	repo.On("List", mock.Anything).Return([]entity.Campaign{
		{ID: "a", Status: entity.CampaignStatusScheduled, StartDate: past},
		{ID: "b", Status: entity.CampaignStatusScheduled, StartDate: past},
	}, nil)

	disp := new(mockDispatcher)
	disp.On("Dispatch", mock.Anything, "a").Return(errors.New("queue down"))
	disp.On("Dispatch", mock.Anything, "b").Return(nil)

	s := NewCampaignScheduler(repo, disp, zap.NewNop())
	s.tick(context.Background())

	disp.AssertExpectations(t)
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	repo := new(mockCampaignRepo)
	repo.On("List", mock.Anything).Return(nil, errors.New("db down"))

	s := NewCampaignScheduler(repo, new(mockDispatcher), zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
