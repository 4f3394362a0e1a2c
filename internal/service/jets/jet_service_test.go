package jets

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockJetRepository struct {
	mock.Mock
}

func (m *MockJetRepository) Create(ctx context.Context, jet *domain.Jet) error {
	args := m.Called(ctx, jet)
	return args.Error(0)
}

func (m *MockJetRepository) GetByID(ctx context.Context, id string) (*domain.Jet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Jet), args.Error(1)
}

func (m *MockJetRepository) Update(ctx context.Context, jet *domain.Jet) error {
	args := m.Called(ctx, jet)
	return args.Error(0)
}

func (m *MockJetRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJetRepository) List(ctx context.Context, filter domain.JetFilter) ([]domain.Jet, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Jet), args.Get(1).(int64), args.Error(2)
}

func (m *MockJetRepository) ListAll(ctx context.Context, page, limit int) ([]domain.Jet, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]domain.Jet), args.Get(1).(int64), args.Error(2)
}

type MockJetCache struct {
	mock.Mock
}

func (m *MockJetCache) GetJets(ctx context.Context) ([]domain.Jet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Jet), args.Error(1)
}

func (m *MockJetCache) SetJets(ctx context.Context, jets []domain.Jet) error {
	args := m.Called(ctx, jets)
	return args.Error(0)
}

func (m *MockJetCache) InvalidateJets(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func validJet() *domain.Jet {
	return &domain.Jet{
		Name:       "Citation XLS",
		Category:   domain.JetCategoryMidsize,
		Seats:      9,
		RangeNM:    1800,
		SpeedKts:   440,
		HourlyRate: 3200,
		IsActive:   true,
	}
}

func TestJetService_List_CacheHit(t *testing.T) {
	mockRepo := &MockJetRepository{}
	mockCache := &MockJetCache{}
	service := NewJetService(mockRepo, mockCache)

	ctx := context.Background()
	cached := []domain.Jet{{ID: "jet-1", Name: "Phenom 300"}}
	mockCache.On("GetJets", ctx).Return(cached, nil).Once()

	jets, total, err := service.List(ctx, domain.JetFilter{Page: 1, Limit: 20})

	assert.NoError(t, err)
	assert.Equal(t, cached, jets)
	assert.Equal(t, int64(1), total)
	mockRepo.AssertNotCalled(t, "List")
}

func TestJetService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockJetRepository{}
	mockCache := &MockJetCache{}
	service := NewJetService(mockRepo, mockCache)

	ctx := context.Background()
	filter := domain.JetFilter{Page: 1, Limit: 20}
	fromDB := []domain.Jet{{ID: "jet-1"}, {ID: "jet-2"}}

	mockCache.On("GetJets", ctx).Return(nil, errors.New("redis: nil")).Once()
	mockRepo.On("List", ctx, filter).Return(fromDB, int64(2), nil).Once()
	mockCache.On("SetJets", ctx, fromDB).Return(nil).Once()

	jets, total, err := service.List(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, fromDB, jets)
	assert.Equal(t, int64(2), total)
	mockCache.AssertExpectations(t)
}

// Filtered queries always bypass the cache.
func TestJetService_List_FilteredSkipsCache(t *testing.T) {
	mockRepo := &MockJetRepository{}
	mockCache := &MockJetCache{}
	service := NewJetService(mockRepo, mockCache)

	ctx := context.Background()
	filter := domain.JetFilter{Category: domain.JetCategoryHeavy, Page: 1, Limit: 20}
	mockRepo.On("List", ctx, filter).Return([]domain.Jet{}, int64(0), nil).Once()

	_, _, err := service.List(ctx, filter)

	assert.NoError(t, err)
	mockCache.AssertNotCalled(t, "GetJets")
	mockCache.AssertNotCalled(t, "SetJets")
}

func TestJetService_Create_Success(t *testing.T) {
	mockRepo := &MockJetRepository{}
	mockCache := &MockJetCache{}
	service := NewJetService(mockRepo, mockCache)

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Jet")).Return(nil).Once()
	mockCache.On("InvalidateJets", ctx).Return(nil).Once()

	created, err := service.Create(ctx, validJet())

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	mockCache.AssertExpectations(t)
}

func TestJetService_Create_Validation(t *testing.T) {
	service := NewJetService(nil, nil)
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*domain.Jet)
	}{
		{"missing name", func(j *domain.Jet) { j.Name = "" }},
		{"bad category", func(j *domain.Jet) { j.Category = "supersonic" }},
		{"zero seats", func(j *domain.Jet) { j.Seats = 0 }},
		{"zero range", func(j *domain.Jet) { j.RangeNM = 0 }},
		{"zero speed", func(j *domain.Jet) { j.SpeedKts = 0 }},
		{"negative rate", func(j *domain.Jet) { j.HourlyRate = -1 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			jet := validJet()
			tc.mutate(jet)

			created, err := service.Create(ctx, jet)

			assert.Nil(t, created)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestJetService_Update_InvalidatesCache(t *testing.T) {
	mockRepo := &MockJetRepository{}
	mockCache := &MockJetCache{}
	service := NewJetService(mockRepo, mockCache)

	ctx := context.Background()
	jet := validJet()
	jet.ID = "jet-1"

	mockRepo.On("Update", ctx, jet).Return(nil).Once()
	mockCache.On("InvalidateJets", ctx).Return(nil).Once()

	updated, err := service.Update(ctx, jet)

	assert.NoError(t, err)
	assert.Equal(t, jet, updated)
	mockCache.AssertExpectations(t)
}

func TestJetService_Delete_NotFound(t *testing.T) {
	mockRepo := &MockJetRepository{}
	mockCache := &MockJetCache{}
	service := NewJetService(mockRepo, mockCache)

	ctx := context.Background()
	mockRepo.On("Delete", ctx, "missing").Return(domain.ErrJetNotFound).Once()

	err := service.Delete(ctx, "missing")

	assert.ErrorIs(t, err, domain.ErrJetNotFound)
	mockCache.AssertNotCalled(t, "InvalidateJets")
}
