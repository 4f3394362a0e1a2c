package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockJetUseCase is a mock implementation of jets.JetUseCase
type MockJetUseCase struct {
	mock.Mock
}

func (m *MockJetUseCase) List(ctx context.Context, filter domain.JetFilter) ([]domain.Jet, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Jet), args.Get(1).(int64), args.Error(2)
}

func (m *MockJetUseCase) GetByID(ctx context.Context, id string) (*domain.Jet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Jet), args.Error(1)
}

func (m *MockJetUseCase) Create(ctx context.Context, jet *domain.Jet) (*domain.Jet, error) {
	args := m.Called(ctx, jet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Jet), args.Error(1)
}

func (m *MockJetUseCase) Update(ctx context.Context, jet *domain.Jet) (*domain.Jet, error) {
	args := m.Called(ctx, jet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Jet), args.Error(1)
}

func (m *MockJetUseCase) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJetUseCase) ListAll(ctx context.Context, page, limit int) ([]domain.Jet, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]domain.Jet), args.Get(1).(int64), args.Error(2)
}

func TestJetHandler_list(t *testing.T) {
	mockService := &MockJetUseCase{}
	handler := NewJetHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/jets?category=Light&seats_min=4&page=2", nil)

	expectedFilter := domain.JetFilter{
		Category: domain.JetCategoryLight,
		SeatsMin: 4,
		Page:     2,
	}
	items := []domain.Jet{{ID: "jet-1", Name: "Phenom 300"}}
	mockService.On("List", c.Request.Context(), expectedFilter).Return(items, int64(13), nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Items []domain.Jet `json:"items"`
		Page  int          `json:"page"`
		Pages int64        `json:"pages"`
		Total int64        `json:"total"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Items, 1)
	assert.Equal(t, 2, response.Page)
	assert.Equal(t, int64(2), response.Pages)
	assert.Equal(t, int64(13), response.Total)

	mockService.AssertExpectations(t)
}

func TestJetHandler_get(t *testing.T) {
	mockService := &MockJetUseCase{}
	handler := NewJetHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "jet-1"}}
	c.Request = httptest.NewRequest("GET", "/jets/jet-1", nil)

	jet := &domain.Jet{ID: "jet-1", Name: "Phenom 300", Category: domain.JetCategoryLight}
	mockService.On("GetByID", c.Request.Context(), "jet-1").Return(jet, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Jet domain.Jet `json:"jet"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Phenom 300", response.Jet.Name)
}

func TestJetHandler_get_notFound(t *testing.T) {
	mockService := &MockJetUseCase{}
	handler := NewJetHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Request = httptest.NewRequest("GET", "/jets/missing", nil)

	mockService.On("GetByID", c.Request.Context(), "missing").Return(nil, domain.ErrJetNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJetHandler_create(t *testing.T) {
	mockService := &MockJetUseCase{}
	handler := NewJetHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(gin.H{
		"name":        "Citation XLS",
		"category":    "Midsize",
		"seats":       9,
		"range_nm":    1800,
		"speed_kts":   440,
		"hourly_rate": 3200,
	})
	c.Request = httptest.NewRequest("POST", "/admin/jets", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Jet{ID: "jet-1", Name: "Citation XLS"}
	mockService.On("Create", c.Request.Context(), mock.AnythingOfType("*domain.Jet")).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

// Omitted availability flags default to true.
func TestJetRequest_toDomain_defaults(t *testing.T) {
	req := jetRequest{Name: "Phenom 300", Category: "Light"}
	jet := req.toDomain("jet-1")

	assert.True(t, jet.IsAvailable)
	assert.True(t, jet.IsActive)
	assert.Equal(t, "jet-1", jet.ID)

	off := false
	req.IsActive = &off
	jet = req.toDomain("jet-1")
	assert.False(t, jet.IsActive)
	assert.True(t, jet.IsAvailable)
}

func TestJetHandler_create_invalid(t *testing.T) {
	mockService := &MockJetUseCase{}
	handler := NewJetHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(gin.H{"category": "Light"})
	c.Request = httptest.NewRequest("POST", "/admin/jets", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Create", c.Request.Context(), mock.Anything).Return(nil, domain.ErrValidation)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJetHandler_remove(t *testing.T) {
	mockService := &MockJetUseCase{}
	handler := NewJetHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "jet-1"}}
	c.Request = httptest.NewRequest("DELETE", "/admin/jets/jet-1", nil)

	mockService.On("Delete", c.Request.Context(), "jet-1").Return(nil)

	handler.remove(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
