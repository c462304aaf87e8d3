package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentfolio/rentfolio-api/internal/models"
	"github.com/rentfolio/rentfolio-api/internal/repository"
	"github.com/rentfolio/rentfolio-api/internal/services"
	"github.com/rentfolio/rentfolio-api/pkg/logger"
	"github.com/stretchr/testify/assert"
)

type mockPropertyRepo struct {
	repository.PropertyRepository
	mockList   func(ctx context.Context, query *repository.ListQuery) ([]models.Property, int64, error)
	mockCreate func(ctx context.Context, property *models.Property) error
}

func (m *mockPropertyRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.Property, int64, error) {
	return m.mockList(ctx, query)
}

func (m *mockPropertyRepo) Create(ctx context.Context, property *models.Property) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, property)
	}
	return nil
}

type mockUnitRepo struct {
	repository.UnitRepository
	mockCreate func(ctx context.Context, unit *models.PropertyUnit) error
}

func (m *mockUnitRepo) Create(ctx context.Context, unit *models.PropertyUnit) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, unit)
	}
	return nil
}

func TestPropertyHandler_Index_Filters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockRepo := &mockPropertyRepo{}
	propertyService := services.NewPropertyService(mockRepo, nil, nil, nil)
	handler := NewPropertyHandler(propertyService)

	var captured *repository.ListQuery
	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Property, int64, error) {
		captured = query
		return []models.Property{{ID: 1, Address: "113 Maple St"}}, 1, nil
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/properties?status=Rented&archived=all&search_term=maple&page=2&per_page=10", nil)
	handler.Index(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Rented", captured.Filters["status"])
	assert.Equal(t, "all", captured.Filters["archived"])
	assert.Equal(t, "maple", captured.Search)
	assert.Equal(t, 2, captured.Page)
	assert.Equal(t, 10, captured.PerPage)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["total"])
	assert.Equal(t, float64(1), pagination["total_pages"])
}

func TestPropertyHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Setup("test")

	tests := []struct {
		name            string
		payload         map[string]interface{}
		expectedStatus  int
		expectedUnits   int
		expectedAddress string
	}{
		{
			name: "nested payload",
			payload: map[string]interface{}{
				"property": map[string]interface{}{
					"address":     "113 Maple St",
					"offer_price": 100000,
					"units":       2,
				},
			},
			expectedStatus:  http.StatusCreated,
			expectedUnits:   2,
			expectedAddress: "113 Maple St",
		},
		{
			name: "flat payload defaults to one unit",
			payload: map[string]interface{}{
				"address":     "8 Oak Ave",
				"offer_price": 85000,
			},
			expectedStatus:  http.StatusCreated,
			expectedUnits:   1,
			expectedAddress: "8 Oak Ave",
		},
		{
			name: "missing address",
			payload: map[string]interface{}{
				"offer_price": 85000,
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unitsSeeded := 0
			unitRepo := &mockUnitRepo{
				mockCreate: func(ctx context.Context, unit *models.PropertyUnit) error {
					unitsSeeded++
					assert.Equal(t, models.UnitStatusVacant, unit.Status)
					return nil
				},
			}
			propertyRepo := &mockPropertyRepo{}
			propertyService := services.NewPropertyService(propertyRepo, unitRepo, nil, nil)
			handler := NewPropertyHandler(propertyService)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			jsonBytes, _ := json.Marshal(tt.payload)
			c.Request, _ = http.NewRequest("POST", "/properties", bytes.NewBuffer(jsonBytes))
			c.Request.Header.Set("Content-Type", "application/json")
			handler.Create(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedUnits, unitsSeeded)

			if tt.expectedStatus == http.StatusCreated {
				var body map[string]interface{}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				property := body["property"].(map[string]interface{})
				assert.Equal(t, tt.expectedAddress, property["address"])
				assert.Equal(t, models.PropertyStatusOpportunity, property["status"])
			}
		})
	}
}

func TestPropertyHandler_Transition_RequiresEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewPropertyHandler(services.NewPropertyService(&mockPropertyRepo{}, nil, nil, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "property_id", Value: "1"}}
	c.Request, _ = http.NewRequest("POST", "/properties/1/transition", bytes.NewBufferString(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.Transition(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
