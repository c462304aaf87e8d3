package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type unitPayload struct {
	Status string  `json:"status"`
	Rent   float64 `json:"rent"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    unitPayload
		expectError bool
	}{
		{
			name:     "wrapped under the unit key",
			key:      "unit",
			body:     `{"unit": {"status": "Vacant", "rent": 950}}`,
			expected: unitPayload{Status: "Vacant", Rent: 950},
		},
		{
			name:     "flat body",
			key:      "unit",
			body:     `{"status": "Occupied", "rent": 1200}`,
			expected: unitPayload{Status: "Occupied", Rent: 1200},
		},
		{
			name:     "wrapper key absent falls back flat",
			key:      "unit",
			body:     `{"property_id": 7, "status": "Behind on Rent", "rent": 880}`,
			expected: unitPayload{Status: "Behind on Rent", Rent: 880},
		},
		{
			name:     "caller picks the wrapper key",
			key:      "property_unit",
			body:     `{"property_unit": {"status": "Vacant", "rent": 1050}}`,
			expected: unitPayload{Status: "Vacant", Rent: 1050},
		},
		{
			name:        "flat body with wrong field type",
			key:         "unit",
			body:        `{"status": "Vacant", "rent": "nine hundred"}`,
			expectError: true,
		},
		{
			name:        "wrapped body with wrong field type",
			key:         "unit",
			body:        `{"unit": {"status": "Vacant", "rent": "nine hundred"}}`,
			expectError: true,
		},
		{
			name:        "wrapper key holds a non-object",
			key:         "unit",
			body:        `{"unit": "Vacant"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result unitPayload
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
