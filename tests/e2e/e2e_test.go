package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medsuite/patientd/internal/shell/api"
)

// =============================================================================
// Smoke Tests
// =============================================================================

func TestE2E_HealthCheck(t *testing.T) {
	baseURL := StartServer(t)

	code := DoJSON(t, http.MethodGet, baseURL+"/health", nil, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestE2E_ReadyCheck(t *testing.T) {
	baseURL := StartServer(t)

	code := DoJSON(t, http.MethodGet, baseURL+"/ready", nil, nil)
	assert.Equal(t, http.StatusOK, code)
}

// =============================================================================
// Patient Lifecycle
// =============================================================================

// TestE2E_PatientLifecycle walks a record through create, read, partial
// update, and delete, checking the derived fields at each step.
func TestE2E_PatientLifecycle(t *testing.T) {
	baseURL := StartServer(t)

	// Create P001
	var created api.PatientResponse
	code := DoJSON(t, http.MethodPost, baseURL+"/api/v1/patients", map[string]any{
		"id":     "P001",
		"name":   "Ann",
		"city":   "X",
		"age":    30,
		"gender": "female",
		"height": 1.6,
		"weight": 60,
	}, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 23.44, created.BMI)
	assert.Equal(t, "Normal weight", created.BMICategory)

	// Duplicate create is rejected
	code = DoJSON(t, http.MethodPost, baseURL+"/api/v1/patients", map[string]any{
		"id":     "P001",
		"name":   "Ann",
		"city":   "X",
		"age":    30,
		"gender": "female",
		"height": 1.6,
		"weight": 60,
	}, nil)
	assert.Equal(t, http.StatusConflict, code)

	// Read it back; stored fields round-trip
	var fetched api.PatientResponse
	code = DoJSON(t, http.MethodGet, baseURL+"/api/v1/patients/P001", nil, &fetched)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, created, fetched)

	// Partial update: only weight changes, derived fields follow
	var updated api.PatientResponse
	code = DoJSON(t, http.MethodPut, baseURL+"/api/v1/patients/P001", map[string]any{
		"weight": 80,
	}, &updated)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 31.25, updated.BMI)
	assert.Equal(t, "Obesity", updated.BMICategory)
	assert.Equal(t, 30, updated.Age)
	assert.Equal(t, "Ann", updated.Name)

	// Delete, then reads miss
	code = DoJSON(t, http.MethodDelete, baseURL+"/api/v1/patients/P001", nil, nil)
	require.Equal(t, http.StatusNoContent, code)

	code = DoJSON(t, http.MethodGet, baseURL+"/api/v1/patients/P001", nil, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

// =============================================================================
// Sorting
// =============================================================================

func TestE2E_SortByAge(t *testing.T) {
	baseURL := StartServer(t)

	for id, age := range map[string]int{"P001": 30, "P002": 10, "P003": 20} {
		code := DoJSON(t, http.MethodPost, baseURL+"/api/v1/patients", map[string]any{
			"id":     id,
			"name":   "Pat",
			"city":   "X",
			"age":    age,
			"gender": "other",
			"height": 1.7,
			"weight": 65,
		}, nil)
		require.Equal(t, http.StatusCreated, code)
	}

	var sorted []api.PatientResponse
	code := DoJSON(t, http.MethodGet, baseURL+"/api/v1/patients/sort?sort_by=age&order=asc", nil, &sorted)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, sorted, 3)
	assert.Equal(t, []int{10, 20, 30}, []int{sorted[0].Age, sorted[1].Age, sorted[2].Age})

	code = DoJSON(t, http.MethodGet, baseURL+"/api/v1/patients/sort?sort_by=bogus&order=asc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
