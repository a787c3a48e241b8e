package api

// =============================================================================
// Request Types
// =============================================================================

// CreatePatientRequest is the request body for creating a patient.
// Every field except id is required; id is generated when omitted.
type CreatePatientRequest struct {
	ID     string   `json:"id,omitempty"`
	Name   *string  `json:"name"`
	City   *string  `json:"city"`
	Age    *int     `json:"age"`
	Gender *string  `json:"gender"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

// UpdatePatientRequest is the request body for a partial update. Fields
// left out of the JSON stay untouched on the stored record.
type UpdatePatientRequest struct {
	Name   *string  `json:"name"`
	City   *string  `json:"city"`
	Age    *int     `json:"age"`
	Gender *string  `json:"gender"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

// =============================================================================
// Response Types
// =============================================================================

// PatientResponse is the response for patient operations. BMI and its
// category are derived from the stored fields on every response.
type PatientResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Age         int     `json:"age"`
	Gender      string  `json:"gender"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	BMI         float64 `json:"bmi"`
	BMICategory string  `json:"bmi_category"`
}

// ErrorResponse is the error response format.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// MessageResponse is the response for informational endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is the readiness check response.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
