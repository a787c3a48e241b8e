// Package api provides HTTP handlers for the patientd API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/medsuite/patientd/internal/core/patient"
	"github.com/medsuite/patientd/internal/shell/store"
)

// =============================================================================
// Handler
// =============================================================================

// Handler provides HTTP handlers for the API.
type Handler struct {
	store  store.Store
	logger *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, l *slog.Logger) *Handler {
	if l == nil {
		l = slog.Default()
	}
	return &Handler{
		store:  s,
		logger: l,
	}
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.jsonContentType)
	r.Use(h.requestIDHeader)

	// Service banner and health endpoints
	r.Get("/", h.handleRoot)
	r.Get("/about", h.handleAbout)
	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/patients", func(r chi.Router) {
			r.Post("/", h.handleCreatePatient)
			r.Get("/", h.handleListPatients)
			r.Get("/sort", h.handleSortPatients)
			r.Get("/{id}", h.handleGetPatient)
			r.Put("/{id}", h.handleUpdatePatient)
			r.Delete("/{id}", h.handleDeletePatient)
		})
	})

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// jsonContentType sets Content-Type header to application/json.
func (h *Handler) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Banner and Health Handlers
// =============================================================================

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, MessageResponse{Message: "Patient Management System"})
}

func (h *Handler) handleAbout(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, MessageResponse{Message: "HTTP server for the Patient Management System"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	if _, err := h.store.ListPatients(r.Context()); err != nil {
		checks["storage"] = "failed"
		h.writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{
			Status: "not_ready",
			Checks: checks,
		})
		return
	}
	checks["storage"] = "ok"

	h.writeJSON(w, http.StatusOK, ReadyResponse{
		Status: "ready",
		Checks: checks,
	})
}

// =============================================================================
// Patient Handlers
// =============================================================================

func (h *Handler) handleCreatePatient(w http.ResponseWriter, r *http.Request) {
	var req CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	rec, err := patient.Validate(patient.Update{
		Name:   req.Name,
		City:   req.City,
		Age:    req.Age,
		Gender: genderPtr(req.Gender),
		Height: req.Height,
		Weight: req.Weight,
	})
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "validation_error")
		return
	}

	id := req.ID
	if id == "" {
		id = "pat_" + uuid.New().String()[:8]
	}

	if err := h.store.CreatePatient(r.Context(), id, rec); err != nil {
		if errors.Is(err, store.ErrDuplicateID) {
			h.writeError(w, http.StatusConflict, "patient already exists", "patient_exists")
			return
		}
		h.logger.Error("failed to create patient", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create patient", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, patientToResponse(id, rec))
}

func (h *Handler) handleGetPatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.store.GetPatient(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "patient not found", "patient_not_found")
			return
		}
		h.logger.Error("failed to get patient", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get patient", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, patientToResponse(id, rec))
}

func (h *Handler) handleListPatients(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.ListPatients(r.Context())
	if err != nil {
		h.logger.Error("failed to list patients", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list patients", "internal_error")
		return
	}

	resp := make(map[string]PatientResponse, len(data))
	for id, rec := range data {
		resp[id] = patientToResponse(id, rec)
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSortPatients(w http.ResponseWriter, r *http.Request) {
	field, err := patient.ParseSortField(r.URL.Query().Get("sort_by"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "invalid_sort")
		return
	}
	order, err := patient.ParseSortOrder(r.URL.Query().Get("order"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "invalid_sort")
		return
	}

	data, err := h.store.ListPatients(r.Context())
	if err != nil {
		h.logger.Error("failed to list patients", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list patients", "internal_error")
		return
	}

	// Map iteration order is random; fix the tie-break order by id
	// before the stable sort.
	records := make([]patient.Keyed, 0, len(data))
	for id, rec := range data {
		records = append(records, patient.Keyed{ID: id, Record: rec})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	if err := patient.Sort(records, field, order); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "invalid_sort")
		return
	}

	resp := make([]PatientResponse, 0, len(records))
	for _, kr := range records {
		resp = append(resp, patientToResponse(kr.ID, kr.Record))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleUpdatePatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.store.GetPatient(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "patient not found", "patient_not_found")
			return
		}
		h.logger.Error("failed to get patient", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get patient", "internal_error")
		return
	}

	var req UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	// Merge-then-validate: overlay supplied fields onto the stored
	// record, then run the full validator before anything persists.
	candidate := patient.Merge(existing, patient.Update{
		Name:   req.Name,
		City:   req.City,
		Age:    req.Age,
		Gender: genderPtr(req.Gender),
		Height: req.Height,
		Weight: req.Weight,
	})
	rec, err := patient.Validate(candidate)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "validation_error")
		return
	}

	if err := h.store.UpdatePatient(r.Context(), id, rec); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "patient not found", "patient_not_found")
			return
		}
		h.logger.Error("failed to update patient", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update patient", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, patientToResponse(id, rec))
}

func (h *Handler) handleDeletePatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeletePatient(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "patient not found", "patient_not_found")
			return
		}
		h.logger.Error("failed to delete patient", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete patient", "internal_error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Response Helpers
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func patientToResponse(id string, rec patient.Record) PatientResponse {
	return PatientResponse{
		ID:          id,
		Name:        rec.Name,
		City:        rec.City,
		Age:         rec.Age,
		Gender:      string(rec.Gender),
		Height:      rec.Height,
		Weight:      rec.Weight,
		BMI:         rec.BMI(),
		BMICategory: rec.BMICategory(),
	}
}

// genderPtr converts a raw request gender to the domain type, keeping
// nil (field omitted) as nil.
func genderPtr(s *string) *patient.Gender {
	if s == nil {
		return nil
	}
	g := patient.Gender(*s)
	return &g
}
