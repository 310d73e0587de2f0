package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docinblink/api/internal/application/feedback"
	"github.com/docinblink/api/internal/domain"
	"github.com/docinblink/api/internal/pkg/validate"
	"github.com/docinblink/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// FeedbackHandler handles doctor-to-patient feedback endpoints.
type FeedbackHandler struct {
	svc feedback.Service
}

func NewFeedbackHandler(svc feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// Create sends a feedback message from the signed-in doctor to a patient.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	f, err := h.svc.Create(r.Context(), claims.UserID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// ListForPatient returns the feedback sent to a patient.
func (h *FeedbackHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListForPatient(r.Context(), chi.URLParam(r, "patientID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListEnvelope{Data: items})
}
