package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docinblink/api/internal/application/prescription"
	"github.com/docinblink/api/internal/domain"
	"github.com/docinblink/api/internal/pkg/validate"
	"github.com/docinblink/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// PrescriptionHandler handles prescription endpoints.
type PrescriptionHandler struct {
	svc prescription.Service
}

func NewPrescriptionHandler(svc prescription.Service) *PrescriptionHandler {
	return &PrescriptionHandler{svc: svc}
}

// Create issues a prescription from the signed-in doctor.
func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.Create(r.Context(), claims.UserID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ListMine returns the signed-in doctor's issued prescriptions.
func (h *PrescriptionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	prescriptions, err := h.svc.ListForDoctor(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListEnvelope{Data: prescriptions})
}

// ListForPatient returns a patient's prescriptions.
func (h *PrescriptionHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := h.svc.ListForPatient(r.Context(), chi.URLParam(r, "patientID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListEnvelope{Data: prescriptions})
}
