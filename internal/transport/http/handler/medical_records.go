package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docinblink/api/internal/application/record"
	"github.com/docinblink/api/internal/domain"
	"github.com/docinblink/api/internal/pkg/validate"
	"github.com/docinblink/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// MedicalRecordHandler handles medical record endpoints, including document
// attachments.
type MedicalRecordHandler struct {
	svc record.Service
}

func NewMedicalRecordHandler(svc record.Service) *MedicalRecordHandler {
	return &MedicalRecordHandler{svc: svc}
}

func (h *MedicalRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := h.svc.Create(r.Context(), claims.UserID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// ListForPatient returns a family member's records; file attachments come
// back with a short-lived download URL.
func (h *MedicalRecordHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	records, err := h.svc.ListForPatient(r.Context(), claims.UserID, chi.URLParam(r, "patientID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListEnvelope{Data: records})
}

func (h *MedicalRecordHandler) AttachFile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body struct {
		FileName string `json:"file_name"`
		Base64   string `json:"base64"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.FileName == "" || body.Base64 == "" {
		writeError(w, http.StatusBadRequest, "file_name and base64 required")
		return
	}
	rec, err := h.svc.AttachFile(r.Context(), claims.UserID, chi.URLParam(r, "id"), body.FileName, body.Base64)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}
