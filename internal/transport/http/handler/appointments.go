package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docinblink/api/internal/application/appointment"
	"github.com/docinblink/api/internal/application/doctor"
	"github.com/docinblink/api/internal/domain"
	"github.com/docinblink/api/internal/pkg/validate"
	"github.com/docinblink/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// AppointmentHandler handles booking endpoints for patients and the review
// queue for doctors.
type AppointmentHandler struct {
	svc     appointment.Service
	doctors doctor.Service
}

func NewAppointmentHandler(svc appointment.Service, doctors doctor.Service) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, doctors: doctors}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.svc.Create(r.Context(), claims.UserID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *AppointmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	appts, err := h.svc.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListEnvelope{Data: appts})
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	a, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if a.UserID != claims.UserID && claims.Role != domain.RoleDoctor {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// ListPending returns the review queue for doctors.
func (h *AppointmentHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	appts, err := h.svc.ListPending(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListEnvelope{Data: appts})
}

func (h *AppointmentHandler) Accept(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	d, err := h.doctors.GetByUserID(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var body struct {
		Fee *float64 `json:"fee"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	if err := h.svc.Accept(r.Context(), chi.URLParam(r, "id"), d.DoctorID, body.Fee); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "appointment accepted"})
}

func (h *AppointmentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reject(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "appointment rejected"})
}
