package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docinblink/api/internal/application/doctor"
	"github.com/docinblink/api/internal/transport/http/middleware"
)

// DoctorHandler handles doctor directory and availability endpoints.
type DoctorHandler struct {
	svc doctor.Service
}

func NewDoctorHandler(svc doctor.Service) *DoctorHandler {
	return &DoctorHandler{svc: svc}
}

// List returns the doctor directory.
func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListEnvelope{Data: doctors})
}

// GetMine returns the signed-in doctor's own profile.
func (h *DoctorHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	d, err := h.svc.GetByUserID(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// SetAvailability toggles whether the signed-in doctor accepts bookings.
func (h *DoctorHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body struct {
		IsAvailable *bool `json:"is_available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.IsAvailable == nil {
		writeError(w, http.StatusBadRequest, "is_available required")
		return
	}
	if err := h.svc.SetAvailability(r.Context(), claims.UserID, *body.IsAvailable); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "availability updated"})
}
