package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/docinblink/api/internal/application/account"
	"github.com/docinblink/api/internal/application/doctorauth"
	"github.com/go-chi/chi/v5"
)

// DoctorAuthHandler exposes the doctor sign-in / sign-up flow. Each request
// gets a fresh session client and flow; the attempt store is shared so the
// sign-up throttle holds across requests.
type DoctorAuthHandler struct {
	accounts    account.Service
	roles       doctorauth.RoleResolver
	profiles    doctorauth.ProfileCreator
	attempts    doctorauth.AttemptStore
	settleDelay time.Duration
}

func NewDoctorAuthHandler(
	accounts account.Service,
	roles doctorauth.RoleResolver,
	profiles doctorauth.ProfileCreator,
	attempts doctorauth.AttemptStore,
	settleDelay time.Duration,
) *DoctorAuthHandler {
	return &DoctorAuthHandler{
		accounts:    accounts,
		roles:       roles,
		profiles:    profiles,
		attempts:    attempts,
		settleDelay: settleDelay,
	}
}

// DoctorAuthEnvelope is the flow outcome returned to the client.
type DoctorAuthEnvelope struct {
	State        string          `json:"state"`
	Busy         bool            `json:"busy,omitempty"`
	Error        string          `json:"error,omitempty"`
	RedirectTo   string          `json:"redirect_to,omitempty"`
	SignUp       bool            `json:"sign_up"`
	Form         doctorauth.Form `json:"form"`
	Toasts       []string        `json:"toasts,omitempty"`
	AccessToken  string          `json:"access_token,omitempty"`
	RefreshToken string          `json:"refresh_token,omitempty"`
}

type toastCollector struct {
	toasts []string
}

func (t *toastCollector) Success(message string) {
	t.toasts = append(t.toasts, message)
}

// Submit runs one pass of the flow. The action URL parameter selects the
// mode: "sign-in" or "sign-up".
func (h *DoctorAuthHandler) Submit(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	if action != "sign-in" && action != "sign-up" {
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}

	var form doctorauth.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client := account.NewClient(h.accounts)
	toasts := &toastCollector{}
	flow := doctorauth.NewFlow(doctorauth.FlowDeps{
		Backend:     client,
		Roles:       h.roles,
		Profiles:    h.profiles,
		Notifier:    toasts,
		Attempts:    h.attempts,
		SettleDelay: h.settleDelay,
	})
	if action == "sign-up" {
		flow.SwitchMode()
	}

	res := flow.Submit(r.Context(), form)

	env := DoctorAuthEnvelope{
		State:        res.State.String(),
		Busy:         res.Busy,
		Error:        res.Err,
		RedirectTo:   res.RedirectTo,
		SignUp:       res.SignUp,
		Form:         res.Form,
		Toasts:       toasts.toasts,
		AccessToken:  client.Bearer(),
		RefreshToken: client.RefreshToken(),
	}

	status := http.StatusOK
	if res.State == doctorauth.StateFailed {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, env)
}
