package http

import (
	"net/http"

	"github.com/docinblink/api/internal/application/account"
	"github.com/docinblink/api/internal/application/appointment"
	"github.com/docinblink/api/internal/application/doctor"
	"github.com/docinblink/api/internal/application/doctorauth"
	"github.com/docinblink/api/internal/application/family"
	"github.com/docinblink/api/internal/application/feedback"
	"github.com/docinblink/api/internal/application/prescription"
	"github.com/docinblink/api/internal/application/profile"
	"github.com/docinblink/api/internal/application/record"
	"github.com/docinblink/api/internal/config"
	"github.com/docinblink/api/internal/domain"
	"github.com/docinblink/api/internal/transport/http/handler"
	appmiddleware "github.com/docinblink/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10, applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	accountSvc := account.NewService(account.ServiceDeps{
		UserRepo:        deps.UserRepo,
		SessionRepo:     deps.SessionRepo,
		ProfileRepo:     deps.ProfileRepo,
		JWTProvider:     deps.JWTProvider,
		Mailer:          deps.Mailer,
		RefreshTokenDur: cfg.RefreshTokenDur,
	})
	doctorSvc := doctor.NewService(deps.DoctorRepo)
	appointmentSvc := appointment.NewService(appointment.ServiceDeps{
		Repo: deps.AppointmentRepo,
		SMS:  deps.SMSSender,
	})
	familySvc := family.NewService(deps.FamilyMemberRepo)
	recordSvc := record.NewService(record.ServiceDeps{
		Repo:     deps.MedicalRecordRepo,
		Families: deps.FamilyMemberRepo,
		Files:    deps.S3Store,
	})
	prescriptionSvc := prescription.NewService(deps.PrescriptionRepo, deps.DoctorRepo)
	feedbackSvc := feedback.NewService(deps.FeedbackRepo, deps.DoctorRepo)
	profileSvc := profile.NewService(deps.ProfileRepo)

	healthH := handler.NewHealthHandler()
	sessionH := handler.NewSessionHandler(accountSvc)
	userH := handler.NewUserHandler(accountSvc)
	doctorAuthH := handler.NewDoctorAuthHandler(
		accountSvc, doctorSvc, doctorSvc, doctorauth.NewMemoryAttempts(), cfg.SignupSettleDelay)
	appointmentH := handler.NewAppointmentHandler(appointmentSvc, doctorSvc)
	familyH := handler.NewFamilyMemberHandler(familySvc)
	recordH := handler.NewMedicalRecordHandler(recordSvc)
	prescriptionH := handler.NewPrescriptionHandler(prescriptionSvc)
	feedbackH := handler.NewFeedbackHandler(feedbackSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	doctorH := handler.NewDoctorHandler(doctorSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.Get("/test", healthH.Test)
		r.Post("/test", healthH.Test)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.Post("/sessions/refresh", sessionH.Refresh)
		r.With(sensitiveRL.Limit).Post("/users", userH.Register)
		r.With(sensitiveRL.Limit).Post("/doctor-auth/{action}", doctorAuthH.Submit)
		r.Get("/doctors", doctorH.List)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", sessionH.GetCurrent)
			r.Post("/sessions/logout", sessionH.Logout)

			r.Post("/appointments", appointmentH.Create)
			r.Get("/appointments", appointmentH.ListMine)
			r.Get("/appointments/{id}", appointmentH.Get)

			r.Post("/family-members", familyH.Create)
			r.Get("/family-members", familyH.List)
			r.Delete("/family-members/{id}", familyH.Delete)

			r.Post("/medical-records", recordH.Create)
			r.Post("/medical-records/{id}/file", recordH.AttachFile)
			r.Get("/patients/{patientID}/medical-records", recordH.ListForPatient)
			r.Get("/patients/{patientID}/prescriptions", prescriptionH.ListForPatient)
			r.Get("/patients/{patientID}/feedback", feedbackH.ListForPatient)

			r.Get("/profiles/me", profileH.GetMine)
			r.Put("/profiles/me", profileH.UpdateMine)

			// Doctor-only routes: the role claim gets the caller in the door,
			// the profile lookup confirms the doctor row actually exists.
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleDoctor))
				r.Use(appmiddleware.RequireDoctor(doctorSvc))

				r.Get("/appointments/pending", appointmentH.ListPending)
				r.Post("/appointments/{id}/accept", appointmentH.Accept)
				r.Post("/appointments/{id}/reject", appointmentH.Reject)

				r.Post("/prescriptions", prescriptionH.Create)
				r.Get("/prescriptions", prescriptionH.ListMine)

				r.Post("/feedback", feedbackH.Create)

				r.Get("/doctors/me", doctorH.GetMine)
				r.Put("/doctors/availability", doctorH.SetAvailability)
			})
		})
	})

	return r
}
