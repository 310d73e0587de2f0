package http

import (
	"github.com/docinblink/api/internal/infrastructure/dynamo"
	jwtinfra "github.com/docinblink/api/internal/infrastructure/jwt"
	s3infra "github.com/docinblink/api/internal/infrastructure/s3"
	"github.com/docinblink/api/internal/infrastructure/smtp"
	"github.com/docinblink/api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo          *dynamo.UserRepo
	SessionRepo       *dynamo.SessionRepo
	DoctorRepo        *dynamo.DoctorRepo
	AppointmentRepo   *dynamo.AppointmentRepo
	FamilyMemberRepo  *dynamo.FamilyMemberRepo
	MedicalRecordRepo *dynamo.MedicalRecordRepo
	PrescriptionRepo  *dynamo.PrescriptionRepo
	ProfileRepo       *dynamo.ProfileRepo
	FeedbackRepo      *dynamo.FeedbackRepo
	S3Store           *s3infra.Store
	Mailer            smtp.Mailer
	SMSSender         sns.SMSSender
	JWTProvider       *jwtinfra.Provider
}
