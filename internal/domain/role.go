package domain

// Role names carried in JWT claims. A user registered through the doctor
// flow gets RoleDoctor; everyone else is RolePatient.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)
