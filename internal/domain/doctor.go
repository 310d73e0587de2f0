package domain

import "time"

// Doctor is the professional profile created right after a doctor signs up.
// Exactly one row per user; UserID is the link to the authenticated account.
type Doctor struct {
	DoctorID        string    `json:"id" dynamodbav:"doctor_id"`
	UserID          string    `json:"user_id" dynamodbav:"user_id"`
	FullName        string    `json:"full_name" dynamodbav:"full_name"`
	Specialization  string    `json:"specialization" dynamodbav:"specialization"`
	Qualification   string    `json:"qualification" dynamodbav:"qualification"`
	ExperienceYears int       `json:"experience_years" dynamodbav:"experience_years"`
	ConsultationFee float64   `json:"consultation_fee" dynamodbav:"consultation_fee"`
	IsAvailable     bool      `json:"is_available" dynamodbav:"is_available"`
	Enable          int       `json:"enable" dynamodbav:"enable"`
	CreatedAt       time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt       time.Time `json:"updated" dynamodbav:"updated_at"`
}
