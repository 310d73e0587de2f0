package domain

import "time"

// Appointment lifecycle. A booking starts pending; a doctor accepts or
// rejects it; the daily sweep expires pending bookings whose preferred
// time has passed.
const (
	AppointmentPending  = "pending"
	AppointmentAccepted = "accepted"
	AppointmentRejected = "rejected"
	AppointmentExpired  = "expired"
)

type Appointment struct {
	AppointmentID  string    `json:"id" dynamodbav:"appointment_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	DoctorID       *string   `json:"doctor_id,omitempty" dynamodbav:"doctor_id"`
	Name           string    `json:"name" dynamodbav:"name"`
	Email          string    `json:"email" dynamodbav:"email"`
	Phone          string    `json:"phone" dynamodbav:"phone"`
	Address1       string    `json:"address1" dynamodbav:"address1"`
	Address2       *string   `json:"address2,omitempty" dynamodbav:"address2"`
	City           string    `json:"city" dynamodbav:"city"`
	State          string    `json:"state" dynamodbav:"state"`
	Pincode        string    `json:"pincode" dynamodbav:"pincode"`
	Location       string    `json:"location" dynamodbav:"location"`
	Symptoms       *string   `json:"symptoms,omitempty" dynamodbav:"symptoms"`
	MedicalHistory *string   `json:"medical_history,omitempty" dynamodbav:"medical_history"`
	NeedsAmbulance bool      `json:"needs_ambulance" dynamodbav:"needs_ambulance"`
	PreferredTime  time.Time `json:"preferred_time" dynamodbav:"preferred_time"`
	Fee            *float64  `json:"fee,omitempty" dynamodbav:"fee"`
	Status         string    `json:"status" dynamodbav:"status"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateAppointmentRequest struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          string  `json:"phone" validate:"required"`
	Address1       string  `json:"address1" validate:"required"`
	Address2       *string `json:"address2"`
	City           string  `json:"city" validate:"required"`
	State          string  `json:"state" validate:"required"`
	Pincode        string  `json:"pincode" validate:"required,len=6,numeric"`
	Location       string  `json:"location" validate:"required"`
	Symptoms       *string `json:"symptoms"`
	MedicalHistory *string `json:"medical_history"`
	NeedsAmbulance bool    `json:"needs_ambulance"`
	PreferredTime  string  `json:"preferred_time" validate:"required"` // RFC 3339
}
