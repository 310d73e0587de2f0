package domain

import "time"

type Prescription struct {
	PrescriptionID string    `json:"id" dynamodbav:"prescription_id"`
	DoctorID       string    `json:"doctor_id" dynamodbav:"doctor_id"`
	PatientID      string    `json:"patient_id" dynamodbav:"patient_id"`
	MedicationName string    `json:"medication_name" dynamodbav:"medication_name"`
	Dosage         string    `json:"dosage" dynamodbav:"dosage"`
	Frequency      string    `json:"frequency" dynamodbav:"frequency"`
	Duration       string    `json:"duration" dynamodbav:"duration"`
	Notes          *string   `json:"notes,omitempty" dynamodbav:"notes"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreatePrescriptionRequest struct {
	PatientID      string  `json:"patient_id" validate:"required"`
	MedicationName string  `json:"medication_name" validate:"required"`
	Dosage         string  `json:"dosage" validate:"required"`
	Frequency      string  `json:"frequency" validate:"required"`
	Duration       string  `json:"duration" validate:"required"`
	Notes          *string `json:"notes"`
}
