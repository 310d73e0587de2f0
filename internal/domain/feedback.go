package domain

import "time"

type Feedback struct {
	FeedbackID string    `json:"id" dynamodbav:"feedback_id"`
	DoctorID   string    `json:"doctor_id" dynamodbav:"doctor_id"`
	PatientID  string    `json:"patient_id" dynamodbav:"patient_id"`
	Message    string    `json:"message" dynamodbav:"message"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateFeedbackRequest struct {
	PatientID string `json:"patient_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}
