package domain

import "time"

// MedicalRecord belongs to a family member (PatientID). FileKey points at
// the S3 object when a document was attached.
type MedicalRecord struct {
	RecordID    string    `json:"id" dynamodbav:"record_id"`
	PatientID   string    `json:"patient_id" dynamodbav:"patient_id"`
	RecordType  string    `json:"record_type" dynamodbav:"record_type"`
	Description *string   `json:"description,omitempty" dynamodbav:"description"`
	DoctorName  *string   `json:"doctor_name,omitempty" dynamodbav:"doctor_name"`
	FileKey     *string   `json:"-" dynamodbav:"file_key"`
	FileURL     *string   `json:"file_url,omitempty" dynamodbav:"-"`
	RecordDate  time.Time `json:"record_date" dynamodbav:"record_date"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateMedicalRecordRequest struct {
	PatientID   string  `json:"patient_id" validate:"required"`
	RecordType  string  `json:"record_type" validate:"required"`
	Description *string `json:"description"`
	DoctorName  *string `json:"doctor_name"`
	RecordDate  string  `json:"record_date" validate:"omitempty,datetime=2006-01-02"`
}
