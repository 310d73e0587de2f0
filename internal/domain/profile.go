package domain

import "time"

// Profile is the lightweight public profile row created alongside every
// account (patients and doctors alike).
type Profile struct {
	UserID    string    `json:"id" dynamodbav:"user_id"`
	Email     *string   `json:"email,omitempty" dynamodbav:"email"`
	FullName  *string   `json:"full_name,omitempty" dynamodbav:"full_name"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

type UpdateProfileRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name"`
}
