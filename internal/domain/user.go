package domain

import "time"

type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Email        string     `json:"email" dynamodbav:"email"`
	Phone        *string    `json:"phone" dynamodbav:"phone"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	FullName     string     `json:"full_name" dynamodbav:"full_name"`
	Role         string     `json:"role" dynamodbav:"role"`
	Enable       int        `json:"enable" dynamodbav:"enable"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// SignUpMetadata carries extra attributes attached to a new account at
// registration time.
type SignUpMetadata struct {
	FullName string `json:"full_name"`
	IsDoctor bool   `json:"is_doctor"`
}
