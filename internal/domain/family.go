package domain

import "time"

// FamilyMember is a dependent managed by an account holder. Medical
// records hang off family members, not off the account itself.
type FamilyMember struct {
	MemberID     string    `json:"id" dynamodbav:"member_id"`
	UserID       string    `json:"user_id" dynamodbav:"user_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	Relationship string    `json:"relationship" dynamodbav:"relationship"`
	DateOfBirth  *string   `json:"date_of_birth,omitempty" dynamodbav:"date_of_birth"`
	HealthIssues *string   `json:"health_issues,omitempty" dynamodbav:"health_issues"`
	Allergies    *string   `json:"allergies,omitempty" dynamodbav:"allergies"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateFamilyMemberRequest struct {
	Name         string  `json:"name" validate:"required"`
	Relationship string  `json:"relationship" validate:"required"`
	DateOfBirth  *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	HealthIssues *string `json:"health_issues"`
	Allergies    *string `json:"allergies"`
}
