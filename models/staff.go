package models

import "time"

// UserRole represents the role of a user
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleStaff    UserRole = "staff"
	UserRoleAdmin    UserRole = "admin"
)

// RoleAssignment is a row of the user_roles table
type RoleAssignment struct {
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Role      UserRole  `json:"role" dynamodbav:"role"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Profile holds contact details for any user
type Profile struct {
	UserID       string    `json:"user_id" dynamodbav:"user_id"`
	FullName     string    `json:"full_name" dynamodbav:"full_name"`
	Email        string    `json:"email" dynamodbav:"email"`
	Phone        *string   `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	PanchayathID string    `json:"panchayath_id,omitempty" dynamodbav:"panchayath_id,omitempty"`
	WardNumber   int       `json:"ward_number,omitempty" dynamodbav:"ward_number,omitempty"`
	UpdatedAt    time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// StaffDetails carries availability and skills for a staff user
type StaffDetails struct {
	UserID      string    `json:"user_id" dynamodbav:"user_id"`
	IsAvailable bool      `json:"is_available" dynamodbav:"is_available"`
	Skills      []string  `json:"skills" dynamodbav:"skills"`
	UpdatedAt   time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// StaffPanchayathAssignment records which wards of a panchayath a staff user covers
type StaffPanchayathAssignment struct {
	ID           string    `json:"id" dynamodbav:"id"`
	StaffUserID  string    `json:"staff_user_id" dynamodbav:"staff_user_id"`
	PanchayathID string    `json:"panchayath_id" dynamodbav:"panchayath_id"`
	WardNumbers  []int     `json:"ward_numbers" dynamodbav:"ward_numbers"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
}

// StaffProfile is the contact subset exposed in staff views
type StaffProfile struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
}

// PanchayathRef is a panchayath name reference
type PanchayathRef struct {
	Name string `json:"name"`
}

// StaffCoverage is one panchayath assignment inside a staff view
type StaffCoverage struct {
	PanchayathID string         `json:"panchayath_id"`
	WardNumbers  []int          `json:"ward_numbers"`
	Panchayath   *PanchayathRef `json:"panchayath,omitempty"`
}

// StaffMember is the denormalized staff view joined from roles, profiles,
// details and panchayath assignments
type StaffMember struct {
	UserID                string          `json:"user_id"`
	IsAvailable           bool            `json:"is_available"`
	Skills                []string        `json:"skills"`
	Profile               *StaffProfile   `json:"profile,omitempty"`
	PanchayathAssignments []StaffCoverage `json:"panchayath_assignments"`
}

// StaffContact is the short profile returned by panchayath lookups
type StaffContact struct {
	UserID   string  `json:"user_id"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
}

// UpdateStaffDetailsRequest toggles availability and replaces skills
type UpdateStaffDetailsRequest struct {
	IsAvailable *bool    `json:"is_available" validate:"required"`
	Skills      []string `json:"skills,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// StaffEarning is a payout line for a staff user
type StaffEarning struct {
	ID          string    `json:"id" dynamodbav:"id"`
	StaffUserID string    `json:"staff_user_id" dynamodbav:"staff_user_id"`
	BookingID   string    `json:"booking_id" dynamodbav:"booking_id"`
	Amount      int       `json:"amount" dynamodbav:"amount"`
	Description string    `json:"description,omitempty" dynamodbav:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}
