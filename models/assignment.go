package models

import "time"

type AssignmentStatus string

const (
	AssignmentStatusPending  AssignmentStatus = "pending"
	AssignmentStatusAccepted AssignmentStatus = "accepted"
	AssignmentStatusRejected AssignmentStatus = "rejected"
)

// BookingStaffAssignment links a staff user to a booking
type BookingStaffAssignment struct {
	ID          string           `json:"id" dynamodbav:"id"`
	BookingID   string           `json:"booking_id" dynamodbav:"booking_id"`
	StaffUserID string           `json:"staff_user_id" dynamodbav:"staff_user_id"`
	Status      AssignmentStatus `json:"status" dynamodbav:"status"`
	AssignedAt  time.Time        `json:"assigned_at" dynamodbav:"assigned_at"`
	UpdatedAt   time.Time        `json:"updated_at,omitempty" dynamodbav:"updated_at,omitempty"`
}

// AssignStaffRequest replaces the staff assigned to a booking
type AssignStaffRequest struct {
	StaffUserIDs []string `json:"staff_user_ids" validate:"required,min=1,dive,required"`
}

// UpdateAssignmentStatusRequest is a staff response to an assignment
type UpdateAssignmentStatusRequest struct {
	Status AssignmentStatus `json:"status" validate:"required,oneof=accepted rejected"`
}

// MyJob is an assignment of the calling staff user joined with its booking
type MyJob struct {
	ID         string           `json:"id"`
	BookingID  string           `json:"booking_id"`
	Status     AssignmentStatus `json:"status"`
	AssignedAt time.Time        `json:"assigned_at"`
	Booking    *Booking         `json:"booking,omitempty"`
}

// AvailableJob is a confirmed booking that still needs staff
type AvailableJob struct {
	Booking
	AcceptedCount int `json:"accepted_count"`
}
