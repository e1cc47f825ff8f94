package models

import "time"

type FloorType string

const (
	FloorTypeGround   FloorType = "ground"
	FloorTypeUpstairs FloorType = "upstairs"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// bookingTransitions lists the statuses reachable from each status
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted},
}

// CanTransitionTo reports whether a booking may move from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking rule defaults
const (
	DefaultBasicSqftLimit = 1000
	DefaultRequiredStaff  = 2
	MinPropertySqft       = 100
	MaxPropertySqft       = 10000
	MinFloors             = 1
	MaxFloors             = 10
	EarliestServiceTime   = "08:00"
	LatestServiceTime     = "18:00"
	DefaultServiceTime    = "09:00"
	MaxInstructionsLength = 1000
	DateFormat            = "2006-01-02"
	TimeFormat            = "15:04"
	NextStepAddOns        = "addons"
	NextStepBooking       = "booking"
)

// PropertyDetails is the first wizard step
type PropertyDetails struct {
	PropertySqft   int       `json:"property_sqft" dynamodbav:"property_sqft" validate:"required,gt=0"`
	NumberOfFloors int       `json:"number_of_floors" dynamodbav:"number_of_floors" validate:"required,min=1,max=10"`
	FloorType      FloorType `json:"floor_type" dynamodbav:"floor_type" validate:"required,oneof=ground upstairs"`
	HasOutdoorArea bool      `json:"has_outdoor_area" dynamodbav:"has_outdoor_area"`
}

// PropertyCheck is the outcome of validating property details against a package
type PropertyCheck struct {
	Valid             bool         `json:"valid"`
	IsBasicPackage    bool         `json:"is_basic_package"`
	ExceedsBasicLimit bool         `json:"exceeds_basic_limit"`
	ExceedsMaxSqft    bool         `json:"exceeds_max_sqft"`
	UpgradeSuggested  bool         `json:"upgrade_suggested"`
	Message           string       `json:"message,omitempty"`
	NextStep          string       `json:"next_step"`
	Errors            []FieldError `json:"errors,omitempty"`
}

// AddOnQuote is the running price for a package plus selected add-ons
type AddOnQuote struct {
	PackageID      string  `json:"package_id"`
	BasePrice      int     `json:"base_price"`
	SelectedAddOns []AddOn `json:"selected_add_ons"`
	AddOnTotal     int     `json:"add_on_total"`
	GrandTotal     int     `json:"grand_total"`
}

// AddOnIDs returns the ids of the selected add-ons.
func (q *AddOnQuote) AddOnIDs() []string {
	ids := make([]string, 0, len(q.SelectedAddOns))
	for _, a := range q.SelectedAddOns {
		ids = append(ids, a.ID)
	}
	return ids
}

// BookingFormData is the contact, location and schedule step
type BookingFormData struct {
	CustomerName        string `json:"customer_name" dynamodbav:"customer_name" validate:"required,max=200"`
	CustomerPhone       string `json:"customer_phone" dynamodbav:"customer_phone" validate:"required"`
	PanchayathID        string `json:"panchayath_id" dynamodbav:"panchayath_id" validate:"required"`
	WardNumber          int    `json:"ward_number" dynamodbav:"ward_number" validate:"required,min=1"`
	Landmark            string `json:"landmark" dynamodbav:"landmark" validate:"required,max=300"`
	PropertySqft        int    `json:"property_sqft" dynamodbav:"property_sqft" validate:"min=0"`
	ScheduledDate       string `json:"scheduled_date" dynamodbav:"scheduled_date" validate:"required"`
	ScheduledTime       string `json:"scheduled_time" dynamodbav:"scheduled_time" validate:"required"`
	SpecialInstructions string `json:"special_instructions,omitempty" dynamodbav:"special_instructions,omitempty" validate:"max=1000"`
}

// Booking is a confirmed customer request for a package
type Booking struct {
	ID                  string          `json:"id" dynamodbav:"id"`
	CustomerID          string          `json:"customer_id" dynamodbav:"customer_id"`
	PackageID           string          `json:"package_id" dynamodbav:"package_id"`
	CustomerName        string          `json:"customer_name" dynamodbav:"customer_name"`
	CustomerPhone       string          `json:"customer_phone" dynamodbav:"customer_phone"`
	PanchayathID        string          `json:"panchayath_id" dynamodbav:"panchayath_id"`
	WardNumber          int             `json:"ward_number" dynamodbav:"ward_number"`
	Landmark            string          `json:"landmark" dynamodbav:"landmark"`
	PropertySqft        int             `json:"property_sqft" dynamodbav:"property_sqft"`
	Property            PropertyDetails `json:"property" dynamodbav:"property"`
	ScheduledDate       string          `json:"scheduled_date" dynamodbav:"scheduled_date"`
	ScheduledTime       string          `json:"scheduled_time" dynamodbav:"scheduled_time"`
	SpecialInstructions string          `json:"special_instructions,omitempty" dynamodbav:"special_instructions,omitempty"`
	AddOns              []string        `json:"add_ons" dynamodbav:"add_ons"`
	BasePrice           int             `json:"base_price" dynamodbav:"base_price"`
	AddOnTotal          int             `json:"add_on_total" dynamodbav:"add_on_total"`
	TotalPrice          int             `json:"total_price" dynamodbav:"total_price"`
	Status              BookingStatus   `json:"status" dynamodbav:"status"`
	RequiredStaffCount  int             `json:"required_staff_count" dynamodbav:"required_staff_count"`
	CreatedAt           time.Time       `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" dynamodbav:"updated_at"`
	UpdatedBy           string          `json:"updated_by,omitempty" dynamodbav:"updated_by,omitempty"`

	Package *Package `json:"package,omitempty" dynamodbav:"-"`
}

// RequiredStaff returns the number of staff the booking needs, falling back
// to fallback when unset.
func (b *Booking) RequiredStaff(fallback int) int {
	if b.RequiredStaffCount > 0 {
		return b.RequiredStaffCount
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultRequiredStaff
}

// CreateBookingRequest carries all wizard steps in one submission
type CreateBookingRequest struct {
	PackageID string          `json:"package_id" validate:"required"`
	Property  PropertyDetails `json:"property"`
	AddOns    []string        `json:"add_ons,omitempty"`
	Form      BookingFormData `json:"form"`
}

// ValidatePropertyRequest is the body of the property step check
type ValidatePropertyRequest struct {
	PackageID string          `json:"package_id" validate:"required"`
	Property  PropertyDetails `json:"property"`
}

// QuoteAddOnsRequest is the body of the add-on step quote
type QuoteAddOnsRequest struct {
	PackageID string   `json:"package_id" validate:"required"`
	AddOns    []string `json:"add_ons"`
}

// UpdateBookingStatusRequest moves a booking through its lifecycle
type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" validate:"required,oneof=pending confirmed in_progress completed cancelled"`
}

// BookingFilter narrows booking listings
type BookingFilter struct {
	Status       BookingStatus `json:"status,omitempty"`
	PanchayathID string        `json:"panchayath_id,omitempty"`
	CustomerID   string        `json:"customer_id,omitempty"`
}
