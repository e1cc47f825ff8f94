package services

import (
	"fmt"
	"homeserve-backend/models"
	"homeserve-backend/utils"
	"regexp"
	"strings"
	"time"
)

var phonePattern = regexp.MustCompile(`^(\+91)?[0-9]{10}$`)

var (
	earliestService, _ = time.Parse(models.TimeFormat, models.EarliestServiceTime)
	latestService, _   = time.Parse(models.TimeFormat, models.LatestServiceTime)
)

// IsBasicPackage reports whether a package is on the basic tier
func IsBasicPackage(pkg *models.Package) bool {
	return pkg != nil && strings.Contains(strings.ToUpper(pkg.Name), "BASIC")
}

// CheckPropertyDetails validates the property step against a package.
// When both area limits are exceeded the basic-tier message is reported.
func CheckPropertyDetails(pkg *models.Package, details models.PropertyDetails, basicLimit int) *models.PropertyCheck {
	if basicLimit <= 0 {
		basicLimit = models.DefaultBasicSqftLimit
	}

	check := &models.PropertyCheck{
		IsBasicPackage: IsBasicPackage(pkg),
		NextStep:       models.NextStepAddOns,
	}
	if check.IsBasicPackage {
		check.NextStep = models.NextStepBooking
	}

	errs := &models.ValidationError{}
	sqft := details.PropertySqft
	switch {
	case sqft <= 0:
		errs.Add("property_sqft", "Property size must be greater than 0")
	case sqft < models.MinPropertySqft || sqft > models.MaxPropertySqft:
		errs.Add("property_sqft", "Property size must be between %d and %d sq.ft", models.MinPropertySqft, models.MaxPropertySqft)
	}
	if details.NumberOfFloors < models.MinFloors || details.NumberOfFloors > models.MaxFloors {
		errs.Add("number_of_floors", "Number of floors must be between %d and %d", models.MinFloors, models.MaxFloors)
	}
	if details.FloorType != models.FloorTypeGround && details.FloorType != models.FloorTypeUpstairs {
		errs.Add("floor_type", "Floor type must be ground or upstairs")
	}

	check.ExceedsBasicLimit = check.IsBasicPackage && sqft > basicLimit
	// a zero max_sqft means no limit
	check.ExceedsMaxSqft = pkg != nil && pkg.MaxSqft != nil && *pkg.MaxSqft > 0 && sqft > *pkg.MaxSqft

	switch {
	case check.ExceedsBasicLimit:
		check.UpgradeSuggested = true
		check.Message = fmt.Sprintf("Basic package supports up to %d sq.ft. Your property exceeds the limit. Please upgrade to Standard or Premium.", basicLimit)
	case check.ExceedsMaxSqft:
		check.UpgradeSuggested = true
		check.Message = fmt.Sprintf("This package supports up to %d sq.ft. Consider upgrading for larger properties.", *pkg.MaxSqft)
	}

	check.Errors = errs.Fields
	check.Valid = len(errs.Fields) == 0 && !check.UpgradeSuggested
	return check
}

// PriceAddOns prices a package with the selected add-ons. Duplicate ids
// count once and the result lists add-ons in catalog order.
func PriceAddOns(pkg *models.Package, selected []string) (*models.AddOnQuote, error) {
	known := make(map[string]bool, len(models.AddOnCatalog))
	for _, a := range models.AddOnCatalog {
		known[a.ID] = true
	}

	chosen := make(map[string]bool, len(selected))
	errs := &models.ValidationError{}
	for _, id := range selected {
		if !known[id] {
			errs.Add("add_ons", "Unknown add-on: %s", id)
			continue
		}
		chosen[id] = true
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	quote := &models.AddOnQuote{
		PackageID:      pkg.ID,
		BasePrice:      pkg.Price,
		SelectedAddOns: []models.AddOn{},
	}
	for _, a := range models.AddOnCatalog {
		if chosen[a.ID] {
			quote.SelectedAddOns = append(quote.SelectedAddOns, a)
			quote.AddOnTotal += a.Price
		}
	}
	quote.GrandTotal = quote.BasePrice + quote.AddOnTotal
	return quote, nil
}

// ValidateBookingForm checks the booking step. Every failing field is
// reported in the returned *models.ValidationError.
func ValidateBookingForm(form *models.BookingFormData, panchayath *models.Panchayath, now time.Time) error {
	errs := &models.ValidationError{}

	if strings.TrimSpace(form.CustomerName) == "" {
		errs.Add("customer_name", "Full name is required")
	}

	phone := strings.ReplaceAll(strings.TrimSpace(form.CustomerPhone), " ", "")
	switch {
	case phone == "":
		errs.Add("customer_phone", "Phone number is required")
	case !phonePattern.MatchString(phone):
		errs.Add("customer_phone", "Phone number must be 10 digits, optionally prefixed with +91")
	}

	switch {
	case strings.TrimSpace(form.PanchayathID) == "":
		errs.Add("panchayath_id", "Panchayath is required")
	case panchayath == nil || panchayath.ID != strings.TrimSpace(form.PanchayathID):
		errs.Add("panchayath_id", "Unknown panchayath")
	}

	switch {
	case form.WardNumber == 0:
		errs.Add("ward_number", "Ward is required")
	case panchayath != nil && !panchayath.HasWard(form.WardNumber):
		errs.Add("ward_number", "Ward must be between 1 and %d", panchayath.WardCount)
	}

	if strings.TrimSpace(form.Landmark) == "" {
		errs.Add("landmark", "Landmark is required")
	}

	if form.PropertySqft < 0 {
		errs.Add("property_sqft", "Property size cannot be negative")
	}

	date := strings.TrimSpace(form.ScheduledDate)
	if date == "" {
		errs.Add("scheduled_date", "Preferred date is required")
	} else if day, err := utils.ParseScheduledDate(date, now); err != nil {
		errs.Add("scheduled_date", "Preferred date must be in YYYY-MM-DD format")
	} else {
		tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		if day.Before(tomorrow) {
			errs.Add("scheduled_date", "Preferred date must be %s or later", tomorrow.Format(models.DateFormat))
		}
	}

	clock := strings.TrimSpace(form.ScheduledTime)
	if clock == "" {
		errs.Add("scheduled_time", "Preferred time is required")
	} else if at, err := time.Parse(models.TimeFormat, clock); err != nil {
		errs.Add("scheduled_time", "Preferred time must be in HH:MM format")
	} else if at.Before(earliestService) || at.After(latestService) {
		errs.Add("scheduled_time", "Preferred time must be between %s and %s", models.EarliestServiceTime, models.LatestServiceTime)
	}

	if len(form.SpecialInstructions) > models.MaxInstructionsLength {
		errs.Add("special_instructions", "Special instructions must be at most %d characters", models.MaxInstructionsLength)
	}

	return errs.OrNil()
}

// normalizeBookingForm trims the free-text fields before storage
func normalizeBookingForm(form *models.BookingFormData) {
	form.CustomerName = strings.TrimSpace(form.CustomerName)
	form.CustomerPhone = strings.ReplaceAll(strings.TrimSpace(form.CustomerPhone), " ", "")
	form.PanchayathID = strings.TrimSpace(form.PanchayathID)
	form.Landmark = strings.TrimSpace(form.Landmark)
	form.ScheduledDate = strings.TrimSpace(form.ScheduledDate)
	form.ScheduledTime = strings.TrimSpace(form.ScheduledTime)
	form.SpecialInstructions = strings.TrimSpace(form.SpecialInstructions)
}
