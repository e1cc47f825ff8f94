package models

import "time"

// ServiceCategory groups packages (cleaning, electrician, plumbing, ...)
type ServiceCategory struct {
	ID          string    `json:"id" dynamodbav:"id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description,omitempty" dynamodbav:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Package is a priced service offering. Read-only from the client's side.
type Package struct {
	ID         string           `json:"id" dynamodbav:"id"`
	Name       string           `json:"name" dynamodbav:"name"`
	Price      int              `json:"price" dynamodbav:"price"`
	CategoryID string           `json:"category_id" dynamodbav:"category_id"`
	MaxSqft    *int             `json:"max_sqft,omitempty" dynamodbav:"max_sqft,omitempty"`
	IsActive   bool             `json:"is_active" dynamodbav:"is_active"`
	Category   *ServiceCategory `json:"category,omitempty" dynamodbav:"-"`
}

// Panchayath is a local administrative unit split into numbered wards
type Panchayath struct {
	ID        string `json:"id" dynamodbav:"id"`
	Name      string `json:"name" dynamodbav:"name"`
	District  string `json:"district,omitempty" dynamodbav:"district,omitempty"`
	WardCount int    `json:"ward_count" dynamodbav:"ward_count"`
}

// Wards returns the ward numbers 1..WardCount.
func (p *Panchayath) Wards() []int {
	if p == nil || p.WardCount <= 0 {
		return []int{}
	}
	wards := make([]int, p.WardCount)
	for i := range wards {
		wards[i] = i + 1
	}
	return wards
}

// HasWard reports whether ward is one of the panchayath's wards.
func (p *Panchayath) HasWard(ward int) bool {
	return p != nil && ward >= 1 && ward <= p.WardCount
}

// AddOn is an extra service that can be attached to a non-basic package
type AddOn struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// AddOnCatalog is the fixed list of add-ons, in display order.
var AddOnCatalog = []AddOn{
	{ID: "sofa_cleaning", Name: "Sofa Cleaning", Price: 499},
	{ID: "mattress_cleaning", Name: "Mattress Cleaning", Price: 399},
	{ID: "dry_cleaning", Name: "Dry Cleaning Support", Price: 599},
	{ID: "electrician", Name: "Electrician Support", Price: 349},
	{ID: "plumbing", Name: "Plumbing (Minor)", Price: 299},
}

// PackageFilter narrows package listings
type PackageFilter struct {
	CategoryID string `json:"category_id,omitempty"`
	ActiveOnly bool   `json:"active_only,omitempty"`
}
