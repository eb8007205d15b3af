package model

import "time"

// MatchCriteria is the transient query input for vendor matching.
// Location is accepted for API compatibility but is not applied as a filter.
type MatchCriteria struct {
	Category  Category  `json:"category" validate:"required,vendor_category"`
	Date      time.Time `json:"date" validate:"required"`
	MaxBudget float64   `json:"max_budget" validate:"min=0"`
	Location  string    `json:"location,omitempty" validate:"omitempty,max=100"`
}

// VendorMatch pairs an eligible profile with its ranking score.
type VendorMatch struct {
	Profile *VendorProfile `json:"profile"`
	Score   float64        `json:"score"`
}
