package validator

import (
	"testing"
	"time"

	"planora/pkg/model"
)

func validUpdate() *model.VendorProfileUpdate {
	return &model.VendorProfileUpdate{
		BusinessName: "Gala Catering Co",
		Description:  "Full-service event catering.",
		Categories:   []model.Category{model.CategoryCatering},
	}
}

func TestValidateUpdate(t *testing.T) {
	validator := NewVendorProfileValidator()

	tests := []struct {
		name      string
		mutate    func(u *model.VendorProfileUpdate)
		wantError bool
	}{
		{
			name:      "valid minimal update",
			mutate:    func(u *model.VendorProfileUpdate) {},
			wantError: false,
		},
		{
			name: "missing business name",
			mutate: func(u *model.VendorProfileUpdate) {
				u.BusinessName = ""
			},
			wantError: true,
		},
		{
			name: "missing description",
			mutate: func(u *model.VendorProfileUpdate) {
				u.Description = ""
			},
			wantError: true,
		},
		{
			name: "empty categories",
			mutate: func(u *model.VendorProfileUpdate) {
				u.Categories = []model.Category{}
			},
			wantError: true,
		},
		{
			name: "unknown category",
			mutate: func(u *model.VendorProfileUpdate) {
				u.Categories = []model.Category{"Fireworks"}
			},
			wantError: true,
		},
		{
			name: "duplicate categories",
			mutate: func(u *model.VendorProfileUpdate) {
				u.Categories = []model.Category{model.CategoryCatering, model.CategoryCatering}
			},
			wantError: true,
		},
		{
			name: "multiple valid categories",
			mutate: func(u *model.VendorProfileUpdate) {
				u.Categories = []model.Category{model.CategoryCatering, model.CategoryVenue}
			},
			wantError: false,
		},
		{
			name: "negative service price",
			mutate: func(u *model.VendorProfileUpdate) {
				u.Services = &[]model.Service{{Name: "Buffet", Price: -10}}
			},
			wantError: true,
		},
		{
			name: "valid services",
			mutate: func(u *model.VendorProfileUpdate) {
				u.Services = &[]model.Service{
					{Name: "Buffet", Price: 1200, Category: model.CategoryCatering},
				}
			},
			wantError: false,
		},
		{
			name: "malformed working hours",
			mutate: func(u *model.VendorProfileUpdate) {
				u.Availability = &model.Availability{
					WorkingHours: model.WorkingHours{Start: "9am", End: "17:00"},
				}
			},
			wantError: true,
		},
		{
			name: "working hours start after end",
			mutate: func(u *model.VendorProfileUpdate) {
				u.Availability = &model.Availability{
					WorkingHours: model.WorkingHours{Start: "18:00", End: "09:00"},
				}
			},
			wantError: true,
		},
		{
			name: "valid working hours",
			mutate: func(u *model.VendorProfileUpdate) {
				u.Availability = &model.Availability{
					WorkingHours: model.WorkingHours{Start: "09:00", End: "17:00"},
				}
			},
			wantError: false,
		},
		{
			name: "invalid contact email",
			mutate: func(u *model.VendorProfileUpdate) {
				u.Contact = &model.Contact{Email: "not-an-email"}
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update := validUpdate()
			tt.mutate(update)

			err := validator.ValidateUpdate(update)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateUpdate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateSlot(t *testing.T) {
	validator := NewVendorProfileValidator()

	tests := []struct {
		name      string
		slot      *model.AvailabilitySlot
		wantError bool
	}{
		{
			name: "valid available slot",
			slot: &model.AvailabilitySlot{
				Date:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
				Status: model.SlotAvailable,
			},
			wantError: false,
		},
		{
			name: "valid booked slot with event",
			slot: &model.AvailabilitySlot{
				Date:    time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
				Status:  model.SlotBooked,
				EventID: "evt-123",
			},
			wantError: false,
		},
		{
			name: "unknown status",
			slot: &model.AvailabilitySlot{
				Date:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
				Status: "tentative",
			},
			wantError: true,
		},
		{
			name: "missing status",
			slot: &model.AvailabilitySlot{
				Date: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
			},
			wantError: true,
		},
		{
			name: "zero date",
			slot: &model.AvailabilitySlot{
				Status: model.SlotAvailable,
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateSlot(tt.slot)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateSlot() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateCriteria(t *testing.T) {
	validator := NewVendorProfileValidator()

	tests := []struct {
		name      string
		criteria  *model.MatchCriteria
		wantError bool
	}{
		{
			name: "valid criteria",
			criteria: &model.MatchCriteria{
				Category:  model.CategoryPhotography,
				Date:      time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
				MaxBudget: 1500,
			},
			wantError: false,
		},
		{
			name: "unknown category",
			criteria: &model.MatchCriteria{
				Category:  "Fireworks",
				Date:      time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
				MaxBudget: 1500,
			},
			wantError: true,
		},
		{
			name: "missing date",
			criteria: &model.MatchCriteria{
				Category:  model.CategoryPhotography,
				MaxBudget: 1500,
			},
			wantError: true,
		},
		{
			name: "negative budget",
			criteria: &model.MatchCriteria{
				Category:  model.CategoryPhotography,
				Date:      time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
				MaxBudget: -1,
			},
			wantError: true,
		},
		{
			name: "zero budget allowed",
			criteria: &model.MatchCriteria{
				Category:  model.CategoryPhotography,
				Date:      time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
				MaxBudget: 0,
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateCriteria(tt.criteria)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateCriteria() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidationErrorMessages(t *testing.T) {
	validator := NewVendorProfileValidator()

	update := validUpdate()
	update.Categories = []model.Category{"Fireworks"}

	err := validator.ValidateUpdate(update)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(verrs))
	}
	if verrs[0].Message == "" {
		t.Error("Expected a human-readable message")
	}
}
