package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"planora/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

var workingHoursRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type VendorProfileValidator struct {
	validate *validator.Validate
}

func NewVendorProfileValidator() *VendorProfileValidator {
	v := validator.New()

	// Registration only fails on empty tag names, which are constants here.
	_ = v.RegisterValidation("vendor_category", validateVendorCategory)
	_ = v.RegisterValidation("slot_status", validateSlotStatus)
	_ = v.RegisterValidation("working_hours", validateWorkingHours)

	return &VendorProfileValidator{
		validate: v,
	}
}

func validateVendorCategory(fl validator.FieldLevel) bool {
	return model.Category(fl.Field().String()).Valid()
}

func validateSlotStatus(fl validator.FieldLevel) bool {
	return model.SlotStatus(fl.Field().String()).Valid()
}

func validateWorkingHours(fl validator.FieldLevel) bool {
	return workingHoursRegex.MatchString(fl.Field().String())
}

func (v *VendorProfileValidator) ValidateUpdate(update *model.VendorProfileUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return v.validateUpdateRules(update)
}

func (v *VendorProfileValidator) ValidateSlot(slot *model.AvailabilitySlot) error {
	if err := v.validate.Struct(slot); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if slot.Date.IsZero() {
		return ValidationErrors{{Field: "Date", Message: "date is required"}}
	}

	return nil
}

func (v *VendorProfileValidator) ValidatePortfolioItem(item *model.PortfolioItem) error {
	if err := v.validate.Struct(item); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *VendorProfileValidator) ValidateCriteria(criteria *model.MatchCriteria) error {
	if err := v.validate.Struct(criteria); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

func (v *VendorProfileValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: translateTag(err),
		})
	}

	return validationErrors
}

func translateTag(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		if err.Kind().String() == "slice" {
			return fmt.Sprintf("must contain at least %s item(s)", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		if err.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", err.Param())
		}
		return fmt.Sprintf("must be at most %s", err.Param())
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "vendor_category":
		return fmt.Sprintf("must be one of: %s", categoryList())
	case "slot_status":
		return "must be one of: available, booked, unavailable"
	case "working_hours":
		return "must be in HH:MM format (00:00-23:59)"
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}

func categoryList() string {
	categories := model.Categories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func (v *VendorProfileValidator) validateUpdateRules(update *model.VendorProfileUpdate) error {
	var validationErrors ValidationErrors

	if update.Availability != nil {
		start, end := update.Availability.WorkingHours.Start, update.Availability.WorkingHours.End
		if start != "" && end != "" && start >= end {
			validationErrors = append(validationErrors, ValidationError{
				Field:   "WorkingHours",
				Message: "start time must be before end time",
			})
		}
	}

	seen := make(map[model.Category]bool, len(update.Categories))
	for _, c := range update.Categories {
		if seen[c] {
			validationErrors = append(validationErrors, ValidationError{
				Field:   "Categories",
				Message: fmt.Sprintf("duplicate category: %s", c),
			})
		}
		seen[c] = true
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}
