package validation

import (
	"regexp"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/app/models/dto"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Phone pattern - digits, spaces and separators, 7 to 20 chars
	PhonePattern = `^[+0-9][0-9 ()\-]{6,19}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
	Phone *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	Phone: regexp.MustCompile(PhonePattern),
}

// StringValidation validates a single string field
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// ValidateRegistrationForm checks the category-specific fields of a
// registration form. The base fields (name, email) are covered by binding
// tags; this adds the variant rules that depend on the event's category.
func ValidateRegistrationForm(category models.EventCategory, req *dto.RegisterForEventRequest) *dto.ValidationErrors {
	errs := dto.NewValidationErrors()

	if !NewStringValidation(req.Name).WithMinLength(NameMinLength).WithMaxLength(NameMaxLength).Validate() {
		errs.AddError("name", "name must be between 2 and 100 characters")
	}
	if req.Phone != "" && !CompiledPatterns.Phone.MatchString(req.Phone) {
		errs.AddError("phone", "phone number format is invalid")
	}

	switch category {
	case models.CategoryHackathon:
		if !NewStringValidation(req.TeamName).WithMaxLength(NameMaxLength).Validate() {
			errs.AddError("teamName", "team name is required for hackathon events")
		}
	case models.CategoryWorkshop:
		if req.ExperienceLevel == "" {
			errs.AddError("experienceLevel", "experience level is required for workshop events")
		}
	case models.CategoryFieldTrip:
		if req.EmergencyContact == "" {
			errs.AddError("emergencyContact", "emergency contact is required for field trips")
		}
		if req.EmergencyPhone == "" || !CompiledPatterns.Phone.MatchString(req.EmergencyPhone) {
			errs.AddError("emergencyPhone", "a valid emergency phone number is required for field trips")
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
