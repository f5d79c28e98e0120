package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/app/models/dto"
)

func baseForm() *dto.RegisterForEventRequest {
	return &dto.RegisterForEventRequest{
		Name:  "Jane Doe",
		Email: "jane@clubsphere.app",
		Phone: "+90 555 123 4567",
	}
}

func fieldErrors(errs *dto.ValidationErrors) []string {
	fields := make([]string, 0, len(errs.Errors))
	for _, e := range errs.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("hello").Validate())
	assert.False(t, NewStringValidation("").Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).Validate())

	assert.False(t, NewStringValidation("a").WithMinLength(2).Validate())
	assert.False(t, NewStringValidation("toolong").WithMaxLength(3).Validate())
	assert.True(t, NewStringValidation("jane@clubsphere.app").WithPattern(CompiledPatterns.Email).Validate())
	assert.False(t, NewStringValidation("not-an-email").WithPattern(CompiledPatterns.Email).Validate())
}

func TestValidateRegistrationForm_Generic(t *testing.T) {
	errs := ValidateRegistrationForm(models.CategoryGeneric, baseForm())
	assert.Nil(t, errs)
}

func TestValidateRegistrationForm_BadName(t *testing.T) {
	form := baseForm()
	form.Name = "J"

	errs := ValidateRegistrationForm(models.CategoryGeneric, form)
	require.NotNil(t, errs)
	assert.Contains(t, fieldErrors(errs), "name")
}

func TestValidateRegistrationForm_BadPhone(t *testing.T) {
	form := baseForm()
	form.Phone = "abc"

	errs := ValidateRegistrationForm(models.CategoryGeneric, form)
	require.NotNil(t, errs)
	assert.Contains(t, fieldErrors(errs), "phone")
}

func TestValidateRegistrationForm_PhoneOptional(t *testing.T) {
	form := baseForm()
	form.Phone = ""

	assert.Nil(t, ValidateRegistrationForm(models.CategoryGeneric, form))
}

func TestValidateRegistrationForm_Hackathon(t *testing.T) {
	form := baseForm()
	errs := ValidateRegistrationForm(models.CategoryHackathon, form)
	require.NotNil(t, errs)
	assert.Contains(t, fieldErrors(errs), "teamName")

	form.TeamName = "Gophers"
	assert.Nil(t, ValidateRegistrationForm(models.CategoryHackathon, form))
}

func TestValidateRegistrationForm_Workshop(t *testing.T) {
	form := baseForm()
	errs := ValidateRegistrationForm(models.CategoryWorkshop, form)
	require.NotNil(t, errs)
	assert.Contains(t, fieldErrors(errs), "experienceLevel")

	form.ExperienceLevel = "beginner"
	assert.Nil(t, ValidateRegistrationForm(models.CategoryWorkshop, form))
}

func TestValidateRegistrationForm_FieldTrip(t *testing.T) {
	form := baseForm()
	errs := ValidateRegistrationForm(models.CategoryFieldTrip, form)
	require.NotNil(t, errs)
	fields := fieldErrors(errs)
	assert.Contains(t, fields, "emergencyContact")
	assert.Contains(t, fields, "emergencyPhone")

	form.EmergencyContact = "John Doe"
	form.EmergencyPhone = "+90 555 987 6543"
	assert.Nil(t, ValidateRegistrationForm(models.CategoryFieldTrip, form))
}

func TestValidateRegistrationForm_FieldTripBadEmergencyPhone(t *testing.T) {
	form := baseForm()
	form.EmergencyContact = "John Doe"
	form.EmergencyPhone = "nope"

	errs := ValidateRegistrationForm(models.CategoryFieldTrip, form)
	require.NotNil(t, errs)
	assert.Contains(t, fieldErrors(errs), "emergencyPhone")
}
