package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	UserType string `json:"user_type" validate:"required,is-user-type"`
	Status   string `json:"status" validate:"omitempty,is-application-status"`
	JobType  string `form:"job_type" validate:"omitempty,is-job-type"`
	State    string `json:"state" validate:"omitempty,is-job-status"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:    "a@b.test",
		UserType: "company",
		Status:   "reviewing",
		JobType:  "full-time",
		State:    "inactive",
	})
	assert.NoError(t, err)
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:    "not-an-email",
		UserType: "admin",
		Status:   "withdrawn",
		JobType:  "gig",
		State:    "closed",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must be one of: seeker, company", vErr.Errors["user_type"])
	assert.Contains(t, vErr.Errors, "status")
	assert.Contains(t, vErr.Errors, "job_type")
	assert.Contains(t, vErr.Errors, "state")
}

func TestValidate_Required(t *testing.T) {
	err := New().Validate(&sampleRequest{})
	require.Error(t, err)

	vErr := err.(*ValidationError)
	assert.Equal(t, "This field is required", vErr.Errors["email"])
	assert.Equal(t, "This field is required", vErr.Errors["user_type"])
	assert.NotContains(t, vErr.Errors, "status")
}
