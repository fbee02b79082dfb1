package validation_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"go-talent-sift-backend/pkg/validation"
)

func TestJobType(t *testing.T) {
	v := validator.New()
	validation.RegisterValidators(v)

	type form struct {
		JobType string `validate:"required,job_type"`
	}

	assert.NoError(t, v.Struct(form{JobType: "full-time"}))
	assert.NoError(t, v.Struct(form{JobType: "internship"}))
	assert.Error(t, v.Struct(form{JobType: "gig"}))
	assert.Error(t, v.Struct(form{JobType: "Full-Time"}))
	assert.Error(t, v.Struct(form{}))
}
