package validation

import (
	"github.com/go-playground/validator/v10"

	"go-talent-sift-backend/internal/domain"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("job_type", JobType)
}

// JobType validates that a string is one of the accepted posting types.
// Backed by the same closed set the submission flow enforces, so the
// binding layer and the usecase can never disagree.
func JobType(fl validator.FieldLevel) bool {
	return domain.JobTypes[fl.Field().String()]
}
