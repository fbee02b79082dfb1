package usecase

import (
	"context"
	"strings"

	"go-talent-sift-backend/internal/domain"
	"go-talent-sift-backend/pkg/apperror"
)

type validationUsecase struct {
	allowedDomains map[string]bool
}

// NewValidationUsecase builds the email-domain authorization check from the
// configured allow-list.
func NewValidationUsecase(allowedDomains []string) domain.ValidationUsecase {
	allowed := make(map[string]bool, len(allowedDomains))
	for _, d := range allowedDomains {
		allowed[strings.ToLower(d)] = true
	}
	return &validationUsecase{allowedDomains: allowed}
}

func (u *validationUsecase) ValidateEmailDomain(_ context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return apperror.BadRequest("Email is required")
	}
	emailDomain, err := domain.EmailDomain(email)
	if err != nil {
		return apperror.BadRequest("Email is required")
	}
	if !u.allowedDomains[emailDomain] {
		return apperror.Forbidden("Unauthorized company domain")
	}
	return nil
}
