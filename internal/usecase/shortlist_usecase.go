package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-talent-sift-backend/internal/domain"
	"go-talent-sift-backend/pkg/apperror"
	"go-talent-sift-backend/pkg/email"
)

type shortlistUsecase struct {
	emailService *email.EmailService
}

// NewShortlistUsecase creates the shortlist notification usecase
func NewShortlistUsecase(emailService *email.EmailService) domain.ShortlistUsecase {
	return &shortlistUsecase{emailService: emailService}
}

// ShortlistCandidate forwards one candidate's details to the ticketing inbox
func (uc *shortlistUsecase) ShortlistCandidate(_ context.Context, req *domain.ShortlistRequest) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return apperror.BadRequest("Missing candidate details")
	}

	if !uc.emailService.IsConfigured() {
		return apperror.Internal(fmt.Errorf("email service is not configured"))
	}

	data := email.ShortlistEmailData{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Experience:  req.Experience,
		Score:       req.Score,
		Description: req.Description,
	}

	if err := uc.emailService.SendShortlistEmail(data); err != nil {
		return apperror.Internal(fmt.Errorf("failed to send shortlist email: %w", err))
	}

	return nil
}
