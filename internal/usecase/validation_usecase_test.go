package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-talent-sift-backend/internal/usecase"
)

func TestValidateEmailDomain(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewValidationUsecase([]string{"startitnow.co.in", "zoho.com"})

	t.Run("Should accept allow-listed domains case-insensitively", func(t *testing.T) {
		assert.NoError(t, uc.ValidateEmailDomain(ctx, "jane@zoho.com"))
		assert.NoError(t, uc.ValidateEmailDomain(ctx, "Jane@Zoho.COM"))
	})

	t.Run("Should reject empty email", func(t *testing.T) {
		err := uc.ValidateEmailDomain(ctx, "")
		assertAppError(t, err, 400)
	})

	t.Run("Should reject malformed email", func(t *testing.T) {
		err := uc.ValidateEmailDomain(ctx, "no-at-sign")
		assertAppError(t, err, 400)
	})

	t.Run("Should reject domains outside the allow-list", func(t *testing.T) {
		err := uc.ValidateEmailDomain(ctx, "jane@gmail.com")
		assertAppError(t, err, 403)
		assert.Contains(t, err.Error(), "Unauthorized company domain")
	})
}
