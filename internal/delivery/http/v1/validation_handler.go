package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-talent-sift-backend/internal/domain"
	"go-talent-sift-backend/pkg/apperror"
)

type ValidationHandler struct {
	validationUC domain.ValidationUsecase
}

func NewValidationHandler(rg *gin.RouterGroup, validationUC domain.ValidationUsecase) {
	handler := &ValidationHandler{validationUC: validationUC}
	rg.POST("/validateuser", handler.ValidateUser)
}

type ValidateUserRequest struct {
	Email string `json:"email"`
}

// ValidateUser godoc
// @Summary      Check whether an email domain is authorized to submit
// @Description  Returns the legacy {status, message} shape the front end expects
// @Tags         validation
// @Accept       json
// @Produce      json
// @Param        body  body      ValidateUserRequest  true  "Email to validate"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /validateuser [post]
func (h *ValidationHandler) ValidateUser(c *gin.Context) {
	// This endpoint keeps the pre-existing response contract instead of the
	// standard envelope; the form polls it before enabling submission
	var req ValidateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Email is required"})
		return
	}

	if err := h.validationUC.ValidateEmailDomain(c, req.Email); err != nil {
		code := http.StatusForbidden
		message := "Unauthorized company domain"
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			code = appErr.Code
			message = appErr.Message
		}
		c.JSON(code, gin.H{"status": "error", "message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "User validated"})
}
