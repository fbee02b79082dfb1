package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-talent-sift-backend/internal/delivery/http/response"
	"go-talent-sift-backend/internal/domain"
	"go-talent-sift-backend/pkg/apperror"
)

type ShortlistHandler struct {
	shortlistUC domain.ShortlistUsecase
}

func NewShortlistHandler(rg *gin.RouterGroup, shortlistUC domain.ShortlistUsecase) {
	handler := &ShortlistHandler{shortlistUC: shortlistUC}
	rg.POST("/candidates/shortlist", handler.Shortlist)
}

type ShortlistRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required"`
	Phone       string  `json:"phone"`
	Experience  float64 `json:"experience"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// Shortlist godoc
// @Summary      Forward a shortlisted candidate to the ticketing inbox
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        body  body      ShortlistRequest  true  "Candidate details"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /candidates/shortlist [post]
func (h *ShortlistHandler) Shortlist(c *gin.Context) {
	var req ShortlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Missing candidate details"))
		return
	}

	err := h.shortlistUC.ShortlistCandidate(c, &domain.ShortlistRequest{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Experience:  req.Experience,
		Score:       req.Score,
		Description: req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate shortlisted", nil)
}
