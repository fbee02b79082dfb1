package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-talent-sift-backend/config"
	"go-talent-sift-backend/internal/delivery/http/middleware"
	"go-talent-sift-backend/internal/delivery/http/response"
	"go-talent-sift-backend/internal/domain"
	"go-talent-sift-backend/pkg/validation"
)

type RouterDeps struct {
	SubmissionUC domain.SubmissionUsecase
	RankingUC    domain.RankingUsecase
	ValidationUC domain.ValidationUsecase
	ShortlistUC  domain.ShortlistUsecase
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// All routes are public; email-domain authorization replaces auth
	NewValidationHandler(v1, deps.ValidationUC)
	NewSubmissionHandler(v1, deps.SubmissionUC, deps.Config.MaxResumeSizeBytes)
	NewRankingHandler(v1, deps.RankingUC, deps.Config.ExperienceRangeMax)
	NewShortlistHandler(v1, deps.ShortlistUC)

	return r
}
