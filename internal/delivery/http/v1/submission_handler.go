package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-talent-sift-backend/internal/delivery/http/response"
	"go-talent-sift-backend/internal/domain"
	"go-talent-sift-backend/pkg/apperror"
	"go-talent-sift-backend/pkg/security"
)

type SubmissionHandler struct {
	submissionUC  domain.SubmissionUsecase
	maxResumeSize int64
}

func NewSubmissionHandler(rg *gin.RouterGroup, submissionUC domain.SubmissionUsecase, maxResumeSize int64) {
	handler := &SubmissionHandler{
		submissionUC:  submissionUC,
		maxResumeSize: maxResumeSize,
	}

	rg.POST("/submissions", handler.Submit)
	rg.GET("/credits", handler.Credits)
}

type SubmitFormRequest struct {
	Title             string `form:"title" binding:"required"`
	JobType           string `form:"job_type" binding:"required,job_type"`
	Description       string `form:"description" binding:"required"`
	RequiredSkills    string `form:"required_skills"`
	Email             string `form:"email" binding:"required,email"`
	YearsOfExperience *int   `form:"years_of_experience" binding:"omitempty,gte=0,lte=30"`
}

// Submit godoc
// @Summary      Submit a job posting with resumes for ranking
// @Description  Validates the posting, checks domain credits and exchanges the batch for ranked candidates
// @Tags         submissions
// @Accept       multipart/form-data
// @Produce      json
// @Param        title              formData  string  true   "Job title"
// @Param        job_type           formData  string  true   "Job type"
// @Param        description        formData  string  true   "Job description (rich text)"
// @Param        required_skills    formData  string  false  "Comma-separated skills"
// @Param        email              formData  string  true   "Submitter email"
// @Param        years_of_experience formData int    false  "Required years of experience"
// @Param        resumes            formData  file    true   "Resume files (pdf/docx, repeated)"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      402  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req SubmitFormRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.Error(apperror.BadRequest("Invalid multipart form: " + err.Error()))
		return
	}

	// Invalid files reject the whole batch up front; nothing is silently
	// dropped from a batch that proceeds
	fileHeaders := form.File["resumes"]
	batch := &domain.ResumeBatch{Files: make([]domain.ResumeFile, 0, len(fileHeaders))}
	for _, fh := range fileHeaders {
		if fh.Size > h.maxResumeSize {
			c.Error(apperror.BadRequest("Resume " + fh.Filename + " exceeds the 2 MiB size limit"))
			return
		}

		file, err := fh.Open()
		if err != nil {
			c.Error(apperror.BadRequest("Could not read resume " + fh.Filename))
			return
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.Error(apperror.BadRequest("Could not read resume " + fh.Filename))
			return
		}

		result := security.ValidateResume(fh.Filename, content, fh.Header.Get("Content-Type"), h.maxResumeSize)
		if !result.Valid {
			c.Error(apperror.BadRequest("Resume " + fh.Filename + " rejected: " + result.Error))
			return
		}

		batch.Files = append(batch.Files, domain.ResumeFile{
			Filename: fh.Filename,
			Content:  content,
		})
	}

	posting := &domain.JobPosting{
		Title:             req.Title,
		JobType:           req.JobType,
		Description:       req.Description,
		RequiredSkills:    domain.ParseSkills(req.RequiredSkills),
		SubmitterEmail:    req.Email,
		YearsOfExperience: req.YearsOfExperience,
	}

	outcome, err := h.submissionUC.Submit(c, posting, batch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Resumes processed successfully.", outcome)
}

// Credits godoc
// @Summary      Remaining credits for a submitter domain
// @Tags         submissions
// @Produce      json
// @Param        email  query     string  true  "Submitter email"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /credits [get]
func (h *SubmissionHandler) Credits(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.Error(apperror.BadRequest("Email is required"))
		return
	}

	remaining, err := h.submissionUC.RemainingCredits(c, email)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Remaining credits", gin.H{
		"email":             email,
		"remaining_credits": remaining,
	})
}
