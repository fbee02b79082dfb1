package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-talent-sift-backend/internal/domain"
	"go-talent-sift-backend/pkg/apperror"
	"go-talent-sift-backend/pkg/logger"
	"go-talent-sift-backend/pkg/sanitize"
)

// SubmissionConfig carries the policy knobs of the submission flow.
type SubmissionConfig struct {
	WorkflowID        string
	PrivilegedDomain  string
	PrivilegedCredits int64
	DefaultCredits    int64
}

type submissionUsecase struct {
	ledger       domain.CreditLedger
	store        domain.RankingStore
	guard        domain.SubmissionGuard
	client       domain.RankingClient
	validationUC domain.ValidationUsecase
	auditLog     domain.SubmissionLogger // nil when the Sheets integration is unconfigured
	cfg          SubmissionConfig
}

func NewSubmissionUsecase(
	ledger domain.CreditLedger,
	store domain.RankingStore,
	guard domain.SubmissionGuard,
	client domain.RankingClient,
	validationUC domain.ValidationUsecase,
	auditLog domain.SubmissionLogger,
	cfg SubmissionConfig,
) domain.SubmissionUsecase {
	return &submissionUsecase{
		ledger:       ledger,
		store:        store,
		guard:        guard,
		client:       client,
		validationUC: validationUC,
		auditLog:     auditLog,
		cfg:          cfg,
	}
}

// Submit runs the full submission flow: ordered precondition checks, one
// upstream ranking call, then the post-success state writes. Credits are
// deducted only after the upstream call is confirmed successful, so a failed
// submission never charges the domain.
func (u *submissionUsecase) Submit(ctx context.Context, posting *domain.JobPosting, batch *domain.ResumeBatch) (*domain.SubmissionOutcome, error) {
	// 1. Required fields
	stripped, err := u.validatePosting(posting)
	if err != nil {
		return nil, err
	}

	// 2. Resume batch
	if batch == nil || len(batch.Files) == 0 {
		return nil, apperror.BadRequest("Please upload at least one resume before submitting.")
	}

	// 3. Email-domain authorization
	if err := u.validationUC.ValidateEmailDomain(ctx, posting.SubmitterEmail); err != nil {
		return nil, err
	}
	emailDomain, err := domain.EmailDomain(posting.SubmitterEmail)
	if err != nil {
		return nil, apperror.BadRequest("Email is required")
	}

	// 4. Credit sufficiency
	needed := int64(len(batch.Files))
	balance, err := u.ledger.EnsureBalance(ctx, emailDomain, u.initialCredits(emailDomain))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if balance < needed {
		return nil, apperror.PaymentRequired(fmt.Sprintf("Insufficient credits: %d remaining, %d required", balance, needed))
	}

	// Block duplicate submissions while the upstream call is outstanding
	acquired, err := u.guard.Acquire(ctx, emailDomain)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !acquired {
		return nil, apperror.Conflict("A submission for this domain is already in progress")
	}
	defer func() {
		if err := u.guard.Release(context.WithoutCancel(ctx), emailDomain); err != nil {
			logger.Log.Warn("Failed to release submission guard", "domain", emailDomain, "error", err)
		}
	}()

	// Reuse the case id of a prior submission when one is on record
	caseID, err := u.store.CaseID(ctx)
	if err != nil {
		logger.Log.Warn("Failed to read stored case id", "error", err)
		caseID = ""
	}

	result, err := u.client.Rank(ctx, &domain.RankRequest{
		OrgID:          caseID,
		ExeName:        strings.Join(posting.RequiredSkills, ","),
		WorkflowID:     u.cfg.WorkflowID,
		JobDescription: stripped,
		Resumes:        batch.Files,
	})
	if err != nil {
		return nil, apperror.BadGateway(err.Error(), err)
	}

	rankings := domain.NormalizeRankings(result.Rankings, posting.RequiredSkills)

	// Replace prior contents wholesale; the store never merges
	if err := u.store.ReplaceRankings(ctx, rankings); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := u.store.SaveDeclaredSkills(ctx, posting.RequiredSkills); err != nil {
		return nil, apperror.Internal(err)
	}
	if result.CaseID != "" {
		if err := u.store.SaveCaseID(ctx, result.CaseID); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	remaining, err := u.ledger.Deduct(ctx, emailDomain, needed)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.logSubmission(result.CaseID, posting.SubmitterEmail, len(batch.Files))

	return &domain.SubmissionOutcome{
		CaseID:           result.CaseID,
		RemainingCredits: remaining,
		Rankings:         rankings,
	}, nil
}

// RemainingCredits reports the current balance for the submitter's domain,
// lazily initializing it like the submission path does.
func (u *submissionUsecase) RemainingCredits(ctx context.Context, email string) (int64, error) {
	emailDomain, err := domain.EmailDomain(email)
	if err != nil {
		return 0, apperror.BadRequest("Email is required")
	}
	balance, err := u.ledger.EnsureBalance(ctx, emailDomain, u.initialCredits(emailDomain))
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return balance, nil
}

// validatePosting checks the required-field invariants and returns the
// HTML-stripped description used for transmission.
func (u *submissionUsecase) validatePosting(posting *domain.JobPosting) (string, error) {
	if posting == nil ||
		strings.TrimSpace(posting.Title) == "" ||
		strings.TrimSpace(posting.JobType) == "" ||
		strings.TrimSpace(posting.Description) == "" ||
		strings.TrimSpace(posting.SubmitterEmail) == "" {
		return "", apperror.BadRequest("Please fill in all required fields before submitting.")
	}
	if !domain.JobTypes[posting.JobType] {
		return "", apperror.BadRequest("Invalid job type: " + posting.JobType)
	}
	if posting.YearsOfExperience != nil && (*posting.YearsOfExperience < 0 || *posting.YearsOfExperience > 30) {
		return "", apperror.BadRequest("Years of experience must be between 0 and 30")
	}

	stripped, err := sanitize.StripHTML(posting.Description)
	if err != nil {
		return "", apperror.BadRequest("Job description could not be parsed")
	}
	if stripped == "" {
		stripped = "No description"
	}
	words := domain.WordCount(stripped)
	if words < domain.MinDescriptionWords || words > domain.MaxDescriptionWords {
		return "", apperror.BadRequest(fmt.Sprintf(
			"Job description must be between %d and %d words (currently %d)",
			domain.MinDescriptionWords, domain.MaxDescriptionWords, words))
	}
	return stripped, nil
}

func (u *submissionUsecase) initialCredits(emailDomain string) int64 {
	if emailDomain == u.cfg.PrivilegedDomain {
		return u.cfg.PrivilegedCredits
	}
	return u.cfg.DefaultCredits
}

// logSubmission appends the audit row in the background. Failures are logged
// and never roll back the submission outcome.
func (u *submissionUsecase) logSubmission(caseID, email string, resumeCount int) {
	if u.auditLog == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := u.auditLog.LogSubmission(ctx, caseID, email, resumeCount); err != nil {
			logger.Log.Warn("Failed to log submission to sheet",
				"case_id", caseID, "email", email, "error", err)
		}
	}()
}
