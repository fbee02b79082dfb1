package usecase_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-talent-sift-backend/internal/domain"
	"go-talent-sift-backend/internal/repository/memory"
	"go-talent-sift-backend/internal/usecase"
	"go-talent-sift-backend/pkg/apperror"
	"go-talent-sift-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Ranking Client
type MockRankingClient struct {
	mock.Mock
}

func (m *MockRankingClient) Rank(ctx context.Context, req *domain.RankRequest) (*domain.RankResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RankResult), args.Error(1)
}

func (m *MockRankingClient) FetchByCase(ctx context.Context, orgID, workflowID string) (*domain.RankResult, error) {
	args := m.Called(ctx, orgID, workflowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RankResult), args.Error(1)
}

type testEnv struct {
	uc     domain.SubmissionUsecase
	ledger *memory.CreditLedger
	store  *memory.RankingStore
	guard  *memory.SubmissionGuard
	client *MockRankingClient
}

func newTestEnv(defaultCredits int64) *testEnv {
	env := &testEnv{
		ledger: memory.NewCreditLedger(),
		store:  memory.NewRankingStore(),
		guard:  memory.NewSubmissionGuard(),
		client: new(MockRankingClient),
	}
	validationUC := usecase.NewValidationUsecase([]string{"startitnow.co.in", "zoho.com"})
	env.uc = usecase.NewSubmissionUsecase(env.ledger, env.store, env.guard, env.client, validationUC, nil, usecase.SubmissionConfig{
		WorkflowID:        "resume_ranker",
		PrivilegedDomain:  "startitnow.co.in",
		PrivilegedCredits: 500,
		DefaultCredits:    defaultCredits,
	})
	return env
}

func validDescription() string {
	return strings.TrimSpace(strings.Repeat("responsibility ", 150))
}

func validPosting() *domain.JobPosting {
	return &domain.JobPosting{
		Title:          "Engineer",
		JobType:        "full-time",
		Description:    validDescription(),
		RequiredSkills: []string{"Go", "SQL"},
		SubmitterEmail: "recruiter@zoho.com",
	}
}

func pdfBatch(n int) *domain.ResumeBatch {
	batch := &domain.ResumeBatch{}
	for i := 0; i < n; i++ {
		batch.Files = append(batch.Files, domain.ResumeFile{
			Filename: "resume.pdf",
			Content:  []byte("%PDF-1.4 test"),
		})
	}
	return batch
}

func assertAppError(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestSubmitPreconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fail when required fields are missing", func(t *testing.T) {
		env := newTestEnv(100)
		posting := validPosting()
		posting.Title = ""
		_, err := env.uc.Submit(ctx, posting, pdfBatch(1))
		assertAppError(t, err, 400)
		assert.Contains(t, err.Error(), "required fields")
		env.client.AssertNotCalled(t, "Rank", mock.Anything, mock.Anything)
	})

	t.Run("Should fail on unknown job type", func(t *testing.T) {
		env := newTestEnv(100)
		posting := validPosting()
		posting.JobType = "gig"
		_, err := env.uc.Submit(ctx, posting, pdfBatch(1))
		assertAppError(t, err, 400)
	})

	t.Run("Should enforce the description word-count band", func(t *testing.T) {
		env := newTestEnv(100)
		posting := validPosting()
		posting.Description = "too short"
		_, err := env.uc.Submit(ctx, posting, pdfBatch(1))
		assertAppError(t, err, 400)
		assert.Contains(t, err.Error(), "between 100 and 200 words")

		posting.Description = strings.TrimSpace(strings.Repeat("word ", 201))
		_, err = env.uc.Submit(ctx, posting, pdfBatch(1))
		assertAppError(t, err, 400)
	})

	t.Run("Should reject out-of-range years of experience", func(t *testing.T) {
		env := newTestEnv(100)
		posting := validPosting()
		years := 31
		posting.YearsOfExperience = &years
		_, err := env.uc.Submit(ctx, posting, pdfBatch(1))
		assertAppError(t, err, 400)
	})

	t.Run("Should fail when the resume batch is empty", func(t *testing.T) {
		env := newTestEnv(100)
		_, err := env.uc.Submit(ctx, validPosting(), &domain.ResumeBatch{})
		assertAppError(t, err, 400)
		assert.Contains(t, err.Error(), "at least one resume")
	})

	t.Run("Should reject unauthorized domains before touching credits", func(t *testing.T) {
		env := newTestEnv(100)
		posting := validPosting()
		posting.SubmitterEmail = "intruder@gmail.com"
		_, err := env.uc.Submit(ctx, posting, pdfBatch(1))
		assertAppError(t, err, 403)
		env.client.AssertNotCalled(t, "Rank", mock.Anything, mock.Anything)
	})

	t.Run("Should fail on insufficient credits without calling upstream", func(t *testing.T) {
		env := newTestEnv(2)
		_, err := env.uc.Submit(ctx, validPosting(), pdfBatch(3))
		assertAppError(t, err, 402)
		assert.Contains(t, err.Error(), "2 remaining, 3 required")
		env.client.AssertNotCalled(t, "Rank", mock.Anything, mock.Anything)
	})
}

func TestSubmitSuccess(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(4)

	env.client.On("Rank", mock.Anything, mock.AnythingOfType("*domain.RankRequest")).
		Return(&domain.RankResult{
			CaseID: "123",
			Rankings: []domain.RawRanking{
				{Name: "Alice", Score: 9.0, Justification: "6 years of experience with Go", Email: "alice@corp.com"},
				{Name: "Bob", Score: "7", Justification: "junior profile", Email: "xxx"},
			},
		}, nil).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(*domain.RankRequest)
			assert.Equal(t, "", req.OrgID)
			assert.Equal(t, "Go,SQL", req.ExeName)
			assert.Equal(t, "resume_ranker", req.WorkflowID)
			assert.Len(t, req.Resumes, 3)
		})

	outcome, err := env.uc.Submit(ctx, validPosting(), pdfBatch(3))
	assert.NoError(t, err)
	assert.Equal(t, "123", outcome.CaseID)
	assert.Equal(t, int64(1), outcome.RemainingCredits)
	assert.Len(t, outcome.Rankings, 2)

	// Derived fields are computed at ingest
	assert.Equal(t, 6.0, outcome.Rankings[0].ExperienceYears)
	assert.Equal(t, []string{"Go"}, outcome.Rankings[0].MatchedSkills)
	assert.Equal(t, 7.0, outcome.Rankings[1].Score)
	assert.False(t, outcome.Rankings[1].HasEmail)

	// Store replaced wholesale
	stored, err := env.store.Rankings(ctx)
	assert.NoError(t, err)
	assert.Len(t, stored, 2)
	skills, _ := env.store.DeclaredSkills(ctx)
	assert.Equal(t, []string{"Go", "SQL"}, skills)
	caseID, _ := env.store.CaseID(ctx)
	assert.Equal(t, "123", caseID)

	// A second 3-file batch no longer fits the remaining balance
	_, err = env.uc.Submit(ctx, validPosting(), pdfBatch(3))
	assertAppError(t, err, 402)
	assert.Contains(t, err.Error(), "1 remaining, 3 required")
}

func TestSubmitReusesStoredCaseID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(100)
	assert.NoError(t, env.store.SaveCaseID(ctx, "77"))

	env.client.On("Rank", mock.Anything, mock.MatchedBy(func(req *domain.RankRequest) bool {
		return req.OrgID == "77"
	})).Return(&domain.RankResult{CaseID: "77", Rankings: []domain.RawRanking{}}, nil)

	_, err := env.uc.Submit(ctx, validPosting(), pdfBatch(1))
	assert.NoError(t, err)
	env.client.AssertExpectations(t)
}

func TestSubmitUpstreamFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(100)

	env.client.On("Rank", mock.Anything, mock.Anything).
		Return(nil, errors.New("workflowexe: upload failed with status 500"))

	_, err := env.uc.Submit(ctx, validPosting(), pdfBatch(2))
	assertAppError(t, err, 502)

	// No charge and no state change for a failed submission
	remaining, err := env.uc.RemainingCredits(ctx, "recruiter@zoho.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(100), remaining)
	stored, _ := env.store.Rankings(ctx)
	assert.Empty(t, stored)

	// The guard is released, so a corrected resubmission can proceed
	acquired, _ := env.guard.Acquire(ctx, "zoho.com")
	assert.True(t, acquired)
}

func TestSubmitBlocksConcurrentDomain(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(100)

	acquired, err := env.guard.Acquire(ctx, "zoho.com")
	assert.NoError(t, err)
	assert.True(t, acquired)

	_, err = env.uc.Submit(ctx, validPosting(), pdfBatch(1))
	assertAppError(t, err, 409)
	env.client.AssertNotCalled(t, "Rank", mock.Anything, mock.Anything)
}

func TestRemainingCredits(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(100)

	t.Run("Privileged domain gets the larger allowance", func(t *testing.T) {
		remaining, err := env.uc.RemainingCredits(ctx, "boss@startitnow.co.in")
		assert.NoError(t, err)
		assert.Equal(t, int64(500), remaining)
	})

	t.Run("Other domains get the default allowance", func(t *testing.T) {
		remaining, err := env.uc.RemainingCredits(ctx, "someone@zoho.com")
		assert.NoError(t, err)
		assert.Equal(t, int64(100), remaining)
	})

	t.Run("Should fail safely on malformed email", func(t *testing.T) {
		_, err := env.uc.RemainingCredits(ctx, "not-an-email")
		assertAppError(t, err, 400)
	})
}
