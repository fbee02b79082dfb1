package domain

import (
	"context"
	"strings"
)

// Description word-count band enforced before submission.
const (
	MinDescriptionWords = 100
	MaxDescriptionWords = 200
)

// JobTypes is the closed set of accepted posting types.
var JobTypes = map[string]bool{
	"full-time":  true,
	"part-time":  true,
	"contract":   true,
	"freelance":  true,
	"internship": true,
}

// JobPosting is held only for the duration of one submission.
type JobPosting struct {
	Title             string
	JobType           string
	Description       string // rich text; stripped of markup before transmission
	RequiredSkills    []string
	SubmitterEmail    string
	YearsOfExperience *int // optional, [0,30]
}

// ResumeFile is one uploaded resume blob, already validated at selection time.
type ResumeFile struct {
	Filename string
	Content  []byte
}

// ResumeBatch preserves the selection order of the uploaded files.
type ResumeBatch struct {
	Files []ResumeFile
}

// SubmissionOutcome reports the result of a successful submission.
type SubmissionOutcome struct {
	CaseID           string             `json:"case_id"`
	RemainingCredits int64              `json:"remaining_credits"`
	Rankings         []CandidateRanking `json:"rankings"`
}

// RankRequest is the payload handed to the ranking workflow client.
type RankRequest struct {
	OrgID          string // reused case id; empty on first submission
	ExeName        string // declared skills joined with commas
	WorkflowID     string
	JobDescription string // HTML already stripped
	Resumes        []ResumeFile
}

// RankResult is the decoded upstream response.
type RankResult struct {
	CaseID   string
	ExeName  string
	Rankings []RawRanking
}

// RankingView is the projected results page for one filter state.
type RankingView struct {
	CaseID         string             `json:"case_id,omitempty"`
	DeclaredSkills []string           `json:"declared_skills"`
	Total          int                `json:"total"`
	Rankings       []CandidateRanking `json:"rankings"`
}

// ShortlistRequest carries candidate details to the ticketing inbox.
type ShortlistRequest struct {
	Name        string
	Email       string
	Phone       string
	Experience  float64
	Score       float64
	Description string
}

// RankingClient talks to the external workflow-exe ranking service.
type RankingClient interface {
	Rank(ctx context.Context, req *RankRequest) (*RankResult, error)
	FetchByCase(ctx context.Context, orgID, workflowID string) (*RankResult, error)
}

// SubmissionLogger appends one submission record to the audit sheet.
// Failures are logged, never surfaced to the submitter.
type SubmissionLogger interface {
	LogSubmission(ctx context.Context, caseID, email string, resumeCount int) error
}

type SubmissionUsecase interface {
	Submit(ctx context.Context, posting *JobPosting, batch *ResumeBatch) (*SubmissionOutcome, error)
	RemainingCredits(ctx context.Context, email string) (int64, error)
}

type RankingUsecase interface {
	Project(ctx context.Context, filter FilterState) (*RankingView, error)
	FetchCase(ctx context.Context, orgID string) (*RankingView, error)
}

type ValidationUsecase interface {
	ValidateEmailDomain(ctx context.Context, email string) error
}

type ShortlistUsecase interface {
	ShortlistCandidate(ctx context.Context, req *ShortlistRequest) error
}

// ParseSkills splits a comma-separated skill list, trimming each entry.
// Duplicates are kept; de-duplication is not enforced.
func ParseSkills(raw string) []string {
	var skills []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
