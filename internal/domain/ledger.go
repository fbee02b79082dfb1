package domain

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrCaseNotFound reports that the upstream has no rankings for a case id.
	ErrCaseNotFound = errors.New("case not found")
)

// DomainKey returns the ledger store key for an email domain,
// e.g. "startitnow.co.in" -> "startitnow_co_in_credits".
func DomainKey(domain string) string {
	return strings.ReplaceAll(strings.ToLower(domain), ".", "_") + "_credits"
}

// EmailDomain extracts the lowercase domain part of an address.
func EmailDomain(email string) (string, error) {
	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(email[at+1:]), nil
}

// CreditLedger is the per-domain, per-resume consumption allowance.
// Balances are lazily initialized on first reference and never replenished.
type CreditLedger interface {
	// EnsureBalance returns the current balance, initializing it to initial
	// when the domain has never been seen.
	EnsureBalance(ctx context.Context, domain string, initial int64) (int64, error)
	// Deduct subtracts amount and returns the new balance.
	Deduct(ctx context.Context, domain string, amount int64) (int64, error)
}

// RankingStore holds the process-wide screening state: the cached ranking
// list (replaced wholesale on each submission), the declared skills of the
// last posting and the case id assigned by the upstream service.
type RankingStore interface {
	ReplaceRankings(ctx context.Context, rankings []CandidateRanking) error
	Rankings(ctx context.Context) ([]CandidateRanking, error)
	SaveDeclaredSkills(ctx context.Context, skills []string) error
	DeclaredSkills(ctx context.Context) ([]string, error)
	SaveCaseID(ctx context.Context, caseID string) error
	CaseID(ctx context.Context) (string, error)
}

// SubmissionGuard blocks duplicate submissions for a domain while the
// upstream ranking call is outstanding.
type SubmissionGuard interface {
	Acquire(ctx context.Context, domain string) (bool, error)
	Release(ctx context.Context, domain string) error
}
